package main

import (
	"log"

	"lancabot/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		log.Fatalf("lancabot: %v", err)
	}
}
