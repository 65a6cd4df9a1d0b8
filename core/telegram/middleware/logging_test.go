package middleware

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

func TestParseCallbackStripsFormFeedPrefix(t *testing.T) {
	key, payload := parseCallback(&tele.Callback{Data: "\ftipo|Entrada"})
	if key != "tipo" {
		t.Fatalf("key %q, want %q", key, "tipo")
	}
	if payload != "Entrada" {
		t.Fatalf("payload %q, want %q", payload, "Entrada")
	}
}

func TestParseCallbackPrefersUnique(t *testing.T) {
	key, payload := parseCallback(&tele.Callback{Unique: "cat", Data: "Mercado"})
	if key != "cat" || payload != "Mercado" {
		t.Fatalf("got %q/%q", key, payload)
	}
}

func TestParseCallbackNil(t *testing.T) {
	if key, payload := parseCallback(nil); key != "" || payload != "" {
		t.Fatalf("got %q/%q", key, payload)
	}
}
