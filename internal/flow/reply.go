package flow

// Button is one inline choice. Key is a callback key constant, Data its
// payload. The adapter renders Label and encodes Key|Data.
type Button struct {
	Label string
	Key   string
	Data  string
}

// Reply is what the engine wants shown to the user, transport-free.
// Edit asks the adapter to rewrite the prompt message instead of sending a
// new one. Silent suppresses output entirely (used when a query returns
// nothing to say).
type Reply struct {
	Text     string
	Keyboard [][]Button
	Edit     bool
	Silent   bool
}

const buttonsPerRow = 5

// optionRows lays option buttons out in fixed-width rows and appends the
// extra control buttons as a final row of their own.
func optionRows(key string, options []string, controls ...Button) [][]Button {
	var rows [][]Button
	var row []Button
	for _, opt := range options {
		row = append(row, Button{Label: opt, Key: key, Data: opt})
		if len(row) == buttonsPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	if len(controls) > 0 {
		rows = append(rows, controls)
	}
	return rows
}

func backButton(target BackTarget) Button {
	return Button{Label: "⬅️ Voltar", Key: KeyBack, Data: string(target)}
}

func retryButton(key, data string) Button {
	return Button{Label: "🔁 Tentar novamente", Key: key, Data: data}
}
