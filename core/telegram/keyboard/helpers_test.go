package keyboard

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestClampDataLeavesShortDataAlone(t *testing.T) {
	if got := ClampData("cat", "Mercado"); got != "Mercado" {
		t.Fatalf("short data changed: %q", got)
	}
}

func TestClampDataFitsEncodedCallback(t *testing.T) {
	cases := []struct {
		name   string
		unique string
		data   string
	}{
		{"ascii overflow", "entr", strings.Repeat("x", 80)},
		{"accent at the cut", "entr", strings.Repeat("x", 57) + "ção"},
		{"long unique", "datefix", strings.Repeat("y", 80)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClampData(tc.unique, tc.data)
			encoded := "\f" + tc.unique + "|" + got
			if len(encoded) > maxCallbackData {
				t.Fatalf("encoded callback is %d bytes: %q", len(encoded), encoded)
			}
			if !utf8.ValidString(got) {
				t.Fatalf("clamped data is invalid UTF-8: %q", got)
			}
			if !strings.HasPrefix(tc.data, got) {
				t.Fatalf("clamp must be a prefix, got %q", got)
			}
		})
	}
}

func TestInlineButtonsRowsClampsData(t *testing.T) {
	long := strings.Repeat("z", 80)
	markup := InlineButtonsRows([]InlineBtn{{Text: long, Unique: "entr", Data: long}})

	rows := markup.InlineKeyboard
	if len(rows) != 1 || len(rows[0]) != 1 {
		t.Fatalf("unexpected layout: %v", rows)
	}
	btn := rows[0][0]
	if btn.Text != long {
		t.Fatalf("button text must keep the full label")
	}
	if len("\f"+btn.Unique+"|"+btn.Data) > maxCallbackData {
		t.Fatalf("callback data over the cap: %d bytes", len(btn.Data))
	}
}
