package options

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestCleanTrimsAndCaps(t *testing.T) {
	items := []string{"  Pix  ", "", "   "}
	for i := 0; i < 40; i++ {
		items = append(items, "Boleto")
	}
	got := Clean(items)
	if len(got) != MaxOptions {
		t.Fatalf("expected %d items, got %d", MaxOptions, len(got))
	}
	if got[0] != "Pix" {
		t.Fatalf("expected trimmed first item, got %q", got[0])
	}
}

func TestClipLabelKeepsShortLabels(t *testing.T) {
	if got := ClipLabel("Cartão de Crédito"); got != "Cartão de Crédito" {
		t.Fatalf("short label changed: %q", got)
	}
}

func TestClipLabelNeverSplitsRunes(t *testing.T) {
	cases := []struct {
		name  string
		label string
	}{
		{"ascii overflow", strings.Repeat("x", 200)},
		{"accent straddles cap", strings.Repeat("x", 79) + "ção"},
		{"accents throughout", strings.Repeat("ã", 60)},
		{"emoji straddles cap", strings.Repeat("x", 78) + "💳💳"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClipLabel(tc.label)
			if len(got) > MaxLabelLen {
				t.Fatalf("clipped label is %d bytes", len(got))
			}
			if !utf8.ValidString(got) {
				t.Fatalf("clipped label is invalid UTF-8: %q", got)
			}
			if !strings.HasPrefix(tc.label, got) {
				t.Fatalf("clip must be a prefix, got %q", got)
			}
		})
	}
}
