package payments

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestSourceLoadsAndCleans(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "payments.json", `["Pix","  Cartão de Crédito  ","","Dinheiro"]`)

	src := NewSource(path)
	got := src.List()
	want := []string{"Pix", "Cartão de Crédito", "Dinheiro"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSourceMissingFileIsEmpty(t *testing.T) {
	src := NewSource(filepath.Join(t.TempDir(), "absent.json"))
	if got := src.List(); len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}
}

func TestSourceMalformedFileIsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "payments.json", `{"not":"a list"}`)
	src := NewSource(path)
	if got := src.List(); len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}
}

func TestSourceCaps(t *testing.T) {
	items := make([]string, 40)
	for i := range items {
		items[i] = strings.Repeat("p", 120)
	}
	raw, _ := json.Marshal(items)
	dir := t.TempDir()
	path := writeFile(t, dir, "payments.json", string(raw))

	src := NewSource(path)
	got := src.List()
	if len(got) != 25 {
		t.Fatalf("expected 25 items, got %d", len(got))
	}
	for _, item := range got {
		if len(item) != 80 {
			t.Fatalf("item not capped at 80 chars: %d", len(item))
		}
	}
}

func TestSourceClipsAccentedLabelOnRuneBoundary(t *testing.T) {
	label := strings.Repeat("c", 79) + "ão"
	raw, _ := json.Marshal([]string{label})
	dir := t.TempDir()
	path := writeFile(t, dir, "payments.json", string(raw))

	src := NewSource(path)
	got := src.List()
	if len(got) != 1 {
		t.Fatalf("expected 1 item, got %v", got)
	}
	if !utf8.ValidString(got[0]) {
		t.Fatalf("clipped item is invalid UTF-8: %q", got[0])
	}
	if len(got[0]) > 80 {
		t.Fatalf("item not clipped: %d bytes", len(got[0]))
	}
}

func TestSourceReloadSwapsList(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "payments.json", `["Pix"]`)
	src := NewSource(path)
	if got := src.List(); len(got) != 1 {
		t.Fatalf("initial load: %v", got)
	}

	writeFile(t, dir, "payments.json", `["Pix","Boleto"]`)
	src.Reload()
	if got := src.List(); len(got) != 2 || got[1] != "Boleto" {
		t.Fatalf("after reload: %v", got)
	}
}

func TestListReturnsCopy(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "payments.json", `["Pix","Boleto"]`)
	src := NewSource(path)

	first := src.List()
	first[0] = "mutated"
	if got := src.List(); got[0] != "Pix" {
		t.Fatalf("List must return a copy, got %v", got)
	}
}
