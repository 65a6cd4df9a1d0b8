// Package options normalizes option lists before they are rendered as
// inline keyboards. Both the external catalog and the local payment file
// feed through here, so the caps live in one place.
package options

import (
	"strings"
	"unicode/utf8"
)

const (
	// MaxOptions bounds how many choices a single step may offer.
	MaxOptions = 25
	// MaxLabelLen bounds a label in bytes. Clipping never splits a rune;
	// Telegram rejects payloads carrying invalid UTF-8.
	MaxLabelLen = 80
)

// Clean trims items, drops empties, clips each label to MaxLabelLen and
// caps the list at MaxOptions.
func Clean(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, ClipLabel(item))
		if len(out) == MaxOptions {
			break
		}
	}
	return out
}

// ClipLabel cuts a label down to at most MaxLabelLen bytes, backing up to
// the nearest rune boundary when the cut would land inside one.
func ClipLabel(label string) string {
	if len(label) <= MaxLabelLen {
		return label
	}
	cut := MaxLabelLen
	for cut > 0 && !utf8.RuneStart(label[cut]) {
		cut--
	}
	return label[:cut]
}
