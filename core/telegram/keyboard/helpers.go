package keyboard

import (
	"unicode/utf8"

	tele "gopkg.in/telebot.v4"
)

// The Bot API rejects callback_data beyond 64 bytes. Telebot encodes each
// button as \f<unique>|<data>, so the room left for data depends on the
// unique.
const maxCallbackData = 64

// InlineBtn describes a convenience wrapper for inline button properties.
type InlineBtn struct {
	Text   string
	Unique string
	Data   string
}

// InlineButtonsRows builds an inline keyboard from rows of InlineBtn.
// Data that would push the encoded callback past the Bot API cap is
// clamped; Text is left alone.
func InlineButtonsRows(rows ...[]InlineBtn) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	inline := make([][]tele.InlineButton, len(rows))
	for i, row := range rows {
		r := make([]tele.InlineButton, len(row))
		for j, btn := range row {
			data := ClampData(btn.Unique, btn.Data)
			r[j] = *markup.Data(btn.Text, btn.Unique, data).Inline()
		}
		inline[i] = r
	}
	markup.InlineKeyboard = inline
	return markup
}

// ClampData trims data so \f<unique>|<data> fits in maxCallbackData bytes.
// The cut lands on a rune boundary so the wire payload stays valid UTF-8.
func ClampData(unique, data string) string {
	budget := maxCallbackData - len("\f") - len(unique) - len("|")
	if budget <= 0 {
		return ""
	}
	if len(data) <= budget {
		return data
	}
	for budget > 0 && !utf8.RuneStart(data[budget]) {
		budget--
	}
	return data[:budget]
}
