package helpers

import (
	tele "gopkg.in/telebot.v4"
)

// SendText sends raw text (no parse mode) to the current recipient.
func SendText(c tele.Context, text string) error {
	return c.Send(text)
}

// SendWith sends text with an inline keyboard attached. Labels come from
// external catalogs, so no parse mode is applied.
func SendWith(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if markup == nil {
		return c.Send(text)
	}
	return c.Send(text, markup)
}

// EditOrSendWith rewrites the prompt message in place, falling back to a new
// message when there is nothing to edit.
func EditOrSendWith(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if markup == nil {
		return c.EditOrSend(text)
	}
	return c.EditOrSend(text, markup)
}
