package router

import (
	"time"

	tg "lancabot/core/telegram"
	"lancabot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// Capture defines the minimal interface for a conversation engine that may
// be waiting for free-form text from the user.
type Capture interface {
	AwaitingText(userID int64) bool
	HandleText(c tele.Context) error
}

// TextOptions controls fallback behaviour for text updates.
type TextOptions struct {
	UnknownText tele.HandlerFunc
}

// TextRoutes builds the handler for plain text routing. Text belongs to the
// conversation engine while a capture step is active; otherwise it may match
// a bare command alias, the registry fallback, or the unknown-text handler.
func TextRoutes(capture Capture, reg *tg.Registry, opts TextOptions) []tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if capture != nil && capture.AwaitingText(c.Sender().ID) {
			return handleWithSummary(c, "capture", start, func() error {
				return capture.HandleText(c)
			})
		}

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
				name := normalizeHandlerName(key)
				return handleWithSummary(c, name, start, func() error {
					return cmd.Handler(c)
				})
			}
		}

		if reg != nil {
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", nil)
		return nil
	}

	return []tg.Route{
		{
			Endpoint: tele.OnText,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
		},
	}
}
