// Package bot adapts the flow engine to Telegram. It owns the mapping from
// commands, callbacks and plain text to typed flow actions, and renders the
// engine's replies as messages and inline keyboards.
package bot

import (
	"context"
	"log/slog"

	"lancabot/core/logger"
	tg "lancabot/core/telegram"
	"lancabot/core/telegram/callbacks"
	"lancabot/core/telegram/commands"
	"lancabot/core/telegram/helpers"
	"lancabot/core/telegram/keyboard"
	"lancabot/internal/flow"
	"lancabot/internal/payments"

	tele "gopkg.in/telebot.v4"
)

// Adapter wires one engine into a command/callback registry.
type Adapter struct {
	engine   *flow.Engine
	payments *payments.Source
}

func New(engine *flow.Engine, pay *payments.Source) *Adapter {
	return &Adapter{engine: engine, payments: pay}
}

// Register installs the bot's commands and callback keys.
func (a *Adapter) Register(reg *tg.Registry) error {
	reg.RegisterCommand("/lancar", commands.Command{
		Handler:     a.launch,
		Description: "Iniciar um novo lançamento",
		Aliases:     []string{"lancar", "!lancar"},
	})
	reg.RegisterCommand("/reload", commands.Command{
		Handler:     a.reload,
		Description: "Reiniciar a conversa",
		Aliases:     []string{"reload", "!reload"},
	})

	for _, key := range []string{
		flow.KeyKind, flow.KeyOrigin, flow.KeyCategory, flow.KeySubcategory,
		flow.KeyPayment, flow.KeyDate, flow.KeyDateFix, flow.KeyQuery, flow.KeyBack,
	} {
		if err := reg.RegisterCallback(key, a.callback); err != nil {
			return err
		}
	}
	return nil
}

func (a *Adapter) launch(c tele.Context) error {
	ctx := helpers.WithHandler(c, "lancar")
	return a.dispatch(ctx, c, flow.Launch{})
}

// reload resets the conversation and re-reads the payment method file, so
// an edited list takes effect without a restart even if the watcher missed
// the change.
func (a *Adapter) reload(c tele.Context) error {
	ctx := helpers.WithHandler(c, "reload")
	if a.payments != nil {
		a.payments.Reload()
	}
	return a.dispatch(ctx, c, flow.Reset{})
}

func (a *Adapter) callback(c tele.Context) error {
	key := callbacks.CallbackKey(c)
	payload := callbacks.CallbackPayload(c)
	ctx := helpers.WithHandler(c, "callback."+key)

	action, ok := ParseAction(key, payload)
	if !ok {
		logger.Warn(ctx, "bot", "bot.unknown_callback",
			slog.String("cb_key", key),
			slog.String("payload", logger.SanitizeLimit(payload, 64)))
		return nil
	}
	return a.dispatch(ctx, c, action)
}

// AwaitingText implements router.Capture.
func (a *Adapter) AwaitingText(userID int64) bool {
	return a.engine.AwaitingText(context.Background(), userID)
}

// HandleText implements router.Capture.
func (a *Adapter) HandleText(c tele.Context) error {
	ctx := helpers.WithHandler(c, "capture")
	return a.dispatch(ctx, c, flow.TextInput{Text: c.Text()})
}

func (a *Adapter) dispatch(ctx context.Context, c tele.Context, action flow.Action) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	user := flow.User{ID: sender.ID, Name: displayName(sender)}

	reply, err := a.engine.Handle(ctx, user, action)
	if err != nil {
		logger.Error(ctx, "bot", "bot.dispatch_failed", slog.Any("err", err))
		return helpers.SendText(c, "⚠️ Algo deu errado. Tente novamente com /lancar.")
	}
	return render(c, reply)
}

func render(c tele.Context, reply flow.Reply) error {
	if reply.Silent {
		return nil
	}
	markup := markupFor(reply.Keyboard)
	if reply.Edit && c.Callback() != nil {
		return helpers.EditOrSendWith(c, reply.Text, markup)
	}
	return helpers.SendWith(c, reply.Text, markup)
}

func markupFor(rows [][]flow.Button) *tele.ReplyMarkup {
	if len(rows) == 0 {
		return nil
	}
	kbRows := make([][]keyboard.InlineBtn, len(rows))
	for i, row := range rows {
		r := make([]keyboard.InlineBtn, len(row))
		for j, b := range row {
			r[j] = keyboard.InlineBtn{Text: b.Label, Unique: b.Key, Data: b.Data}
		}
		kbRows[i] = r
	}
	return keyboard.InlineButtonsRows(kbRows...)
}

func displayName(u *tele.User) string {
	if u.Username != "" {
		return u.Username
	}
	return u.FirstName
}
