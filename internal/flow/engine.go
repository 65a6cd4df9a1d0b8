// Package flow is the conversation state machine. Given the user's session
// and one typed action it computes the next session state and the next
// prompt, calling the catalog, payment list and submission sinks as needed.
package flow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"lancabot/core/logger"
	"lancabot/internal/catalog"
	"lancabot/internal/dates"
	"lancabot/internal/session"
)

// Catalog is the slice of the catalog client the engine needs.
type Catalog interface {
	FetchInflowOrigins(ctx context.Context, userID int64, username string) ([]string, error)
	FetchOutflowCategories(ctx context.Context, userID int64, username string) ([]string, error)
	FetchSubcategories(ctx context.Context, category string, userID int64, username string) ([]string, error)
	Query(ctx context.Context, kind catalog.QueryKind, userID int64, username string) (string, error)
}

// Payments lists the locally configured payment methods.
type Payments interface {
	List() []string
}

// Submitter posts a finished entry to its sink.
type Submitter interface {
	Submit(ctx context.Context, userID int64, username string, s session.Session, amount string) error
}

// User identifies who the action came from.
type User struct {
	ID   int64
	Name string
}

// Engine drives the entry flow. One Handle call per incoming action; all
// state lives in the Store, so the engine itself is stateless and safe for
// concurrent users.
type Engine struct {
	store    session.Store
	catalog  Catalog
	payments Payments
	submit   Submitter
	dates    dates.Normalizer

	now func() time.Time
}

func New(store session.Store, cat Catalog, pay Payments, sub Submitter, norm dates.Normalizer) *Engine {
	return &Engine{
		store:    store,
		catalog:  cat,
		payments: pay,
		submit:   sub,
		dates:    norm,
		now:      time.Now,
	}
}

// AwaitingText reports whether the user's next plain message belongs to the
// flow. The transport adapter consults it before forwarding text.
func (e *Engine) AwaitingText(ctx context.Context, userID int64) bool {
	s, err := e.store.Get(ctx, userID)
	if err != nil {
		return false
	}
	return s.Step.AwaitsText()
}

// Handle applies one action to the user's session and returns the reply to
// render. It only errors on storage failures; user-level problems come back
// as replies.
func (e *Engine) Handle(ctx context.Context, user User, action Action) (Reply, error) {
	s, err := e.store.Get(ctx, user.ID)
	if err != nil {
		return Reply{}, fmt.Errorf("flow: load session: %w", err)
	}

	switch a := action.(type) {
	case Launch:
		s.ResetFlow()
		return e.put(ctx, user, s, rootMenu(false))

	case Reset:
		s.ResetFlow()
		return e.put(ctx, user, s, Reply{Text: msgReset})

	case PickKind:
		return e.pickKind(ctx, user, s, a.Kind)

	case PickOrigin:
		if s.Kind != session.KindInflow {
			return e.brokenStep(ctx, user, s, "origin")
		}
		s.Origin = a.Origin
		s.Step = session.StepDate
		return e.put(ctx, user, s, dateMenu(s))

	case PickCategory:
		if s.Kind != session.KindOutflow {
			return e.brokenStep(ctx, user, s, "category")
		}
		s.Category = a.Category
		s.Subcategory = ""
		s.Payment = ""
		return e.subcategoryStep(ctx, user, s)

	case PickSubcategory:
		if s.Kind != session.KindOutflow || s.Category == "" {
			return e.brokenStep(ctx, user, s, "subcategory")
		}
		s.Subcategory = a.Subcategory
		return e.paymentStep(ctx, user, s)

	case PickPayment:
		if s.Kind != session.KindOutflow || s.Category == "" {
			return e.brokenStep(ctx, user, s, "payment")
		}
		s.Payment = a.Payment
		s.Step = session.StepDate
		return e.put(ctx, user, s, dateMenu(s))

	case PickDateShortcut:
		return e.pickDate(ctx, user, s, a)

	case ConfirmDate:
		return e.confirmDate(ctx, user, s, a.Accept)

	case TextInput:
		return e.textInput(ctx, user, s, a.Text)

	case Back:
		return e.back(ctx, user, s, a.Target)

	case RunQuery:
		return e.runQuery(ctx, user, s, a.Kind)

	default:
		return e.brokenStep(ctx, user, s, "unknown_action")
	}
}

func (e *Engine) pickKind(ctx context.Context, user User, s session.Session, kind session.Kind) (Reply, error) {
	// Kind is recorded before the fetch so a catalog failure keeps the
	// choice and the retry button lands on the same step.
	s.SetKind(kind)

	switch kind {
	case session.KindInflow:
		opts, err := e.catalog.FetchInflowOrigins(ctx, user.ID, user.Name)
		if err != nil {
			return e.catalogFailed(ctx, user, s, "origins", err,
				retryButton(KeyKind, string(kind)))
		}
		if len(opts) == 0 {
			return e.put(ctx, user, s, emptyOptions(BackToKind))
		}
		s.Step = session.StepOrigin
		return e.put(ctx, user, s, Reply{
			Text:     msgChooseOrigin,
			Keyboard: optionRows(KeyOrigin, opts, backButton(BackToKind)),
			Edit:     true,
		})

	case session.KindOutflow:
		opts, err := e.catalog.FetchOutflowCategories(ctx, user.ID, user.Name)
		if err != nil {
			return e.catalogFailed(ctx, user, s, "categories", err,
				retryButton(KeyKind, string(kind)))
		}
		if len(opts) == 0 {
			return e.put(ctx, user, s, emptyOptions(BackToKind))
		}
		s.Step = session.StepCategory
		return e.put(ctx, user, s, Reply{
			Text:     msgChooseCategory,
			Keyboard: optionRows(KeyCategory, opts, backButton(BackToKind)),
			Edit:     true,
		})

	default:
		return e.brokenStep(ctx, user, s, "kind")
	}
}

// subcategoryStep fetches subcategories for the chosen category and either
// shows them or skips straight to the payment list when there are none.
func (e *Engine) subcategoryStep(ctx context.Context, user User, s session.Session) (Reply, error) {
	opts, err := e.catalog.FetchSubcategories(ctx, s.Category, user.ID, user.Name)
	if err != nil {
		return e.catalogFailed(ctx, user, s, "subcategories", err,
			retryButton(KeyCategory, s.Category))
	}
	if len(opts) == 0 {
		return e.paymentStep(ctx, user, s)
	}
	s.Step = session.StepSubcategory
	return e.put(ctx, user, s, Reply{
		Text:     msgChooseSubcategory,
		Keyboard: optionRows(KeySubcategory, opts, backButton(BackToCategory)),
		Edit:     true,
	})
}

func (e *Engine) paymentStep(ctx context.Context, user User, s session.Session) (Reply, error) {
	back := BackToCategory
	if s.Subcategory != "" {
		back = BackToSubcategory
	}
	list := e.payments.List()
	if len(list) == 0 {
		logger.Warn(ctx, "flow", "flow.payments_empty",
			slog.String("step", s.Step.String()))
		return e.put(ctx, user, s, Reply{
			Text:     msgNoPayments,
			Keyboard: [][]Button{{backButton(back)}},
			Edit:     true,
		})
	}
	s.Step = session.StepPayment
	return e.put(ctx, user, s, Reply{
		Text:     msgChoosePayment,
		Keyboard: optionRows(KeyPayment, list, backButton(back)),
		Edit:     true,
	})
}

func (e *Engine) pickDate(ctx context.Context, user User, s session.Session, a PickDateShortcut) (Reply, error) {
	if !dateReady(s) {
		return e.brokenStep(ctx, user, s, "date")
	}

	switch a.Which {
	case DateToday:
		s.PendingDate = e.dates.Canonical(e.now())
	case DateYesterday:
		s.PendingDate = e.dates.Canonical(e.now().AddDate(0, 0, -1))
	case DateMessageTime:
		t := a.MessageTime
		if t.IsZero() {
			t = e.now()
		}
		s.PendingDate = e.dates.Canonical(t)
	case DateLast:
		if s.LastDate == "" {
			return e.brokenStep(ctx, user, s, "last_date")
		}
		s.PendingDate = s.LastDate
	case DateTyped:
		s.Step = session.StepAwaitDateValue
		return e.put(ctx, user, s, askDateValue(true))
	default:
		return e.brokenStep(ctx, user, s, "date_shortcut")
	}

	s.Step = session.StepAwaitValue
	return e.put(ctx, user, s, askValue(s.PendingDate))
}

func (e *Engine) confirmDate(ctx context.Context, user User, s session.Session, accept bool) (Reply, error) {
	if s.Step != session.StepConfirmDate || s.SuggestedDate == "" {
		return e.brokenStep(ctx, user, s, "confirm_date")
	}
	if !accept {
		s.SuggestedDate = ""
		s.Step = session.StepAwaitDateValue
		return e.put(ctx, user, s, askDateValue(true))
	}
	s.PendingDate = s.SuggestedDate
	s.LastDate = s.SuggestedDate
	s.SuggestedDate = ""
	s.Step = session.StepAwaitValue
	return e.put(ctx, user, s, askValue(s.PendingDate))
}

func (e *Engine) textInput(ctx context.Context, user User, s session.Session, text string) (Reply, error) {
	switch s.Step {
	case session.StepAwaitValue:
		amount := strings.TrimSpace(text)
		if amount == "" {
			return askValue(s.PendingDate), nil
		}
		return e.finalize(ctx, user, s, amount)

	case session.StepAwaitDateValue:
		fields := strings.Fields(text)
		if len(fields) < 2 {
			return askDateValue(false), nil
		}
		rawDate := fields[0]
		amount := strings.Join(fields[1:], " ")

		res := e.dates.Normalize(rawDate, e.now())
		switch {
		case res.OK:
			s.PendingDate = res.Value
			return e.finalize(ctx, user, s, amount)
		case res.Suggestion != "":
			s.SuggestedDate = res.Suggestion
			s.Step = session.StepConfirmDate
			return e.put(ctx, user, s, Reply{
				Text: fmt.Sprintf(msgConfirmDate, res.Suggestion),
				Keyboard: [][]Button{{
					{Label: labelAcceptDate, Key: KeyDateFix, Data: "ok"},
					{Label: labelRejectDate, Key: KeyDateFix, Data: "no"},
				}},
			})
		default:
			return Reply{Text: msgInvalidDate}, nil
		}

	default:
		// Not a capture step; the adapter should not have forwarded this.
		return Reply{Silent: true}, nil
	}
}

// finalize submits the entry. The session is cleared whether or not the sink
// accepted it, so a retry can never double-post; only LastDate survives.
func (e *Engine) finalize(ctx context.Context, user User, s session.Session, amount string) (Reply, error) {
	if s.Kind == session.KindUnset || s.PendingDate == "" {
		return e.brokenStep(ctx, user, s, "submit")
	}
	date := s.PendingDate

	err := e.submit.Submit(ctx, user.ID, user.Name, s, amount)
	cleared := session.Session{LastDate: s.LastDate}
	if err != nil {
		logger.Warn(ctx, "flow", "flow.submit_failed",
			slog.String("kind", string(s.Kind)),
			slog.String("target", date),
			slog.Any("err", err))
		return e.put(ctx, user, cleared, Reply{Text: msgSubmitFail})
	}
	cleared.LastDate = date
	logger.Info(ctx, "flow", "flow.submitted",
		slog.String("kind", string(s.Kind)),
		slog.String("target", date))
	return e.put(ctx, user, cleared, Reply{Text: fmt.Sprintf(msgSubmitOK, date)})
}

func (e *Engine) back(ctx context.Context, user User, s session.Session, target BackTarget) (Reply, error) {
	switch target {
	case BackToKind:
		s.SetKind(session.KindUnset)
		s.Step = session.StepRoot
		return e.put(ctx, user, s, rootMenu(true))

	case BackToOrigin:
		if s.Kind != session.KindInflow {
			return e.brokenStep(ctx, user, s, "back_origin")
		}
		s.Origin = ""
		s.PendingDate = ""
		s.SuggestedDate = ""
		opts, err := e.catalog.FetchInflowOrigins(ctx, user.ID, user.Name)
		if err != nil {
			return e.catalogFailed(ctx, user, s, "origins", err,
				retryButton(KeyBack, string(BackToOrigin)))
		}
		if len(opts) == 0 {
			return e.put(ctx, user, s, emptyOptions(BackToKind))
		}
		s.Step = session.StepOrigin
		return e.put(ctx, user, s, Reply{
			Text:     msgChooseOrigin,
			Keyboard: optionRows(KeyOrigin, opts, backButton(BackToKind)),
			Edit:     true,
		})

	case BackToCategory:
		if s.Kind != session.KindOutflow {
			return e.brokenStep(ctx, user, s, "back_category")
		}
		s.Category = ""
		s.Subcategory = ""
		s.Payment = ""
		s.PendingDate = ""
		s.SuggestedDate = ""
		opts, err := e.catalog.FetchOutflowCategories(ctx, user.ID, user.Name)
		if err != nil {
			return e.catalogFailed(ctx, user, s, "categories", err,
				retryButton(KeyBack, string(BackToCategory)))
		}
		if len(opts) == 0 {
			return e.put(ctx, user, s, emptyOptions(BackToKind))
		}
		s.Step = session.StepCategory
		return e.put(ctx, user, s, Reply{
			Text:     msgChooseCategory,
			Keyboard: optionRows(KeyCategory, opts, backButton(BackToKind)),
			Edit:     true,
		})

	case BackToSubcategory:
		if s.Kind != session.KindOutflow || s.Category == "" {
			return e.brokenStep(ctx, user, s, "back_subcategory")
		}
		s.Subcategory = ""
		s.Payment = ""
		s.PendingDate = ""
		s.SuggestedDate = ""
		return e.subcategoryStep(ctx, user, s)

	case BackToPayment:
		if s.Kind != session.KindOutflow || s.Category == "" {
			return e.brokenStep(ctx, user, s, "back_payment")
		}
		s.Payment = ""
		s.PendingDate = ""
		s.SuggestedDate = ""
		return e.paymentStep(ctx, user, s)

	case BackToDate:
		if !dateReady(s) {
			return e.brokenStep(ctx, user, s, "back_date")
		}
		s.PendingDate = ""
		s.SuggestedDate = ""
		s.Step = session.StepDate
		return e.put(ctx, user, s, dateMenu(s))

	default:
		return e.brokenStep(ctx, user, s, "back_unknown")
	}
}

// runQuery fires a one-shot report. Queries are not part of the entry flow,
// so the session is reset first.
func (e *Engine) runQuery(ctx context.Context, user User, s session.Session, kind catalog.QueryKind) (Reply, error) {
	s.ResetFlow()
	if err := e.store.Put(ctx, user.ID, s); err != nil {
		return Reply{}, fmt.Errorf("flow: save session: %w", err)
	}

	text, err := e.catalog.Query(ctx, kind, user.ID, user.Name)
	if err != nil {
		logger.Warn(ctx, "flow", "flow.query_failed",
			slog.String("target", string(kind)), slog.Any("err", err))
		return Reply{Text: msgQueryFail, Edit: true}, nil
	}
	if text == "" {
		// Backend answered with nothing to say; acknowledge silently.
		return Reply{Silent: true}, nil
	}
	return Reply{Text: text, Edit: true}, nil
}

func (e *Engine) catalogFailed(ctx context.Context, user User, s session.Session, what string, err error, retry Button) (Reply, error) {
	logger.Warn(ctx, "flow", "flow.catalog_failed",
		slog.String("step", s.Step.String()),
		slog.String("target", what),
		slog.Any("err", err))
	return e.put(ctx, user, s, Reply{
		Text:     msgCatalogFail,
		Keyboard: [][]Button{{retry, backButton(BackToKind)}},
		Edit:     true,
	})
}

// brokenStep handles transitions whose prerequisites are missing. That is an
// engine defect, not a user error: log it loudly, reset the flow and offer a
// restart instead of crashing the dispatch loop.
func (e *Engine) brokenStep(ctx context.Context, user User, s session.Session, what string) (Reply, error) {
	logger.Error(ctx, "flow", "flow.broken_step",
		slog.String("step", s.Step.String()),
		slog.String("kind", string(s.Kind)),
		slog.String("target", what))
	cleared := session.Session{LastDate: s.LastDate}
	return e.put(ctx, user, cleared, Reply{Text: msgBroken})
}

func (e *Engine) put(ctx context.Context, user User, s session.Session, reply Reply) (Reply, error) {
	if err := e.store.Put(ctx, user.ID, s); err != nil {
		return Reply{}, fmt.Errorf("flow: save session: %w", err)
	}
	return reply, nil
}

// dateReady reports whether the branch before the date step is complete.
func dateReady(s session.Session) bool {
	switch s.Kind {
	case session.KindInflow:
		return s.Origin != ""
	case session.KindOutflow:
		return s.Category != "" && s.Payment != ""
	default:
		return false
	}
}

func rootMenu(edit bool) Reply {
	return Reply{
		Text: msgRoot,
		Keyboard: [][]Button{
			{
				{Label: labelKindInflow, Key: KeyKind, Data: string(session.KindInflow)},
				{Label: labelKindOutflow, Key: KeyKind, Data: string(session.KindOutflow)},
			},
			{
				{Label: labelBalance, Key: KeyQuery, Data: string(catalog.QueryBalance)},
				{Label: labelByCategory, Key: KeyQuery, Data: string(catalog.QuerySpendingByCategory)},
			},
		},
		Edit: edit,
	}
}

func dateMenu(s session.Session) Reply {
	back := BackToPayment
	if s.Kind == session.KindInflow {
		back = BackToOrigin
	}
	first := []Button{
		{Label: labelToday, Key: KeyDate, Data: string(DateToday)},
		{Label: labelYesterday, Key: KeyDate, Data: string(DateYesterday)},
		{Label: labelMessageTime, Key: KeyDate, Data: string(DateMessageTime)},
	}
	var second []Button
	if s.LastDate != "" {
		second = append(second, Button{
			Label: fmt.Sprintf(labelLastDate, s.LastDate),
			Key:   KeyDate,
			Data:  string(DateLast),
		})
	}
	second = append(second, Button{Label: labelTypeDate, Key: KeyDate, Data: string(DateTyped)})
	return Reply{
		Text:     msgChooseDate,
		Keyboard: [][]Button{first, second, {backButton(back)}},
		Edit:     true,
	}
}

func askValue(date string) Reply {
	return Reply{
		Text:     fmt.Sprintf(msgAskValue, date),
		Keyboard: [][]Button{{backButton(BackToDate)}},
	}
}

func askDateValue(edit bool) Reply {
	return Reply{
		Text:     msgAskDateValue,
		Keyboard: [][]Button{{backButton(BackToDate)}},
		Edit:     edit,
	}
}

func emptyOptions(back BackTarget) Reply {
	return Reply{
		Text:     msgEmptyOptions,
		Keyboard: [][]Button{{backButton(back)}},
		Edit:     true,
	}
}
