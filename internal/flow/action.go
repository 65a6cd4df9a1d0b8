package flow

import (
	"time"

	"lancabot/internal/catalog"
	"lancabot/internal/session"
)

// Callback keys shared with the transport adapter. Buttons carry one of
// these plus a payload; the adapter turns them back into typed actions.
const (
	KeyKind        = "tipo"
	KeyOrigin      = "entr"
	KeyCategory    = "cat"
	KeySubcategory = "sub"
	KeyPayment     = "pay"
	KeyDate        = "date"
	KeyDateFix     = "datefix"
	KeyQuery       = "func"
	KeyBack        = "back"
)

// Action is one user input, already parsed by the transport adapter. The
// engine never sees raw callback strings.
type Action interface{ isAction() }

// Launch starts (or restarts) the entry flow.
type Launch struct{}

// Reset discards the in-progress entry on explicit user request.
type Reset struct{}

// PickKind selects inflow or outflow at the root menu.
type PickKind struct{ Kind session.Kind }

// PickOrigin selects an inflow origin.
type PickOrigin struct{ Origin string }

// PickCategory selects an outflow category.
type PickCategory struct{ Category string }

// PickSubcategory selects a subcategory of the chosen category.
type PickSubcategory struct{ Subcategory string }

// PickPayment selects a payment method.
type PickPayment struct{ Payment string }

// DateShortcut names one option on the date menu.
type DateShortcut string

const (
	DateToday       DateShortcut = "hoje"
	DateYesterday   DateShortcut = "ontem"
	DateMessageTime DateShortcut = "msg"
	DateLast        DateShortcut = "ultima"
	DateTyped       DateShortcut = "digitar"
)

// PickDateShortcut selects a date menu option. MessageTime carries the
// timestamp of the triggering update for the DateMessageTime shortcut.
type PickDateShortcut struct {
	Which       DateShortcut
	MessageTime time.Time
}

// ConfirmDate answers the suggested-date prompt.
type ConfirmDate struct{ Accept bool }

// TextInput is a free-text message captured while the session awaits one.
type TextInput struct{ Text string }

// BackTarget names the step a back button returns to.
type BackTarget string

const (
	BackToKind        BackTarget = "tipo"
	BackToOrigin      BackTarget = "entr"
	BackToCategory    BackTarget = "cat"
	BackToSubcategory BackTarget = "sub"
	BackToPayment     BackTarget = "pay"
	BackToDate        BackTarget = "date"
)

// Back returns to an earlier step, discarding the fields chosen after it.
type Back struct{ Target BackTarget }

// RunQuery fires a one-shot report from the root menu.
type RunQuery struct{ Kind catalog.QueryKind }

func (Launch) isAction()           {}
func (Reset) isAction()            {}
func (PickKind) isAction()         {}
func (PickOrigin) isAction()       {}
func (PickCategory) isAction()     {}
func (PickSubcategory) isAction()  {}
func (PickPayment) isAction()      {}
func (PickDateShortcut) isAction() {}
func (ConfirmDate) isAction()      {}
func (TextInput) isAction()        {}
func (Back) isAction()             {}
func (RunQuery) isAction()         {}
