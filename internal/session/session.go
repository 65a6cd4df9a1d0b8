// Package session holds the per-user conversation state for the entry flow
// and the repositories that persist it.
package session

// Kind is the top-level entry classification. The string values double as
// wire labels in the submission payload, matching what the collector expects.
type Kind string

const (
	KindUnset   Kind = ""
	KindInflow  Kind = "Entrada"
	KindOutflow Kind = "Saída"
)

// Step identifies where in the entry flow the conversation currently is.
type Step int

const (
	// StepRoot: the type menu is shown (or no flow is active).
	StepRoot Step = iota
	// StepOrigin: inflow origin buttons are shown.
	StepOrigin
	// StepCategory: outflow category buttons are shown.
	StepCategory
	// StepSubcategory: subcategory buttons are shown.
	StepSubcategory
	// StepPayment: payment method buttons are shown.
	StepPayment
	// StepDate: date shortcut buttons are shown.
	StepDate
	// StepAwaitValue: a date is fixed, the next text message is the amount.
	StepAwaitValue
	// StepAwaitDateValue: the next text message carries date and amount.
	StepAwaitDateValue
	// StepConfirmDate: a suggested date awaits explicit accept/reject.
	StepConfirmDate
)

var stepNames = map[Step]string{
	StepRoot:           "root",
	StepOrigin:         "origin",
	StepCategory:       "category",
	StepSubcategory:    "subcategory",
	StepPayment:        "payment",
	StepDate:           "date",
	StepAwaitValue:     "await_value",
	StepAwaitDateValue: "await_date_value",
	StepConfirmDate:    "confirm_date",
}

// String returns the step name used in logs.
func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

// AwaitsText reports whether the step consumes the user's next text message.
func (s Step) AwaitsText() bool {
	return s == StepAwaitValue || s == StepAwaitDateValue
}

// Session is the mutable conversation record for one user. Exactly one of
// the inflow branch (Origin) or the outflow branch (Category, Subcategory,
// Payment) may be populated, as determined by Kind; SetKind enforces this.
type Session struct {
	Step Step `json:"step"`
	Kind Kind `json:"kind"`

	Origin string `json:"origin,omitempty"`

	Category    string `json:"category,omitempty"`
	Subcategory string `json:"subcategory,omitempty"`
	Payment     string `json:"payment,omitempty"`

	// PendingDate is the canonical date chosen for the entry in progress.
	PendingDate string `json:"pending_date,omitempty"`
	// SuggestedDate is a canonical correction awaiting user confirmation.
	SuggestedDate string `json:"suggested_date,omitempty"`
	// LastDate is the last submitted date; it survives flow resets and is
	// offered as the "use last date" shortcut on the next entry.
	LastDate string `json:"last_date,omitempty"`
}

// SetKind switches the entry type and clears every field that belongs to a
// branch, so stale values from a previous choice can never leak into the
// submission.
func (s *Session) SetKind(k Kind) {
	s.Kind = k
	s.Origin = ""
	s.Category = ""
	s.Subcategory = ""
	s.Payment = ""
	s.PendingDate = ""
	s.SuggestedDate = ""
}

// ResetFlow clears the in-progress entry while keeping LastDate.
func (s *Session) ResetFlow() {
	last := s.LastDate
	*s = Session{LastDate: last}
}

// BranchConsistent reports whether populated fields are consistent with Kind.
func (s Session) BranchConsistent() bool {
	switch s.Kind {
	case KindInflow:
		return s.Category == "" && s.Subcategory == "" && s.Payment == ""
	case KindOutflow:
		return s.Origin == ""
	default:
		return s.Origin == "" && s.Category == "" && s.Subcategory == "" && s.Payment == ""
	}
}
