package bot

import (
	"lancabot/internal/catalog"
	"lancabot/internal/flow"
	"lancabot/internal/session"
)

// ParseAction turns a callback key and payload into a typed flow action.
// Unknown keys or malformed payloads return ok=false; the engine never sees
// raw callback strings.
func ParseAction(key, payload string) (flow.Action, bool) {
	switch key {
	case flow.KeyKind:
		kind := session.Kind(payload)
		if kind != session.KindInflow && kind != session.KindOutflow {
			return nil, false
		}
		return flow.PickKind{Kind: kind}, true

	case flow.KeyOrigin:
		if payload == "" {
			return nil, false
		}
		return flow.PickOrigin{Origin: payload}, true

	case flow.KeyCategory:
		if payload == "" {
			return nil, false
		}
		return flow.PickCategory{Category: payload}, true

	case flow.KeySubcategory:
		if payload == "" {
			return nil, false
		}
		return flow.PickSubcategory{Subcategory: payload}, true

	case flow.KeyPayment:
		if payload == "" {
			return nil, false
		}
		return flow.PickPayment{Payment: payload}, true

	case flow.KeyDate:
		switch which := flow.DateShortcut(payload); which {
		case flow.DateToday, flow.DateYesterday, flow.DateMessageTime,
			flow.DateLast, flow.DateTyped:
			return flow.PickDateShortcut{Which: which}, true
		}
		return nil, false

	case flow.KeyDateFix:
		switch payload {
		case "ok":
			return flow.ConfirmDate{Accept: true}, true
		case "no":
			return flow.ConfirmDate{Accept: false}, true
		}
		return nil, false

	case flow.KeyQuery:
		switch kind := catalog.QueryKind(payload); kind {
		case catalog.QueryBalance, catalog.QuerySpendingByCategory:
			return flow.RunQuery{Kind: kind}, true
		}
		return nil, false

	case flow.KeyBack:
		switch target := flow.BackTarget(payload); target {
		case flow.BackToKind, flow.BackToOrigin, flow.BackToCategory,
			flow.BackToSubcategory, flow.BackToPayment, flow.BackToDate:
			return flow.Back{Target: target}, true
		}
		return nil, false
	}
	return nil, false
}
