// Package dates normalizes free-form date input from chat messages into the
// canonical YYYY-MM-DD form used across the entry flow. Ambiguous input
// (missing or two-digit year) is never resolved silently; it produces a
// suggestion the user must confirm.
package dates

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DefaultTimezone is the reference zone for "today"/"yesterday" resolution.
const DefaultTimezone = "America/Sao_Paulo"

// Layout is the canonical date form.
const Layout = "2006-01-02"

var (
	reDayMonthYear  = regexp.MustCompile(`^(\d{1,2})[/\-](\d{1,2})[/\-](\d{4})$`)
	reYearMonthDay  = regexp.MustCompile(`^(\d{4})[/\-](\d{1,2})[/\-](\d{1,2})$`)
	reDayMonth      = regexp.MustCompile(`^(\d{1,2})[/\-](\d{1,2})$`)
	reDayMonthYear2 = regexp.MustCompile(`^(\d{1,2})[/\-](\d{1,2})[/\-](\d{2})$`)
)

// Result is the outcome of normalizing one raw input.
// When OK is false and Suggestion is non-empty, the input was parseable but
// ambiguous and the suggested canonical date needs user confirmation.
type Result struct {
	OK         bool
	Value      string
	Suggestion string
}

// Normalizer resolves keyword dates relative to a fixed reference timezone.
type Normalizer struct {
	loc *time.Location
}

// NewNormalizer builds a Normalizer for the given location. A nil location
// falls back to UTC.
func NewNormalizer(loc *time.Location) Normalizer {
	if loc == nil {
		loc = time.UTC
	}
	return Normalizer{loc: loc}
}

// Normalize parses raw user text against the reference timestamp.
func (n Normalizer) Normalize(raw string, ref time.Time) Result {
	input := strings.ToLower(strings.TrimSpace(raw))

	switch input {
	case "hoje", "today":
		return Result{OK: true, Value: n.Canonical(ref)}
	case "ontem", "yesterday":
		return Result{OK: true, Value: n.Canonical(ref.AddDate(0, 0, -1))}
	}

	if m := reDayMonthYear.FindStringSubmatch(input); m != nil {
		return Result{OK: true, Value: fmt.Sprintf("%s-%s-%s", m[3], pad2(m[2]), pad2(m[1]))}
	}
	if m := reYearMonthDay.FindStringSubmatch(input); m != nil {
		return Result{OK: true, Value: fmt.Sprintf("%s-%s-%s", m[1], pad2(m[2]), pad2(m[3]))}
	}
	if m := reDayMonth.FindStringSubmatch(input); m != nil {
		year := ref.In(n.loc).Year()
		return Result{Suggestion: fmt.Sprintf("%d-%s-%s", year, pad2(m[2]), pad2(m[1]))}
	}
	if m := reDayMonthYear2.FindStringSubmatch(input); m != nil {
		return Result{Suggestion: fmt.Sprintf("20%s-%s-%s", m[3], pad2(m[2]), pad2(m[1]))}
	}

	return Result{}
}

// Canonical formats t as YYYY-MM-DD in the normalizer's reference zone.
func (n Normalizer) Canonical(t time.Time) string {
	return t.In(n.loc).Format(Layout)
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
