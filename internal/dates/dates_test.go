package dates

import (
	"testing"
	"time"
)

var ref = time.Date(2025, time.March, 10, 15, 0, 0, 0, time.UTC)

func TestNormalizeCanonicalForms(t *testing.T) {
	n := NewNormalizer(time.UTC)

	cases := []struct {
		in   string
		want string
	}{
		{"09/08/2025", "2025-08-09"},
		{"09-08-2025", "2025-08-09"},
		{"2025/08/09", "2025-08-09"},
		{"2025-08-09", "2025-08-09"},
		{"1/2/2025", "2025-02-01"},
		{"2025-2-1", "2025-02-01"},
	}
	for _, tc := range cases {
		got := n.Normalize(tc.in, ref)
		if !got.OK || got.Value != tc.want {
			t.Errorf("Normalize(%q) = %+v, want OK value %s", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := NewNormalizer(time.UTC)
	first := n.Normalize("09/08/2025", ref)
	second := n.Normalize(first.Value, ref)
	if !second.OK || second.Value != first.Value {
		t.Fatalf("normalizing canonical value changed it: %+v -> %+v", first, second)
	}
}

func TestNormalizeKeywords(t *testing.T) {
	n := NewNormalizer(time.UTC)
	if got := n.Normalize("hoje", ref); !got.OK || got.Value != "2025-03-10" {
		t.Fatalf("hoje = %+v", got)
	}
	if got := n.Normalize("  ONTEM ", ref); !got.OK || got.Value != "2025-03-09" {
		t.Fatalf("ontem = %+v", got)
	}
	if got := n.Normalize("today", ref); !got.OK || got.Value != "2025-03-10" {
		t.Fatalf("today = %+v", got)
	}
}

func TestNormalizeKeywordsUseReferenceZone(t *testing.T) {
	// 01:00 UTC on March 10 is still March 9 in São Paulo.
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	n := NewNormalizer(loc)
	early := time.Date(2025, time.March, 10, 1, 0, 0, 0, time.UTC)
	if got := n.Normalize("hoje", early); got.Value != "2025-03-09" {
		t.Fatalf("hoje in Sao Paulo = %+v, want 2025-03-09", got)
	}
}

func TestNormalizeMissingYearSuggests(t *testing.T) {
	n := NewNormalizer(time.UTC)
	cases := []struct {
		in   string
		want string
	}{
		{"09/08", "2025-08-09"},
		{"09-08", "2025-08-09"},
		{"1/2", "2025-02-01"},
	}
	for _, tc := range cases {
		got := n.Normalize(tc.in, ref)
		if got.OK {
			t.Errorf("Normalize(%q) accepted ambiguous input: %+v", tc.in, got)
			continue
		}
		if got.Suggestion != tc.want {
			t.Errorf("Normalize(%q) suggestion = %q, want %q", tc.in, got.Suggestion, tc.want)
		}
	}
}

func TestNormalizeTwoDigitYearSuggests(t *testing.T) {
	n := NewNormalizer(time.UTC)
	got := n.Normalize("09/08/25", ref)
	if got.OK {
		t.Fatalf("two-digit year accepted: %+v", got)
	}
	if got.Suggestion != "2025-08-09" {
		t.Fatalf("suggestion = %q, want 2025-08-09", got.Suggestion)
	}
	if got = n.Normalize("01-02-99", ref); got.Suggestion != "2099-02-01" {
		t.Fatalf("suggestion = %q, want 2099-02-01", got.Suggestion)
	}
}

func TestNormalizeGarbage(t *testing.T) {
	n := NewNormalizer(time.UTC)
	for _, in := range []string{"", "amanha", "2025", "9/8/20255", "ab/cd"} {
		got := n.Normalize(in, ref)
		if got.OK || got.Suggestion != "" {
			t.Errorf("Normalize(%q) = %+v, want rejection without suggestion", in, got)
		}
	}
}
