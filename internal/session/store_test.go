package session

import (
	"context"
	"sync"
	"testing"
)

func TestMemoryStoreGetMissingReturnsZero(t *testing.T) {
	store := NewMemoryStore()
	s, err := store.Get(context.Background(), 42)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if s != (Session{}) {
		t.Fatalf("expected zero session, got %+v", s)
	}
}

func TestMemoryStorePutGetClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	in := Session{Step: StepPayment, Kind: KindOutflow, Category: "Casa", Subcategory: "Luz"}
	if err := store.Put(ctx, 7, in); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := store.Get(ctx, 7)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != in {
		t.Fatalf("round trip mismatch: %+v != %+v", got, in)
	}

	if err := store.Clear(ctx, 7); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	got, _ = store.Get(ctx, 7)
	if got != (Session{}) {
		t.Fatalf("session should be gone after Clear, got %+v", got)
	}
	if store.Len() != 0 {
		t.Fatalf("Len = %d after Clear", store.Len())
	}
}

func TestMemoryStoreIsolatesUsers(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.Put(ctx, 1, Session{Kind: KindInflow, Origin: "Salário"})
	store.Put(ctx, 2, Session{Kind: KindOutflow, Category: "Mercado"})

	a, _ := store.Get(ctx, 1)
	b, _ := store.Get(ctx, 2)
	if a.Kind != KindInflow || b.Kind != KindOutflow {
		t.Fatalf("sessions bled across users: %+v / %+v", a, b)
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			store.Put(ctx, id, Session{Step: StepDate})
			store.Get(ctx, id)
			store.Clear(ctx, id)
		}(int64(i % 5))
	}
	wg.Wait()
}

func TestSetKindClearsBranchFields(t *testing.T) {
	s := Session{
		Kind:        KindOutflow,
		Category:    "Mercado",
		Subcategory: "Feira",
		Payment:     "Pix",
		PendingDate: "2026-08-30",
		LastDate:    "2026-08-29",
	}
	s.SetKind(KindInflow)
	if s.Category != "" || s.Subcategory != "" || s.Payment != "" || s.PendingDate != "" {
		t.Fatalf("branch fields survived kind switch: %+v", s)
	}
	if s.LastDate != "2026-08-29" {
		t.Fatalf("LastDate must survive kind switch, got %q", s.LastDate)
	}
	if !s.BranchConsistent() {
		t.Fatalf("session inconsistent after SetKind: %+v", s)
	}
}

func TestResetFlowKeepsLastDate(t *testing.T) {
	s := Session{
		Step:     StepAwaitValue,
		Kind:     KindOutflow,
		Category: "Transporte",
		LastDate: "2026-08-28",
	}
	s.ResetFlow()
	if s.Step != StepRoot || s.Kind != KindUnset || s.Category != "" {
		t.Fatalf("flow fields survived reset: %+v", s)
	}
	if s.LastDate != "2026-08-28" {
		t.Fatalf("LastDate lost on reset: %q", s.LastDate)
	}
}

func TestStepAwaitsText(t *testing.T) {
	for step, want := range map[Step]bool{
		StepRoot:           false,
		StepDate:           false,
		StepConfirmDate:    false,
		StepAwaitValue:     true,
		StepAwaitDateValue: true,
	} {
		if got := step.AwaitsText(); got != want {
			t.Errorf("%s.AwaitsText() = %v, want %v", step, got, want)
		}
	}
}
