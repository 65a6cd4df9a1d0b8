package bot

import (
	"testing"

	"lancabot/internal/catalog"
	"lancabot/internal/flow"
	"lancabot/internal/session"
)

func TestParseActionKnownKeys(t *testing.T) {
	cases := []struct {
		key     string
		payload string
		want    flow.Action
	}{
		{flow.KeyKind, "Entrada", flow.PickKind{Kind: session.KindInflow}},
		{flow.KeyKind, "Saída", flow.PickKind{Kind: session.KindOutflow}},
		{flow.KeyOrigin, "Salário", flow.PickOrigin{Origin: "Salário"}},
		{flow.KeyCategory, "Casa", flow.PickCategory{Category: "Casa"}},
		{flow.KeySubcategory, "Luz", flow.PickSubcategory{Subcategory: "Luz"}},
		{flow.KeyPayment, "Pix", flow.PickPayment{Payment: "Pix"}},
		{flow.KeyDate, "hoje", flow.PickDateShortcut{Which: flow.DateToday}},
		{flow.KeyDate, "digitar", flow.PickDateShortcut{Which: flow.DateTyped}},
		{flow.KeyDateFix, "ok", flow.ConfirmDate{Accept: true}},
		{flow.KeyDateFix, "no", flow.ConfirmDate{Accept: false}},
		{flow.KeyQuery, "saldo_atual", flow.RunQuery{Kind: catalog.QueryBalance}},
		{flow.KeyBack, "tipo", flow.Back{Target: flow.BackToKind}},
		{flow.KeyBack, "date", flow.Back{Target: flow.BackToDate}},
	}
	for _, tc := range cases {
		got, ok := ParseAction(tc.key, tc.payload)
		if !ok {
			t.Errorf("ParseAction(%q, %q) not ok", tc.key, tc.payload)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseAction(%q, %q) = %#v, want %#v", tc.key, tc.payload, got, tc.want)
		}
	}
}

func TestParseActionRejectsJunk(t *testing.T) {
	cases := []struct{ key, payload string }{
		{"nope", "x"},
		{flow.KeyKind, "Whatever"},
		{flow.KeyKind, ""},
		{flow.KeyOrigin, ""},
		{flow.KeyDate, "amanhã"},
		{flow.KeyDateFix, "maybe"},
		{flow.KeyQuery, "rm -rf"},
		{flow.KeyBack, "root"},
	}
	for _, tc := range cases {
		if _, ok := ParseAction(tc.key, tc.payload); ok {
			t.Errorf("ParseAction(%q, %q) accepted junk", tc.key, tc.payload)
		}
	}
}

func TestMarkupForRowLayout(t *testing.T) {
	rows := [][]flow.Button{
		{{Label: "A", Key: flow.KeyCategory, Data: "A"}, {Label: "B", Key: flow.KeyCategory, Data: "B"}},
		{{Label: "⬅️ Voltar", Key: flow.KeyBack, Data: "tipo"}},
	}
	markup := markupFor(rows)
	if markup == nil {
		t.Fatal("nil markup for non-empty rows")
	}
	if len(markup.InlineKeyboard) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(markup.InlineKeyboard))
	}
	if len(markup.InlineKeyboard[0]) != 2 || len(markup.InlineKeyboard[1]) != 1 {
		t.Fatalf("bad row sizes: %d/%d",
			len(markup.InlineKeyboard[0]), len(markup.InlineKeyboard[1]))
	}
	if markup.InlineKeyboard[0][0].Text != "A" {
		t.Fatalf("label lost: %+v", markup.InlineKeyboard[0][0])
	}
}

func TestMarkupForEmptyIsNil(t *testing.T) {
	if markupFor(nil) != nil {
		t.Fatal("expected nil markup for no rows")
	}
}
