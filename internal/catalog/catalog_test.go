package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, srv.URL), srv
}

func TestFetchInflowOriginsSendsActionAndIdentity(t *testing.T) {
	var got map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"options":["Salário","Freela"]}`))
	})

	opts, err := client.FetchInflowOrigins(context.Background(), 77, "ana")
	if err != nil {
		t.Fatalf("FetchInflowOrigins: %v", err)
	}
	if got["action"] != "entradas" || got["username"] != "ana" {
		t.Fatalf("unexpected request body: %v", got)
	}
	if len(opts) != 2 || opts[0] != "Salário" {
		t.Fatalf("unexpected options: %v", opts)
	}
}

func TestFetchOutflowCategoriesUsesCmdField(t *testing.T) {
	var got map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"options":["Mercado"]}`))
	})
	if _, err := client.FetchOutflowCategories(context.Background(), 1, "u"); err != nil {
		t.Fatalf("FetchOutflowCategories: %v", err)
	}
	if got["cmd"] != "saida" {
		t.Fatalf("missing cmd field: %v", got)
	}
}

func TestFetchSubcategoriesCarriesCategory(t *testing.T) {
	var got map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"options":[]}`))
	})
	if _, err := client.FetchSubcategories(context.Background(), "Casa", 1, "u"); err != nil {
		t.Fatalf("FetchSubcategories: %v", err)
	}
	if got["step"] != "subcats" || got["categoria"] != "Casa" {
		t.Fatalf("unexpected request body: %v", got)
	}
}

func TestOptionExtractionShapes(t *testing.T) {
	cases := []struct {
		name string
		body string
		want []string
	}{
		{"object envelope", `{"options":["A","B"]}`, []string{"A", "B"}},
		{"array envelope", `[{"options":["C"]}]`, []string{"C"}},
		{"object items label", `{"options":[{"label":"L1"},{"name":"N1"},{"value":"V1"}]}`, []string{"L1", "N1", "V1"}},
		{"mixed trim and drop", `{"options":["  X  ","","   "]}`, []string{"X"}},
		{"no options key", `{"message":"ok"}`, nil},
		{"bare array", `["A","B"]`, nil},
		{"garbage", `not json at all`, nil},
		{"empty body", ``, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := extractOptions([]byte(tc.body))
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("got %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestOptionCaps(t *testing.T) {
	long := strings.Repeat("x", 200)
	items := make([]string, 40)
	for i := range items {
		items[i] = long
	}
	body, _ := json.Marshal(map[string]any{"options": items})

	got := extractOptions(body)
	if len(got) != 25 {
		t.Fatalf("expected 25 options, got %d", len(got))
	}
	for _, label := range got {
		if len(label) != 80 {
			t.Fatalf("label not capped at 80 chars: %d", len(label))
		}
	}
}

func TestLongAccentedLabelStaysValidUTF8(t *testing.T) {
	label := strings.Repeat("x", 79) + "ção"
	body, _ := json.Marshal(map[string]any{"options": []string{label}})
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	})

	opts, err := client.FetchInflowOrigins(context.Background(), 1, "u")
	if err != nil {
		t.Fatalf("FetchInflowOrigins: %v", err)
	}
	if len(opts) != 1 {
		t.Fatalf("expected 1 option, got %v", opts)
	}
	if !utf8.ValidString(opts[0]) {
		t.Fatalf("clipped label is invalid UTF-8: %q", opts[0])
	}
	if len(opts[0]) > 80 {
		t.Fatalf("label not clipped: %d bytes", len(opts[0]))
	}
}

func TestQueryTextExtraction(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"message":"Saldo: R$ 10"}`, "Saldo: R$ 10"},
		{"content fallback", `{"content":"via content"}`, "via content"},
		{"text fallback", `{"text":"via text"}`, "via text"},
		{"array first element", `[{"message":"from array"}]`, "from array"},
		{"empty object", `{}`, ""},
		{"empty array", `[]`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			})
			got, err := client.Query(context.Background(), QueryBalance, 1, "u")
			if err != nil {
				t.Fatalf("Query: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestServerErrorWrapsUnavailable(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err := client.FetchOutflowCategories(context.Background(), 1, "u")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestUnreachableBackendWrapsUnavailable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "http://127.0.0.1:1")
	_, err := client.FetchInflowOrigins(context.Background(), 1, "u")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
