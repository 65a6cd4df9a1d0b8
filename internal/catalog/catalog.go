// Package catalog fetches option lists and one-shot query answers from the
// workflow backend. The backend is lenient about shapes, so extraction here
// is tolerant: an unexpected body yields zero options, not an error.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"lancabot/internal/options"
)

// ErrUnavailable marks transport and non-2xx failures against the catalog
// backend. Callers branch on it to keep the user's flow state intact.
var ErrUnavailable = errors.New("catalog unavailable")

const requestTimeout = 10 * time.Second

// Client talks to two endpoints: the primary one serves origins, categories
// and queries; the next-step one serves subcategories.
type Client struct {
	primary string
	next    string
	http    *resty.Client
}

func NewClient(primaryURL, nextURL string) *Client {
	return &Client{
		primary: primaryURL,
		next:    nextURL,
		http: resty.New().
			SetTimeout(requestTimeout).
			SetHeader("Content-Type", "application/json"),
	}
}

// QueryKind selects which one-shot report the backend runs.
type QueryKind string

const (
	QueryBalance            QueryKind = "saldo_atual"
	QuerySpendingByCategory QueryKind = "saidas_por_categoria"
)

func (c *Client) FetchInflowOrigins(ctx context.Context, userID int64, username string) ([]string, error) {
	body := map[string]any{"action": "entradas", "userId": userID, "username": username}
	return c.fetchOptions(ctx, c.primary, body)
}

func (c *Client) FetchOutflowCategories(ctx context.Context, userID int64, username string) ([]string, error) {
	body := map[string]any{"cmd": "saida", "userId": userID, "username": username}
	return c.fetchOptions(ctx, c.primary, body)
}

func (c *Client) FetchSubcategories(ctx context.Context, category string, userID int64, username string) ([]string, error) {
	body := map[string]any{"step": "subcats", "categoria": category, "userId": userID, "username": username}
	return c.fetchOptions(ctx, c.next, body)
}

// Query runs a one-shot report and returns its text. An empty string with a
// nil error means the backend answered but had nothing to say.
func (c *Client) Query(ctx context.Context, kind QueryKind, userID int64, username string) (string, error) {
	body := map[string]any{"action": string(kind), "userId": userID, "username": username}
	raw, err := c.post(ctx, c.primary, body)
	if err != nil {
		return "", err
	}
	return extractText(raw), nil
}

func (c *Client) fetchOptions(ctx context.Context, url string, body map[string]any) ([]string, error) {
	raw, err := c.post(ctx, url, body)
	if err != nil {
		return nil, err
	}
	return extractOptions(raw), nil
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	resp, err := c.http.R().SetContext(ctx).SetBody(body).Post(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode())
	}
	return resp.Body(), nil
}

// extractOptions accepts `{"options":[...]}` or `[{"options":[...]}]`.
// Items may be plain strings or objects carrying label/name/value.
func extractOptions(raw []byte) []string {
	var envelope struct {
		Options []json.RawMessage `json:"options"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Options == nil {
		var list []struct {
			Options []json.RawMessage `json:"options"`
		}
		if err := json.Unmarshal(raw, &list); err != nil || len(list) == 0 {
			return nil
		}
		envelope.Options = list[0].Options
	}

	labels := make([]string, 0, len(envelope.Options))
	for _, item := range envelope.Options {
		labels = append(labels, optionLabel(item))
	}
	return options.Clean(labels)
}

func optionLabel(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Label string `json:"label"`
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return ""
	}
	for _, candidate := range []string{obj.Label, obj.Name, obj.Value} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

// extractText takes the first non-empty of message/content/text, looking
// inside the first element when the body is an array.
func extractText(raw []byte) string {
	type envelope struct {
		Message string `json:"message"`
		Content string `json:"content"`
		Text    string `json:"text"`
	}
	pick := func(e envelope) string {
		for _, candidate := range []string{e.Message, e.Content, e.Text} {
			if s := strings.TrimSpace(candidate); s != "" {
				return s
			}
		}
		return ""
	}

	var single envelope
	if err := json.Unmarshal(raw, &single); err == nil {
		if s := pick(single); s != "" {
			return s
		}
	}
	var list []envelope
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return pick(list[0])
	}
	return ""
}
