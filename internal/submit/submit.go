// Package submit posts finished entries to the collector workflow.
package submit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"lancabot/internal/session"
)

// ErrFailed marks transport and non-2xx failures while saving an entry.
var ErrFailed = errors.New("submission failed")

const requestTimeout = 15 * time.Second

// Record is the wire payload the collector expects. Field names are fixed
// by its contract.
type Record struct {
	Tipo     string `json:"tipo"`
	Data     string `json:"data"`
	Valor    string `json:"valor"`
	UserID   int64  `json:"userId"`
	Username string `json:"username"`

	Origem string `json:"origem,omitempty"`

	Categoria    string `json:"categoria,omitempty"`
	Subcategoria string `json:"subcategoria,omitempty"`
	Pagamento    string `json:"pagamento,omitempty"`
}

// Dispatcher sends entries to per-kind sink URLs.
type Dispatcher struct {
	inflowURL  string
	outflowURL string
	http       *resty.Client
}

func NewDispatcher(inflowURL, outflowURL string) *Dispatcher {
	return &Dispatcher{
		inflowURL:  inflowURL,
		outflowURL: outflowURL,
		http: resty.New().
			SetTimeout(requestTimeout).
			SetHeader("Content-Type", "application/json"),
	}
}

// Submit builds the record from the session and posts it once. The amount is
// normalized (decimal comma to dot) but deliberately not validated; the
// collector owns numeric rules.
func (d *Dispatcher) Submit(ctx context.Context, userID int64, username string, s session.Session, amount string) error {
	rec := Record{
		Tipo:     string(s.Kind),
		Data:     s.PendingDate,
		Valor:    NormalizeAmount(amount),
		UserID:   userID,
		Username: username,
	}

	var url string
	switch s.Kind {
	case session.KindInflow:
		rec.Origem = s.Origin
		url = d.inflowURL
	case session.KindOutflow:
		rec.Categoria = s.Category
		rec.Subcategoria = s.Subcategory
		rec.Pagamento = s.Payment
		url = d.outflowURL
	default:
		return fmt.Errorf("%w: no entry kind set", ErrFailed)
	}

	resp, err := d.http.R().SetContext(ctx).SetBody(rec).Post(url)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailed, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: status %d", ErrFailed, resp.StatusCode())
	}
	return nil
}

// NormalizeAmount turns a decimal comma into a dot and trims whitespace.
func NormalizeAmount(raw string) string {
	return strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
}
