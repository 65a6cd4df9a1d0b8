package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lancabot/internal/dates"
)

const validYAML = `
telegram:
  token: "123:abc"
  run_mode: longpoll
logging:
  level: info
  format: kv
catalog:
  url: "https://cat.example/hook"
sinks:
  inflow_url: "https://sink.example/in"
  outflow_url: "https://sink.example/out"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Catalog.NextURL != cfg.Catalog.URL {
		t.Fatalf("next_url should default to url, got %q", cfg.Catalog.NextURL)
	}
	if cfg.Payments.Path != defaultPaymentsPath {
		t.Fatalf("payments path default: %q", cfg.Payments.Path)
	}
	if cfg.Dates.Timezone != dates.DefaultTimezone {
		t.Fatalf("timezone default: %q", cfg.Dates.Timezone)
	}
	if cfg.Session.Backend != BackendMemory {
		t.Fatalf("backend default: %q", cfg.Session.Backend)
	}
	if cfg.CoreConfig().Telegram.RunMode != "longpoll" {
		t.Fatalf("core config not normalized: %+v", cfg.CoreConfig().Telegram)
	}
}

func TestLoadRejectsMissingCatalogURL(t *testing.T) {
	content := strings.Replace(validYAML, `url: "https://cat.example/hook"`, `url: ""`, 1)
	if _, err := Load(writeConfig(t, content)); err == nil {
		t.Fatal("expected error for missing catalog.url")
	}
}

func TestLoadRejectsMissingSink(t *testing.T) {
	content := strings.Replace(validYAML, `outflow_url: "https://sink.example/out"`, `outflow_url: ""`, 1)
	if _, err := Load(writeConfig(t, content)); err == nil {
		t.Fatal("expected error for missing sinks.outflow_url")
	}
}

func TestLoadValidatesSessionBackend(t *testing.T) {
	if _, err := Load(writeConfig(t, validYAML+"\nsession:\n  backend: redis\n")); err == nil {
		t.Fatal("expected error for unknown session backend")
	}
	if _, err := Load(writeConfig(t, validYAML+"\nsession:\n  backend: postgres\n")); err == nil {
		t.Fatal("postgres backend without database settings should fail")
	}

	content := validYAML + `
session:
  backend: postgres
database:
  host: localhost
  port: "5432"
  user: bot
  password: secret
  name: lancabot
  sslmode: disable
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Session.Backend != BackendPostgres {
		t.Fatalf("backend = %q", cfg.Session.Backend)
	}
}
