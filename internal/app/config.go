package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "lancabot/core/config"
	coredatabase "lancabot/core/database"
	"lancabot/internal/dates"
)

// CatalogConfig points at the workflow endpoints serving option lists.
// NextURL serves subcategory lookups; it defaults to URL when unset.
type CatalogConfig struct {
	URL     string `yaml:"url" envconfig:"CATALOG_URL"`
	NextURL string `yaml:"next_url" envconfig:"CATALOG_NEXT_URL"`
}

// SinkConfig holds the per-kind save endpoints.
type SinkConfig struct {
	InflowURL  string `yaml:"inflow_url" envconfig:"SINK_INFLOW_URL"`
	OutflowURL string `yaml:"outflow_url" envconfig:"SINK_OUTFLOW_URL"`
}

// PaymentsConfig locates the hot-reloadable payment method file.
type PaymentsConfig struct {
	Path string `yaml:"path" envconfig:"PAYMENTS_PATH"`
}

// DatesConfig fixes the reference timezone for keyword dates.
type DatesConfig struct {
	Timezone string `yaml:"timezone" envconfig:"REFERENCE_TIMEZONE"`
}

// SessionConfig selects the session backend.
type SessionConfig struct {
	// Backend is "memory" (default) or "postgres".
	Backend string `yaml:"backend" envconfig:"SESSION_BACKEND"`
}

// Config is the full application configuration: the core bot settings plus
// the entry-flow specific sections.
type Config struct {
	Core coreconfig.Config `yaml:",inline"`

	Catalog  CatalogConfig       `yaml:"catalog"`
	Sinks    SinkConfig          `yaml:"sinks"`
	Payments PaymentsConfig      `yaml:"payments"`
	Dates    DatesConfig         `yaml:"dates"`
	Session  SessionConfig       `yaml:"session"`
	Database coredatabase.Config `yaml:"database"`
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Core
}

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"

	defaultPaymentsPath = "config/payments.json"
)

// Load reads the YAML file, applies environment overrides and validates.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return nil, err
	}
	if err := normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func normalize(cfg *Config) error {
	if strings.TrimSpace(cfg.Catalog.URL) == "" {
		return fmt.Errorf("catalog.url is required")
	}
	if strings.TrimSpace(cfg.Catalog.NextURL) == "" {
		cfg.Catalog.NextURL = cfg.Catalog.URL
	}
	if strings.TrimSpace(cfg.Sinks.InflowURL) == "" {
		return fmt.Errorf("sinks.inflow_url is required")
	}
	if strings.TrimSpace(cfg.Sinks.OutflowURL) == "" {
		return fmt.Errorf("sinks.outflow_url is required")
	}
	if strings.TrimSpace(cfg.Payments.Path) == "" {
		cfg.Payments.Path = defaultPaymentsPath
	}
	if strings.TrimSpace(cfg.Dates.Timezone) == "" {
		cfg.Dates.Timezone = dates.DefaultTimezone
	}

	backend := strings.ToLower(strings.TrimSpace(cfg.Session.Backend))
	if backend == "" {
		backend = BackendMemory
	}
	switch backend {
	case BackendMemory:
	case BackendPostgres:
		if strings.TrimSpace(cfg.Database.Host) == "" {
			return fmt.Errorf("database.host is required when session.backend is 'postgres'")
		}
		if strings.TrimSpace(cfg.Database.Name) == "" {
			return fmt.Errorf("database.name is required when session.backend is 'postgres'")
		}
	default:
		return fmt.Errorf("invalid session.backend %q; allowed: memory, postgres", cfg.Session.Backend)
	}
	cfg.Session.Backend = backend
	return nil
}
