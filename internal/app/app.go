// Package app assembles the bot: configuration, logging, storage, the flow
// engine and the Telegram runtime.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	coredatabase "lancabot/core/database"
	"lancabot/core/logger"
	tg "lancabot/core/telegram"
	"lancabot/core/telegram/router"
	"lancabot/internal/bot"
	"lancabot/internal/catalog"
	"lancabot/internal/dates"
	"lancabot/internal/flow"
	"lancabot/internal/payments"
	"lancabot/internal/session"
	"lancabot/internal/submit"
)

// App holds the wired components for one running bot instance.
type App struct {
	cfg      *Config
	db       *sqlx.DB
	payments *payments.Source
	adapter  *bot.Adapter
	registry *tg.Registry
}

// Bootstrap initializes logging and wires every component. The returned App
// is ready for TelegramRunOptions.
func Bootstrap(cfg *Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config provided")
	}

	if err := logger.Init(logger.Settings{
		Level:  cfg.Core.Logging.Level,
		Format: cfg.Core.Logging.Format,
		Dir:    cfg.Core.Logging.Dir,
		File:   cfg.Core.Logging.File,
	}); err != nil {
		return nil, fmt.Errorf("app: logger init failed: %w", err)
	}

	loc, err := time.LoadLocation(cfg.Dates.Timezone)
	if err != nil {
		return nil, fmt.Errorf("app: invalid dates.timezone %q: %w", cfg.Dates.Timezone, err)
	}

	var (
		store session.Store = session.NewMemoryStore()
		db    *sqlx.DB
	)
	if cfg.Session.Backend == BackendPostgres {
		db, err = coredatabase.Connect(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("app: database connect failed: %w", err)
		}
		if err := coredatabase.RunMigrations(cfg.Database); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("app: migrations failed: %w", err)
		}
		store = session.NewPostgresStore(db)
	}

	pay := payments.NewSource(cfg.Payments.Path)
	engine := flow.New(
		store,
		catalog.NewClient(cfg.Catalog.URL, cfg.Catalog.NextURL),
		pay,
		submit.NewDispatcher(cfg.Sinks.InflowURL, cfg.Sinks.OutflowURL),
		dates.NewNormalizer(loc),
	)

	adapter := bot.New(engine, pay)
	reg := tg.NewRegistry()
	if err := adapter.Register(reg); err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, fmt.Errorf("app: registry wiring failed: %w", err)
	}

	return &App{
		cfg:      cfg,
		db:       db,
		payments: pay,
		adapter:  adapter,
		registry: reg,
	}, nil
}

// TelegramRunOptions builds the runtime composition handed to RunTelegram.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	routes := router.CommandRoutes(a.registry)
	routes = append(routes, router.CallbackRoute(a.registry, router.CallbackOptions{}))
	routes = append(routes, router.TextRoutes(a.adapter, a.registry, router.TextOptions{})...)

	return tg.RunOptions{
		Config:      &a.cfg.Core,
		Registry:    a.registry,
		Middlewares: tg.DefaultMiddlewares(&a.cfg.Core, nil),
		Routes:      routes,
		OnStart: func(ctx context.Context, _ tg.Runtime) error {
			return a.payments.Watch(ctx)
		},
		OnStop: func(_ context.Context, _ tg.Runtime) error {
			if a.db != nil {
				return a.db.Close()
			}
			return nil
		},
	}, nil
}
