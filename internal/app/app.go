package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/chroniclebot/core/bootstrap"
	"github.com/m3rciful/chroniclebot/core/logger"
	"github.com/m3rciful/chroniclebot/core/metrics"
	tg "github.com/m3rciful/chroniclebot/core/telegram"
	"github.com/m3rciful/chroniclebot/core/telegram/router"
	"github.com/m3rciful/chroniclebot/internal/bot"
	"github.com/m3rciful/chroniclebot/internal/catalog"
	"github.com/m3rciful/chroniclebot/internal/navigator"
)

// App holds the initialised components of a running bot.
type App struct {
	Config    *Config
	Catalog   *catalog.Catalog
	Navigator *navigator.Navigator
	Metrics   *metrics.Collector

	infra         *bootstrap.Result
	metricsServer *metrics.Server
}

// BootstrapOptions lets callers replace infrastructure steps.
type BootstrapOptions struct {
	Bootstrap func(context.Context, bootstrap.Options) (*bootstrap.Result, error)
}

// Bootstrap initialises logging and storage, then loads the catalog.
func Bootstrap(ctx context.Context, cfg *Config, opts BootstrapOptions) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config")
	}

	bopts := bootstrap.Options{Config: &cfg.Config}
	if cfg.Content.Source == SourcePostgres {
		db := cfg.Database
		bopts.Database = &db
		bopts.Migrations = catalog.Migrations
		bopts.MigrationsDir = "migrations"
		if cfg.Content.Seed {
			bopts.Modules.Seeders = append(bopts.Modules.Seeders, bootstrap.SeederFunc(seedBuiltin))
		}
	}

	run := opts.Bootstrap
	if run == nil {
		run = bootstrap.Run
	}
	infra, err := run(ctx, bopts)
	if err != nil {
		return nil, err
	}

	cat, err := loadCatalog(ctx, cfg, infra.DB)
	if err != nil {
		_ = infra.Close()
		return nil, err
	}

	collector := metrics.New()
	return &App{
		Config:    cfg,
		Catalog:   cat,
		Navigator: navigator.New(cat, navigator.WithObserver(collector)),
		Metrics:   collector,
		infra:     infra,
	}, nil
}

func seedBuiltin(ctx context.Context, db *sqlx.DB) error {
	return catalog.Seed(ctx, db, catalog.Builtin())
}

func loadCatalog(ctx context.Context, cfg *Config, db *sqlx.DB) (*catalog.Catalog, error) {
	start := time.Now()
	var (
		cat *catalog.Catalog
		err error
	)
	switch cfg.Content.Source {
	case SourceFile:
		cat, err = catalog.LoadFile(cfg.Content.File)
	case SourcePostgres:
		if db == nil {
			return nil, fmt.Errorf("app: content source %q needs a database", SourcePostgres)
		}
		cat, err = catalog.LoadStore(ctx, db)
	default:
		cat = catalog.Builtin()
	}
	if err != nil {
		logger.LogEvent(ctx, logger.CAT, slog.LevelError, "catalog.load",
			slog.String("status", "fail"),
			slog.String("source", cfg.Content.Source),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("app: load catalog: %w", err)
	}

	logger.LogEvent(ctx, logger.CAT, slog.LevelInfo, "catalog.load",
		slog.String("status", "ok"),
		slog.String("source", cfg.Content.Source),
		slog.Int("authors", cat.LenAuthors()),
		slog.Int("events", cat.LenEvents()),
		slog.Duration("duration", time.Since(start)),
	)
	return cat, nil
}

// TelegramRunOptions assembles middlewares, routes and lifecycle hooks.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	if a == nil || a.Navigator == nil {
		return tg.RunOptions{}, fmt.Errorf("app: not bootstrapped")
	}

	reg := tg.NewRegistry()
	bot.New(a.Navigator).Register(reg)

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{Metrics: a.Metrics})
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{
		Metrics: a.Metrics,
		Name:    bot.HandlerName,
	}))
	routes = append(routes, router.TextRoutes(reg, router.TextOptions{Metrics: a.Metrics})...)

	return tg.RunOptions{
		Config:      &a.Config.Config,
		Registry:    reg,
		Metrics:     a.Metrics,
		Middlewares: tg.DefaultMiddlewares(&a.Config.Config, a.Metrics, nil),
		Routes:      routes,
		OnStart:     a.startMetrics,
		OnStop:      a.stopMetrics,
	}, nil
}

func (a *App) startMetrics(context.Context, tg.Runtime) error {
	listen := a.Config.Metrics.Listen
	if listen == "" {
		return nil
	}
	srv, err := metrics.Serve(listen, a.Config.Metrics.Path, a.Metrics)
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}
	a.metricsServer = srv
	return nil
}

func (a *App) stopMetrics(ctx context.Context, _ tg.Runtime) error {
	if a.metricsServer == nil {
		return nil
	}
	err := a.metricsServer.Shutdown(ctx)
	a.metricsServer = nil
	return err
}

// Close releases storage handles.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	return a.infra.Close()
}
