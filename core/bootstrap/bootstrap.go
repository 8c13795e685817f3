// Package bootstrap initialises shared infrastructure before the bot starts.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/jmoiron/sqlx"

	coreconfig "github.com/m3rciful/chroniclebot/core/config"
	coredatabase "github.com/m3rciful/chroniclebot/core/database"
	"github.com/m3rciful/chroniclebot/core/logger"
)

// Options control the generic bootstrap pipeline.
type Options struct {
	Config *coreconfig.Config
	// Database enables the storage steps; nil skips connect, migrate and seed.
	Database *coredatabase.Config
	// Migrations and MigrationsDir locate the *.up.sql files to apply.
	Migrations    fs.FS
	MigrationsDir string

	Modules Modules

	LoggerInit func(*coreconfig.Config) error
	Connect    func(context.Context, coredatabase.Config) (*sqlx.DB, error)
	Migrate    func(context.Context, coredatabase.Config, fs.FS, string) error
}

// Result exposes infrastructure initialized by the bootstrap pipeline.
type Result struct {
	DB *sqlx.DB
}

// Close releases the database handle if one was opened.
func (r *Result) Close() error {
	if r == nil || r.DB == nil {
		return nil
	}
	return r.DB.Close()
}

// ErrNilConfig is returned when Run is called without a core config.
var ErrNilConfig = errors.New("bootstrap: nil config provided")

// Run initializes the logger and, when a database is configured, connects,
// applies migrations and runs the seeders in order.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, ErrNilConfig
	}

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(opts.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	if opts.Database == nil {
		return &Result{}, nil
	}
	dbCfg := *opts.Database

	connect := opts.Connect
	if connect == nil {
		connect = coredatabase.Connect
	}
	db, err := connect(ctx, dbCfg)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: database initialization failed: %w", err)
	}
	res := &Result{DB: db}

	if opts.Migrations != nil {
		migrate := opts.Migrate
		if migrate == nil {
			migrate = coredatabase.RunMigrations
		}
		dir := opts.MigrationsDir
		if dir == "" {
			dir = "."
		}
		if err := migrate(ctx, dbCfg, opts.Migrations, dir); err != nil {
			_ = res.Close()
			return nil, fmt.Errorf("bootstrap: migrations failed: %w", err)
		}
	}

	if err := opts.Modules.seed(ctx, db); err != nil {
		_ = res.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	return res, nil
}
