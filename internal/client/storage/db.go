// Package storage opens the local client database and keeps its schema
// current with the embedded goose migrations.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/bookshelf/internal/client/migrations"
	"github.com/dmitrijs2005/bookshelf/internal/filex"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// DriverName is the database/sql name of the pure-Go SQLite driver.
const DriverName = "sqlite"

type options struct {
	logger logging.Logger
}

type Option func(*options)

// WithLogger receives the migration progress lines.
func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// RunMigrations applies every pending embedded migration to db, reporting
// progress to logger.
func RunMigrations(ctx context.Context, db *sql.DB, logger logging.Logger) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(gooseLogger{ctx: ctx, l: logger})

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// InitDatabase opens (creating when needed) the SQLite file at dsn and
// migrates it. The caller owns the returned handle.
func InitDatabase(ctx context.Context, dsn string, opts ...Option) (*sql.DB, error) {
	o := options{logger: logging.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	if _, err := filex.EnsureParentDir(dsn); err != nil {
		return nil, err
	}

	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}

	// SQLite allows one writer.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", dsn, err)
	}

	if err := RunMigrations(ctx, db, o.logger); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
