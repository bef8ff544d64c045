package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

var (
	ErrConnectFailed = errors.New("database connection failed")
	ErrMigrateFailed = errors.New("database migration failed")
)

type Config struct {
	ConnString     string
	MigrationsPath string
	// StartupTimeout bounds how long Init waits for Postgres to accept
	// connections. Zero means a single attempt.
	StartupTimeout time.Duration
}

type DB struct {
	connString     string
	migrationsPath string
	pool           *pgxpool.Pool
}

func (db *DB) Migrate(ctx context.Context) error {
	const fn = "DB:Migrate"
	slog.InfoContext(ctx, "Running database migrations...", "path", db.migrationsPath)
	m, err := migrate.New(
		"file://"+db.migrationsPath,
		db.connString,
	)
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrMigrateFailed, err)
	}
	defer m.Close()
	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s:%w:%w", fn, ErrMigrateFailed, err)
	}
	return nil
}

func Init(ctx context.Context, cfg Config) (*DB, error) {
	const fn = "DB:Init"
	pool, err := connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrConnectFailed, err)
	}

	db := &DB{
		pool:           pool,
		connString:     cfg.ConnString,
		migrationsPath: cfg.MigrationsPath,
	}
	if err := db.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return db, nil
}

// connect retries with exponential backoff until Postgres answers or
// the startup timeout elapses.
func connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 5 * time.Second
	bo.MaxElapsedTime = cfg.StartupTimeout

	var policy backoff.BackOff = bo
	if cfg.StartupTimeout <= 0 {
		policy = &backoff.StopBackOff{}
	}

	var pool *pgxpool.Pool
	err := backoff.RetryNotify(func() error {
		p, err := pgxpool.Connect(ctx, cfg.ConnString)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}, backoff.WithContext(policy, ctx), func(err error, next time.Duration) {
		slog.InfoContext(ctx, "Database not ready", "error", err, "retry_in", next)
	})
	if err != nil {
		return nil, err
	}
	return pool, nil
}

func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

func (db *DB) Close() {
	db.pool.Close()
}
