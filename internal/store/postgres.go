package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/Yulia51188/HistoryQuiz/internal/config"
)

// Postgres stores sessions in a single key/value table.
type Postgres struct {
	db *sqlx.DB
}

// NewPostgres waits for the database, connects, applies migrations, and
// verifies connectivity before returning.
func NewPostgres(cfg config.PostgresConfig, log *slog.Logger) (*Postgres, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name, cfg.SSLMode,
	)
	if err := waitForPostgres(dsn, 30*time.Second); err != nil {
		log.Error("db not ready",
			slog.String("event", "store.connect"),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	if err := runMigrations(dsn, log); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	connDSN := fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name, cfg.SSLMode,
	)
	db, err := sqlx.ConnectContext(ctx, "postgres", connDSN)
	if err != nil {
		log.Error("db connect failed",
			slog.String("event", "store.connect"),
			slog.String("host", cfg.Host),
			slog.String("port", cfg.Port),
			slog.String("db", cfg.Name),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("db connect: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxConnections)

	log.Info("db connected",
		slog.String("event", "store.connect"),
		slog.String("host", cfg.Host),
		slog.String("port", cfg.Port),
		slog.String("db", cfg.Name),
		slog.Int("pool_open", cfg.MaxConnections),
		slog.Duration("duration", time.Since(start).Round(time.Millisecond)),
	)

	return &Postgres{db: db}, nil
}

func waitForPostgres(dsn string, timeout time.Duration) error {
	start := time.Now()
	var lastErr error
	for {
		db, err := sql.Open("postgres", dsn)
		if err == nil {
			if err = db.Ping(); err == nil {
				_ = db.Close()
				return nil
			}
			_ = db.Close()
		}
		lastErr = err
		if time.Since(start) > timeout {
			return fmt.Errorf("timeout reached waiting for database: %w", lastErr)
		}
		time.Sleep(2 * time.Second)
	}
}

func runMigrations(dsn string, log *slog.Logger) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	sourceURL := "file://" + filepath.Join(cwd, "migrations")

	m, err := migrate.New(sourceURL, dsn)
	if err != nil {
		log.Error("migrations init failed",
			slog.String("event", "store.migrate"),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}

	start := time.Now()
	switch upErr := m.Up(); upErr {
	case nil, migrate.ErrNoChange:
		ver, _, _ := m.Version()
		log.Info("migrations applied",
			slog.String("event", "store.migrate"),
			slog.Uint64("version", uint64(ver)),
			slog.Duration("duration", time.Since(start).Round(time.Millisecond)),
		)
		return nil
	default:
		log.Error("migration failed",
			slog.String("event", "store.migrate"),
			slog.String("err", upErr.Error()),
		)
		return fmt.Errorf("migration execution failed: %w", upErr)
	}
}

// Get returns the value for key or ErrNotFound.
func (p *Postgres) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := p.db.GetContext(ctx, &value, "SELECT value FROM sessions WHERE key = $1", key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", unavailable("postgres get", err)
	}
	return value, nil
}

// Set upserts a single key.
func (p *Postgres) Set(ctx context.Context, key, value string) error {
	_, err := p.db.ExecContext(ctx, upsertQuery, key, value)
	if err != nil {
		return unavailable("postgres set", err)
	}
	return nil
}

// SetMulti upserts all keys in one transaction.
func (p *Postgres) SetMulti(ctx context.Context, kv map[string]string) error {
	if len(kv) == 0 {
		return nil
	}
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return unavailable("postgres begin", err)
	}
	for k, v := range kv {
		if _, err := tx.ExecContext(ctx, upsertQuery, k, v); err != nil {
			_ = tx.Rollback()
			return unavailable("postgres set", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return unavailable("postgres commit", err)
	}
	return nil
}

// Close releases the connection pool.
func (p *Postgres) Close() error {
	return p.db.Close()
}

const upsertQuery = `
INSERT INTO sessions (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
