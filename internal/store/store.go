// Package store provides the key-value capability that holds quiz sessions.
// The backend is the sole source of truth: sessions are re-read on every
// incoming event and written back before the next one is processed.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Yulia51188/HistoryQuiz/internal/config"
)

var (
	// ErrNotFound reports that a key is absent. Absence is a valid,
	// non-error result for callers that treat missing keys as defaults.
	ErrNotFound = errors.New("store: key not found")
	// ErrUnavailable reports a transient backend connectivity failure.
	ErrUnavailable = errors.New("store: backend unavailable")
)

// Store is the minimal key-value capability required by the quiz core.
type Store interface {
	// Get returns the value for key or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set stores a single key.
	Set(ctx context.Context, key, value string) error
	// SetMulti applies all writes atomically so a backend failure can
	// never leave a session half-written.
	SetMulti(ctx context.Context, kv map[string]string) error
	Close() error
}

// Open constructs the store backend selected by configuration.
func Open(cfg config.StoreConfig, log *slog.Logger) (Store, error) {
	switch cfg.Backend {
	case config.BackendRedis:
		return NewRedis(cfg.Redis, log)
	case config.BackendPostgres:
		return NewPostgres(cfg.Postgres, log)
	case config.BackendMemory:
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend)
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
}
