package quiz

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Yulia51188/HistoryQuiz/internal/logger"
	"github.com/Yulia51188/HistoryQuiz/internal/store"
)

// WithStoreRecovery wraps a machine call with the outage policy: when the
// session store is unreachable the user gets a polite retry message with the
// same menu, nothing is persisted, and the error stops here. Any other error
// passes through untouched.
func WithStoreRecovery(next HandleFunc) HandleFunc {
	return func(ctx context.Context, transport, userID string, ev Event) (Reply, error) {
		reply, err := next(ctx, transport, userID, ev)
		if err == nil {
			return reply, nil
		}
		if errors.Is(err, store.ErrUnavailable) {
			logger.Warn(ctx, "", "quiz.store_unavailable",
				slog.String("err", err.Error()),
			)
			return Reply{Text: msgUnavailable, Keyboard: KeyboardMenu}, nil
		}
		return reply, err
	}
}
