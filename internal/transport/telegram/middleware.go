package telegram

import (
	"context"
	"log/slog"
	"runtime/debug"
	"strconv"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/Yulia51188/HistoryQuiz/internal/logger"
)

const ctxKey = "logger_ctx"

// recoverMiddleware catches panics in handlers and prevents the bot from crashing.
func recoverMiddleware(log *slog.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			defer func() {
				if r := recover(); r != nil {
					log.LogAttrs(context.Background(), slog.LevelError, "panic recovered",
						slog.String("event", "tg.panic"),
						slog.Any("err", r),
						slog.String("stack", string(debug.Stack())),
					)
				}
			}()
			return next(c)
		}
	}
}

// loggingMiddleware logs a receipt line per update and stores a request
// context carrying the correlation id for downstream handlers.
func loggingMiddleware(log *slog.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			start := time.Now()
			userID := ""
			if c.Sender() != nil {
				userID = strconv.FormatInt(c.Sender().ID, 10)
			}
			rid := logger.BuildRID(Tag, c.Update().ID, userID)

			ctx := logger.WithRID(context.Background(), rid)
			ctx = logger.WithUser(ctx, Tag, userID)
			ctx = logger.WithLogger(ctx, log)
			c.Set(ctxKey, ctx)

			attrs := []slog.Attr{slog.Int("update_id", c.Update().ID)}
			if t := c.Text(); t != "" {
				attrs = append(attrs, slog.String("payload", logger.SanitizeLimit(t, 256)))
			}
			logger.Debug(ctx, "", "tg.update", attrs...)

			err := next(c)

			status := "ok"
			if err != nil {
				status = "fail"
			}
			logger.Info(ctx, "", "tg.handled",
				slog.String("status", status),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			)
			return err
		}
	}
}
