// Package telegram adapts Telegram updates to the quiz machine's event
// vocabulary and renders its replies as Bot API messages.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/Yulia51188/HistoryQuiz/internal/config"
	"github.com/Yulia51188/HistoryQuiz/internal/logger"
	"github.com/Yulia51188/HistoryQuiz/internal/quiz"
)

// Tag is the transport tag used in session key namespacing.
const Tag = "tg"

// Bot runs the quiz over the Telegram Bot API.
type Bot struct {
	bot    *tele.Bot
	handle quiz.HandleFunc
	log    *slog.Logger
}

// New builds the bot: poller per run mode, retrying HTTP client, middleware
// chain, and the command/text routes.
func New(cfg *config.Config, machine *quiz.Machine, log *slog.Logger) (*Bot, error) {
	poller := buildPoller(cfg)

	tb, err := tele.NewBot(tele.Settings{
		Token:  cfg.Telegram.Token,
		Poller: poller,
		Client: buildHTTPClient(),
		OnError: func(err error, c tele.Context) {
			attrs := []slog.Attr{
				slog.String("event", "tg.handler_error"),
				slog.String("err", err.Error()),
			}
			if c != nil && c.Sender() != nil {
				attrs = append(attrs, slog.Int64("user_id", c.Sender().ID))
			}
			log.LogAttrs(context.Background(), slog.LevelError, "handler error", attrs...)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("telegram: bot initialization failed: %w", err)
	}

	b := &Bot{
		bot:    tb,
		handle: quiz.WithStoreRecovery(machine.Handle),
		log:    log,
	}

	tb.Use(recoverMiddleware(log), loggingMiddleware(log))

	tb.Handle("/start", b.onStart)
	tb.Handle("/stop", b.onStop)
	tb.Handle("/help", b.onHelp)
	tb.Handle(tele.OnText, b.onText)

	switch p := poller.(type) {
	case *tele.Webhook:
		log.Info("webhook mode",
			slog.String("event", "tg.mode"),
			slog.String("listen", p.Listen),
			slog.String("public_url", p.Endpoint.PublicURL),
		)
	default:
		log.Info("polling mode",
			slog.String("event", "tg.mode"),
			slog.Int("timeout_seconds", longPollTimeout(cfg)),
		)
	}

	return b, nil
}

// Run starts the bot until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	runDone := make(chan struct{})
	go func() {
		b.bot.Start()
		close(runDone)
	}()

	select {
	case <-ctx.Done():
		b.bot.Stop()
		<-runDone
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil
		}
		return ctx.Err()
	case <-runDone:
		return nil
	}
}

func (b *Bot) onStart(c tele.Context) error {
	return b.dispatch(c, quiz.Event{Kind: quiz.EventBegin})
}

func (b *Bot) onStop(c tele.Context) error {
	return b.dispatch(c, quiz.Event{Kind: quiz.EventStop})
}

func (b *Bot) onHelp(c tele.Context) error {
	return c.Send(helpText, menuMarkup())
}

func (b *Bot) onText(c tele.Context) error {
	return b.dispatch(c, quiz.EventFromText(c.Text()))
}

// dispatch resolves the stable user key, runs the machine, and renders the
// reply with the keyboard it asked for.
func (b *Bot) dispatch(c tele.Context, ev quiz.Event) error {
	userID := strconv.FormatInt(c.Sender().ID, 10)

	ctx, cancel := context.WithTimeout(b.requestContext(c, userID), 10*time.Second)
	defer cancel()

	reply, err := b.handle(ctx, Tag, userID, ev)
	if err != nil {
		return err
	}

	switch reply.Keyboard {
	case quiz.KeyboardMenu:
		return c.Send(reply.Text, menuMarkup())
	case quiz.KeyboardRemove:
		return c.Send(reply.Text, &tele.ReplyMarkup{RemoveKeyboard: true})
	default:
		return c.Send(reply.Text)
	}
}

// requestContext rebuilds the context stored by the logging middleware, or a
// fresh one when the handler was reached without it.
func (b *Bot) requestContext(c tele.Context, userID string) context.Context {
	if v := c.Get(ctxKey); v != nil {
		if ctx, ok := v.(context.Context); ok {
			return ctx
		}
	}
	ctx := logger.WithRID(context.Background(), logger.BuildRID(Tag, c.Update().ID, userID))
	ctx = logger.WithUser(ctx, Tag, userID)
	return logger.WithLogger(ctx, b.log)
}

const helpText = "Я задаю вопросы викторины и считаю правильные ответы.\n" +
	"«Новый вопрос» — получить вопрос, «Сдаться» — узнать ответ,\n" +
	"«Мой счёт» — посмотреть счёт. /stop — прервать викторину."
