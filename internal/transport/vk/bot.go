// Package vk adapts VK community longpoll events to the quiz machine's
// event vocabulary and renders its replies as VK messages.
package vk

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/SevereCloud/vksdk/v2/api"
	"github.com/SevereCloud/vksdk/v2/api/params"
	"github.com/SevereCloud/vksdk/v2/events"
	longpoll "github.com/SevereCloud/vksdk/v2/longpoll-bot"

	"github.com/Yulia51188/HistoryQuiz/internal/config"
	"github.com/Yulia51188/HistoryQuiz/internal/logger"
	"github.com/Yulia51188/HistoryQuiz/internal/quiz"
)

// Tag is the transport tag used in session key namespacing.
const Tag = "vk"

// Bot runs the quiz over the VK community longpoll API.
type Bot struct {
	vk     *api.VK
	lp     *longpoll.LongPoll
	handle quiz.HandleFunc
	log    *slog.Logger
}

// New builds the bot and subscribes to new-message events.
func New(cfg *config.Config, machine *quiz.Machine, log *slog.Logger) (*Bot, error) {
	vk := api.NewVK(cfg.VK.Token)

	groupID := cfg.VK.GroupID
	if groupID == 0 {
		groups, err := vk.GroupsGetByID(nil)
		if err != nil {
			return nil, fmt.Errorf("vk: resolve group id: %w", err)
		}
		if len(groups) == 0 {
			return nil, fmt.Errorf("vk: token does not belong to a community")
		}
		groupID = groups[0].ID
	}

	lp, err := longpoll.NewLongPoll(vk, groupID)
	if err != nil {
		return nil, fmt.Errorf("vk: longpoll init failed: %w", err)
	}

	b := &Bot{
		vk:     vk,
		lp:     lp,
		handle: quiz.WithStoreRecovery(machine.Handle),
		log:    log,
	}
	lp.MessageNew(b.onMessage)

	log.Info("longpoll mode",
		slog.String("event", "vk.mode"),
		slog.Int("group_id", groupID),
	)
	return b, nil
}

// Run serves longpoll events until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	go func() {
		<-ctx.Done()
		b.lp.Shutdown()
	}()
	if err := b.lp.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("vk: longpoll run: %w", err)
	}
	return nil
}

func (b *Bot) onMessage(_ context.Context, obj events.MessageNewObject) {
	peer := obj.Message.PeerID
	userID := strconv.Itoa(peer)
	ev := translate(obj.Message.Text)

	rid := logger.BuildRID(Tag, obj.Message.ConversationMessageID, userID)
	ctx := logger.WithUser(logger.WithRID(context.Background(), rid), Tag, userID)
	ctx = logger.WithLogger(ctx, b.log)
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	logger.Debug(ctx, "", "vk.message",
		slog.String("payload", logger.SanitizeLimit(obj.Message.Text, 256)),
	)

	reply, err := b.handle(ctx, Tag, userID, ev)
	if err != nil {
		logger.Error(ctx, "", "vk.handler_error",
			slog.String("err", err.Error()),
		)
		return
	}

	if err := b.send(peer, reply); err != nil {
		logger.Error(ctx, "", "vk.send",
			slog.String("err", err.Error()),
		)
	}
}

func (b *Bot) send(peer int, reply quiz.Reply) error {
	builder := params.NewMessagesSendBuilder()
	builder.Message(reply.Text)
	builder.PeerID(peer)
	builder.RandomID(int(rand.Int31()))

	switch reply.Keyboard {
	case quiz.KeyboardMenu:
		builder.Keyboard(menuKeyboard())
	case quiz.KeyboardRemove:
		// An empty keyboard hides the previous one.
		builder.Keyboard(emptyKeyboard())
	}

	_, err := b.vk.MessagesSend(builder.Params)
	return err
}

// translate maps VK message text onto machine events. The community "start"
// button sends «Начать»; everything else goes through the shared menu labels.
func translate(text string) quiz.Event {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "начать", "/start", "start":
		return quiz.Event{Kind: quiz.EventBegin}
	case "стоп", "/stop", "stop":
		return quiz.Event{Kind: quiz.EventStop}
	}
	return quiz.EventFromText(text)
}
