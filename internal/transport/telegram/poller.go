package telegram

import (
	"fmt"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/Yulia51188/HistoryQuiz/internal/config"
)

// buildPoller returns a webhook or long poller per the configured run mode.
func buildPoller(cfg *config.Config) tele.Poller {
	if cfg.Telegram.RunMode == config.RunModeWebhook {
		return &tele.Webhook{
			Listen:   fmt.Sprintf("%s:%d", cfg.Webhook.Listen, cfg.Webhook.Port),
			Endpoint: &tele.WebhookEndpoint{PublicURL: cfg.Webhook.URL},
		}
	}
	return &tele.LongPoller{Timeout: time.Duration(longPollTimeout(cfg)) * time.Second}
}

func longPollTimeout(cfg *config.Config) int {
	if cfg.Telegram.LongPollTimeoutSeconds > 0 {
		return cfg.Telegram.LongPollTimeoutSeconds
	}
	return 10
}
