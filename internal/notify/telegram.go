package notify

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"liquidityGuard/internal/model"
)

// TelegramConfig configures the Telegram notifier.
type TelegramConfig struct {
	BotToken string
	// ChatID is a numeric chat id or an @channel name.
	ChatID string
	// Endpoint overrides the Bot API endpoint format (token, method).
	Endpoint string
	Timeout  time.Duration
}

// Telegram sends alerts to one chat through the Bot API.
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
	// channel is used instead of chatID for @channel targets.
	channel string
	logger  *zap.Logger
}

func NewTelegram(cfg TelegramConfig, logger *zap.Logger) (*Telegram, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}
	if cfg.ChatID == "" {
		return nil, fmt.Errorf("telegram chat id is required")
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = tgbotapi.APIEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	api, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, cfg.Endpoint, &http.Client{Timeout: cfg.Timeout})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	api.Debug = false

	t := &Telegram{api: api, logger: logger}
	if id, err := strconv.ParseInt(strings.TrimSpace(cfg.ChatID), 10, 64); err == nil {
		t.chatID = id
	} else {
		t.channel = strings.TrimSpace(cfg.ChatID)
	}

	logger.Info("telegram notifier initialized", zap.String("bot_username", api.Self.UserName))
	return t, nil
}

// Notify sends message with Markdown formatting.
func (t *Telegram) Notify(ctx context.Context, pool model.Pool, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg tgbotapi.MessageConfig
	if t.channel != "" {
		msg = tgbotapi.NewMessageToChannel(t.channel, message)
	} else {
		msg = tgbotapi.NewMessage(t.chatID, message)
	}
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("send telegram message for %s: %w", pool.Symbol, err)
	}
	return nil
}
