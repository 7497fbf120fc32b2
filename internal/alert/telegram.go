package alert

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Alias1177/PriceGuard/internal/model"
)

type botSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramSink forwards each alert to a Telegram chat.
type TelegramSink struct {
	bot    botSender
	chatID int64
}

// NewTelegramSink authenticates the bot token against the Telegram API.
func NewTelegramSink(token string, chatID int64) (*TelegramSink, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("initializing telegram bot: %w", err)
	}
	return &TelegramSink{bot: bot, chatID: chatID}, nil
}

// Send posts the alert text to the configured chat.
func (s *TelegramSink) Send(ctx context.Context, a model.Alert) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(s.chatID, a.String())
	if _, err := s.bot.Send(msg); err != nil {
		return fmt.Errorf("sending telegram alert for %s: %w", a.Date.Format(model.DateLayout), err)
	}
	return nil
}
