package notify

import (
	"context"
	"fmt"

	"mexctracker/config"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// TelegramNotifier sends HTML-formatted messages to one fixed chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
}

func NewTelegramNotifier(cfg config.TelegramConfig, logger *zap.Logger) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	logger.Info("telegram bot authorized", zap.String("username", bot.Self.UserName))

	return &TelegramNotifier{
		bot:    bot,
		chatID: cfg.ChatID,
		logger: logger,
	}, nil
}

func (n *TelegramNotifier) Send(_ context.Context, text string, silent bool) bool {
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableNotification = silent

	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error("failed to send telegram message", zap.Error(err))
		return false
	}
	return true
}
