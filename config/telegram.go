package config

import "fmt"

// TelegramConfig defines the notification channel. The destination chat is
// fixed for the lifetime of the process.
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Resolve fills in the bot token from Parameter Store in prod and validates
// that the channel is fully configured. A missing token or chat id is fatal:
// the tracker is useless if it cannot report.
func (cfg *TelegramConfig) Resolve(env string) error {
	if env == "prod" && cfg.BotToken == "" {
		cfg.BotToken = getParameterStoreValue("TRACKER_TELEGRAM_BOT_TOKEN", true)
	}

	if cfg.BotToken == "" {
		return fmt.Errorf("telegram bot token is required")
	}
	if cfg.ChatID == 0 {
		return fmt.Errorf("telegram chat id is required")
	}
	return nil
}
