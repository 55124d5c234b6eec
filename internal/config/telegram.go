package config

import (
	"context"
	"time"
)

// TelegramConfig is loaded only when FERPY_ENABLE_TELEGRAM is set.
type TelegramConfig struct {
	Token string `env:"FERPY_TELEGRAM_TOKEN,required,notEmpty"`
	// The only account the robot listens to.
	OwnerID     int64         `env:"FERPY_TELEGRAM_OWNER_ID,required"`
	PollTimeout time.Duration `env:"FERPY_TELEGRAM_POLL_TIMEOUT" envDefault:"10s"`
	// Spoken lines arrive without a notification sound.
	QuietSpeech bool `env:"FERPY_TELEGRAM_QUIET_SPEECH" envDefault:"true"`
}

func NewTelegramConfig(ctx context.Context) *TelegramConfig {
	return mustLoad[TelegramConfig](ctx, "Telegram")
}
