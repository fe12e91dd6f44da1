package bot

import (
	"context"

	"divequote/internal/wizard"
	"divequote/pkg/api"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// API is the part of *tgbotapi.BotAPI the bot uses.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// SessionStore carries one wizard session per chat between updates.
type SessionStore interface {
	Get(ctx context.Context, chatID int64) (*wizard.Session, error)
	Save(ctx context.Context, chatID int64, session *wizard.Session) error
	Drop(ctx context.Context, chatID int64) error
}

// Checkout receives the rounded total of a finished quote.
type Checkout interface {
	Configured() bool
	CreateCharge(ctx context.Context, charge api.ChargeRequest) (*api.ChargeResponse, error)
}

var _ API = (*tgbotapi.BotAPI)(nil)
