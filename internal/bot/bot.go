package bot

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"divequote/internal/wizard"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Bot struct {
	api      API
	machine  *wizard.Machine
	sessions SessionStore
	checkout Checkout
	logger   *zap.Logger
	now      func() time.Time
	mu       sync.Mutex
}

// NewBotAPI authorizes against Telegram with token.
func NewBotAPI(token string, debug bool, logger *zap.Logger) (*tgbotapi.BotAPI, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	botAPI.Debug = debug

	logger.Info("Bot authorized",
		zap.String("username", botAPI.Self.UserName),
		zap.Int64("id", botAPI.Self.ID))

	return botAPI, nil
}

// New wires the front-end. checkout may be nil, which hides the checkout
// button.
func New(api API, machine *wizard.Machine, sessions SessionStore, checkout Checkout, logger *zap.Logger) *Bot {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bot{
		api:      api,
		machine:  machine,
		sessions: sessions,
		checkout: checkout,
		logger:   logger,
		now:      time.Now,
	}
}

func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("Starting bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Shutting down bot")
			return nil

		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate processes one update. Updates are handled one at a time so
// each session sees a single transition per load and save.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if update.Message != nil {
		b.processMessage(ctx, update.Message)
	} else if update.CallbackQuery != nil {
		b.processCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) processMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	b.logger.Debug("Processing message",
		zap.Int64("chat_id", chatID),
		zap.String("text", msg.Text))

	if msg.IsCommand() {
		b.handleCommand(ctx, chatID, msg.Command())
		return
	}

	b.handleText(ctx, chatID, msg.Text)
}

func (b *Bot) processCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil {
		return
	}
	chatID := callback.Message.Chat.ID
	data := callback.Data

	b.logger.Debug("Processing callback",
		zap.Int64("chat_id", chatID),
		zap.String("data", data))

	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		b.logger.Warn("Failed to answer callback",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}

	switch {
	case strings.HasPrefix(data, callbackService):
		b.handleServiceTap(ctx, chatID, strings.TrimPrefix(data, callbackService))
	case strings.HasPrefix(data, callbackAttribute):
		attr, value, ok := strings.Cut(strings.TrimPrefix(data, callbackAttribute), ":")
		if !ok {
			b.logger.Warn("Malformed attribute callback", zap.String("data", data))
			return
		}
		b.handleAttribute(ctx, chatID, attr, value)
	case strings.HasPrefix(data, callbackNav):
		b.handleNav(ctx, chatID, strings.TrimPrefix(data, callbackNav))
	default:
		b.logger.Warn("Unknown callback", zap.String("data", data))
	}
}

func (b *Bot) sendMessage(msg tgbotapi.MessageConfig) {
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Int64("chat_id", msg.ChatID),
			zap.String("text", msg.Text),
			zap.Error(err))
	}
}

func (b *Bot) sendText(chatID int64, text string, markup any) {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	b.sendMessage(msg)
}

func (b *Bot) sendError(chatID int64, text string) {
	b.sendMessage(tgbotapi.NewMessage(chatID, "❌ "+text))
}
