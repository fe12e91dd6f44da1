package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	"divequote/internal/pricing"
	"divequote/internal/wizard"
	storageredis "divequote/internal/storage/redis"
	"divequote/pkg/api"
	pkgredis "divequote/pkg/redis"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"
)

const testChatID int64 = 1001

type fakeAPI struct {
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	updates  chan tgbotapi.Update
	stopped  bool
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.updates
}

func (f *fakeAPI) StopReceivingUpdates() { f.stopped = true }

func (f *fakeAPI) lastMessage(t *testing.T) tgbotapi.MessageConfig {
	t.Helper()
	require.NotEmpty(t, f.sent)
	msg, ok := f.sent[len(f.sent)-1].(tgbotapi.MessageConfig)
	require.True(t, ok, "last sent item is %T", f.sent[len(f.sent)-1])
	return msg
}

// callbacks lists the callback data of an inline keyboard.
func callbacks(t *testing.T, msg tgbotapi.MessageConfig) []string {
	t.Helper()
	markup, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok, "reply markup is %T", msg.ReplyMarkup)

	var out []string
	for _, row := range markup.InlineKeyboard {
		for _, btn := range row {
			if btn.CallbackData != nil {
				out = append(out, *btn.CallbackData)
			}
		}
	}
	return out
}

type memKV struct {
	data map[string][]byte
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, pkgredis.ErrNotFound
	}
	return v, nil
}

func (m *memKV) Set(_ context.Context, key string, data []byte) error {
	m.data[key] = data
	return nil
}

func (m *memKV) Del(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

type fakeCheckout struct {
	configured bool
	err        error
	charges    []api.ChargeRequest
}

func (f *fakeCheckout) Configured() bool { return f.configured }

func (f *fakeCheckout) CreateCharge(_ context.Context, charge api.ChargeRequest) (*api.ChargeResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.charges = append(f.charges, charge)
	return &api.ChargeResponse{ID: "ch_1", CheckoutURL: "https://pay.example/ch_1"}, nil
}

var errCheckoutDown = errors.New("checkout unavailable")

type harness struct {
	bot      *Bot
	api      *fakeAPI
	sessions *storageredis.SessionStorage
	checkout *fakeCheckout
}

func newHarness() *harness {
	fapi := &fakeAPI{updates: make(chan tgbotapi.Update)}
	sessions := storageredis.NewSessionStorage(&memKV{data: map[string][]byte{}})
	checkout := &fakeCheckout{configured: true}
	machine := wizard.New(pricing.NewEngine(nil), nil)

	b := New(fapi, machine, sessions, checkout, nil)
	b.now = func() time.Time { return time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC) }

	return &harness{bot: b, api: fapi, sessions: sessions, checkout: checkout}
}

func (h *harness) command(name string) {
	h.bot.HandleUpdate(context.Background(), tgbotapi.Update{
		Message: &tgbotapi.Message{
			Chat: &tgbotapi.Chat{ID: testChatID},
			Text: "/" + name,
			Entities: []tgbotapi.MessageEntity{
				{Type: "bot_command", Offset: 0, Length: len(name) + 1},
			},
		},
	})
}

func (h *harness) text(text string) {
	h.bot.HandleUpdate(context.Background(), tgbotapi.Update{
		Message: &tgbotapi.Message{
			Chat: &tgbotapi.Chat{ID: testChatID},
			Text: text,
		},
	})
}

func (h *harness) tap(data string) {
	h.bot.HandleUpdate(context.Background(), tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:      "cb",
			Data:    data,
			Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: testChatID}},
		},
	})
}

func (h *harness) session(t *testing.T) *wizard.Session {
	t.Helper()
	s, err := h.sessions.Get(context.Background(), testChatID)
	require.NoError(t, err)
	return s
}
