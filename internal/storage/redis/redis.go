package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"divequote/internal/wizard"
	pkgredis "divequote/pkg/redis"
)

// KV is the subset of the Redis client the session store needs.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
	Del(ctx context.Context, key string) error
}

var _ KV = (*pkgredis.Client)(nil)

// SessionStorage keeps one wizard session per chat.
type SessionStorage struct {
	kv KV
}

func NewSessionStorage(kv KV) *SessionStorage {
	return &SessionStorage{kv: kv}
}

// Get returns the stored session, or a fresh Idle session when none exists.
func (s *SessionStorage) Get(ctx context.Context, chatID int64) (*wizard.Session, error) {
	data, err := s.kv.Get(ctx, buildSessionKey(chatID))
	if errors.Is(err, pkgredis.ErrNotFound) {
		return wizard.NewSession(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var session wizard.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

func (s *SessionStorage) Save(ctx context.Context, chatID int64, session *wizard.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.kv.Set(ctx, buildSessionKey(chatID), data); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStorage) Drop(ctx context.Context, chatID int64) error {
	if err := s.kv.Del(ctx, buildSessionKey(chatID)); err != nil {
		return fmt.Errorf("drop session: %w", err)
	}
	return nil
}

func buildSessionKey(chatID int64) string {
	return fmt.Sprintf("session:%d", chatID)
}
