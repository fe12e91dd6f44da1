package bot

import (
	"context"

	"divequote/internal/wizard"

	"go.uber.org/zap"
)

// withSession loads the chat's session, applies fn and saves the result.
// Nothing is saved when the session cannot be loaded.
func (b *Bot) withSession(ctx context.Context, chatID int64, fn func(s *wizard.Session)) (*wizard.Session, bool) {
	session, err := b.sessions.Get(ctx, chatID)
	if err != nil {
		b.logger.Error("Failed to get session",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again.")
		return nil, false
	}

	fn(session)

	if err := b.sessions.Save(ctx, chatID, session); err != nil {
		b.logger.Error("Failed to save session",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
	return session, true
}

func (b *Bot) resetSession(ctx context.Context, chatID int64) {
	if err := b.sessions.Drop(ctx, chatID); err != nil {
		b.logger.Error("Failed to drop session",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}
