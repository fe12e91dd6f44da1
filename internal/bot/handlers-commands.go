package bot

import (
	"context"

	"go.uber.org/zap"
)

const welcomeText = `Hi! 👋 I can price hull cleaning, inspections and other dive services for your boat.

Pick a service to see what it includes, then tap it again to configure your boat.`

const helpText = `How it works:
1. Pick a service and tap "Get a quote".
2. Answer a few questions about your boat. The estimate updates with every answer.
3. On the last step you get the final price, rounded to the nearest $10.

You can type the boat length (e.g. 42 or 42 ft) and the number of anodes instead of using the buttons.

/start - begin a new quote
/cancel - discard the current quote
/help - show this message`

func (b *Bot) handleCommand(ctx context.Context, chatID int64, command string) {
	switch command {
	case commandStart:
		b.HandleStart(ctx, chatID)
	case commandHelp:
		b.HandleHelp(chatID)
	case commandCancel:
		b.HandleCancel(ctx, chatID)
	default:
		b.logger.Debug("Unknown command",
			zap.Int64("chat_id", chatID),
			zap.String("command", command))
		b.sendText(chatID, "Unknown command. Send /start to get a quote or /help for instructions.", nil)
	}
}

func (b *Bot) HandleStart(ctx context.Context, chatID int64) {
	b.resetSession(ctx, chatID)
	b.sendText(chatID, welcomeText, b.createServicesKeyboard())
}

func (b *Bot) HandleHelp(chatID int64) {
	b.sendText(chatID, helpText, nil)
}

func (b *Bot) HandleCancel(ctx context.Context, chatID int64) {
	b.resetSession(ctx, chatID)
	b.sendText(chatID, "Quote discarded. Choose a service:", b.createServicesKeyboard())
}
