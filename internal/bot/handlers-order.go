package bot

import (
	"context"
	"fmt"

	"divequote/internal/metrics"
	"divequote/internal/pricing"
	"divequote/internal/report"
	"divequote/pkg/api"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// handleCheckout hands the rounded total of a finished quote to checkout.
func (b *Bot) handleCheckout(ctx context.Context, chatID int64) {
	session, err := b.sessions.Get(ctx, chatID)
	if err != nil {
		b.logger.Error("Failed to get session",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again.")
		return
	}

	if !session.CanCheckout() || b.checkout == nil || !b.checkout.Configured() {
		metrics.ObserveCheckout(checkoutDisabled)
		b.sendError(chatID, "Checkout isn't available for this quote.")
		return
	}

	q := session.Quote
	resp, err := b.checkout.CreateCharge(ctx, api.ChargeRequest{
		ServiceKey:  q.ServiceKey,
		AmountCents: q.ChargedTotalCents(),
		Description: fmt.Sprintf("%s, %s", q.ServiceName, pricing.Money(q.ChargedTotal)),
		ChatID:      chatID,
	})
	if err != nil {
		metrics.ObserveCheckout(checkoutFailed)
		b.logger.Error("Failed to create charge",
			zap.Int64("chat_id", chatID),
			zap.String("service", q.ServiceKey),
			zap.Error(err))
		b.sendError(chatID, "We couldn't start checkout. Please try again later.")
		return
	}

	metrics.ObserveCheckout(checkoutOK)
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("Complete your booking for %s:", pricing.Money(q.ChargedTotal)))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("💳 Pay "+pricing.Money(q.ChargedTotal), resp.CheckoutURL),
		),
	)
	b.sendMessage(msg)
}

// handleExport sends the current quote as an xlsx document.
func (b *Bot) handleExport(ctx context.Context, chatID int64) {
	session, err := b.sessions.Get(ctx, chatID)
	if err != nil {
		b.logger.Error("Failed to get session",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again.")
		return
	}
	if session.Quote == nil {
		b.sendError(chatID, "There is no quote to export yet.")
		return
	}

	now := b.now()
	data, err := report.QuoteWorkbook(*session.Quote, session.Config.Normalized(), now)
	if err != nil {
		b.logger.Error("Failed to build quote workbook",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Couldn't prepare the spreadsheet.")
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  report.Filename(*session.Quote, now),
		Bytes: data,
	})
	doc.Caption = fmt.Sprintf("%s: %s", session.Quote.ServiceName, pricing.Money(session.Quote.ChargedTotal))

	if _, err := b.api.Send(doc); err != nil {
		b.logger.Error("Failed to send document",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}
