package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"divequote/internal/domain"
	"divequote/internal/pricing"
	"divequote/internal/wizard"

	"go.uber.org/zap"
)

func (b *Bot) handleServiceTap(ctx context.Context, chatID int64, key string) {
	var tapErr error
	session, ok := b.withSession(ctx, chatID, func(s *wizard.Session) {
		tapErr = b.machine.TapService(s, key)
	})
	if !ok {
		return
	}

	if tapErr != nil {
		var unknown *domain.UnknownServiceError
		if errors.As(tapErr, &unknown) {
			b.logger.Warn("Tap on unknown service",
				zap.Int64("chat_id", chatID),
				zap.String("service", key))
			b.sendText(chatID, "❌ This service is not available anymore. Choose another one:", b.createServicesKeyboard())
			return
		}
		b.logger.Error("Failed to select service",
			zap.Int64("chat_id", chatID),
			zap.Error(tapErr))
		b.sendError(chatID, "Something went wrong, please try again.")
		return
	}

	b.render(chatID, session, "")
}

func (b *Bot) handleAttribute(ctx context.Context, chatID int64, attr, value string) {
	var setErr error
	session, ok := b.withSession(ctx, chatID, func(s *wizard.Session) {
		setErr = b.machine.SetAttribute(s, domain.Attribute(attr), value)
	})
	if !ok {
		return
	}

	note := ""
	if setErr != nil {
		b.logger.Warn("Rejected attribute value",
			zap.Int64("chat_id", chatID),
			zap.String("attribute", attr),
			zap.String("value", value),
			zap.Error(setErr))
		note = "That option isn't available, please pick one of the buttons."
	}
	b.render(chatID, session, note)
}

func (b *Bot) handleNav(ctx context.Context, chatID int64, action string) {
	switch action {
	case navNext:
		session, ok := b.withSession(ctx, chatID, b.machine.Next)
		if ok {
			b.render(chatID, session, "")
		}
	case navBack:
		session, ok := b.withSession(ctx, chatID, b.machine.Back)
		if ok {
			b.render(chatID, session, "Quote cleared.")
		}
	case navCheckout:
		b.handleCheckout(ctx, chatID)
	case navExport:
		b.handleExport(ctx, chatID)
	default:
		b.logger.Warn("Unknown navigation action",
			zap.Int64("chat_id", chatID),
			zap.String("action", action))
	}
}

// handleText routes free text to the step that accepts typed input.
func (b *Bot) handleText(ctx context.Context, chatID int64, text string) {
	note := ""
	session, ok := b.withSession(ctx, chatID, func(s *wizard.Session) {
		step, active := b.machine.CurrentStep(s)
		if !active || s.State != wizard.StateActive {
			return
		}

		set := func(attr domain.Attribute, value string) bool {
			if err := b.machine.SetAttribute(s, attr, value); err != nil {
				b.logger.Warn("Rejected typed value",
					zap.Int64("chat_id", chatID),
					zap.String("attribute", string(attr)),
					zap.String("value", value),
					zap.Error(err))
				return false
			}
			return true
		}

		switch step {
		case domain.StepBoatLength:
			if v, ok := parseLengthInput(text); ok && set(domain.AttrLength, formatFeet(v)) {
				return
			}
			set(domain.AttrLength, formatFeet(domain.DefaultLengthFeet))
			note = fmt.Sprintf("I couldn't read that length, using %s ft.", formatFeet(domain.DefaultLengthFeet))
		case domain.StepAnodes:
			if n, ok := parseCountInput(text); ok && set(domain.AttrAnodes, strconv.Itoa(n)) {
				return
			}
			note = "Please send the number of anodes as a whole number."
		case domain.StepGrowthLevel:
			if _, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil && set(domain.AttrGrowth, strings.TrimSpace(text)) {
				return
			}
			note = "Send a growth level between 0 and 100 or use the buttons."
		default:
			note = "Please use the buttons below."
		}
	})
	if !ok {
		return
	}

	if session.State != wizard.StateActive {
		b.sendText(chatID, "Send /start to get a quote.", b.createServicesKeyboard())
		return
	}
	b.render(chatID, session, note)
}

// render shows the screen for the session's current state.
func (b *Bot) render(chatID int64, s *wizard.Session, note string) {
	var sb strings.Builder
	if note != "" {
		sb.WriteString(note)
		sb.WriteString("\n\n")
	}

	switch s.State {
	case wizard.StateIdle:
		sb.WriteString("Choose a service:")
		b.sendText(chatID, sb.String(), b.createServicesKeyboard())

	case wizard.StateArmed:
		svc, ok := b.machine.Service(s)
		if !ok {
			b.sendText(chatID, "Choose a service:", b.createServicesKeyboard())
			return
		}
		sb.WriteString(servicePreview(svc))
		b.sendText(chatID, sb.String(), b.createArmedKeyboard(svc))

	case wizard.StateActive:
		step, _ := b.machine.CurrentStep(s)
		svc, _ := b.machine.Service(s)
		sb.WriteString(b.stepPrompt(step, svc, s.Config))
		if s.Quote != nil && step != domain.StepSelection {
			sb.WriteString("\n\nCurrent estimate:\n")
			sb.WriteString(pricing.Render(*s.Quote))
		}
		b.sendText(chatID, sb.String(), b.createStepKeyboard(step, s.Config))

	case wizard.StateResults:
		if s.Quote == nil {
			sb.WriteString("Sorry, we can't price this service right now. Please start over.")
		} else {
			fmt.Fprintf(&sb, "Your quote for %s:\n\n", s.Quote.ServiceName)
			sb.WriteString(pricing.Render(*s.Quote))
		}
		b.sendText(chatID, sb.String(), b.createResultsKeyboard(s))
	}
}

func (b *Bot) stepPrompt(step domain.Step, svc domain.ServiceDefinition, cfg domain.BoatConfiguration) string {
	switch step {
	case domain.StepSelection:
		if svc.IsLengthPriced() {
			return fmt.Sprintf("%s selected. Tap Next to describe your boat.", svc.DisplayName)
		}
		return fmt.Sprintf("%s selected. Tap Next to see your quote.", svc.DisplayName)
	case domain.StepBoatLength:
		return fmt.Sprintf("How long is your boat? Pick a length or send it in feet (currently %s ft).",
			formatFeet(cfg.EffectiveLength()))
	case domain.StepHullAndEngine:
		return "Choose the hull type, propulsion and number of engines."
	case domain.StepPaintCondition:
		return "What condition is the bottom paint in?"
	case domain.StepGrowthLevel:
		bucket := b.machine.Engine().Growth().Resolve(cfg.GrowthLevel)
		return fmt.Sprintf("How much marine growth is on the hull? (currently %s)", bucket.Label)
	case domain.StepAnodes:
		return fmt.Sprintf("How many anodes should we replace? Pick or send a number (%s each).",
			pricing.Money(b.machine.Engine().AnodeRate()))
	}
	return ""
}

func servicePreview(svc domain.ServiceDefinition) string {
	var sb strings.Builder
	sb.WriteString(svc.DisplayName)
	if svc.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(svc.Description)
	}
	sb.WriteString("\n\nPrice: ")
	sb.WriteString(rateLabel(svc))
	if svc.MinimumCharge.IsPositive() {
		fmt.Fprintf(&sb, " (minimum %s)", pricing.Money(svc.MinimumCharge))
	}
	sb.WriteString("\n\nTap \"Get a quote\" to continue or go back to pick another service.")
	return sb.String()
}

func formatFeet(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
