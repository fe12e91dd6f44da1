package bot

import (
	"fmt"
	"strconv"

	"divequote/internal/domain"
	"divequote/internal/pricing"
	"divequote/internal/wizard"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BOT KEYBOARDS

func serviceData(key string) string {
	return callbackService + key
}

func attrData(attr domain.Attribute, value string) string {
	return callbackAttribute + string(attr) + ":" + value
}

func navData(action string) string {
	return callbackNav + action
}

func (b *Bot) createServicesKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, svc := range b.machine.Engine().Catalog().Services() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s · %s", svc.DisplayName, rateLabel(svc)),
				serviceData(svc.Key)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) createArmedKeyboard(svc domain.ServiceDefinition) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Get a quote", serviceData(svc.Key)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Back", navData(navBack)),
		),
	)
}

// createStepKeyboard offers the choices for step with the current value
// marked, followed by the navigation row.
func (b *Bot) createStepKeyboard(step domain.Step, cfg domain.BoatConfiguration) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	switch step {
	case domain.StepBoatLength:
		var row []tgbotapi.InlineKeyboardButton
		for i, ft := range quickLengths {
			v := strconv.Itoa(ft)
			row = append(row, choiceButton(v, attrData(domain.AttrLength, v), cfg.LengthFeet == float64(ft)))
			if (i+1)%4 == 0 {
				rows = append(rows, row)
				row = nil
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	case domain.StepHullAndEngine:
		rows = append(rows,
			enumRow(domain.AttrHull, string(cfg.HullType),
				string(domain.HullMonohull), string(domain.HullCatamaran), string(domain.HullTrimaran)),
			enumRow(domain.AttrPropulsion, string(cfg.PropulsionType),
				string(domain.PropulsionSailboat), string(domain.PropulsionPowerboat)),
			enumRow(domain.AttrEngines, string(cfg.EngineCount),
				string(domain.EnginesSingle), string(domain.EnginesTwin)),
		)
	case domain.StepPaintCondition:
		rows = append(rows,
			enumRow(domain.AttrPaint, string(cfg.PaintCondition),
				string(domain.PaintExcellent), string(domain.PaintGood), string(domain.PaintFair)),
			enumRow(domain.AttrPaint, string(cfg.PaintCondition),
				string(domain.PaintPoor), string(domain.PaintMissing)),
		)
	case domain.StepGrowthLevel:
		growth := b.machine.Engine().Growth()
		current := growth.Resolve(cfg.GrowthLevel)
		var row []tgbotapi.InlineKeyboardButton
		for _, bucket := range growth.Buckets() {
			label := fmt.Sprintf("%s %s", bucket.Label, pricing.Percent(bucket.Percent))
			value := strconv.FormatFloat(bucket.Threshold, 'f', -1, 64)
			row = append(row, choiceButton(label, attrData(domain.AttrGrowth, value), bucket == current))
			if len(row) == 2 {
				rows = append(rows, row)
				row = nil
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	case domain.StepAnodes:
		var row []tgbotapi.InlineKeyboardButton
		for n := 0; n <= maxAnodeButtons; n++ {
			v := strconv.Itoa(n)
			row = append(row, choiceButton(v, attrData(domain.AttrAnodes, v), cfg.AnodeCount == n))
		}
		rows = append(rows, row)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀️ Start over", navData(navBack)),
		tgbotapi.NewInlineKeyboardButtonData("Next ▶️", navData(navNext)),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) createResultsKeyboard(s *wizard.Session) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	if s.CanCheckout() && b.checkout != nil && b.checkout.Configured() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💳 Book & pay", navData(navCheckout)),
		))
	}
	if s.Quote != nil {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📄 Download quote (xlsx)", navData(navExport)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀️ Start over", navData(navBack)),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func enumRow(attr domain.Attribute, current string, values ...string) []tgbotapi.InlineKeyboardButton {
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(values))
	for _, v := range values {
		row = append(row, choiceButton(humanize(v), attrData(attr, v), v == current))
	}
	return row
}

func choiceButton(label, data string, selected bool) tgbotapi.InlineKeyboardButton {
	if selected {
		label = "• " + label
	}
	return tgbotapi.NewInlineKeyboardButtonData(label, data)
}

func rateLabel(svc domain.ServiceDefinition) string {
	if svc.Mode == domain.PricingFlatRate {
		return pricing.Money(svc.Rate)
	}
	return pricing.Money(svc.Rate) + "/ft"
}
