package pricing

import (
	"fmt"
	"strings"

	"divequote/internal/domain"

	"github.com/shopspring/decimal"
)

// Format renders a breakdown as display lines in a fixed order: base price,
// each surcharge as computed, anode installation, the surcharge total, the
// minimum-charge notice and the rounded total.
func Format(q QuoteBreakdown) []string {
	lines := make([]string, 0, len(q.Surcharges)+5)

	if q.Mode == domain.PricingFlatRate {
		lines = append(lines, fmt.Sprintf("Flat rate: %s", Money(q.BasePrice)))
	} else {
		lines = append(lines, fmt.Sprintf("Base (%s/ft × %s ft): %s",
			Money(q.Rate), q.LengthFeet.String(), Money(q.BasePrice)))
	}

	for _, s := range q.Surcharges {
		lines = append(lines, fmt.Sprintf("%s: %s (%s)", s.Label, Percent(s.Percent), signedMoney(s.Amount)))
	}

	if q.Anodes.Count > 0 {
		lines = append(lines, fmt.Sprintf("Anode installation (%d @ %s): %s",
			q.Anodes.Count, Money(q.Anodes.UnitPrice), Money(q.Anodes.Amount)))
	}

	lines = append(lines, fmt.Sprintf("Total surcharges: %s", Money(q.TotalSurcharges)))

	if q.MinimumApplied {
		lines = append(lines,
			fmt.Sprintf("Rounded total: %s", Money(q.RoundedTotal)),
			fmt.Sprintf("Minimum charge applied: %s", Money(q.MinimumCharge)))
	}

	lines = append(lines, fmt.Sprintf("Total: %s", Money(q.ChargedTotal)))
	return lines
}

// Render joins formatted lines for plain-text channels.
func Render(q QuoteBreakdown) string {
	return strings.Join(Format(q), "\n")
}

func Money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func Percent(p int) string {
	if p == 0 {
		return "0%"
	}
	return fmt.Sprintf("+%d%%", p)
}

func signedMoney(d decimal.Decimal) string {
	if d.IsZero() {
		return Money(decimal.Zero)
	}
	return "+" + Money(d)
}
