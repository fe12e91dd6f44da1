package pricing

import (
	"divequote/internal/domain"

	"github.com/shopspring/decimal"
)

// Composition selects how surcharge percentages combine.
type Composition string

const (
	// CompositionCompounding applies each percentage to the running price.
	CompositionCompounding Composition = "compounding"
	// CompositionAdditive applies every percentage to the base price and sums.
	CompositionAdditive Composition = "additive"
)

func ParseComposition(s string) (Composition, error) {
	switch c := Composition(s); c {
	case CompositionCompounding, CompositionAdditive:
		return c, nil
	case "":
		return CompositionCompounding, nil
	}
	return "", &domain.InvalidAttributeError{Attribute: "composition", Value: s}
}

// SurchargeLine is one resolved modifier with the dollars it added.
type SurchargeLine struct {
	Attribute domain.Attribute `json:"attribute"`
	Label     string           `json:"label"`
	Value     string           `json:"value"`
	Percent   int              `json:"percent"`
	Amount    decimal.Decimal  `json:"amount"`
}

type AnodeLine struct {
	Count     int             `json:"count"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Amount    decimal.Decimal `json:"amount"`
}

// QuoteBreakdown is derived from a service and a configuration on every
// change and never edited in place.
type QuoteBreakdown struct {
	ServiceKey      string             `json:"service_key"`
	ServiceName     string             `json:"service_name"`
	Mode            domain.PricingMode `json:"mode"`
	Rate            decimal.Decimal    `json:"rate"`
	LengthFeet      decimal.Decimal    `json:"length_feet"`
	Composition     Composition        `json:"composition"`
	BasePrice       decimal.Decimal    `json:"base_price"`
	Surcharges      []SurchargeLine    `json:"surcharges"`
	TotalSurcharges decimal.Decimal    `json:"total_surcharges"`
	Anodes          AnodeLine          `json:"anodes"`
	Subtotal        decimal.Decimal    `json:"subtotal"`
	MinimumCharge   decimal.Decimal    `json:"minimum_charge"`
	MinimumApplied  bool               `json:"minimum_applied"`
	// RoundedTotal is the subtotal rounded to the nearest $10.
	RoundedTotal decimal.Decimal `json:"rounded_total"`
	// ChargedTotal is RoundedTotal, or the rounded minimum charge when the
	// subtotal falls below it.
	ChargedTotal decimal.Decimal `json:"charged_total"`
}

// ChargedTotalCents is the amount handed to the charge collaborator.
func (q QuoteBreakdown) ChargedTotalCents() int64 {
	return q.ChargedTotal.Shift(2).IntPart()
}
