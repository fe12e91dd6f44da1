package pricing

import (
	"fmt"
	"strings"

	"divequote/internal/domain"

	"github.com/shopspring/decimal"
)

// DefaultAnodeRate is the installation charge per anode.
var DefaultAnodeRate = decimal.NewFromInt(15)

var attributeLabels = map[domain.Attribute]string{
	domain.AttrHull:       "Hull",
	domain.AttrGrowth:     "Growth",
	domain.AttrPropulsion: "Propulsion",
	domain.AttrEngines:    "Engines",
	domain.AttrPaint:      "Paint",
}

// Engine computes quotes. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	catalog     *domain.Catalog
	surcharges  SurchargeTable
	growth      *GrowthInterpolator
	composition Composition
	anodeRate   decimal.Decimal
}

type Option func(*Engine)

func WithSurcharges(t SurchargeTable) Option {
	return func(e *Engine) { e.surcharges = t }
}

func WithGrowthInterpolator(g *GrowthInterpolator) Option {
	return func(e *Engine) { e.growth = g }
}

func WithComposition(c Composition) Option {
	return func(e *Engine) { e.composition = c }
}

func WithAnodeRate(rate decimal.Decimal) Option {
	return func(e *Engine) { e.anodeRate = rate }
}

// NewEngine builds an engine over catalog. A nil catalog means the
// built-in service list.
func NewEngine(catalog *domain.Catalog, opts ...Option) *Engine {
	if catalog == nil {
		catalog = domain.DefaultCatalog()
	}
	e := &Engine{
		catalog:     catalog,
		surcharges:  DefaultSurcharges(),
		growth:      DefaultGrowthInterpolator(),
		composition: CompositionCompounding,
		anodeRate:   DefaultAnodeRate,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Catalog() *domain.Catalog { return e.catalog }

func (e *Engine) Composition() Composition { return e.composition }

func (e *Engine) Growth() *GrowthInterpolator { return e.growth }

func (e *Engine) AnodeRate() decimal.Decimal { return e.anodeRate }

// Quote looks the service up by key and computes its breakdown.
func (e *Engine) Quote(key string, cfg domain.BoatConfiguration) (QuoteBreakdown, error) {
	svc, err := e.catalog.Get(key)
	if err != nil {
		return QuoteBreakdown{}, err
	}
	return e.ComputeQuote(svc, cfg)
}

// ComputeQuote prices svc for cfg. Callers are expected to have taken svc
// from the engine's catalog; anything else is an UnknownServiceError.
func (e *Engine) ComputeQuote(svc domain.ServiceDefinition, cfg domain.BoatConfiguration) (QuoteBreakdown, error) {
	if !e.catalog.Has(svc.Key) {
		return QuoteBreakdown{}, &domain.UnknownServiceError{Key: svc.Key}
	}
	cfg = cfg.Normalized()

	q := QuoteBreakdown{
		ServiceKey:      svc.Key,
		ServiceName:     svc.DisplayName,
		Mode:            svc.Mode,
		Rate:            svc.Rate,
		Composition:     e.composition,
		Surcharges:      []SurchargeLine{},
		TotalSurcharges: decimal.Zero,
		MinimumCharge:   svc.MinimumCharge,
	}

	switch svc.Mode {
	case domain.PricingFlatRate:
		q.BasePrice = svc.Rate
		q.Subtotal = svc.Rate
	case domain.PricingPerFoot:
		length := decimal.NewFromFloat(cfg.EffectiveLength())
		q.LengthFeet = length
		q.BasePrice = length.Mul(svc.Rate)

		lines, err := e.resolveSurcharges(svc, cfg)
		if err != nil {
			return QuoteBreakdown{}, err
		}
		price := q.BasePrice
		for i := range lines {
			factor := decimal.New(int64(lines[i].Percent), -2)
			if e.composition == CompositionAdditive {
				lines[i].Amount = q.BasePrice.Mul(factor)
			} else {
				lines[i].Amount = price.Mul(factor)
			}
			price = price.Add(lines[i].Amount)
			q.TotalSurcharges = q.TotalSurcharges.Add(lines[i].Amount)
		}
		q.Surcharges = lines
		q.Subtotal = price
	default:
		return QuoteBreakdown{}, &domain.UnknownServiceError{Key: svc.Key}
	}

	if svc.HasStep(domain.StepAnodes) && cfg.AnodeCount > 0 {
		q.Anodes = AnodeLine{
			Count:     cfg.AnodeCount,
			UnitPrice: e.anodeRate,
			Amount:    e.anodeRate.Mul(decimal.NewFromInt(int64(cfg.AnodeCount))),
		}
		q.Subtotal = q.Subtotal.Add(q.Anodes.Amount)
	}

	q.RoundedTotal = RoundToTen(q.Subtotal)
	q.ChargedTotal = q.RoundedTotal
	if svc.MinimumCharge.IsPositive() && q.Subtotal.LessThan(svc.MinimumCharge) {
		q.MinimumApplied = true
		q.ChargedTotal = RoundToTen(svc.MinimumCharge)
	}
	return q, nil
}

// resolveSurcharges returns the factors in application order:
// hull, growth, propulsion, engines, then paint.
func (e *Engine) resolveSurcharges(svc domain.ServiceDefinition, cfg domain.BoatConfiguration) ([]SurchargeLine, error) {
	var lines []SurchargeLine

	add := func(attr domain.Attribute, value string) error {
		pct, err := e.surcharges.Lookup(attr, value)
		if err != nil {
			return err
		}
		lines = append(lines, SurchargeLine{
			Attribute: attr,
			Label:     fmt.Sprintf("%s (%s)", attributeLabels[attr], titleCase(value)),
			Value:     value,
			Percent:   pct,
		})
		return nil
	}

	if err := add(domain.AttrHull, string(cfg.HullType)); err != nil {
		return nil, err
	}
	if svc.GrowthAffectsPrice {
		bucket := e.growth.Resolve(cfg.GrowthLevel)
		lines = append(lines, SurchargeLine{
			Attribute: domain.AttrGrowth,
			Label:     fmt.Sprintf("%s (%s)", attributeLabels[domain.AttrGrowth], bucket.Label),
			Value:     bucket.Label,
			Percent:   bucket.Percent,
		})
	}
	if err := add(domain.AttrPropulsion, string(cfg.PropulsionType)); err != nil {
		return nil, err
	}
	if err := add(domain.AttrEngines, string(cfg.EngineCount)); err != nil {
		return nil, err
	}
	if svc.PaintAffectsPrice {
		if err := add(domain.AttrPaint, string(cfg.PaintCondition)); err != nil {
			return nil, err
		}
	}
	return lines, nil
}

// RoundToTen rounds half-up to the nearest 10 dollars.
func RoundToTen(d decimal.Decimal) decimal.Decimal {
	return d.Shift(-1).Round(0).Shift(1)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
