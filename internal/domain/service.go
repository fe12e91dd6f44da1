package domain

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

type PricingMode string

const (
	PricingPerFoot  PricingMode = "per_foot"
	PricingFlatRate PricingMode = "flat"
)

// Step is one screen of the configuration wizard.
type Step string

const (
	StepSelection      Step = "selection"
	StepBoatLength     Step = "boat_length"
	StepHullAndEngine  Step = "hull_engine"
	StepPaintCondition Step = "paint_condition"
	StepGrowthLevel    Step = "growth_level"
	StepAnodes         Step = "anodes"
	StepResults        Step = "results"
)

var knownSteps = map[Step]bool{
	StepSelection:      true,
	StepBoatLength:     true,
	StepHullAndEngine:  true,
	StepPaintCondition: true,
	StepGrowthLevel:    true,
	StepAnodes:         true,
	StepResults:        true,
}

func FlatRateSteps() []Step {
	return []Step{StepSelection, StepResults}
}

// LengthPricedSteps lists the screens of a per-foot service. The growth
// screen is only shown when growth changes the price.
func LengthPricedSteps(includeGrowth, includeAnodes bool) []Step {
	steps := []Step{StepSelection, StepBoatLength, StepHullAndEngine, StepPaintCondition}
	if includeGrowth {
		steps = append(steps, StepGrowthLevel)
	}
	if includeAnodes {
		steps = append(steps, StepAnodes)
	}
	return append(steps, StepResults)
}

// ServiceDefinition describes how a service is priced and which wizard
// steps collect its inputs.
type ServiceDefinition struct {
	Key         string
	DisplayName string
	Description string
	Mode        PricingMode
	// Rate is dollars per foot for PricingPerFoot and the fixed amount for
	// PricingFlatRate.
	Rate               decimal.Decimal
	IncludesAnodeStep  bool
	PaintAffectsPrice  bool
	GrowthAffectsPrice bool
	MinimumCharge      decimal.Decimal
	StepSequence       []Step
}

func (s ServiceDefinition) IsLengthPriced() bool {
	return s.Mode == PricingPerFoot
}

// Validate checks the definition is usable by the engine and wizard.
func (s ServiceDefinition) Validate() error {
	if s.Key == "" {
		return fmt.Errorf("service key is empty")
	}
	if s.Mode != PricingPerFoot && s.Mode != PricingFlatRate {
		return fmt.Errorf("service %q: unknown pricing mode %q", s.Key, s.Mode)
	}
	if s.Rate.IsNegative() {
		return fmt.Errorf("service %q: negative rate %s", s.Key, s.Rate)
	}
	if s.MinimumCharge.IsNegative() {
		return fmt.Errorf("service %q: negative minimum charge %s", s.Key, s.MinimumCharge)
	}
	n := len(s.StepSequence)
	if n < 2 || s.StepSequence[0] != StepSelection || s.StepSequence[n-1] != StepResults {
		return fmt.Errorf("service %q: step sequence must start with %q and end with %q", s.Key, StepSelection, StepResults)
	}
	for _, step := range s.StepSequence {
		if !knownSteps[step] {
			return fmt.Errorf("service %q: unknown step %q", s.Key, step)
		}
	}
	if s.Mode == PricingFlatRate && n != 2 {
		return fmt.Errorf("service %q: flat-rate services only use %q and %q", s.Key, StepSelection, StepResults)
	}
	if s.Mode == PricingPerFoot && !s.HasStep(StepBoatLength) {
		return fmt.Errorf("service %q: per-foot services need the %q step", s.Key, StepBoatLength)
	}
	if s.HasStep(StepAnodes) != s.IncludesAnodeStep {
		return fmt.Errorf("service %q: anode step does not match includes_anode_step=%t", s.Key, s.IncludesAnodeStep)
	}
	return nil
}

func (s ServiceDefinition) HasStep(step Step) bool {
	for _, st := range s.StepSequence {
		if st == step {
			return true
		}
	}
	return false
}

// Catalog maps service keys to definitions. It is built once at startup
// and only read afterwards.
type Catalog struct {
	services map[string]ServiceDefinition
	order    []string
}

// NewCatalog validates the definitions and keeps their order for display.
// Missing step sequences are derived from the pricing mode.
func NewCatalog(defs ...ServiceDefinition) (*Catalog, error) {
	c := &Catalog{services: make(map[string]ServiceDefinition, len(defs))}
	for _, def := range defs {
		if len(def.StepSequence) == 0 {
			def.StepSequence = DefaultSteps(def)
		}
		if err := def.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.services[def.Key]; dup {
			return nil, fmt.Errorf("duplicate service %q", def.Key)
		}
		c.services[def.Key] = def
		c.order = append(c.order, def.Key)
	}
	return c, nil
}

func DefaultSteps(def ServiceDefinition) []Step {
	if def.Mode == PricingFlatRate {
		return FlatRateSteps()
	}
	return LengthPricedSteps(def.GrowthAffectsPrice, def.IncludesAnodeStep)
}

func (c *Catalog) Get(key string) (ServiceDefinition, error) {
	def, ok := c.services[key]
	if !ok {
		return ServiceDefinition{}, &UnknownServiceError{Key: key}
	}
	return def, nil
}

func (c *Catalog) Has(key string) bool {
	_, ok := c.services[key]
	return ok
}

// Services returns definitions in catalog order.
func (c *Catalog) Services() []ServiceDefinition {
	out := make([]ServiceDefinition, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.services[key])
	}
	return out
}

func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.order))
	copy(keys, c.order)
	sort.Strings(keys)
	return keys
}
