// Package catalog assembles the service catalog and pricing tables the
// engine runs on, from the built-in defaults, a YAML file or a database.
package catalog

import (
	"context"
	"fmt"
	"os"

	"divequote/internal/domain"
	"divequote/internal/pricing"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ServiceSource yields service definitions, e.g. a database table.
type ServiceSource interface {
	LoadServices(ctx context.Context) ([]domain.ServiceDefinition, error)
}

// Settings is everything an engine needs besides the composition mode.
type Settings struct {
	Catalog    *domain.Catalog
	Surcharges pricing.SurchargeTable
	Growth     *pricing.GrowthInterpolator
	AnodeRate  decimal.Decimal
}

func (s *Settings) EngineOptions() []pricing.Option {
	return []pricing.Option{
		pricing.WithSurcharges(s.Surcharges),
		pricing.WithGrowthInterpolator(s.Growth),
		pricing.WithAnodeRate(s.AnodeRate),
	}
}

// NewEngine builds an engine over the settings.
func (s *Settings) NewEngine(composition pricing.Composition) *pricing.Engine {
	opts := append(s.EngineOptions(), pricing.WithComposition(composition))
	return pricing.NewEngine(s.Catalog, opts...)
}

func Builtin() *Settings {
	return &Settings{
		Catalog:    domain.DefaultCatalog(),
		Surcharges: pricing.DefaultSurcharges(),
		Growth:     pricing.DefaultGrowthInterpolator(),
		AnodeRate:  pricing.DefaultAnodeRate,
	}
}

// FromSource loads services from src and pairs them with the default tables.
func FromSource(ctx context.Context, src ServiceSource) (*Settings, error) {
	defs, err := src.LoadServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("load services: %w", err)
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("service source returned no services")
	}
	c, err := domain.NewCatalog(defs...)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}

	s := Builtin()
	s.Catalog = c
	return s, nil
}

type fileSchema struct {
	AnodeRate  string                 `yaml:"anode_rate"`
	Services   []serviceSchema        `yaml:"services"`
	Surcharges pricing.SurchargeTable `yaml:"surcharges"`
	Growth     []pricing.GrowthBucket `yaml:"growth"`
}

type serviceSchema struct {
	Key                string        `yaml:"key"`
	Name               string        `yaml:"name"`
	Description        string        `yaml:"description"`
	Mode               string        `yaml:"mode"`
	Rate               string        `yaml:"rate"`
	IncludesAnodeStep  bool          `yaml:"includes_anode_step"`
	PaintAffectsPrice  bool          `yaml:"paint_affects_price"`
	GrowthAffectsPrice bool          `yaml:"growth_affects_price"`
	MinimumCharge      string        `yaml:"minimum_charge"`
	Steps              []domain.Step `yaml:"steps"`
}

func LoadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a YAML catalog. Sections that are left out keep their
// built-in values; surcharge entries are merged over the defaults.
func Parse(data []byte) (*Settings, error) {
	var f fileSchema
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	s := Builtin()

	if len(f.Services) > 0 {
		defs := make([]domain.ServiceDefinition, 0, len(f.Services))
		for _, svc := range f.Services {
			def, err := svc.toDefinition()
			if err != nil {
				return nil, err
			}
			defs = append(defs, def)
		}
		c, err := domain.NewCatalog(defs...)
		if err != nil {
			return nil, err
		}
		s.Catalog = c
	}

	if len(f.Surcharges) > 0 {
		s.Surcharges = s.Surcharges.Merge(f.Surcharges)
		if err := s.Surcharges.Validate(); err != nil {
			return nil, err
		}
	}

	if len(f.Growth) > 0 {
		g, err := pricing.NewGrowthInterpolator(f.Growth)
		if err != nil {
			return nil, err
		}
		s.Growth = g
	}

	if f.AnodeRate != "" {
		rate, err := parseMoney("anode_rate", f.AnodeRate)
		if err != nil {
			return nil, err
		}
		s.AnodeRate = rate
	}

	return s, nil
}

func (svc serviceSchema) toDefinition() (domain.ServiceDefinition, error) {
	rate, err := parseMoney(svc.Key+".rate", svc.Rate)
	if err != nil {
		return domain.ServiceDefinition{}, err
	}
	minimum := decimal.Zero
	if svc.MinimumCharge != "" {
		if minimum, err = parseMoney(svc.Key+".minimum_charge", svc.MinimumCharge); err != nil {
			return domain.ServiceDefinition{}, err
		}
	}
	return domain.ServiceDefinition{
		Key:                svc.Key,
		DisplayName:        svc.Name,
		Description:        svc.Description,
		Mode:               domain.PricingMode(svc.Mode),
		Rate:               rate,
		IncludesAnodeStep:  svc.IncludesAnodeStep,
		PaintAffectsPrice:  svc.PaintAffectsPrice,
		GrowthAffectsPrice: svc.GrowthAffectsPrice,
		MinimumCharge:      minimum,
		StepSequence:       svc.Steps,
	}, nil
}

func parseMoney(field, v string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s: invalid amount %q: %w", field, v, err)
	}
	return d, nil
}
