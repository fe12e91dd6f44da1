package domain

import "math"

type HullType string

const (
	HullMonohull  HullType = "monohull"
	HullCatamaran HullType = "catamaran"
	HullTrimaran  HullType = "trimaran"
)

type PropulsionType string

const (
	PropulsionSailboat  PropulsionType = "sailboat"
	PropulsionPowerboat PropulsionType = "powerboat"
)

type EngineCount string

const (
	EnginesSingle EngineCount = "single"
	EnginesTwin   EngineCount = "twin"
)

type PaintCondition string

const (
	PaintExcellent PaintCondition = "excellent"
	PaintGood      PaintCondition = "good"
	PaintFair      PaintCondition = "fair"
	PaintPoor      PaintCondition = "poor"
	PaintMissing   PaintCondition = "missing"
)

// Attribute names a configurable boat field.
type Attribute string

const (
	AttrLength     Attribute = "length"
	AttrHull       Attribute = "hull"
	AttrPropulsion Attribute = "propulsion"
	AttrEngines    Attribute = "engines"
	AttrPaint      Attribute = "paint"
	AttrGrowth     Attribute = "growth"
	AttrAnodes     Attribute = "anodes"
)

const (
	DefaultLengthFeet = 30.0
	MinGrowthLevel    = 0.0
	MaxGrowthLevel    = 100.0
)

// BoatConfiguration is the attribute set collected by the wizard.
type BoatConfiguration struct {
	LengthFeet     float64        `json:"length_feet"`
	HullType       HullType       `json:"hull_type"`
	PropulsionType PropulsionType `json:"propulsion_type"`
	EngineCount    EngineCount    `json:"engine_count"`
	PaintCondition PaintCondition `json:"paint_condition"`
	GrowthLevel    float64        `json:"growth_level"`
	AnodeCount     int            `json:"anode_count"`
}

func DefaultBoatConfiguration() BoatConfiguration {
	return BoatConfiguration{
		LengthFeet:     DefaultLengthFeet,
		HullType:       HullMonohull,
		PropulsionType: PropulsionSailboat,
		EngineCount:    EnginesSingle,
		PaintCondition: PaintExcellent,
		GrowthLevel:    MinGrowthLevel,
	}
}

// EffectiveLength returns the length used for pricing. Missing or invalid
// lengths fall back to DefaultLengthFeet so a quote is always computable.
func (c BoatConfiguration) EffectiveLength() float64 {
	if math.IsNaN(c.LengthFeet) || math.IsInf(c.LengthFeet, 0) || c.LengthFeet <= 0 {
		return DefaultLengthFeet
	}
	return c.LengthFeet
}

// Normalized fills unset fields with defaults and pins numeric fields to
// their ranges. Enum values that are set but unknown are left alone.
func (c BoatConfiguration) Normalized() BoatConfiguration {
	d := DefaultBoatConfiguration()
	c.LengthFeet = c.EffectiveLength()
	if c.HullType == "" {
		c.HullType = d.HullType
	}
	if c.PropulsionType == "" {
		c.PropulsionType = d.PropulsionType
	}
	if c.EngineCount == "" {
		c.EngineCount = d.EngineCount
	}
	if c.PaintCondition == "" {
		c.PaintCondition = d.PaintCondition
	}
	c.GrowthLevel = ClampGrowth(c.GrowthLevel)
	if c.AnodeCount < 0 {
		c.AnodeCount = 0
	}
	return c
}

// ClampGrowth pins a slider position to [0,100]. NaN is treated as 0.
func ClampGrowth(v float64) float64 {
	switch {
	case math.IsNaN(v), v < MinGrowthLevel:
		return MinGrowthLevel
	case v > MaxGrowthLevel:
		return MaxGrowthLevel
	default:
		return v
	}
}

func ParseHullType(s string) (HullType, error) {
	switch h := HullType(s); h {
	case HullMonohull, HullCatamaran, HullTrimaran:
		return h, nil
	}
	return "", &InvalidAttributeError{Attribute: AttrHull, Value: s}
}

func ParsePropulsionType(s string) (PropulsionType, error) {
	switch p := PropulsionType(s); p {
	case PropulsionSailboat, PropulsionPowerboat:
		return p, nil
	}
	return "", &InvalidAttributeError{Attribute: AttrPropulsion, Value: s}
}

func ParseEngineCount(s string) (EngineCount, error) {
	switch e := EngineCount(s); e {
	case EnginesSingle, EnginesTwin:
		return e, nil
	}
	return "", &InvalidAttributeError{Attribute: AttrEngines, Value: s}
}

func ParsePaintCondition(s string) (PaintCondition, error) {
	switch p := PaintCondition(s); p {
	case PaintExcellent, PaintGood, PaintFair, PaintPoor, PaintMissing:
		return p, nil
	}
	return "", &InvalidAttributeError{Attribute: AttrPaint, Value: s}
}
