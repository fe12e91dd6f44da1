package pricing

import (
	"fmt"

	"divequote/internal/domain"
)

// SurchargeTable maps attribute values to percentage modifiers.
type SurchargeTable map[domain.Attribute]map[string]int

func DefaultSurcharges() SurchargeTable {
	return SurchargeTable{
		domain.AttrHull: {
			string(domain.HullMonohull):  0,
			string(domain.HullCatamaran): 25,
			string(domain.HullTrimaran):  50,
		},
		domain.AttrPropulsion: {
			string(domain.PropulsionSailboat):  0,
			string(domain.PropulsionPowerboat): 25,
		},
		domain.AttrEngines: {
			string(domain.EnginesSingle): 0,
			string(domain.EnginesTwin):   10,
		},
		domain.AttrPaint: {
			string(domain.PaintExcellent): 0,
			string(domain.PaintGood):      0,
			string(domain.PaintFair):      0,
			string(domain.PaintPoor):      10,
			string(domain.PaintMissing):   15,
		},
	}
}

// Lookup returns the percentage for value. Whether the caller applies it
// is its own decision; the table has no notion of context.
func (t SurchargeTable) Lookup(attr domain.Attribute, value string) (int, error) {
	values, ok := t[attr]
	if !ok {
		return 0, &domain.InvalidAttributeError{Attribute: attr, Value: value}
	}
	pct, ok := values[value]
	if !ok {
		return 0, &domain.InvalidAttributeError{Attribute: attr, Value: value}
	}
	return pct, nil
}

// Merge returns a copy of t with entries from override replacing or adding
// to its own.
func (t SurchargeTable) Merge(override SurchargeTable) SurchargeTable {
	out := make(SurchargeTable, len(t))
	for attr, values := range t {
		out[attr] = make(map[string]int, len(values))
		for v, pct := range values {
			out[attr][v] = pct
		}
	}
	for attr, values := range override {
		if out[attr] == nil {
			out[attr] = make(map[string]int, len(values))
		}
		for v, pct := range values {
			out[attr][v] = pct
		}
	}
	return out
}

func (t SurchargeTable) Validate() error {
	for attr, values := range t {
		for v, pct := range values {
			if pct < 0 {
				return fmt.Errorf("surcharge %s=%s is negative (%d%%)", attr, v, pct)
			}
		}
	}
	return nil
}
