package domain

import "github.com/shopspring/decimal"

const (
	ServiceRecurringCleaning    = "recurring_cleaning"
	ServiceOnetimeCleaning      = "onetime_cleaning"
	ServiceUnderwaterInspection = "underwater_inspection"
	ServiceItemRecovery         = "item_recovery"
	ServicePropeller            = "propeller_service"
	ServiceAnodesOnly           = "anodes_only"
)

// DefaultServices is the built-in service list used when no catalog source
// is configured.
func DefaultServices() []ServiceDefinition {
	return []ServiceDefinition{
		{
			Key:                ServiceRecurringCleaning,
			DisplayName:        "Recurring Cleaning & Anodes",
			Description:        "Regular hull cleaning with zinc anode inspection at 1, 2, 3 or 6-month intervals.",
			Mode:               PricingPerFoot,
			Rate:               decimal.RequireFromString("4.50"),
			IncludesAnodeStep:  true,
			GrowthAffectsPrice: true,
		},
		{
			Key:                ServiceOnetimeCleaning,
			DisplayName:        "One-time Cleaning & Anodes",
			Description:        "Complete hull cleaning and zinc anode inspection, e.g. before a haul-out or survey.",
			Mode:               PricingPerFoot,
			Rate:               decimal.RequireFromString("6.00"),
			IncludesAnodeStep:  true,
			GrowthAffectsPrice: true,
		},
		{
			Key:           ServiceUnderwaterInspection,
			DisplayName:   "Underwater Inspection",
			Description:   "Underwater inspection with photo/video documentation. $4 per foot, $150 minimum.",
			Mode:          PricingPerFoot,
			Rate:          decimal.NewFromInt(4),
			MinimumCharge: decimal.NewFromInt(150),
		},
		{
			Key:         ServiceItemRecovery,
			DisplayName: "Item Recovery",
			Description: "Recovery of lost items such as phones, keys or tools. Up to 45 minutes of searching.",
			Mode:        PricingFlatRate,
			Rate:        decimal.NewFromInt(199),
		},
		{
			Key:         ServicePropeller,
			DisplayName: "Propeller Removal/Installation",
			Description: "Propeller removal or installation, $349 per propeller.",
			Mode:        PricingFlatRate,
			Rate:        decimal.NewFromInt(349),
		},
		{
			Key:         ServiceAnodesOnly,
			DisplayName: "Anodes Only",
			Description: "Zinc anode inspection and replacement without hull cleaning.",
			Mode:        PricingFlatRate,
			Rate:        decimal.NewFromInt(150),
		},
	}
}

func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultServices()...)
	if err != nil {
		panic(err)
	}
	return c
}
