package pricing

import (
	"strings"
	"testing"

	"divequote/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_LengthPriced(t *testing.T) {
	e := NewEngine(nil)
	q, err := e.Quote(domain.ServiceOnetimeCleaning, compoundingScenario())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Base ($6.00/ft × 55 ft): $330.00",
		"Hull (Catamaran): +25% (+$82.50)",
		"Growth (Heavy): +75% (+$309.38)",
		"Propulsion (Sailboat): 0% ($0.00)",
		"Engines (Twin): +10% (+$72.19)",
		"Total surcharges: $464.06",
		"Total: $790.00",
	}, Format(q))
}

func TestFormat_FlatRate(t *testing.T) {
	e := NewEngine(nil)
	q, err := e.Quote(domain.ServiceItemRecovery, domain.DefaultBoatConfiguration())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Flat rate: $199.00",
		"Total surcharges: $0.00",
		"Total: $200.00",
	}, Format(q))
}

func TestFormat_AnodesAndMinimum(t *testing.T) {
	e := NewEngine(nil)

	cfg := domain.DefaultBoatConfiguration()
	cfg.AnodeCount = 3
	q, err := e.Quote(domain.ServiceRecurringCleaning, cfg)
	require.NoError(t, err)
	lines := Format(q)
	assert.Contains(t, lines, "Anode installation (3 @ $15.00): $45.00")
	assert.Equal(t, "Total: $180.00", lines[len(lines)-1])

	cfg = domain.DefaultBoatConfiguration()
	cfg.LengthFeet = 12
	q, err = e.Quote(domain.ServiceUnderwaterInspection, cfg)
	require.NoError(t, err)
	lines = Format(q)
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "Rounded total: $50.00", lines[len(lines)-3])
	assert.Equal(t, "Minimum charge applied: $150.00", lines[len(lines)-2])
	assert.Equal(t, "Total: $150.00", lines[len(lines)-1])
}

func TestFormat_ZeroEntriesShown(t *testing.T) {
	e := NewEngine(nil)
	q, err := e.Quote(domain.ServiceRecurringCleaning, domain.DefaultBoatConfiguration())
	require.NoError(t, err)

	lines := Format(q)
	for _, label := range []string{"Hull (Monohull): 0%", "Growth (Minimal): 0%", "Propulsion (Sailboat): 0%", "Engines (Single): 0%"} {
		found := false
		for _, l := range lines {
			if strings.HasPrefix(l, label) {
				found = true
			}
		}
		assert.Truef(t, found, "missing %q in %v", label, lines)
	}
}

func TestRender(t *testing.T) {
	e := NewEngine(nil)
	q, err := e.Quote(domain.ServicePropeller, domain.DefaultBoatConfiguration())
	require.NoError(t, err)

	assert.Equal(t, "Flat rate: $349.00\nTotal surcharges: $0.00\nTotal: $350.00", Render(q))
}
