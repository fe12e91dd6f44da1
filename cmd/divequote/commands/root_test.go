package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"divequote/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI in an empty directory so no .env is picked up.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	chdir(t, t.TempDir())
	t.Setenv("CATALOG_SOURCE", "builtin")
	t.Setenv("PRICING_COMPOSITION", "compounding")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCommandsExist(t *testing.T) {
	root := NewRootCmd()
	for _, name := range []string{"bot", "quote", "services", "migrate"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
	for _, name := range []string{"up", "down", "status"} {
		cmd, _, err := root.Find([]string{"migrate", name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestQuoteCompounding(t *testing.T) {
	out, err := run(t, "quote",
		"--service", "onetime_cleaning",
		"--length", "55",
		"--hull", "catamaran",
		"--engines", "twin",
		"--growth", "70")
	require.NoError(t, err)

	assert.Equal(t, `One-time Cleaning & Anodes
Base ($6.00/ft × 55 ft): $330.00
Hull (Catamaran): +25% (+$82.50)
Growth (Heavy): +75% (+$309.38)
Propulsion (Sailboat): 0% ($0.00)
Engines (Twin): +10% (+$72.19)
Total surcharges: $464.06
Total: $790.00
`, out)
}

func TestQuoteAdditive(t *testing.T) {
	out, err := run(t, "quote",
		"--service", "onetime_cleaning",
		"--length", "55",
		"--hull", "catamaran",
		"--engines", "twin",
		"--growth", "70",
		"--composition", "additive")
	require.NoError(t, err)
	assert.Contains(t, out, "Total: $690.00")
}

func TestQuoteFlatRate(t *testing.T) {
	out, err := run(t, "quote", "-s", "propeller_service", "--length", "80", "--hull", "trimaran")
	require.NoError(t, err)
	assert.Contains(t, out, "Flat rate: $349.00")
	assert.Contains(t, out, "Total: $350.00")
}

func TestQuoteWritesWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quote.xlsx")
	out, err := run(t, "quote", "-s", "item_recovery", "--xlsx", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved "+path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestQuoteErrors(t *testing.T) {
	_, err := run(t, "quote", "-s", "onetime_cleaning", "--hull", "submarine")
	var invalid *domain.InvalidAttributeError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, domain.AttrHull, invalid.Attribute)

	_, err = run(t, "quote", "-s", "teeth_whitening")
	var unknown *domain.UnknownServiceError
	assert.True(t, errors.As(err, &unknown))

	_, err = run(t, "quote", "-s", "item_recovery", "--composition", "multiplicative")
	assert.Error(t, err)

	_, err = run(t, "quote")
	assert.ErrorContains(t, err, "service")
}

func TestServicesListsCatalog(t *testing.T) {
	out, err := run(t, "services")
	require.NoError(t, err)

	assert.Contains(t, out, "KEY")
	assert.Regexp(t, `underwater_inspection\s+Underwater Inspection\s+\$4\.00/ft\s+\$150\.00`, out)
	assert.Regexp(t, `item_recovery\s+Item Recovery\s+\$199\.00\s+-`, out)
}

func TestServicesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
services:
  - key: mooring_check
    name: Mooring Check
    mode: flat
    rate: "120"
`), 0o600))

	t.Setenv("CATALOG_SOURCE", "file")
	t.Setenv("CATALOG_FILE", path)
	chdir(t, t.TempDir())

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"services"})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "mooring_check")
	assert.NotContains(t, out.String(), "item_recovery")
}

func TestBotRequiresToken(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")
	_, err := run(t, "bot")
	assert.ErrorContains(t, err, "TELEGRAM_TOKEN")
}
