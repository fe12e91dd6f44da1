package report

import (
	"bytes"
	"testing"
	"time"

	"divequote/internal/domain"
	"divequote/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var createdAt = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

func openRows(t *testing.T, data []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	assert.Equal(t, []string{sheet}, f.GetSheetList())
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	return rows
}

func find(rows [][]string, label string) []string {
	for _, r := range rows {
		if len(r) > 0 && r[0] == label {
			return r
		}
	}
	return nil
}

func TestQuoteWorkbook_LengthPriced(t *testing.T) {
	engine := pricing.NewEngine(nil)
	cfg := domain.BoatConfiguration{
		LengthFeet:  55,
		HullType:    domain.HullCatamaran,
		EngineCount: domain.EnginesTwin,
		GrowthLevel: 70,
	}
	q, err := engine.Quote(domain.ServiceOnetimeCleaning, cfg)
	require.NoError(t, err)

	data, err := QuoteWorkbook(q, cfg.Normalized(), createdAt)
	require.NoError(t, err)
	rows := openRows(t, data)

	assert.Equal(t, []string{"Service", "One-time Cleaning & Anodes"}, find(rows, "Service"))
	assert.Equal(t, []string{"Created at", "2025-06-01 09:30"}, find(rows, "Created at"))
	assert.Equal(t, []string{"Hull", "catamaran"}, find(rows, "Hull"))
	assert.Equal(t, []string{"Base", "$6.00/ft", "330"}, find(rows, "Base"))
	assert.Equal(t, []string{"Hull (Catamaran)", "+25%", "82.5"}, find(rows, "Hull (Catamaran)"))
	assert.Equal(t, []string{"Subtotal", "", "794.0625"}, find(rows, "Subtotal"))
	assert.Equal(t, []string{"Total", "", "790"}, find(rows, "Total"))
	assert.Nil(t, find(rows, "Minimum charge applied"))
}

func TestQuoteWorkbook_FlatRateHasNoBoatSection(t *testing.T) {
	q, err := pricing.NewEngine(nil).Quote(domain.ServiceItemRecovery, domain.DefaultBoatConfiguration())
	require.NoError(t, err)

	data, err := QuoteWorkbook(q, domain.DefaultBoatConfiguration(), createdAt)
	require.NoError(t, err)
	rows := openRows(t, data)

	assert.Nil(t, find(rows, "Boat"))
	assert.Equal(t, []string{"Flat rate", "", "199"}, find(rows, "Flat rate"))
	assert.Equal(t, []string{"Total", "", "200"}, find(rows, "Total"))
}

func TestQuoteWorkbook_MinimumCharge(t *testing.T) {
	cfg := domain.BoatConfiguration{LengthFeet: 20}
	q, err := pricing.NewEngine(nil).Quote(domain.ServiceUnderwaterInspection, cfg)
	require.NoError(t, err)

	data, err := QuoteWorkbook(q, cfg.Normalized(), createdAt)
	require.NoError(t, err)
	rows := openRows(t, data)

	assert.Equal(t, []string{"Rounded total", "", "80"}, find(rows, "Rounded total"))
	assert.Equal(t, []string{"Minimum charge applied", "", "150"}, find(rows, "Minimum charge applied"))
	assert.Equal(t, []string{"Total", "", "150"}, find(rows, "Total"))
}

func TestFilename(t *testing.T) {
	q := pricing.QuoteBreakdown{ServiceKey: "item_recovery"}
	assert.Equal(t, "quote_item_recovery_20250601_0930.xlsx", Filename(q, createdAt))
}
