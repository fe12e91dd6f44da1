package report

import (
	"fmt"
	"time"

	"divequote/internal/domain"
	"divequote/internal/pricing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const sheet = "Quote"

// moneyFormat is the custom number format for dollar cells.
const moneyFormat = `"$"#,##0.00`

// QuoteWorkbook renders a quote and the configuration it was computed for
// as an xlsx document.
func QuoteWorkbook(q pricing.QuoteBreakdown, cfg domain.BoatConfiguration, createdAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(moneyFormat)})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	w := &sheetWriter{f: f, row: 1, bold: bold, money: money}

	w.pair("Service", q.ServiceName)
	w.pair("Service key", q.ServiceKey)
	w.pair("Created at", createdAt.Format("2006-01-02 15:04"))
	w.pair("Composition", string(q.Composition))
	w.row++

	if q.Mode == domain.PricingPerFoot {
		w.header("Boat")
		w.pair("Length (ft)", q.LengthFeet.InexactFloat64())
		w.pair("Hull", string(cfg.HullType))
		w.pair("Propulsion", string(cfg.PropulsionType))
		w.pair("Engines", string(cfg.EngineCount))
		w.pair("Paint", string(cfg.PaintCondition))
		w.pair("Growth level", cfg.GrowthLevel)
		w.row++
	}

	w.header("Price")
	if q.Mode == domain.PricingFlatRate {
		w.amount("Flat rate", "", q.BasePrice)
	} else {
		w.amount("Base", fmt.Sprintf("%s/ft", pricing.Money(q.Rate)), q.BasePrice)
	}
	for _, s := range q.Surcharges {
		w.amount(s.Label, pricing.Percent(s.Percent), s.Amount)
	}
	if q.Anodes.Count > 0 {
		w.amount("Anode installation", fmt.Sprintf("%d @ %s", q.Anodes.Count, pricing.Money(q.Anodes.UnitPrice)), q.Anodes.Amount)
	}
	w.amount("Total surcharges", "", q.TotalSurcharges)
	w.amount("Subtotal", "", q.Subtotal)
	if q.MinimumApplied {
		w.amount("Rounded total", "", q.RoundedTotal)
		w.amount("Minimum charge applied", "", q.MinimumCharge)
	}
	w.amount("Total", "", q.ChargedTotal)
	if err := f.SetCellStyle(sheet, cell(1, w.row-1), cell(3, w.row-1), bold); err != nil {
		return nil, err
	}

	if err := f.SetColWidth(sheet, "A", "A", 32); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "B", "C", 16); err != nil {
		return nil, err
	}
	if w.err != nil {
		return nil, fmt.Errorf("failed to fill sheet: %w", w.err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename is the suggested attachment name for a quote workbook.
func Filename(q pricing.QuoteBreakdown, createdAt time.Time) string {
	return fmt.Sprintf("quote_%s_%s.xlsx", q.ServiceKey, createdAt.Format("20060102_1504"))
}

// sheetWriter appends rows and keeps the first error.
type sheetWriter struct {
	f     *excelize.File
	row   int
	bold  int
	money int
	err   error
}

func (w *sheetWriter) set(col int, v any) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellValue(sheet, cell(col, w.row), v)
}

func (w *sheetWriter) header(title string) {
	w.set(1, title)
	if w.err == nil {
		w.err = w.f.SetCellStyle(sheet, cell(1, w.row), cell(1, w.row), w.bold)
	}
	w.row++
}

func (w *sheetWriter) pair(label string, v any) {
	w.set(1, label)
	w.set(2, v)
	w.row++
}

func (w *sheetWriter) amount(label, detail string, d decimal.Decimal) {
	w.set(1, label)
	if detail != "" {
		w.set(2, detail)
	}
	w.set(3, d.InexactFloat64())
	if w.err == nil {
		w.err = w.f.SetCellStyle(sheet, cell(3, w.row), cell(3, w.row), w.money)
	}
	w.row++
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func strPtr(s string) *string { return &s }
