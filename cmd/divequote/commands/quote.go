package commands

import (
	"fmt"
	"os"
	"time"

	"divequote/internal/domain"
	"divequote/internal/pricing"
	"divequote/internal/report"

	"github.com/spf13/cobra"
)

type quoteFlags struct {
	service     string
	length      float64
	hull        string
	propulsion  string
	engines     string
	paint       string
	growth      float64
	anodes      int
	composition string
	xlsx        string
}

func quoteCmd(app *appContext) *cobra.Command {
	var f quoteFlags

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a service for a boat",
		Example: `  divequote quote --service onetime_cleaning --length 55 --hull catamaran --engines twin --growth 70
  divequote quote --service item_recovery`,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := buildEngine(cmd.Context(), app, f.composition)
			if err != nil {
				return err
			}

			cfg, err := f.boat()
			if err != nil {
				return err
			}

			q, err := engine.Quote(f.service, cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, q.ServiceName)
			for _, line := range pricing.Format(q) {
				fmt.Fprintln(out, line)
			}

			if f.xlsx != "" {
				data, err := report.QuoteWorkbook(q, cfg.Normalized(), time.Now())
				if err != nil {
					return err
				}
				if err := os.WriteFile(f.xlsx, data, 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", f.xlsx, err)
				}
				fmt.Fprintf(out, "Saved %s\n", f.xlsx)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.service, "service", "s", "", "service key, see the services command")
	cmd.Flags().Float64VarP(&f.length, "length", "l", domain.DefaultLengthFeet, "boat length in feet")
	cmd.Flags().StringVar(&f.hull, "hull", "", "monohull, catamaran or trimaran")
	cmd.Flags().StringVar(&f.propulsion, "propulsion", "", "sailboat or powerboat")
	cmd.Flags().StringVar(&f.engines, "engines", "", "single or twin")
	cmd.Flags().StringVar(&f.paint, "paint", "", "excellent, good, fair, poor or missing")
	cmd.Flags().Float64VarP(&f.growth, "growth", "g", 0, "growth slider position, 0-100")
	cmd.Flags().IntVar(&f.anodes, "anodes", 0, "anodes to install")
	cmd.Flags().StringVar(&f.composition, "composition", "", "compounding or additive (default from PRICING_COMPOSITION)")
	cmd.Flags().StringVar(&f.xlsx, "xlsx", "", "also write the quote to this xlsx file")
	_ = cmd.MarkFlagRequired("service")

	return cmd
}

// boat converts flags to a configuration. Empty enum flags keep defaults.
func (f quoteFlags) boat() (domain.BoatConfiguration, error) {
	cfg := domain.BoatConfiguration{
		LengthFeet:  f.length,
		GrowthLevel: f.growth,
		AnodeCount:  f.anodes,
	}

	var err error
	if f.hull != "" {
		if cfg.HullType, err = domain.ParseHullType(f.hull); err != nil {
			return cfg, err
		}
	}
	if f.propulsion != "" {
		if cfg.PropulsionType, err = domain.ParsePropulsionType(f.propulsion); err != nil {
			return cfg, err
		}
	}
	if f.engines != "" {
		if cfg.EngineCount, err = domain.ParseEngineCount(f.engines); err != nil {
			return cfg, err
		}
	}
	if f.paint != "" {
		if cfg.PaintCondition, err = domain.ParsePaintCondition(f.paint); err != nil {
			return cfg, err
		}
	}
	return cfg.Normalized(), nil
}
