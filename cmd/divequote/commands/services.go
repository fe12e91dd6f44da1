package commands

import (
	"fmt"
	"text/tabwriter"

	"divequote/internal/pricing"

	"github.com/spf13/cobra"
)

func servicesCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "List the configured services",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd.Context(), app)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tNAME\tPRICE\tMINIMUM")
			for _, svc := range settings.Catalog.Services() {
				price := pricing.Money(svc.Rate)
				if svc.IsLengthPriced() {
					price += "/ft"
				}
				minimum := "-"
				if svc.MinimumCharge.IsPositive() {
					minimum = pricing.Money(svc.MinimumCharge)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", svc.Key, svc.DisplayName, price, minimum)
			}
			return w.Flush()
		},
	}
}
