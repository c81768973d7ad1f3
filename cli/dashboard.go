package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"library-console/policy"
	"library-console/report"
)

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show library totals and the inventory overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireAuth(ctx); err != nil {
				return err
			}

			books, err := app.API.Books().List(ctx, nil)
			if err != nil {
				return app.surface(err)
			}
			members, err := app.API.Members().List(ctx)
			if err != nil {
				return app.surface(err)
			}
			ts, err := app.API.Transactions().List(ctx)
			if err != nil {
				return app.surface(err)
			}

			now := time.Now()
			summary := report.SummarizeBooks(books)
			overdue := len(policy.Overdue(ts, now))

			app.printf("Total Books:    %d\n", summary.TotalQuantity)
			app.printf("Transactions:   %d\n", len(ts))
			app.printf("Books Overdue:  %d\n", overdue)
			app.printf("Total Members:  %d\n", len(members))
			app.println()

			// Top of the inventory, the chart's stand-in.
			app.println("Book Inventory")
			app.printf("%-35s %s\n", "Title", "Quantity")
			app.println(strings.Repeat("-", 45))
			limit := len(books)
			if limit > 20 {
				limit = 20
			}
			for _, b := range books[:limit] {
				app.printf("%-35s %d\n", truncateString(b.Title, 35), b.Quantity)
			}
			return nil
		},
	}
}
