package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"library-console/report"
)

func newReportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export the comprehensive library report as PDF",
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

			path := app.reportPath(out, "Comprehensive_Library_Report.pdf")
			if err := app.writeReport(path, func(w io.Writer) error {
				return report.Comprehensive(w, books, members, ts, time.Now())
			}); err != nil {
				return fmt.Errorf("generate report: %w", err)
			}
			app.printf("Report written to %s\n", path)
			app.record("export", "comprehensive-report", 0, path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default Comprehensive_Library_Report.pdf in the report directory)")
	return cmd
}
