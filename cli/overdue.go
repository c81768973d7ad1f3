package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"library-console/policy"
	"library-console/report"
)

func newOverdueCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overdue",
		Short: "Inspect overdue loans",
	}
	cmd.AddCommand(newOverdueListCmd(app), newOverdueReportCmd(app))
	return cmd
}

func newOverdueListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List open loans past the 14-day period",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			ts, err := app.API.Transactions().List(cmd.Context())
			if err != nil {
				return app.surface(err)
			}

			now := time.Now()
			overdue := policy.Overdue(ts, now)
			if len(overdue) == 0 {
				app.println("No overdue books found.")
				return nil
			}

			app.printf("%-4s %-35s %-25s %-12s %s\n", "#", "Title", "Author", "Issued", "Days Overdue")
			app.println(strings.Repeat("-", 90))
			for i := range overdue {
				t := &overdue[i]
				title, author := "N/A", "N/A"
				if t.Book != nil {
					title, author = t.Book.Title, t.Book.Author
				}
				app.printf("%-4d %-35s %-25s %-12s %d\n",
					i+1,
					truncateString(title, 35),
					truncateString(author, 25),
					t.IssueDate.Format("2006-01-02"),
					policy.DaysOverdue(t, now))
			}
			return nil
		},
	}
}

func newOverdueReportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export the overdue loans report as PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			ts, err := app.API.Transactions().List(cmd.Context())
			if err != nil {
				return app.surface(err)
			}

			now := time.Now()
			overdue := policy.Overdue(ts, now)

			path := app.reportPath(out, "Overdue_Books_Report.pdf")
			if err := app.writeReport(path, func(w io.Writer) error {
				return report.Overdue(w, overdue, now)
			}); err != nil {
				return fmt.Errorf("generate report: %w", err)
			}
			app.printf("Report written to %s\n", path)
			app.record("export", "overdue-report", 0, path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default Overdue_Books_Report.pdf in the report directory)")
	return cmd
}
