package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"library-console/api"
	"library-console/policy"
	"library-console/report"
)

func newTransactionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "Record loans and returns",
	}
	cmd.AddCommand(
		newTransactionsListCmd(app),
		newTransactionsIssueCmd(app),
		newTransactionsReturnCmd(app),
		newTransactionsReportCmd(app),
	)
	return cmd
}

func newTransactionsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}
			ts, err := app.API.Transactions().List(cmd.Context())
			if err != nil {
				return app.surface(err)
			}
			app.renderTransactions(ts)
			return nil
		},
	}
}

func newTransactionsIssueCmd(app *App) *cobra.Command {
	var bookID, memberID int64

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a book to a member",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}
			if bookID == 0 || memberID == 0 {
				return fmt.Errorf("--book and --member are required")
			}

			created, err := app.API.Transactions().Issue(cmd.Context(), bookID, memberID)
			if err != nil {
				return app.surface(err)
			}

			title := fmt.Sprintf("book %d", bookID)
			if created.Book != nil {
				title = fmt.Sprintf("'%s'", created.Book.Title)
			}
			borrower := fmt.Sprintf("member %d", memberID)
			if created.Member != nil {
				borrower = created.Member.Name
			}
			app.printf("Issued %s to %s (transaction %d)\n", title, borrower, created.ID)
			app.record("issue", "transaction", created.ID, fmt.Sprintf("book=%d member=%d", bookID, memberID))
			return app.reloadTransactions(cmd.Context())
		},
	}

	cmd.Flags().Int64Var(&bookID, "book", 0, "book ID")
	cmd.Flags().Int64Var(&memberID, "member", 0, "member ID")
	return cmd
}

func newTransactionsReturnCmd(app *App) *cobra.Command {
	var dateStr string

	cmd := &cobra.Command{
		Use:   "return <transaction-id>",
		Short: "Process a book return",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid transaction ID: %s", args[0])
			}

			returnDate := time.Now()
			if dateStr != "" {
				returnDate, err = time.Parse("2006-01-02", dateStr)
				if err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", dateStr)
				}
			}

			updated, err := app.API.Transactions().Return(cmd.Context(), id, returnDate)
			if err != nil {
				// The backend rejects returns that would push the member's
				// debt over the ceiling; its message is the whole story.
				return app.surface(err)
			}

			app.printf("Book returned (transaction %d)", updated.ID)
			if updated.RentFee != nil {
				app.printf(", rent fee KES %.2f", *updated.RentFee)
			}
			app.println()
			app.record("return", "transaction", id, returnDate.Format("2006-01-02"))
			return app.reloadTransactions(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "return date as YYYY-MM-DD (default today)")
	return cmd
}

func newTransactionsReportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export the transaction report as PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			ts, err := app.API.Transactions().List(cmd.Context())
			if err != nil {
				return app.surface(err)
			}
			if len(ts) == 0 {
				return fmt.Errorf("no transactions to report on")
			}

			path := app.reportPath(out, "Transaction_Report.pdf")
			if err := app.writeReport(path, func(w io.Writer) error {
				return report.Transactions(w, ts, time.Now())
			}); err != nil {
				return fmt.Errorf("generate report: %w", err)
			}
			app.printf("Report written to %s\n", path)
			app.record("export", "transaction-report", 0, path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default Transaction_Report.pdf in the report directory)")
	return cmd
}

func (a *App) reloadTransactions(ctx context.Context) error {
	ts, err := a.API.Transactions().List(ctx)
	if err != nil {
		return a.surface(err)
	}
	a.renderTransactions(ts)
	return nil
}

func (a *App) renderTransactions(ts []api.Transaction) {
	if len(ts) == 0 {
		a.println("No transactions recorded.")
		return
	}
	now := time.Now()
	a.printf("%-5s %-35s %-25s %-12s %-12s %-12s %s\n",
		"ID", "Book", "Borrower", "Issued", "Returned", "Rent Fee", "Status")
	a.println(strings.Repeat("-", 115))
	for i := range ts {
		t := &ts[i]
		book, borrower := "N/A", "N/A"
		if t.Book != nil {
			book = t.Book.Title
		}
		if t.Member != nil {
			borrower = t.Member.Name
		}
		returned, fee := "-", "-"
		if t.ReturnDate != nil {
			returned = t.ReturnDate.Format("2006-01-02")
		}
		if t.RentFee != nil {
			fee = fmt.Sprintf("KES %.2f", *t.RentFee)
		}

		status := "open"
		switch {
		case t.ReturnDate != nil:
			status = "returned"
		case policy.IsOverdue(t, now):
			status = fmt.Sprintf("overdue (%dd)", policy.DaysOverdue(t, now))
		}

		a.printf("%-5d %-35s %-25s %-12s %-12s %-12s %s\n",
			t.ID,
			truncateString(book, 35),
			truncateString(borrower, 25),
			t.IssueDate.Format("2006-01-02"),
			returned,
			fee,
			status)
	}
}
