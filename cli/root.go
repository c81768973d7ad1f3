package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree around the wired App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "library-console",
		Short:         "Staff console for the library management backend",
		Long:          "library-console is a terminal client for library staff: dashboards, book and member management, loan transactions, and PDF reports.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newVerifyEmailCmd(app),
		newDashboardCmd(app),
		newBooksCmd(app),
		newMembersCmd(app),
		newTransactionsCmd(app),
		newOverdueCmd(app),
		newReportCmd(app),
		newActivityCmd(app),
	)
	return root
}
