package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newActivityCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show recent console activity (local log)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.History == nil {
				app.println("Activity logging is disabled.")
				return nil
			}
			entries, err := app.History.Recent(limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				app.println("No activity recorded yet.")
				return nil
			}

			app.printf("%-20s %-15s %-10s %-15s %-8s %s\n", "When", "Actor", "Action", "Entity", "ID", "Detail")
			app.println(strings.Repeat("-", 90))
			for _, e := range entries {
				id := "-"
				if e.EntityID != 0 {
					id = strconv.FormatInt(e.EntityID, 10)
				}
				app.printf("%-20s %-15s %-10s %-15s %-8s %s\n",
					e.OccurredAt.Local().Format("2006-01-02 15:04:05"),
					truncateString(e.Actor, 15),
					e.Action,
					e.Entity,
					id,
					truncateString(e.Detail, 40))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show")
	return cmd
}
