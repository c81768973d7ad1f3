package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"library-console/api"
	"library-console/report"
)

func newMembersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members",
		Short: "Manage registered members",
	}
	cmd.AddCommand(
		newMembersListCmd(app),
		newMembersAddCmd(app),
		newMembersUpdateCmd(app),
		newMembersDeleteCmd(app),
		newMembersReportCmd(app),
	)
	return cmd
}

func newMembersListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List members",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}
			members, err := app.API.Members().List(cmd.Context())
			if err != nil {
				return app.surface(err)
			}
			app.renderMembers(members)
			return nil
		},
	}
}

func newMembersAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add",
		Short: "Register a member",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			sc := bufio.NewScanner(app.In)
			member, err := promptMember(sc, app, api.Member{})
			if err != nil {
				return err
			}

			created, err := app.API.Members().Create(cmd.Context(), member)
			if err != nil {
				return app.surface(err)
			}
			app.printf("Added member '%s' with ID %d\n", created.Name, created.ID)
			app.record("create", "member", created.ID, created.Name)
			return app.reloadMembers(cmd.Context())
		},
	}
}

func newMembersUpdateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "update <member-id>",
		Short: "Update a member's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid member ID: %s", args[0])
			}

			current, err := app.findMember(cmd.Context(), id)
			if err != nil {
				return err
			}

			sc := bufio.NewScanner(app.In)
			member, err := promptMember(sc, app, *current)
			if err != nil {
				return err
			}

			updated, err := app.API.Members().Update(cmd.Context(), id, member)
			if err != nil {
				return app.surface(err)
			}
			app.printf("Updated member '%s'\n", updated.Name)
			app.record("update", "member", id, updated.Name)
			return app.reloadMembers(cmd.Context())
		},
	}
}

func newMembersDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <member-id>",
		Short: "Remove a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid member ID: %s", args[0])
			}

			if err := app.API.Members().Delete(cmd.Context(), id); err != nil {
				return app.surface(err)
			}
			app.printf("Deleted member %d\n", id)
			app.record("delete", "member", id, "")
			return app.reloadMembers(cmd.Context())
		},
	}
}

func newMembersReportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export the member report as PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			members, err := app.API.Members().List(cmd.Context())
			if err != nil {
				return app.surface(err)
			}
			if len(members) == 0 {
				return fmt.Errorf("no members to report on")
			}

			path := app.reportPath(out, "Member_Report.pdf")
			if err := app.writeReport(path, func(w io.Writer) error {
				return report.Members(w, members, time.Now())
			}); err != nil {
				return fmt.Errorf("generate report: %w", err)
			}
			app.printf("Report written to %s\n", path)
			app.record("export", "member-report", 0, path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default Member_Report.pdf in the report directory)")
	return cmd
}

func promptMember(sc *bufio.Scanner, app *App, def api.Member) (api.Member, error) {
	name, ok := promptDefault(sc, app.Out, "Name", def.Name)
	if !ok {
		return api.Member{}, fmt.Errorf("aborted")
	}
	email, ok := promptDefault(sc, app.Out, "Email", def.Email)
	if !ok {
		return api.Member{}, fmt.Errorf("aborted")
	}
	phone, ok := promptDefault(sc, app.Out, "Phone", def.Phone)
	if !ok {
		return api.Member{}, fmt.Errorf("aborted")
	}

	if name == "" || email == "" {
		return api.Member{}, fmt.Errorf("name and email are required")
	}

	// Outstanding debt is backend-owned bookkeeping; it is carried through
	// on update and starts at zero for new members.
	return api.Member{Name: name, Email: email, Phone: phone, OutstandingDebt: def.OutstandingDebt}, nil
}

func (a *App) findMember(ctx context.Context, id int64) (*api.Member, error) {
	members, err := a.API.Members().List(ctx)
	if err != nil {
		return nil, a.surface(err)
	}
	for i := range members {
		if members[i].ID == id {
			return &members[i], nil
		}
	}
	return nil, fmt.Errorf("member %d not found", id)
}

func (a *App) reloadMembers(ctx context.Context) error {
	members, err := a.API.Members().List(ctx)
	if err != nil {
		return a.surface(err)
	}
	a.renderMembers(members)
	return nil
}

func (a *App) renderMembers(members []api.Member) {
	if len(members) == 0 {
		a.println("No members registered.")
		return
	}
	a.printf("%-5s %-30s %-30s %-15s %s\n", "ID", "Name", "Email", "Phone", "Outstanding Debt")
	a.println(strings.Repeat("-", 100))
	for _, m := range members {
		a.printf("%-5d %-30s %-30s %-15s KES %.2f\n",
			m.ID,
			truncateString(m.Name, 30),
			truncateString(m.Email, 30),
			truncateString(m.Phone, 15),
			m.OutstandingDebt)
	}
}
