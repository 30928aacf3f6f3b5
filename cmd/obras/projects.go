package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nbourbon/admin-obras-sub001/internal/cli"
	"github.com/nbourbon/admin-obras-sub001/internal/storage"
)

func projectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage project selection",
		Long:  `List your projects, switch the active one, and control the selector preference.`,
	}

	cmd.AddCommand(listProjectsCmd())
	cmd.AddCommand(currentProjectCmd())
	cmd.AddCommand(selectProjectCmd())
	cmd.AddCommand(refreshProjectsCmd())
	cmd.AddCommand(preferCmd())

	return cmd
}

func listProjectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the projects you belong to",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			app, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.requireSession(ctx); err != nil {
				return err
			}
			if err := app.selector.Load(ctx); err != nil {
				return err
			}

			projects := app.selector.Projects()
			if len(projects) == 0 {
				fmt.Println(cli.InfoStyle.Render("You have no projects yet."))
				return nil
			}

			current := app.selector.Current()

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", "ID", "Name", "Currency", "Role")
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 4), strings.Repeat("-", 24),
				strings.Repeat("-", 8), strings.Repeat("-", 8))

			for _, p := range projects {
				marker := ""
				if current != nil && current.ID == p.ID {
					marker = " *"
				}
				role := "member"
				if p.CurrentUserIsAdmin {
					role = "admin"
				}
				fmt.Fprintf(w, "%d\t%s%s\t%s\t%s\n", p.ID, p.Name, marker, p.CurrencyMode, role)
			}

			return nil
		},
	}
}

func currentProjectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the active project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			app, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.requireProject(ctx); err != nil {
				return err
			}

			p := app.selector.Current()
			fmt.Printf("%s (id %d)\n", cli.BoldStyle.Render(p.Name), p.ID)
			fmt.Printf("Currency mode: %s\n", app.selector.CurrencyMode())
			if app.selector.IsAdmin() {
				fmt.Println("Role: admin")
			} else {
				fmt.Println("Role: member")
			}
			return nil
		},
	}
}

func selectProjectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <id>",
		Short: "Switch the active project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			projectID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid project id %q", args[0])
			}

			app, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.requireSession(ctx); err != nil {
				return err
			}
			if err := app.selector.Load(ctx); err != nil {
				return err
			}
			if err := app.selector.Select(ctx, projectID); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Switched to " + app.selector.Current().Name))
			return nil
		},
	}
}

func refreshProjectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Re-fetch the project list and re-resolve the active project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			app, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.requireSession(ctx); err != nil {
				return err
			}
			if err := app.selector.Refresh(ctx); err != nil {
				return err
			}

			if current := app.selector.Current(); current != nil {
				fmt.Println(cli.FormatSuccess("Active project: " + current.Name))
			} else {
				fmt.Println(cli.InfoStyle.Render("No projects available."))
			}
			return nil
		},
	}
}

func preferCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prefer <last|selector>",
		Short: "Choose whether startup reuses the last project or always asks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			pref := args[0]
			if pref != storage.PreferLast && pref != storage.PreferSelector {
				return fmt.Errorf("preference must be %q or %q", storage.PreferLast, storage.PreferSelector)
			}

			app, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.selector.SetPreference(ctx, pref); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Preference saved: " + pref))
			return nil
		},
	}
}
