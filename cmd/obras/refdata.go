package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nbourbon/admin-obras-sub001/internal/cli"
)

// Reference-data commands. Categories, providers, and rubros share the
// same list/add/update/delete shape; only the fields differ.

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage expense categories",
	}

	var rubroID int64

	list := &cobra.Command{
		Use:   "list",
		Short: "List categories",
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

			categories, err := app.api.ListCategories(ctx)
			if err != nil {
				return err
			}
			if len(categories) == 0 {
				fmt.Println(cli.InfoStyle.Render("No categories yet."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintln(w, "ID\tName\tRubro")
			for _, c := range categories {
				rubro := ""
				if c.RubroID != nil {
					rubro = fmt.Sprintf("%d", *c.RubroID)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\n", c.ID, c.Name, rubro)
			}
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.requireProject(ctx); err != nil {
				return err
			}

			created, err := app.api.CreateCategory(ctx, args[0], optionalID(cmd, "rubro", rubroID))
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Category %d created", created.ID)))
			return nil
		},
	}
	add.Flags().Int64Var(&rubroID, "rubro", 0, "rubro id to file the category under")

	update := &cobra.Command{
		Use:   "update <id> <name>",
		Short: "Rename a category or move it to another rubro",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0], "category")
			if err != nil {
				return err
			}
			app, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.requireProject(ctx); err != nil {
				return err
			}
			if err := app.api.UpdateCategory(ctx, id, args[1], optionalID(cmd, "rubro", rubroID)); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Category updated"))
			return nil
		},
	}
	update.Flags().Int64Var(&rubroID, "rubro", 0, "rubro id to file the category under")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0], "category")
			if err != nil {
				return err
			}
			app, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.requireProject(ctx); err != nil {
				return err
			}
			if err := app.api.DeleteCategory(ctx, id); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Category deleted"))
			return nil
		},
	}

	cmd.AddCommand(list, add, update, del)
	return cmd
}

func providersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "providers",
		Short: "Manage providers",
	}

	var cuit string

	list := &cobra.Command{
		Use:   "list",
		Short: "List providers",
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

			providers, err := app.api.ListProviders(ctx)
			if err != nil {
				return err
			}
			if len(providers) == 0 {
				fmt.Println(cli.InfoStyle.Render("No providers yet."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintln(w, "ID\tName\tCUIT")
			for _, p := range providers {
				fmt.Fprintf(w, "%d\t%s\t%s\n", p.ID, p.Name, p.CUIT)
			}
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.requireProject(ctx); err != nil {
				return err
			}

			created, err := app.api.CreateProvider(ctx, args[0], cuit)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Provider %d created", created.ID)))
			return nil
		},
	}
	add.Flags().StringVar(&cuit, "cuit", "", "tax id")

	update := &cobra.Command{
		Use:   "update <id> <name>",
		Short: "Update a provider",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0], "provider")
			if err != nil {
				return err
			}
			app, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.requireProject(ctx); err != nil {
				return err
			}
			if err := app.api.UpdateProvider(ctx, id, args[1], cuit); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Provider updated"))
			return nil
		},
	}
	update.Flags().StringVar(&cuit, "cuit", "", "tax id")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0], "provider")
			if err != nil {
				return err
			}
			app, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.requireProject(ctx); err != nil {
				return err
			}
			if err := app.api.DeleteProvider(ctx, id); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Provider deleted"))
			return nil
		},
	}

	cmd.AddCommand(list, add, update, del)
	return cmd
}

func rubrosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rubros",
		Short: "Manage rubros",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List rubros",
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

			rubros, err := app.api.ListRubros(ctx)
			if err != nil {
				return err
			}
			if len(rubros) == 0 {
				fmt.Println(cli.InfoStyle.Render("No rubros yet."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintln(w, "ID\tName")
			for _, r := range rubros {
				fmt.Fprintf(w, "%d\t%s\n", r.ID, r.Name)
			}
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a rubro",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.requireProject(ctx); err != nil {
				return err
			}

			created, err := app.api.CreateRubro(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Rubro %d created", created.ID)))
			return nil
		},
	}

	update := &cobra.Command{
		Use:   "update <id> <name>",
		Short: "Rename a rubro",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0], "rubro")
			if err != nil {
				return err
			}
			app, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.requireProject(ctx); err != nil {
				return err
			}
			if err := app.api.UpdateRubro(ctx, id, args[1]); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Rubro updated"))
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a rubro",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0], "rubro")
			if err != nil {
				return err
			}
			app, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.requireProject(ctx); err != nil {
				return err
			}
			if err := app.api.DeleteRubro(ctx, id); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Rubro deleted"))
			return nil
		},
	}

	cmd.AddCommand(list, add, update, del)
	return cmd
}

// optionalID turns a flag into a nullable id: nil when the flag was not
// passed.
func optionalID(cmd *cobra.Command, name string, value int64) *int64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}
