package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nbourbon/admin-obras-sub001/internal/model"
	"github.com/nbourbon/admin-obras-sub001/internal/tui"
)

func flowCmd() *cobra.Command {
	var (
		showAll    bool
		statusFlag string
		fromFlag   string
		toFlag     string
	)

	cmd := &cobra.Command{
		Use:   "flow",
		Short: "Interactive payments browser",
		Long: `Open the interactive terminal UI: browse your payments, cycle status
filters, switch projects, and trigger payment actions without leaving
the keyboard.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			filter := model.PaymentFilter(statusFlag)
			if !filter.Valid() {
				return fmt.Errorf("invalid status %q: use all, pending, pending_approval, or paid", statusFlag)
			}
			dates, err := parseDateRange(fromFlag, toFlag)
			if err != nil {
				return err
			}

			app, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.requireSession(ctx); err != nil {
				return err
			}

			return tui.Run(ctx, tui.Config{
				API:      app.api,
				Selector: app.selector,
				Filter:   filter,
				Dates:    dates,
				ShowAll:  showAll,
			})
		},
	}

	cmd.Flags().BoolVar(&showAll, "all", false, "include settled payments")
	cmd.Flags().StringVar(&statusFlag, "status", string(model.FilterAll), "initial status filter")
	cmd.Flags().StringVar(&fromFlag, "from", "", "earliest expense date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toFlag, "to", "", "latest expense date (YYYY-MM-DD)")

	return cmd
}
