package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nbourbon/admin-obras-sub001/internal/cli"
	"github.com/nbourbon/admin-obras-sub001/internal/preview"
)

func previewCmd() *cobra.Command {
	var (
		invoiceID int64
		savePath  string
	)

	cmd := &cobra.Command{
		Use:   "preview [payment-id]",
		Short: "Fetch a receipt or invoice and open it locally",
		Long: `Download a payment receipt (or an expense invoice with --invoice)
into a temp file and report how the viewer would present it. Pass
--save to keep a copy; the temp file itself is removed on exit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if len(args) == 0 && !cmd.Flags().Changed("invoice") {
				return fmt.Errorf("pass a payment id or --invoice <expense-id>")
			}

			app, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.requireProject(ctx); err != nil {
				return err
			}

			var fileName string

			viewer := preview.NewViewer("")
			defer viewer.Close()

			if cmd.Flags().Changed("invoice") {
				body, _, err := app.api.DownloadInvoice(ctx, invoiceID)
				if err != nil {
					return err
				}
				defer func() { _ = body.Close() }()
				fileName = fmt.Sprintf("invoice-%d.pdf", invoiceID)
				if err := viewer.Open(fileName, body); err != nil {
					return err
				}
			} else {
				paymentID, err := parseID(args[0], "payment")
				if err != nil {
					return err
				}
				body, _, err := app.api.DownloadReceipt(ctx, paymentID)
				if err != nil {
					return err
				}
				defer func() { _ = body.Close() }()
				fileName = fmt.Sprintf("receipt-%d", paymentID)
				if err := viewer.Open(fileName, body); err != nil {
					return err
				}
			}

			fmt.Printf("Loaded %s as %s preview (%s)\n",
				cli.BoldStyle.Render(viewer.FileName()), viewer.Kind(), viewer.Path())

			if savePath != "" {
				if err := viewer.SaveTo(savePath); err != nil {
					return err
				}
				fmt.Println(cli.FormatSuccess("Saved copy to " + savePath))
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&invoiceID, "invoice", 0, "preview an expense invoice instead of a receipt")
	cmd.Flags().StringVar(&savePath, "save", "", "keep a copy at this path")

	return cmd
}
