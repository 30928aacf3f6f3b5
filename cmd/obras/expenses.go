package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nbourbon/admin-obras-sub001/internal/api"
	"github.com/nbourbon/admin-obras-sub001/internal/cli"
	"github.com/nbourbon/admin-obras-sub001/internal/currency"
	"github.com/nbourbon/admin-obras-sub001/internal/model"
)

func expensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "Inspect and manage expenses",
	}

	cmd.AddCommand(showExpenseCmd())
	cmd.AddCommand(updateExpenseCmd())
	cmd.AddCommand(markAllPaidCmd())
	cmd.AddCommand(deleteExpenseCmd())
	cmd.AddCommand(invoiceCmd())

	return cmd
}

func showExpenseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <expense-id>",
		Short: "Show an expense and its payments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			expenseID, err := parseID(args[0], "expense")
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

			expense, err := app.api.GetExpense(ctx, expenseID)
			if err != nil {
				return err
			}

			mode := app.selector.CurrencyMode()

			fmt.Println(cli.FormatTitle(expense.Description))
			if expense.Date != nil && !expense.Date.IsZero() {
				fmt.Printf("Date: %s\n", expense.Date.Format(model.DateFormat))
			}
			fmt.Printf("Amount: %s\n", currency.Format(mode, expense.AmountARS, expense.AmountUSD))
			if expense.ExchangeRate > 0 {
				fmt.Printf("Exchange rate: %.2f\n", expense.ExchangeRate)
			}
			if expense.HasInvoice() {
				fmt.Println("Invoice: attached")
			}
			fmt.Printf("Paid: %d/%d\n", expense.PaidCount(), len(expense.Payments))

			if len(expense.Payments) == 0 {
				return nil
			}

			fmt.Println()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintln(w, "ID\tParticipant\tAmount due\tStatus\tReceipt")
			for _, p := range expense.Payments {
				receipt := ""
				if p.HasReceipt() {
					receipt = "yes"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					p.ID, p.UserName,
					currency.Format(mode, p.AmountDueARS, p.AmountDueUSD),
					formatPaymentStatus(p), receipt)
			}
			return nil
		},
	}
}

func updateExpenseCmd() *cobra.Command {
	var (
		description string
		dateFlag    string
		amount      float64
		curr        string
		rate        float64
		categoryID  int64
		providerID  int64
		rubroID     int64
	)

	cmd := &cobra.Command{
		Use:   "update <expense-id>",
		Short: "Update an expense (admin only)",
		Long: `Apply a partial update to an expense. Only the flags you pass are
sent; everything else stays as it is.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			expenseID, err := parseID(args[0], "expense")
			if err != nil {
				return err
			}

			var update api.ExpenseUpdate
			changed := false

			if cmd.Flags().Changed("description") {
				update.Description = &description
				changed = true
			}
			if cmd.Flags().Changed("date") {
				d, err := parseDate(dateFlag)
				if err != nil {
					return err
				}
				update.Date = &d
				changed = true
			}
			if cmd.Flags().Changed("amount") {
				update.Amount = &amount
				changed = true
			}
			if cmd.Flags().Changed("currency") {
				c := strings.ToUpper(curr)
				if c != "ARS" && c != "USD" {
					return fmt.Errorf("currency must be ARS or USD, got %q", curr)
				}
				update.Currency = &c
				changed = true
			}
			if cmd.Flags().Changed("rate") {
				update.ExchangeRate = &rate
				changed = true
			}
			if cmd.Flags().Changed("category") {
				update.CategoryID = &categoryID
				changed = true
			}
			if cmd.Flags().Changed("provider") {
				update.ProviderID = &providerID
				changed = true
			}
			if cmd.Flags().Changed("rubro") {
				update.RubroID = &rubroID
				changed = true
			}

			if !changed {
				return fmt.Errorf("nothing to update: pass at least one field flag")
			}

			app, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.requireProject(ctx); err != nil {
				return err
			}
			if err := app.api.UpdateExpense(ctx, expenseID, update); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Expense updated"))
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&dateFlag, "date", "", "new date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "new amount")
	cmd.Flags().StringVar(&curr, "currency", "", "amount currency: ARS or USD")
	cmd.Flags().Float64Var(&rate, "rate", 0, "new exchange rate")
	cmd.Flags().Int64Var(&categoryID, "category", 0, "category id")
	cmd.Flags().Int64Var(&providerID, "provider", 0, "provider id")
	cmd.Flags().Int64Var(&rubroID, "rubro", 0, "rubro id")

	return cmd
}

func markAllPaidCmd() *cobra.Command {
	var (
		dateFlag string
		curr     string
		rateFlag float64
	)

	cmd := &cobra.Command{
		Use:   "mark-all-paid <expense-id>",
		Short: "Settle every outstanding payment of an expense (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			expenseID, err := parseID(args[0], "expense")
			if err != nil {
				return err
			}

			var req api.MarkAllPaidRequest
			if dateFlag != "" {
				d, err := parseDate(dateFlag)
				if err != nil {
					return err
				}
				req.PaymentDate = &d
			}
			if curr != "" {
				c := strings.ToUpper(curr)
				if c != "ARS" && c != "USD" {
					return fmt.Errorf("currency must be ARS or USD, got %q", curr)
				}
				req.Currency = c
			}
			if cmd.Flags().Changed("rate") {
				req.ExchangeRateOverride = &rateFlag
			}

			app, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.requireProject(ctx); err != nil {
				return err
			}
			if err := app.api.MarkAllPaid(ctx, expenseID, req); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("All payments settled"))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "payment date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&curr, "currency", "", "currency paid: ARS or USD")
	cmd.Flags().Float64Var(&rateFlag, "rate", 0, "exchange-rate override")

	return cmd
}

func deleteExpenseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <expense-id>",
		Short: "Delete an expense (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			expenseID, err := parseID(args[0], "expense")
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
			if err := app.api.DeleteExpense(ctx, expenseID); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Expense deleted"))
			return nil
		},
	}
}

func invoiceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Upload or download expense invoices",
	}
	cmd.AddCommand(uploadInvoiceCmd())
	cmd.AddCommand(downloadInvoiceCmd())
	return cmd
}

func uploadInvoiceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <expense-id> <file>",
		Short: "Attach an invoice file to an expense",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			expenseID, err := parseID(args[0], "expense")
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

			return uploadFile(args[1], "Uploading invoice", func(name string, r io.Reader) error {
				return app.api.UploadInvoice(ctx, expenseID, name, r)
			})
		},
	}
}

func downloadInvoiceCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "download <expense-id>",
		Short: "Download an expense's invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			expenseID, err := parseID(args[0], "expense")
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

			body, size, err := app.api.DownloadInvoice(ctx, expenseID)
			if err != nil {
				return err
			}
			defer func() { _ = body.Close() }()

			dest := outPath
			if dest == "" {
				dest = fmt.Sprintf("invoice-%d", expenseID)
			}
			return saveDownload(body, size, dest, "Downloading invoice")
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "destination file")
	return cmd
}
