package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/nbourbon/admin-obras-sub001/internal/api"
	"github.com/nbourbon/admin-obras-sub001/internal/cli"
	"github.com/nbourbon/admin-obras-sub001/internal/currency"
	"github.com/nbourbon/admin-obras-sub001/internal/model"
)

func paymentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payments",
		Short: "Work with your payments in the active project",
	}

	cmd.AddCommand(listPaymentsCmd())
	cmd.AddCommand(submitPaymentCmd())
	cmd.AddCommand(markPaidCmd())
	cmd.AddCommand(unmarkPaidCmd())
	cmd.AddCommand(deletePaymentCmd())
	cmd.AddCommand(receiptCmd())

	return cmd
}

func listPaymentsCmd() *cobra.Command {
	var (
		showAll    bool
		statusFlag string
		fromFlag   string
		toFlag     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your payments",
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

			if err := app.requireProject(ctx); err != nil {
				return err
			}

			payments, err := app.api.MyPayments(ctx, showAll)
			if err != nil {
				return err
			}

			visible := model.FilterPayments(payments, filter, dates)
			if len(visible) == 0 {
				fmt.Println(cli.InfoStyle.Render("No payments match."))
				return nil
			}

			mode := app.selector.CurrencyMode()

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintln(w, "ID\tExpense\tDate\tAmount due\tStatus\tReceipt")
			for _, p := range visible {
				date := ""
				if p.ExpenseDate != nil && !p.ExpenseDate.IsZero() {
					date = p.ExpenseDate.Format(model.DateFormat)
				}
				receipt := ""
				if p.HasReceipt() {
					receipt = "yes"
				}
				status := formatPaymentStatus(p)
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					p.ID, p.ExpenseDescription, date,
					currency.Format(mode, p.AmountDueARS, p.AmountDueUSD),
					status, receipt)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showAll, "all", false, "include settled payments")
	cmd.Flags().StringVar(&statusFlag, "status", string(model.FilterAll), "filter by status: all, pending, pending_approval, paid")
	cmd.Flags().StringVar(&fromFlag, "from", "", "earliest expense date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toFlag, "to", "", "latest expense date (YYYY-MM-DD)")

	return cmd
}

// formatPaymentStatus renders a payment's derived status badge, with
// the rejection reason appended when there is one.
func formatPaymentStatus(p model.Payment) string {
	status := model.ClassifyPayment(p)
	badge := cli.FormatStatus(status)
	if status == model.StatusRejected && p.RejectionReason != "" {
		badge += " (" + p.RejectionReason + ")"
	}
	return badge
}

func submitPaymentCmd() *cobra.Command {
	var (
		amount   float64
		curr     string
		dateFlag string
		rateFlag float64
	)

	cmd := &cobra.Command{
		Use:   "submit <payment-id>",
		Short: "Submit your payment for admin approval",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			paymentID, err := parseID(args[0], "payment")
			if err != nil {
				return err
			}
			req, err := buildPaymentRequest(cmd, amount, curr, dateFlag, rateFlag)
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
			if err := app.api.SubmitPayment(ctx, paymentID, req); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Payment submitted for approval"))
			return nil
		},
	}

	addPaymentFlags(cmd, &amount, &curr, &dateFlag, &rateFlag)
	return cmd
}

func markPaidCmd() *cobra.Command {
	var (
		amount   float64
		curr     string
		dateFlag string
		rateFlag float64
	)

	cmd := &cobra.Command{
		Use:   "mark-paid <payment-id>",
		Short: "Confirm a payment directly (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			paymentID, err := parseID(args[0], "payment")
			if err != nil {
				return err
			}
			req, err := buildPaymentRequest(cmd, amount, curr, dateFlag, rateFlag)
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
			if err := app.api.MarkPaid(ctx, paymentID, req); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Payment marked paid"))
			return nil
		},
	}

	addPaymentFlags(cmd, &amount, &curr, &dateFlag, &rateFlag)
	return cmd
}

func unmarkPaidCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unmark <payment-id>",
		Short: "Revert a confirmed payment to pending (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			paymentID, err := parseID(args[0], "payment")
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
			if err := app.api.UnmarkPaid(ctx, paymentID); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Payment reverted to pending"))
			return nil
		},
	}
}

func deletePaymentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <payment-id>",
		Short: "Delete a payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			paymentID, err := parseID(args[0], "payment")
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
			if err := app.api.DeletePayment(ctx, paymentID); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Payment deleted"))
			return nil
		},
	}
}

func receiptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "receipt",
		Short: "Upload or download payment receipts",
	}
	cmd.AddCommand(uploadReceiptCmd())
	cmd.AddCommand(downloadReceiptCmd())
	return cmd
}

func uploadReceiptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <payment-id> <file>",
		Short: "Attach a receipt file to a payment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			paymentID, err := parseID(args[0], "payment")
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

			return uploadFile(args[1], "Uploading receipt", func(name string, r io.Reader) error {
				return app.api.UploadReceipt(ctx, paymentID, name, r)
			})
		},
	}
}

func downloadReceiptCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "download <payment-id>",
		Short: "Download a payment's receipt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			paymentID, err := parseID(args[0], "payment")
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

			body, size, err := app.api.DownloadReceipt(ctx, paymentID)
			if err != nil {
				return err
			}
			defer func() { _ = body.Close() }()

			dest := outPath
			if dest == "" {
				dest = fmt.Sprintf("receipt-%d", paymentID)
			}
			return saveDownload(body, size, dest, "Downloading receipt")
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "destination file")
	return cmd
}

// addPaymentFlags registers the flags shared by submit and mark-paid.
func addPaymentFlags(cmd *cobra.Command, amount *float64, curr, dateFlag *string, rateFlag *float64) {
	cmd.Flags().Float64Var(amount, "amount", 0, "amount actually paid")
	cmd.Flags().StringVar(curr, "currency", "ARS", "currency paid: ARS or USD")
	cmd.Flags().StringVar(dateFlag, "date", "", "payment date (YYYY-MM-DD, default today)")
	cmd.Flags().Float64Var(rateFlag, "rate", 0, "exchange-rate override")
}

// buildPaymentRequest assembles the wire request from flag values.
func buildPaymentRequest(cmd *cobra.Command, amount float64, curr, dateFlag string, rateFlag float64) (api.PaymentRequest, error) {
	curr = strings.ToUpper(curr)
	if curr != "ARS" && curr != "USD" {
		return api.PaymentRequest{}, fmt.Errorf("currency must be ARS or USD, got %q", curr)
	}

	req := api.PaymentRequest{
		AmountPaid:   amount,
		CurrencyPaid: curr,
	}
	if dateFlag != "" {
		d, err := parseDate(dateFlag)
		if err != nil {
			return api.PaymentRequest{}, err
		}
		req.PaymentDate = &d
	}
	if cmd.Flags().Changed("rate") {
		req.ExchangeRateOverride = &rateFlag
	}
	return req, nil
}

func parseID(s, kind string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s id %q", kind, s)
	}
	return id, nil
}

func parseDate(s string) (model.Date, error) {
	t, err := time.Parse(model.DateFormat, s)
	if err != nil {
		return model.Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return model.Date{Time: t}, nil
}

func parseDateRange(from, to string) (model.DateRange, error) {
	var r model.DateRange
	if from != "" {
		d, err := parseDate(from)
		if err != nil {
			return r, err
		}
		t := d.Day()
		r.From = &t
	}
	if to != "" {
		d, err := parseDate(to)
		if err != nil {
			return r, err
		}
		t := d.Day()
		r.To = &t
	}
	return r, nil
}

// uploadFile streams a local file through a progress bar into the given
// upload call.
func uploadFile(path, label string, upload func(name string, r io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	bar := progressbar.DefaultBytes(info.Size(), label)
	if err := upload(filepath.Base(path), io.TeeReader(f, bar)); err != nil {
		return err
	}
	_ = bar.Finish()

	fmt.Println(cli.FormatSuccess("Uploaded " + filepath.Base(path)))
	return nil
}

// saveDownload streams a response body to disk through a progress bar.
func saveDownload(body io.Reader, size int64, dest, label string) error {
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	defer func() { _ = f.Close() }()

	bar := progressbar.DefaultBytes(size, label)
	if _, err := io.Copy(io.MultiWriter(f, bar), body); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	_ = bar.Finish()

	fmt.Println(cli.FormatSuccess("Saved " + dest))
	return nil
}
