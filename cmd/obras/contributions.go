package main

import (
	"context"
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

func contributionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contributions",
		Short: "Work with shared-fund contributions",
	}

	cmd.AddCommand(listContributionsCmd())
	cmd.AddCommand(createContributionCmd())
	cmd.AddCommand(payContributionCmd())
	cmd.AddCommand(contributionReceiptCmd())

	return cmd
}

func listContributionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the project's contributions",
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

			contributions, err := app.api.ListContributions(ctx)
			if err != nil {
				return err
			}
			if len(contributions) == 0 {
				fmt.Println(cli.InfoStyle.Render("No contributions yet."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintln(w, "ID\tDescription\tTotal\tMy share\tProgress\tMy status")
			for _, c := range contributions {
				total := formatSingleCurrency(c.Currency, c.Amount)
				share := formatSingleCurrency(c.Currency, c.MyAmountDue)
				status := cli.FormatStatus(model.ClassifyContribution(c))
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					c.ID, c.Description, total, share, c.Progress(), status)
			}
			return nil
		},
	}
}

// formatSingleCurrency renders an amount in the contribution's own
// currency. Contributions carry one currency, not the dual pair.
func formatSingleCurrency(curr string, amount float64) string {
	if strings.EqualFold(curr, "USD") {
		return currency.FormatUSD(amount)
	}
	return currency.FormatARS(amount)
}

func createContributionCmd() *cobra.Command {
	var (
		description string
		curr        string
		amount      float64
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open a new shared-fund request (admin only)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if strings.TrimSpace(description) == "" {
				return fmt.Errorf("--description is required")
			}
			if amount <= 0 {
				return fmt.Errorf("--amount must be positive")
			}
			curr = strings.ToUpper(curr)
			if curr != "ARS" && curr != "USD" {
				return fmt.Errorf("currency must be ARS or USD, got %q", curr)
			}

			app, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.requireProject(ctx); err != nil {
				return err
			}

			created, err := app.api.CreateContribution(ctx, api.ContributionRequest{
				Description: description,
				Currency:    curr,
				Amount:      amount,
			})
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Contribution %d created", created.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "what the fund is for")
	cmd.Flags().StringVar(&curr, "currency", "ARS", "currency: ARS or USD")
	cmd.Flags().Float64Var(&amount, "amount", 0, "total amount to collect")

	return cmd
}

func payContributionCmd() *cobra.Command {
	var (
		amount   float64
		curr     string
		dateFlag string
		rateFlag float64
	)

	cmd := &cobra.Command{
		Use:   "pay <contribution-id>",
		Short: "Submit your share of a contribution for approval",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			contributionID, err := parseID(args[0], "contribution")
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

			paymentID, err := myContributionPaymentID(ctx, app, contributionID)
			if err != nil {
				return err
			}
			if err := app.api.SubmitContributionPayment(ctx, paymentID, req); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Contribution payment submitted for approval"))
			return nil
		},
	}

	addPaymentFlags(cmd, &amount, &curr, &dateFlag, &rateFlag)
	return cmd
}

func contributionReceiptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "receipt <contribution-id> <file>",
		Short: "Attach a receipt to your contribution payment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			contributionID, err := parseID(args[0], "contribution")
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

			paymentID, err := myContributionPaymentID(ctx, app, contributionID)
			if err != nil {
				return err
			}

			return uploadFile(args[1], "Uploading receipt", func(name string, r io.Reader) error {
				return app.api.UploadContributionReceipt(ctx, paymentID, name, r)
			})
		},
	}
}

// myContributionPaymentID resolves the caller's payment id on a
// contribution. The list endpoint is the only place the server exposes
// it.
func myContributionPaymentID(ctx context.Context, app *app, contributionID int64) (int64, error) {
	contributions, err := app.api.ListContributions(ctx)
	if err != nil {
		return 0, err
	}
	for _, c := range contributions {
		if c.ID == contributionID {
			if c.MyPaymentID == nil {
				return 0, fmt.Errorf("you have no payment on contribution %d", contributionID)
			}
			return *c.MyPaymentID, nil
		}
	}
	return 0, fmt.Errorf("contribution %d not found", contributionID)
}
