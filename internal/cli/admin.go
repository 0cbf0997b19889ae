package cli

import (
	"net/url"

	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin corrections to the current day",
	}

	cmd.AddCommand(newAdminMarkPaidCmd())
	cmd.AddCommand(newAdminRemovePaymentCmd())
	cmd.AddCommand(newAdminHideCmd())
	cmd.AddCommand(newAdminPayoutCmd())
	cmd.AddCommand(newAdminLedgerCmd())

	return cmd
}

func newAdminMarkPaidCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mark-paid <character>",
		Short: "Mark a player as paid for today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/admin/players/" + url.PathEscape(args[0]) + "/payment"

			var result Payment
			if err := client.Post(path, nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAdminRemovePaymentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-payment <character>",
		Short: "Remove a player's payment for today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/admin/players/" + url.PathEscape(args[0]) + "/payment"

			if err := client.Delete(path); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Payment removed")
			return nil
		},
	}
}

func newAdminPayoutCmd() *cobra.Command {
	var amount int

	cmd := &cobra.Command{
		Use:   "payout <character>",
		Short: "Record a payout to a reporter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/admin/reporters/" + url.PathEscape(args[0]) + "/payouts"

			req := map[string]int{"amount": amount}
			var result PayoutResult
			if err := client.Post(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&amount, "amount", 0, "Amount paid in gp (required)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newAdminLedgerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ledger",
		Short: "Show reporter earnings against recorded payouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []EarningsSummary
			if err := client.Get("/api/v1/admin/payouts", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAdminHideCmd() *cobra.Command {
	var hidden bool

	cmd := &cobra.Command{
		Use:   "hide <character>",
		Short: "Hide or unhide a player from the standings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/admin/players/" + url.PathEscape(args[0]) + "/visibility"

			req := map[string]bool{"hidden": hidden}
			if err := client.Patch(path, req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if hidden {
				out.PrintMessage("Player hidden")
			} else {
				out.PrintMessage("Player visible")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&hidden, "hidden", true, "Whether the player is hidden")

	return cmd
}
