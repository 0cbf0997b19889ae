package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newPlayersCmd() *cobra.Command {
	var day int

	cmd := &cobra.Command{
		Use:   "players",
		Short: "List player standings for a training day",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/players"
			if day != 0 {
				path = fmt.Sprintf("%s?day=%d", path, day)
			}

			var result StandingsResult
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&day, "day", 0, "Day offset, e.g. -1 for yesterday")

	return cmd
}

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <character>",
		Short: "Report a player training without paying",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"character_name": args[0]}

			var result Standing
			if err := client.Post("/api/v1/reports", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPayCmd() *cobra.Command {
	var character, proof string

	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Record a training fee payment",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"character_name": character,
				"proof":          proof,
			}

			var result Payment
			if err := client.Post("/api/v1/payments", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&character, "character", "", "Character to pay for (default: your own)")
	cmd.Flags().StringVar(&proof, "proof", "", "Deposit proof text (required)")
	_ = cmd.MarkFlagRequired("proof")

	return cmd
}

func newPaymentsCmd() *cobra.Command {
	var character string

	cmd := &cobra.Command{
		Use:   "payments",
		Short: "Show payment history",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/payments/mine"
			if character != "" {
				path = "/api/v1/players/" + url.PathEscape(character) + "/payments"
			}

			var result []Payment
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&character, "character", "", "Show another character's payments")

	return cmd
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show today's revenue against the dummy cost",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result DailySummary
			if err := client.Get("/api/v1/stats/daily", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
