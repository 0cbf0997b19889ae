package cli

import (
	"github.com/spf13/cobra"
)

func newEarningsCmd() *cobra.Command {
	var details bool

	cmd := &cobra.Command{
		Use:   "earnings",
		Short: "Show what your reports have earned you",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			if details {
				var result []ReportDetail
				if err := client.Get("/api/v1/earnings/details", &result); err != nil {
					return err
				}
				out.Print(result)
				return nil
			}

			var result EarningsSummary
			if err := client.Get("/api/v1/earnings", &result); err != nil {
				return err
			}
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&details, "details", false, "List each report with its outcome")

	return cmd
}

func newRankingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ranking",
		Short: "Show the late-payer ranking",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []RankEntry
			if err := client.Get("/api/v1/ranking", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
