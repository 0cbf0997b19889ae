package cli

import (
	"github.com/spf13/cobra"
)

func newCheckInCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkin <character>",
		Short: "Record that you saw a player training today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"character_name": args[0]}

			var result CheckInResult
			if err := client.Post("/api/v1/checkins", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newActivityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activity",
		Short: "Show the player activity board",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []ActivityEntry
			if err := client.Get("/api/v1/activity", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
