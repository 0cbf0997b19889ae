package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newSkillsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skills",
		Short: "Track training skill progress",
	}

	cmd.AddCommand(newSkillsRecordCmd())
	cmd.AddCommand(newSkillsHistoryCmd())

	return cmd
}

func newSkillsRecordCmd() *cobra.Command {
	var sword, club, axe, distance, shielding, magic string

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a skill snapshot",
		Long: `Record a snapshot of your current training skills.

Each skill is given as LEVEL:PERCENT, for example --sword 85:40 for
sword fighting 85 at 40% toward the next level.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{}
			for name, raw := range map[string]string{
				"sword":     sword,
				"club":      club,
				"axe":       axe,
				"distance":  distance,
				"shielding": shielding,
				"magic":     magic,
			} {
				if raw == "" {
					continue
				}
				value, err := parseSkill(raw)
				if err != nil {
					return fmt.Errorf("--%s: %w", name, err)
				}
				req[name] = value
			}

			var result SkillSnapshot
			if err := client.Post("/api/v1/skills", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&sword, "sword", "", "Sword fighting as LEVEL:PERCENT")
	cmd.Flags().StringVar(&club, "club", "", "Club fighting as LEVEL:PERCENT")
	cmd.Flags().StringVar(&axe, "axe", "", "Axe fighting as LEVEL:PERCENT")
	cmd.Flags().StringVar(&distance, "distance", "", "Distance fighting as LEVEL:PERCENT")
	cmd.Flags().StringVar(&shielding, "shielding", "", "Shielding as LEVEL:PERCENT")
	cmd.Flags().StringVar(&magic, "magic", "", "Magic level as LEVEL:PERCENT")

	return cmd
}

func newSkillsHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded skill snapshots, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/skills"
			if limit > 0 {
				path = fmt.Sprintf("%s?limit=%d", path, limit)
			}

			var result []SkillSnapshot
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Limit the number of snapshots shown")

	return cmd
}

func parseSkill(raw string) (SkillValue, error) {
	parts := strings.SplitN(raw, ":", 2)
	level, err := strconv.Atoi(parts[0])
	if err != nil {
		return SkillValue{}, fmt.Errorf("invalid level %q", parts[0])
	}

	percent := 0
	if len(parts) == 2 {
		percent, err = strconv.Atoi(parts[1])
		if err != nil {
			return SkillValue{}, fmt.Errorf("invalid percent %q", parts[1])
		}
	}

	return SkillValue{Level: level, Percent: percent}, nil
}
