package cli

import (
	"github.com/spf13/cobra"
)

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Standings commands",
	}

	cmd.AddCommand(newScoreListCmd())
	cmd.AddCommand(newScoreAdjustCmd())

	return cmd
}

func newScoreListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the standings table",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []TeamScore
			if err := client.Get("/api/v1/scores", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newScoreAdjustCmd() *cobra.Command {
	var kind string
	var delta int

	cmd := &cobra.Command{
		Use:   "adjust <team>",
		Short: "Adjust a team's win or loss count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"kind":  kind,
				"delta": delta,
			}

			var result TeamScore
			if err := client.Post("/api/v1/scores/"+args[0]+"/adjust", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "win", "Counter to adjust: win, lose")
	cmd.Flags().IntVar(&delta, "delta", 1, "Amount to add, may be negative")

	return cmd
}
