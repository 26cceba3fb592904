package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game schedule commands",
	}

	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameAddCmd())
	cmd.AddCommand(newGameEditCmd())
	cmd.AddCommand(newGameDeleteCmd())
	cmd.AddCommand(newGameClearCmd())

	return cmd
}

// gameFlags binds the shared add/edit flags to a request body
type gameFlags struct {
	title    string
	teamA    string
	teamB    string
	date     string
	time     string
	location string
	scoreA   int
	scoreB   int
}

func (f *gameFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Game title (default Game N)")
	cmd.Flags().StringVar(&f.teamA, "team-a", "", "Home team letter")
	cmd.Flags().StringVar(&f.teamB, "team-b", "", "Away team letter")
	cmd.Flags().StringVar(&f.date, "date", "", "Game date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&f.time, "time", "", "Game time")
	cmd.Flags().StringVar(&f.location, "location", "", "Venue (default Gym 1)")
	cmd.Flags().IntVar(&f.scoreA, "score-a", 0, "Home team score")
	cmd.Flags().IntVar(&f.scoreB, "score-b", 0, "Away team score")
}

func (f *gameFlags) body() map[string]any {
	return map[string]any{
		"title":    f.title,
		"team_a":   f.teamA,
		"team_b":   f.teamB,
		"gdate":    f.date,
		"gtime":    f.time,
		"location": f.location,
		"score_a":  f.scoreA,
		"score_b":  f.scoreB,
	}
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List scheduled games",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Game
			if err := client.Get("/api/v1/games", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameAddCmd() *cobra.Command {
	var flags gameFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule a new game",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game
			if err := client.Post("/api/v1/games", flags.body(), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func newGameEditCmd() *cobra.Command {
	var flags gameFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game
			if err := client.Put("/api/v1/games/"+args[0], flags.body(), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func newGameDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a game, refunding its result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/games/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Deleted game %s", args[0]))
			return nil
		},
	}
}

func newGameClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all games, refunding their results",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/games"); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("All games cleared")
			return nil
		},
	}
}
