package cli

import (
	"github.com/spf13/cobra"
)

func newLeagueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "league",
		Short: "League-wide commands",
	}

	cmd.AddCommand(newLeagueResetCmd())
	cmd.AddCommand(newLeagueProbeCmd())
	cmd.AddCommand(newLeagueSnapshotCmd())

	return cmd
}

func newLeagueResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Wipe all players, games and standings",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)
			if !yes {
				out.PrintMessage("Refusing to reset without --yes")
				return nil
			}

			if err := client.Post("/api/v1/league/reset", nil, nil); err != nil {
				return err
			}

			out.PrintMessage("League reset")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")

	return cmd
}

func newLeagueProbeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Ask the server to retry its remote store connection",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result StatusResult
			if err := client.Post("/api/v1/league/probe", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newLeagueSnapshotCmd() *cobra.Command {
	var logDate string
	var byName bool

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Show the full league view",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/public/snapshot"
			switch {
			case logDate != "":
				path += "?log=" + logDate
			case byName:
				path += "?sort=name"
			}

			var result SnapshotResult
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&logDate, "log", "", "Show the saved log for this date instead of the live view")
	cmd.Flags().BoolVar(&byName, "by-name", false, "Sort players alphabetically")

	return cmd
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show server connectivity with its remote store",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result StatusResult
			if err := client.Get("/api/v1/status", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
