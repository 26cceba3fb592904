package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "League log commands",
	}

	cmd.AddCommand(newLogsSaveCmd())
	cmd.AddCommand(newLogsListCmd())
	cmd.AddCommand(newLogsGetCmd())
	cmd.AddCommand(newLogsClearCmd())

	return cmd
}

func newLogsSaveCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save the current league state under a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				return fmt.Errorf("--date is required")
			}

			req := map[string]string{"date": date}
			if err := client.Post("/api/v1/logs", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Saved log for %s", date))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Log date YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newLogsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved log dates, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result LogDates
			if err := client.Get("/api/v1/logs", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newLogsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <date>",
		Short: "Show the league state saved for a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SnapshotResult
			if err := client.Get("/api/v1/logs/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newLogsClearCmd() *cobra.Command {
	var scope string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete saved logs",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/logs"
			if scope != "" {
				path += "?scope=" + scope
			}

			if err := client.Delete(path); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Logs cleared")
			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "both", "Which copies to clear: remote, local, both")

	return cmd
}
