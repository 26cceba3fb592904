package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player management commands",
	}

	cmd.AddCommand(newPlayerListCmd())
	cmd.AddCommand(newPlayerAddCmd())
	cmd.AddCommand(newPlayerEditCmd())
	cmd.AddCommand(newPlayerDeleteCmd())
	cmd.AddCommand(newPlayerAssignCmd())
	cmd.AddCommand(newPlayerPayCmd())

	return cmd
}

func playerPath(stored string) string {
	return "/api/v1/players/" + url.PathEscape(stored)
}

// playerFlags binds the shared add/edit flags to a request body
type playerFlags struct {
	name      string
	jersey    string
	position  string
	isCaptain bool
	tags      []string
}

func (f *playerFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Player name (required)")
	cmd.Flags().StringVar(&f.jersey, "jersey", "", "Jersey number")
	cmd.Flags().StringVar(&f.position, "position", "", "Position: PG, SG, SF, PF, C")
	cmd.Flags().BoolVar(&f.isCaptain, "captain", false, "Mark as team captain")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "Extra tag (repeatable)")
	_ = cmd.MarkFlagRequired("name")
}

func (f *playerFlags) body() map[string]any {
	return map[string]any{
		"name":       f.name,
		"jersey":     f.jersey,
		"position":   f.position,
		"is_captain": f.isCaptain,
		"tags":       f.tags,
	}
}

func newPlayerListCmd() *cobra.Command {
	var byName bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered players",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/players"
			if byName {
				path += "?sort=name"
			}

			var result []Player
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&byName, "by-name", false, "Sort alphabetically instead of by registration order")

	return cmd
}

func newPlayerAddCmd() *cobra.Command {
	var flags playerFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new player",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player
			if err := client.Post("/api/v1/players", flags.body(), &result); err != nil {
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

func newPlayerEditCmd() *cobra.Command {
	var flags playerFlags

	cmd := &cobra.Command{
		Use:   "edit <stored-name>",
		Short: "Edit a player's name tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player
			if err := client.Put(playerPath(args[0]), flags.body(), &result); err != nil {
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

func newPlayerDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <stored-name>",
		Short: "Remove a player from the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(playerPath(args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Deleted %s", args[0]))
			return nil
		},
	}
}

func newPlayerAssignCmd() *cobra.Command {
	var team string

	cmd := &cobra.Command{
		Use:   "assign <stored-name>",
		Short: "Assign a player to a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"team": team}

			var result Player
			if err := client.Put(playerPath(args[0])+"/team", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&team, "team", "", "Team letter A-J, empty to unassign")

	return cmd
}

func newPlayerPayCmd() *cobra.Command {
	var method string
	var unpay bool

	cmd := &cobra.Command{
		Use:   "pay <stored-name>",
		Short: "Record a player's registration payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"paid":   !unpay,
				"method": method,
			}

			var result Player
			if err := client.Put(playerPath(args[0])+"/payment", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&method, "method", "", "Payment method: cash, gcash (default cash)")
	cmd.Flags().BoolVar(&unpay, "clear", false, "Mark as unpaid instead")

	return cmd
}
