package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	apiToken   string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "spacetraders-bot",
		Short: "SpaceTraders bot - drive ships through missions, mining and trade",
		Long: `SpaceTraders bot sequences remote actions for your fleet.

Every command talks to the SpaceTraders API directly and waits out the
arrival times and cooldowns the server reports before the next step.

The agent token is read from SPACE_TRADERS_TOKEN (or --token).

Examples:
  spacetraders-bot ship available
  spacetraders-bot ship sources --ship AGENT-1
  spacetraders-bot mission accept --mission cm-001
  spacetraders-bot acquire mine --ship AGENT-1 --asteroid X1-Q87-C3 --good ALUMINUM_ORE --units 60
  spacetraders-bot mission deliver --mission cm-001 --ship AGENT-1
  spacetraders-bot mine loop --ship AGENT-1 --asteroid X1-Q87-C3 --market X1-Q87-B2`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml, ./configs/, ~/.spacetraders/)")
	rootCmd.PersistentFlags().StringVar(&apiToken, "token", "",
		"Agent bearer token (overrides SPACE_TRADERS_TOKEN)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewShipCommand())
	rootCmd.AddCommand(NewMissionCommand())
	rootCmd.AddCommand(NewAcquireCommand())
	rootCmd.AddCommand(NewMarketCommand())
	rootCmd.AddCommand(NewMineCommand())

	return rootCmd
}

// Execute runs the root command. Cancellation (Ctrl-C) is a clean exit.
func Execute(ctx context.Context) int {
	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Interrupted")
			return 0
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
