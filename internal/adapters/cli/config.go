package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/spacetraders-bot/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage SpaceTraders bot configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (ST_* prefix; token from SPACE_TRADERS_TOKEN)
2. Config file (config.yaml)
3. User preferences (default ship and mission)
4. Default values

User preferences are stored in ~/.spacetraders/config.json

Examples:
  spacetraders-bot config show
  spacetraders-bot config set-default --ship AGENT-1
  spacetraders-bot config set-default --mission cm-001
  spacetraders-bot config clear-default`,
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetDefaultCommand())
	cmd.AddCommand(newConfigClearDefaultCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long: `Display the effective configuration with the token masked.

Example:
  spacetraders-bot config show`,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Printf("Warning: Failed to load config: %v\n", err)
				fmt.Println("Using default configuration.")
				loaded = config.DefaultConfig()
			}
			if apiToken != "" {
				loaded.API.Token = apiToken
			}
			cfg := loaded.Redacted()

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			fmt.Println("SpaceTraders Bot Configuration")
			fmt.Println("==============================")

			fmt.Println("User Preferences:")
			fmt.Printf("  Config file:      %s\n", userConfigHandler.GetConfigPath())

			fmt.Println("\nSpaceTraders API:")
			fmt.Printf("  Base URL:         %s\n", cfg.API.BaseURL)
			fmt.Printf("  Timeout:          %s\n", cfg.API.Timeout)
			if cfg.API.HasToken() {
				fmt.Printf("  Token:            %s\n", cfg.API.Token)
			} else {
				fmt.Printf("  Token:            (not set)\n")
			}

			fmt.Println("\nSequencer:")
			fmt.Printf("  Wait Strategy:    %s\n", cfg.Sequencer.WaitStrategy)
			fmt.Printf("  Poll Interval:    %s\n", cfg.Sequencer.PollInterval)

			fmt.Println("\nDefaults:")
			fmt.Printf("  Ship:             %s\n", orNotSet(cfg.Defaults.ShipSymbol))
			fmt.Printf("  Mission:          %s\n", orNotSet(cfg.Defaults.MissionID))
			fmt.Printf("  Asteroid:         %s\n", orNotSet(cfg.Defaults.AsteroidSymbol))
			fmt.Printf("  Market:           %s\n", orNotSet(cfg.Defaults.MarketSymbol))
			fmt.Printf("  Trade Good:       %s\n", orNotSet(cfg.Defaults.TradeSymbol))
			fmt.Printf("  Target Units:     %d\n", cfg.Defaults.TargetUnits)

			fmt.Println("\nMetrics:")
			fmt.Printf("  Enabled:          %t\n", cfg.Metrics.Enabled)
			fmt.Printf("  Address:          %s%s\n", cfg.Metrics.Address, cfg.Metrics.Path)

			fmt.Println("\nLogging:")
			fmt.Printf("  Level:            %s\n", cfg.Logging.Level)
			fmt.Printf("  Format:           %s\n", cfg.Logging.Format)
			fmt.Printf("  Output:           %s\n", cfg.Logging.Output)

			return nil
		},
	}

	return cmd
}

// newConfigSetDefaultCommand creates the config set-default subcommand
func newConfigSetDefaultCommand() *cobra.Command {
	var (
		shipSymbol string
		missionID  string
	)

	cmd := &cobra.Command{
		Use:   "set-default",
		Short: "Set the default ship or mission",
		Long: `Store a default ship and/or mission used when --ship or --mission is omitted.

Examples:
  spacetraders-bot config set-default --ship AGENT-1
  spacetraders-bot config set-default --ship AGENT-1 --mission cm-001`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if shipSymbol == "" && missionID == "" {
				return fmt.Errorf("either --ship or --mission must be specified")
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if shipSymbol != "" {
				if err := userConfigHandler.SetDefaultShip(shipSymbol); err != nil {
					return fmt.Errorf("failed to set default ship: %w", err)
				}
				fmt.Printf("✓ Default ship set to %s\n", shipSymbol)
			}
			if missionID != "" {
				if err := userConfigHandler.SetDefaultMission(missionID); err != nil {
					return fmt.Errorf("failed to set default mission: %w", err)
				}
				fmt.Printf("✓ Default mission set to %s\n", missionID)
			}
			fmt.Printf("  Saved to: %s\n", userConfigHandler.GetConfigPath())
			return nil
		},
	}

	cmd.Flags().StringVar(&shipSymbol, "ship", "", "Default ship symbol")
	cmd.Flags().StringVar(&missionID, "mission", "", "Default mission ID")
	return cmd
}

// newConfigClearDefaultCommand creates the config clear-default subcommand
func newConfigClearDefaultCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-default",
		Short: "Clear the stored default ship and mission",
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := userConfigHandler.Clear(); err != nil {
				return fmt.Errorf("failed to clear defaults: %w", err)
			}
			fmt.Println("✓ Defaults cleared")
			return nil
		},
	}
}

func orNotSet(value string) string {
	if value == "" {
		return "(not set)"
	}
	return value
}
