package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/spacetraders-bot/internal/application/common"
	shipCmd "github.com/andrescamacho/spacetraders-bot/internal/application/ship/commands"
	shipQuery "github.com/andrescamacho/spacetraders-bot/internal/application/ship/queries"
)

// NewShipCommand creates the ship command with subcommands
func NewShipCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ship",
		Short: "Inspect and move ships",
		Long: `Inspect ships and issue single remote actions.

Examples:
  spacetraders-bot ship available
  spacetraders-bot ship status --ship AGENT-1
  spacetraders-bot ship sources --ship AGENT-1
  spacetraders-bot ship navigate --ship AGENT-1 --destination X1-Q87-C3
  spacetraders-bot ship orbit --ship AGENT-1
  spacetraders-bot ship dock --ship AGENT-1`,
	}

	// Add subcommands
	cmd.AddCommand(newShipAvailableCommand())
	cmd.AddCommand(newShipStatusCommand())
	cmd.AddCommand(newShipSourcesCommand())
	cmd.AddCommand(newShipNavigateCommand())
	cmd.AddCommand(newShipModeCommand("orbit", "Put a ship into orbit at its waypoint"))
	cmd.AddCommand(newShipModeCommand("dock", "Dock a ship at its waypoint"))

	return cmd
}

func newShipAvailableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "available",
		Short: "Find the first ship free for a new job",
		Long: `List the fleet and report the first ship that is stationary, fuelled,
crewed, off cooldown and has free cargo space.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, ctx, err := bootstrap(cmd.Context(), "available", "")
			if err != nil {
				return err
			}

			resp, err := rt.mediator.Send(ctx, &shipQuery.FindAvailableShipQuery{})
			if err != nil {
				return err
			}
			result := resp.(*shipQuery.FindAvailableShipResponse)
			if result.Ship == nil {
				fmt.Printf("No available ship (%d checked)\n", result.Checked)
				return nil
			}

			fmt.Println("✓ Available ship found")
			printShip(result.Ship)
			return nil
		},
	}
}

func newShipStatusCommand() *cobra.Command {
	var shipSymbol string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show a ship's live status",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, ctx, err := bootstrap(cmd.Context(), "status", shipSymbol)
			if err != nil {
				return err
			}
			ship, err := rt.requireShip()
			if err != nil {
				return err
			}

			resp, err := rt.mediator.Send(ctx, &shipQuery.GetShipStatusQuery{ShipSymbol: ship})
			if err != nil {
				return err
			}
			result := resp.(*shipQuery.GetShipStatusResponse)

			printShip(result.Ship)
			fmt.Printf("  Cargo full:       %t\n", result.CargoFull)
			fmt.Printf("  Available:        %t\n", result.Available)
			return nil
		},
	}

	cmd.Flags().StringVar(&shipSymbol, "ship", "", "Ship symbol (default from config)")
	return cmd
}

func newShipSourcesCommand() *cobra.Command {
	var shipSymbol string

	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Scan for asteroids and marketplaces near a ship",
		Long: `Scan waypoints from a ship's position and list the mining sites and
marketplaces, nearest first. Without --ship the first owned ship scans.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, ctx, err := bootstrap(cmd.Context(), "sources", shipSymbol)
			if err != nil {
				return err
			}

			resp, err := rt.mediator.Send(ctx, &shipQuery.FindResourceSourcesQuery{ShipSymbol: rt.ship})
			if err != nil {
				return err
			}
			result := resp.(*shipQuery.FindResourceSourcesResponse)

			fmt.Printf("Resource sources scanned by %s from %s\n\n", result.ShipSymbol, result.Origin)
			if len(result.Sources) == 0 {
				fmt.Println("None found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "WAYPOINT\tTYPE\tMINE\tMARKET\tX\tY")
			for _, wp := range result.Sources {
				fmt.Fprintf(w, "%s\t%s\t%t\t%t\t%.0f\t%.0f\n",
					wp.Symbol, wp.Type, wp.IsMiningSite(), wp.IsMarketplace(), wp.X, wp.Y)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&shipSymbol, "ship", "", "Ship to scan from (default from config, else first owned)")
	return cmd
}

func newShipNavigateCommand() *cobra.Command {
	var (
		shipSymbol  string
		destination string
	)

	cmd := &cobra.Command{
		Use:   "navigate",
		Short: "Fly a ship to a waypoint and wait for arrival",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := required(destination, "destination"); err != nil {
				return err
			}
			rt, ctx, err := bootstrap(cmd.Context(), "navigate", shipSymbol)
			if err != nil {
				return err
			}
			ship, err := rt.requireShip()
			if err != nil {
				return err
			}

			resp, err := rt.mediator.Send(ctx, &shipCmd.NavigateShipCommand{ShipSymbol: ship, WaypointSymbol: destination})
			if err != nil {
				return fmt.Errorf("navigation failed: %w", err)
			}

			fmt.Println("✓ Navigation complete")
			fmt.Printf("  Ship:             %s\n", ship)
			fmt.Printf("  Destination:      %s\n", destination)
			fmt.Printf("  Status:           %s\n", resp.(*shipCmd.NavigateShipResponse).Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&shipSymbol, "ship", "", "Ship symbol (default from config)")
	cmd.Flags().StringVar(&destination, "destination", "", "Destination waypoint symbol (required)")
	return cmd
}

// newShipModeCommand builds the orbit and dock subcommands
func newShipModeCommand(use, short string) *cobra.Command {
	var shipSymbol string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, ctx, err := bootstrap(cmd.Context(), use, shipSymbol)
			if err != nil {
				return err
			}
			ship, err := rt.requireShip()
			if err != nil {
				return err
			}

			var request common.Request = &shipCmd.DockShipCommand{ShipSymbol: ship}
			if use == "orbit" {
				request = &shipCmd.OrbitShipCommand{ShipSymbol: ship}
			}
			resp, err := rt.mediator.Send(ctx, request)
			if err != nil {
				return fmt.Errorf("%s failed: %w", use, err)
			}

			fmt.Printf("✓ %s is %s\n", ship, resp.(*shipCmd.SetModeResponse).Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&shipSymbol, "ship", "", "Ship symbol (default from config)")
	return cmd
}
