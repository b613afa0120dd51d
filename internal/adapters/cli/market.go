package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	tradingCmd "github.com/andrescamacho/spacetraders-bot/internal/application/trading/commands"
)

// NewMarketCommand creates the market command with subcommands
func NewMarketCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "market",
		Short: "Trade at the ship's current market",
		Long: `Trade cargo at the market where the ship is docked.

Examples:
  spacetraders-bot market sell --ship AGENT-1 --good ALUMINUM_ORE
  spacetraders-bot market sell --ship AGENT-1 --good ALUMINUM_ORE --units 20`,
	}

	cmd.AddCommand(newMarketSellCommand())

	return cmd
}

func newMarketSellCommand() *cobra.Command {
	var (
		shipSymbol string
		good       string
		units      int
	)

	cmd := &cobra.Command{
		Use:   "sell",
		Short: "Sell cargo at the current market",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, ctx, err := bootstrap(cmd.Context(), "sell", shipSymbol)
			if err != nil {
				return err
			}
			ship, err := rt.requireShip()
			if err != nil {
				return err
			}
			tradeSymbol := pick(good, rt.cfg.Defaults.TradeSymbol)
			if err := required(tradeSymbol, "good"); err != nil {
				return err
			}

			resp, err := rt.mediator.Send(ctx, &tradingCmd.SellCargoCommand{
				ShipSymbol:  ship,
				TradeSymbol: tradeSymbol,
				Units:       units,
			})
			if err != nil {
				return fmt.Errorf("sell failed: %w", err)
			}
			result := resp.(*tradingCmd.SellCargoResponse)

			if result.UnitsSold == 0 {
				fmt.Printf("%s holds no %s\n", ship, tradeSymbol)
				return nil
			}
			fmt.Println("✓ Sale complete")
			fmt.Printf("  Units sold:       %d\n", result.UnitsSold)
			fmt.Printf("  Price per unit:   %d\n", result.PricePerUnit)
			fmt.Printf("  Revenue:          %d\n", result.Revenue)
			return nil
		},
	}

	cmd.Flags().StringVar(&shipSymbol, "ship", "", "Selling ship (default from config)")
	cmd.Flags().StringVar(&good, "good", "", "Good to sell (default from config)")
	cmd.Flags().IntVar(&units, "units", 0, "Units to sell (0 sells everything held)")
	return cmd
}
