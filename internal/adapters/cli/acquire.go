package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	miningCmd "github.com/andrescamacho/spacetraders-bot/internal/application/mining/commands"
	tradingCmd "github.com/andrescamacho/spacetraders-bot/internal/application/trading/commands"
)

// NewAcquireCommand creates the acquire command with its mine and purchase strategies
func NewAcquireCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "acquire",
		Short: "Acquire goods by mining or purchase",
		Long: `Fill a ship's hold with a good.

  mine      fly to an asteroid, orbit and extract until the target is met
            or the hold is full
  purchase  fly to a market, dock and buy; reports when the market does not sell it

Examples:
  spacetraders-bot acquire mine --ship AGENT-1 --asteroid X1-Q87-C3 --good ALUMINUM_ORE --units 60
  spacetraders-bot acquire purchase --ship AGENT-1 --market X1-Q87-B2 --good FUEL --units 20`,
	}

	cmd.AddCommand(newAcquireMineCommand())
	cmd.AddCommand(newAcquirePurchaseCommand())

	return cmd
}

func newAcquireMineCommand() *cobra.Command {
	var (
		shipSymbol string
		asteroid   string
		good       string
		units      int
	)

	cmd := &cobra.Command{
		Use:   "mine",
		Short: "Mine a good at an asteroid",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, ctx, err := bootstrap(cmd.Context(), "mine", shipSymbol)
			if err != nil {
				return err
			}
			ship, err := rt.requireShip()
			if err != nil {
				return err
			}
			target := pick(asteroid, rt.cfg.Defaults.AsteroidSymbol)
			if err := required(target, "asteroid"); err != nil {
				return err
			}
			if !cmd.Flags().Changed("units") {
				units = rt.cfg.Defaults.TargetUnits
			}

			resp, err := rt.mediator.Send(ctx, &miningCmd.AcquireByMiningCommand{
				ShipSymbol:     ship,
				AsteroidSymbol: target,
				TradeSymbol:    pick(good, rt.cfg.Defaults.TradeSymbol),
				Units:          units,
			})
			if err != nil {
				return fmt.Errorf("mining failed: %w", err)
			}
			result := resp.(*miningCmd.AcquireByMiningResponse)

			fmt.Println("✓ Mining complete")
			fmt.Printf("  Units acquired:   %d\n", result.UnitsAcquired)
			fmt.Printf("  Extractions:      %d\n", result.Extractions)
			fmt.Printf("  Stopped because:  %s\n", result.Reason)
			printCounts("Yields", result.Yields)
			return nil
		},
	}

	cmd.Flags().StringVar(&shipSymbol, "ship", "", "Mining ship (default from config)")
	cmd.Flags().StringVar(&asteroid, "asteroid", "", "Asteroid waypoint (default from config)")
	cmd.Flags().StringVar(&good, "good", "", "Good to count toward --units (empty counts every yield)")
	cmd.Flags().IntVar(&units, "units", 0, "Units to collect (0 mines until the hold is full)")
	return cmd
}

func newAcquirePurchaseCommand() *cobra.Command {
	var (
		shipSymbol string
		marketWP   string
		good       string
		units      int
	)

	cmd := &cobra.Command{
		Use:   "purchase",
		Short: "Buy a good at a market",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, ctx, err := bootstrap(cmd.Context(), "purchase", shipSymbol)
			if err != nil {
				return err
			}
			ship, err := rt.requireShip()
			if err != nil {
				return err
			}
			market := pick(marketWP, rt.cfg.Defaults.MarketSymbol)
			if err := required(market, "market"); err != nil {
				return err
			}
			tradeSymbol := pick(good, rt.cfg.Defaults.TradeSymbol)
			if err := required(tradeSymbol, "good"); err != nil {
				return err
			}
			if !cmd.Flags().Changed("units") {
				units = rt.cfg.Defaults.TargetUnits
			}

			resp, err := rt.mediator.Send(ctx, &tradingCmd.AcquireByPurchaseCommand{
				ShipSymbol:   ship,
				MarketSymbol: market,
				TradeSymbol:  tradeSymbol,
				Units:        units,
			})
			if err != nil {
				return fmt.Errorf("purchase failed: %w", err)
			}
			result := resp.(*tradingCmd.AcquireByPurchaseResponse)

			if !result.Available {
				fmt.Printf("✗ %s is not sold at %s\n", tradeSymbol, market)
				return nil
			}
			fmt.Println("✓ Purchase complete")
			fmt.Printf("  Units purchased:  %d\n", result.UnitsPurchased)
			fmt.Printf("  Total cost:       %d\n", result.TotalCost)
			fmt.Printf("  Transactions:     %d\n", result.Transactions)
			return nil
		},
	}

	cmd.Flags().StringVar(&shipSymbol, "ship", "", "Buying ship (default from config)")
	cmd.Flags().StringVar(&marketWP, "market", "", "Market waypoint (default from config)")
	cmd.Flags().StringVar(&good, "good", "", "Good to buy (default from config)")
	cmd.Flags().IntVar(&units, "units", 0, "Units to buy")
	return cmd
}

// printCounts writes a sorted symbol -> units list under a heading
func printCounts(heading string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	symbols := make([]string, 0, len(counts))
	for symbol := range counts {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	fmt.Printf("  %s:\n", heading)
	for _, symbol := range symbols {
		fmt.Printf("    - %-20s %d\n", symbol, counts[symbol])
	}
}
