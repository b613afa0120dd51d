package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	miningCmd "github.com/andrescamacho/spacetraders-bot/internal/application/mining/commands"
	"github.com/andrescamacho/spacetraders-bot/internal/infrastructure/pidfile"
)

// NewMineCommand creates the mine command
func NewMineCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mine",
		Short: "Run mining loops",
		Long: `Run repeated mine-and-sell cycles.

Examples:
  spacetraders-bot mine loop --ship AGENT-1 --asteroid X1-Q87-C3 --market X1-Q87-B2
  spacetraders-bot mine loop --ship AGENT-1 --asteroid X1-Q87-C3 --market X1-Q87-B2 --cycles 3`,
	}

	cmd.AddCommand(newMineLoopCommand())

	return cmd
}

func newMineLoopCommand() *cobra.Command {
	var (
		shipSymbol string
		asteroid   string
		marketWP   string
		cycles     int
	)

	cmd := &cobra.Command{
		Use:   "loop",
		Short: "Mine until full, sell, repeat",
		Long: `Each cycle mines at the asteroid until the hold is full, then flies to
the market and sells every good the market trades. Goods the market does not
trade stay in the hold. With --cycles 0 the loop runs until interrupted.

Only one loop may drive a ship at a time; the lock lives in ~/.spacetraders/run.`,
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
			market := pick(marketWP, rt.cfg.Defaults.MarketSymbol)
			if err := required(market, "market"); err != nil {
				return err
			}

			lockDir, err := pidfile.DefaultDir()
			if err != nil {
				return err
			}
			lock := pidfile.ForShip(lockDir, ship)
			if err := lock.Acquire(); err != nil {
				return err
			}
			defer func() { _ = lock.Release() }()

			resp, err := rt.mediator.Send(ctx, &miningCmd.RunMiningCyclesCommand{
				ShipSymbol:     ship,
				AsteroidSymbol: target,
				MarketSymbol:   market,
				Cycles:         cycles,
			})
			if totals, ok := resp.(*miningCmd.RunMiningCyclesResponse); ok && totals != nil {
				printMiningTotals(totals)
			}
			if err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("mining loop stopped: %w", err)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&shipSymbol, "ship", "", "Mining ship (default from config)")
	cmd.Flags().StringVar(&asteroid, "asteroid", "", "Asteroid waypoint (default from config)")
	cmd.Flags().StringVar(&marketWP, "market", "", "Market waypoint (default from config)")
	cmd.Flags().IntVar(&cycles, "cycles", 0, "Cycles to run (0 runs until interrupted)")
	return cmd
}

func printMiningTotals(totals *miningCmd.RunMiningCyclesResponse) {
	fmt.Println("Mining loop totals")
	fmt.Printf("  Cycles completed: %d\n", totals.CyclesCompleted)
	fmt.Printf("  Units mined:      %d\n", totals.UnitsMined)
	fmt.Printf("  Units sold:       %d\n", totals.UnitsSold)
	fmt.Printf("  Revenue:          %d\n", totals.Revenue)
	printCounts("Kept in hold", totals.Unsold)
}
