package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacetraders-bot/internal/application/common"
	"github.com/andrescamacho/spacetraders-bot/internal/application/sequencer"
	tradingCmd "github.com/andrescamacho/spacetraders-bot/internal/application/trading/commands"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/market"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/shared"
	"github.com/andrescamacho/spacetraders-bot/pkg/utils"
)

// RunMiningCyclesCommand repeats mine-until-full at the asteroid then sell at
// the market. Cycles of zero runs until the context is cancelled.
type RunMiningCyclesCommand struct {
	ShipSymbol     string `validate:"required"`
	AsteroidSymbol string `validate:"required"`
	MarketSymbol   string `validate:"required"`
	Cycles         int    `validate:"min=0"`
}

// RunMiningCyclesResponse totals every completed cycle
type RunMiningCyclesResponse struct {
	CyclesCompleted int
	UnitsMined      int
	UnitsSold       int
	Revenue         int
	Unsold          map[string]int
}

// RunMiningCyclesHandler handles RunMiningCyclesCommand. Mining and selling go
// through the mediator so each step is logged and measured as its own command.
type RunMiningCyclesHandler struct {
	mediator common.Mediator
	seq      *sequencer.Sequencer
}

// NewRunMiningCyclesHandler creates a new mining loop handler
func NewRunMiningCyclesHandler(mediator common.Mediator, seq *sequencer.Sequencer) *RunMiningCyclesHandler {
	return &RunMiningCyclesHandler{mediator: mediator, seq: seq}
}

// Handle runs the loop. On error or cancellation the totals so far are
// returned along with the error.
func (h *RunMiningCyclesHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RunMiningCyclesCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RunMiningCyclesCommand")
	}
	if err := common.ValidateRequest(cmd); err != nil {
		return nil, err
	}
	logger := common.LoggerFromContext(ctx)
	totals := &RunMiningCyclesResponse{Unsold: make(map[string]int)}

	for cycle := 1; cmd.Cycles == 0 || cycle <= cmd.Cycles; cycle++ {
		if err := ctx.Err(); err != nil {
			return totals, err
		}

		logger.Log(common.LevelInfo, fmt.Sprintf("Mining cycle %d started", cycle), map[string]interface{}{
			"ship_symbol": cmd.ShipSymbol,
			"action":      "mining_cycle",
			"cycle":       cycle,
		})

		mined, err := h.mediator.Send(ctx, &AcquireByMiningCommand{
			ShipSymbol:     cmd.ShipSymbol,
			AsteroidSymbol: cmd.AsteroidSymbol,
		})
		if err != nil {
			return totals, err
		}
		totals.UnitsMined += mined.(*AcquireByMiningResponse).UnitsAcquired

		if err := h.sellAll(ctx, cmd, totals); err != nil {
			return totals, err
		}
		totals.CyclesCompleted++
	}

	return totals, nil
}

// sellAll moves to the market, docks and sells every held good the market
// lists, in batches no larger than its trade volume
func (h *RunMiningCyclesHandler) sellAll(ctx context.Context, cmd *RunMiningCyclesCommand, totals *RunMiningCyclesResponse) error {
	ship, err := h.seq.GetShip(ctx, cmd.ShipSymbol)
	if err != nil {
		return err
	}
	if _, err := h.seq.MoveTo(ctx, ship, cmd.MarketSymbol); err != nil {
		return err
	}
	if err := h.seq.Dock(ctx, cmd.ShipSymbol); err != nil {
		return err
	}

	listing, err := h.seq.GetMarket(ctx, cmd.MarketSymbol)
	if err != nil {
		return err
	}

	for _, item := range ship.Cargo().Inventory {
		if !listing.HasGood(item.Symbol) {
			totals.Unsold[item.Symbol] = item.Units
			common.LoggerFromContext(ctx).Log(common.LevelWarn, fmt.Sprintf("%s is not traded at %s, keeping it", item.Symbol, cmd.MarketSymbol), map[string]interface{}{
				"ship_symbol":  cmd.ShipSymbol,
				"action":       "sell",
				"trade_symbol": item.Symbol,
				"units":        item.Units,
			})
			continue
		}
		delete(totals.Unsold, item.Symbol)
		if err := h.sellInBatches(ctx, cmd.ShipSymbol, listing, item.Symbol, item.Units, totals); err != nil {
			return err
		}
	}

	full, err := h.seq.IsCargoFull(ctx, cmd.ShipSymbol)
	if err != nil {
		return err
	}
	if full {
		return shared.NewShipError(cmd.ShipSymbol, fmt.Sprintf("cargo hold still full after selling at %s", cmd.MarketSymbol))
	}
	return nil
}

func (h *RunMiningCyclesHandler) sellInBatches(ctx context.Context, shipSymbol string, listing *market.Market, tradeSymbol string, units int, totals *RunMiningCyclesResponse) error {
	limit := listing.GetTransactionLimit(tradeSymbol)
	for remaining := units; remaining > 0; {
		batch := utils.BatchSize(remaining, limit)

		resp, err := h.mediator.Send(ctx, &tradingCmd.SellCargoCommand{
			ShipSymbol:  shipSymbol,
			TradeSymbol: tradeSymbol,
			Units:       batch,
		})
		if err != nil {
			return err
		}
		sold := resp.(*tradingCmd.SellCargoResponse)
		totals.UnitsSold += sold.UnitsSold
		totals.Revenue += sold.Revenue
		remaining -= batch
	}
	return nil
}
