package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacetraders-bot/internal/application/common"
	"github.com/andrescamacho/spacetraders-bot/internal/application/sequencer"
	"github.com/andrescamacho/spacetraders-bot/pkg/utils"
)

// AcquireByPurchaseCommand buys Units of a good at a market waypoint
type AcquireByPurchaseCommand struct {
	ShipSymbol   string `validate:"required"`
	MarketSymbol string `validate:"required"`
	TradeSymbol  string `validate:"required"`
	Units        int    `validate:"gt=0"`
}

// AcquireByPurchaseResponse reports the purchase. Available is false when the
// market does not sell the good; no purchase is attempted in that case.
type AcquireByPurchaseResponse struct {
	Available      bool
	UnitsPurchased int
	TotalCost      int
	Transactions   int
}

// AcquireByPurchaseHandler handles AcquireByPurchaseCommand
type AcquireByPurchaseHandler struct {
	seq *sequencer.Sequencer
}

// NewAcquireByPurchaseHandler creates a new purchase acquisition handler
func NewAcquireByPurchaseHandler(seq *sequencer.Sequencer) *AcquireByPurchaseHandler {
	return &AcquireByPurchaseHandler{seq: seq}
}

// Handle moves the ship to the market, docks, reads the listing and buys.
// Purchases are split at the market's trade volume.
func (h *AcquireByPurchaseHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*AcquireByPurchaseCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AcquireByPurchaseCommand")
	}
	if err := common.ValidateRequest(cmd); err != nil {
		return nil, err
	}
	logger := common.LoggerFromContext(ctx)

	ship, err := h.seq.GetShip(ctx, cmd.ShipSymbol)
	if err != nil {
		return nil, err
	}
	if _, err := h.seq.MoveTo(ctx, ship, cmd.MarketSymbol); err != nil {
		return nil, err
	}
	if err := h.seq.Dock(ctx, cmd.ShipSymbol); err != nil {
		return nil, err
	}

	market, err := h.seq.GetMarket(ctx, cmd.MarketSymbol)
	if err != nil {
		return nil, err
	}

	good, ok := market.PurchasableGood(cmd.TradeSymbol)
	if !ok {
		logger.Log(common.LevelWarn, fmt.Sprintf("%s is not sold at %s", cmd.TradeSymbol, cmd.MarketSymbol), map[string]interface{}{
			"ship_symbol":  cmd.ShipSymbol,
			"action":       "purchase",
			"trade_symbol": cmd.TradeSymbol,
			"market":       cmd.MarketSymbol,
		})
		h.seq.Idle(ctx, cmd.ShipSymbol)
		return &AcquireByPurchaseResponse{Available: false}, nil
	}

	response := &AcquireByPurchaseResponse{Available: true}
	limit := good.TradeVolume()
	for remaining := cmd.Units; remaining > 0; {
		batch := utils.BatchSize(remaining, limit)

		result, err := h.seq.Purchase(ctx, cmd.ShipSymbol, cmd.TradeSymbol, batch)
		if err != nil {
			return response, err
		}
		response.UnitsPurchased += result.Units
		response.TotalCost += result.TotalPrice
		response.Transactions++
		remaining -= batch
	}

	h.seq.Idle(ctx, cmd.ShipSymbol)
	return response, nil
}
