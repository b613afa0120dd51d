package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacetraders-bot/internal/application/common"
	"github.com/andrescamacho/spacetraders-bot/internal/application/sequencer"
)

// SellCargoCommand sells a good at the ship's current market. The ship must
// already be docked there. Units of zero sells everything held.
type SellCargoCommand struct {
	ShipSymbol  string `validate:"required"`
	TradeSymbol string `validate:"required"`
	Units       int    `validate:"min=0"`
}

// SellCargoResponse reports the sale
type SellCargoResponse struct {
	UnitsSold    int
	Revenue      int
	PricePerUnit int
}

// SellCargoHandler handles SellCargoCommand
type SellCargoHandler struct {
	seq *sequencer.Sequencer
}

// NewSellCargoHandler creates a new sell cargo handler
func NewSellCargoHandler(seq *sequencer.Sequencer) *SellCargoHandler {
	return &SellCargoHandler{seq: seq}
}

// Handle executes the sale
func (h *SellCargoHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*SellCargoCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SellCargoCommand")
	}
	if err := common.ValidateRequest(cmd); err != nil {
		return nil, err
	}

	units := cmd.Units
	if units == 0 {
		ship, err := h.seq.GetShip(ctx, cmd.ShipSymbol)
		if err != nil {
			return nil, err
		}
		units = ship.Cargo().GetItemUnits(cmd.TradeSymbol)
		if units == 0 {
			return &SellCargoResponse{}, nil
		}
	}

	result, err := h.seq.Sell(ctx, cmd.ShipSymbol, cmd.TradeSymbol, units)
	if err != nil {
		return nil, err
	}

	return &SellCargoResponse{
		UnitsSold:    result.Units,
		Revenue:      result.TotalPrice,
		PricePerUnit: result.PricePerUnit,
	}, nil
}
