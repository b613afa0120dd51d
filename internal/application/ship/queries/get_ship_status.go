package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacetraders-bot/internal/application/common"
	"github.com/andrescamacho/spacetraders-bot/internal/application/sequencer"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/navigation"
)

// GetShipStatusQuery represents a query to get ship details
type GetShipStatusQuery struct {
	ShipSymbol string `validate:"required"`
}

// GetShipStatusResponse represents the result of getting a ship
type GetShipStatusResponse struct {
	Ship      *navigation.Ship
	CargoFull bool
	Available bool
}

// GetShipStatusHandler handles the GetShipStatus query
type GetShipStatusHandler struct {
	seq *sequencer.Sequencer
}

// NewGetShipStatusHandler creates a new GetShipStatusHandler
func NewGetShipStatusHandler(seq *sequencer.Sequencer) *GetShipStatusHandler {
	return &GetShipStatusHandler{seq: seq}
}

// Handle executes the GetShipStatus query
func (h *GetShipStatusHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetShipStatusQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetShipStatusQuery")
	}
	if err := common.ValidateRequest(query); err != nil {
		return nil, err
	}

	ship, err := h.seq.GetShip(ctx, query.ShipSymbol)
	if err != nil {
		return nil, err
	}

	return &GetShipStatusResponse{
		Ship:      ship,
		CargoFull: ship.IsCargoFull(),
		Available: ship.IsAvailable(),
	}, nil
}
