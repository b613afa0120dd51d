package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacetraders-bot/internal/application/common"
	"github.com/andrescamacho/spacetraders-bot/internal/application/sequencer"
)

// NavigateShipCommand flies a ship to a waypoint and blocks until arrival
type NavigateShipCommand struct {
	ShipSymbol     string `validate:"required"`
	WaypointSymbol string `validate:"required"`
}

// NavigateShipResponse - Response from navigate ship command
type NavigateShipResponse struct {
	Status string // "arrived" or "already_at_destination"
}

// NavigateShipHandler - Handles navigate ship commands
type NavigateShipHandler struct {
	seq *sequencer.Sequencer
}

// NewNavigateShipHandler creates a new navigate ship handler
func NewNavigateShipHandler(seq *sequencer.Sequencer) *NavigateShipHandler {
	return &NavigateShipHandler{seq: seq}
}

// Handle executes the navigate ship command
func (h *NavigateShipHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*NavigateShipCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}
	if err := common.ValidateRequest(cmd); err != nil {
		return nil, err
	}

	ship, err := h.seq.GetShip(ctx, cmd.ShipSymbol)
	if err != nil {
		return nil, err
	}

	navigated, err := h.seq.MoveTo(ctx, ship, cmd.WaypointSymbol)
	if err != nil {
		return nil, err
	}
	h.seq.Idle(ctx, cmd.ShipSymbol)

	if !navigated {
		return &NavigateShipResponse{Status: "already_at_destination"}, nil
	}
	return &NavigateShipResponse{Status: "arrived"}, nil
}
