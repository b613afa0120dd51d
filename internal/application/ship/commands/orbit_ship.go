package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacetraders-bot/internal/application/common"
	"github.com/andrescamacho/spacetraders-bot/internal/application/sequencer"
)

// OrbitShipCommand - Command to put a ship into orbit at its current waypoint
type OrbitShipCommand struct {
	ShipSymbol string `validate:"required"`
}

// OrbitShipHandler - Handles orbit ship commands
type OrbitShipHandler struct {
	seq *sequencer.Sequencer
}

// NewOrbitShipHandler creates a new orbit ship handler
func NewOrbitShipHandler(seq *sequencer.Sequencer) *OrbitShipHandler {
	return &OrbitShipHandler{seq: seq}
}

// Handle executes the orbit ship command
func (h *OrbitShipHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*OrbitShipCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}
	if err := common.ValidateRequest(cmd); err != nil {
		return nil, err
	}

	if err := h.seq.Orbit(ctx, cmd.ShipSymbol); err != nil {
		return nil, err
	}
	return &SetModeResponse{Status: "in_orbit"}, nil
}
