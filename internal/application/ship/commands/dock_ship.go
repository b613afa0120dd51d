package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacetraders-bot/internal/application/common"
	"github.com/andrescamacho/spacetraders-bot/internal/application/sequencer"
)

// DockShipCommand - Command to dock a ship at its current waypoint
type DockShipCommand struct {
	ShipSymbol string `validate:"required"`
}

// SetModeResponse - Response from orbit and dock commands
type SetModeResponse struct {
	Status string // "in_orbit" or "docked"
}

// DockShipHandler - Handles dock ship commands
type DockShipHandler struct {
	seq *sequencer.Sequencer
}

// NewDockShipHandler creates a new dock ship handler
func NewDockShipHandler(seq *sequencer.Sequencer) *DockShipHandler {
	return &DockShipHandler{seq: seq}
}

// Handle executes the dock ship command
func (h *DockShipHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*DockShipCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}
	if err := common.ValidateRequest(cmd); err != nil {
		return nil, err
	}

	if err := h.seq.Dock(ctx, cmd.ShipSymbol); err != nil {
		return nil, err
	}
	return &SetModeResponse{Status: "docked"}, nil
}
