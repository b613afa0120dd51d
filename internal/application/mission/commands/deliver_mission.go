package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacetraders-bot/internal/application/common"
	"github.com/andrescamacho/spacetraders-bot/internal/application/mission/types"
	"github.com/andrescamacho/spacetraders-bot/internal/application/sequencer"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/mission"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/ports"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/shared"
)

// DeliverMissionCommand moves a ship to the mission's destination, docks and
// asks the server to fulfil the mission. An empty DestinationSymbol means the
// mission's primary delivery destination.
type DeliverMissionCommand struct {
	MissionID         string `validate:"required"`
	ShipSymbol        string `validate:"required"`
	DestinationSymbol string
}

// DeliverMissionResponse reports where the ship went and the mission afterwards
type DeliverMissionResponse struct {
	Mission     *mission.Mission
	Destination string
	Navigated   bool
}

// DeliverMissionHandler handles DeliverMissionCommand
type DeliverMissionHandler struct {
	apiClient ports.APIClient
	seq       *sequencer.Sequencer
}

// NewDeliverMissionHandler creates a new deliver mission handler
func NewDeliverMissionHandler(apiClient ports.APIClient, seq *sequencer.Sequencer) *DeliverMissionHandler {
	return &DeliverMissionHandler{apiClient: apiClient, seq: seq}
}

// Handle runs get mission, navigate (skipped when already there), dock, fulfil.
// Nothing is undone if a later step fails.
func (h *DeliverMissionHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*DeliverMissionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *DeliverMissionCommand")
	}
	if err := common.ValidateRequest(cmd); err != nil {
		return nil, err
	}

	current, err := h.loadMission(ctx, cmd.MissionID)
	if err != nil {
		return nil, err
	}
	if err := current.CheckFulfillable(); err != nil {
		return nil, err
	}

	destination := cmd.DestinationSymbol
	if destination == "" {
		destination = current.PrimaryDestination()
	}
	if destination == "" {
		return nil, shared.NewMissionError(cmd.MissionID, "mission has no delivery destination")
	}

	ship, err := h.seq.GetShip(ctx, cmd.ShipSymbol)
	if err != nil {
		return nil, err
	}
	navigated, err := h.seq.MoveTo(ctx, ship, destination)
	if err != nil {
		return nil, err
	}

	if err := h.seq.Dock(ctx, cmd.ShipSymbol); err != nil {
		return nil, err
	}

	data, err := h.seq.FulfillMission(ctx, cmd.MissionID)
	if err != nil {
		return nil, err
	}
	h.seq.Idle(ctx, cmd.ShipSymbol)

	fulfilled, err := types.ToDomain(data, h.seq.Clock())
	if err != nil {
		return nil, err
	}

	return &DeliverMissionResponse{
		Mission:     fulfilled,
		Destination: destination,
		Navigated:   navigated,
	}, nil
}

func (h *DeliverMissionHandler) loadMission(ctx context.Context, missionID string) (*mission.Mission, error) {
	token, err := common.PlayerTokenFromContext(ctx)
	if err != nil {
		return nil, err
	}
	data, err := h.apiClient.GetMission(ctx, missionID, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get mission %s: %w", missionID, err)
	}
	return types.ToDomain(data, h.seq.Clock())
}
