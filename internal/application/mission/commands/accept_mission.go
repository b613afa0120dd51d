package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacetraders-bot/internal/application/common"
	"github.com/andrescamacho/spacetraders-bot/internal/application/mission/types"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/mission"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/ports"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/shared"
)

// AcceptMissionCommand accepts an open mission
type AcceptMissionCommand struct {
	MissionID string `validate:"required"`
}

// AcceptMissionResponse carries the mission as the server reports it after acceptance
type AcceptMissionResponse struct {
	Mission *mission.Mission
}

// AcceptMissionHandler handles AcceptMissionCommand
type AcceptMissionHandler struct {
	apiClient ports.APIClient
	clock     shared.Clock
}

// NewAcceptMissionHandler creates a new accept mission handler
func NewAcceptMissionHandler(apiClient ports.APIClient, clock shared.Clock) *AcceptMissionHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &AcceptMissionHandler{apiClient: apiClient, clock: clock}
}

// Handle issues the accept request. Whether the mission can still be accepted
// is decided by the server; its rejection is returned as is.
func (h *AcceptMissionHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*AcceptMissionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AcceptMissionCommand")
	}
	if err := common.ValidateRequest(cmd); err != nil {
		return nil, err
	}

	token, err := common.PlayerTokenFromContext(ctx)
	if err != nil {
		return nil, err
	}
	logger := common.LoggerFromContext(ctx)

	data, err := h.apiClient.AcceptMission(ctx, cmd.MissionID, token)
	if err != nil {
		logger.Log(common.LevelError, "Mission accept failed", common.ErrorMetadata(err, map[string]interface{}{
			"mission_id": cmd.MissionID,
			"action":     "accept_mission",
		}))
		return nil, fmt.Errorf("failed to accept mission %s: %w", cmd.MissionID, err)
	}

	m, err := types.ToDomain(data, h.clock)
	if err != nil {
		return nil, err
	}

	logger.Log(common.LevelInfo, fmt.Sprintf("Mission %s accepted", m.MissionID()), map[string]interface{}{
		"mission_id":       m.MissionID(),
		"action":           "accept_mission",
		"payment_accepted": m.Terms().Payment.OnAccepted,
		"deadline":         m.Terms().Deadline,
	})
	return &AcceptMissionResponse{Mission: m}, nil
}
