package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/spacetraders-bot/internal/application/common"
	"github.com/andrescamacho/spacetraders-bot/internal/application/mission/types"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/mission"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/ports"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/shared"
)

// GetMissionStatusQuery reads a mission and summarises its progress
type GetMissionStatusQuery struct {
	MissionID string `validate:"required"`
}

// DeliveryProgress is one delivery line of the status report
type DeliveryProgress struct {
	TradeSymbol       string
	DestinationSymbol string
	UnitsRequired     int
	UnitsFulfilled    int
	UnitsRemaining    int
	Complete          bool
}

// GetMissionStatusResponse is the mission plus derived progress
type GetMissionStatusResponse struct {
	Mission        *mission.Mission
	Status         string
	Deliveries     []DeliveryProgress
	UnitsRemaining int
	TimeRemaining  time.Duration
	Terminal       bool
}

// GetMissionStatusHandler handles GetMissionStatusQuery
type GetMissionStatusHandler struct {
	apiClient ports.APIClient
	clock     shared.Clock
}

// NewGetMissionStatusHandler creates a new mission status handler
func NewGetMissionStatusHandler(apiClient ports.APIClient, clock shared.Clock) *GetMissionStatusHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GetMissionStatusHandler{apiClient: apiClient, clock: clock}
}

// Handle executes the query
func (h *GetMissionStatusHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetMissionStatusQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetMissionStatusQuery")
	}
	if err := common.ValidateRequest(query); err != nil {
		return nil, err
	}

	token, err := common.PlayerTokenFromContext(ctx)
	if err != nil {
		return nil, err
	}

	data, err := h.apiClient.GetMission(ctx, query.MissionID, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get mission %s: %w", query.MissionID, err)
	}

	m, err := types.ToDomain(data, h.clock)
	if err != nil {
		return nil, err
	}

	deliveries := make([]DeliveryProgress, 0, len(m.Terms().Deliveries))
	for _, d := range m.Terms().Deliveries {
		deliveries = append(deliveries, DeliveryProgress{
			TradeSymbol:       d.TradeSymbol,
			DestinationSymbol: d.DestinationSymbol,
			UnitsRequired:     d.UnitsRequired,
			UnitsFulfilled:    d.UnitsFulfilled,
			UnitsRemaining:    d.UnitsRemaining(),
			Complete:          d.IsComplete(),
		})
	}

	return &GetMissionStatusResponse{
		Mission:        m,
		Status:         m.Status(),
		Deliveries:     deliveries,
		UnitsRemaining: m.UnitsRemaining(),
		TimeRemaining:  m.TimeRemaining(),
		Terminal:       m.IsTerminal(),
	}, nil
}
