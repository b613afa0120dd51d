package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacetraders-bot/internal/application/common"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/navigation"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/ports"
)

// FindAvailableShipQuery looks for the first ship that can take a job now
type FindAvailableShipQuery struct{}

// FindAvailableShipResponse holds the ship, nil when none qualifies
type FindAvailableShipResponse struct {
	Ship    *navigation.Ship
	Checked int
}

// FindAvailableShipHandler handles FindAvailableShipQuery
type FindAvailableShipHandler struct {
	apiClient ports.APIClient
}

// NewFindAvailableShipHandler creates a new FindAvailableShipHandler
func NewFindAvailableShipHandler(apiClient ports.APIClient) *FindAvailableShipHandler {
	return &FindAvailableShipHandler{apiClient: apiClient}
}

// Handle lists the fleet in server order and returns the first available ship.
// Having no available ship is not an error.
func (h *FindAvailableShipHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*FindAvailableShipQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *FindAvailableShipQuery")
	}

	token, err := common.PlayerTokenFromContext(ctx)
	if err != nil {
		return nil, err
	}
	logger := common.LoggerFromContext(ctx)

	fleet, err := h.apiClient.ListShips(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to list ships: %w", err)
	}

	response := &FindAvailableShipResponse{}
	for _, data := range fleet {
		response.Checked++
		ship, err := navigation.NewShipFromData(data)
		if err != nil {
			logger.Log(common.LevelWarn, "Skipping ship with unreadable data", map[string]interface{}{
				"ship_symbol": data.Symbol,
				"error":       err.Error(),
			})
			continue
		}
		if ship.IsAvailable() {
			response.Ship = ship
			return response, nil
		}
	}

	logger.Log(common.LevelInfo, "No available ship", map[string]interface{}{
		"ships_checked": response.Checked,
	})
	return response, nil
}
