package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacetraders-bot/internal/application/common"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/ports"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/shared"
)

// FindResourceSourcesQuery scans around a ship for asteroids and marketplaces.
// An empty ShipSymbol means the first ship of the fleet.
type FindResourceSourcesQuery struct {
	ShipSymbol string
}

// FindResourceSourcesResponse lists sources nearest first
type FindResourceSourcesResponse struct {
	ShipSymbol string
	Origin     string
	Sources    []*shared.Waypoint
}

// FindResourceSourcesHandler handles FindResourceSourcesQuery
type FindResourceSourcesHandler struct {
	apiClient ports.APIClient
}

// NewFindResourceSourcesHandler creates a new FindResourceSourcesHandler
func NewFindResourceSourcesHandler(apiClient ports.APIClient) *FindResourceSourcesHandler {
	return &FindResourceSourcesHandler{apiClient: apiClient}
}

// Handle executes the query
func (h *FindResourceSourcesHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*FindResourceSourcesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *FindResourceSourcesQuery")
	}

	token, err := common.PlayerTokenFromContext(ctx)
	if err != nil {
		return nil, err
	}

	shipSymbol, location, err := h.resolveShip(ctx, query.ShipSymbol, token)
	if err != nil {
		return nil, err
	}

	scanned, err := h.apiClient.ScanWaypoints(ctx, shipSymbol, token)
	if err != nil {
		return nil, fmt.Errorf("failed to scan waypoints from %s: %w", shipSymbol, err)
	}

	var origin *shared.Waypoint
	for _, wp := range scanned {
		if wp != nil && wp.Symbol == location {
			origin = wp
			break
		}
	}

	sources := shared.FilterResourceSources(origin, scanned)
	common.LoggerFromContext(ctx).Log(common.LevelInfo, fmt.Sprintf("Found %d resource sources", len(sources)), map[string]interface{}{
		"ship_symbol": shipSymbol,
		"action":      "scan_waypoints",
		"scanned":     len(scanned),
		"sources":     len(sources),
	})

	return &FindResourceSourcesResponse{
		ShipSymbol: shipSymbol,
		Origin:     location,
		Sources:    sources,
	}, nil
}

func (h *FindResourceSourcesHandler) resolveShip(ctx context.Context, shipSymbol, token string) (string, string, error) {
	if shipSymbol != "" {
		data, err := h.apiClient.GetShip(ctx, shipSymbol, token)
		if err != nil {
			return "", "", fmt.Errorf("failed to get ship %s: %w", shipSymbol, err)
		}
		return data.Symbol, data.Location, nil
	}

	fleet, err := h.apiClient.ListShips(ctx, token)
	if err != nil {
		return "", "", fmt.Errorf("failed to list ships: %w", err)
	}
	if len(fleet) == 0 {
		return "", "", shared.NewDomainError("no ships owned")
	}
	return fleet[0].Symbol, fleet[0].Location, nil
}
