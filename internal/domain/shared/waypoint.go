package shared

import (
	"fmt"
	"math"
	"sort"
)

// Waypoint types and traits the bot cares about
const (
	WaypointTypeAsteroidField      = "ASTEROID_FIELD"
	WaypointTypeAsteroid           = "ASTEROID"
	WaypointTypeEngineeredAsteroid = "ENGINEERED_ASTEROID"
	WaypointTypeMarketplace        = "MARKETPLACE"

	TraitMarketplace = "MARKETPLACE"
)

// Waypoint represents an immutable location in space
type Waypoint struct {
	Symbol       string   `json:"symbol"`
	X            float64  `json:"x"`
	Y            float64  `json:"y"`
	SystemSymbol string   `json:"systemSymbol"`
	Type         string   `json:"type"`
	Traits       []string `json:"traits,omitempty"`
}

// NewWaypoint creates a new waypoint with validation
func NewWaypoint(symbol string, x, y float64) (*Waypoint, error) {
	if symbol == "" {
		return nil, NewValidationError("symbol", "cannot be empty")
	}

	return &Waypoint{
		Symbol:       symbol,
		X:            x,
		Y:            y,
		SystemSymbol: ExtractSystemSymbol(symbol),
		Traits:       []string{},
	}, nil
}

// DistanceTo calculates Euclidean distance to another waypoint
func (w *Waypoint) DistanceTo(other *Waypoint) float64 {
	dx := other.X - w.X
	dy := other.Y - w.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// HasTrait checks whether the waypoint carries the given trait symbol
func (w *Waypoint) HasTrait(trait string) bool {
	for _, t := range w.Traits {
		if t == trait {
			return true
		}
	}
	return false
}

// IsMiningSite reports whether ships can extract at this waypoint
func (w *Waypoint) IsMiningSite() bool {
	switch w.Type {
	case WaypointTypeAsteroidField, WaypointTypeAsteroid, WaypointTypeEngineeredAsteroid:
		return true
	}
	return false
}

// IsMarketplace reports whether the waypoint hosts a market
func (w *Waypoint) IsMarketplace() bool {
	return w.Type == WaypointTypeMarketplace || w.HasTrait(TraitMarketplace)
}

// IsResourceSource reports whether a resource can be mined or bought here
func (w *Waypoint) IsResourceSource() bool {
	return w.IsMiningSite() || w.IsMarketplace()
}

func (w *Waypoint) String() string {
	return fmt.Sprintf("Waypoint(%s)", w.Symbol)
}

// FilterResourceSources keeps mining sites and marketplaces, nearest to origin first.
// A nil origin preserves the scan order.
func FilterResourceSources(origin *Waypoint, waypoints []*Waypoint) []*Waypoint {
	sources := make([]*Waypoint, 0, len(waypoints))
	for _, wp := range waypoints {
		if wp != nil && wp.IsResourceSource() {
			sources = append(sources, wp)
		}
	}

	if origin != nil {
		sort.SliceStable(sources, func(i, j int) bool {
			return origin.DistanceTo(sources[i]) < origin.DistanceTo(sources[j])
		})
	}
	return sources
}

// ExtractSystemSymbol extracts the system symbol from a waypoint symbol
// by finding the last hyphen and returning everything before it.
// Example: "X1-AB12-C3D4" -> "X1-AB12"
func ExtractSystemSymbol(waypointSymbol string) string {
	systemSymbol := waypointSymbol
	for i := len(waypointSymbol) - 1; i >= 0; i-- {
		if waypointSymbol[i] == '-' {
			systemSymbol = waypointSymbol[:i]
			break
		}
	}
	return systemSymbol
}
