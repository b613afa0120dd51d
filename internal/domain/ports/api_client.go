package ports

import (
	"context"

	"github.com/andrescamacho/spacetraders-bot/internal/domain/navigation"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/shared"
)

// APIClient defines the domain's interface for interacting with the SpaceTraders API.
//
// This interface is defined in the domain layer (not infrastructure) so that the
// application layer depends on an abstraction it owns. The HTTP adapter in
// internal/adapters/api implements it, and tests substitute an in-memory fake.
//
// Every method maps to exactly one remote endpoint. Implementations must not
// retry, cache or throttle: failures are returned to the caller as-is.
type APIClient interface {
	// Ship operations
	GetShip(ctx context.Context, symbol, token string) (*navigation.ShipData, error)
	ListShips(ctx context.Context, token string) ([]*navigation.ShipData, error)
	NavigateShip(ctx context.Context, symbol, destination, token string) (*navigation.NavigationResult, error)
	OrbitShip(ctx context.Context, symbol, token string) error
	DockShip(ctx context.Context, symbol, token string) error

	// Mining operations
	ExtractResources(ctx context.Context, shipSymbol, token string) (*ExtractionResult, error)

	// Cargo operations
	PurchaseCargo(ctx context.Context, shipSymbol, goodSymbol string, units int, token string) (*TransactionResult, error)
	SellCargo(ctx context.Context, shipSymbol, goodSymbol string, units int, token string) (*TransactionResult, error)

	// Market operations
	GetMarket(ctx context.Context, systemSymbol, waypointSymbol, token string) (*MarketData, error)

	// Waypoint operations
	ScanWaypoints(ctx context.Context, shipSymbol, token string) ([]*shared.Waypoint, error)

	// Mission operations
	GetMission(ctx context.Context, missionID, token string) (*MissionData, error)
	AcceptMission(ctx context.Context, missionID, token string) (*MissionData, error)
	FulfillMission(ctx context.Context, missionID, token string) (*MissionData, error)
}

// Mission DTOs
type MissionData struct {
	ID            string
	FactionSymbol string
	Type          string
	Terms         MissionTermsData
	Accepted      bool
	Fulfilled     bool
}

type MissionTermsData struct {
	Deadline   string
	Payment    PaymentData
	Deliveries []DeliveryData
}

type PaymentData struct {
	OnAccepted  int
	OnFulfilled int
}

type DeliveryData struct {
	TradeSymbol       string
	DestinationSymbol string
	UnitsRequired     int
	UnitsFulfilled    int
}

// ExtractionResult contains the result of extracting resources from an asteroid
type ExtractionResult struct {
	ShipSymbol      string
	YieldSymbol     string
	YieldUnits      int
	CooldownSeconds int
	CooldownExpires string // ISO8601 timestamp
	Cargo           *navigation.CargoData
}

// TransactionResult is returned by both purchase and sell
type TransactionResult struct {
	ShipSymbol     string
	WaypointSymbol string
	TradeSymbol    string
	Type           string // PURCHASE or SELL
	Units          int
	PricePerUnit   int
	TotalPrice     int
	Cargo          *navigation.CargoData
}

// Market DTOs
type MarketData struct {
	Symbol     string
	TradeGoods []TradeGoodData
}

type TradeGoodData struct {
	Symbol        string
	Type          string
	Supply        string
	SellPrice     int
	PurchasePrice int
	TradeVolume   int
}
