package navigation

// DTOs carried between the API adapter and the domain.
// These mirror the remote JSON shape closely; Ship is the validated view.

type ShipData struct {
	Symbol        string
	SystemSymbol  string
	Location      string
	NavStatus     string
	ArrivalTime   string // ISO8601, only meaningful while IN_TRANSIT
	FuelCurrent   int
	FuelCapacity  int
	CargoCapacity int
	CargoUnits    int
	Cargo         *CargoData
	Cooldown      CooldownData
	CrewCurrent   int
	CrewRequired  int
	Modules       []EquipmentData
	Mounts        []EquipmentData
}

type CargoData struct {
	Capacity  int
	Units     int
	Inventory []CargoItemData
}

type CargoItemData struct {
	Symbol      string
	Name        string
	Description string
	Units       int
}

type CooldownData struct {
	TotalSeconds     int
	RemainingSeconds int
	Expiration       string
}

// EquipmentData describes an installed module or mount
type EquipmentData struct {
	Symbol string
	Name   string
}

type NavigationResult struct {
	Destination    string
	NavStatus      string
	ArrivalTimeStr string // ISO8601 timestamp from API (e.g., "2024-01-01T12:00:00Z")
	FuelConsumed   int
	FuelRemaining  int
}
