package navigation

import (
	"fmt"

	"github.com/andrescamacho/spacetraders-bot/internal/domain/shared"
)

// NavStatus represents ship navigation status
type NavStatus string

const (
	NavStatusDocked    NavStatus = "DOCKED"
	NavStatusInOrbit   NavStatus = "IN_ORBIT"
	NavStatusInTransit NavStatus = "IN_TRANSIT"
)

var validNavStatuses = map[NavStatus]bool{
	NavStatusDocked:    true,
	NavStatusInOrbit:   true,
	NavStatusInTransit: true,
}

// IsValid reports whether the status is one the API documents
func (s NavStatus) IsValid() bool {
	return validNavStatuses[s]
}

// Ship is a read-only snapshot of a ship as last reported by the API.
//
// The remote service owns and mutates ships; this entity never changes after
// construction. Any command issued against the ship invalidates the snapshot.
//
// Invariants:
// - ShipSymbol must be non-empty
// - NavStatus must be one of: IN_ORBIT, DOCKED, IN_TRANSIT
type Ship struct {
	shipSymbol   string
	location     *shared.Waypoint
	navStatus    NavStatus
	arrivalTime  *shared.ArrivalTime
	fuel         *shared.Fuel
	cargo        *shared.Cargo
	cooldown     shared.Cooldown
	crewCurrent  int
	crewRequired int
	modules      []*ShipModule
}

// NewShipFromData validates an API snapshot and builds the entity
func NewShipFromData(data *ShipData) (*Ship, error) {
	if data == nil {
		return nil, shared.NewInvalidShipDataError("", "ship data is nil")
	}
	if data.Symbol == "" {
		return nil, shared.NewInvalidShipDataError("", "ship_symbol cannot be empty")
	}

	status := NavStatus(data.NavStatus)
	if !status.IsValid() {
		return nil, shared.NewInvalidShipDataError(data.Symbol, fmt.Sprintf("invalid nav status: %s", data.NavStatus))
	}

	location := &shared.Waypoint{
		Symbol:       data.Location,
		SystemSymbol: data.SystemSymbol,
	}
	if location.SystemSymbol == "" {
		location.SystemSymbol = shared.ExtractSystemSymbol(data.Location)
	}

	fuel, err := shared.NewFuel(data.FuelCurrent, data.FuelCapacity)
	if err != nil {
		return nil, shared.NewInvalidShipDataError(data.Symbol, err.Error())
	}

	cargo, err := cargoFromData(data)
	if err != nil {
		return nil, shared.NewInvalidShipDataError(data.Symbol, err.Error())
	}

	var arrival *shared.ArrivalTime
	if status == NavStatusInTransit && data.ArrivalTime != "" {
		arrival, err = shared.NewArrivalTime(data.ArrivalTime)
		if err != nil {
			return nil, shared.NewInvalidShipDataError(data.Symbol, err.Error())
		}
	}

	modules := make([]*ShipModule, 0, len(data.Modules)+len(data.Mounts))
	for _, m := range data.Modules {
		modules = append(modules, NewShipModule(m.Symbol, m.Name))
	}
	for _, m := range data.Mounts {
		modules = append(modules, NewShipModule(m.Symbol, m.Name))
	}

	return &Ship{
		shipSymbol:  data.Symbol,
		location:    location,
		navStatus:   status,
		arrivalTime: arrival,
		fuel:        fuel,
		cargo:       cargo,
		cooldown: shared.Cooldown{
			ShipSymbol:       data.Symbol,
			TotalSeconds:     data.Cooldown.TotalSeconds,
			RemainingSeconds: data.Cooldown.RemainingSeconds,
			Expiration:       data.Cooldown.Expiration,
		},
		crewCurrent:  data.CrewCurrent,
		crewRequired: data.CrewRequired,
		modules:      modules,
	}, nil
}

func cargoFromData(data *ShipData) (*shared.Cargo, error) {
	capacity, units := data.CargoCapacity, data.CargoUnits
	var items []*shared.CargoItem
	if data.Cargo != nil {
		capacity, units = data.Cargo.Capacity, data.Cargo.Units
		for _, item := range data.Cargo.Inventory {
			items = append(items, &shared.CargoItem{
				Symbol:      item.Symbol,
				Name:        item.Name,
				Description: item.Description,
				Units:       item.Units,
			})
		}
	}
	return shared.NewCargo(capacity, units, items)
}

// Getters

func (s *Ship) ShipSymbol() string {
	return s.shipSymbol
}

func (s *Ship) CurrentLocation() *shared.Waypoint {
	return s.location
}

func (s *Ship) NavStatus() NavStatus {
	return s.navStatus
}

// ArrivalTime is nil unless the ship is IN_TRANSIT
func (s *Ship) ArrivalTime() *shared.ArrivalTime {
	return s.arrivalTime
}

func (s *Ship) Fuel() *shared.Fuel {
	return s.fuel
}

func (s *Ship) Cargo() *shared.Cargo {
	return s.cargo
}

func (s *Ship) Cooldown() shared.Cooldown {
	return s.cooldown
}

func (s *Ship) Modules() []*ShipModule {
	return s.modules
}

// State queries

func (s *Ship) IsDocked() bool {
	return s.navStatus == NavStatusDocked
}

func (s *Ship) IsInOrbit() bool {
	return s.navStatus == NavStatusInOrbit
}

func (s *Ship) IsInTransit() bool {
	return s.navStatus == NavStatusInTransit
}

// IsCargoFull reports units >= capacity
func (s *Ship) IsCargoFull() bool {
	return s.cargo.IsFull()
}

// HasCrew reports whether the crew meets the frame's requirement
func (s *Ship) HasCrew() bool {
	return s.crewCurrent >= s.crewRequired
}

// HasMiningCapability reports whether any module or mount is mining equipment
func (s *Ship) HasMiningCapability() bool {
	for _, m := range s.modules {
		if m.IsMiningEquipment() {
			return true
		}
	}
	return false
}

// IsAvailable reports whether the ship can take a new job right now:
// stationary, fuelled, with free cargo space, no active cooldown and a full crew.
func (s *Ship) IsAvailable() bool {
	return (s.IsDocked() || s.IsInOrbit()) &&
		s.fuel.HasFuel() &&
		!s.cargo.IsFull() &&
		!s.cooldown.IsActive() &&
		s.HasCrew()
}

func (s *Ship) String() string {
	return fmt.Sprintf("Ship(symbol=%s, location=%s, status=%s, cargo=%s)",
		s.shipSymbol, s.location.Symbol, s.navStatus, s.cargo)
}
