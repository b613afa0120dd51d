package navigation

import "strings"

// ShipModule represents an installed module or mount on a ship
//
// Modules provide various capabilities to ships such as mining lasers,
// cargo bays or sensor arrays. This value object is immutable.
type ShipModule struct {
	symbol string
	name   string
}

// NewShipModule creates a new ShipModule value object
func NewShipModule(symbol, name string) *ShipModule {
	return &ShipModule{
		symbol: symbol,
		name:   name,
	}
}

// Symbol returns the module symbol identifier (e.g., "MOUNT_MINING_LASER_I")
func (m *ShipModule) Symbol() string {
	return m.symbol
}

// Name returns the display name (e.g., "Mining Laser I")
func (m *ShipModule) Name() string {
	return m.name
}

// IsMiningEquipment checks whether the symbol or name mentions mining
func (m *ShipModule) IsMiningEquipment() bool {
	return strings.Contains(strings.ToLower(m.symbol), "mining") ||
		strings.Contains(strings.ToLower(m.name), "mining")
}
