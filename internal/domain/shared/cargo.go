package shared

import "fmt"

// CargoItem represents an individual cargo item in ship's hold
type CargoItem struct {
	Symbol      string
	Name        string
	Description string
	Units       int
}

// NewCargoItem creates a new cargo item with validation
func NewCargoItem(symbol, name, description string, units int) (*CargoItem, error) {
	if units < 0 {
		return nil, fmt.Errorf("cargo units cannot be negative")
	}
	if symbol == "" {
		return nil, fmt.Errorf("cargo symbol cannot be empty")
	}

	return &CargoItem{
		Symbol:      symbol,
		Name:        name,
		Description: description,
		Units:       units,
	}, nil
}

// Cargo is a point-in-time snapshot of a ship's hold as reported by the API
type Cargo struct {
	Capacity  int
	Units     int
	Inventory []*CargoItem
}

// NewCargo creates a new cargo manifest with validation
func NewCargo(capacity, units int, inventory []*CargoItem) (*Cargo, error) {
	if units < 0 {
		return nil, fmt.Errorf("cargo units cannot be negative")
	}
	if capacity < 0 {
		return nil, fmt.Errorf("cargo capacity cannot be negative")
	}

	return &Cargo{
		Capacity:  capacity,
		Units:     units,
		Inventory: inventory,
	}, nil
}

// GetItemUnits gets units of specific trade good in cargo (0 if not present)
func (c *Cargo) GetItemUnits(symbol string) int {
	for _, item := range c.Inventory {
		if item.Symbol == symbol {
			return item.Units
		}
	}
	return 0
}

// HasItem checks if cargo contains at least minUnits of specific item
func (c *Cargo) HasItem(symbol string, minUnits int) bool {
	return c.GetItemUnits(symbol) >= minUnits
}

// AvailableCapacity calculates available cargo space
func (c *Cargo) AvailableCapacity() int {
	free := c.Capacity - c.Units
	if free < 0 {
		return 0
	}
	return free
}

// IsEmpty checks if cargo hold is empty
func (c *Cargo) IsEmpty() bool {
	return c.Units == 0
}

// IsFull reports units >= capacity. A zero-capacity hold is always full.
func (c *Cargo) IsFull() bool {
	return c.Units >= c.Capacity
}

func (c *Cargo) String() string {
	return fmt.Sprintf("Cargo(%d/%d)", c.Units, c.Capacity)
}
