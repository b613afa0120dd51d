package cli

import (
	"fmt"

	"github.com/andrescamacho/spacetraders-bot/internal/domain/navigation"
)

// pick returns flag when set, otherwise the configured fallback
func pick(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}

// defaultKeys maps a flag onto the config key that can stand in for it
var defaultKeys = map[string]string{
	"ship":     "defaults.ship_symbol",
	"mission":  "defaults.mission_id",
	"asteroid": "defaults.asteroid_symbol",
	"market":   "defaults.market_symbol",
	"good":     "defaults.trade_symbol",
}

// required returns an error naming the flag when value is empty
func required(value, flag string) error {
	if value != "" {
		return nil
	}
	if key, ok := defaultKeys[flag]; ok {
		return fmt.Errorf("--%s flag is required (or set %s in config)", flag, key)
	}
	return fmt.Errorf("--%s flag is required", flag)
}

// printShip writes the standard ship summary block
func printShip(ship *navigation.Ship) {
	fmt.Printf("  Ship:             %s\n", ship.ShipSymbol())
	fmt.Printf("  Location:         %s\n", ship.CurrentLocation().Symbol)
	fmt.Printf("  Status:           %s\n", ship.NavStatus())
	if arrival := ship.ArrivalTime(); arrival != nil {
		fmt.Printf("  Arrival:          %s\n", arrival.Timestamp())
	}
	fmt.Printf("  Fuel:             %d/%d\n", ship.Fuel().Current, ship.Fuel().Capacity)
	fmt.Printf("  Cargo:            %d/%d\n", ship.Cargo().Units, ship.Cargo().Capacity)
	for _, item := range ship.Cargo().Inventory {
		fmt.Printf("    - %-20s %d\n", item.Symbol, item.Units)
	}
	if cd := ship.Cooldown(); cd.IsActive() {
		fmt.Printf("  Cooldown:         %s remaining\n", cd.Remaining())
	}
	fmt.Printf("  Mining capable:   %t\n", ship.HasMiningCapability())
}
