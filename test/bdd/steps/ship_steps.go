package steps

import (
	"fmt"
	"time"

	"github.com/cucumber/godog"

	shipCommands "github.com/andrescamacho/spacetraders-bot/internal/application/ship/commands"
	shipQueries "github.com/andrescamacho/spacetraders-bot/internal/application/ship/queries"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/navigation"
	"github.com/andrescamacho/spacetraders-bot/test/helpers"
)

func registerShipSteps(sc *godog.ScenarioContext, c *botContext) {
	sc.Step(`^a ship "([^"]*)" at "([^"]*)" with cargo capacity (\d+)$`, c.aShipAt)
	sc.Step(`^a mining ship "([^"]*)" at "([^"]*)" with cargo capacity (\d+)$`, c.aMiningShipAt)
	sc.Step(`^ship "([^"]*)" is docked$`, c.shipIsDocked)
	sc.Step(`^ship "([^"]*)" has no fuel$`, c.shipHasNoFuel)
	sc.Step(`^ship "([^"]*)" has been loaded with (\d+) units of "([^"]*)"$`, c.shipHasBeenLoadedWith)
	sc.Step(`^travel to "([^"]*)" takes (\d+) seconds$`, c.travelTakes)

	sc.Step(`^"([^"]*)" navigates to "([^"]*)"$`, c.shipNavigatesTo)
	sc.Step(`^I look for an available ship$`, c.iLookForAnAvailableShip)

	sc.Step(`^ship "([^"]*)" is at "([^"]*)"$`, c.shipIsAt)
	sc.Step(`^ship "([^"]*)" is (DOCKED|IN_ORBIT|IN_TRANSIT)$`, c.shipHasNavStatus)
	sc.Step(`^ship "([^"]*)" holds (\d+) units of cargo$`, c.shipHoldsCargo)
	sc.Step(`^the navigation reports "([^"]*)"$`, c.theNavigationReports)
	sc.Step(`^the available ship is "([^"]*)"$`, c.theAvailableShipIs)
	sc.Step(`^no ship is available$`, c.noShipIsAvailable)
}

func (c *botContext) aShipAt(symbol, location string, capacity int) error {
	c.api.AddShip(helpers.CreateTestShip(symbol, location, capacity))
	return nil
}

func (c *botContext) aMiningShipAt(symbol, location string, capacity int) error {
	c.api.AddShip(helpers.CreateTestMiningShip(symbol, location, capacity))
	return nil
}

func (c *botContext) updateShip(symbol string, mutate func(*navigation.ShipData)) error {
	ship, ok := c.api.Ship(symbol)
	if !ok {
		return fmt.Errorf("ship %s not found", symbol)
	}
	mutate(ship)
	c.api.AddShip(ship)
	return nil
}

func (c *botContext) shipIsDocked(symbol string) error {
	return c.updateShip(symbol, func(ship *navigation.ShipData) {
		ship.NavStatus = string(navigation.NavStatusDocked)
	})
}

func (c *botContext) shipHasNoFuel(symbol string) error {
	return c.updateShip(symbol, func(ship *navigation.ShipData) {
		ship.FuelCurrent = 0
	})
}

func (c *botContext) shipHasBeenLoadedWith(symbol string, units int, good string) error {
	return c.updateShip(symbol, func(ship *navigation.ShipData) {
		ship.Cargo.Units += units
		ship.Cargo.Inventory = append(ship.Cargo.Inventory, navigation.CargoItemData{Symbol: good, Units: units})
	})
}

func (c *botContext) travelTakes(destination string, seconds int) error {
	c.api.SetTransitTime(destination, time.Duration(seconds)*time.Second)
	return nil
}

func (c *botContext) shipNavigatesTo(symbol, destination string) error {
	c.send(&shipCommands.NavigateShipCommand{ShipSymbol: symbol, WaypointSymbol: destination})
	return nil
}

func (c *botContext) iLookForAnAvailableShip() error {
	c.send(&shipQueries.FindAvailableShipQuery{})
	return nil
}

func (c *botContext) shipIsAt(symbol, location string) error {
	ship, ok := c.api.Ship(symbol)
	if !ok {
		return fmt.Errorf("ship %s not found", symbol)
	}
	if ship.Location != location {
		return fmt.Errorf("expected %s at %s, got %s", symbol, location, ship.Location)
	}
	return nil
}

func (c *botContext) shipHasNavStatus(symbol, status string) error {
	ship, ok := c.api.Ship(symbol)
	if !ok {
		return fmt.Errorf("ship %s not found", symbol)
	}
	if ship.NavStatus != status {
		return fmt.Errorf("expected %s to be %s, got %s", symbol, status, ship.NavStatus)
	}
	return nil
}

func (c *botContext) shipHoldsCargo(symbol string, units int) error {
	ship, ok := c.api.Ship(symbol)
	if !ok {
		return fmt.Errorf("ship %s not found", symbol)
	}
	if ship.Cargo.Units != units {
		return fmt.Errorf("expected %s to hold %d units, got %d", symbol, units, ship.Cargo.Units)
	}
	return nil
}

func (c *botContext) theNavigationReports(status string) error {
	if err := c.theCommandSucceeds(); err != nil {
		return err
	}
	resp, ok := c.response.(*shipCommands.NavigateShipResponse)
	if !ok {
		return fmt.Errorf("unexpected response %T", c.response)
	}
	if resp.Status != status {
		return fmt.Errorf("expected navigation status %q, got %q", status, resp.Status)
	}
	return nil
}

func (c *botContext) availableShip() (*shipQueries.FindAvailableShipResponse, error) {
	if err := c.theCommandSucceeds(); err != nil {
		return nil, err
	}
	resp, ok := c.response.(*shipQueries.FindAvailableShipResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected response %T", c.response)
	}
	return resp, nil
}

func (c *botContext) theAvailableShipIs(symbol string) error {
	resp, err := c.availableShip()
	if err != nil {
		return err
	}
	if resp.Ship == nil {
		return fmt.Errorf("expected %s, no ship was available", symbol)
	}
	if resp.Ship.ShipSymbol() != symbol {
		return fmt.Errorf("expected %s, got %s", symbol, resp.Ship.ShipSymbol())
	}
	return nil
}

func (c *botContext) noShipIsAvailable() error {
	resp, err := c.availableShip()
	if err != nil {
		return err
	}
	if resp.Ship != nil {
		return fmt.Errorf("expected no ship, got %s", resp.Ship.ShipSymbol())
	}
	return nil
}
