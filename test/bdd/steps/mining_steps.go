package steps

import (
	"fmt"

	"github.com/cucumber/godog"

	miningCommands "github.com/andrescamacho/spacetraders-bot/internal/application/mining/commands"
	"github.com/andrescamacho/spacetraders-bot/test/helpers"
)

func registerMiningSteps(sc *godog.ScenarioContext, c *botContext) {
	sc.Step(`^extractions by "([^"]*)" yield:$`, c.extractionsYield)

	sc.Step(`^"([^"]*)" mines (\d+) units of "([^"]*)" at "([^"]*)"$`, c.minesUnitsOf)
	sc.Step(`^"([^"]*)" mines until full at "([^"]*)"$`, c.minesUntilFull)
	sc.Step(`^"([^"]*)" runs (\d+) mining cycles? between "([^"]*)" and "([^"]*)"$`, c.runsMiningCycles)

	sc.Step(`^(\d+) units were acquired in (\d+) extractions?$`, c.unitsWereAcquired)
	sc.Step(`^mining stopped because "([^"]*)"$`, c.miningStoppedBecause)
	sc.Step(`^(\d+) cycles? completed with (\d+) units mined$`, c.cyclesCompleted)
	sc.Step(`^(\d+) units were sold for (\d+) credits$`, c.unitsWereSold)
	sc.Step(`^(\d+) units of "([^"]*)" were left unsold$`, c.unitsLeftUnsold)
}

func (c *botContext) extractionsYield(shipSymbol string, table *godog.Table) error {
	records, err := tableRecords(table)
	if err != nil {
		return err
	}
	queued := make([]helpers.QueuedExtraction, 0, len(records))
	for _, record := range records {
		units, err := intField(record, "units")
		if err != nil {
			return err
		}
		cooldown, err := intField(record, "cooldown")
		if err != nil {
			return err
		}
		queued = append(queued, helpers.QueuedExtraction{Symbol: record["symbol"], Units: units, CooldownSeconds: cooldown})
	}
	c.api.QueueExtractions(shipSymbol, queued...)
	return nil
}

func (c *botContext) minesUnitsOf(shipSymbol string, units int, good, asteroid string) error {
	c.send(&miningCommands.AcquireByMiningCommand{
		ShipSymbol:     shipSymbol,
		AsteroidSymbol: asteroid,
		TradeSymbol:    good,
		Units:          units,
	})
	return nil
}

func (c *botContext) minesUntilFull(shipSymbol, asteroid string) error {
	c.send(&miningCommands.AcquireByMiningCommand{ShipSymbol: shipSymbol, AsteroidSymbol: asteroid})
	return nil
}

func (c *botContext) runsMiningCycles(shipSymbol string, cycles int, asteroid, marketSymbol string) error {
	c.send(&miningCommands.RunMiningCyclesCommand{
		ShipSymbol:     shipSymbol,
		AsteroidSymbol: asteroid,
		MarketSymbol:   marketSymbol,
		Cycles:         cycles,
	})
	return nil
}

func (c *botContext) miningResult() (*miningCommands.AcquireByMiningResponse, error) {
	if err := c.theCommandSucceeds(); err != nil {
		return nil, err
	}
	resp, ok := c.response.(*miningCommands.AcquireByMiningResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected response %T", c.response)
	}
	return resp, nil
}

func (c *botContext) unitsWereAcquired(units, extractions int) error {
	resp, err := c.miningResult()
	if err != nil {
		return err
	}
	if resp.UnitsAcquired != units || resp.Extractions != extractions {
		return fmt.Errorf("expected %d units in %d extractions, got %d in %d", units, extractions, resp.UnitsAcquired, resp.Extractions)
	}
	return nil
}

func (c *botContext) miningStoppedBecause(reason string) error {
	resp, err := c.miningResult()
	if err != nil {
		return err
	}
	if string(resp.Reason) != reason {
		return fmt.Errorf("expected stop reason %s, got %s", reason, resp.Reason)
	}
	return nil
}

// cycleTotals reads the totals even when the loop ended in error
func (c *botContext) cycleTotals() (*miningCommands.RunMiningCyclesResponse, error) {
	resp, ok := c.response.(*miningCommands.RunMiningCyclesResponse)
	if !ok || resp == nil {
		return nil, fmt.Errorf("no mining cycle totals (err: %v)", c.err)
	}
	return resp, nil
}

func (c *botContext) cyclesCompleted(cycles, mined int) error {
	totals, err := c.cycleTotals()
	if err != nil {
		return err
	}
	if totals.CyclesCompleted != cycles || totals.UnitsMined != mined {
		return fmt.Errorf("expected %d cycles and %d units mined, got %d and %d", cycles, mined, totals.CyclesCompleted, totals.UnitsMined)
	}
	return nil
}

func (c *botContext) unitsWereSold(units, revenue int) error {
	if totals, ok := c.response.(*miningCommands.RunMiningCyclesResponse); ok && totals != nil {
		if totals.UnitsSold != units || totals.Revenue != revenue {
			return fmt.Errorf("expected %d units sold for %d, got %d for %d", units, revenue, totals.UnitsSold, totals.Revenue)
		}
		return nil
	}
	return c.saleWas(units, revenue)
}

func (c *botContext) unitsLeftUnsold(units int, good string) error {
	totals, err := c.cycleTotals()
	if err != nil {
		return err
	}
	if totals.Unsold[good] != units {
		return fmt.Errorf("expected %d %s unsold, got %v", units, good, totals.Unsold)
	}
	return nil
}
