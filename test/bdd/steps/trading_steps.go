package steps

import (
	"fmt"

	"github.com/cucumber/godog"

	tradingCommands "github.com/andrescamacho/spacetraders-bot/internal/application/trading/commands"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/ports"
	"github.com/andrescamacho/spacetraders-bot/test/helpers"
)

func registerTradingSteps(sc *godog.ScenarioContext, c *botContext) {
	sc.Step(`^the market at "([^"]*)" lists:$`, c.theMarketLists)

	sc.Step(`^"([^"]*)" buys (\d+) units of "([^"]*)" at "([^"]*)"$`, c.buysUnitsOf)
	sc.Step(`^"([^"]*)" sells (\d+) units of "([^"]*)"$`, c.sellsUnitsOf)
	sc.Step(`^"([^"]*)" sells all of its "([^"]*)"$`, c.sellsAllOf)

	sc.Step(`^(\d+) units were purchased for (\d+) credits in (\d+) transactions?$`, c.unitsWerePurchased)
	sc.Step(`^the good was reported unavailable$`, c.theGoodWasReportedUnavailable)
}

// theMarketLists reads columns symbol, type, purchase, sell and an optional volume
func (c *botContext) theMarketLists(waypoint string, table *godog.Table) error {
	records, err := tableRecords(table)
	if err != nil {
		return err
	}
	goods := make([]ports.TradeGoodData, 0, len(records))
	for _, record := range records {
		purchase, err := intField(record, "purchase")
		if err != nil {
			return err
		}
		sell, err := intField(record, "sell")
		if err != nil {
			return err
		}
		volume, err := intField(record, "volume")
		if err != nil {
			return err
		}
		good := helpers.CreateTestTradeGood(record["symbol"], record["type"], purchase, sell)
		if volume > 0 {
			good.TradeVolume = volume
		}
		goods = append(goods, good)
	}
	c.api.SetMarket(waypoint, goods)
	return nil
}

func (c *botContext) buysUnitsOf(shipSymbol string, units int, good, marketSymbol string) error {
	c.send(&tradingCommands.AcquireByPurchaseCommand{
		ShipSymbol:   shipSymbol,
		MarketSymbol: marketSymbol,
		TradeSymbol:  good,
		Units:        units,
	})
	return nil
}

func (c *botContext) sellsUnitsOf(shipSymbol string, units int, good string) error {
	c.send(&tradingCommands.SellCargoCommand{ShipSymbol: shipSymbol, TradeSymbol: good, Units: units})
	return nil
}

func (c *botContext) sellsAllOf(shipSymbol, good string) error {
	c.send(&tradingCommands.SellCargoCommand{ShipSymbol: shipSymbol, TradeSymbol: good})
	return nil
}

func (c *botContext) purchaseResult() (*tradingCommands.AcquireByPurchaseResponse, error) {
	if err := c.theCommandSucceeds(); err != nil {
		return nil, err
	}
	resp, ok := c.response.(*tradingCommands.AcquireByPurchaseResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected response %T", c.response)
	}
	return resp, nil
}

func (c *botContext) unitsWerePurchased(units, cost, transactions int) error {
	resp, err := c.purchaseResult()
	if err != nil {
		return err
	}
	if resp.UnitsPurchased != units || resp.TotalCost != cost || resp.Transactions != transactions {
		return fmt.Errorf("expected %d units for %d in %d transactions, got %d for %d in %d",
			units, cost, transactions, resp.UnitsPurchased, resp.TotalCost, resp.Transactions)
	}
	return nil
}

func (c *botContext) theGoodWasReportedUnavailable() error {
	resp, err := c.purchaseResult()
	if err != nil {
		return err
	}
	if resp.Available {
		return fmt.Errorf("expected the good to be unavailable, bought %d units", resp.UnitsPurchased)
	}
	return nil
}

func (c *botContext) saleWas(units, revenue int) error {
	if err := c.theCommandSucceeds(); err != nil {
		return err
	}
	resp, ok := c.response.(*tradingCommands.SellCargoResponse)
	if !ok {
		return fmt.Errorf("unexpected response %T", c.response)
	}
	if resp.UnitsSold != units || resp.Revenue != revenue {
		return fmt.Errorf("expected %d units sold for %d, got %d for %d", units, revenue, resp.UnitsSold, resp.Revenue)
	}
	return nil
}
