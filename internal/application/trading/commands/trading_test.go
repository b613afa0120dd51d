package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacetraders-bot/internal/application/common"
	"github.com/andrescamacho/spacetraders-bot/internal/application/sequencer"
	"github.com/andrescamacho/spacetraders-bot/internal/application/trading/commands"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/navigation"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/ports"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/shared"
	"github.com/andrescamacho/spacetraders-bot/test/helpers"
)

const (
	token    = "test-token"
	shipSym  = "AGENT-1"
	marketWP = "X1-Q87-B2"
	origin   = "X1-Q87-A1"
)

func setup(t *testing.T) (*helpers.MockAPIClient, *sequencer.Sequencer, context.Context) {
	t.Helper()
	clock := shared.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	fake := helpers.NewMockAPIClient(clock)
	fake.RequireToken(token)
	fake.AddShip(helpers.CreateTestShip(shipSym, origin, 40))
	fake.SetTransitTime(marketWP, 30*time.Second)
	return fake, sequencer.NewSequencer(fake, nil, clock), common.WithPlayerToken(context.Background(), token)
}

func TestAcquireByPurchase_GoodMissingIssuesNoPurchase(t *testing.T) {
	for name, goods := range map[string][]ports.TradeGoodData{
		"absent":      {helpers.CreateTestTradeGood("FUEL", "EXCHANGE", 70, 68)},
		"import only": {helpers.CreateTestTradeGood("ALUMINUM_ORE", "IMPORT", 0, 45)},
	} {
		t.Run(name, func(t *testing.T) {
			// Arrange
			fake, seq, ctx := setup(t)
			fake.SetMarket(marketWP, goods)
			handler := commands.NewAcquireByPurchaseHandler(seq)

			// Act
			resp, err := handler.Handle(ctx, &commands.AcquireByPurchaseCommand{
				ShipSymbol:   shipSym,
				MarketSymbol: marketWP,
				TradeSymbol:  "ALUMINUM_ORE",
				Units:        20,
			})

			// Assert
			require.NoError(t, err)
			result := resp.(*commands.AcquireByPurchaseResponse)
			assert.False(t, result.Available)
			assert.Zero(t, result.UnitsPurchased)
			assert.Zero(t, fake.CallCount(helpers.MethodPurchaseCargo))
			assert.Equal(t, 1, fake.CallCount(helpers.MethodGetMarket))
		})
	}
}

func TestAcquireByPurchase_NavigatesDocksAndBuys(t *testing.T) {
	fake, seq, ctx := setup(t)
	fake.SetMarket(marketWP, []ports.TradeGoodData{helpers.CreateTestTradeGood("ALUMINUM_ORE", "EXPORT", 50, 45)})
	handler := commands.NewAcquireByPurchaseHandler(seq)

	resp, err := handler.Handle(ctx, &commands.AcquireByPurchaseCommand{
		ShipSymbol:   shipSym,
		MarketSymbol: marketWP,
		TradeSymbol:  "ALUMINUM_ORE",
		Units:        20,
	})

	require.NoError(t, err)
	result := resp.(*commands.AcquireByPurchaseResponse)
	assert.True(t, result.Available)
	assert.Equal(t, 20, result.UnitsPurchased)
	assert.Equal(t, 1000, result.TotalCost)
	assert.Equal(t, []string{
		helpers.MethodGetShip,
		helpers.MethodNavigateShip,
		helpers.MethodDockShip,
		helpers.MethodGetMarket,
		helpers.MethodPurchaseCargo,
	}, fake.Calls())
}

func TestAcquireByPurchase_SplitsAtTradeVolume(t *testing.T) {
	fake, seq, ctx := setup(t)
	good := helpers.CreateTestTradeGood("IRON_ORE", "EXCHANGE", 10, 8)
	good.TradeVolume = 15
	fake.SetMarket(marketWP, []ports.TradeGoodData{good})

	resp, err := commands.NewAcquireByPurchaseHandler(seq).Handle(ctx, &commands.AcquireByPurchaseCommand{
		ShipSymbol:   shipSym,
		MarketSymbol: marketWP,
		TradeSymbol:  "IRON_ORE",
		Units:        40,
	})

	require.NoError(t, err)
	result := resp.(*commands.AcquireByPurchaseResponse)
	assert.Equal(t, 3, result.Transactions)
	assert.Equal(t, 40, result.UnitsPurchased)
	assert.Equal(t, 3, fake.CallCount(helpers.MethodPurchaseCargo))
}

func TestAcquireByPurchase_RejectsNonPositiveUnits(t *testing.T) {
	fake, seq, ctx := setup(t)

	_, err := commands.NewAcquireByPurchaseHandler(seq).Handle(ctx, &commands.AcquireByPurchaseCommand{
		ShipSymbol:   shipSym,
		MarketSymbol: marketWP,
		TradeSymbol:  "IRON_ORE",
	})

	var validation *shared.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "units", validation.Field)
	assert.Empty(t, fake.Calls())
}

func TestSellCargo_ZeroUnitsSellsEverythingHeld(t *testing.T) {
	fake, seq, ctx := setup(t)
	ship := helpers.CreateTestShip("HAULER-1", marketWP, 40)
	ship.Cargo.Units = 25
	ship.Cargo.Inventory = append(ship.Cargo.Inventory, navigation.CargoItemData{Symbol: "ALUMINUM_ORE", Units: 25})
	fake.AddShip(ship)
	fake.SetMarket(marketWP, []ports.TradeGoodData{helpers.CreateTestTradeGood("ALUMINUM_ORE", "IMPORT", 0, 45)})

	resp, err := commands.NewSellCargoHandler(seq).Handle(ctx, &commands.SellCargoCommand{
		ShipSymbol:  "HAULER-1",
		TradeSymbol: "ALUMINUM_ORE",
	})

	require.NoError(t, err)
	result := resp.(*commands.SellCargoResponse)
	assert.Equal(t, 25, result.UnitsSold)
	assert.Equal(t, 1125, result.Revenue)
	after, _ := fake.Ship("HAULER-1")
	assert.Zero(t, after.Cargo.Units)
}

func TestSellCargo_NothingHeldSkipsRequest(t *testing.T) {
	fake, seq, ctx := setup(t)

	resp, err := commands.NewSellCargoHandler(seq).Handle(ctx, &commands.SellCargoCommand{
		ShipSymbol:  shipSym,
		TradeSymbol: "ALUMINUM_ORE",
	})

	require.NoError(t, err)
	assert.Zero(t, resp.(*commands.SellCargoResponse).UnitsSold)
	assert.Zero(t, fake.CallCount(helpers.MethodSellCargo))
}
