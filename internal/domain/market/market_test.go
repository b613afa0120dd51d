package market_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacetraders-bot/internal/domain/market"
)

func good(t *testing.T, symbol string, goodType market.TradeGoodType, volume int) market.TradeGood {
	t.Helper()
	g, err := market.NewTradeGood(symbol, goodType, "MODERATE", 50, 45, volume)
	require.NoError(t, err)
	return *g
}

func TestMarket_PurchasableGood(t *testing.T) {
	m, err := market.NewMarket("X1-Q87-B2", []market.TradeGood{
		good(t, "ALUMINUM_ORE", market.TradeGoodTypeImport, 20),
		good(t, "FUEL", market.TradeGoodTypeExchange, 100),
		good(t, "IRON", market.TradeGoodTypeExport, 10),
	}, time.Now())
	require.NoError(t, err)

	_, ok := m.PurchasableGood("ALUMINUM_ORE")
	assert.False(t, ok, "imports are sell-only")
	_, ok = m.PurchasableGood("QUARTZ_SAND")
	assert.False(t, ok)

	fuel, ok := m.PurchasableGood("FUEL")
	require.True(t, ok)
	assert.Equal(t, 50, fuel.PurchasePrice())
	_, ok = m.PurchasableGood("IRON")
	assert.True(t, ok)

	assert.True(t, m.HasGood("ALUMINUM_ORE"))
	assert.Equal(t, 20, m.GetTransactionLimit("ALUMINUM_ORE"))
	assert.Zero(t, m.GetTransactionLimit("QUARTZ_SAND"))
}

func TestMarket_IsolatedFromCallerSlice(t *testing.T) {
	goods := []market.TradeGood{good(t, "FUEL", market.TradeGoodTypeExchange, 100)}
	m, err := market.NewMarket("X1-Q87-B2", goods, time.Now())
	require.NoError(t, err)

	goods[0] = good(t, "IRON", market.TradeGoodTypeExport, 10)

	assert.True(t, m.HasGood("FUEL"))
	assert.Equal(t, 1, m.GoodsCount())
}

func TestNewTradeGood_Validation(t *testing.T) {
	cases := map[string]struct {
		symbol   string
		goodType market.TradeGoodType
		supply   string
		price    int
		volume   int
		want     error
	}{
		"empty symbol":   {"", market.TradeGoodTypeExport, "HIGH", 1, 1, market.ErrInvalidGoodSymbol},
		"bad type":       {"FUEL", "BARTER", "HIGH", 1, 1, market.ErrInvalidTradeGoodType},
		"negative price": {"FUEL", market.TradeGoodTypeExport, "HIGH", -1, 1, market.ErrInvalidPrice},
		"bad volume":     {"FUEL", market.TradeGoodTypeExport, "HIGH", 1, -5, market.ErrInvalidTradeVolume},
		"bad supply":     {"FUEL", market.TradeGoodTypeExport, "PLENTY", 1, 1, market.ErrInvalidSupply},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := market.NewTradeGood(tc.symbol, tc.goodType, tc.supply, tc.price, tc.price, tc.volume)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := market.NewMarket("", nil, time.Now())
	assert.ErrorIs(t, err, market.ErrInvalidWaypointSymbol)
}
