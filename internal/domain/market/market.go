package market

import (
	"time"
)

// Market represents an immutable snapshot of market data at a specific waypoint and time.
type Market struct {
	waypointSymbol string
	tradeGoods     []TradeGood
	fetchedAt      time.Time
}

// NewMarket creates a new Market with validation
func NewMarket(waypointSymbol string, tradeGoods []TradeGood, fetchedAt time.Time) (*Market, error) {
	if waypointSymbol == "" {
		return nil, ErrInvalidWaypointSymbol
	}

	goodsCopy := make([]TradeGood, len(tradeGoods))
	copy(goodsCopy, tradeGoods)

	return &Market{
		waypointSymbol: waypointSymbol,
		tradeGoods:     goodsCopy,
		fetchedAt:      fetchedAt,
	}, nil
}

func (m *Market) WaypointSymbol() string {
	return m.waypointSymbol
}

func (m *Market) TradeGoods() []TradeGood {
	goodsCopy := make([]TradeGood, len(m.tradeGoods))
	copy(goodsCopy, m.tradeGoods)
	return goodsCopy
}

func (m *Market) FetchedAt() time.Time {
	return m.fetchedAt
}

// FindGood searches for a specific trade good by symbol
func (m *Market) FindGood(symbol string) *TradeGood {
	for i := range m.tradeGoods {
		if m.tradeGoods[i].Symbol() == symbol {
			good := m.tradeGoods[i]
			return &good
		}
	}
	return nil
}

// HasGood checks if the market has a specific trade good
func (m *Market) HasGood(symbol string) bool {
	return m.FindGood(symbol) != nil
}

// PurchasableGood returns the good only when it is listed and ships may buy it
func (m *Market) PurchasableGood(symbol string) (*TradeGood, bool) {
	good := m.FindGood(symbol)
	if good == nil || !good.IsPurchasable() {
		return nil, false
	}
	return good, true
}

// GoodsCount returns the number of trade goods in the market
func (m *Market) GoodsCount() int {
	return len(m.tradeGoods)
}

// GetTransactionLimit returns the trade volume limit for a good.
// Returns 0 if good not found (signals caller to use single transaction fallback).
func (m *Market) GetTransactionLimit(symbol string) int {
	good := m.FindGood(symbol)
	if good == nil {
		return 0
	}
	return good.TradeVolume()
}
