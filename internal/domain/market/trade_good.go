package market

import (
	"fmt"
)

// TradeGoodType is the role a good plays in one market
type TradeGoodType string

const (
	TradeGoodTypeExport   TradeGoodType = "EXPORT"
	TradeGoodTypeImport   TradeGoodType = "IMPORT"
	TradeGoodTypeExchange TradeGoodType = "EXCHANGE"
)

var validTradeGoodTypes = map[TradeGoodType]bool{
	TradeGoodTypeExport:   true,
	TradeGoodTypeImport:   true,
	TradeGoodTypeExchange: true,
}

// Valid supply values
var validSupplyValues = map[string]bool{
	"SCARCE":   true,
	"LIMITED":  true,
	"MODERATE": true,
	"HIGH":     true,
	"ABUNDANT": true,
}

// TradeGood represents a single commodity listed at a market (immutable value object).
// Prices follow the ship's perspective, as the API reports them:
// - PurchasePrice: what the ship PAYS per unit when buying
// - SellPrice: what the ship RECEIVES per unit when selling
type TradeGood struct {
	symbol        string
	goodType      TradeGoodType
	supply        string
	purchasePrice int
	sellPrice     int
	tradeVolume   int
}

// NewTradeGood creates a new TradeGood with validation
func NewTradeGood(symbol string, goodType TradeGoodType, supply string, purchasePrice, sellPrice, tradeVolume int) (*TradeGood, error) {
	if symbol == "" {
		return nil, ErrInvalidGoodSymbol
	}
	if goodType != "" && !validTradeGoodTypes[goodType] {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTradeGoodType, goodType)
	}
	if purchasePrice < 0 || sellPrice < 0 {
		return nil, ErrInvalidPrice
	}
	if tradeVolume < 0 {
		return nil, ErrInvalidTradeVolume
	}
	if supply != "" && !validSupplyValues[supply] {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSupply, supply)
	}

	return &TradeGood{
		symbol:        symbol,
		goodType:      goodType,
		supply:        supply,
		purchasePrice: purchasePrice,
		sellPrice:     sellPrice,
		tradeVolume:   tradeVolume,
	}, nil
}

// Getters (TradeGood is immutable, so only provide read access)

func (t *TradeGood) Symbol() string {
	return t.symbol
}

func (t *TradeGood) Type() TradeGoodType {
	return t.goodType
}

func (t *TradeGood) Supply() string {
	return t.supply
}

func (t *TradeGood) PurchasePrice() int {
	return t.purchasePrice
}

func (t *TradeGood) SellPrice() int {
	return t.sellPrice
}

func (t *TradeGood) TradeVolume() int {
	return t.tradeVolume
}

// IsPurchasable reports whether ships can buy this good here.
// Markets sell what they export or exchange; imports are buy-only.
func (t *TradeGood) IsPurchasable() bool {
	return t.goodType == TradeGoodTypeExport || t.goodType == TradeGoodTypeExchange
}

func (t *TradeGood) String() string {
	return fmt.Sprintf("TradeGood(%s, %s, buy=%d, sell=%d)", t.symbol, t.goodType, t.purchasePrice, t.sellPrice)
}
