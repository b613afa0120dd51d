package market

import "errors"

var (
	// ErrInvalidWaypointSymbol is returned when a waypoint symbol is empty or invalid
	ErrInvalidWaypointSymbol = errors.New("invalid waypoint symbol")

	// ErrInvalidGoodSymbol is returned when a good symbol is empty or invalid
	ErrInvalidGoodSymbol = errors.New("invalid good symbol")

	// ErrInvalidTradeGoodType is returned when the type is not EXPORT, IMPORT or EXCHANGE
	ErrInvalidTradeGoodType = errors.New("invalid trade good type")

	// ErrInvalidPrice is returned when a price is negative
	ErrInvalidPrice = errors.New("invalid price")

	// ErrInvalidTradeVolume is returned when trade volume is negative
	ErrInvalidTradeVolume = errors.New("invalid trade volume")

	// ErrInvalidSupply is returned when a supply value is not in the valid set
	ErrInvalidSupply = errors.New("invalid supply value")
)
