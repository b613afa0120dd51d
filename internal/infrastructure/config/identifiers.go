package config

// DefaultsConfig holds the identifiers a command falls back to when its flag is
// omitted
type DefaultsConfig struct {
	ShipSymbol     string `mapstructure:"ship_symbol"`
	MissionID      string `mapstructure:"mission_id"`
	AsteroidSymbol string `mapstructure:"asteroid_symbol"`
	MarketSymbol   string `mapstructure:"market_symbol"`
	TradeSymbol    string `mapstructure:"trade_symbol"`
	TargetUnits    int    `mapstructure:"target_units" validate:"min=0"`
}
