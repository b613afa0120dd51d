package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the main configuration struct combining all sub-configs
type Config struct {
	API       APIConfig       `mapstructure:"api"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Sequencer SequencerConfig `mapstructure:"sequencer"`
	Defaults  DefaultsConfig  `mapstructure:"defaults"`
}

// Token environment variables, in priority order
var tokenEnvVars = []string{"SPACE_TRADERS_TOKEN", "SPACETRADERS_TOKEN", "ST_API_TOKEN"}

// keys lists every config key so that viper resolves its ST_ env var even
// when the key is absent from the config file
var keys = []string{
	"api.base_url", "api.timeout",
	"logging.level", "logging.format", "logging.output",
	"metrics.enabled", "metrics.address", "metrics.path",
	"sequencer.wait_strategy", "sequencer.poll_interval",
	"defaults.ship_symbol", "defaults.mission_id", "defaults.asteroid_symbol",
	"defaults.market_symbol", "defaults.trade_symbol", "defaults.target_units",
}

// LoadConfig loads configuration from multiple sources with priority:
// 1. Environment variables (highest priority)
// 2. Config file (config.yaml)
// 3. User preferences (~/.spacetraders/config.json, default ship and mission only)
// 4. Defaults (lowest priority)
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.spacetraders")
	}

	// Enable environment variable reading
	v.SetEnvPrefix("ST") // ST_ prefix for SpaceTraders
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	// Read config file (optional - don't error if missing)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	resolveToken(&cfg)
	applyUserPreferences(&cfg)
	SetDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// resolveToken applies the first non-empty token variable. AutomaticEnv
// would otherwise let ST_API_TOKEN shadow SPACE_TRADERS_TOKEN.
func resolveToken(cfg *Config) {
	for _, name := range tokenEnvVars {
		if token := os.Getenv(name); token != "" {
			cfg.API.Token = token
			return
		}
	}
}

// applyUserPreferences fills default identifiers from the user preference file
// when neither the config file nor the environment set them
func applyUserPreferences(cfg *Config) {
	handler, err := NewUserConfigHandler()
	if err != nil {
		return
	}
	prefs, err := handler.Load()
	if err != nil {
		return
	}
	if cfg.Defaults.ShipSymbol == "" {
		cfg.Defaults.ShipSymbol = prefs.DefaultShip
	}
	if cfg.Defaults.MissionID == "" {
		cfg.Defaults.MissionID = prefs.DefaultMission
	}
}

// DefaultConfig returns a config holding only defaults
func DefaultConfig() *Config {
	cfg := &Config{}
	SetDefaults(cfg)
	return cfg
}

// Redacted returns a copy safe to print
func (c Config) Redacted() Config {
	if c.API.Token != "" {
		c.API.Token = "****" + lastN(c.API.Token, 4)
	}
	return c
}

func lastN(s string, n int) string {
	if len(s) <= n {
		return ""
	}
	return s[len(s)-n:]
}
