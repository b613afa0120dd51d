package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// UserConfig represents user preferences stored in ~/.spacetraders/config.json
// This file stores ONLY preferences, never tokens or secrets
type UserConfig struct {
	// Ship used when --ship is omitted
	DefaultShip string `json:"default_ship,omitempty"`

	// Mission used when --mission is omitted
	DefaultMission string `json:"default_mission,omitempty"`
}

// UserConfigHandler manages loading and saving user configuration
type UserConfigHandler struct {
	configPath string
}

// NewUserConfigHandler creates a handler for ~/.spacetraders/config.json
func NewUserConfigHandler() (*UserConfigHandler, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewUserConfigHandlerAt(filepath.Join(homeDir, ".spacetraders", "config.json")), nil
}

// NewUserConfigHandlerAt creates a handler for an explicit file path
func NewUserConfigHandlerAt(configPath string) *UserConfigHandler {
	return &UserConfigHandler{configPath: configPath}
}

// Load reads the user config from disk
func (h *UserConfigHandler) Load() (*UserConfig, error) {
	// If file doesn't exist, return empty config
	if _, err := os.Stat(h.configPath); os.IsNotExist(err) {
		return &UserConfig{}, nil
	}

	data, err := os.ReadFile(h.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read user config: %w", err)
	}

	var config UserConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}

	return &config, nil
}

// Save writes the user config to disk, creating the directory if needed
func (h *UserConfigHandler) Save(config *UserConfig) error {
	if err := os.MkdirAll(filepath.Dir(h.configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	if err := os.WriteFile(h.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write user config: %w", err)
	}

	return nil
}

// SetDefaultShip sets the default ship symbol
func (h *UserConfigHandler) SetDefaultShip(shipSymbol string) error {
	config, err := h.Load()
	if err != nil {
		return err
	}

	config.DefaultShip = shipSymbol
	return h.Save(config)
}

// SetDefaultMission sets the default mission ID
func (h *UserConfigHandler) SetDefaultMission(missionID string) error {
	config, err := h.Load()
	if err != nil {
		return err
	}

	config.DefaultMission = missionID
	return h.Save(config)
}

// Clear removes all stored defaults
func (h *UserConfigHandler) Clear() error {
	return h.Save(&UserConfig{})
}

// GetConfigPath returns the path to the user config file
func (h *UserConfigHandler) GetConfigPath() string {
	return h.configPath
}
