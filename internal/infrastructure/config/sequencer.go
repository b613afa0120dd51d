package config

import "time"

// SequencerConfig selects how the bot waits on server-reported timers
type SequencerConfig struct {
	// WaitStrategy: timer sleeps until the reported instant, poll re-reads the ship
	WaitStrategy string `mapstructure:"wait_strategy" validate:"wait_strategy"`

	// PollInterval is the gap between ship reads for the poll strategy
	PollInterval time.Duration `mapstructure:"poll_interval" validate:"positive_duration"`
}
