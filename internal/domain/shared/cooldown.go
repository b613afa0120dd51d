package shared

import (
	"fmt"
	"time"
)

// Cooldown is the reactor cooldown a ship reports after an action
type Cooldown struct {
	ShipSymbol       string
	TotalSeconds     int
	RemainingSeconds int
	Expiration       string // ISO8601, empty when no cooldown is active
}

// Remaining returns the remaining cooldown as a duration
func (c Cooldown) Remaining() time.Duration {
	if c.RemainingSeconds <= 0 {
		return 0
	}
	return time.Duration(c.RemainingSeconds) * time.Second
}

// IsActive reports whether the ship must still wait before its next action
func (c Cooldown) IsActive() bool {
	return c.RemainingSeconds > 0
}

// ReadyAt returns the instant the cooldown ends, measured from now.
// The remaining-seconds field is authoritative; the expiration timestamp is informational.
func (c Cooldown) ReadyAt(now time.Time) time.Time {
	return now.Add(c.Remaining())
}

func (c Cooldown) String() string {
	return fmt.Sprintf("Cooldown(%ds/%ds)", c.RemainingSeconds, c.TotalSeconds)
}
