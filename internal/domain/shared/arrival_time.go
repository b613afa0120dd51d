package shared

import (
	"fmt"
	"time"
)

// ArrivalTime represents an immutable arrival time reported by the SpaceTraders API.
// It wraps the ISO8601 timestamp from a navigate response and computes how long
// the caller has to wait for the ship to arrive.
type ArrivalTime struct {
	timestamp string
	at        time.Time
}

// NewArrivalTime creates a new ArrivalTime value object with validation.
// The timestamp must be RFC3339 (the API uses a Z suffix with milliseconds).
func NewArrivalTime(timestamp string) (*ArrivalTime, error) {
	if timestamp == "" {
		return nil, fmt.Errorf("arrival time timestamp cannot be empty")
	}

	at, err := time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return nil, fmt.Errorf("invalid arrival time format: %w", err)
	}

	return &ArrivalTime{
		timestamp: timestamp,
		at:        at.UTC(),
	}, nil
}

// Time returns the parsed arrival instant in UTC
func (a *ArrivalTime) Time() time.Time {
	return a.at
}

// WaitFrom returns max(0, arrival - now)
func (a *ArrivalTime) WaitFrom(now time.Time) time.Duration {
	return WaitUntil(a.at, now)
}

// Timestamp returns the raw ISO8601 timestamp string
func (a *ArrivalTime) Timestamp() string {
	return a.timestamp
}

// HasArrived checks if the arrival time is not in the future relative to now
func (a *ArrivalTime) HasArrived(now time.Time) bool {
	return a.WaitFrom(now) == 0
}

func (a *ArrivalTime) String() string {
	return fmt.Sprintf("ArrivalTime(%s)", a.timestamp)
}

// WaitUntil returns the non-negative duration between now and readyAt
func WaitUntil(readyAt, now time.Time) time.Duration {
	wait := readyAt.Sub(now)
	if wait < 0 {
		return 0
	}
	return wait
}
