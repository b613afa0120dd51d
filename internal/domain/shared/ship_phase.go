package shared

import (
	"fmt"
	"time"
)

// ShipPhase is the sequencer's inferred view of what a ship is doing.
// It is derived from the most recent remote response, never from local truth.
type ShipPhase string

const (
	PhaseIdle       ShipPhase = "IDLE"
	PhaseNavigating ShipPhase = "NAVIGATING"
	PhaseOrbiting   ShipPhase = "ORBITING"
	PhaseDocked     ShipPhase = "DOCKED"
	PhaseActing     ShipPhase = "ACTING"
	PhaseCooldown   ShipPhase = "COOLDOWN"
	PhaseSelling    ShipPhase = "SELLING"
)

var phaseTransitions = map[ShipPhase][]ShipPhase{
	PhaseIdle:       {PhaseNavigating, PhaseOrbiting, PhaseDocked, PhaseActing, PhaseSelling},
	PhaseNavigating: {PhaseOrbiting, PhaseDocked, PhaseIdle},
	PhaseOrbiting:   {PhaseActing, PhaseNavigating, PhaseDocked, PhaseIdle},
	PhaseDocked:     {PhaseSelling, PhaseNavigating, PhaseOrbiting, PhaseActing, PhaseIdle},
	PhaseActing:     {PhaseCooldown, PhaseActing, PhaseSelling, PhaseNavigating, PhaseIdle},
	PhaseCooldown:   {PhaseActing, PhaseSelling, PhaseNavigating, PhaseIdle},
	PhaseSelling:    {PhaseSelling, PhaseNavigating, PhaseIdle, PhaseOrbiting, PhaseDocked},
}

// PhaseTracker follows one ship through
// IDLE → NAVIGATING → ORBITING/DOCKED → ACTING → COOLDOWN → ACTING|SELLING → NAVIGATING|IDLE.
//
// Unexpected transitions are recorded rather than rejected: the remote service owns
// the real state and the tracker only mirrors it for logs and metrics.
type PhaseTracker struct {
	shipSymbol string
	phase      ShipPhase
	enteredAt  time.Time
	unexpected int
	clock      Clock
}

// NewPhaseTracker creates a tracker in IDLE
func NewPhaseTracker(shipSymbol string, clock Clock) *PhaseTracker {
	if clock == nil {
		clock = NewRealClock()
	}
	return &PhaseTracker{
		shipSymbol: shipSymbol,
		phase:      PhaseIdle,
		enteredAt:  clock.Now(),
		clock:      clock,
	}
}

// Phase returns the current phase
func (t *PhaseTracker) Phase() ShipPhase {
	return t.phase
}

// ShipSymbol returns the tracked ship
func (t *PhaseTracker) ShipSymbol() string {
	return t.shipSymbol
}

// InPhaseFor returns how long the ship has been in the current phase
func (t *PhaseTracker) InPhaseFor() time.Duration {
	return t.clock.Now().Sub(t.enteredAt)
}

// UnexpectedTransitions counts transitions not in the table
func (t *PhaseTracker) UnexpectedTransitions() int {
	return t.unexpected
}

// CanTransition reports whether next is a listed successor of the current phase
func (t *PhaseTracker) CanTransition(next ShipPhase) bool {
	for _, candidate := range phaseTransitions[t.phase] {
		if candidate == next {
			return true
		}
	}
	return false
}

// Enter moves the tracker to next and returns the phase it left
func (t *PhaseTracker) Enter(next ShipPhase) ShipPhase {
	previous := t.phase
	if !t.CanTransition(next) {
		t.unexpected++
	}
	t.phase = next
	t.enteredAt = t.clock.Now()
	return previous
}

// PhaseForNavStatus maps a remote nav status onto a phase
func PhaseForNavStatus(status string) (ShipPhase, error) {
	switch status {
	case "DOCKED":
		return PhaseDocked, nil
	case "IN_ORBIT":
		return PhaseOrbiting, nil
	case "IN_TRANSIT":
		return PhaseNavigating, nil
	default:
		return "", fmt.Errorf("unknown nav status %q", status)
	}
}
