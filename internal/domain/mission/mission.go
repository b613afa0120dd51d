package mission

import (
	"fmt"
	"time"

	"github.com/andrescamacho/spacetraders-bot/internal/domain/shared"
)

type Payment struct {
	OnAccepted  int
	OnFulfilled int
}

// Total is what the mission pays across its whole lifecycle
func (p Payment) Total() int {
	return p.OnAccepted + p.OnFulfilled
}

type Delivery struct {
	TradeSymbol       string
	DestinationSymbol string
	UnitsRequired     int
	UnitsFulfilled    int
}

// UnitsRemaining is never negative
func (d Delivery) UnitsRemaining() int {
	remaining := d.UnitsRequired - d.UnitsFulfilled
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (d Delivery) IsComplete() bool {
	return d.UnitsFulfilled >= d.UnitsRequired
}

type Terms struct {
	Payment    Payment
	Deliveries []Delivery
	Deadline   string
}

// Mission is a snapshot of a remote mission.
// Lifecycle: created server-side, accepted, fulfilled. Terminal once fulfilled or past its deadline.
type Mission struct {
	missionID     string
	factionSymbol string
	missionType   string
	terms         Terms
	accepted      bool
	fulfilled     bool
	deadline      time.Time
	clock         shared.Clock
}

// NewMission creates a new mission snapshot
// The clock parameter is optional - if nil, defaults to RealClock for production use
func NewMission(missionID, factionSymbol, missionType string, terms Terms, accepted, fulfilled bool, clock shared.Clock) (*Mission, error) {
	if missionID == "" {
		return nil, fmt.Errorf("mission ID cannot be empty")
	}

	if clock == nil {
		clock = shared.NewRealClock()
	}

	var deadline time.Time
	if terms.Deadline != "" {
		parsed, err := time.Parse(time.RFC3339Nano, terms.Deadline)
		if err != nil {
			return nil, fmt.Errorf("invalid mission deadline %q: %w", terms.Deadline, err)
		}
		deadline = parsed.UTC()
	}

	return &Mission{
		missionID:     missionID,
		factionSymbol: factionSymbol,
		missionType:   missionType,
		terms:         terms,
		accepted:      accepted,
		fulfilled:     fulfilled,
		deadline:      deadline,
		clock:         clock,
	}, nil
}

func (m *Mission) MissionID() string     { return m.missionID }
func (m *Mission) FactionSymbol() string { return m.factionSymbol }
func (m *Mission) Type() string          { return m.missionType }
func (m *Mission) Terms() Terms          { return m.terms }
func (m *Mission) Accepted() bool        { return m.accepted }
func (m *Mission) Fulfilled() bool       { return m.fulfilled }

// Deadline is the zero time when the API did not report one
func (m *Mission) Deadline() time.Time { return m.deadline }

// IsExpired reports whether the deadline has passed without fulfilment
func (m *Mission) IsExpired() bool {
	if m.fulfilled || m.deadline.IsZero() {
		return false
	}
	return !m.clock.Now().Before(m.deadline)
}

// IsTerminal reports whether no further transition is possible
func (m *Mission) IsTerminal() bool {
	return m.fulfilled || m.IsExpired()
}

// TimeRemaining until the deadline, zero once passed or unknown
func (m *Mission) TimeRemaining() time.Duration {
	if m.deadline.IsZero() {
		return 0
	}
	return shared.WaitUntil(m.deadline, m.clock.Now())
}

// CanAccept returns an error explaining why the mission cannot be accepted
func (m *Mission) CanAccept() error {
	if m.fulfilled {
		return shared.NewMissionClosedError(m.missionID, "already fulfilled")
	}
	if m.IsExpired() {
		return shared.NewMissionClosedError(m.missionID, "deadline passed")
	}
	if m.accepted {
		return shared.NewMissionError(m.missionID, fmt.Sprintf("mission %s already accepted", m.missionID))
	}
	return nil
}

// CanFulfill checks if all deliveries are complete
func (m *Mission) CanFulfill() bool {
	for _, delivery := range m.terms.Deliveries {
		if !delivery.IsComplete() {
			return false
		}
	}
	return true
}

// CheckFulfillable returns an error when the mission is not in a state to be fulfilled.
// Delivery progress is left to the remote service to judge.
func (m *Mission) CheckFulfillable() error {
	if m.fulfilled {
		return shared.NewMissionClosedError(m.missionID, "already fulfilled")
	}
	if !m.accepted {
		return shared.NewMissionNotAcceptedError(m.missionID)
	}
	return nil
}

// DeliveryFor returns the delivery requirement for a trade good
func (m *Mission) DeliveryFor(tradeSymbol string) (Delivery, bool) {
	for _, d := range m.terms.Deliveries {
		if d.TradeSymbol == tradeSymbol {
			return d, true
		}
	}
	return Delivery{}, false
}

// PrimaryDestination is the destination of the first unfinished delivery,
// falling back to the first delivery. Empty when the mission has none.
func (m *Mission) PrimaryDestination() string {
	for _, d := range m.terms.Deliveries {
		if !d.IsComplete() {
			return d.DestinationSymbol
		}
	}
	if len(m.terms.Deliveries) > 0 {
		return m.terms.Deliveries[0].DestinationSymbol
	}
	return ""
}

// UnitsRemaining sums remaining units across all deliveries
func (m *Mission) UnitsRemaining() int {
	total := 0
	for _, d := range m.terms.Deliveries {
		total += d.UnitsRemaining()
	}
	return total
}

// Status is a single word summary for display
func (m *Mission) Status() string {
	switch {
	case m.fulfilled:
		return "FULFILLED"
	case m.IsExpired():
		return "EXPIRED"
	case m.accepted:
		return "ACCEPTED"
	default:
		return "OPEN"
	}
}
