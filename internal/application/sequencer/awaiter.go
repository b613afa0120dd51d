package sequencer

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/spacetraders-bot/internal/application/common"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/navigation"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/ports"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/shared"
)

// ConditionKind names what a wait is waiting for
type ConditionKind string

const (
	ConditionArrival  ConditionKind = "ARRIVAL"
	ConditionCooldown ConditionKind = "COOLDOWN"
)

// Condition is the remote state a caller waits on after issuing a command.
// ReadyAt is the server-reported instant the condition should hold.
type Condition struct {
	ShipSymbol string
	Kind       ConditionKind
	ReadyAt    time.Time
}

// Awaiter is the second phase of every timed remote operation.
// Issue the command, then Await the condition it reported.
// Implementations must return promptly with ctx.Err() once ctx is done.
type Awaiter interface {
	Await(ctx context.Context, cond Condition) error
}

// Wait strategies selectable from configuration
const (
	WaitStrategyTimer = "timer"
	WaitStrategyPoll  = "poll"
)

// TimerAwaiter trusts the server timer: it sleeps max(0, ReadyAt-now) and
// returns without re-checking the ship.
type TimerAwaiter struct {
	clock shared.Clock
}

// NewTimerAwaiter creates a timer awaiter. A nil clock means the real clock.
func NewTimerAwaiter(clock shared.Clock) *TimerAwaiter {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &TimerAwaiter{clock: clock}
}

// Await sleeps until cond.ReadyAt
func (a *TimerAwaiter) Await(ctx context.Context, cond Condition) error {
	wait := shared.WaitUntil(cond.ReadyAt, a.clock.Now())
	if wait <= 0 {
		return ctx.Err()
	}

	common.LoggerFromContext(ctx).Log(common.LevelInfo, fmt.Sprintf("Waiting %s for %s", wait.Round(time.Millisecond), cond.Kind), map[string]interface{}{
		"ship_symbol":  cond.ShipSymbol,
		"action":       "wait_" + string(cond.Kind),
		"wait_seconds": wait.Seconds(),
	})

	return a.clock.Sleep(ctx, wait)
}

// PollingAwaiter re-reads the ship snapshot every interval until the condition
// holds on the server: no longer IN_TRANSIT for ARRIVAL, no remaining cooldown
// for COOLDOWN. It never sleeps past ReadyAt on the first tick.
type PollingAwaiter struct {
	apiClient ports.APIClient
	clock     shared.Clock
	interval  time.Duration
}

// NewPollingAwaiter creates a polling awaiter
func NewPollingAwaiter(apiClient ports.APIClient, clock shared.Clock, interval time.Duration) *PollingAwaiter {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &PollingAwaiter{
		apiClient: apiClient,
		clock:     clock,
		interval:  interval,
	}
}

// Await polls the ship until the condition is satisfied
func (a *PollingAwaiter) Await(ctx context.Context, cond Condition) error {
	token, err := common.PlayerTokenFromContext(ctx)
	if err != nil {
		return err
	}
	logger := common.LoggerFromContext(ctx)

	for {
		data, err := a.apiClient.GetShip(ctx, cond.ShipSymbol, token)
		if err != nil {
			return fmt.Errorf("failed to poll ship %s: %w", cond.ShipSymbol, err)
		}

		if satisfied(cond.Kind, data) {
			return nil
		}

		// Sleep until whichever comes first: the next tick or the reported ready time
		wait := a.interval
		if untilReady := shared.WaitUntil(cond.ReadyAt, a.clock.Now()); untilReady > 0 && untilReady < wait {
			wait = untilReady
		}

		logger.Log(common.LevelDebug, "Condition not met, polling again", map[string]interface{}{
			"ship_symbol":  cond.ShipSymbol,
			"action":       "poll_" + string(cond.Kind),
			"wait_seconds": wait.Seconds(),
		})

		if err := a.clock.Sleep(ctx, wait); err != nil {
			return err
		}
	}
}

func satisfied(kind ConditionKind, data *navigation.ShipData) bool {
	switch kind {
	case ConditionArrival:
		return data.NavStatus != string(navigation.NavStatusInTransit)
	case ConditionCooldown:
		return data.Cooldown.RemainingSeconds <= 0
	default:
		return true
	}
}

// NewAwaiter builds the awaiter named by strategy
func NewAwaiter(strategy string, apiClient ports.APIClient, clock shared.Clock, pollInterval time.Duration) (Awaiter, error) {
	switch strategy {
	case "", WaitStrategyTimer:
		return NewTimerAwaiter(clock), nil
	case WaitStrategyPoll:
		return NewPollingAwaiter(apiClient, clock, pollInterval), nil
	default:
		return nil, fmt.Errorf("unknown wait strategy %q (want %s or %s)", strategy, WaitStrategyTimer, WaitStrategyPoll)
	}
}
