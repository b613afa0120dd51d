package sequencer

import (
	"context"
	"fmt"
	"sync"

	"github.com/andrescamacho/spacetraders-bot/internal/application/common"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/market"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/navigation"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/ports"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/shared"
)

// Recorder receives sequencer events for metrics. All methods must be cheap.
type Recorder interface {
	RecordAction(shipSymbol, action string, success bool)
	RecordYield(shipSymbol, tradeSymbol string, units int)
	RecordWait(kind string, seconds float64)
}

type noOpRecorder struct{}

func (noOpRecorder) RecordAction(string, string, bool) {}
func (noOpRecorder) RecordYield(string, string, int)   {}
func (noOpRecorder) RecordWait(string, float64)        {}

// Sequencer drives one remote ship through navigate, orbit/dock, act and wait.
//
// Every method is a remote command followed, where the server reports a timer,
// by an Await on that timer. Nothing is retried: the first failure is logged
// once with the remote payload and returned. Ship state is never stored beyond
// the phase tracker used for logs.
type Sequencer struct {
	apiClient ports.APIClient
	awaiter   Awaiter
	clock     shared.Clock
	recorder  Recorder

	mu       sync.Mutex
	trackers map[string]*shared.PhaseTracker
}

// Option customises a Sequencer
type Option func(*Sequencer)

// WithRecorder attaches a metrics recorder
func WithRecorder(recorder Recorder) Option {
	return func(s *Sequencer) {
		if recorder != nil {
			s.recorder = recorder
		}
	}
}

// NewSequencer creates a sequencer. A nil awaiter means a TimerAwaiter on clock.
func NewSequencer(apiClient ports.APIClient, awaiter Awaiter, clock shared.Clock, opts ...Option) *Sequencer {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if awaiter == nil {
		awaiter = NewTimerAwaiter(clock)
	}
	s := &Sequencer{
		apiClient: apiClient,
		awaiter:   awaiter,
		clock:     clock,
		recorder:  noOpRecorder{},
		trackers:  make(map[string]*shared.PhaseTracker),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Clock returns the clock waits are measured against
func (s *Sequencer) Clock() shared.Clock {
	return s.clock
}

// Phase returns the last phase the sequencer put the ship in
func (s *Sequencer) Phase(shipSymbol string) shared.ShipPhase {
	return s.tracker(shipSymbol).Phase()
}

func (s *Sequencer) tracker(shipSymbol string) *shared.PhaseTracker {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trackers[shipSymbol]
	if !ok {
		t = shared.NewPhaseTracker(shipSymbol, s.clock)
		s.trackers[shipSymbol] = t
	}
	return t
}

func (s *Sequencer) enter(ctx context.Context, shipSymbol string, next shared.ShipPhase) {
	t := s.tracker(shipSymbol)
	s.mu.Lock()
	previous := t.Enter(next)
	s.mu.Unlock()
	if previous == next {
		return
	}
	common.LoggerFromContext(ctx).Log(common.LevelDebug, fmt.Sprintf("Phase %s -> %s", previous, next), map[string]interface{}{
		"ship_symbol": shipSymbol,
		"action":      "phase",
		"from":        string(previous),
		"to":          string(next),
	})
}

// failed logs a failed remote call once and returns it wrapped with the action
func (s *Sequencer) failed(ctx context.Context, shipSymbol, action string, err error) error {
	s.recorder.RecordAction(shipSymbol, action, false)
	common.LoggerFromContext(ctx).Log(common.LevelError, fmt.Sprintf("%s failed", action), common.ErrorMetadata(err, map[string]interface{}{
		"ship_symbol": shipSymbol,
		"action":      action,
	}))
	return fmt.Errorf("%s %s: %w", action, shipSymbol, err)
}

func (s *Sequencer) await(ctx context.Context, cond Condition) error {
	wait := shared.WaitUntil(cond.ReadyAt, s.clock.Now())
	s.recorder.RecordWait(string(cond.Kind), wait.Seconds())
	if err := s.awaiter.Await(ctx, cond); err != nil {
		return fmt.Errorf("waiting for %s of %s: %w", cond.Kind, cond.ShipSymbol, err)
	}
	return nil
}

// NavigateTo moves the ship and blocks until the reported arrival time.
// On return the ship is treated as arrived; the timer awaiter does not re-verify.
func (s *Sequencer) NavigateTo(ctx context.Context, shipSymbol, waypointSymbol string) (*navigation.NavigationResult, error) {
	token, err := common.PlayerTokenFromContext(ctx)
	if err != nil {
		return nil, err
	}
	logger := common.LoggerFromContext(ctx)

	s.enter(ctx, shipSymbol, shared.PhaseNavigating)
	logger.Log(common.LevelInfo, fmt.Sprintf("Navigating to %s", waypointSymbol), map[string]interface{}{
		"ship_symbol": shipSymbol,
		"action":      "navigate",
		"destination": waypointSymbol,
	})

	result, err := s.apiClient.NavigateShip(ctx, shipSymbol, waypointSymbol, token)
	if err != nil {
		return nil, s.failed(ctx, shipSymbol, "navigate", err)
	}
	s.recorder.RecordAction(shipSymbol, "navigate", true)

	readyAt := s.clock.Now()
	if result.ArrivalTimeStr != "" {
		arrival, err := shared.NewArrivalTime(result.ArrivalTimeStr)
		if err != nil {
			return nil, s.failed(ctx, shipSymbol, "navigate", err)
		}
		readyAt = arrival.Time()
	}

	if err := s.await(ctx, Condition{ShipSymbol: shipSymbol, Kind: ConditionArrival, ReadyAt: readyAt}); err != nil {
		return nil, err
	}

	// Arrival always leaves a ship in orbit
	s.enter(ctx, shipSymbol, shared.PhaseOrbiting)
	logger.Log(common.LevelInfo, fmt.Sprintf("Arrived at %s", waypointSymbol), map[string]interface{}{
		"ship_symbol":    shipSymbol,
		"action":         "arrive",
		"fuel_consumed":  result.FuelConsumed,
		"fuel_remaining": result.FuelRemaining,
	})
	return result, nil
}

// MoveTo navigates ship to destination unless it is already there, leaving
// orbit first when docked. It reports whether a trip was made.
func (s *Sequencer) MoveTo(ctx context.Context, ship *navigation.Ship, destination string) (bool, error) {
	if ship.CurrentLocation().Symbol == destination && !ship.IsInTransit() {
		return false, nil
	}
	if ship.IsDocked() {
		if err := s.Orbit(ctx, ship.ShipSymbol()); err != nil {
			return false, err
		}
	}
	if _, err := s.NavigateTo(ctx, ship.ShipSymbol(), destination); err != nil {
		return false, err
	}
	return true, nil
}

// SetMode orbits or docks the ship without checking its current mode first.
// Issuing it in the target mode is a no-op on the remote side.
func (s *Sequencer) SetMode(ctx context.Context, shipSymbol string, mode navigation.NavStatus) error {
	token, err := common.PlayerTokenFromContext(ctx)
	if err != nil {
		return err
	}

	switch mode {
	case navigation.NavStatusInOrbit:
		if err := s.apiClient.OrbitShip(ctx, shipSymbol, token); err != nil {
			return s.failed(ctx, shipSymbol, "orbit", err)
		}
		s.recorder.RecordAction(shipSymbol, "orbit", true)
		s.enter(ctx, shipSymbol, shared.PhaseOrbiting)
	case navigation.NavStatusDocked:
		if err := s.apiClient.DockShip(ctx, shipSymbol, token); err != nil {
			return s.failed(ctx, shipSymbol, "dock", err)
		}
		s.recorder.RecordAction(shipSymbol, "dock", true)
		s.enter(ctx, shipSymbol, shared.PhaseDocked)
	default:
		return shared.NewValidationError("mode", fmt.Sprintf("must be %s or %s, got %q", navigation.NavStatusInOrbit, navigation.NavStatusDocked, mode))
	}

	common.LoggerFromContext(ctx).Log(common.LevelInfo, fmt.Sprintf("Ship is now %s", mode), map[string]interface{}{
		"ship_symbol": shipSymbol,
		"action":      "set_mode",
		"mode":        string(mode),
	})
	return nil
}

// Orbit is SetMode(IN_ORBIT)
func (s *Sequencer) Orbit(ctx context.Context, shipSymbol string) error {
	return s.SetMode(ctx, shipSymbol, navigation.NavStatusInOrbit)
}

// Dock is SetMode(DOCKED)
func (s *Sequencer) Dock(ctx context.Context, shipSymbol string) error {
	return s.SetMode(ctx, shipSymbol, navigation.NavStatusDocked)
}

// Extract performs one extraction. It does not wait out the cooldown;
// callers that act again call AwaitCooldown with the reported seconds.
func (s *Sequencer) Extract(ctx context.Context, shipSymbol string) (*ports.ExtractionResult, error) {
	token, err := common.PlayerTokenFromContext(ctx)
	if err != nil {
		return nil, err
	}

	s.enter(ctx, shipSymbol, shared.PhaseActing)
	result, err := s.apiClient.ExtractResources(ctx, shipSymbol, token)
	if err != nil {
		return nil, s.failed(ctx, shipSymbol, "extract", err)
	}
	s.recorder.RecordAction(shipSymbol, "extract", true)
	s.recorder.RecordYield(shipSymbol, result.YieldSymbol, result.YieldUnits)

	common.LoggerFromContext(ctx).Log(common.LevelInfo, fmt.Sprintf("Extracted %d %s", result.YieldUnits, result.YieldSymbol), map[string]interface{}{
		"ship_symbol":      shipSymbol,
		"action":           "extract",
		"yield_symbol":     result.YieldSymbol,
		"yield_units":      result.YieldUnits,
		"cooldown_seconds": result.CooldownSeconds,
	})
	return result, nil
}

// AwaitCooldown blocks for the cooldown the server reported after an action
func (s *Sequencer) AwaitCooldown(ctx context.Context, shipSymbol string, cooldownSeconds int) error {
	s.enter(ctx, shipSymbol, shared.PhaseCooldown)
	cooldown := shared.Cooldown{ShipSymbol: shipSymbol, RemainingSeconds: cooldownSeconds}
	return s.await(ctx, Condition{
		ShipSymbol: shipSymbol,
		Kind:       ConditionCooldown,
		ReadyAt:    cooldown.ReadyAt(s.clock.Now()),
	})
}

// GetShip fetches a fresh snapshot
func (s *Sequencer) GetShip(ctx context.Context, shipSymbol string) (*navigation.Ship, error) {
	token, err := common.PlayerTokenFromContext(ctx)
	if err != nil {
		return nil, err
	}

	data, err := s.apiClient.GetShip(ctx, shipSymbol, token)
	if err != nil {
		return nil, s.failed(ctx, shipSymbol, "get_ship", err)
	}

	ship, err := navigation.NewShipFromData(data)
	if err != nil {
		return nil, s.failed(ctx, shipSymbol, "get_ship", err)
	}
	return ship, nil
}

// IsCargoFull reports units >= capacity on a fresh snapshot. Pure read.
func (s *Sequencer) IsCargoFull(ctx context.Context, shipSymbol string) (bool, error) {
	ship, err := s.GetShip(ctx, shipSymbol)
	if err != nil {
		return false, err
	}
	return ship.IsCargoFull(), nil
}

// Sell sells units of a good at the ship's current market
func (s *Sequencer) Sell(ctx context.Context, shipSymbol, tradeSymbol string, units int) (*ports.TransactionResult, error) {
	token, err := common.PlayerTokenFromContext(ctx)
	if err != nil {
		return nil, err
	}

	s.enter(ctx, shipSymbol, shared.PhaseSelling)
	result, err := s.apiClient.SellCargo(ctx, shipSymbol, tradeSymbol, units, token)
	if err != nil {
		return nil, s.failed(ctx, shipSymbol, "sell", err)
	}
	s.recorder.RecordAction(shipSymbol, "sell", true)

	common.LoggerFromContext(ctx).Log(common.LevelInfo, fmt.Sprintf("Sold %d %s for %d", result.Units, tradeSymbol, result.TotalPrice), map[string]interface{}{
		"ship_symbol":  shipSymbol,
		"action":       "sell",
		"trade_symbol": tradeSymbol,
		"units":        result.Units,
		"total_price":  result.TotalPrice,
	})
	return result, nil
}

// Purchase buys units of a good at the ship's current market
func (s *Sequencer) Purchase(ctx context.Context, shipSymbol, tradeSymbol string, units int) (*ports.TransactionResult, error) {
	token, err := common.PlayerTokenFromContext(ctx)
	if err != nil {
		return nil, err
	}

	s.enter(ctx, shipSymbol, shared.PhaseActing)
	result, err := s.apiClient.PurchaseCargo(ctx, shipSymbol, tradeSymbol, units, token)
	if err != nil {
		return nil, s.failed(ctx, shipSymbol, "purchase", err)
	}
	s.recorder.RecordAction(shipSymbol, "purchase", true)

	common.LoggerFromContext(ctx).Log(common.LevelInfo, fmt.Sprintf("Purchased %d %s for %d", result.Units, tradeSymbol, result.TotalPrice), map[string]interface{}{
		"ship_symbol":  shipSymbol,
		"action":       "purchase",
		"trade_symbol": tradeSymbol,
		"units":        result.Units,
		"total_price":  result.TotalPrice,
	})
	return result, nil
}

// GetMarket fetches the market listing at a waypoint
func (s *Sequencer) GetMarket(ctx context.Context, waypointSymbol string) (*market.Market, error) {
	token, err := common.PlayerTokenFromContext(ctx)
	if err != nil {
		return nil, err
	}

	data, err := s.apiClient.GetMarket(ctx, shared.ExtractSystemSymbol(waypointSymbol), waypointSymbol, token)
	if err != nil {
		return nil, s.failed(ctx, waypointSymbol, "get_market", err)
	}

	goods := make([]market.TradeGood, 0, len(data.TradeGoods))
	for _, g := range data.TradeGoods {
		good, err := market.NewTradeGood(g.Symbol, market.TradeGoodType(g.Type), g.Supply, g.PurchasePrice, g.SellPrice, g.TradeVolume)
		if err != nil {
			return nil, s.failed(ctx, waypointSymbol, "get_market", err)
		}
		goods = append(goods, *good)
	}

	return market.NewMarket(waypointSymbol, goods, s.clock.Now())
}

// FulfillMission asks the server to complete a mission
func (s *Sequencer) FulfillMission(ctx context.Context, missionID string) (*ports.MissionData, error) {
	token, err := common.PlayerTokenFromContext(ctx)
	if err != nil {
		return nil, err
	}

	data, err := s.apiClient.FulfillMission(ctx, missionID, token)
	if err != nil {
		return nil, s.failed(ctx, missionID, "fulfill_mission", err)
	}

	common.LoggerFromContext(ctx).Log(common.LevelInfo, "Mission fulfilled", map[string]interface{}{
		"mission_id": missionID,
		"action":     "fulfill_mission",
		"fulfilled":  data.Fulfilled,
	})
	return data, nil
}

// Idle marks the end of a sequence for the ship
func (s *Sequencer) Idle(ctx context.Context, shipSymbol string) {
	s.enter(ctx, shipSymbol, shared.PhaseIdle)
}
