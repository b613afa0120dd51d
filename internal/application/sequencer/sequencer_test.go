package sequencer_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacetraders-bot/internal/adapters/api"
	"github.com/andrescamacho/spacetraders-bot/internal/application/common"
	"github.com/andrescamacho/spacetraders-bot/internal/application/sequencer"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/navigation"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/ports"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/shared"
	"github.com/andrescamacho/spacetraders-bot/test/helpers"
)

const (
	testToken = "test-token"
	shipSym   = "AGENT-1"
	asteroid  = "X1-Q87-C3"
	marketWP  = "X1-Q87-B2"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type logEntry struct {
	Level    string
	Message  string
	Metadata map[string]interface{}
}

type captureLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *captureLogger) Log(level, message string, metadata map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{Level: level, Message: message, Metadata: metadata})
}

func (l *captureLogger) byLevel(level string) []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []logEntry
	for _, e := range l.entries {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

type fixture struct {
	clock  *shared.MockClock
	api    *helpers.MockAPIClient
	seq    *sequencer.Sequencer
	logger *captureLogger
	ctx    context.Context
}

func newFixture(t *testing.T, cargoCapacity int) *fixture {
	t.Helper()
	clock := shared.NewMockClock(t0)
	fake := helpers.NewMockAPIClient(clock)
	fake.RequireToken(testToken)
	fake.AddShip(helpers.CreateTestMiningShip(shipSym, asteroid, cargoCapacity))

	logger := &captureLogger{}
	ctx := common.WithLogger(common.WithPlayerToken(context.Background(), testToken), logger)

	return &fixture{
		clock:  clock,
		api:    fake,
		seq:    sequencer.NewSequencer(fake, sequencer.NewTimerAwaiter(clock), clock),
		logger: logger,
		ctx:    ctx,
	}
}

func TestNavigateTo_WaitsExactlyUntilArrival(t *testing.T) {
	// Arrange
	f := newFixture(t, 40)
	f.api.SetTransitTime(marketWP, 47*time.Second+250*time.Millisecond)

	// Act
	result, err := f.seq.NavigateTo(f.ctx, shipSym, marketWP)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, marketWP, result.Destination)
	assert.Equal(t, []time.Duration{47*time.Second + 250*time.Millisecond}, f.clock.Sleeps())
	assert.Equal(t, shared.PhaseOrbiting, f.seq.Phase(shipSym))
}

func TestNavigateTo_ArrivalInThePastDoesNotWait(t *testing.T) {
	for name, transit := range map[string]time.Duration{
		"arrival equals now": 0,
		"arrival in past":    -5 * time.Second,
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, 40)
			f.api.SetTransitTime(marketWP, transit)

			_, err := f.seq.NavigateTo(f.ctx, shipSym, marketWP)

			require.NoError(t, err)
			assert.Empty(t, f.clock.Sleeps())
			assert.Equal(t, t0, f.clock.Now())
		})
	}
}

func TestNavigateTo_DoesNotReverifyArrivalWithTimerAwaiter(t *testing.T) {
	f := newFixture(t, 40)
	f.api.SetTransitTime(marketWP, 10*time.Second)

	_, err := f.seq.NavigateTo(f.ctx, shipSym, marketWP)

	require.NoError(t, err)
	assert.Equal(t, []string{helpers.MethodNavigateShip}, f.api.Calls())
}

func TestMineUntil_NonMatchingYieldLeavesProgressButHonoursCooldown(t *testing.T) {
	f := newFixture(t, 100)
	f.api.QueueExtractions(shipSym,
		helpers.QueuedExtraction{Symbol: "IRON_ORE", Units: 12, CooldownSeconds: 70},
		helpers.QueuedExtraction{Symbol: "ALUMINUM_ORE", Units: 10, CooldownSeconds: 70},
	)

	outcome, err := f.seq.MineUntil(f.ctx, shipSym, sequencer.MiningPlan{TargetGood: "ALUMINUM_ORE", TargetUnits: 10})

	require.NoError(t, err)
	assert.Equal(t, 10, outcome.Accumulated)
	assert.Equal(t, 12, outcome.Yields["IRON_ORE"])
	assert.Equal(t, 2, outcome.Extractions)
	// the cooldown after the iron yield was waited out before extracting again
	assert.Equal(t, []time.Duration{70 * time.Second}, f.clock.Sleeps())
}

func TestMineUntil_StopsImmediatelyWhenThresholdReached(t *testing.T) {
	f := newFixture(t, 100)
	f.api.QueueExtractions(shipSym,
		helpers.QueuedExtraction{Symbol: "ALUMINUM_ORE", Units: 40, CooldownSeconds: 80},
		helpers.QueuedExtraction{Symbol: "ALUMINUM_ORE", Units: 21, CooldownSeconds: 80},
		helpers.QueuedExtraction{Symbol: "ALUMINUM_ORE", Units: 30, CooldownSeconds: 80},
	)

	outcome, err := f.seq.MineUntil(f.ctx, shipSym, sequencer.MiningPlan{TargetGood: "ALUMINUM_ORE", TargetUnits: 61})

	require.NoError(t, err)
	assert.Equal(t, sequencer.StopTargetReached, outcome.Reason)
	assert.Equal(t, 61, outcome.Accumulated)
	assert.Equal(t, 2, outcome.Extractions)
	assert.Equal(t, 2, f.api.CallCount(helpers.MethodExtractResources))
	// one cooldown between the two extractions, none after the last
	assert.Equal(t, []time.Duration{80 * time.Second}, f.clock.Sleeps())
}

func TestMineUntil_StopsWhenCargoIsFull(t *testing.T) {
	f := newFixture(t, 30)
	f.api.QueueExtractions(shipSym,
		helpers.QueuedExtraction{Symbol: "QUARTZ_SAND", Units: 20, CooldownSeconds: 60},
		helpers.QueuedExtraction{Symbol: "ALUMINUM_ORE", Units: 20, CooldownSeconds: 60},
	)

	outcome, err := f.seq.MineUntil(f.ctx, shipSym, sequencer.MiningPlan{TargetGood: "ALUMINUM_ORE", TargetUnits: 61})

	require.NoError(t, err)
	assert.Equal(t, sequencer.StopCargoFull, outcome.Reason)
	assert.Equal(t, 10, outcome.Accumulated) // hold had room for 10 more
	assert.Equal(t, 2, outcome.Extractions)
}

func TestMineUntil_ZeroTargetMinesUntilFull(t *testing.T) {
	f := newFixture(t, 20)
	f.api.QueueExtractions(shipSym,
		helpers.QueuedExtraction{Symbol: "IRON_ORE", Units: 8, CooldownSeconds: 10},
		helpers.QueuedExtraction{Symbol: "COPPER_ORE", Units: 8, CooldownSeconds: 10},
		helpers.QueuedExtraction{Symbol: "IRON_ORE", Units: 8, CooldownSeconds: 10},
	)

	outcome, err := f.seq.MineUntil(f.ctx, shipSym, sequencer.MiningPlan{})

	require.NoError(t, err)
	assert.Equal(t, sequencer.StopCargoFull, outcome.Reason)
	assert.Equal(t, 3, outcome.Extractions)
	assert.Equal(t, 20, outcome.Accumulated)
}

func TestMineUntil_RejectsNegativeTarget(t *testing.T) {
	f := newFixture(t, 20)

	_, err := f.seq.MineUntil(f.ctx, shipSym, sequencer.MiningPlan{TargetUnits: -1})

	require.Error(t, err)
	assert.Zero(t, f.api.CallCount(helpers.MethodExtractResources))
}

func TestRemoteFailure_PropagatesPayloadAndLogsOnce(t *testing.T) {
	// Arrange
	f := newFixture(t, 40)
	remote := &api.APIError{
		Method:     http.MethodPost,
		Path:       "/my/ships/AGENT-1/extract",
		StatusCode: http.StatusConflict,
		Code:       4000,
		Message:    "Ship action is still on cooldown",
		Body:       `{"error":{"message":"Ship action is still on cooldown","code":4000}}`,
	}
	f.api.SetError(helpers.MethodExtractResources, remote)

	// Act
	outcome, err := f.seq.MineUntil(f.ctx, shipSym, sequencer.MiningPlan{TargetGood: "ALUMINUM_ORE", TargetUnits: 10})

	// Assert
	require.Error(t, err)
	var apiErr *api.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Same(t, remote, apiErr)
	assert.Equal(t, 0, outcome.Extractions)
	assert.Equal(t, 1, f.api.CallCount(helpers.MethodExtractResources), "no retry")

	errorsLogged := f.logger.byLevel(common.LevelError)
	require.Len(t, errorsLogged, 1)
	assert.Equal(t, http.StatusConflict, errorsLogged[0].Metadata["status_code"])
	assert.Equal(t, 4000, errorsLogged[0].Metadata["error_code"])
	assert.Equal(t, remote.Body, errorsLogged[0].Metadata["error_body"])
}

func TestRemoteFailure_EveryOperationPropagates(t *testing.T) {
	remote := &api.APIError{StatusCode: http.StatusBadRequest, Code: 4214, Body: `{"error":{"code":4214}}`}

	cases := map[string]struct {
		method string
		call   func(f *fixture) error
	}{
		"navigate": {helpers.MethodNavigateShip, func(f *fixture) error {
			_, err := f.seq.NavigateTo(f.ctx, shipSym, marketWP)
			return err
		}},
		"orbit": {helpers.MethodOrbitShip, func(f *fixture) error { return f.seq.Orbit(f.ctx, shipSym) }},
		"dock":  {helpers.MethodDockShip, func(f *fixture) error { return f.seq.Dock(f.ctx, shipSym) }},
		"cargo check": {helpers.MethodGetShip, func(f *fixture) error {
			_, err := f.seq.IsCargoFull(f.ctx, shipSym)
			return err
		}},
		"sell": {helpers.MethodSellCargo, func(f *fixture) error {
			_, err := f.seq.Sell(f.ctx, shipSym, "ALUMINUM_ORE", 1)
			return err
		}},
		"fulfill": {helpers.MethodFulfillMission, func(f *fixture) error {
			_, err := f.seq.FulfillMission(f.ctx, "m-1")
			return err
		}},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, 40)
			f.api.SetError(tc.method, remote)

			err := tc.call(f)

			require.Error(t, err)
			apiErr, ok := api.AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, 4214, apiErr.Code)
			assert.Equal(t, remote.Body, apiErr.Body)
		})
	}
}

func TestIsCargoFull_Boundaries(t *testing.T) {
	cases := []struct {
		name     string
		units    int
		capacity int
		want     bool
	}{
		{"empty", 0, 40, false},
		{"one below", 39, 40, false},
		{"equal", 40, 40, true},
		{"over", 41, 40, true},
		{"no hold", 0, 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, tc.capacity)
			ship := helpers.CreateTestShip("PROBE-1", asteroid, tc.capacity)
			ship.Cargo.Units = tc.units
			ship.CargoUnits = tc.units
			f.api.AddShip(ship)

			full, err := f.seq.IsCargoFull(f.ctx, "PROBE-1")

			require.NoError(t, err)
			assert.Equal(t, tc.want, full)
			assert.Equal(t, []string{helpers.MethodGetShip}, f.api.Calls(), "pure read")
		})
	}
}

func TestSetMode_IssuesCommandWithoutCheckingCurrentMode(t *testing.T) {
	f := newFixture(t, 40)

	require.NoError(t, f.seq.Orbit(f.ctx, shipSym)) // already in orbit
	require.NoError(t, f.seq.Dock(f.ctx, shipSym))

	assert.Equal(t, []string{helpers.MethodOrbitShip, helpers.MethodDockShip}, f.api.Calls())
	ship, _ := f.api.Ship(shipSym)
	assert.Equal(t, string(navigation.NavStatusDocked), ship.NavStatus)
	assert.Equal(t, shared.PhaseDocked, f.seq.Phase(shipSym))
}

func TestSetMode_RejectsInTransit(t *testing.T) {
	f := newFixture(t, 40)

	err := f.seq.SetMode(f.ctx, shipSym, navigation.NavStatusInTransit)

	var validation *shared.ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Empty(t, f.api.Calls())
}

func TestOperations_RequireToken(t *testing.T) {
	f := newFixture(t, 40)

	_, err := f.seq.NavigateTo(context.Background(), shipSym, marketWP)

	require.Error(t, err)
	assert.Empty(t, f.api.Calls())
}

func TestGetMarket_ConvertsListing(t *testing.T) {
	f := newFixture(t, 40)
	f.api.SetMarket(marketWP, []ports.TradeGoodData{
		helpers.CreateTestTradeGood("ALUMINUM_ORE", "EXPORT", 50, 45),
		helpers.CreateTestTradeGood("FUEL", "IMPORT", 0, 70),
	})

	m, err := f.seq.GetMarket(f.ctx, marketWP)

	require.NoError(t, err)
	assert.Equal(t, 2, m.GoodsCount())
	good, ok := m.PurchasableGood("ALUMINUM_ORE")
	require.True(t, ok)
	assert.Equal(t, 50, good.PurchasePrice())
	_, ok = m.PurchasableGood("FUEL")
	assert.False(t, ok)
}
