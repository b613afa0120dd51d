package sequencer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacetraders-bot/internal/application/common"
	"github.com/andrescamacho/spacetraders-bot/internal/application/sequencer"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/shared"
	"github.com/andrescamacho/spacetraders-bot/test/helpers"
)

func TestTimerAwaiter_SleepsUntilReadyAt(t *testing.T) {
	clock := shared.NewMockClock(t0)
	awaiter := sequencer.NewTimerAwaiter(clock)

	err := awaiter.Await(context.Background(), sequencer.Condition{
		ShipSymbol: shipSym,
		Kind:       sequencer.ConditionCooldown,
		ReadyAt:    t0.Add(70 * time.Second),
	})

	require.NoError(t, err)
	assert.Equal(t, []time.Duration{70 * time.Second}, clock.Sleeps())
	assert.Equal(t, t0.Add(70*time.Second), clock.Now())
}

func TestTimerAwaiter_ReturnsPromptlyOnCancel(t *testing.T) {
	awaiter := sequencer.NewTimerAwaiter(shared.NewRealClock())
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := awaiter.Await(ctx, sequencer.Condition{
		ShipSymbol: shipSym,
		Kind:       sequencer.ConditionArrival,
		ReadyAt:    time.Now().Add(time.Hour),
	})

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestNavigateTo_CancelledWaitIsReported(t *testing.T) {
	fake := helpers.NewMockAPIClient(nil)
	fake.AddShip(helpers.CreateTestShip(shipSym, asteroid, 40))
	fake.SetTransitTime(marketWP, time.Hour)
	seq := sequencer.NewSequencer(fake, nil, nil)

	ctx, cancel := context.WithTimeout(common.WithPlayerToken(context.Background(), testToken), 30*time.Millisecond)
	defer cancel()

	_, err := seq.NavigateTo(ctx, shipSym, marketWP)

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestPollingAwaiter_PollsUntilArrived(t *testing.T) {
	// Arrange
	clock := shared.NewMockClock(t0)
	fake := helpers.NewMockAPIClient(clock)
	fake.AddShip(helpers.CreateTestShip(shipSym, marketWP, 40))
	fake.ReportInTransitFor(shipSym, 2)
	awaiter := sequencer.NewPollingAwaiter(fake, clock, 5*time.Second)
	ctx := common.WithPlayerToken(context.Background(), testToken)

	// Act
	err := awaiter.Await(ctx, sequencer.Condition{
		ShipSymbol: shipSym,
		Kind:       sequencer.ConditionArrival,
		ReadyAt:    t0.Add(time.Minute),
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, fake.CallCount(helpers.MethodGetShip))
	assert.Equal(t, []time.Duration{5 * time.Second, 5 * time.Second}, clock.Sleeps())
}

func TestPollingAwaiter_NeverOversleepsReadyAt(t *testing.T) {
	clock := shared.NewMockClock(t0)
	fake := helpers.NewMockAPIClient(clock)
	fake.AddShip(helpers.CreateTestShip(shipSym, marketWP, 40))
	fake.ReportInTransitFor(shipSym, 1)
	awaiter := sequencer.NewPollingAwaiter(fake, clock, time.Minute)

	err := awaiter.Await(common.WithPlayerToken(context.Background(), testToken), sequencer.Condition{
		ShipSymbol: shipSym,
		Kind:       sequencer.ConditionArrival,
		ReadyAt:    t0.Add(3 * time.Second),
	})

	require.NoError(t, err)
	assert.Equal(t, []time.Duration{3 * time.Second}, clock.Sleeps())
}

func TestPollingAwaiter_PropagatesPollFailure(t *testing.T) {
	clock := shared.NewMockClock(t0)
	fake := helpers.NewMockAPIClient(clock)
	boom := errors.New("connection reset")
	fake.SetError(helpers.MethodGetShip, boom)
	awaiter := sequencer.NewPollingAwaiter(fake, clock, time.Second)

	err := awaiter.Await(common.WithPlayerToken(context.Background(), testToken), sequencer.Condition{
		ShipSymbol: shipSym,
		Kind:       sequencer.ConditionCooldown,
	})

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, clock.Sleeps())
}

func TestNewAwaiter_SelectsStrategy(t *testing.T) {
	clock := shared.NewMockClock(t0)

	timer, err := sequencer.NewAwaiter("", nil, clock, 0)
	require.NoError(t, err)
	assert.IsType(t, &sequencer.TimerAwaiter{}, timer)

	poll, err := sequencer.NewAwaiter(sequencer.WaitStrategyPoll, helpers.NewMockAPIClient(clock), clock, time.Second)
	require.NoError(t, err)
	assert.IsType(t, &sequencer.PollingAwaiter{}, poll)

	_, err = sequencer.NewAwaiter("sometimes", nil, clock, 0)
	assert.Error(t, err)
}
