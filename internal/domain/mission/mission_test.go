package mission_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacetraders-bot/internal/domain/mission"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/shared"
)

var start = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newMission(t *testing.T, clock shared.Clock, accepted, fulfilled bool, deliveries ...mission.Delivery) *mission.Mission {
	t.Helper()
	m, err := mission.NewMission("cm-001", "COSMIC", "PROCUREMENT", mission.Terms{
		Payment:    mission.Payment{OnAccepted: 1000, OnFulfilled: 5000},
		Deliveries: deliveries,
		Deadline:   start.Add(24 * time.Hour).Format(time.RFC3339Nano),
	}, accepted, fulfilled, clock)
	require.NoError(t, err)
	return m
}

func TestMission_StatusLifecycle(t *testing.T) {
	clock := shared.NewMockClock(start)

	assert.Equal(t, "OPEN", newMission(t, clock, false, false).Status())
	assert.Equal(t, "ACCEPTED", newMission(t, clock, true, false).Status())
	assert.Equal(t, "FULFILLED", newMission(t, clock, true, true).Status())

	open := newMission(t, clock, true, false)
	clock.Advance(24 * time.Hour)
	assert.Equal(t, "EXPIRED", open.Status())
	assert.True(t, open.IsTerminal())
	assert.Zero(t, open.TimeRemaining())
}

func TestMission_CanAccept(t *testing.T) {
	clock := shared.NewMockClock(start)

	assert.NoError(t, newMission(t, clock, false, false).CanAccept())

	var closed *shared.MissionClosedError
	assert.ErrorAs(t, newMission(t, clock, true, true).CanAccept(), &closed)

	var missionErr *shared.MissionError
	assert.ErrorAs(t, newMission(t, clock, true, false).CanAccept(), &missionErr)
}

func TestMission_CheckFulfillable(t *testing.T) {
	clock := shared.NewMockClock(start)

	var notAccepted *shared.MissionNotAcceptedError
	assert.ErrorAs(t, newMission(t, clock, false, false).CheckFulfillable(), &notAccepted)

	var closed *shared.MissionClosedError
	assert.ErrorAs(t, newMission(t, clock, true, true).CheckFulfillable(), &closed)

	// delivery progress is judged remotely
	partial := newMission(t, clock, true, false, mission.Delivery{TradeSymbol: "IRON_ORE", DestinationSymbol: "X1-H5", UnitsRequired: 50})
	assert.NoError(t, partial.CheckFulfillable())
	assert.False(t, partial.CanFulfill())
}

func TestMission_PrimaryDestination(t *testing.T) {
	clock := shared.NewMockClock(start)
	done := mission.Delivery{TradeSymbol: "IRON_ORE", DestinationSymbol: "X1-H5", UnitsRequired: 10, UnitsFulfilled: 10}
	pending := mission.Delivery{TradeSymbol: "COPPER_ORE", DestinationSymbol: "X1-H7", UnitsRequired: 20, UnitsFulfilled: 5}

	assert.Equal(t, "X1-H7", newMission(t, clock, true, false, done, pending).PrimaryDestination())
	assert.Equal(t, "X1-H5", newMission(t, clock, true, false, done).PrimaryDestination())
	assert.Empty(t, newMission(t, clock, true, false).PrimaryDestination())
	assert.Equal(t, 15, newMission(t, clock, true, false, done, pending).UnitsRemaining())
}

func TestDelivery_UnitsRemainingNeverNegative(t *testing.T) {
	over := mission.Delivery{UnitsRequired: 10, UnitsFulfilled: 12}
	assert.Zero(t, over.UnitsRemaining())
	assert.True(t, over.IsComplete())
}

func TestNewMission_Validation(t *testing.T) {
	_, err := mission.NewMission("", "COSMIC", "PROCUREMENT", mission.Terms{}, false, false, nil)
	assert.Error(t, err)

	_, err = mission.NewMission("cm-1", "COSMIC", "PROCUREMENT", mission.Terms{Deadline: "soon"}, false, false, nil)
	assert.Error(t, err)
}
