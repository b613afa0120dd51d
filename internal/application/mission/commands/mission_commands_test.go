package commands_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacetraders-bot/internal/adapters/api"
	"github.com/andrescamacho/spacetraders-bot/internal/application/common"
	"github.com/andrescamacho/spacetraders-bot/internal/application/mission/commands"
	"github.com/andrescamacho/spacetraders-bot/internal/application/sequencer"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/shared"
	"github.com/andrescamacho/spacetraders-bot/test/helpers"
)

const (
	token       = "test-token"
	missionID   = "cm-001"
	destination = "X1-Q87-H5"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newEnv(t *testing.T) (*helpers.MockAPIClient, *sequencer.Sequencer, context.Context) {
	t.Helper()
	clock := shared.NewMockClock(now)
	fake := helpers.NewMockAPIClient(clock)
	fake.RequireToken(token)
	fake.AddShip(helpers.CreateTestShip("AGENT-1", "X1-Q87-A1", 40))
	fake.AddMission(helpers.CreateTestMission(missionID, "ALUMINUM_ORE", destination, 60, now))
	fake.SetTransitTime(destination, 2*time.Minute)
	return fake, sequencer.NewSequencer(fake, nil, clock), common.WithPlayerToken(context.Background(), token)
}

func TestAcceptMission_ReturnsAcceptedMission(t *testing.T) {
	fake, seq, ctx := newEnv(t)
	handler := commands.NewAcceptMissionHandler(fake, seq.Clock())

	resp, err := handler.Handle(ctx, &commands.AcceptMissionCommand{MissionID: missionID})

	require.NoError(t, err)
	accepted := resp.(*commands.AcceptMissionResponse).Mission
	assert.True(t, accepted.Accepted())
	assert.Equal(t, "ACCEPTED", accepted.Status())
	assert.Equal(t, 6000, accepted.Terms().Payment.Total())
}

func TestAcceptMission_PropagatesRemoteRejection(t *testing.T) {
	fake, seq, ctx := newEnv(t)
	fake.SetError(helpers.MethodAcceptMission, &api.APIError{StatusCode: http.StatusBadRequest, Code: 4501, Body: `{"error":{"code":4501}}`})

	_, err := commands.NewAcceptMissionHandler(fake, seq.Clock()).Handle(ctx, &commands.AcceptMissionCommand{MissionID: missionID})

	var apiErr *api.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 4501, apiErr.Code)
}

func TestDeliverMission_DefaultsToFirstDeliveryDestination(t *testing.T) {
	// Arrange
	fake, seq, ctx := newEnv(t)
	m, _ := fake.Mission(missionID)
	m.Accepted = true

	// Act
	resp, err := commands.NewDeliverMissionHandler(fake, seq).Handle(ctx, &commands.DeliverMissionCommand{
		MissionID:  missionID,
		ShipSymbol: "AGENT-1",
	})

	// Assert
	require.NoError(t, err)
	result := resp.(*commands.DeliverMissionResponse)
	assert.Equal(t, destination, result.Destination)
	assert.True(t, result.Navigated)
	assert.True(t, result.Mission.Fulfilled())
	assert.Equal(t, []string{
		helpers.MethodGetMission,
		helpers.MethodGetShip,
		helpers.MethodNavigateShip,
		helpers.MethodDockShip,
		helpers.MethodFulfillMission,
	}, fake.Calls())
}

func TestDeliverMission_NotAcceptedStopsBeforeMoving(t *testing.T) {
	fake, seq, ctx := newEnv(t)

	_, err := commands.NewDeliverMissionHandler(fake, seq).Handle(ctx, &commands.DeliverMissionCommand{
		MissionID:  missionID,
		ShipSymbol: "AGENT-1",
	})

	var notAccepted *shared.MissionNotAcceptedError
	require.ErrorAs(t, err, &notAccepted)
	assert.Equal(t, []string{helpers.MethodGetMission}, fake.Calls())
}

func TestDeliverMission_FulfillFailureIsNotSwallowed(t *testing.T) {
	fake, seq, ctx := newEnv(t)
	m, _ := fake.Mission(missionID)
	m.Accepted = true
	fake.SetError(helpers.MethodFulfillMission, &api.APIError{StatusCode: http.StatusBadRequest, Code: 4502, Body: `{"error":{"code":4502,"message":"deliveries incomplete"}}`})

	_, err := commands.NewDeliverMissionHandler(fake, seq).Handle(ctx, &commands.DeliverMissionCommand{
		MissionID:         missionID,
		ShipSymbol:        "AGENT-1",
		DestinationSymbol: destination,
	})

	apiErr, ok := api.AsAPIError(err)
	require.True(t, ok)
	assert.Contains(t, apiErr.Body, "deliveries incomplete")
	ship, _ := fake.Ship("AGENT-1")
	assert.Equal(t, destination, ship.Location, "no compensating move")
}
