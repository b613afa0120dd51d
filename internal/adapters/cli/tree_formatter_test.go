package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	missionQuery "github.com/andrescamacho/spacetraders-bot/internal/application/mission/queries"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/mission"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/shared"
)

func statusFixture(t *testing.T) *missionQuery.GetMissionStatusResponse {
	t.Helper()
	clock := shared.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	m, err := mission.NewMission("cm-001", "COSMIC", "PROCUREMENT", mission.Terms{
		Payment: mission.Payment{OnAccepted: 1000, OnFulfilled: 5000},
	}, true, false, clock)
	require.NoError(t, err)

	return &missionQuery.GetMissionStatusResponse{
		Mission: m,
		Status:  "ACCEPTED",
		Deliveries: []missionQuery.DeliveryProgress{
			{TradeSymbol: "IRON_ORE", DestinationSymbol: "X1-Q87-H5", UnitsRequired: 20, UnitsFulfilled: 20, Complete: true},
			{TradeSymbol: "ALUMINUM_ORE", DestinationSymbol: "X1-Q87-H7", UnitsRequired: 60, UnitsFulfilled: 40, UnitsRemaining: 20},
		},
		UnitsRemaining: 20,
		TimeRemaining:  90 * time.Minute,
	}
}

func TestTreeFormatter_PlainTree(t *testing.T) {
	out := NewTreeFormatter(false, false).FormatTree(statusFixture(t))

	assert.Equal(t,
		"[ ] cm-001 [ACCEPTED] COSMIC, pays 6000\n"+
			"├── [✓] IRON_ORE 20/20 @ X1-Q87-H5\n"+
			"└── [ ] ALUMINUM_ORE 40/60 @ X1-Q87-H7\n",
		out)
}

func TestTreeFormatter_ColorsStatus(t *testing.T) {
	out := NewTreeFormatter(true, true).FormatTree(statusFixture(t))

	assert.Contains(t, out, "[\033[33mACCEPTED\033[0m]")
	assert.Contains(t, out, "✅ IRON_ORE")
}

func TestTreeFormatter_Summary(t *testing.T) {
	assert.Equal(t,
		"Deliveries: 1/2 complete, 20 units remaining, progress=75%, 1h30m0s left",
		NewTreeFormatter(false, false).FormatTreeSummary(statusFixture(t)))
}

func TestPickAndRequired(t *testing.T) {
	assert.Equal(t, "FLAG", pick("FLAG", "CFG"))
	assert.Equal(t, "CFG", pick("", "CFG"))
	assert.EqualError(t, required("", "asteroid"), "--asteroid flag is required (or set defaults.asteroid_symbol in config)")
	assert.EqualError(t, required("", "destination"), "--destination flag is required")
	assert.NoError(t, required("X1-Q87-C3", "asteroid"))
}
