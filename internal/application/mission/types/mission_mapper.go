package types

import (
	"fmt"

	"github.com/andrescamacho/spacetraders-bot/internal/domain/mission"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/ports"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/shared"
)

// ToDomain converts an API mission into the domain entity
func ToDomain(data *ports.MissionData, clock shared.Clock) (*mission.Mission, error) {
	if data == nil {
		return nil, fmt.Errorf("mission data is nil")
	}

	deliveries := make([]mission.Delivery, 0, len(data.Terms.Deliveries))
	for _, d := range data.Terms.Deliveries {
		deliveries = append(deliveries, mission.Delivery{
			TradeSymbol:       d.TradeSymbol,
			DestinationSymbol: d.DestinationSymbol,
			UnitsRequired:     d.UnitsRequired,
			UnitsFulfilled:    d.UnitsFulfilled,
		})
	}

	terms := mission.Terms{
		Payment: mission.Payment{
			OnAccepted:  data.Terms.Payment.OnAccepted,
			OnFulfilled: data.Terms.Payment.OnFulfilled,
		},
		Deliveries: deliveries,
		Deadline:   data.Terms.Deadline,
	}

	return mission.NewMission(data.ID, data.FactionSymbol, data.Type, terms, data.Accepted, data.Fulfilled, clock)
}
