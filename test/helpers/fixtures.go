package helpers

import (
	"time"

	"github.com/andrescamacho/spacetraders-bot/internal/domain/navigation"
	domainPorts "github.com/andrescamacho/spacetraders-bot/internal/domain/ports"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/shared"
)

// CreateTestShip builds an idle, fuelled, crewed ship in orbit with an empty hold
func CreateTestShip(symbol, location string, cargoCapacity int) *navigation.ShipData {
	return &navigation.ShipData{
		Symbol:        symbol,
		SystemSymbol:  shared.ExtractSystemSymbol(location),
		Location:      location,
		NavStatus:     string(navigation.NavStatusInOrbit),
		FuelCurrent:   100,
		FuelCapacity:  100,
		CargoCapacity: cargoCapacity,
		Cargo:         &navigation.CargoData{Capacity: cargoCapacity},
		CrewCurrent:   4,
		CrewRequired:  4,
		Modules: []navigation.EquipmentData{
			{Symbol: "MODULE_CARGO_HOLD_I", Name: "Cargo Hold"},
		},
	}
}

// CreateTestMiningShip is CreateTestShip with a mining laser mounted
func CreateTestMiningShip(symbol, location string, cargoCapacity int) *navigation.ShipData {
	ship := CreateTestShip(symbol, location, cargoCapacity)
	ship.Mounts = []navigation.EquipmentData{
		{Symbol: "MOUNT_MINING_LASER_I", Name: "Mining Laser I"},
	}
	return ship
}

// CreateTestMission builds an open mission with a single delivery, due in 24h from now
func CreateTestMission(id, tradeSymbol, destination string, units int, now time.Time) *domainPorts.MissionData {
	return &domainPorts.MissionData{
		ID:            id,
		FactionSymbol: "COSMIC",
		Type:          "PROCUREMENT",
		Terms: domainPorts.MissionTermsData{
			Deadline: now.Add(24 * time.Hour).UTC().Format(time.RFC3339Nano),
			Payment:  domainPorts.PaymentData{OnAccepted: 1000, OnFulfilled: 5000},
			Deliveries: []domainPorts.DeliveryData{
				{TradeSymbol: tradeSymbol, DestinationSymbol: destination, UnitsRequired: units},
			},
		},
	}
}

// CreateTestTradeGood builds a market listing entry
func CreateTestTradeGood(symbol, goodType string, purchasePrice, sellPrice int) domainPorts.TradeGoodData {
	return domainPorts.TradeGoodData{
		Symbol:        symbol,
		Type:          goodType,
		Supply:        "MODERATE",
		PurchasePrice: purchasePrice,
		SellPrice:     sellPrice,
		TradeVolume:   100,
	}
}
