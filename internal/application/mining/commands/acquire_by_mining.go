package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacetraders-bot/internal/application/common"
	"github.com/andrescamacho/spacetraders-bot/internal/application/sequencer"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/shared"
)

// AcquireByMiningCommand mines a good at an asteroid until Units have been
// collected or the hold is full. An empty TradeSymbol counts every yield;
// Units of zero mines until the hold is full.
type AcquireByMiningCommand struct {
	ShipSymbol     string `validate:"required"`
	AsteroidSymbol string `validate:"required"`
	TradeSymbol    string
	Units          int `validate:"min=0"`
}

// AcquireByMiningResponse reports what the mining run produced
type AcquireByMiningResponse struct {
	UnitsAcquired int
	Extractions   int
	Yields        map[string]int
	Reason        sequencer.StopReason
}

// AcquireByMiningHandler handles AcquireByMiningCommand
type AcquireByMiningHandler struct {
	seq *sequencer.Sequencer
}

// NewAcquireByMiningHandler creates a new mining acquisition handler
func NewAcquireByMiningHandler(seq *sequencer.Sequencer) *AcquireByMiningHandler {
	return &AcquireByMiningHandler{seq: seq}
}

// Handle checks the ship can mine, moves it to the asteroid, orbits and mines
func (h *AcquireByMiningHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*AcquireByMiningCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AcquireByMiningCommand")
	}
	if err := common.ValidateRequest(cmd); err != nil {
		return nil, err
	}

	ship, err := h.seq.GetShip(ctx, cmd.ShipSymbol)
	if err != nil {
		return nil, err
	}
	if !ship.HasMiningCapability() {
		return nil, shared.NewNoMiningCapabilityError(cmd.ShipSymbol)
	}

	if _, err := h.seq.MoveTo(ctx, ship, cmd.AsteroidSymbol); err != nil {
		return nil, err
	}
	if err := h.seq.Orbit(ctx, cmd.ShipSymbol); err != nil {
		return nil, err
	}

	outcome, err := h.seq.MineUntil(ctx, cmd.ShipSymbol, sequencer.MiningPlan{
		TargetGood:  cmd.TradeSymbol,
		TargetUnits: cmd.Units,
	})
	if err != nil {
		return nil, fmt.Errorf("mining at %s stopped after %d extractions: %w", cmd.AsteroidSymbol, extractions(outcome), err)
	}
	h.seq.Idle(ctx, cmd.ShipSymbol)

	return &AcquireByMiningResponse{
		UnitsAcquired: outcome.Accumulated,
		Extractions:   outcome.Extractions,
		Yields:        outcome.Yields,
		Reason:        outcome.Reason,
	}, nil
}

func extractions(outcome *sequencer.MiningOutcome) int {
	if outcome == nil {
		return 0
	}
	return outcome.Extractions
}
