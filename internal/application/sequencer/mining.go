package sequencer

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacetraders-bot/internal/application/common"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/navigation"
)

// StopReason says why MineUntil returned without error
type StopReason string

const (
	StopTargetReached StopReason = "TARGET_REACHED"
	StopCargoFull     StopReason = "CARGO_FULL"
)

// MiningPlan describes what to accumulate.
//
// A yield counts toward TargetUnits only when its symbol equals TargetGood
// (an empty TargetGood counts every yield). TargetUnits of zero means mine
// until the cargo hold is full.
type MiningPlan struct {
	TargetGood  string
	TargetUnits int
}

func (p MiningPlan) matches(symbol string) bool {
	return p.TargetGood == "" || p.TargetGood == symbol
}

// MiningOutcome summarises a MineUntil run, including partial progress on error
type MiningOutcome struct {
	Accumulated int
	Extractions int
	Yields      map[string]int
	Reason      StopReason
}

// MineUntil extracts at the ship's current location until the plan's target is
// reached, with a full cargo hold as the side exit.
//
// The loop returns as soon as the accumulated units reach the target, without a
// further extraction or a trailing cooldown wait. Otherwise the reported cooldown
// is always awaited before the next extraction, matching yield or not.
func (s *Sequencer) MineUntil(ctx context.Context, shipSymbol string, plan MiningPlan) (*MiningOutcome, error) {
	if plan.TargetUnits < 0 {
		return nil, fmt.Errorf("target units must be >= 0, got %d", plan.TargetUnits)
	}

	logger := common.LoggerFromContext(ctx)
	outcome := &MiningOutcome{Yields: make(map[string]int)}

	for {
		if err := ctx.Err(); err != nil {
			return outcome, err
		}

		result, err := s.Extract(ctx, shipSymbol)
		if err != nil {
			return outcome, err
		}
		outcome.Extractions++
		outcome.Yields[result.YieldSymbol] += result.YieldUnits

		if plan.matches(result.YieldSymbol) {
			outcome.Accumulated += result.YieldUnits
		}

		if plan.TargetUnits > 0 && outcome.Accumulated >= plan.TargetUnits {
			outcome.Reason = StopTargetReached
			break
		}

		full, err := s.cargoFullAfter(ctx, shipSymbol, result.Cargo)
		if err != nil {
			return outcome, err
		}
		if full {
			outcome.Reason = StopCargoFull
			break
		}

		logger.Log(common.LevelDebug, "Mining progress", map[string]interface{}{
			"ship_symbol":  shipSymbol,
			"action":       "mine",
			"accumulated":  outcome.Accumulated,
			"target_units": plan.TargetUnits,
			"target_good":  plan.TargetGood,
		})

		if err := s.AwaitCooldown(ctx, shipSymbol, result.CooldownSeconds); err != nil {
			return outcome, err
		}
	}

	logger.Log(common.LevelInfo, fmt.Sprintf("Mining stopped: %s", outcome.Reason), map[string]interface{}{
		"ship_symbol": shipSymbol,
		"action":      "mine",
		"accumulated": outcome.Accumulated,
		"extractions": outcome.Extractions,
		"reason":      string(outcome.Reason),
	})
	return outcome, nil
}

// cargoFullAfter uses the cargo returned with the extraction when present and
// falls back to a fresh snapshot otherwise
func (s *Sequencer) cargoFullAfter(ctx context.Context, shipSymbol string, cargo *navigation.CargoData) (bool, error) {
	if cargo != nil {
		return cargo.Units >= cargo.Capacity, nil
	}
	return s.IsCargoFull(ctx, shipSymbol)
}
