package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/andrescamacho/spacetraders-bot/internal/adapters/api"
	"github.com/andrescamacho/spacetraders-bot/internal/adapters/logging"
	"github.com/andrescamacho/spacetraders-bot/internal/adapters/metrics"
	"github.com/andrescamacho/spacetraders-bot/internal/application/common"
	"github.com/andrescamacho/spacetraders-bot/internal/application/sequencer"
	"github.com/andrescamacho/spacetraders-bot/internal/application/setup"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/shared"
	"github.com/andrescamacho/spacetraders-bot/internal/infrastructure/config"
	"github.com/andrescamacho/spacetraders-bot/pkg/utils"
)

// runtime is everything one command invocation needs
type runtime struct {
	cfg      *config.Config
	logger   *logging.ConsoleLogger
	mediator common.Mediator
	runID    string
	ship     string
}

// bootstrap loads config and wires the API client, sequencer and mediator.
// shipFlag falls back to the configured default ship. The returned context
// carries the run's logger.
func bootstrap(ctx context.Context, operation, shipFlag string) (*runtime, context.Context, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, ctx, fmt.Errorf("failed to load config: %w", err)
	}
	if apiToken != "" {
		cfg.API.Token = apiToken
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if !cfg.API.HasToken() {
		return nil, ctx, fmt.Errorf("no API token: set SPACE_TRADERS_TOKEN or pass --token")
	}

	ship := pick(shipFlag, cfg.Defaults.ShipSymbol)
	runID := utils.GenerateRunID(operation, ship)

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, ctx, err
	}
	var out io.Writer = os.Stderr
	if cfg.Logging.Output == "stdout" {
		out = os.Stdout
	}
	logger := logging.NewConsoleLogger(out, cfg.Logging.Format, level, shared.NewOperationContext(runID, operation))

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Address, cfg.Metrics.Path); err != nil {
				logger.Log(common.LevelWarn, "Metrics server stopped", map[string]interface{}{
					"address": cfg.Metrics.Address,
					"error":   err.Error(),
				})
			}
		}()
	}
	collectors, err := metrics.NewCollectors()
	if err != nil {
		return nil, ctx, fmt.Errorf("failed to register metrics: %w", err)
	}

	clock := shared.NewRealClock()
	client := api.NewSpaceTradersClient(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithRecorder(collectors.API),
	)
	awaiter, err := sequencer.NewAwaiter(cfg.Sequencer.WaitStrategy, client, clock, cfg.Sequencer.PollInterval)
	if err != nil {
		return nil, ctx, err
	}
	seq := sequencer.NewSequencer(client, awaiter, clock, sequencer.WithRecorder(collectors.Sequencer))

	mediator, err := setup.NewHandlerRegistry(client, seq,
		common.PlayerTokenMiddleware(cfg.API.Token),
		common.LoggingMiddleware(),
		metrics.PrometheusMiddleware(collectors.Commands),
	).CreateConfiguredMediator()
	if err != nil {
		return nil, ctx, fmt.Errorf("failed to configure handlers: %w", err)
	}

	logger.Log(common.LevelDebug, "Run started", map[string]interface{}{
		"operation": operation,
		"base_url":  cfg.API.BaseURL,
		"wait":      cfg.Sequencer.WaitStrategy,
	})

	return &runtime{
		cfg:      cfg,
		logger:   logger,
		mediator: mediator,
		runID:    runID,
		ship:     ship,
	}, common.WithLogger(ctx, logger), nil
}

// requireShip returns the resolved ship symbol or a usage error
func (r *runtime) requireShip() (string, error) {
	if r.ship == "" {
		return "", fmt.Errorf("--ship is required (or set one with 'spacetraders-bot config set-default --ship')")
	}
	return r.ship, nil
}
