package steps

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"

	"github.com/andrescamacho/spacetraders-bot/internal/adapters/api"
	"github.com/andrescamacho/spacetraders-bot/internal/application/common"
	"github.com/andrescamacho/spacetraders-bot/internal/application/sequencer"
	"github.com/andrescamacho/spacetraders-bot/internal/application/setup"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/shared"
	"github.com/andrescamacho/spacetraders-bot/test/helpers"
)

const testToken = "bdd-token"

// botContext is the per-scenario world: an in-memory remote API, a mock clock
// and a mediator wired the same way the CLI wires it
type botContext struct {
	clock    *shared.MockClock
	api      *helpers.MockAPIClient
	mediator common.Mediator

	response common.Response
	err      error
}

func (c *botContext) reset() error {
	c.clock = shared.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	c.api = helpers.NewMockAPIClient(c.clock)
	c.api.RequireToken(testToken)
	c.response = nil
	c.err = nil

	seq := sequencer.NewSequencer(c.api, nil, c.clock)
	m, err := setup.NewHandlerRegistry(c.api, seq, common.PlayerTokenMiddleware(testToken)).CreateConfiguredMediator()
	if err != nil {
		return fmt.Errorf("failed to build mediator: %w", err)
	}
	c.mediator = m
	return nil
}

func (c *botContext) send(request common.Request) {
	c.response, c.err = c.mediator.Send(context.Background(), request)
}

// InitializeBotScenario registers every step against a fresh world per scenario
func InitializeBotScenario(sc *godog.ScenarioContext) {
	c := &botContext{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, c.reset()
	})

	registerShipSteps(sc, c)
	registerMiningSteps(sc, c)
	registerTradingSteps(sc, c)
	registerMissionSteps(sc, c)

	sc.Step(`^the command succeeds$`, c.theCommandSucceeds)
	sc.Step(`^the command fails with an? ([a-z ]+) error$`, c.theCommandFailsWith)
	sc.Step(`^the command fails with API error code (\d+)$`, c.theCommandFailsWithAPIErrorCode)
	sc.Step(`^the API calls were:$`, c.theAPICallsWere)
	sc.Step(`^the ship waited (\d+) seconds in total$`, c.theShipWaitedInTotal)
}

func (c *botContext) theCommandSucceeds() error {
	if c.err != nil {
		return fmt.Errorf("expected success, got: %w", c.err)
	}
	return nil
}

func (c *botContext) theCommandFailsWith(kind string) error {
	if c.err == nil {
		return fmt.Errorf("expected a %s error, got success", kind)
	}

	var matched bool
	switch kind {
	case "validation":
		var target *shared.ValidationError
		matched = errors.As(c.err, &target)
	case "no mining capability":
		var target *shared.NoMiningCapabilityError
		matched = errors.As(c.err, &target)
	case "mission not accepted":
		var target *shared.MissionNotAcceptedError
		matched = errors.As(c.err, &target)
	case "mission closed":
		var target *shared.MissionClosedError
		matched = errors.As(c.err, &target)
	case "ship":
		var target *shared.ShipError
		matched = errors.As(c.err, &target)
	default:
		return fmt.Errorf("unknown error kind %q", kind)
	}

	if !matched {
		return fmt.Errorf("expected a %s error, got %T: %v", kind, c.err, c.err)
	}
	return nil
}

func (c *botContext) theCommandFailsWithAPIErrorCode(code int) error {
	apiErr, ok := api.AsAPIError(c.err)
	if !ok {
		return fmt.Errorf("expected an API error, got %v", c.err)
	}
	if apiErr.Code != code {
		return fmt.Errorf("expected API error code %d, got %d", code, apiErr.Code)
	}
	return nil
}

func (c *botContext) theAPICallsWere(table *godog.Table) error {
	actual := c.api.Calls()
	expected := make([]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		expected = append(expected, row.Cells[0].Value)
	}

	if len(actual) != len(expected) {
		return fmt.Errorf("expected calls %v, got %v", expected, actual)
	}
	for i := range expected {
		if actual[i] != expected[i] {
			return fmt.Errorf("call %d: expected %s, got %s (all calls: %v)", i+1, expected[i], actual[i], actual)
		}
	}
	return nil
}

func (c *botContext) theShipWaitedInTotal(seconds int) error {
	if got := c.clock.TotalSlept(); got != time.Duration(seconds)*time.Second {
		return fmt.Errorf("expected %ds of waiting, got %s (sleeps: %v)", seconds, got, c.clock.Sleeps())
	}
	return nil
}

// tableRecords turns a table with a header row into one map per data row
func tableRecords(table *godog.Table) ([]map[string]string, error) {
	if len(table.Rows) < 2 {
		return nil, fmt.Errorf("table needs a header row and at least one data row")
	}
	header := table.Rows[0].Cells
	records := make([]map[string]string, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		records = append(records, rowRecord(header, row))
	}
	return records, nil
}

func rowRecord(header []*messages.PickleTableCell, row *messages.PickleTableRow) map[string]string {
	record := make(map[string]string, len(header))
	for i, cell := range row.Cells {
		if i < len(header) {
			record[header[i].Value] = cell.Value
		}
	}
	return record
}

func intField(record map[string]string, key string) (int, error) {
	raw, ok := record[key]
	if !ok || raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", key, err)
	}
	return n, nil
}
