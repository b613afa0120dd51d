package steps

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/spacetraders-bot/internal/adapters/api"
	missionCommands "github.com/andrescamacho/spacetraders-bot/internal/application/mission/commands"
	missionQueries "github.com/andrescamacho/spacetraders-bot/internal/application/mission/queries"
	"github.com/andrescamacho/spacetraders-bot/test/helpers"
)

func registerMissionSteps(sc *godog.ScenarioContext, c *botContext) {
	sc.Step(`^an? (accepted )?mission "([^"]*)" to deliver (\d+) "([^"]*)" to "([^"]*)"$`, c.aMission)
	sc.Step(`^(\d+) units of mission "([^"]*)" have already been delivered$`, c.unitsAlreadyDelivered)
	sc.Step(`^the remote API rejects (\w+) with code (\d+)$`, c.theRemoteAPIRejects)
	sc.Step(`^(\d+) hours pass$`, c.hoursPass)

	sc.Step(`^mission "([^"]*)" is accepted$`, c.missionIsAccepted)
	sc.Step(`^"([^"]*)" delivers mission "([^"]*)"$`, c.deliversMission)
	sc.Step(`^"([^"]*)" delivers mission "([^"]*)" to "([^"]*)"$`, c.deliversMissionTo)
	sc.Step(`^I check the status of mission "([^"]*)"$`, c.iCheckTheStatusOf)

	sc.Step(`^the mission is fulfilled at "([^"]*)"$`, c.theMissionIsFulfilledAt)
	sc.Step(`^the accepted mission pays (\d+) credits in total$`, c.theAcceptedMissionPays)
	sc.Step(`^the mission status is "([^"]*)" with (\d+) units remaining$`, c.theMissionStatusIs)
}

func (c *botContext) aMission(accepted, id string, units int, good, destination string) error {
	data := helpers.CreateTestMission(id, good, destination, units, c.clock.Now())
	data.Accepted = accepted != ""
	c.api.AddMission(data)
	return nil
}

func (c *botContext) unitsAlreadyDelivered(units int, id string) error {
	data, ok := c.api.Mission(id)
	if !ok {
		return fmt.Errorf("mission %s not found", id)
	}
	data.Terms.Deliveries[0].UnitsFulfilled = units
	return nil
}

func (c *botContext) theRemoteAPIRejects(method string, code int) error {
	c.api.SetError(method, &api.APIError{
		StatusCode: http.StatusBadRequest,
		Code:       code,
		Body:       fmt.Sprintf(`{"error":{"code":%d}}`, code),
	})
	return nil
}

func (c *botContext) hoursPass(hours int) error {
	c.clock.Advance(time.Duration(hours) * time.Hour)
	return nil
}

func (c *botContext) missionIsAccepted(id string) error {
	c.send(&missionCommands.AcceptMissionCommand{MissionID: id})
	return nil
}

func (c *botContext) deliversMission(shipSymbol, id string) error {
	c.send(&missionCommands.DeliverMissionCommand{MissionID: id, ShipSymbol: shipSymbol})
	return nil
}

func (c *botContext) deliversMissionTo(shipSymbol, id, destination string) error {
	c.send(&missionCommands.DeliverMissionCommand{MissionID: id, ShipSymbol: shipSymbol, DestinationSymbol: destination})
	return nil
}

func (c *botContext) iCheckTheStatusOf(id string) error {
	c.send(&missionQueries.GetMissionStatusQuery{MissionID: id})
	return nil
}

func (c *botContext) theMissionIsFulfilledAt(destination string) error {
	if err := c.theCommandSucceeds(); err != nil {
		return err
	}
	resp, ok := c.response.(*missionCommands.DeliverMissionResponse)
	if !ok {
		return fmt.Errorf("unexpected response %T", c.response)
	}
	if !resp.Mission.Fulfilled() {
		return fmt.Errorf("expected mission %s to be fulfilled", resp.Mission.MissionID())
	}
	if resp.Destination != destination {
		return fmt.Errorf("expected delivery at %s, got %s", destination, resp.Destination)
	}
	return nil
}

func (c *botContext) theAcceptedMissionPays(total int) error {
	if err := c.theCommandSucceeds(); err != nil {
		return err
	}
	resp, ok := c.response.(*missionCommands.AcceptMissionResponse)
	if !ok {
		return fmt.Errorf("unexpected response %T", c.response)
	}
	if !resp.Mission.Accepted() {
		return fmt.Errorf("expected mission to be accepted")
	}
	if got := resp.Mission.Terms().Payment.Total(); got != total {
		return fmt.Errorf("expected total payment %d, got %d", total, got)
	}
	return nil
}

func (c *botContext) theMissionStatusIs(status string, remaining int) error {
	if err := c.theCommandSucceeds(); err != nil {
		return err
	}
	resp, ok := c.response.(*missionQueries.GetMissionStatusResponse)
	if !ok {
		return fmt.Errorf("unexpected response %T", c.response)
	}
	if resp.Status != status || resp.UnitsRemaining != remaining {
		return fmt.Errorf("expected %s with %d remaining, got %s with %d", status, remaining, resp.Status, resp.UnitsRemaining)
	}
	return nil
}
