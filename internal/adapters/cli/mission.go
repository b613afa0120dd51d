package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	missionCmd "github.com/andrescamacho/spacetraders-bot/internal/application/mission/commands"
	missionQuery "github.com/andrescamacho/spacetraders-bot/internal/application/mission/queries"
)

// NewMissionCommand creates the mission command with subcommands
func NewMissionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mission",
		Short: "Accept, track and deliver missions",
		Long: `Work with faction missions (contracts).

A mission is accepted, its goods acquired (see 'acquire'), then delivered:
the ship flies to the delivery waypoint, docks and fulfils the mission.

Examples:
  spacetraders-bot mission accept --mission cm-001
  spacetraders-bot mission status --mission cm-001
  spacetraders-bot mission deliver --mission cm-001 --ship AGENT-1`,
	}

	cmd.AddCommand(newMissionAcceptCommand())
	cmd.AddCommand(newMissionStatusCommand())
	cmd.AddCommand(newMissionDeliverCommand())

	return cmd
}

func newMissionAcceptCommand() *cobra.Command {
	var missionID string

	cmd := &cobra.Command{
		Use:   "accept",
		Short: "Accept a mission",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, ctx, err := bootstrap(cmd.Context(), "mission", "")
			if err != nil {
				return err
			}
			id := pick(missionID, rt.cfg.Defaults.MissionID)
			if err := required(id, "mission"); err != nil {
				return err
			}

			resp, err := rt.mediator.Send(ctx, &missionCmd.AcceptMissionCommand{MissionID: id})
			if err != nil {
				return fmt.Errorf("accept failed: %w", err)
			}
			accepted := resp.(*missionCmd.AcceptMissionResponse).Mission

			fmt.Println("✓ Mission accepted")
			fmt.Printf("  Mission:          %s\n", accepted.MissionID())
			fmt.Printf("  Faction:          %s\n", accepted.FactionSymbol())
			fmt.Printf("  Paid on accept:   %d\n", accepted.Terms().Payment.OnAccepted)
			fmt.Printf("  Paid on fulfil:   %d\n", accepted.Terms().Payment.OnFulfilled)
			fmt.Printf("  Deadline:         %s\n", accepted.Deadline().Format("2006-01-02 15:04:05 MST"))
			return nil
		},
	}

	cmd.Flags().StringVar(&missionID, "mission", "", "Mission ID (default from config)")
	return cmd
}

func newMissionStatusCommand() *cobra.Command {
	var (
		missionID string
		plain     bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show a mission's delivery progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, ctx, err := bootstrap(cmd.Context(), "mission", "")
			if err != nil {
				return err
			}
			id := pick(missionID, rt.cfg.Defaults.MissionID)
			if err := required(id, "mission"); err != nil {
				return err
			}

			resp, err := rt.mediator.Send(ctx, &missionQuery.GetMissionStatusQuery{MissionID: id})
			if err != nil {
				return err
			}
			status := resp.(*missionQuery.GetMissionStatusResponse)

			formatter := NewTreeFormatter(!plain, !plain)
			fmt.Print(formatter.FormatTree(status))
			fmt.Println(formatter.FormatTreeSummary(status))
			return nil
		},
	}

	cmd.Flags().StringVar(&missionID, "mission", "", "Mission ID (default from config)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Disable colors and emoji")
	return cmd
}

func newMissionDeliverCommand() *cobra.Command {
	var (
		missionID   string
		shipSymbol  string
		destination string
	)

	cmd := &cobra.Command{
		Use:   "deliver",
		Short: "Fly to the delivery waypoint, dock and fulfil",
		Long: `Deliver an accepted mission.

Without --destination the ship flies to the first delivery not yet complete.
Failures are reported as-is; nothing already done is undone.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, ctx, err := bootstrap(cmd.Context(), "deliver", shipSymbol)
			if err != nil {
				return err
			}
			id := pick(missionID, rt.cfg.Defaults.MissionID)
			if err := required(id, "mission"); err != nil {
				return err
			}
			ship, err := rt.requireShip()
			if err != nil {
				return err
			}

			resp, err := rt.mediator.Send(ctx, &missionCmd.DeliverMissionCommand{
				MissionID:         id,
				ShipSymbol:        ship,
				DestinationSymbol: destination,
			})
			if err != nil {
				return fmt.Errorf("delivery failed: %w", err)
			}
			result := resp.(*missionCmd.DeliverMissionResponse)

			fmt.Println("✓ Mission fulfilled")
			fmt.Printf("  Mission:          %s\n", id)
			fmt.Printf("  Destination:      %s\n", result.Destination)
			fmt.Printf("  Navigated:        %t\n", result.Navigated)
			fmt.Printf("  Status:           %s\n", result.Mission.Status())
			return nil
		},
	}

	cmd.Flags().StringVar(&missionID, "mission", "", "Mission ID (default from config)")
	cmd.Flags().StringVar(&shipSymbol, "ship", "", "Delivering ship (default from config)")
	cmd.Flags().StringVar(&destination, "destination", "", "Delivery waypoint (default: first unfinished delivery)")
	return cmd
}
