package setup

import (
	"reflect"

	"github.com/andrescamacho/spacetraders-bot/internal/application/common"
	miningCommands "github.com/andrescamacho/spacetraders-bot/internal/application/mining/commands"
	missionCommands "github.com/andrescamacho/spacetraders-bot/internal/application/mission/commands"
	missionQueries "github.com/andrescamacho/spacetraders-bot/internal/application/mission/queries"
	"github.com/andrescamacho/spacetraders-bot/internal/application/sequencer"
	shipCommands "github.com/andrescamacho/spacetraders-bot/internal/application/ship/commands"
	shipQueries "github.com/andrescamacho/spacetraders-bot/internal/application/ship/queries"
	tradingCommands "github.com/andrescamacho/spacetraders-bot/internal/application/trading/commands"
	domainPorts "github.com/andrescamacho/spacetraders-bot/internal/domain/ports"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/shared"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	apiClient  domainPorts.APIClient
	seq        *sequencer.Sequencer
	clock      shared.Clock
	middleware []common.Middleware
}

// NewHandlerRegistry creates a new handler registry with required dependencies.
// Middleware is applied in the order given, the first outermost.
func NewHandlerRegistry(
	apiClient domainPorts.APIClient,
	seq *sequencer.Sequencer,
	middleware ...common.Middleware,
) *HandlerRegistry {
	return &HandlerRegistry{
		apiClient:  apiClient,
		seq:        seq,
		clock:      seq.Clock(),
		middleware: middleware,
	}
}

// RegisterShipHandlers registers ship commands and queries:
//   - NavigateShipCommand, OrbitShipCommand, DockShipCommand
//   - FindAvailableShipQuery, FindResourceSourcesQuery, GetShipStatusQuery
func (r *HandlerRegistry) RegisterShipHandlers(m common.Mediator) error {
	handlers := map[reflect.Type]common.RequestHandler{
		reflect.TypeOf(&shipCommands.NavigateShipCommand{}):     shipCommands.NewNavigateShipHandler(r.seq),
		reflect.TypeOf(&shipCommands.OrbitShipCommand{}):        shipCommands.NewOrbitShipHandler(r.seq),
		reflect.TypeOf(&shipCommands.DockShipCommand{}):         shipCommands.NewDockShipHandler(r.seq),
		reflect.TypeOf(&shipQueries.FindAvailableShipQuery{}):   shipQueries.NewFindAvailableShipHandler(r.apiClient),
		reflect.TypeOf(&shipQueries.FindResourceSourcesQuery{}): shipQueries.NewFindResourceSourcesHandler(r.apiClient),
		reflect.TypeOf(&shipQueries.GetShipStatusQuery{}):       shipQueries.NewGetShipStatusHandler(r.seq),
	}
	return registerAll(m, handlers)
}

// RegisterMissionHandlers registers AcceptMissionCommand, DeliverMissionCommand
// and GetMissionStatusQuery
func (r *HandlerRegistry) RegisterMissionHandlers(m common.Mediator) error {
	if err := common.RegisterHandler[*missionCommands.AcceptMissionCommand](m, missionCommands.NewAcceptMissionHandler(r.apiClient, r.clock)); err != nil {
		return err
	}
	if err := common.RegisterHandler[*missionCommands.DeliverMissionCommand](m, missionCommands.NewDeliverMissionHandler(r.apiClient, r.seq)); err != nil {
		return err
	}
	return common.RegisterHandler[*missionQueries.GetMissionStatusQuery](m, missionQueries.NewGetMissionStatusHandler(r.apiClient, r.clock))
}

// RegisterAcquisitionHandlers registers the mining and trading commands.
// RunMiningCyclesCommand dispatches its steps back through m.
func (r *HandlerRegistry) RegisterAcquisitionHandlers(m common.Mediator) error {
	if err := common.RegisterHandler[*miningCommands.AcquireByMiningCommand](m, miningCommands.NewAcquireByMiningHandler(r.seq)); err != nil {
		return err
	}
	if err := common.RegisterHandler[*miningCommands.RunMiningCyclesCommand](m, miningCommands.NewRunMiningCyclesHandler(m, r.seq)); err != nil {
		return err
	}
	if err := common.RegisterHandler[*tradingCommands.AcquireByPurchaseCommand](m, tradingCommands.NewAcquireByPurchaseHandler(r.seq)); err != nil {
		return err
	}
	return common.RegisterHandler[*tradingCommands.SellCargoCommand](m, tradingCommands.NewSellCargoHandler(r.seq))
}

// CreateConfiguredMediator creates a new mediator with every handler and the
// registry's middleware registered
func (r *HandlerRegistry) CreateConfiguredMediator() (common.Mediator, error) {
	m := common.NewMediator()
	for _, mw := range r.middleware {
		m.RegisterMiddleware(mw)
	}

	if err := r.RegisterShipHandlers(m); err != nil {
		return nil, err
	}
	if err := r.RegisterMissionHandlers(m); err != nil {
		return nil, err
	}
	if err := r.RegisterAcquisitionHandlers(m); err != nil {
		return nil, err
	}
	return m, nil
}

func registerAll(m common.Mediator, handlers map[reflect.Type]common.RequestHandler) error {
	for requestType, handler := range handlers {
		if err := m.Register(requestType, handler); err != nil {
			return err
		}
	}
	return nil
}
