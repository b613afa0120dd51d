package helpers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/andrescamacho/spacetraders-bot/internal/domain/navigation"
	domainPorts "github.com/andrescamacho/spacetraders-bot/internal/domain/ports"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/shared"
)

// Method names used for call tracking and error injection
const (
	MethodGetShip          = "GetShip"
	MethodListShips        = "ListShips"
	MethodNavigateShip     = "NavigateShip"
	MethodOrbitShip        = "OrbitShip"
	MethodDockShip         = "DockShip"
	MethodExtractResources = "ExtractResources"
	MethodPurchaseCargo    = "PurchaseCargo"
	MethodSellCargo        = "SellCargo"
	MethodGetMarket        = "GetMarket"
	MethodScanWaypoints    = "ScanWaypoints"
	MethodGetMission       = "GetMission"
	MethodAcceptMission    = "AcceptMission"
	MethodFulfillMission   = "FulfillMission"
)

// QueuedExtraction is one canned extraction response
type QueuedExtraction struct {
	Symbol          string
	Units           int
	CooldownSeconds int
}

// MockAPIClient is a stateful in-memory stand-in for the remote API.
//
// Ships live in memory and are mutated the way the server would mutate them:
// navigate moves the ship, dock/orbit flip its status, extract and purchase
// add cargo, sell removes it. Every call is recorded; any method can be made
// to fail with SetError.
type MockAPIClient struct {
	mu sync.RWMutex

	clock shared.Clock

	ships          map[string]*navigation.ShipData
	shipOrder      []string
	markets        map[string]*domainPorts.MarketData
	missions       map[string]*domainPorts.MissionData
	scans          map[string][]*shared.Waypoint
	extractions    map[string][]QueuedExtraction
	transitTimes   map[string]time.Duration // destination -> travel time
	pollsInTransit map[string]int           // ship -> GetShip calls that still report IN_TRANSIT

	expectedToken string
	errors        map[string]error
	calls         []string
}

// NewMockAPIClient creates a new mock API client. A nil clock means the real clock.
func NewMockAPIClient(clock shared.Clock) *MockAPIClient {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &MockAPIClient{
		clock:          clock,
		ships:          make(map[string]*navigation.ShipData),
		markets:        make(map[string]*domainPorts.MarketData),
		missions:       make(map[string]*domainPorts.MissionData),
		scans:          make(map[string][]*shared.Waypoint),
		extractions:    make(map[string][]QueuedExtraction),
		transitTimes:   make(map[string]time.Duration),
		pollsInTransit: make(map[string]int),
		errors:         make(map[string]error),
	}
}

// Configuration

// RequireToken makes every call fail unless it carries this token
func (m *MockAPIClient) RequireToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expectedToken = token
}

// AddShip stores a ship; ListShips returns ships in insertion order
func (m *MockAPIClient) AddShip(ship *navigation.ShipData) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.ships[ship.Symbol]; !exists {
		m.shipOrder = append(m.shipOrder, ship.Symbol)
	}
	if ship.Cargo == nil {
		ship.Cargo = &navigation.CargoData{Capacity: ship.CargoCapacity, Units: ship.CargoUnits}
	}
	m.ships[ship.Symbol] = ship
}

// Ship returns a copy of the stored ship
func (m *MockAPIClient) Ship(symbol string) (*navigation.ShipData, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ship, ok := m.ships[symbol]
	if !ok {
		return nil, false
	}
	return copyShip(ship), true
}

// SetMarket stores the market listing for a waypoint
func (m *MockAPIClient) SetMarket(waypointSymbol string, goods []domainPorts.TradeGoodData) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.markets[waypointSymbol] = &domainPorts.MarketData{Symbol: waypointSymbol, TradeGoods: goods}
}

// AddMission stores a mission
func (m *MockAPIClient) AddMission(mission *domainPorts.MissionData) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.missions[mission.ID] = mission
}

// Mission returns the stored mission
func (m *MockAPIClient) Mission(id string) (*domainPorts.MissionData, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mission, ok := m.missions[id]
	return mission, ok
}

// SetScanResult sets what ScanWaypoints returns for a ship
func (m *MockAPIClient) SetScanResult(shipSymbol string, waypoints []*shared.Waypoint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scans[shipSymbol] = waypoints
}

// QueueExtractions appends canned extraction yields for a ship
func (m *MockAPIClient) QueueExtractions(shipSymbol string, extractions ...QueuedExtraction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.extractions[shipSymbol] = append(m.extractions[shipSymbol], extractions...)
}

// SetTransitTime sets how long a trip to destination takes
func (m *MockAPIClient) SetTransitTime(destination string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitTimes[destination] = d
}

// ReportInTransitFor makes the next n GetShip calls report IN_TRANSIT
func (m *MockAPIClient) ReportInTransitFor(shipSymbol string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pollsInTransit[shipSymbol] = n
}

// SetError makes method fail with err; nil clears it
func (m *MockAPIClient) SetError(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.errors, method)
		return
	}
	m.errors[method] = err
}

// Call tracking

// Calls returns every method invoked, in order
func (m *MockAPIClient) Calls() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many times method was invoked
func (m *MockAPIClient) CallCount(method string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, c := range m.calls {
		if c == method {
			n++
		}
	}
	return n
}

// begin records the call and returns any injected or auth error. Caller holds the lock.
func (m *MockAPIClient) begin(method, token string) error {
	m.calls = append(m.calls, method)
	if m.expectedToken != "" && token != m.expectedToken {
		return fmt.Errorf("unauthorized: bad token")
	}
	if err, ok := m.errors[method]; ok {
		return err
	}
	return nil
}

func (m *MockAPIClient) ship(symbol string) (*navigation.ShipData, error) {
	ship, ok := m.ships[symbol]
	if !ok {
		return nil, fmt.Errorf("ship %s not found", symbol)
	}
	return ship, nil
}

// APIClient implementation

func (m *MockAPIClient) GetShip(ctx context.Context, symbol, token string) (*navigation.ShipData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(MethodGetShip, token); err != nil {
		return nil, err
	}
	ship, err := m.ship(symbol)
	if err != nil {
		return nil, err
	}

	out := copyShip(ship)
	if n := m.pollsInTransit[symbol]; n > 0 {
		m.pollsInTransit[symbol] = n - 1
		out.NavStatus = string(navigation.NavStatusInTransit)
	}
	return out, nil
}

func (m *MockAPIClient) ListShips(ctx context.Context, token string) ([]*navigation.ShipData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(MethodListShips, token); err != nil {
		return nil, err
	}
	out := make([]*navigation.ShipData, 0, len(m.shipOrder))
	for _, symbol := range m.shipOrder {
		out = append(out, copyShip(m.ships[symbol]))
	}
	return out, nil
}

func (m *MockAPIClient) NavigateShip(ctx context.Context, symbol, destination, token string) (*navigation.NavigationResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(MethodNavigateShip, token); err != nil {
		return nil, err
	}
	ship, err := m.ship(symbol)
	if err != nil {
		return nil, err
	}
	if ship.NavStatus != string(navigation.NavStatusInOrbit) {
		return nil, fmt.Errorf("ship %s must be in orbit to navigate (is %s)", symbol, ship.NavStatus)
	}

	arrival := m.clock.Now().Add(m.transitTimes[destination])
	ship.Location = destination
	ship.SystemSymbol = shared.ExtractSystemSymbol(destination)

	return &navigation.NavigationResult{
		Destination:    destination,
		NavStatus:      string(navigation.NavStatusInTransit),
		ArrivalTimeStr: arrival.UTC().Format(time.RFC3339Nano),
		FuelRemaining:  ship.FuelCurrent,
	}, nil
}

func (m *MockAPIClient) OrbitShip(ctx context.Context, symbol, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(MethodOrbitShip, token); err != nil {
		return err
	}
	ship, err := m.ship(symbol)
	if err != nil {
		return err
	}
	ship.NavStatus = string(navigation.NavStatusInOrbit)
	return nil
}

func (m *MockAPIClient) DockShip(ctx context.Context, symbol, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(MethodDockShip, token); err != nil {
		return err
	}
	ship, err := m.ship(symbol)
	if err != nil {
		return err
	}
	ship.NavStatus = string(navigation.NavStatusDocked)
	return nil
}

func (m *MockAPIClient) ExtractResources(ctx context.Context, shipSymbol, token string) (*domainPorts.ExtractionResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(MethodExtractResources, token); err != nil {
		return nil, err
	}
	ship, err := m.ship(shipSymbol)
	if err != nil {
		return nil, err
	}

	queue := m.extractions[shipSymbol]
	if len(queue) == 0 {
		return nil, fmt.Errorf("no extraction queued for %s", shipSymbol)
	}
	next := queue[0]
	m.extractions[shipSymbol] = queue[1:]

	units := next.Units
	if free := ship.Cargo.Capacity - ship.Cargo.Units; units > free {
		units = free
	}
	addCargo(ship, next.Symbol, units)

	return &domainPorts.ExtractionResult{
		ShipSymbol:      shipSymbol,
		YieldSymbol:     next.Symbol,
		YieldUnits:      units,
		CooldownSeconds: next.CooldownSeconds,
		CooldownExpires: m.clock.Now().Add(time.Duration(next.CooldownSeconds) * time.Second).UTC().Format(time.RFC3339Nano),
		Cargo:           copyCargo(ship.Cargo),
	}, nil
}

func (m *MockAPIClient) PurchaseCargo(ctx context.Context, shipSymbol, goodSymbol string, units int, token string) (*domainPorts.TransactionResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(MethodPurchaseCargo, token); err != nil {
		return nil, err
	}
	ship, err := m.ship(shipSymbol)
	if err != nil {
		return nil, err
	}
	if ship.Cargo.Units+units > ship.Cargo.Capacity {
		return nil, fmt.Errorf("not enough cargo space for %d %s", units, goodSymbol)
	}

	price := m.price(ship.Location, goodSymbol, true)
	addCargo(ship, goodSymbol, units)

	return &domainPorts.TransactionResult{
		ShipSymbol:     shipSymbol,
		WaypointSymbol: ship.Location,
		TradeSymbol:    goodSymbol,
		Type:           "PURCHASE",
		Units:          units,
		PricePerUnit:   price,
		TotalPrice:     price * units,
		Cargo:          copyCargo(ship.Cargo),
	}, nil
}

func (m *MockAPIClient) SellCargo(ctx context.Context, shipSymbol, goodSymbol string, units int, token string) (*domainPorts.TransactionResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(MethodSellCargo, token); err != nil {
		return nil, err
	}
	ship, err := m.ship(shipSymbol)
	if err != nil {
		return nil, err
	}
	if held := heldUnits(ship, goodSymbol); held < units {
		return nil, fmt.Errorf("ship holds %d %s, cannot sell %d", held, goodSymbol, units)
	}

	price := m.price(ship.Location, goodSymbol, false)
	addCargo(ship, goodSymbol, -units)

	return &domainPorts.TransactionResult{
		ShipSymbol:     shipSymbol,
		WaypointSymbol: ship.Location,
		TradeSymbol:    goodSymbol,
		Type:           "SELL",
		Units:          units,
		PricePerUnit:   price,
		TotalPrice:     price * units,
		Cargo:          copyCargo(ship.Cargo),
	}, nil
}

func (m *MockAPIClient) GetMarket(ctx context.Context, systemSymbol, waypointSymbol, token string) (*domainPorts.MarketData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(MethodGetMarket, token); err != nil {
		return nil, err
	}
	data, ok := m.markets[waypointSymbol]
	if !ok {
		return nil, fmt.Errorf("no market at %s", waypointSymbol)
	}
	goods := make([]domainPorts.TradeGoodData, len(data.TradeGoods))
	copy(goods, data.TradeGoods)
	return &domainPorts.MarketData{Symbol: data.Symbol, TradeGoods: goods}, nil
}

func (m *MockAPIClient) ScanWaypoints(ctx context.Context, shipSymbol, token string) ([]*shared.Waypoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(MethodScanWaypoints, token); err != nil {
		return nil, err
	}
	if _, err := m.ship(shipSymbol); err != nil {
		return nil, err
	}
	return append([]*shared.Waypoint(nil), m.scans[shipSymbol]...), nil
}

func (m *MockAPIClient) GetMission(ctx context.Context, missionID, token string) (*domainPorts.MissionData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(MethodGetMission, token); err != nil {
		return nil, err
	}
	return m.mission(missionID)
}

func (m *MockAPIClient) AcceptMission(ctx context.Context, missionID, token string) (*domainPorts.MissionData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(MethodAcceptMission, token); err != nil {
		return nil, err
	}
	mission, ok := m.missions[missionID]
	if !ok {
		return nil, fmt.Errorf("mission %s not found", missionID)
	}
	if mission.Accepted {
		return nil, fmt.Errorf("mission %s already accepted", missionID)
	}
	mission.Accepted = true
	return m.mission(missionID)
}

func (m *MockAPIClient) FulfillMission(ctx context.Context, missionID, token string) (*domainPorts.MissionData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(MethodFulfillMission, token); err != nil {
		return nil, err
	}
	mission, ok := m.missions[missionID]
	if !ok {
		return nil, fmt.Errorf("mission %s not found", missionID)
	}
	if !mission.Accepted {
		return nil, fmt.Errorf("mission %s not accepted", missionID)
	}
	mission.Fulfilled = true
	return m.mission(missionID)
}

func (m *MockAPIClient) mission(id string) (*domainPorts.MissionData, error) {
	mission, ok := m.missions[id]
	if !ok {
		return nil, fmt.Errorf("mission %s not found", id)
	}
	out := *mission
	out.Terms.Deliveries = append([]domainPorts.DeliveryData(nil), mission.Terms.Deliveries...)
	return &out, nil
}

func (m *MockAPIClient) price(waypointSymbol, goodSymbol string, buying bool) int {
	data, ok := m.markets[waypointSymbol]
	if !ok {
		return 0
	}
	for _, good := range data.TradeGoods {
		if good.Symbol == goodSymbol {
			if buying {
				return good.PurchasePrice
			}
			return good.SellPrice
		}
	}
	return 0
}

func heldUnits(ship *navigation.ShipData, goodSymbol string) int {
	for _, item := range ship.Cargo.Inventory {
		if item.Symbol == goodSymbol {
			return item.Units
		}
	}
	return 0
}

func addCargo(ship *navigation.ShipData, goodSymbol string, delta int) {
	if delta == 0 {
		return
	}
	ship.Cargo.Units += delta
	ship.CargoUnits = ship.Cargo.Units

	for i := range ship.Cargo.Inventory {
		if ship.Cargo.Inventory[i].Symbol == goodSymbol {
			ship.Cargo.Inventory[i].Units += delta
			if ship.Cargo.Inventory[i].Units <= 0 {
				ship.Cargo.Inventory = append(ship.Cargo.Inventory[:i], ship.Cargo.Inventory[i+1:]...)
			}
			return
		}
	}
	if delta > 0 {
		ship.Cargo.Inventory = append(ship.Cargo.Inventory, navigation.CargoItemData{Symbol: goodSymbol, Units: delta})
	}
}

func copyCargo(cargo *navigation.CargoData) *navigation.CargoData {
	if cargo == nil {
		return nil
	}
	out := *cargo
	out.Inventory = append([]navigation.CargoItemData(nil), cargo.Inventory...)
	return &out
}

func copyShip(ship *navigation.ShipData) *navigation.ShipData {
	out := *ship
	out.Cargo = copyCargo(ship.Cargo)
	out.Modules = append([]navigation.EquipmentData(nil), ship.Modules...)
	out.Mounts = append([]navigation.EquipmentData(nil), ship.Mounts...)
	return &out
}
