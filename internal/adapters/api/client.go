package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/andrescamacho/spacetraders-bot/internal/domain/navigation"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/ports"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/shared"
)

const (
	DefaultBaseURL = "https://api.spacetraders.io/v2"
	defaultTimeout = 30 * time.Second
	shipsPageLimit = 20
)

// RequestRecorder receives one observation per completed HTTP exchange.
// The metrics adapter's APIMetricsCollector satisfies it.
type RequestRecorder interface {
	RecordAPIRequest(method string, endpoint string, statusCode int, duration float64)
}

// SpaceTradersClient implements the ports.APIClient interface.
//
// Each method is a single HTTP exchange. There is no retry, no rate limiting
// and no caching: the first failure is returned to the caller.
type SpaceTradersClient struct {
	httpClient *http.Client
	baseURL    string
	clock      shared.Clock
	recorder   RequestRecorder
}

var _ ports.APIClient = (*SpaceTradersClient)(nil)

// Option customises a SpaceTradersClient
type Option func(*SpaceTradersClient)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *SpaceTradersClient) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *SpaceTradersClient) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithClock sets the clock used to time requests
func WithClock(clock shared.Clock) Option {
	return func(c *SpaceTradersClient) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithRecorder attaches a request recorder (usually Prometheus metrics)
func WithRecorder(recorder RequestRecorder) Option {
	return func(c *SpaceTradersClient) {
		c.recorder = recorder
	}
}

// NewSpaceTradersClient creates a client for the given base URL.
// An empty base URL falls back to the public v2 endpoint.
func NewSpaceTradersClient(baseURL string, opts ...Option) *SpaceTradersClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &SpaceTradersClient{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		clock:   shared.NewRealClock(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the origin every request is sent to
func (c *SpaceTradersClient) BaseURL() string {
	return c.baseURL
}

// Wire payloads shared by several endpoints

type navPayload struct {
	SystemSymbol   string `json:"systemSymbol"`
	WaypointSymbol string `json:"waypointSymbol"`
	Status         string `json:"status"`
	FlightMode     string `json:"flightMode"`
	Route          *struct {
		Arrival string `json:"arrival"`
	} `json:"route,omitempty"`
}

type cargoPayload struct {
	Capacity  int `json:"capacity"`
	Units     int `json:"units"`
	Inventory []struct {
		Symbol      string `json:"symbol"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Units       int    `json:"units"`
	} `json:"inventory"`
}

type cooldownPayload struct {
	ShipSymbol       string `json:"shipSymbol"`
	TotalSeconds     int    `json:"totalSeconds"`
	RemainingSeconds int    `json:"remainingSeconds"`
	Expiration       string `json:"expiration"`
}

type equipmentPayload struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

type shipPayload struct {
	Symbol string     `json:"symbol"`
	Nav    navPayload `json:"nav"`
	Fuel   struct {
		Current  int `json:"current"`
		Capacity int `json:"capacity"`
	} `json:"fuel"`
	Cargo    cargoPayload    `json:"cargo"`
	Cooldown cooldownPayload `json:"cooldown"`
	Crew     struct {
		Current  int `json:"current"`
		Required int `json:"required"`
	} `json:"crew"`
	Modules []equipmentPayload `json:"modules"`
	Mounts  []equipmentPayload `json:"mounts"`
}

type missionPayload struct {
	ID            string `json:"id"`
	FactionSymbol string `json:"factionSymbol"`
	Type          string `json:"type"`
	Accepted      bool   `json:"accepted"`
	Fulfilled     bool   `json:"fulfilled"`
	Terms         struct {
		Deadline string `json:"deadline"`
		Payment  struct {
			OnAccepted  int `json:"onAccepted"`
			OnFulfilled int `json:"onFulfilled"`
		} `json:"payment"`
		Deliver []struct {
			TradeSymbol       string `json:"tradeSymbol"`
			DestinationSymbol string `json:"destinationSymbol"`
			UnitsRequired     int    `json:"unitsRequired"`
			UnitsFulfilled    int    `json:"unitsFulfilled"`
		} `json:"deliver"`
	} `json:"terms"`
}

type transactionPayload struct {
	Cargo       cargoPayload `json:"cargo"`
	Transaction struct {
		WaypointSymbol string `json:"waypointSymbol"`
		ShipSymbol     string `json:"shipSymbol"`
		TradeSymbol    string `json:"tradeSymbol"`
		Type           string `json:"type"`
		Units          int    `json:"units"`
		PricePerUnit   int    `json:"pricePerUnit"`
		TotalPrice     int    `json:"totalPrice"`
	} `json:"transaction"`
}

// GetShip retrieves ship details
func (c *SpaceTradersClient) GetShip(ctx context.Context, symbol, token string) (*navigation.ShipData, error) {
	path := fmt.Sprintf("/my/ships/%s", url.PathEscape(symbol))

	var response struct {
		Data shipPayload `json:"data"`
	}

	if err := c.request(ctx, http.MethodGet, path, token, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to get ship: %w", err)
	}

	return convertShip(&response.Data), nil
}

// ListShips retrieves all ships for the authenticated agent
// Uses pagination to fetch all ships (20 per page)
func (c *SpaceTradersClient) ListShips(ctx context.Context, token string) ([]*navigation.ShipData, error) {
	var allShips []*navigation.ShipData
	page := 1

	for {
		path := fmt.Sprintf("/my/ships?page=%d&limit=%d", page, shipsPageLimit)

		var response struct {
			Data []shipPayload `json:"data"`
			Meta struct {
				Total int `json:"total"`
				Page  int `json:"page"`
				Limit int `json:"limit"`
			} `json:"meta"`
		}

		if err := c.request(ctx, http.MethodGet, path, token, nil, &response); err != nil {
			return nil, fmt.Errorf("failed to list ships: %w", err)
		}

		for i := range response.Data {
			allShips = append(allShips, convertShip(&response.Data[i]))
		}

		if len(response.Data) < shipsPageLimit || len(allShips) >= response.Meta.Total {
			break
		}
		page++
	}

	return allShips, nil
}

// NavigateShip starts a transit; the response carries the server's predicted arrival
func (c *SpaceTradersClient) NavigateShip(ctx context.Context, symbol, destination, token string) (*navigation.NavigationResult, error) {
	path := fmt.Sprintf("/my/ships/%s/navigate", url.PathEscape(symbol))

	body := map[string]string{
		"waypointSymbol": destination,
	}

	var response struct {
		Data struct {
			Fuel struct {
				Current  int `json:"current"`
				Capacity int `json:"capacity"`
				Consumed struct {
					Amount int `json:"amount"`
				} `json:"consumed"`
			} `json:"fuel"`
			Nav navPayload `json:"nav"`
		} `json:"data"`
	}

	if err := c.request(ctx, http.MethodPost, path, token, body, &response); err != nil {
		return nil, fmt.Errorf("failed to navigate ship: %w", err)
	}

	arrival := ""
	if response.Data.Nav.Route != nil {
		arrival = response.Data.Nav.Route.Arrival
	}

	dest := response.Data.Nav.WaypointSymbol
	if dest == "" {
		dest = destination
	}

	return &navigation.NavigationResult{
		Destination:    dest,
		NavStatus:      response.Data.Nav.Status,
		ArrivalTimeStr: arrival,
		FuelConsumed:   response.Data.Fuel.Consumed.Amount,
		FuelRemaining:  response.Data.Fuel.Current,
	}, nil
}

// OrbitShip puts ship into orbit
func (c *SpaceTradersClient) OrbitShip(ctx context.Context, symbol, token string) error {
	path := fmt.Sprintf("/my/ships/%s/orbit", url.PathEscape(symbol))

	// Send empty JSON object {} instead of nil to satisfy API requirements
	emptyBody := map[string]interface{}{}
	if err := c.request(ctx, http.MethodPost, path, token, emptyBody, nil); err != nil {
		return fmt.Errorf("failed to orbit ship: %w", err)
	}

	return nil
}

// DockShip docks a ship
func (c *SpaceTradersClient) DockShip(ctx context.Context, symbol, token string) error {
	path := fmt.Sprintf("/my/ships/%s/dock", url.PathEscape(symbol))

	emptyBody := map[string]interface{}{}
	if err := c.request(ctx, http.MethodPost, path, token, emptyBody, nil); err != nil {
		return fmt.Errorf("failed to dock ship: %w", err)
	}

	return nil
}

// ExtractResources performs one extraction at the ship's current waypoint
func (c *SpaceTradersClient) ExtractResources(ctx context.Context, shipSymbol, token string) (*ports.ExtractionResult, error) {
	path := fmt.Sprintf("/my/ships/%s/extract", url.PathEscape(shipSymbol))

	var response struct {
		Data struct {
			Extraction struct {
				ShipSymbol string `json:"shipSymbol"`
				Yield      struct {
					Symbol string `json:"symbol"`
					Units  int    `json:"units"`
				} `json:"yield"`
			} `json:"extraction"`
			Cooldown cooldownPayload `json:"cooldown"`
			Cargo    *cargoPayload   `json:"cargo"`
		} `json:"data"`
	}

	emptyBody := map[string]interface{}{}
	if err := c.request(ctx, http.MethodPost, path, token, emptyBody, &response); err != nil {
		return nil, fmt.Errorf("failed to extract resources: %w", err)
	}

	result := &ports.ExtractionResult{
		ShipSymbol:      shipSymbol,
		YieldSymbol:     response.Data.Extraction.Yield.Symbol,
		YieldUnits:      response.Data.Extraction.Yield.Units,
		CooldownSeconds: response.Data.Cooldown.RemainingSeconds,
		CooldownExpires: response.Data.Cooldown.Expiration,
	}
	if response.Data.Cargo != nil {
		result.Cargo = convertCargo(response.Data.Cargo)
	}

	return result, nil
}

// PurchaseCargo buys units of a good at the ship's current market
func (c *SpaceTradersClient) PurchaseCargo(ctx context.Context, shipSymbol, goodSymbol string, units int, token string) (*ports.TransactionResult, error) {
	result, err := c.trade(ctx, "purchase", shipSymbol, goodSymbol, units, token)
	if err != nil {
		return nil, fmt.Errorf("failed to purchase cargo: %w", err)
	}
	return result, nil
}

// SellCargo sells cargo from the ship
func (c *SpaceTradersClient) SellCargo(ctx context.Context, shipSymbol, goodSymbol string, units int, token string) (*ports.TransactionResult, error) {
	result, err := c.trade(ctx, "sell", shipSymbol, goodSymbol, units, token)
	if err != nil {
		return nil, fmt.Errorf("failed to sell cargo: %w", err)
	}
	return result, nil
}

func (c *SpaceTradersClient) trade(ctx context.Context, action, shipSymbol, goodSymbol string, units int, token string) (*ports.TransactionResult, error) {
	path := fmt.Sprintf("/my/ships/%s/%s", url.PathEscape(shipSymbol), action)

	body := map[string]interface{}{
		"symbol": goodSymbol,
		"units":  units,
	}

	var response struct {
		Data transactionPayload `json:"data"`
	}

	if err := c.request(ctx, http.MethodPost, path, token, body, &response); err != nil {
		return nil, err
	}

	tx := response.Data.Transaction
	return &ports.TransactionResult{
		ShipSymbol:     shipSymbol,
		WaypointSymbol: tx.WaypointSymbol,
		TradeSymbol:    goodSymbol,
		Type:           tx.Type,
		Units:          tx.Units,
		PricePerUnit:   tx.PricePerUnit,
		TotalPrice:     tx.TotalPrice,
		Cargo:          convertCargo(&response.Data.Cargo),
	}, nil
}

// GetMarket retrieves market data for a waypoint
func (c *SpaceTradersClient) GetMarket(ctx context.Context, systemSymbol, waypointSymbol, token string) (*ports.MarketData, error) {
	path := fmt.Sprintf("/systems/%s/waypoints/%s/market", url.PathEscape(systemSymbol), url.PathEscape(waypointSymbol))

	type listedGood struct {
		Symbol string `json:"symbol"`
	}

	var response struct {
		Data struct {
			Symbol     string       `json:"symbol"`
			Exports    []listedGood `json:"exports"`
			Imports    []listedGood `json:"imports"`
			Exchange   []listedGood `json:"exchange"`
			TradeGoods []struct {
				Symbol        string `json:"symbol"`
				Type          string `json:"type"`
				Supply        string `json:"supply"`
				SellPrice     int    `json:"sellPrice"`
				PurchasePrice int    `json:"purchasePrice"`
				TradeVolume   int    `json:"tradeVolume"`
			} `json:"tradeGoods"`
		} `json:"data"`
	}

	if err := c.request(ctx, http.MethodGet, path, token, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to get market: %w", err)
	}

	tradeGoods := make([]ports.TradeGoodData, 0, len(response.Data.TradeGoods))
	seen := make(map[string]bool)
	for _, good := range response.Data.TradeGoods {
		seen[good.Symbol] = true
		tradeGoods = append(tradeGoods, ports.TradeGoodData{
			Symbol:        good.Symbol,
			Type:          good.Type,
			Supply:        good.Supply,
			SellPrice:     good.SellPrice,
			PurchasePrice: good.PurchasePrice,
			TradeVolume:   good.TradeVolume,
		})
	}

	// Without a ship present the API only lists symbols by category
	listings := []struct {
		goodType string
		goods    []listedGood
	}{
		{"EXPORT", response.Data.Exports},
		{"IMPORT", response.Data.Imports},
		{"EXCHANGE", response.Data.Exchange},
	}
	for _, listing := range listings {
		for _, good := range listing.goods {
			if seen[good.Symbol] {
				continue
			}
			seen[good.Symbol] = true
			tradeGoods = append(tradeGoods, ports.TradeGoodData{
				Symbol: good.Symbol,
				Type:   listing.goodType,
			})
		}
	}

	symbol := response.Data.Symbol
	if symbol == "" {
		symbol = waypointSymbol
	}

	return &ports.MarketData{
		Symbol:     symbol,
		TradeGoods: tradeGoods,
	}, nil
}

// ScanWaypoints runs the ship's sensors and returns every waypoint in range
func (c *SpaceTradersClient) ScanWaypoints(ctx context.Context, shipSymbol, token string) ([]*shared.Waypoint, error) {
	path := fmt.Sprintf("/my/ships/%s/scan/waypoints", url.PathEscape(shipSymbol))

	var response struct {
		Data struct {
			Waypoints []struct {
				Symbol       string  `json:"symbol"`
				Type         string  `json:"type"`
				SystemSymbol string  `json:"systemSymbol"`
				X            float64 `json:"x"`
				Y            float64 `json:"y"`
				Traits       []struct {
					Symbol string `json:"symbol"`
				} `json:"traits"`
			} `json:"waypoints"`
		} `json:"data"`
	}

	emptyBody := map[string]interface{}{}
	if err := c.request(ctx, http.MethodPost, path, token, emptyBody, &response); err != nil {
		return nil, fmt.Errorf("failed to scan waypoints: %w", err)
	}

	waypoints := make([]*shared.Waypoint, 0, len(response.Data.Waypoints))
	for _, wp := range response.Data.Waypoints {
		traits := make([]string, 0, len(wp.Traits))
		for _, t := range wp.Traits {
			traits = append(traits, t.Symbol)
		}
		systemSymbol := wp.SystemSymbol
		if systemSymbol == "" {
			systemSymbol = shared.ExtractSystemSymbol(wp.Symbol)
		}
		waypoints = append(waypoints, &shared.Waypoint{
			Symbol:       wp.Symbol,
			X:            wp.X,
			Y:            wp.Y,
			SystemSymbol: systemSymbol,
			Type:         wp.Type,
			Traits:       traits,
		})
	}

	return waypoints, nil
}

// GetMission retrieves a mission
func (c *SpaceTradersClient) GetMission(ctx context.Context, missionID, token string) (*ports.MissionData, error) {
	path := fmt.Sprintf("/missions/%s", url.PathEscape(missionID))

	var response struct {
		Data json.RawMessage `json:"data"`
	}

	if err := c.request(ctx, http.MethodGet, path, token, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to get mission: %w", err)
	}

	return decodeMission(http.MethodGet, path, response.Data)
}

// AcceptMission accepts a mission
func (c *SpaceTradersClient) AcceptMission(ctx context.Context, missionID, token string) (*ports.MissionData, error) {
	path := fmt.Sprintf("/missions/%s/accept", url.PathEscape(missionID))

	var response struct {
		Data json.RawMessage `json:"data"`
	}

	emptyBody := map[string]interface{}{}
	if err := c.request(ctx, http.MethodPost, path, token, emptyBody, &response); err != nil {
		return nil, fmt.Errorf("failed to accept mission: %w", err)
	}

	return decodeMission(http.MethodPost, path, response.Data)
}

// FulfillMission completes a mission whose deliveries are done
func (c *SpaceTradersClient) FulfillMission(ctx context.Context, missionID, token string) (*ports.MissionData, error) {
	path := fmt.Sprintf("/missions/%s/fulfill", url.PathEscape(missionID))

	var response struct {
		Data json.RawMessage `json:"data"`
	}

	emptyBody := map[string]interface{}{}
	if err := c.request(ctx, http.MethodPost, path, token, emptyBody, &response); err != nil {
		return nil, fmt.Errorf("failed to fulfill mission: %w", err)
	}

	return decodeMission(http.MethodPost, path, response.Data)
}

// decodeMission accepts both {"mission": {...}} (accept, fulfill) and a bare mission object (get)
func decodeMission(method, path string, raw json.RawMessage) (*ports.MissionData, error) {
	var wrapped struct {
		Mission *missionPayload `json:"mission"`
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, &TransportError{Method: method, Path: path, Err: fmt.Errorf("failed to decode mission: %w", err)}
		}
	}

	payload := wrapped.Mission
	if payload == nil {
		payload = &missionPayload{}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, payload); err != nil {
				return nil, &TransportError{Method: method, Path: path, Err: fmt.Errorf("failed to decode mission: %w", err)}
			}
		}
	}

	if payload.ID == "" {
		return nil, &TransportError{Method: method, Path: path, Err: fmt.Errorf("response carried no mission id")}
	}

	deliveries := make([]ports.DeliveryData, 0, len(payload.Terms.Deliver))
	for _, d := range payload.Terms.Deliver {
		deliveries = append(deliveries, ports.DeliveryData{
			TradeSymbol:       d.TradeSymbol,
			DestinationSymbol: d.DestinationSymbol,
			UnitsRequired:     d.UnitsRequired,
			UnitsFulfilled:    d.UnitsFulfilled,
		})
	}

	return &ports.MissionData{
		ID:            payload.ID,
		FactionSymbol: payload.FactionSymbol,
		Type:          payload.Type,
		Accepted:      payload.Accepted,
		Fulfilled:     payload.Fulfilled,
		Terms: ports.MissionTermsData{
			Deadline: payload.Terms.Deadline,
			Payment: ports.PaymentData{
				OnAccepted:  payload.Terms.Payment.OnAccepted,
				OnFulfilled: payload.Terms.Payment.OnFulfilled,
			},
			Deliveries: deliveries,
		},
	}, nil
}

func convertShip(p *shipPayload) *navigation.ShipData {
	arrival := ""
	if p.Nav.Route != nil {
		arrival = p.Nav.Route.Arrival
	}

	cargo := convertCargo(&p.Cargo)

	return &navigation.ShipData{
		Symbol:        p.Symbol,
		SystemSymbol:  p.Nav.SystemSymbol,
		Location:      p.Nav.WaypointSymbol,
		NavStatus:     p.Nav.Status,
		ArrivalTime:   arrival,
		FuelCurrent:   p.Fuel.Current,
		FuelCapacity:  p.Fuel.Capacity,
		CargoCapacity: cargo.Capacity,
		CargoUnits:    cargo.Units,
		Cargo:         cargo,
		Cooldown: navigation.CooldownData{
			TotalSeconds:     p.Cooldown.TotalSeconds,
			RemainingSeconds: p.Cooldown.RemainingSeconds,
			Expiration:       p.Cooldown.Expiration,
		},
		CrewCurrent:  p.Crew.Current,
		CrewRequired: p.Crew.Required,
		Modules:      convertEquipment(p.Modules),
		Mounts:       convertEquipment(p.Mounts),
	}
}

func convertCargo(p *cargoPayload) *navigation.CargoData {
	inventory := make([]navigation.CargoItemData, len(p.Inventory))
	for i, item := range p.Inventory {
		inventory[i] = navigation.CargoItemData{
			Symbol:      item.Symbol,
			Name:        item.Name,
			Description: item.Description,
			Units:       item.Units,
		}
	}
	return &navigation.CargoData{
		Capacity:  p.Capacity,
		Units:     p.Units,
		Inventory: inventory,
	}
}

func convertEquipment(items []equipmentPayload) []navigation.EquipmentData {
	out := make([]navigation.EquipmentData, len(items))
	for i, item := range items {
		out[i] = navigation.EquipmentData{Symbol: item.Symbol, Name: item.Name}
	}
	return out
}

// request performs one HTTP exchange.
//
// Non-2xx responses become *APIError with the body preserved verbatim.
// Anything that prevents a usable response becomes *TransportError.
func (c *SpaceTradersClient) request(ctx context.Context, method, path, token string, body interface{}, result interface{}) error {
	fullURL := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := c.clock.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.record(method, path, 0, start)
		return &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	c.record(method, path, resp.StatusCode, start)
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(method, path, resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return &TransportError{Method: method, Path: path, Err: fmt.Errorf("failed to unmarshal response: %w", err)}
		}
	}

	return nil
}

func (c *SpaceTradersClient) record(method, path string, statusCode int, start time.Time) {
	if c.recorder == nil {
		return
	}
	c.recorder.RecordAPIRequest(method, EndpointLabel(path), statusCode, c.clock.Now().Sub(start).Seconds())
}

// EndpointLabel collapses identifiers out of a request path so metric
// cardinality stays bounded: /my/ships/AGENT-1/navigate -> /my/ships/{symbol}/navigate
func EndpointLabel(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i := 1; i < len(segments); i++ {
		switch segments[i-1] {
		case "ships":
			segments[i] = "{symbol}"
		case "missions":
			segments[i] = "{id}"
		case "systems":
			segments[i] = "{system}"
		case "waypoints":
			if i+1 < len(segments) {
				segments[i] = "{waypoint}"
			}
		}
	}
	return "/" + strings.Join(segments, "/")
}
