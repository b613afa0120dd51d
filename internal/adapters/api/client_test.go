package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Auth   string
	Body   map[string]interface{}
}

// fakeServer answers each path with a canned status and body and records what it saw
type fakeServer struct {
	mu        sync.Mutex
	requests  []recordedRequest
	responses map[string]cannedResponse
}

type cannedResponse struct {
	status int
	body   string
}

func newFakeServer(t *testing.T) (*fakeServer, *httptest.Server) {
	t.Helper()
	fs := &fakeServer{responses: make(map[string]cannedResponse)}
	srv := httptest.NewServer(http.HandlerFunc(fs.handle))
	t.Cleanup(srv.Close)
	return fs, srv
}

func (f *fakeServer) on(method, path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[method+" "+path] = cannedResponse{status: status, body: body}
}

func (f *fakeServer) handle(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	var body map[string]interface{}
	_ = json.Unmarshal(raw, &body)

	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Auth:   r.Header.Get("Authorization"),
		Body:   body,
	})
	resp, ok := f.responses[r.Method+" "+r.URL.Path]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"message":"not found","code":404}}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_, _ = w.Write([]byte(resp.body))
}

func (f *fakeServer) recorded() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]recordedRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

type countingRecorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *countingRecorder) RecordAPIRequest(method, endpoint string, statusCode int, duration float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, method+" "+endpoint)
}

const shipJSON = `{"data":{
	"symbol":"AGENT-1",
	"nav":{"systemSymbol":"X1-Q87","waypointSymbol":"X1-Q87-A1","status":"IN_ORBIT"},
	"fuel":{"current":80,"capacity":100},
	"cargo":{"capacity":40,"units":40,"inventory":[{"symbol":"ALUMINUM_ORE","name":"Aluminum Ore","units":40}]},
	"cooldown":{"shipSymbol":"AGENT-1","totalSeconds":70,"remainingSeconds":0},
	"crew":{"current":10,"required":8},
	"modules":[{"symbol":"MODULE_CARGO_HOLD_I","name":"Cargo Hold"}],
	"mounts":[{"symbol":"MOUNT_MINING_LASER_I","name":"Mining Laser I"}]
}}`

func TestGetShip_DecodesSnapshotAndSendsBearerToken(t *testing.T) {
	// Arrange
	fs, srv := newFakeServer(t)
	fs.on(http.MethodGet, "/my/ships/AGENT-1", http.StatusOK, shipJSON)
	client := NewSpaceTradersClient(srv.URL)

	// Act
	ship, err := client.GetShip(context.Background(), "AGENT-1", "secret")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "AGENT-1", ship.Symbol)
	assert.Equal(t, "X1-Q87-A1", ship.Location)
	assert.Equal(t, "IN_ORBIT", ship.NavStatus)
	assert.Equal(t, 40, ship.CargoUnits)
	assert.Equal(t, 40, ship.CargoCapacity)
	require.Len(t, ship.Cargo.Inventory, 1)
	assert.Equal(t, "ALUMINUM_ORE", ship.Cargo.Inventory[0].Symbol)
	assert.Equal(t, 10, ship.CrewCurrent)
	require.Len(t, ship.Mounts, 1)
	assert.Equal(t, "MOUNT_MINING_LASER_I", ship.Mounts[0].Symbol)

	reqs := fs.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, "Bearer secret", reqs[0].Auth)
}

func TestNavigateShip_ReturnsArrivalAndSendsDestination(t *testing.T) {
	fs, srv := newFakeServer(t)
	fs.on(http.MethodPost, "/my/ships/AGENT-1/navigate", http.StatusOK, `{"data":{
		"fuel":{"current":70,"capacity":100,"consumed":{"amount":10}},
		"nav":{"waypointSymbol":"X1-Q87-H51","status":"IN_TRANSIT","route":{"arrival":"2026-01-01T12:00:30Z"}}
	}}`)
	client := NewSpaceTradersClient(srv.URL)

	result, err := client.NavigateShip(context.Background(), "AGENT-1", "X1-Q87-H51", "tok")

	require.NoError(t, err)
	assert.Equal(t, "X1-Q87-H51", result.Destination)
	assert.Equal(t, "2026-01-01T12:00:30Z", result.ArrivalTimeStr)
	assert.Equal(t, 10, result.FuelConsumed)
	assert.Equal(t, 70, result.FuelRemaining)

	reqs := fs.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, "X1-Q87-H51", reqs[0].Body["waypointSymbol"])
}

func TestExtractResources_ReturnsYieldCooldownAndCargo(t *testing.T) {
	fs, srv := newFakeServer(t)
	fs.on(http.MethodPost, "/my/ships/AGENT-1/extract", http.StatusCreated, `{"data":{
		"extraction":{"shipSymbol":"AGENT-1","yield":{"symbol":"ALUMINUM_ORE","units":7}},
		"cooldown":{"shipSymbol":"AGENT-1","totalSeconds":70,"remainingSeconds":69,"expiration":"2026-01-01T12:01:09Z"},
		"cargo":{"capacity":40,"units":7,"inventory":[{"symbol":"ALUMINUM_ORE","units":7}]}
	}}`)
	client := NewSpaceTradersClient(srv.URL)

	result, err := client.ExtractResources(context.Background(), "AGENT-1", "tok")

	require.NoError(t, err)
	assert.Equal(t, "ALUMINUM_ORE", result.YieldSymbol)
	assert.Equal(t, 7, result.YieldUnits)
	assert.Equal(t, 69, result.CooldownSeconds)
	assert.Equal(t, "2026-01-01T12:01:09Z", result.CooldownExpires)
	require.NotNil(t, result.Cargo)
	assert.Equal(t, 7, result.Cargo.Units)
}

func TestPurchaseCargo_SendsSymbolAndUnits(t *testing.T) {
	fs, srv := newFakeServer(t)
	fs.on(http.MethodPost, "/my/ships/AGENT-1/purchase", http.StatusCreated, `{"data":{
		"cargo":{"capacity":40,"units":10,"inventory":[]},
		"transaction":{"waypointSymbol":"X1-Q87-B2","shipSymbol":"AGENT-1","tradeSymbol":"ALUMINUM_ORE","type":"PURCHASE","units":10,"pricePerUnit":12,"totalPrice":120}
	}}`)
	client := NewSpaceTradersClient(srv.URL)

	result, err := client.PurchaseCargo(context.Background(), "AGENT-1", "ALUMINUM_ORE", 10, "tok")

	require.NoError(t, err)
	assert.Equal(t, 10, result.Units)
	assert.Equal(t, 120, result.TotalPrice)
	assert.Equal(t, "PURCHASE", result.Type)

	reqs := fs.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, "ALUMINUM_ORE", reqs[0].Body["symbol"])
	assert.Equal(t, float64(10), reqs[0].Body["units"])
}

func TestGetMarket_MergesListingsWithoutDuplicatingTradeGoods(t *testing.T) {
	fs, srv := newFakeServer(t)
	fs.on(http.MethodGet, "/systems/X1-Q87/waypoints/X1-Q87-B2/market", http.StatusOK, `{"data":{
		"symbol":"X1-Q87-B2",
		"exports":[{"symbol":"IRON_ORE"}],
		"imports":[{"symbol":"FUEL"}],
		"exchange":[],
		"tradeGoods":[{"symbol":"IRON_ORE","type":"EXPORT","supply":"HIGH","purchasePrice":20,"sellPrice":18,"tradeVolume":60}]
	}}`)
	client := NewSpaceTradersClient(srv.URL)

	market, err := client.GetMarket(context.Background(), "X1-Q87", "X1-Q87-B2", "tok")

	require.NoError(t, err)
	require.Len(t, market.TradeGoods, 2)
	assert.Equal(t, "IRON_ORE", market.TradeGoods[0].Symbol)
	assert.Equal(t, 20, market.TradeGoods[0].PurchasePrice)
	assert.Equal(t, "FUEL", market.TradeGoods[1].Symbol)
	assert.Equal(t, "IMPORT", market.TradeGoods[1].Type)
}

func TestScanWaypoints_ConvertsTraits(t *testing.T) {
	fs, srv := newFakeServer(t)
	fs.on(http.MethodPost, "/my/ships/AGENT-1/scan/waypoints", http.StatusCreated, `{"data":{"waypoints":[
		{"symbol":"X1-Q87-C3","type":"ASTEROID_FIELD","systemSymbol":"X1-Q87","x":3,"y":4,"traits":[]},
		{"symbol":"X1-Q87-B2","type":"PLANET","x":1,"y":1,"traits":[{"symbol":"MARKETPLACE"}]}
	]}}`)
	client := NewSpaceTradersClient(srv.URL)

	waypoints, err := client.ScanWaypoints(context.Background(), "AGENT-1", "tok")

	require.NoError(t, err)
	require.Len(t, waypoints, 2)
	assert.True(t, waypoints[0].IsMiningSite())
	assert.True(t, waypoints[1].IsMarketplace())
	assert.Equal(t, "X1-Q87", waypoints[1].SystemSymbol)
}

func TestMissionEndpoints_DecodeWrappedAndBareMissions(t *testing.T) {
	mission := `{"id":"m-1","factionSymbol":"COSMIC","type":"PROCUREMENT","accepted":true,"fulfilled":false,
		"terms":{"deadline":"2026-02-01T00:00:00Z","payment":{"onAccepted":1000,"onFulfilled":5000},
		"deliver":[{"tradeSymbol":"ALUMINUM_ORE","destinationSymbol":"X1-Q87-H51","unitsRequired":61,"unitsFulfilled":0}]}}`

	fs, srv := newFakeServer(t)
	fs.on(http.MethodGet, "/missions/m-1", http.StatusOK, `{"data":`+mission+`}`)
	fs.on(http.MethodPost, "/missions/m-1/accept", http.StatusOK, `{"data":{"mission":`+mission+`}}`)
	client := NewSpaceTradersClient(srv.URL)

	got, err := client.GetMission(context.Background(), "m-1", "tok")
	require.NoError(t, err)
	assert.Equal(t, "m-1", got.ID)
	require.Len(t, got.Terms.Deliveries, 1)
	assert.Equal(t, 61, got.Terms.Deliveries[0].UnitsRequired)

	accepted, err := client.AcceptMission(context.Background(), "m-1", "tok")
	require.NoError(t, err)
	assert.True(t, accepted.Accepted)
	assert.Equal(t, 1000, accepted.Terms.Payment.OnAccepted)
}

func TestRequest_Non2xxPreservesErrorPayload(t *testing.T) {
	body := `{"error":{"message":"Ship is currently in-transit","code":4214,"data":{"secondsToArrival":42}}}`
	fs, srv := newFakeServer(t)
	fs.on(http.MethodPost, "/my/ships/AGENT-1/navigate", http.StatusBadRequest, body)
	client := NewSpaceTradersClient(srv.URL)

	_, err := client.NavigateShip(context.Background(), "AGENT-1", "X1-Q87-H51", "tok")

	require.Error(t, err)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok, "expected APIError in chain, got %T", err)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, 4214, apiErr.Code)
	assert.Equal(t, "Ship is currently in-transit", apiErr.Message)
	assert.Equal(t, body, apiErr.Body)
	assert.Equal(t, float64(42), apiErr.Data["secondsToArrival"])
	assert.True(t, IsStatus(err, http.StatusBadRequest))

	// exactly one attempt, no retry
	assert.Len(t, fs.recorded(), 1)
}

func TestRequest_ServerErrorIsNotRetried(t *testing.T) {
	fs, srv := newFakeServer(t)
	fs.on(http.MethodPost, "/my/ships/AGENT-1/dock", http.StatusServiceUnavailable, `maintenance`)
	client := NewSpaceTradersClient(srv.URL)

	err := client.DockShip(context.Background(), "AGENT-1", "tok")

	require.Error(t, err)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "maintenance", apiErr.Body)
	assert.Zero(t, apiErr.Code)
	assert.Len(t, fs.recorded(), 1)
}

func TestRequest_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()
	client := NewSpaceTradersClient(baseURL)

	err := client.OrbitShip(context.Background(), "AGENT-1", "tok")

	require.Error(t, err)
	var transportErr *TransportError
	assert.True(t, errors.As(err, &transportErr))
	_, isAPI := AsAPIError(err)
	assert.False(t, isAPI)
}

func TestRequest_RecordsMetricsWithBoundedEndpointLabels(t *testing.T) {
	fs, srv := newFakeServer(t)
	fs.on(http.MethodGet, "/my/ships/AGENT-1", http.StatusOK, shipJSON)
	recorder := &countingRecorder{}
	client := NewSpaceTradersClient(srv.URL, WithRecorder(recorder))

	_, err := client.GetShip(context.Background(), "AGENT-1", "tok")

	require.NoError(t, err)
	assert.Equal(t, []string{"GET /my/ships/{symbol}"}, recorder.calls)
}

func TestEndpointLabel(t *testing.T) {
	cases := map[string]string{
		"/my/ships?page=1&limit=20":                  "/my/ships",
		"/my/ships/AGENT-1/scan/waypoints":           "/my/ships/{symbol}/scan/waypoints",
		"/systems/X1-Q87/waypoints/X1-Q87-B2/market": "/systems/{system}/waypoints/{waypoint}/market",
		"/missions/abc123/fulfill":                   "/missions/{id}/fulfill",
	}
	for in, want := range cases {
		assert.Equal(t, want, EndpointLabel(in), in)
	}
}
