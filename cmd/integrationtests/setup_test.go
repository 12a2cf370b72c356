package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"freight-exchange/internal/cli"
	"freight-exchange/internal/config"
	model "freight-exchange/internal/models"
	"freight-exchange/internal/realtime"
	"freight-exchange/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var (
	shipperS = model.Caller{Identity: "S", Role: model.RoleShipper, SessionID: "s-1"}
	carrierX = model.Caller{Identity: "X", Role: model.RoleCarrier, SessionID: "x-1"}
	carrierY = model.Caller{Identity: "Y", Role: model.RoleCarrier, SessionID: "y-1"}
)

// recordingConn is a live session that keeps everything sent to it
type recordingConn struct {
	mu   sync.Mutex
	msgs []realtime.Envelope
}

func (c *recordingConn) Send(msg realtime.Envelope) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, msg)
	return nil
}

func (c *recordingConn) Close() {}

func (c *recordingConn) OfKind(kind realtime.Kind) []realtime.Envelope {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []realtime.Envelope
	for _, m := range c.msgs {
		if m.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}

func (c *recordingConn) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = nil
}

type testApp struct {
	app *cli.App
}

// SetupTestApp wires the full exchange on the in-memory store
func SetupTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app, err := cli.Build(context.Background(), config.Default())
	require.NoError(t, err)
	t.Cleanup(app.Close)
	return &testApp{app: app}
}

// Connect opens a recording session for caller
func (a *testApp) Connect(caller model.Caller) *recordingConn {
	conn := &recordingConn{}
	a.app.Registry.Register(caller.Identity, caller.SessionID, conn)
	return conn
}

// ExecuteRequestAndParse executes an HTTP request as caller and returns the
// response envelope's data together with the status code.
func (a *testApp) ExecuteRequestAndParse(t *testing.T, caller model.Caller, method, url string, body any) (any, int) {
	t.Helper()

	var reqBody []byte
	if body != nil {
		var err error
		reqBody, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if caller.Identity != "" {
		req.Header.Set(server.HeaderUserID, caller.Identity)
		req.Header.Set(server.HeaderUserRole, string(caller.Role))
		req.Header.Set(server.HeaderSessionID, caller.SessionID)
	}
	w := httptest.NewRecorder()
	a.app.Router.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return resp["data"], w.Code
}

// object asserts v is a JSON object
func object(t *testing.T, v any) map[string]any {
	t.Helper()
	m, ok := v.(map[string]any)
	require.True(t, ok, "expected object, got %T", v)
	return m
}

// PostListing creates a listing owned by caller and returns its id
func (a *testApp) PostListing(t *testing.T, caller model.Caller) string {
	t.Helper()

	data, status := a.ExecuteRequestAndParse(t, caller, http.MethodPost, "/api/v1/exchange", map[string]any{
		"freight": map[string]any{
			"origin":      "Cluj-Napoca",
			"destination": "Timisoara",
			"distance":    320,
			"size":        map[string]any{"tonnage": 8},
			"truck":       map[string]any{"regime": "LTL", "types": []string{"prelata"}},
		},
		"budget":   "900",
		"validity": "7days",
	})
	require.Equal(t, http.StatusCreated, status)
	return object(t, data)["listing_id"].(string)
}

// PlaceBid bids price on listingID as caller and returns the response data
func (a *testApp) PlaceBid(t *testing.T, caller model.Caller, listingID, price string) map[string]any {
	t.Helper()

	data, status := a.ExecuteRequestAndParse(t, caller, http.MethodPut, "/api/v1/exchange/"+listingID+"/bid", map[string]any{
		"price":    price,
		"validity": "3days",
	})
	require.Equal(t, http.StatusOK, status)
	return object(t, data)
}
