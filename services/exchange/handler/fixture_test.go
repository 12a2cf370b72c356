package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	model "freight-exchange/internal/models"
	"freight-exchange/services/exchange/helpers"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

var (
	t0        = time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	shipper   = model.Caller{Identity: "s", Role: model.RoleShipper, SessionID: "s-tab"}
	carrier   = model.Caller{Identity: "c", Role: model.RoleCarrier, SessionID: "c-tab"}
	anonymous = model.Caller{}
)

type fixture struct {
	listings  *MockListingService
	bids      *MockBidService
	contracts *MockContractService
	router    *gin.Engine
}

// newFixture wires every exchange route to mocked services, with caller
// standing in for the identity middleware.
func newFixture(t *testing.T, caller model.Caller) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &fixture{
		listings:  NewMockListingService(ctrl),
		bids:      NewMockBidService(ctrl),
		contracts: NewMockContractService(ctrl),
	}
	h := NewExchangeHandler(f.listings, f.bids, f.contracts)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(helpers.CallerKey, caller) })

	r.POST("/exchange", h.CreateListingHandler)
	r.GET("/exchange", h.ListListingsHandler)
	r.GET("/exchange/search/:term", h.SearchListingsHandler)
	r.GET("/exchange/post/:listing_id", h.GetListingHandler)
	r.DELETE("/exchange/post/:listing_id", h.DeleteListingHandler)
	r.PATCH("/exchange/post/:listing_id", h.LikeListingHandler)
	r.GET("/exchange/:listing_id/bids", h.GetBidsHandler)
	r.PUT("/exchange/:listing_id/bid", h.PlaceBidHandler)
	r.POST("/exchange/:listing_id/accept/:bid_id", h.AcceptBidHandler)
	r.PATCH("/bids/:bid_id/negotiate", h.NegotiateBidHandler)
	r.DELETE("/bids/:bid_id", h.RemoveBidHandler)
	r.GET("/contracts", h.ListContractsHandler)
	r.GET("/contracts/:contract_id", h.GetContractHandler)
	r.PATCH("/contracts/:contract_id/confirm", h.ConfirmContractHandler)
	r.PATCH("/contracts/:contract_id/negotiate", h.NegotiateContractHandler)

	f.router = r
	return f
}

// do sends a request and decodes the JSON envelope
func (f *fixture) do(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.EqualValues(t, w.Code, resp["status"])
	return w.Code, resp
}

func dataOf(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	data, ok := resp["data"].(map[string]any)
	require.True(t, ok, "data should be an object, got %T", resp["data"])
	return data
}
