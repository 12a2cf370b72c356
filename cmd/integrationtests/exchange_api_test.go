package integrationtests

import (
	"net/http"
	"testing"
	"time"

	model "freight-exchange/internal/models"
	"freight-exchange/internal/realtime"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Scenario A: bids on a fresh listing rank by price and every session hears
// about the new lowest bid.
func TestBidScoreboard(t *testing.T) {
	a := SetupTestApp(t)
	xConn := a.Connect(carrierX)
	sConn := a.Connect(shipperS)

	listingID := a.PostListing(t, shipperS)
	require.Len(t, xConn.OfKind(realtime.KindListingCreated), 1)
	require.Empty(t, sConn.OfKind(realtime.KindListingCreated), "the posting session is not echoed")

	first := a.PlaceBid(t, carrierX, listingID, "500")
	board := object(t, first["scoreboard"])
	require.Equal(t, "500", object(t, board["lowest_bid"])["price"])
	require.Equal(t, "X", object(t, board["lowest_bid"])["bidder_id"])
	require.EqualValues(t, 1, board["caller_rank"])

	xConn.Reset()
	a.PlaceBid(t, carrierY, listingID, "400")

	data, status := a.ExecuteRequestAndParse(t, carrierX, http.MethodGet, "/api/v1/exchange/"+listingID+"/bids", nil)
	require.Equal(t, http.StatusOK, status)
	view := object(t, data)
	require.NotContains(t, view, "bids", "bidders never see other bids")
	require.Equal(t, "500", object(t, view["bid"])["price"])
	board = object(t, view["scoreboard"])
	require.Equal(t, "400", object(t, board["lowest_bid"])["price"])
	require.Equal(t, "Y", object(t, board["lowest_bid"])["bidder_id"])
	require.EqualValues(t, 2, board["caller_rank"])

	updates := xConn.OfKind(realtime.KindBidUpdate)
	require.Len(t, updates, 1)
	payload := updates[0].Payload.(realtime.BidUpdate)
	require.Equal(t, listingID, payload.ListingID)
	require.True(t, payload.Bid.Price.Equal(decimal.NewFromInt(400)))

	// the owner gets the global announcement plus the bid itself
	require.Len(t, sConn.OfKind(realtime.KindBidUpdate), 4)

	data, status = a.ExecuteRequestAndParse(t, shipperS, http.MethodGet, "/api/v1/exchange/"+listingID+"/bids", nil)
	require.Equal(t, http.StatusOK, status)
	bids := object(t, data)["bids"].([]any)
	require.Len(t, bids, 2)
	require.Equal(t, "Y", object(t, bids[0])["bidder_id"])
}

// Scenario B: accepting a bid converts the listing into a contract exactly once
func TestAcceptBid(t *testing.T) {
	a := SetupTestApp(t)
	xConn := a.Connect(carrierX)
	yConn := a.Connect(carrierY)

	listingID := a.PostListing(t, shipperS)
	a.PlaceBid(t, carrierX, listingID, "500")
	yBid := object(t, a.PlaceBid(t, carrierY, listingID, "400")["bid"])

	data, status := a.ExecuteRequestAndParse(t, shipperS, http.MethodPost,
		"/api/v1/exchange/"+listingID+"/accept/"+yBid["bid_id"].(string), nil)
	require.Equal(t, http.StatusCreated, status)
	contract := object(t, data)
	require.Equal(t, "pending_consignee", contract["status"])
	require.Equal(t, "Y", contract["consignee_id"])
	require.Equal(t, "S", contract["shipper_id"])
	require.Equal(t, "400", contract["price"])
	contractID := contract["contract_id"].(string)

	_, status = a.ExecuteRequestAndParse(t, shipperS, http.MethodGet, "/api/v1/exchange/post/"+listingID, nil)
	require.Equal(t, http.StatusNotFound, status)
	_, status = a.ExecuteRequestAndParse(t, shipperS, http.MethodGet, "/api/v1/exchange/"+listingID+"/bids", nil)
	require.Equal(t, http.StatusNotFound, status)

	removed := xConn.OfKind(realtime.KindListingRemoved)
	require.Len(t, removed, 1)
	require.Equal(t, realtime.ListingRemoved{ListingID: listingID, ContractID: contractID}, removed[0].Payload)

	offers := yConn.OfKind(realtime.KindContractUpdate)
	require.Len(t, offers, 1)
	require.Equal(t, model.StatusPendingConsignee, offers[0].Payload.(model.Contract).Status)

	// a second accept finds nothing to convert
	_, status = a.ExecuteRequestAndParse(t, shipperS, http.MethodPost,
		"/api/v1/exchange/"+listingID+"/accept/"+yBid["bid_id"].(string), nil)
	require.Equal(t, http.StatusNotFound, status)

	data, status = a.ExecuteRequestAndParse(t, carrierY, http.MethodGet, "/api/v1/contracts", nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, data, 1)

	data, status = a.ExecuteRequestAndParse(t, carrierX, http.MethodGet, "/api/v1/contracts", nil)
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, data)

	_, status = a.ExecuteRequestAndParse(t, carrierX, http.MethodGet, "/api/v1/contracts/"+contractID, nil)
	require.Equal(t, http.StatusNotFound, status)
}

func acceptedContract(t *testing.T, a *testApp) string {
	t.Helper()

	listingID := a.PostListing(t, shipperS)
	bid := object(t, a.PlaceBid(t, carrierY, listingID, "400")["bid"])
	data, status := a.ExecuteRequestAndParse(t, shipperS, http.MethodPost,
		"/api/v1/exchange/"+listingID+"/accept/"+bid["bid_id"].(string), nil)
	require.Equal(t, http.StatusCreated, status)
	return object(t, data)["contract_id"].(string)
}

// Scenario C: the consignee confirms with dates and the shipper hears about it
func TestConsigneeConfirms(t *testing.T) {
	a := SetupTestApp(t)
	sConn := a.Connect(shipperS)
	contractID := acceptedContract(t, a)

	pickup := time.Date(2026, 7, 1, 6, 0, 0, 0, time.UTC)
	delivery := time.Date(2026, 7, 2, 18, 0, 0, 0, time.UTC)

	// dates are mandatory on the first confirm
	_, status := a.ExecuteRequestAndParse(t, carrierY, http.MethodPatch, "/api/v1/contracts/"+contractID+"/confirm", nil)
	require.Equal(t, http.StatusUnprocessableEntity, status)

	data, status := a.ExecuteRequestAndParse(t, carrierY, http.MethodPatch, "/api/v1/contracts/"+contractID+"/confirm", map[string]any{
		"transportation_date": map[string]any{"pickup": pickup, "delivery": delivery},
	})
	require.Equal(t, http.StatusOK, status)
	contract := object(t, data)
	require.Equal(t, "confirmed", contract["status"])
	dates := object(t, contract["transportation_date"])
	require.Equal(t, "2026-07-01T06:00:00Z", dates["pickup"])

	updates := sConn.OfKind(realtime.KindContractUpdate)
	require.Len(t, updates, 1)
	confirmed := updates[0].Payload.(model.Contract)
	require.Equal(t, model.StatusConfirmed, confirmed.Status)
	require.True(t, confirmed.TransportationDate.Pickup.Equal(pickup))

	// confirmed is terminal
	_, status = a.ExecuteRequestAndParse(t, carrierY, http.MethodPatch, "/api/v1/contracts/"+contractID+"/negotiate", map[string]any{"price": "350"})
	require.Equal(t, http.StatusConflict, status)
	_, status = a.ExecuteRequestAndParse(t, shipperS, http.MethodPatch, "/api/v1/contracts/"+contractID+"/confirm", nil)
	require.Equal(t, http.StatusConflict, status)
}

// The consignee counters, then the shipper confirms the counter-offer
func TestCounterOfferThenShipperConfirms(t *testing.T) {
	a := SetupTestApp(t)
	sConn := a.Connect(shipperS)
	yConn := a.Connect(carrierY)
	contractID := acceptedContract(t, a)
	yConn.Reset()

	data, status := a.ExecuteRequestAndParse(t, carrierY, http.MethodPatch, "/api/v1/contracts/"+contractID+"/negotiate", map[string]any{
		"price": "450",
		"transportation_date": map[string]any{
			"pickup":   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			"delivery": time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC),
		},
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "pending_shipper", object(t, data)["status"])
	require.Len(t, sConn.OfKind(realtime.KindContractUpdate), 1)

	// only the shipper may answer a counter-offer
	_, status = a.ExecuteRequestAndParse(t, carrierY, http.MethodPatch, "/api/v1/contracts/"+contractID+"/confirm", nil)
	require.Equal(t, http.StatusForbidden, status)

	data, status = a.ExecuteRequestAndParse(t, shipperS, http.MethodPatch, "/api/v1/contracts/"+contractID+"/confirm", nil)
	require.Equal(t, http.StatusOK, status)
	contract := object(t, data)
	require.Equal(t, "confirmed", contract["status"])
	require.Equal(t, "450", contract["price"])

	require.Len(t, yConn.OfKind(realtime.KindContractUpdate), 1)
}

// Withdrawing a bid moves the lowest bid back and tells everyone
func TestRemoveBidAnnouncesNewLowest(t *testing.T) {
	a := SetupTestApp(t)
	listingID := a.PostListing(t, shipperS)
	a.PlaceBid(t, carrierX, listingID, "500")
	yBid := object(t, a.PlaceBid(t, carrierY, listingID, "400")["bid"])

	xConn := a.Connect(carrierX)
	yOtherTab := a.Connect(model.Caller{Identity: "Y", SessionID: "y-2"})

	_, status := a.ExecuteRequestAndParse(t, carrierX, http.MethodDelete, "/api/v1/bids/"+yBid["bid_id"].(string), nil)
	require.Equal(t, http.StatusForbidden, status)

	_, status = a.ExecuteRequestAndParse(t, carrierY, http.MethodDelete, "/api/v1/bids/"+yBid["bid_id"].(string), nil)
	require.Equal(t, http.StatusOK, status)

	lowest := xConn.OfKind(realtime.KindBidUpdate)
	require.Len(t, lowest, 1)
	require.Equal(t, "X", lowest[0].Payload.(realtime.BidUpdate).Bid.BidderID)
	require.Len(t, xConn.OfKind(realtime.KindBidRemoved), 1)
	require.Len(t, yOtherTab.OfKind(realtime.KindBidRemoved), 1, "the bidder's other tabs hear about it too")

	data, status := a.ExecuteRequestAndParse(t, carrierX, http.MethodGet, "/api/v1/exchange/"+listingID+"/bids", nil)
	require.Equal(t, http.StatusOK, status)
	require.EqualValues(t, 1, object(t, object(t, data)["scoreboard"])["caller_rank"])
}

// Role and identity rules hold at the HTTP boundary
func TestPermissions(t *testing.T) {
	a := SetupTestApp(t)
	listingID := a.PostListing(t, shipperS)

	_, status := a.ExecuteRequestAndParse(t, model.Caller{}, http.MethodPut, "/api/v1/exchange/"+listingID+"/bid",
		map[string]any{"price": "10", "validity": "1days"})
	require.Equal(t, http.StatusUnauthorized, status)

	_, status = a.ExecuteRequestAndParse(t, shipperS, http.MethodPut, "/api/v1/exchange/"+listingID+"/bid",
		map[string]any{"price": "10", "validity": "1days"})
	require.Equal(t, http.StatusForbidden, status)

	_, status = a.ExecuteRequestAndParse(t, carrierX, http.MethodPost, "/api/v1/exchange", map[string]any{})
	require.Equal(t, http.StatusForbidden, status)

	_, status = a.ExecuteRequestAndParse(t, carrierX, http.MethodPut, "/api/v1/exchange/"+listingID+"/bid",
		map[string]any{"price": "1000001", "validity": "1days"})
	require.Equal(t, http.StatusUnprocessableEntity, status)

	_, status = a.ExecuteRequestAndParse(t, carrierX, http.MethodDelete, "/api/v1/exchange/post/"+listingID, nil)
	require.Equal(t, http.StatusForbidden, status)
}
