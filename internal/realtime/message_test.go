package realtime

import (
	"encoding/json"
	"testing"
	"time"

	model "freight-exchange/internal/models"

	"github.com/sebdah/goldie/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Clients decode these bytes, so the wire shape is pinned by golden files.
func TestEnvelopeWireFormat(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	bid := model.Bid{
		BidID:     "bid-1",
		ListingID: "listing-1",
		BidderID:  "carrier-x",
		Price:     decimal.RequireFromString("400"),
		Validity:  model.Validity7Days,
		CreatedAt: created,
		Seq:       2,
	}

	contract := model.Contract{
		ContractID: "contract-1",
		ListingID:  "listing-1",
		Freight: model.Freight{
			Origin:      "Cluj",
			Destination: "Bucuresti",
			Distance:    450,
			Size:        model.Size{Tonnage: 12},
			Truck:       model.Truck{Regime: "FTL"},
		},
		ShipperID:   "shipper-s",
		ConsigneeID: "carrier-y",
		Price:       decimal.RequireFromString("400"),
		Status:      model.StatusPendingConsignee,
		CreatedAt:   created,
		UpdatedAt:   created,
	}

	tests := []struct {
		name string
		msg  Envelope
	}{
		{name: "bid_update", msg: NewBidUpdate("listing-1", &bid)},
		{name: "bid_update_empty", msg: NewBidUpdate("listing-1", nil)},
		{name: "bid_removed", msg: NewBidRemoved("bid-1", "listing-1")},
		{name: "listing_removed", msg: NewListingRemoved("listing-1", "contract-1")},
		{name: "like_update", msg: NewLikeUpdate("listing-1", true)},
		{name: "contract_update", msg: NewContractUpdate(contract)},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.msg)
			require.NoError(t, err)
			g.Assert(t, tc.name, data)
		})
	}
}

func TestEnvelopeKinds(t *testing.T) {
	t.Parallel()

	require.Equal(t, KindBidUpdate, NewBidUpdate("l", nil).Kind)
	require.Equal(t, KindBidRemoved, NewBidRemoved("b", "l").Kind)
	require.Equal(t, KindListingCreated, NewListingCreated(model.Listing{}).Kind)
	require.Equal(t, KindListingRemoved, NewListingRemoved("l", "").Kind)
	require.Equal(t, KindLikeUpdate, NewLikeUpdate("l", false).Kind)
	require.Equal(t, KindContractUpdate, NewContractUpdate(model.Contract{}).Kind)
}
