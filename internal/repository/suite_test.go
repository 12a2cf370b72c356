package repository

import (
	"context"
	"testing"
	"time"

	"freight-exchange/internal/exchangeerrors"
	model "freight-exchange/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

func uid(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// Helper to create a new Listing
func newListing(id, owner, origin, destination string, createdAt time.Time) model.Listing {
	return model.Listing{
		ListingID: id,
		OwnerID:   owner,
		Freight: model.Freight{
			Origin:      origin,
			Destination: destination,
			Distance:    420,
			Size:        model.Size{Tonnage: 12},
			Truck:       model.Truck{Regime: "FTL", Types: []string{"tent"}},
		},
		Validity:  model.Validity7Days,
		CreatedAt: createdAt,
	}
}

// Helper to create a new Bid
func newBid(id, listingID, bidder, price string, createdAt time.Time) model.Bid {
	return model.Bid{
		BidID:     id,
		ListingID: listingID,
		BidderID:  bidder,
		Price:     decimal.RequireFromString(price),
		Validity:  model.Validity1Day,
		CreatedAt: createdAt,
	}
}

func requireSameBid(t *testing.T, want, got model.Bid) {
	t.Helper()
	require.Equal(t, want.BidID, got.BidID)
	require.Equal(t, want.ListingID, got.ListingID)
	require.Equal(t, want.BidderID, got.BidderID)
	require.True(t, want.Price.Equal(got.Price), "price want %s got %s", want.Price, got.Price)
	require.Equal(t, want.Validity, got.Validity)
	require.True(t, want.CreatedAt.Equal(got.CreatedAt), "created_at want %s got %s", want.CreatedAt, got.CreatedAt)
}

func listingIDs(listings []model.Listing) []string {
	ids := make([]string, 0, len(listings))
	for _, l := range listings {
		ids = append(ids, l.ListingID)
	}
	return ids
}

// exerciseExchangeDB runs the behaviour every ExchangeDB implementation shares.
// newRepo must return an empty store.
func exerciseExchangeDB(t *testing.T, newRepo func(t *testing.T) ExchangeDB) {
	ctx := context.Background()

	t.Run("listing_roundtrip", func(t *testing.T) {
		repo := newRepo(t)
		l := newListing(uid("l"), "shipper", "Berlin", "Hamburg", base)
		budget := decimal.RequireFromString("1500.50")
		l.Budget = &budget
		l.Freight.Geometry = &model.Geometry{Origin: model.LatLng{Lat: 52.5, Lng: 13.4}}
		require.NoError(t, repo.CreateListing(ctx, l))

		got, err := repo.GetListing(ctx, l.ListingID)
		require.NoError(t, err)
		require.Equal(t, l.OwnerID, got.OwnerID)
		require.Equal(t, l.Freight, got.Freight)
		require.NotNil(t, got.Budget)
		require.True(t, budget.Equal(*got.Budget))
		require.True(t, l.CreatedAt.Equal(got.CreatedAt))

		_, err = repo.GetListing(ctx, "missing")
		require.ErrorIs(t, err, exchangeerrors.ErrListingNotFound)
	})

	t.Run("list_pages_newest_first", func(t *testing.T) {
		repo := newRepo(t)
		var ids []string
		for i := 0; i < 5; i++ {
			l := newListing(uid("l"), "shipper", "Berlin", "Hamburg", base.Add(time.Duration(i)*time.Minute))
			if i%2 == 0 {
				l.Freight.Truck.Regime = "LTL"
				l.Freight.Size.Tonnage = 3
			}
			require.NoError(t, repo.CreateListing(ctx, l))
			ids = append([]string{l.ListingID}, ids...)
		}

		page, total, err := repo.ListListings(ctx, ListingQuery{Offset: 1, Limit: 2})
		require.NoError(t, err)
		require.Equal(t, 5, total)
		require.Equal(t, ids[1:3], listingIDs(page))

		ltl, total, err := repo.ListListings(ctx, ListingQuery{Regime: "LTL"})
		require.NoError(t, err)
		require.Equal(t, 3, total)
		require.Len(t, ltl, 3)

		heavy, total, err := repo.ListListings(ctx, ListingQuery{MinTonnage: 10, MaxTonnage: 20})
		require.NoError(t, err)
		require.Equal(t, 2, total)
		require.Len(t, heavy, 2)

		empty, total, err := repo.ListListings(ctx, ListingQuery{Offset: 10, Limit: 9})
		require.NoError(t, err)
		require.Equal(t, 5, total)
		require.Empty(t, empty)
	})

	t.Run("search_matches_substring_case_insensitive", func(t *testing.T) {
		repo := newRepo(t)
		berlin := newListing(uid("l"), "shipper", "Berlin", "Hamburg", base)
		munich := newListing(uid("l"), "shipper", "Munich", "berlin-Spandau", base.Add(time.Minute))
		percent := newListing(uid("l"), "shipper", "100% Town", "Bonn", base.Add(2*time.Minute))
		for _, l := range []model.Listing{berlin, munich, percent} {
			require.NoError(t, repo.CreateListing(ctx, l))
		}

		got, err := repo.SearchListings(ctx, "BERL", 7)
		require.NoError(t, err)
		require.Equal(t, []string{munich.ListingID, berlin.ListingID}, listingIDs(got))

		got, err = repo.SearchListings(ctx, "berl", 1)
		require.NoError(t, err)
		require.Equal(t, []string{munich.ListingID}, listingIDs(got))

		got, err = repo.SearchListings(ctx, "%", 7)
		require.NoError(t, err)
		require.Equal(t, []string{percent.ListingID}, listingIDs(got))
	})

	t.Run("like_flag", func(t *testing.T) {
		repo := newRepo(t)
		l := newListing(uid("l"), "shipper", "Berlin", "Hamburg", base)
		require.NoError(t, repo.CreateListing(ctx, l))

		require.NoError(t, repo.SetListingLiked(ctx, l.ListingID, true))
		got, err := repo.GetListing(ctx, l.ListingID)
		require.NoError(t, err)
		require.True(t, got.IsLiked)

		require.ErrorIs(t, repo.SetListingLiked(ctx, "missing", true), exchangeerrors.ErrListingNotFound)
	})

	t.Run("upsert_keeps_one_bid_per_bidder", func(t *testing.T) {
		repo := newRepo(t)
		l := newListing(uid("l"), "shipper", "Berlin", "Hamburg", base)
		require.NoError(t, repo.CreateListing(ctx, l))

		first, err := repo.UpsertBid(ctx, newBid(uid("b"), l.ListingID, "carrier1", "100", base))
		require.NoError(t, err)
		other, err := repo.UpsertBid(ctx, newBid(uid("b"), l.ListingID, "carrier2", "90", base))
		require.NoError(t, err)

		later := base.Add(time.Hour)
		replaced, err := repo.UpsertBid(ctx, newBid(uid("b"), l.ListingID, "carrier1", "80", later))
		require.NoError(t, err)
		require.Equal(t, first.BidID, replaced.BidID)
		require.True(t, replaced.Price.Equal(decimal.NewFromInt(80)))
		require.True(t, later.Equal(replaced.CreatedAt))
		require.Greater(t, replaced.Seq, other.Seq)

		bids, err := repo.GetBidsByListing(ctx, l.ListingID)
		require.NoError(t, err)
		require.Len(t, bids, 2)
		requireSameBid(t, other, bids[0])
		requireSameBid(t, replaced, bids[1])

		mine, err := repo.GetBidByBidder(ctx, l.ListingID, "carrier1")
		require.NoError(t, err)
		requireSameBid(t, replaced, mine)

		_, err = repo.UpsertBid(ctx, newBid(uid("b"), "missing", "carrier1", "10", base))
		require.ErrorIs(t, err, exchangeerrors.ErrListingNotFound)
	})

	t.Run("bid_price_update_and_delete", func(t *testing.T) {
		repo := newRepo(t)
		l := newListing(uid("l"), "shipper", "Berlin", "Hamburg", base)
		require.NoError(t, repo.CreateListing(ctx, l))
		bid, err := repo.UpsertBid(ctx, newBid(uid("b"), l.ListingID, "carrier1", "100", base))
		require.NoError(t, err)

		updated, err := repo.UpdateBidPrice(ctx, bid.BidID, decimal.RequireFromString("75.25"))
		require.NoError(t, err)
		require.True(t, updated.Price.Equal(decimal.RequireFromString("75.25")))
		require.Equal(t, bid.Seq, updated.Seq)

		removed, err := repo.DeleteBid(ctx, bid.BidID)
		require.NoError(t, err)
		require.Equal(t, bid.BidID, removed.BidID)

		_, err = repo.GetBid(ctx, bid.BidID)
		require.ErrorIs(t, err, exchangeerrors.ErrBidNotFound)
		_, err = repo.DeleteBid(ctx, bid.BidID)
		require.ErrorIs(t, err, exchangeerrors.ErrBidNotFound)
		_, err = repo.UpdateBidPrice(ctx, bid.BidID, decimal.NewFromInt(1))
		require.ErrorIs(t, err, exchangeerrors.ErrBidNotFound)
		_, err = repo.GetBidByBidder(ctx, l.ListingID, "carrier1")
		require.ErrorIs(t, err, exchangeerrors.ErrBidNotFound)

		// the bidder may bid again after removal
		again, err := repo.UpsertBid(ctx, newBid(uid("b"), l.ListingID, "carrier1", "95", base))
		require.NoError(t, err)
		require.NotEqual(t, bid.BidID, again.BidID)
	})

	t.Run("expired_bids_are_removed", func(t *testing.T) {
		repo := newRepo(t)
		l := newListing(uid("l"), "shipper", "Berlin", "Hamburg", base)
		require.NoError(t, repo.CreateListing(ctx, l))

		old, err := repo.UpsertBid(ctx, newBid(uid("b"), l.ListingID, "carrier1", "100", base))
		require.NoError(t, err)
		fresh := newBid(uid("b"), l.ListingID, "carrier2", "90", base)
		fresh.Validity = model.Validity3Days
		_, err = repo.UpsertBid(ctx, fresh)
		require.NoError(t, err)

		expired, err := repo.DeleteExpiredBids(ctx, base.Add(24*time.Hour))
		require.NoError(t, err)
		require.Len(t, expired, 1)
		require.Equal(t, old.BidID, expired[0].BidID)

		bids, err := repo.GetBidsByListing(ctx, l.ListingID)
		require.NoError(t, err)
		require.Len(t, bids, 1)
		require.Equal(t, "carrier2", bids[0].BidderID)
	})

	t.Run("delete_listing_cascades_bids", func(t *testing.T) {
		repo := newRepo(t)
		l := newListing(uid("l"), "shipper", "Berlin", "Hamburg", base)
		require.NoError(t, repo.CreateListing(ctx, l))
		bid, err := repo.UpsertBid(ctx, newBid(uid("b"), l.ListingID, "carrier1", "100", base))
		require.NoError(t, err)

		removed, err := repo.DeleteListing(ctx, l.ListingID)
		require.NoError(t, err)
		require.Equal(t, l.ListingID, removed.ListingID)

		_, err = repo.GetBid(ctx, bid.BidID)
		require.ErrorIs(t, err, exchangeerrors.ErrBidNotFound)
		_, err = repo.DeleteListing(ctx, l.ListingID)
		require.ErrorIs(t, err, exchangeerrors.ErrListingNotFound)
	})

	t.Run("convert_listing_once", func(t *testing.T) {
		repo := newRepo(t)
		l := newListing(uid("l"), "shipper", "Berlin", "Hamburg", base)
		require.NoError(t, repo.CreateListing(ctx, l))
		win, err := repo.UpsertBid(ctx, newBid(uid("b"), l.ListingID, "carrier1", "100", base))
		require.NoError(t, err)
		lose, err := repo.UpsertBid(ctx, newBid(uid("b"), l.ListingID, "carrier2", "120", base))
		require.NoError(t, err)

		contract := model.Contract{
			ContractID:  uid("c"),
			ListingID:   l.ListingID,
			Freight:     l.Freight,
			ShipperID:   l.OwnerID,
			ConsigneeID: win.BidderID,
			Price:       win.Price,
			Status:      model.StatusPendingConsignee,
			CreatedAt:   base,
			UpdatedAt:   base,
		}
		_, err = repo.ConvertListing(ctx, contract, win.BidID)
		require.NoError(t, err)

		_, err = repo.GetListing(ctx, l.ListingID)
		require.ErrorIs(t, err, exchangeerrors.ErrListingNotFound)
		_, err = repo.GetBid(ctx, lose.BidID)
		require.ErrorIs(t, err, exchangeerrors.ErrBidNotFound)

		stored, err := repo.GetContract(ctx, contract.ContractID)
		require.NoError(t, err)
		require.Equal(t, contract.ConsigneeID, stored.ConsigneeID)
		require.Equal(t, l.Freight, stored.Freight)
		require.True(t, win.Price.Equal(stored.Price))
		require.Nil(t, stored.TransportationDate)

		second := contract
		second.ContractID = uid("c")
		_, err = repo.ConvertListing(ctx, second, lose.BidID)
		require.ErrorIs(t, err, exchangeerrors.ErrListingNotFound)
	})

	t.Run("convert_rejects_foreign_bid", func(t *testing.T) {
		repo := newRepo(t)
		l := newListing(uid("l"), "shipper", "Berlin", "Hamburg", base)
		other := newListing(uid("l"), "shipper", "Bonn", "Köln", base)
		require.NoError(t, repo.CreateListing(ctx, l))
		require.NoError(t, repo.CreateListing(ctx, other))
		foreign, err := repo.UpsertBid(ctx, newBid(uid("b"), other.ListingID, "carrier1", "100", base))
		require.NoError(t, err)

		_, err = repo.ConvertListing(ctx, model.Contract{
			ContractID: uid("c"), ListingID: l.ListingID, ShipperID: "shipper", ConsigneeID: "carrier1",
			Price: foreign.Price, Status: model.StatusPendingConsignee, CreatedAt: base, UpdatedAt: base,
		}, foreign.BidID)
		require.ErrorIs(t, err, exchangeerrors.ErrBidNotFound)

		// the failed conversion left the listing in place
		_, err = repo.GetListing(ctx, l.ListingID)
		require.NoError(t, err)
	})

	t.Run("contracts_by_party_and_cas_update", func(t *testing.T) {
		repo := newRepo(t)
		var contracts []model.Contract
		for i, consignee := range []string{"carrier1", "carrier2"} {
			l := newListing(uid("l"), "shipper", "Berlin", "Hamburg", base)
			require.NoError(t, repo.CreateListing(ctx, l))
			bid, err := repo.UpsertBid(ctx, newBid(uid("b"), l.ListingID, consignee, "100", base))
			require.NoError(t, err)
			c, err := repo.ConvertListing(ctx, model.Contract{
				ContractID: uid("c"), ListingID: l.ListingID, Freight: l.Freight, ShipperID: "shipper",
				ConsigneeID: consignee, Price: bid.Price, Status: model.StatusPendingConsignee,
				CreatedAt: base.Add(time.Duration(i) * time.Minute), UpdatedAt: base,
			}, bid.BidID)
			require.NoError(t, err)
			contracts = append(contracts, c)
		}

		mine, err := repo.ListContractsByParty(ctx, "shipper")
		require.NoError(t, err)
		require.Len(t, mine, 2)
		require.Equal(t, contracts[1].ContractID, mine[0].ContractID)

		theirs, err := repo.ListContractsByParty(ctx, "carrier1")
		require.NoError(t, err)
		require.Len(t, theirs, 1)

		none, err := repo.ListContractsByParty(ctx, "stranger")
		require.NoError(t, err)
		require.Empty(t, none)

		update := contracts[0]
		update.Price = decimal.NewFromInt(90)
		update.Status = model.StatusPendingShipper
		update.TransportationDate = &model.TransportationDate{Pickup: base.Add(48 * time.Hour), Delivery: base.Add(72 * time.Hour)}
		update.UpdatedAt = base.Add(time.Hour)

		stored, err := repo.UpdateContract(ctx, update, model.StatusPendingConsignee)
		require.NoError(t, err)
		require.Equal(t, model.StatusPendingShipper, stored.Status)
		require.True(t, stored.Price.Equal(decimal.NewFromInt(90)))
		require.NotNil(t, stored.TransportationDate)
		require.True(t, update.TransportationDate.Pickup.Equal(stored.TransportationDate.Pickup))

		_, err = repo.UpdateContract(ctx, update, model.StatusPendingConsignee)
		require.ErrorIs(t, err, exchangeerrors.ErrContractConflict)

		update.ContractID = "missing"
		_, err = repo.UpdateContract(ctx, update, model.StatusPendingShipper)
		require.ErrorIs(t, err, exchangeerrors.ErrContractNotFound)
	})
}
