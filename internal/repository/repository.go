package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	model "freight-exchange/internal/models"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

// ListingQuery selects one page of listings, newest first.
// Zero values mean "no constraint".
type ListingQuery struct {
	Offset     int
	Limit      int
	Regime     string
	MinTonnage float64
	MaxTonnage float64
}

// ListingStore persists freight listings
type ListingStore interface {
	CreateListing(ctx context.Context, listing model.Listing) error
	GetListing(ctx context.Context, listingID string) (model.Listing, error)
	// ListListings returns the requested page and the total number of matches
	ListListings(ctx context.Context, query ListingQuery) ([]model.Listing, int, error)
	SearchListings(ctx context.Context, term string, limit int) ([]model.Listing, error)
	SetListingLiked(ctx context.Context, listingID string, liked bool) error
	// DeleteListing removes the listing together with every bid on it
	DeleteListing(ctx context.Context, listingID string) (model.Listing, error)
}

// BidStore persists bids. UpsertBid is the only write path for new prices
// from bidders and must be atomic per (listing, bidder).
type BidStore interface {
	// UpsertBid inserts bid, or replaces price, validity and creation time of
	// the bidder's existing bid on the same listing, keeping its ID.
	UpsertBid(ctx context.Context, bid model.Bid) (model.Bid, error)
	GetBid(ctx context.Context, bidID string) (model.Bid, error)
	// GetBidsByListing returns the listing's bids in write order
	GetBidsByListing(ctx context.Context, listingID string) ([]model.Bid, error)
	GetBidByBidder(ctx context.Context, listingID, bidderID string) (model.Bid, error)
	UpdateBidPrice(ctx context.Context, bidID string, price decimal.Decimal) (model.Bid, error)
	DeleteBid(ctx context.Context, bidID string) (model.Bid, error)
	// DeleteExpiredBids removes every bid whose validity ended at or before now
	DeleteExpiredBids(ctx context.Context, now time.Time) ([]model.Bid, error)
}

// ContractStore persists contracts
type ContractStore interface {
	// ConvertListing deletes the listing and all its bids and inserts contract,
	// as one unit. The listing is contract.ListingID; bidID must still be a
	// bid on that listing.
	ConvertListing(ctx context.Context, contract model.Contract, bidID string) (model.Contract, error)
	GetContract(ctx context.Context, contractID string) (model.Contract, error)
	// ListContractsByParty returns contracts where userID is shipper or consignee, newest first
	ListContractsByParty(ctx context.Context, userID string) ([]model.Contract, error)
	// UpdateContract overwrites price, dates and status only if the stored
	// status still equals expected.
	UpdateContract(ctx context.Context, contract model.Contract, expected model.ContractStatus) (model.Contract, error)
}

// ExchangeDB is the full storage surface of the exchange
type ExchangeDB interface {
	ListingStore
	BidStore
	ContractStore
}

// likePattern turns a user search term into a LIKE pattern matching it as a substring
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

func sortBySeq(bids []model.Bid) {
	sort.Slice(bids, func(i, j int) bool { return bids[i].Seq < bids[j].Seq })
}
