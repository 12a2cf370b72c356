package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"freight-exchange/internal/exchangeerrors"
	model "freight-exchange/internal/models"

	"github.com/shopspring/decimal"
)

// MemoryRepo is a concurrency-safe in-memory implementation of ExchangeDB.
// A single mutex makes every method, including ConvertListing, atomic.
type MemoryRepo struct {
	mu          sync.RWMutex
	listings    map[string]model.Listing
	listingSeq  map[string]int64
	bids        map[string]model.Bid          // key: bidID
	bidsByPair  map[string]map[string]string // key: listingID -> bidderID -> bidID
	contracts   map[string]model.Contract
	contractSeq map[string]int64
	seq         int64
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		listings:    make(map[string]model.Listing),
		listingSeq:  make(map[string]int64),
		bids:        make(map[string]model.Bid),
		bidsByPair:  make(map[string]map[string]string),
		contracts:   make(map[string]model.Contract),
		contractSeq: make(map[string]int64),
	}
}

func (r *MemoryRepo) nextSeq() int64 {
	r.seq++
	return r.seq
}

// CreateListing stores a new listing
func (r *MemoryRepo) CreateListing(_ context.Context, listing model.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.listings[listing.ListingID]; exists {
		return fmt.Errorf("create listing %s: %w - duplicate id", listing.ListingID, exchangeerrors.ErrInvalidListing)
	}
	listing.Freight = listing.Freight.Clone()
	r.listings[listing.ListingID] = listing
	r.listingSeq[listing.ListingID] = r.nextSeq()
	return nil
}

// GetListing returns a listing by ID
func (r *MemoryRepo) GetListing(_ context.Context, listingID string) (model.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listing, ok := r.listings[listingID]
	if !ok {
		return model.Listing{}, fmt.Errorf("get listing %s: %w", listingID, exchangeerrors.ErrListingNotFound)
	}
	listing.Freight = listing.Freight.Clone()
	return listing, nil
}

// ListListings returns a filtered page of listings, newest first
func (r *MemoryRepo) ListListings(_ context.Context, q ListingQuery) ([]model.Listing, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := r.sortedListingsLocked(func(l model.Listing) bool {
		if q.Regime != "" && l.Freight.Truck.Regime != q.Regime {
			return false
		}
		if q.MinTonnage > 0 && l.Freight.Size.Tonnage < q.MinTonnage {
			return false
		}
		if q.MaxTonnage > 0 && l.Freight.Size.Tonnage > q.MaxTonnage {
			return false
		}
		return true
	})

	total := len(matches)
	if q.Offset >= total {
		return []model.Listing{}, total, nil
	}
	end := total
	if q.Limit > 0 && q.Offset+q.Limit < total {
		end = q.Offset + q.Limit
	}
	return matches[q.Offset:end], total, nil
}

// SearchListings matches term case-insensitively against origin and destination
func (r *MemoryRepo) SearchListings(_ context.Context, term string, limit int) ([]model.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(term)
	matches := r.sortedListingsLocked(func(l model.Listing) bool {
		return strings.Contains(strings.ToLower(l.Freight.Origin), needle) ||
			strings.Contains(strings.ToLower(l.Freight.Destination), needle)
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (r *MemoryRepo) sortedListingsLocked(keep func(model.Listing) bool) []model.Listing {
	out := make([]model.Listing, 0, len(r.listings))
	for _, l := range r.listings {
		if keep(l) {
			l.Freight = l.Freight.Clone()
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return r.listingSeq[out[i].ListingID] > r.listingSeq[out[j].ListingID]
	})
	return out
}

// SetListingLiked updates the like flag of a listing
func (r *MemoryRepo) SetListingLiked(_ context.Context, listingID string, liked bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	listing, ok := r.listings[listingID]
	if !ok {
		return fmt.Errorf("like listing %s: %w", listingID, exchangeerrors.ErrListingNotFound)
	}
	listing.IsLiked = liked
	r.listings[listingID] = listing
	return nil
}

// DeleteListing removes a listing and its bids
func (r *MemoryRepo) DeleteListing(_ context.Context, listingID string) (model.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	listing, ok := r.listings[listingID]
	if !ok {
		return model.Listing{}, fmt.Errorf("delete listing %s: %w", listingID, exchangeerrors.ErrListingNotFound)
	}
	r.deleteListingLocked(listingID)
	return listing, nil
}

func (r *MemoryRepo) deleteListingLocked(listingID string) {
	for _, bidID := range r.bidsByPair[listingID] {
		delete(r.bids, bidID)
	}
	delete(r.bidsByPair, listingID)
	delete(r.listings, listingID)
	delete(r.listingSeq, listingID)
}

// UpsertBid records the bidder's bid on a listing, replacing any previous one
func (r *MemoryRepo) UpsertBid(_ context.Context, bid model.Bid) (model.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listings[bid.ListingID]; !ok {
		return model.Bid{}, fmt.Errorf("upsert bid for listing %s: %w", bid.ListingID, exchangeerrors.ErrListingNotFound)
	}

	byBidder, ok := r.bidsByPair[bid.ListingID]
	if !ok {
		byBidder = make(map[string]string)
		r.bidsByPair[bid.ListingID] = byBidder
	}

	if existingID, ok := byBidder[bid.BidderID]; ok {
		bid.BidID = existingID
	}
	bid.Seq = r.nextSeq()

	r.bids[bid.BidID] = bid
	byBidder[bid.BidderID] = bid.BidID
	return bid, nil
}

// GetBid returns a bid by ID
func (r *MemoryRepo) GetBid(_ context.Context, bidID string) (model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bid, ok := r.bids[bidID]
	if !ok {
		return model.Bid{}, fmt.Errorf("get bid %s: %w", bidID, exchangeerrors.ErrBidNotFound)
	}
	return bid, nil
}

// GetBidsByListing returns all bids on a listing in write order
func (r *MemoryRepo) GetBidsByListing(_ context.Context, listingID string) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bids := make([]model.Bid, 0, len(r.bidsByPair[listingID]))
	for _, bidID := range r.bidsByPair[listingID] {
		bids = append(bids, r.bids[bidID])
	}
	sortBySeq(bids)
	return bids, nil
}

// GetBidByBidder returns the bidder's bid on a listing
func (r *MemoryRepo) GetBidByBidder(_ context.Context, listingID, bidderID string) (model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bidID, ok := r.bidsByPair[listingID][bidderID]
	if !ok {
		return model.Bid{}, fmt.Errorf("get bid of %s on listing %s: %w", bidderID, listingID, exchangeerrors.ErrBidNotFound)
	}
	return r.bids[bidID], nil
}

// UpdateBidPrice changes the price of a bid in place
func (r *MemoryRepo) UpdateBidPrice(_ context.Context, bidID string, price decimal.Decimal) (model.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bid, ok := r.bids[bidID]
	if !ok {
		return model.Bid{}, fmt.Errorf("update bid %s: %w", bidID, exchangeerrors.ErrBidNotFound)
	}
	bid.Price = price
	r.bids[bidID] = bid
	return bid, nil
}

// DeleteBid removes a bid and returns it
func (r *MemoryRepo) DeleteBid(_ context.Context, bidID string) (model.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bid, ok := r.bids[bidID]
	if !ok {
		return model.Bid{}, fmt.Errorf("delete bid %s: %w", bidID, exchangeerrors.ErrBidNotFound)
	}
	r.deleteBidLocked(bid)
	return bid, nil
}

func (r *MemoryRepo) deleteBidLocked(bid model.Bid) {
	delete(r.bids, bid.BidID)
	if byBidder, ok := r.bidsByPair[bid.ListingID]; ok {
		delete(byBidder, bid.BidderID)
		if len(byBidder) == 0 {
			delete(r.bidsByPair, bid.ListingID)
		}
	}
}

// DeleteExpiredBids removes bids whose validity window has elapsed
func (r *MemoryRepo) DeleteExpiredBids(_ context.Context, now time.Time) ([]model.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var expired []model.Bid
	for _, bid := range r.bids {
		if !bid.ExpiresAt().After(now) {
			expired = append(expired, bid)
		}
	}
	for _, bid := range expired {
		r.deleteBidLocked(bid)
	}
	sortBySeq(expired)
	return expired, nil
}

// ConvertListing turns a listing into a contract. Only the first caller finds
// the listing; later callers get ErrListingNotFound.
func (r *MemoryRepo) ConvertListing(_ context.Context, contract model.Contract, bidID string) (model.Contract, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listings[contract.ListingID]; !ok {
		return model.Contract{}, fmt.Errorf("convert listing %s: %w", contract.ListingID, exchangeerrors.ErrListingNotFound)
	}
	bid, ok := r.bids[bidID]
	if !ok || bid.ListingID != contract.ListingID {
		return model.Contract{}, fmt.Errorf("convert listing %s with bid %s: %w", contract.ListingID, bidID, exchangeerrors.ErrBidNotFound)
	}

	r.deleteListingLocked(contract.ListingID)
	contract.Freight = contract.Freight.Clone()
	r.contracts[contract.ContractID] = contract
	r.contractSeq[contract.ContractID] = r.nextSeq()
	return contract, nil
}

// GetContract returns a contract by ID
func (r *MemoryRepo) GetContract(_ context.Context, contractID string) (model.Contract, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	contract, ok := r.contracts[contractID]
	if !ok {
		return model.Contract{}, fmt.Errorf("get contract %s: %w", contractID, exchangeerrors.ErrContractNotFound)
	}
	return contract, nil
}

// ListContractsByParty returns the contracts a user is party to, newest first
func (r *MemoryRepo) ListContractsByParty(_ context.Context, userID string) ([]model.Contract, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Contract, 0)
	for _, c := range r.contracts {
		if c.ShipperID == userID || c.ConsigneeID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return r.contractSeq[out[i].ContractID] > r.contractSeq[out[j].ContractID]
	})
	return out, nil
}

// UpdateContract stores the mutable fields of contract if its status is still expected
func (r *MemoryRepo) UpdateContract(_ context.Context, contract model.Contract, expected model.ContractStatus) (model.Contract, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.contracts[contract.ContractID]
	if !ok {
		return model.Contract{}, fmt.Errorf("update contract %s: %w", contract.ContractID, exchangeerrors.ErrContractNotFound)
	}
	if stored.Status != expected {
		return model.Contract{}, fmt.Errorf("update contract %s from %s (now %s): %w",
			contract.ContractID, expected, stored.Status, exchangeerrors.ErrContractConflict)
	}

	stored.Price = contract.Price
	stored.TransportationDate = contract.TransportationDate
	stored.Status = contract.Status
	stored.UpdatedAt = contract.UpdatedAt
	r.contracts[contract.ContractID] = stored
	return stored, nil
}

// AddListing seeds a listing directly. Intended for tests and demo data.
func (r *MemoryRepo) AddListing(listing model.Listing) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listings[listing.ListingID] = listing
	r.listingSeq[listing.ListingID] = r.nextSeq()
}
