// Package ledger owns the bids placed on listings: the one-bid-per-bidder
// upsert, the derived scoreboard and the notifications that follow every
// bid mutation.
package ledger

import (
	"context"
	"fmt"
	"time"

	"freight-exchange/internal/events"
	"freight-exchange/internal/exchangeerrors"
	model "freight-exchange/internal/models"
	"freight-exchange/internal/permissions"
	"freight-exchange/internal/realtime"
	"freight-exchange/internal/repository"
	"freight-exchange/utils"

	"github.com/shopspring/decimal"
)

// MaxPrice is the highest price a bid may carry
var MaxPrice = decimal.NewFromInt(1_000_000)

// BidResult is returned to a bidder after placing a bid
type BidResult struct {
	Bid        model.Bid        `json:"bid"`
	Scoreboard model.Scoreboard `json:"scoreboard"`
}

// BidView is what a caller sees of a listing's bids. The listing owner gets
// every bid in rank order; anyone else only their own bid.
type BidView struct {
	Bids       []model.Bid      `json:"bids,omitempty"`
	Bid        *model.Bid       `json:"bid"`
	Scoreboard model.Scoreboard `json:"scoreboard"`
}

// Service defines the bid ledger operations
type Service struct {
	repo    repository.ExchangeDB
	fanout  realtime.Broadcaster
	journal events.Recorder
	now     func() time.Time
}

// NewService creates a new ledger Service
func NewService(repo repository.ExchangeDB, fanout realtime.Broadcaster, journal events.Recorder) *Service {
	if journal == nil {
		journal = events.NopRecorder{}
	}
	return &Service{
		repo:    repo,
		fanout:  fanout,
		journal: journal,
		now:     utils.Now,
	}
}

// ListForOwner returns every bid on the listing in rank order. Only the
// listing owner may call it.
func (s *Service) ListForOwner(ctx context.Context, caller model.Caller, listingID string) ([]model.Bid, error) {
	listing, err := s.repo.GetListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load listing %s: %w", listingID, err)
	}
	if !permissions.IsListingOwner(listing, caller.Identity) {
		return nil, fmt.Errorf("service: %w - only the listing owner can list its bids", exchangeerrors.ErrForbidden)
	}
	return s.rankedBids(ctx, listingID)
}

// ListMine returns the caller's own bid on the listing with the scoreboard
// as the caller sees it. Bid is nil when the caller has not bid.
func (s *Service) ListMine(ctx context.Context, caller model.Caller, listingID string) (BidView, error) {
	if _, err := s.repo.GetListing(ctx, listingID); err != nil {
		return BidView{}, fmt.Errorf("service: failed to load listing %s: %w", listingID, err)
	}
	return s.bidderView(ctx, caller, listingID)
}

// View gives the listing owner every bid and anyone else what ListMine
// returns.
func (s *Service) View(ctx context.Context, caller model.Caller, listingID string) (BidView, error) {
	listing, err := s.repo.GetListing(ctx, listingID)
	if err != nil {
		return BidView{}, fmt.Errorf("service: failed to load listing %s: %w", listingID, err)
	}
	if !permissions.IsListingOwner(listing, caller.Identity) {
		return s.bidderView(ctx, caller, listingID)
	}

	bids, err := s.rankedBids(ctx, listingID)
	if err != nil {
		return BidView{}, err
	}
	return BidView{Bids: bids, Scoreboard: ComputeScoreboard(bids, "")}, nil
}

func (s *Service) rankedBids(ctx context.Context, listingID string) ([]model.Bid, error) {
	bids, err := s.repo.GetBidsByListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for listing %s: %w", listingID, err)
	}
	return Rank(bids), nil
}

func (s *Service) bidderView(ctx context.Context, caller model.Caller, listingID string) (BidView, error) {
	bids, err := s.repo.GetBidsByListing(ctx, listingID)
	if err != nil {
		return BidView{}, fmt.Errorf("service: failed to get bids for listing %s: %w", listingID, err)
	}

	view := BidView{Scoreboard: ComputeScoreboard(bids, caller.Identity)}
	for _, bid := range bids {
		if bid.BidderID == caller.Identity {
			mine := bid
			view.Bid = &mine
			break
		}
	}
	return view, nil
}

// UpsertBid places the caller's bid on a listing, replacing any bid the
// caller already has there. Everyone learns the new lowest bid; the listing
// owner's sessions receive the full bid.
func (s *Service) UpsertBid(ctx context.Context, caller model.Caller, listingID string, price decimal.Decimal, validity model.Validity) (BidResult, error) {
	if caller.Identity == "" {
		return BidResult{}, fmt.Errorf("service: %w", exchangeerrors.ErrMissingIdentity)
	}
	if !permissions.RoleAllows(caller.Role, permissions.ActionPlaceBid) {
		return BidResult{}, fmt.Errorf("service: %w - role %q cannot place bids", exchangeerrors.ErrForbidden, caller.Role)
	}
	if err := validatePrice(price); err != nil {
		return BidResult{}, err
	}
	if !validity.Valid() {
		return BidResult{}, fmt.Errorf("service: %w - unknown validity %q", exchangeerrors.ErrInvalidBid, validity)
	}

	listing, err := s.repo.GetListing(ctx, listingID)
	if err != nil {
		return BidResult{}, fmt.Errorf("service: failed to load listing %s: %w", listingID, err)
	}
	if permissions.IsListingOwner(listing, caller.Identity) {
		return BidResult{}, fmt.Errorf("service: %w - cannot bid on own listing", exchangeerrors.ErrForbidden)
	}

	stored, err := s.repo.UpsertBid(ctx, model.Bid{
		BidID:     utils.GenerateID(),
		ListingID: listingID,
		BidderID:  caller.Identity,
		Price:     price,
		Validity:  validity,
		CreatedAt: s.now(),
	})
	if err != nil {
		return BidResult{}, fmt.Errorf("service: failed to record bid on listing %s by %s: %w", listingID, caller.Identity, err)
	}

	bids, err := s.repo.GetBidsByListing(ctx, listingID)
	if err != nil {
		return BidResult{}, fmt.Errorf("service: failed to get bids for listing %s: %w", listingID, err)
	}
	board := ComputeScoreboard(bids, caller.Identity)

	s.fanout.BroadcastAll(realtime.NewBidUpdate(listingID, board.LowestBid))
	s.fanout.BroadcastToIdentity(listing.OwnerID, realtime.NewBidUpdate(listingID, &stored))

	s.record(ctx, events.Event{
		Type:      events.BidUpserted,
		EntityID:  stored.BidID,
		ListingID: listingID,
		ActorID:   caller.Identity,
		Data:      map[string]any{"price": stored.Price.String(), "validity": stored.Validity},
	})

	return BidResult{Bid: stored, Scoreboard: board}, nil
}

// NegotiateBid lets the listing owner change the price of a bid on their
// listing. The bidder's sessions receive the updated bid.
func (s *Service) NegotiateBid(ctx context.Context, caller model.Caller, bidID string, price decimal.Decimal) (model.Bid, error) {
	if err := validatePrice(price); err != nil {
		return model.Bid{}, err
	}

	bid, err := s.repo.GetBid(ctx, bidID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to load bid %s: %w", bidID, err)
	}
	listing, err := s.repo.GetListing(ctx, bid.ListingID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to load listing %s: %w", bid.ListingID, err)
	}
	if !permissions.IsListingOwner(listing, caller.Identity) {
		return model.Bid{}, fmt.Errorf("service: %w - only the listing owner can negotiate a bid", exchangeerrors.ErrForbidden)
	}

	updated, err := s.repo.UpdateBidPrice(ctx, bidID, price)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to update bid %s: %w", bidID, err)
	}

	s.announceLowest(ctx, updated.ListingID)
	s.fanout.BroadcastToIdentity(updated.BidderID, realtime.NewBidUpdate(updated.ListingID, &updated))

	s.record(ctx, events.Event{
		Type:      events.BidNegotiated,
		EntityID:  bidID,
		ListingID: updated.ListingID,
		ActorID:   caller.Identity,
		Data:      map[string]any{"price": updated.Price.String()},
	})
	return updated, nil
}

// RemoveBid deletes the caller's own bid. Other sessions learn about the
// removal and everyone receives the listing's new lowest bid.
func (s *Service) RemoveBid(ctx context.Context, caller model.Caller, bidID string) (model.Bid, error) {
	bid, err := s.repo.GetBid(ctx, bidID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to load bid %s: %w", bidID, err)
	}
	if !permissions.IsBidOwner(bid, caller.Identity) {
		return model.Bid{}, fmt.Errorf("service: %w - only the bidder can remove a bid", exchangeerrors.ErrForbidden)
	}

	removed, err := s.repo.DeleteBid(ctx, bidID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to remove bid %s: %w", bidID, err)
	}

	s.announceLowest(ctx, removed.ListingID)
	s.fanout.BroadcastExcept(caller.Identity, caller.SessionID, realtime.NewBidRemoved(removed.BidID, removed.ListingID))

	s.record(ctx, events.Event{
		Type:      events.BidRemoved,
		EntityID:  bidID,
		ListingID: removed.ListingID,
		ActorID:   caller.Identity,
	})
	return removed, nil
}

// ExpireBids deletes every bid whose validity window ended at or before now
// and returns how many were removed.
func (s *Service) ExpireBids(ctx context.Context, now time.Time) (int, error) {
	expired, err := s.repo.DeleteExpiredBids(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("service: failed to delete expired bids: %w", err)
	}

	var listings []string
	seen := make(map[string]bool)
	for _, bid := range expired {
		s.fanout.BroadcastAll(realtime.NewBidRemoved(bid.BidID, bid.ListingID))
		s.record(ctx, events.Event{
			Type:      events.BidExpired,
			EntityID:  bid.BidID,
			ListingID: bid.ListingID,
			ActorID:   bid.BidderID,
			At:        now,
		})
		if !seen[bid.ListingID] {
			seen[bid.ListingID] = true
			listings = append(listings, bid.ListingID)
		}
	}

	for _, listingID := range listings {
		s.announceLowest(ctx, listingID)
	}
	return len(expired), nil
}

// announceLowest broadcasts the listing's current lowest bid, nil when no
// bids remain. It runs after the write is durable, so a failed read is only
// logged.
func (s *Service) announceLowest(ctx context.Context, listingID string) {
	bids, err := s.repo.GetBidsByListing(ctx, listingID)
	if err != nil {
		utils.Warn("Failed to load bids for lowest-bid update", map[string]any{
			"listing_id": listingID,
			"error":      err.Error(),
		})
		return
	}
	s.fanout.BroadcastAll(realtime.NewBidUpdate(listingID, ComputeScoreboard(bids, "").LowestBid))
}

func (s *Service) record(ctx context.Context, event events.Event) {
	if event.At.IsZero() {
		event.At = s.now()
	}
	if err := s.journal.Record(ctx, event); err != nil {
		utils.Warn("Failed to record journal event", map[string]any{
			"type":   event.Type,
			"entity": event.EntityID,
			"error":  err.Error(),
		})
	}
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("service: %w - negative price", exchangeerrors.ErrInvalidBid)
	}
	if price.GreaterThan(MaxPrice) {
		return fmt.Errorf("service: %w - price above %s", exchangeerrors.ErrInvalidBid, MaxPrice)
	}
	return nil
}
