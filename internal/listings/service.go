// Package listings manages the freight exchange board: posting, browsing,
// searching, liking and withdrawing listings.
package listings

import (
	"context"
	"fmt"
	"strings"
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

const (
	// PageSize is the number of listings on one board page
	PageSize = 9
	// SearchLimit caps search results
	SearchLimit = 7
)

// Input is a new listing as submitted by its owner
type Input struct {
	Freight  model.Freight
	Budget   *decimal.Decimal
	Validity model.Validity
}

// Filter selects a board page. Page is 1-based; zero values mean no constraint.
type Filter struct {
	Page       int
	Regime     string
	MinTonnage float64
	MaxTonnage float64
}

// Page is one page of the board
type Page struct {
	Listings    []model.Listing `json:"listings"`
	Page        int             `json:"page"`
	PagesToShow int             `json:"pages_to_show"`
	Total       int             `json:"total"`
}

// Service defines the listing operations
type Service struct {
	repo    repository.ListingStore
	fanout  realtime.Broadcaster
	journal events.Recorder
	now     func() time.Time
}

// NewService creates a new listings Service
func NewService(repo repository.ListingStore, fanout realtime.Broadcaster, journal events.Recorder) *Service {
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

// Create posts a new listing owned by the caller and announces it to every
// other session.
func (s *Service) Create(ctx context.Context, caller model.Caller, in Input) (model.Listing, error) {
	if caller.Identity == "" {
		return model.Listing{}, fmt.Errorf("service: %w", exchangeerrors.ErrMissingIdentity)
	}
	if !permissions.RoleAllows(caller.Role, permissions.ActionPostListing) {
		return model.Listing{}, fmt.Errorf("service: %w - role %q cannot post listings", exchangeerrors.ErrForbidden, caller.Role)
	}
	if err := Validate(in); err != nil {
		return model.Listing{}, err
	}

	freight := in.Freight.Clone()
	freight.Origin = strings.TrimSpace(freight.Origin)
	freight.Destination = strings.TrimSpace(freight.Destination)
	freight.Details = strings.TrimSpace(freight.Details)

	listing := model.Listing{
		ListingID: utils.GenerateID(),
		OwnerID:   caller.Identity,
		Freight:   freight,
		Budget:    in.Budget,
		Validity:  in.Validity,
		CreatedAt: s.now(),
	}
	if listing.Validity == "" {
		listing.Validity = model.Validity7Days
	}

	if err := s.repo.CreateListing(ctx, listing); err != nil {
		return model.Listing{}, fmt.Errorf("service: failed to create listing: %w", err)
	}

	s.fanout.BroadcastExcept(caller.Identity, caller.SessionID, realtime.NewListingCreated(listing))
	s.record(ctx, events.Event{
		Type:      events.ListingCreated,
		EntityID:  listing.ListingID,
		ListingID: listing.ListingID,
		ActorID:   caller.Identity,
	})
	return listing, nil
}

// Get returns one listing
func (s *Service) Get(ctx context.Context, listingID string) (model.Listing, error) {
	listing, err := s.repo.GetListing(ctx, listingID)
	if err != nil {
		return model.Listing{}, fmt.Errorf("service: failed to get listing %s: %w", listingID, err)
	}
	return listing, nil
}

// List returns one board page, newest first
func (s *Service) List(ctx context.Context, filter Filter) (Page, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	if filter.MinTonnage < 0 || filter.MaxTonnage < 0 ||
		(filter.MaxTonnage > 0 && filter.MinTonnage > filter.MaxTonnage) {
		return Page{}, fmt.Errorf("service: %w - bad tonnage range", exchangeerrors.ErrInvalidListing)
	}
	if filter.Regime != "" && !ValidRegime(filter.Regime) {
		return Page{}, fmt.Errorf("service: %w - unknown regime %q", exchangeerrors.ErrInvalidListing, filter.Regime)
	}

	listings, total, err := s.repo.ListListings(ctx, repository.ListingQuery{
		Offset:     (page - 1) * PageSize,
		Limit:      PageSize,
		Regime:     filter.Regime,
		MinTonnage: filter.MinTonnage,
		MaxTonnage: filter.MaxTonnage,
	})
	if err != nil {
		return Page{}, fmt.Errorf("service: failed to list listings: %w", err)
	}

	return Page{
		Listings:    listings,
		Page:        page,
		PagesToShow: (total + PageSize - 1) / PageSize,
		Total:       total,
	}, nil
}

// Search matches term against origin and destination, case-insensitively
func (s *Service) Search(ctx context.Context, term string) ([]model.Listing, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("service: %w - empty search term", exchangeerrors.ErrInvalidListing)
	}
	listings, err := s.repo.SearchListings(ctx, term, SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to search listings: %w", err)
	}
	return listings, nil
}

// Delete withdraws the caller's listing together with its bids
func (s *Service) Delete(ctx context.Context, caller model.Caller, listingID string) error {
	listing, err := s.repo.GetListing(ctx, listingID)
	if err != nil {
		return fmt.Errorf("service: failed to load listing %s: %w", listingID, err)
	}
	if !permissions.IsListingOwner(listing, caller.Identity) {
		return fmt.Errorf("service: %w - only the owner can delete a listing", exchangeerrors.ErrForbidden)
	}

	if _, err := s.repo.DeleteListing(ctx, listingID); err != nil {
		return fmt.Errorf("service: failed to delete listing %s: %w", listingID, err)
	}

	s.fanout.BroadcastExcept(caller.Identity, caller.SessionID, realtime.NewListingRemoved(listingID, ""))
	s.record(ctx, events.Event{
		Type:      events.ListingRemoved,
		EntityID:  listingID,
		ListingID: listingID,
		ActorID:   caller.Identity,
	})
	return nil
}

// Like sets the like flag of a listing and tells the caller's other sessions
// and everyone else.
func (s *Service) Like(ctx context.Context, caller model.Caller, listingID string, liked bool) error {
	if caller.Identity == "" {
		return fmt.Errorf("service: %w", exchangeerrors.ErrMissingIdentity)
	}
	if err := s.repo.SetListingLiked(ctx, listingID, liked); err != nil {
		return fmt.Errorf("service: failed to like listing %s: %w", listingID, err)
	}
	s.fanout.BroadcastExcept(caller.Identity, caller.SessionID, realtime.NewLikeUpdate(listingID, liked))
	return nil
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
