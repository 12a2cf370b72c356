package negotiation

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

// MaxPrice is the highest price a contract may be negotiated to
var MaxPrice = decimal.NewFromInt(1_000_000)

// Terms is a consignee's counter-proposal. Price is mandatory; Dates keeps
// the current dates when nil.
type Terms struct {
	Price *decimal.Decimal
	Dates *model.TransportationDate
}

// Service drives contracts from accepted bid to confirmation
type Service struct {
	repo    repository.ExchangeDB
	fanout  realtime.Broadcaster
	journal events.Recorder
	now     func() time.Time
}

// NewService creates a new negotiation Service
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

// AcceptBid converts the caller's listing into a contract with the bidder of
// bidID. The listing and all its bids disappear with the conversion; a second
// accept on the same listing finds no listing.
func (s *Service) AcceptBid(ctx context.Context, caller model.Caller, listingID, bidID string) (model.Contract, error) {
	listing, err := s.repo.GetListing(ctx, listingID)
	if err != nil {
		return model.Contract{}, fmt.Errorf("service: failed to load listing %s: %w", listingID, err)
	}
	if !permissions.IsListingOwner(listing, caller.Identity) {
		return model.Contract{}, fmt.Errorf("service: %w - only the listing owner can accept a bid", exchangeerrors.ErrForbidden)
	}

	bid, err := s.repo.GetBid(ctx, bidID)
	if err != nil {
		return model.Contract{}, fmt.Errorf("service: failed to load bid %s: %w", bidID, err)
	}
	if bid.ListingID != listingID {
		return model.Contract{}, fmt.Errorf("service: bid %s on listing %s: %w", bidID, listingID, exchangeerrors.ErrBidNotFound)
	}

	now := s.now()
	created, err := s.repo.ConvertListing(ctx, model.Contract{
		ContractID:  utils.GenerateID(),
		ListingID:   listingID,
		Freight:     listing.Freight.Clone(),
		ShipperID:   listing.OwnerID,
		ConsigneeID: bid.BidderID,
		Price:       bid.Price,
		Status:      model.StatusPendingConsignee,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, bidID)
	if err != nil {
		return model.Contract{}, fmt.Errorf("service: failed to convert listing %s: %w", listingID, err)
	}

	s.fanout.BroadcastExcept(caller.Identity, caller.SessionID, realtime.NewListingRemoved(listingID, created.ContractID))
	s.fanout.BroadcastToIdentity(created.ConsigneeID, realtime.NewContractUpdate(created))

	s.record(ctx, events.Event{
		Type:      events.ContractCreated,
		EntityID:  created.ContractID,
		ListingID: listingID,
		ActorID:   caller.Identity,
		Data: map[string]any{
			"bid_id":    bidID,
			"consignee": created.ConsigneeID,
			"price":     created.Price.String(),
		},
	})
	return created, nil
}

// Confirm acknowledges the contract's current terms. The consignee's first
// confirmation must carry transportation dates; the shipper confirms a
// renegotiated contract as is.
func (s *Service) Confirm(ctx context.Context, caller model.Caller, contractID string, dates *model.TransportationDate) (model.Contract, error) {
	contract, err := s.repo.GetContract(ctx, contractID)
	if err != nil {
		return model.Contract{}, fmt.Errorf("service: failed to load contract %s: %w", contractID, err)
	}

	party := permissions.ContractParty(contract, caller.Identity)
	next, err := Next(contract.Status, ActionConfirm, party)
	if err != nil {
		return model.Contract{}, fmt.Errorf("service: confirm contract %s: %w", contractID, err)
	}

	updated := contract
	if contract.Status == model.StatusPendingConsignee {
		if dates == nil {
			return model.Contract{}, fmt.Errorf("service: %w - transportation dates are required", exchangeerrors.ErrInvalidContract)
		}
		if err := validateDates(*dates); err != nil {
			return model.Contract{}, err
		}
		updated.TransportationDate = normalizeDates(*dates)
	}
	updated.Status = next
	updated.UpdatedAt = s.now()

	stored, err := s.repo.UpdateContract(ctx, updated, contract.Status)
	if err != nil {
		return model.Contract{}, fmt.Errorf("service: failed to confirm contract %s: %w", contractID, err)
	}

	s.fanout.BroadcastToIdentity(counterparty(stored, party), realtime.NewContractUpdate(stored))
	s.record(ctx, events.Event{
		Type:     events.ContractConfirmed,
		EntityID: contractID,
		ActorID:  caller.Identity,
		Data:     map[string]any{"from": contract.Status, "by": party},
	})
	return stored, nil
}

// Negotiate lets the consignee propose a new price and optionally new dates.
// The contract goes back to the shipper for confirmation.
func (s *Service) Negotiate(ctx context.Context, caller model.Caller, contractID string, terms Terms) (model.Contract, error) {
	contract, err := s.repo.GetContract(ctx, contractID)
	if err != nil {
		return model.Contract{}, fmt.Errorf("service: failed to load contract %s: %w", contractID, err)
	}

	party := permissions.ContractParty(contract, caller.Identity)
	next, err := Next(contract.Status, ActionNegotiate, party)
	if err != nil {
		return model.Contract{}, fmt.Errorf("service: negotiate contract %s: %w", contractID, err)
	}

	if terms.Price == nil {
		return model.Contract{}, fmt.Errorf("service: %w - price is required", exchangeerrors.ErrInvalidContract)
	}
	if terms.Price.IsNegative() || terms.Price.GreaterThan(MaxPrice) {
		return model.Contract{}, fmt.Errorf("service: %w - price must be between 0 and %s", exchangeerrors.ErrInvalidContract, MaxPrice)
	}

	updated := contract
	updated.Price = *terms.Price
	if terms.Dates != nil {
		if err := validateDates(*terms.Dates); err != nil {
			return model.Contract{}, err
		}
		updated.TransportationDate = normalizeDates(*terms.Dates)
	}
	updated.Status = next
	updated.UpdatedAt = s.now()

	stored, err := s.repo.UpdateContract(ctx, updated, contract.Status)
	if err != nil {
		return model.Contract{}, fmt.Errorf("service: failed to negotiate contract %s: %w", contractID, err)
	}

	s.fanout.BroadcastToIdentity(stored.ShipperID, realtime.NewContractUpdate(stored))
	s.record(ctx, events.Event{
		Type:     events.ContractNegotiated,
		EntityID: contractID,
		ActorID:  caller.Identity,
		Data:     map[string]any{"price": stored.Price.String()},
	})
	return stored, nil
}

// ListContracts returns every contract the caller is party to, newest first
func (s *Service) ListContracts(ctx context.Context, caller model.Caller) ([]model.Contract, error) {
	if caller.Identity == "" {
		return nil, fmt.Errorf("service: %w", exchangeerrors.ErrMissingIdentity)
	}
	contracts, err := s.repo.ListContractsByParty(ctx, caller.Identity)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list contracts of %s: %w", caller.Identity, err)
	}
	return contracts, nil
}

// GetContract returns a contract to one of its parties. Anyone else gets
// ErrContractNotFound.
func (s *Service) GetContract(ctx context.Context, caller model.Caller, contractID string) (model.Contract, error) {
	contract, err := s.repo.GetContract(ctx, contractID)
	if err != nil {
		return model.Contract{}, fmt.Errorf("service: failed to load contract %s: %w", contractID, err)
	}
	if !permissions.IsContractParty(contract, caller.Identity) {
		return model.Contract{}, fmt.Errorf("service: contract %s: %w", contractID, exchangeerrors.ErrContractNotFound)
	}
	return contract, nil
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

func counterparty(contract model.Contract, party permissions.Party) string {
	if party == permissions.PartyShipper {
		return contract.ConsigneeID
	}
	return contract.ShipperID
}

func validateDates(d model.TransportationDate) error {
	if d.Pickup.IsZero() || d.Delivery.IsZero() {
		return fmt.Errorf("service: %w - pickup and delivery dates are required", exchangeerrors.ErrInvalidContract)
	}
	if d.Delivery.Before(d.Pickup) {
		return fmt.Errorf("service: %w - delivery before pickup", exchangeerrors.ErrInvalidContract)
	}
	return nil
}

func normalizeDates(d model.TransportationDate) *model.TransportationDate {
	return &model.TransportationDate{
		Pickup:   d.Pickup.UTC().Truncate(time.Microsecond),
		Delivery: d.Delivery.UTC().Truncate(time.Microsecond),
	}
}
