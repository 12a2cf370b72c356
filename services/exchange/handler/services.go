package handler

import (
	"context"

	"freight-exchange/internal/ledger"
	"freight-exchange/internal/listings"
	model "freight-exchange/internal/models"
	"freight-exchange/internal/negotiation"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=services.go -destination=mock_services.go -package=handler

// ListingService is implemented by listings.Service
type ListingService interface {
	Create(ctx context.Context, caller model.Caller, in listings.Input) (model.Listing, error)
	Get(ctx context.Context, listingID string) (model.Listing, error)
	List(ctx context.Context, filter listings.Filter) (listings.Page, error)
	Search(ctx context.Context, term string) ([]model.Listing, error)
	Delete(ctx context.Context, caller model.Caller, listingID string) error
	Like(ctx context.Context, caller model.Caller, listingID string, liked bool) error
}

// BidService is implemented by ledger.Service
type BidService interface {
	View(ctx context.Context, caller model.Caller, listingID string) (ledger.BidView, error)
	UpsertBid(ctx context.Context, caller model.Caller, listingID string, price decimal.Decimal, validity model.Validity) (ledger.BidResult, error)
	NegotiateBid(ctx context.Context, caller model.Caller, bidID string, price decimal.Decimal) (model.Bid, error)
	RemoveBid(ctx context.Context, caller model.Caller, bidID string) (model.Bid, error)
}

// ContractService is implemented by negotiation.Service
type ContractService interface {
	AcceptBid(ctx context.Context, caller model.Caller, listingID, bidID string) (model.Contract, error)
	Confirm(ctx context.Context, caller model.Caller, contractID string, dates *model.TransportationDate) (model.Contract, error)
	Negotiate(ctx context.Context, caller model.Caller, contractID string, terms negotiation.Terms) (model.Contract, error)
	ListContracts(ctx context.Context, caller model.Caller) ([]model.Contract, error)
	GetContract(ctx context.Context, caller model.Caller, contractID string) (model.Contract, error)
}

// ExchangeHandler serves the listing, bid and contract routes
type ExchangeHandler struct {
	listings  ListingService
	bids      BidService
	contracts ContractService
}

// NewExchangeHandler creates a handler over the three services
func NewExchangeHandler(listings ListingService, bids BidService, contracts ContractService) *ExchangeHandler {
	return &ExchangeHandler{listings: listings, bids: bids, contracts: contracts}
}
