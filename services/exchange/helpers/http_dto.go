package helpers

import (
	"time"

	model "freight-exchange/internal/models"

	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateListingRequest struct {
	Freight  model.Freight    `json:"freight"`
	Budget   *decimal.Decimal `json:"budget"`
	Validity string           `json:"validity" binding:"omitempty,oneof=1days 3days 7days 14days 30days"`
}

type ListListingsQuery struct {
	Page       int     `form:"page" binding:"omitempty,min=1"`
	Regime     string  `form:"regime" binding:"omitempty,oneof=LTL FTL ANY"`
	MinTonnage float64 `form:"min_tonnage" binding:"omitempty,min=0"`
	MaxTonnage float64 `form:"max_tonnage" binding:"omitempty,min=0"`
}

type LikeRequest struct {
	Liked *bool `json:"liked" binding:"required"`
}

type PlaceBidRequest struct {
	Price    *decimal.Decimal `json:"price" binding:"required"`
	Validity string           `json:"validity" binding:"required,oneof=1days 3days 7days 14days 30days"`
}

type NegotiateBidRequest struct {
	Price *decimal.Decimal `json:"price" binding:"required"`
}

type TransportationDateRequest struct {
	Pickup   time.Time `json:"pickup" binding:"required"`
	Delivery time.Time `json:"delivery" binding:"required"`
}

type ConfirmContractRequest struct {
	TransportationDate *TransportationDateRequest `json:"transportation_date"`
}

type NegotiateContractRequest struct {
	Price              *decimal.Decimal           `json:"price" binding:"required"`
	TransportationDate *TransportationDateRequest `json:"transportation_date"`
}

// Dates converts the request body to the domain type, nil when absent
func (r *TransportationDateRequest) Dates() *model.TransportationDate {
	if r == nil {
		return nil
	}
	return &model.TransportationDate{Pickup: r.Pickup, Delivery: r.Delivery}
}

// Response DTOs

type BidResponse struct {
	BidID     string `json:"bid_id"`
	ListingID string `json:"listing_id"`
	BidderID  string `json:"bidder_id"`
	Price     string `json:"price"`
	Validity  string `json:"validity"`
	CreatedAt string `json:"created_at"`
	ExpiresAt string `json:"expires_at"`
}

type RemovedResponse struct {
	ID string `json:"id"`
}

// ToBidResponse flattens a bid for the wire
func ToBidResponse(bid model.Bid) BidResponse {
	return BidResponse{
		BidID:     bid.BidID,
		ListingID: bid.ListingID,
		BidderID:  bid.BidderID,
		Price:     bid.Price.String(),
		Validity:  string(bid.Validity),
		CreatedAt: bid.CreatedAt.UTC().Format(time.RFC3339),
		ExpiresAt: bid.ExpiresAt().UTC().Format(time.RFC3339),
	}
}
