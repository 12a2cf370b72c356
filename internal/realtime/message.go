package realtime

import (
	model "freight-exchange/internal/models"
)

// Kind discriminates the payload carried by an Envelope
type Kind string

const (
	KindBidUpdate      Kind = "bid_update"
	KindBidRemoved     Kind = "bid_removed"
	KindListingCreated Kind = "listing_created"
	KindListingRemoved Kind = "listing_removed"
	KindLikeUpdate     Kind = "like_update"
	KindContractUpdate Kind = "contract_update"
)

// Envelope is the only shape written to client connections.
// Clients switch on Kind instead of sniffing payload fields.
type Envelope struct {
	Kind    Kind `json:"kind"`
	Payload any  `json:"payload"`
}

// BidUpdate carries a bid for a listing. Bid is nil when the listing has no
// bids left (used for lowest-bid announcements after a removal).
type BidUpdate struct {
	ListingID string     `json:"listing_id"`
	Bid       *model.Bid `json:"bid"`
}

// BidRemoved announces that a bid disappeared
type BidRemoved struct {
	BidID     string `json:"bid_id"`
	ListingID string `json:"listing_id"`
}

// ListingRemoved announces that a listing is gone; ContractID is set when the
// listing was converted into a contract.
type ListingRemoved struct {
	ListingID  string `json:"listing_id"`
	ContractID string `json:"contract_id,omitempty"`
}

// LikeUpdate announces a like toggle on a listing
type LikeUpdate struct {
	ListingID string `json:"listing_id"`
	Liked     bool   `json:"liked"`
}

// NewBidUpdate wraps a bid (or nil for "no bids") for listingID
func NewBidUpdate(listingID string, bid *model.Bid) Envelope {
	return Envelope{Kind: KindBidUpdate, Payload: BidUpdate{ListingID: listingID, Bid: bid}}
}

// NewBidRemoved builds a removal notice
func NewBidRemoved(bidID, listingID string) Envelope {
	return Envelope{Kind: KindBidRemoved, Payload: BidRemoved{BidID: bidID, ListingID: listingID}}
}

// NewListingCreated wraps a freshly posted listing
func NewListingCreated(listing model.Listing) Envelope {
	return Envelope{Kind: KindListingCreated, Payload: listing}
}

// NewListingRemoved builds a listing removal notice
func NewListingRemoved(listingID, contractID string) Envelope {
	return Envelope{Kind: KindListingRemoved, Payload: ListingRemoved{ListingID: listingID, ContractID: contractID}}
}

// NewLikeUpdate builds a like notice
func NewLikeUpdate(listingID string, liked bool) Envelope {
	return Envelope{Kind: KindLikeUpdate, Payload: LikeUpdate{ListingID: listingID, Liked: liked}}
}

// NewContractUpdate wraps the full current state of a contract
func NewContractUpdate(contract model.Contract) Envelope {
	return Envelope{Kind: KindContractUpdate, Payload: contract}
}
