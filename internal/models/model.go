package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Role is the subscription tag carried by an authenticated caller
type Role string

const (
	RoleShipper   Role = "shipper"
	RoleCarrier   Role = "carrier"
	RoleForwarder Role = "forwarder"
	RoleLogistic  Role = "logistic"
)

// ParseRole converts a raw role tag, returning an error for unknown values
func ParseRole(s string) (Role, error) {
	r := Role(s)
	switch r {
	case RoleShipper, RoleCarrier, RoleForwarder, RoleLogistic:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Caller is the already-authenticated identity performing a request.
// SessionID distinguishes concurrent client instances of the same identity.
type Caller struct {
	Identity  string `json:"identity"`
	Role      Role   `json:"role"`
	SessionID string `json:"session_id"`
}

// Validity is how long a listing or bid stays open
type Validity string

const (
	Validity1Day   Validity = "1days"
	Validity3Days  Validity = "3days"
	Validity7Days  Validity = "7days"
	Validity14Days Validity = "14days"
	Validity30Days Validity = "30days"
)

var validityDays = map[Validity]int{
	Validity1Day:   1,
	Validity3Days:  3,
	Validity7Days:  7,
	Validity14Days: 14,
	Validity30Days: 30,
}

// Valid reports whether v is one of the known windows
func (v Validity) Valid() bool {
	_, ok := validityDays[v]
	return ok
}

// Duration returns the window length, zero for unknown values
func (v Validity) Duration() time.Duration {
	return time.Duration(validityDays[v]) * 24 * time.Hour
}

// LatLng is a geographic point
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geometry holds route endpoints
type Geometry struct {
	Origin      LatLng `json:"origin"`
	Destination LatLng `json:"destination"`
}

// Pallet describes palletised cargo. Type and Number are set together or not at all.
type Pallet struct {
	Type   string `json:"type,omitempty"`
	Number int    `json:"number,omitempty"`
}

// Size describes cargo dimensions; only tonnage is mandatory
type Size struct {
	Tonnage float64 `json:"tonnage"`
	Volume  float64 `json:"volume,omitempty"`
	Height  float64 `json:"height,omitempty"`
	Width   float64 `json:"width,omitempty"`
	Length  float64 `json:"length,omitempty"`
}

// Truck describes the requested vehicle
type Truck struct {
	Regime   string   `json:"regime"`
	Types    []string `json:"types,omitempty"`
	Features []string `json:"features,omitempty"`
}

// Freight is the cargo/truck description of a listing. Contracts keep a copy.
type Freight struct {
	Origin          string    `json:"origin"`
	Destination     string    `json:"destination"`
	Distance        float64   `json:"distance"`
	Geometry        *Geometry `json:"geometry,omitempty"`
	Details         string    `json:"details,omitempty"`
	PaymentDeadline string    `json:"payment_deadline,omitempty"` // 1days|14days|30days|60days|90days
	Pallet          Pallet    `json:"pallet"`
	Size            Size      `json:"size"`
	Truck           Truck     `json:"truck"`
}

// Clone returns a deep copy so snapshots never share slices with the source
func (f Freight) Clone() Freight {
	out := f
	if f.Geometry != nil {
		g := *f.Geometry
		out.Geometry = &g
	}
	out.Truck.Types = append([]string(nil), f.Truck.Types...)
	out.Truck.Features = append([]string(nil), f.Truck.Features...)
	return out
}

// Listing is a freight load posted for bidding
type Listing struct {
	ListingID string           `json:"listing_id"`
	OwnerID   string           `json:"owner_id"`
	Freight   Freight          `json:"freight"`
	Budget    *decimal.Decimal `json:"budget,omitempty"`
	Validity  Validity         `json:"validity"`
	IsLiked   bool             `json:"is_liked"`
	CreatedAt time.Time        `json:"created_at"`
}

// Bid is a carrier's priced offer on a listing.
// At most one bid exists per (ListingID, BidderID).
type Bid struct {
	BidID     string          `json:"bid_id"`
	ListingID string          `json:"listing_id"`
	BidderID  string          `json:"bidder_id"`
	Price     decimal.Decimal `json:"price"`
	Validity  Validity        `json:"validity"`
	CreatedAt time.Time       `json:"created_at"`

	// Seq is the store-assigned write order, used to break price ties.
	Seq int64 `json:"-"`
}

// ExpiresAt is the end of the bid's validity window
func (b Bid) ExpiresAt() time.Time {
	return b.CreatedAt.Add(b.Validity.Duration())
}

// Scoreboard is derived from the live bids of one listing and never stored
type Scoreboard struct {
	LowestBid  *Bid `json:"lowest_bid"`
	CallerRank *int `json:"caller_rank"`
}

// ContractStatus is the negotiation sub-state of a contract
type ContractStatus string

const (
	StatusPendingConsignee ContractStatus = "pending_consignee"
	StatusPendingShipper   ContractStatus = "pending_shipper"
	StatusConfirmed        ContractStatus = "confirmed"
)

// TransportationDate is the agreed pickup/delivery window
type TransportationDate struct {
	Pickup   time.Time `json:"pickup"`
	Delivery time.Time `json:"delivery"`
}

// Contract is formed when a listing owner accepts a bid
type Contract struct {
	ContractID         string              `json:"contract_id"`
	ListingID          string              `json:"listing_id"`
	Freight            Freight             `json:"freight"`
	ShipperID          string              `json:"shipper_id"`
	ConsigneeID        string              `json:"consignee_id"`
	Price              decimal.Decimal     `json:"price"`
	TransportationDate *TransportationDate `json:"transportation_date,omitempty"`
	Status             ContractStatus      `json:"status"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}
