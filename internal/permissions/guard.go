// Package permissions holds the ownership and role predicates consulted
// before any mutation. Predicates are pure; callers turn a false result
// into exchangeerrors.ErrForbidden.
package permissions

import model "freight-exchange/internal/models"

// Action is something a role may or may not be entitled to do
type Action string

const (
	ActionPostListing Action = "post-listing"
	ActionPlaceBid    Action = "place-bid"
)

var roleActions = map[model.Role][]Action{
	model.RoleShipper:   {ActionPostListing},
	model.RoleForwarder: {ActionPostListing},
	model.RoleCarrier:   {ActionPlaceBid},
	model.RoleLogistic:  {ActionPlaceBid},
}

// RoleAllows reports whether role is entitled to perform action
func RoleAllows(role model.Role, action Action) bool {
	for _, a := range roleActions[role] {
		if a == action {
			return true
		}
	}
	return false
}

// IsListingOwner reports whether identity posted the listing
func IsListingOwner(listing model.Listing, identity string) bool {
	return identity != "" && listing.OwnerID == identity
}

// IsBidOwner reports whether identity placed the bid
func IsBidOwner(bid model.Bid, identity string) bool {
	return identity != "" && bid.BidderID == identity
}

// IsContractParty reports whether identity is the shipper or the consignee
func IsContractParty(contract model.Contract, identity string) bool {
	return identity != "" && (contract.ShipperID == identity || contract.ConsigneeID == identity)
}

// Party names the side of a contract an identity is on
type Party string

const (
	PartyNone      Party = ""
	PartyShipper   Party = "shipper"
	PartyConsignee Party = "consignee"
)

// ContractParty returns which side of the contract identity is on
func ContractParty(contract model.Contract, identity string) Party {
	switch {
	case identity == "":
		return PartyNone
	case contract.ShipperID == identity:
		return PartyShipper
	case contract.ConsigneeID == identity:
		return PartyConsignee
	}
	return PartyNone
}
