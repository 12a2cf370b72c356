package exchangeerrors

import "errors"

// Repository-level errors
var (
	ErrListingNotFound  = errors.New("listing not found")
	ErrBidNotFound      = errors.New("bid not found")
	ErrContractNotFound = errors.New("contract not found")
	ErrContractConflict = errors.New("contract changed concurrently")
)

// authorization errors
var (
	ErrForbidden       = errors.New("caller cannot access this resource")
	ErrMissingIdentity = errors.New("missing caller identity")
	ErrMissingSession  = errors.New("missing session id")
)

// validation errors
var (
	ErrInvalidListing  = errors.New("invalid listing")
	ErrInvalidBid      = errors.New("invalid bid")
	ErrInvalidContract = errors.New("invalid contract update")
)

// state machine errors
var (
	ErrContractFinal = errors.New("contract already confirmed")
)

// IsNotFound reports whether err refers to a missing listing, bid or contract
func IsNotFound(err error) bool {
	return errors.Is(err, ErrListingNotFound) ||
		errors.Is(err, ErrBidNotFound) ||
		errors.Is(err, ErrContractNotFound)
}
