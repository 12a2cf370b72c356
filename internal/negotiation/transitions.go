// Package negotiation defines the contract state machine.
//
// Valid status graph:
//
//	pending_consignee ──confirm (consignee, dates)──► confirmed
//	        │
//	        └──negotiate (consignee)──► pending_shipper ──confirm (shipper)──► confirmed
//	                                        ▲      │
//	                                        └──────┘ negotiate (consignee)
//
// confirmed is terminal.
package negotiation

import (
	"fmt"

	"freight-exchange/internal/exchangeerrors"
	model "freight-exchange/internal/models"
	"freight-exchange/internal/permissions"
)

// Action is a state machine input
type Action string

const (
	ActionConfirm   Action = "confirm"
	ActionNegotiate Action = "negotiate"
)

type edge struct {
	from   model.ContractStatus
	action Action
	party  permissions.Party
}

// validTransitions lists every allowed (from, action, party) → to.
var validTransitions = map[edge]model.ContractStatus{
	{model.StatusPendingConsignee, ActionConfirm, permissions.PartyConsignee}:   model.StatusConfirmed,
	{model.StatusPendingShipper, ActionConfirm, permissions.PartyShipper}:       model.StatusConfirmed,
	{model.StatusPendingConsignee, ActionNegotiate, permissions.PartyConsignee}: model.StatusPendingShipper,
	{model.StatusPendingShipper, ActionNegotiate, permissions.PartyConsignee}:   model.StatusPendingShipper,
	// confirmed has no outgoing edges
}

// Next returns the status reached when party performs action on a contract in
// status from. Non-parties and parties whose turn it is not get ErrForbidden;
// any action on a terminal contract gets ErrContractFinal.
func Next(from model.ContractStatus, action Action, party permissions.Party) (model.ContractStatus, error) {
	if party == permissions.PartyNone {
		return "", fmt.Errorf("%w - not a party to the contract", exchangeerrors.ErrForbidden)
	}
	if IsTerminal(from) {
		return "", exchangeerrors.ErrContractFinal
	}
	to, ok := validTransitions[edge{from, action, party}]
	if !ok {
		return "", fmt.Errorf("%w - %s cannot %s a contract in %s", exchangeerrors.ErrForbidden, party, action, from)
	}
	return to, nil
}

// IsTerminal reports whether no transition leaves status
func IsTerminal(status model.ContractStatus) bool {
	for e := range validTransitions {
		if e.from == status {
			return false
		}
	}
	return true
}
