package kernel

import (
	"errors"

	"mfgorders/internal/pkg/errs"
)

// Actor is the caller of a command or query. It is resolved once per request
// by the session collaborator and passed explicitly; nothing in the core reads
// the caller from ambient state.
//
// PartyID links manufacturer and client sessions to the manufacturer or client
// record they act for. Staff actors have no party.
type Actor struct {
	id      UUID
	role    Role
	email   string
	partyID *UUID
}

// NewActor builds an actor; manufacturers and clients must carry a party.
func NewActor(id UUID, role Role, email string, partyID *UUID) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	if (role == Manufacturer || role == Client) && partyID == nil {
		return Actor{}, errs.NewValueIsRequiredError("party for " + role.String())
	}
	if partyID != nil {
		if err := partyID.Validate(); err != nil {
			return Actor{}, err
		}
		p := *partyID
		partyID = &p
	}
	return Actor{id: id, role: role, email: email, partyID: partyID}, nil
}

func (a Actor) ID() UUID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

func (a Actor) Email() string {
	return a.email
}

// PartyID returns a copy of the party identifier, nil for staff.
func (a Actor) PartyID() *UUID {
	if a.partyID == nil {
		return nil
	}
	p := *a.partyID
	return &p
}

// ActsFor reports whether the actor represents the given party.
func (a Actor) ActsFor(party *UUID) bool {
	return a.partyID != nil && party != nil && a.partyID.IsEqual(*party)
}

func (a Actor) Validate() error {
	return errors.Join(a.id.Validate(), a.role.Validate())
}
