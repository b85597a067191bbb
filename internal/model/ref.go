package model

import "encoding/json"

// RefState tells whether an entity identifier was assigned by the server.
type RefState int

const (
	// RefConfirmed marks an identifier issued by the backend.
	RefConfirmed RefState = iota
	// RefPending marks a temporary identifier of an optimistically created entity.
	RefPending
)

func (s RefState) String() string {
	switch s {
	case RefConfirmed:
		return "confirmed"
	case RefPending:
		return "pending"
	default:
		return "unknown"
	}
}

// Ref identifies an entity inside a store. It is either Confirmed(id) or
// Pending(tempID); the zero value is Confirmed("").
type Ref struct {
	id    string
	state RefState
}

// Confirmed returns a server-assigned reference.
func Confirmed(id string) Ref { return Ref{id: id, state: RefConfirmed} }

// Pending returns a reference carrying a temporary identifier.
func Pending(tempID string) Ref { return Ref{id: tempID, state: RefPending} }

// ID returns the identifier regardless of state.
func (r Ref) ID() string { return r.id }

// State returns whether the reference is confirmed or pending.
func (r Ref) State() RefState { return r.state }

// IsPending reports whether the server has not assigned an identity yet.
func (r Ref) IsPending() bool { return r.state == RefPending }

// IsZero reports whether the reference carries no identifier.
func (r Ref) IsZero() bool { return r.id == "" }

func (r Ref) String() string { return r.id }

// MarshalJSON encodes the reference as its plain identifier so payloads keep
// the canonical "id" field.
func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.id)
}
