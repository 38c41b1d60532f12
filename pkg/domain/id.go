package domain

import "github.com/google/uuid"

// ID uniquely identifies an entity of any type.
// It wraps uuid.UUID to keep identifiers opaque at the domain layer.
type ID uuid.UUID

// NewID returns a fresh random identifier.
func NewID() ID { return ID(uuid.New()) }

// ParseID parses the canonical textual form of an ID.
func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ID{}, invalid("id", "must be a valid UUID")
	}

	return ID(u), nil
}

// String returns the canonical textual form of the ID.
func (id ID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether the ID was never assigned.
func (id ID) IsZero() bool { return id == ID{} }

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
