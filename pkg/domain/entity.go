package domain

import (
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// Entity is the contract shared by every domain object that repositories store.
type Entity interface {
	// EntityID returns the immutable identifier assigned at creation.
	EntityID() ID
	// Validate returns a *ValidationError naming the first violated constraint.
	Validate() error
	// Update applies patch, validates the result and refreshes UpdatedAt.
	Update(patch Patch) error
	// Attribute returns the value of the named attribute as seen by
	// attribute lookups. References are exposed by ID (e.g. "owner_id").
	Attribute(name string) (any, bool)
}

// Base carries identity and lifecycle timestamps. It is embedded by every entity.
type Base struct {
	// ID is generated at creation and never changes.
	ID ID
	// CreatedAt is the creation time and never changes.
	CreatedAt time.Time
	// UpdatedAt is advanced on every successful mutation; it is never before CreatedAt.
	UpdatedAt time.Time
}

// now is truncated to microseconds so timestamps survive a PostgreSQL round trip.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func newBase() Base {
	t := now()

	return Base{ID: NewID(), CreatedAt: t, UpdatedAt: t}
}

// EntityID implements Entity.
func (b *Base) EntityID() ID { return b.ID }

// Touch sets UpdatedAt to the current time. UpdatedAt never moves backwards
// and never precedes CreatedAt.
func (b *Base) Touch() {
	t := now()
	if t.Before(b.CreatedAt) {
		t = b.CreatedAt
	}
	if t.Before(b.UpdatedAt) {
		t = b.UpdatedAt
	}
	b.UpdatedAt = t
}

func (b *Base) attribute(name string) (any, bool) {
	switch name {
	case "id":
		return b.ID, true
	case "created_at":
		return b.CreatedAt, true
	case "updated_at":
		return b.UpdatedAt, true
	}

	return nil, false
}

// Patch maps attribute names to new values. Keys naming identity or audit
// fields and keys that are not attributes of the target entity are ignored.
type Patch map[string]any

var protectedKeys = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// each calls set for every non-protected key in a stable order, stopping at
// the first error.
func (p Patch) each(set func(key string, value any) error) error {
	keys := make([]string, 0, len(p))
	for k := range p {
		if !protectedKeys[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := set(k, p[k]); err != nil {
			return err
		}
	}

	return nil
}

// stagedUpdate applies patch to a copy of *target, validates the copy and
// commits it only when validation passes, so a failed update leaves the
// entity untouched.
func stagedUpdate[T any, P interface {
	*T
	Validate() error
	Touch()
	set(key string, value any) error
}](target P, patch Patch) error {
	staged := *target
	sp := P(&staged)
	if err := patch.each(sp.set); err != nil {
		return err
	}
	if err := sp.Validate(); err != nil {
		return err
	}
	sp.Touch()
	*target = staged

	return nil
}

func asString(field string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", invalid(field, "must be a string")
	}

	return s, nil
}

func asBool(field string, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, invalid(field, "must be a boolean")
	}

	return b, nil
}

func asFloat(field string, v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	}

	return 0, invalid(field, "must be a number")
}

func asInt(field string, v any) (int, error) {
	f, err := asFloat(field, v)
	if err != nil {
		return 0, invalid(field, "must be an integer")
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, invalid(field, "must be an integer")
	}

	return int(f), nil
}

func checkText(field, value string, required bool, maxLen int) error {
	if required && isBlank(value) {
		return invalid(field, "is required")
	}
	if maxLen > 0 && utf8.RuneCountInString(value) > maxLen {
		return invalid(field, "must be at most %d characters", maxLen)
	}

	return nil
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }
