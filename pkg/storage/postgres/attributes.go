package postgres

import (
	"math"
	"time"

	"hbnb/pkg/domain"

	"github.com/google/uuid"
)

type columnKind int

const (
	kindText columnKind = iota
	kindBool
	kindFloat
	kindInt
	kindUUID
	kindTime
)

// Attributes that can be looked up by GetByAttribute, per table. Anything not
// listed here never matches, mirroring the in-memory lookup over
// Entity.Attribute.
var (
	commonColumns = map[string]columnKind{
		"id":         kindUUID,
		"created_at": kindTime,
		"updated_at": kindTime,
	}
	userColumns = withCommon(map[string]columnKind{
		"first_name": kindText,
		"last_name":  kindText,
		"email":      kindText,
		"is_admin":   kindBool,
	})
	amenityColumns = withCommon(map[string]columnKind{
		"name": kindText,
	})
	placeColumns = withCommon(map[string]columnKind{
		"title":       kindText,
		"description": kindText,
		"location":    kindText,
		"price":       kindFloat,
		"latitude":    kindFloat,
		"longitude":   kindFloat,
		"owner_id":    kindUUID,
	})
	reviewColumns = withCommon(map[string]columnKind{
		"text":     kindText,
		"rating":   kindInt,
		"user_id":  kindUUID,
		"place_id": kindUUID,
	})
)

func withCommon(columns map[string]columnKind) map[string]columnKind {
	for k, v := range commonColumns {
		columns[k] = v
	}

	return columns
}

// normalize converts value into the Go type bound to a column of the given
// kind. ok is false when value can never equal such a column.
func normalize(kind columnKind, value any) (any, bool) {
	switch kind {
	case kindText:
		s, ok := value.(string)

		return s, ok
	case kindBool:
		b, ok := value.(bool)

		return b, ok
	case kindFloat:
		return toFloat(value)
	case kindInt:
		f, ok := toFloat(value)
		if !ok || f != math.Trunc(f) || math.IsInf(f, 0) {
			return nil, false
		}

		return int64(f), true
	case kindUUID:
		switch v := value.(type) {
		case domain.ID:
			return uuid.UUID(v), true
		case uuid.UUID:
			return v, true
		case string:
			id, err := uuid.Parse(v)

			return id, err == nil
		}
	case kindTime:
		t, ok := value.(time.Time)

		return t, ok
	}

	return nil, false
}

func toFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, !math.IsNaN(n)
	case float32:
		return float64(n), !math.IsNaN(float64(n))
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}

	return 0, false
}
