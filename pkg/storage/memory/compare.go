package memory

import (
	"time"

	"hbnb/pkg/domain"

	"github.com/google/uuid"
)

// sameValue compares an attribute value with a lookup value the way an SQL
// equality filter would: numbers by value whatever their Go type, IDs against
// their textual form and times by instant.
func sameValue(attr, value any) bool {
	switch a := attr.(type) {
	case domain.ID:
		switch v := value.(type) {
		case domain.ID:
			return a == v
		case uuid.UUID:
			return a == domain.ID(v)
		case string:
			id, err := domain.ParseID(v)

			return err == nil && id == a
		}

		return false
	case time.Time:
		v, ok := value.(time.Time)

		return ok && a.Equal(v)
	}

	if af, ok := number(attr); ok {
		vf, ok := number(value)

		return ok && af == vf
	}

	return attr == value
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
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
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}

	return 0, false
}
