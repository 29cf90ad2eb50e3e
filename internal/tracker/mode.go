package tracker

import (
	"fmt"

	"github.com/nextstep/nextstep-api/internal/db"
)

// Wire values the swipe client sends as swipeMode
const (
	WireApply  = 1
	WireIgnore = 2
)

// ParseMode converts the client's numeric swipe mode into a storable mode.
// Anything outside the two known values is rejected here, at the boundary;
// there is no "Unknown" fallback and no such row can ever be written.
func ParseMode(wire int) (db.Mode, error) {
	switch wire {
	case WireApply:
		return db.ModeApply, nil
	case WireIgnore:
		return db.ModeIgnore, nil
	default:
		return "", &ValidationError{
			Field:   "swipeMode",
			Message: fmt.Sprintf("unrecognized swipe mode %d", wire),
		}
	}
}
