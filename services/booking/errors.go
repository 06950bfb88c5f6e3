// File: services/booking/errors.go
package booking

import (
	"fmt"
	"time"
)

// ValidationError signals a booking request missing a required field.
type ValidationError struct {
	Field string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// SlotUnavailableError signals that the submitted slot was taken between slot
// computation and submission. The caller should recompute and re-select.
type SlotUnavailableError struct {
	Start time.Time
}

func (e SlotUnavailableError) Error() string {
	return fmt.Sprintf("slot at %s is no longer available", e.Start.UTC().Format(time.RFC3339))
}
