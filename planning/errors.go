/*
errors.go - Centralized error types for the planning engine

PURPOSE:
  All engine error types in one place for consistency and discoverability.
  Domain packages wrap these errors with additional context.

ERROR CATEGORIES:
  1. Rule errors - Malformed recurrence inputs (non-fatal: empty projection)
  2. Lookup errors - Missing plans/cursors
  3. Fetch errors - Propagated unchanged from the Repository

USAGE:
    if errors.Is(err, planning.ErrPlanNotFound) {
        ...
    }

SEE ALSO:
  - engine.go: Propagates Repository failures without partial projection
  - maintenance/errors.go: Domain-level wrappers
*/
package planning

import (
	"errors"
	"fmt"
)

var (
	// ErrPlanNotFound is returned when a referenced plan doesn't exist.
	ErrPlanNotFound = errors.New("maintenance plan not found")

	// ErrCursorNotFound is returned when a plan has no schedule cursor.
	ErrCursorNotFound = errors.New("schedule cursor not found")

	// ErrNotSchedulable is returned on operations that require an active plan
	// with a positive frequency. Projection itself never returns this: an
	// unschedulable plan simply yields an empty sequence.
	ErrNotSchedulable = errors.New("plan is not auto-schedulable")

	// ErrInvalidDate is returned for malformed date input at the boundary.
	ErrInvalidDate = errors.New("invalid date")
)

// UnknownWeekdayError reports an unrecognized weekday name in a
// schedule_days_of_week value.
type UnknownWeekdayError struct {
	Name string
}

func (e *UnknownWeekdayError) Error() string {
	return fmt.Sprintf("unknown weekday name %q", e.Name)
}

func (e *UnknownWeekdayError) Unwrap() error { return ErrInvalidDate }

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPlanNotFound) || errors.Is(err, ErrCursorNotFound)
}
