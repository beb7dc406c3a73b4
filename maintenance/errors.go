package maintenance

import (
	"errors"
	"fmt"
)

var (
	// ErrEquipmentNotFound is returned when a referenced asset doesn't exist.
	ErrEquipmentNotFound = errors.New("equipment not found")

	// ErrWorkOrderNotFound is returned when a referenced order doesn't exist.
	ErrWorkOrderNotFound = errors.New("work order not found")

	// ErrInvalidTransition is returned for disallowed lifecycle moves.
	ErrInvalidTransition = errors.New("invalid work order status transition")
)

// InvalidTransitionError carries the attempted lifecycle move.
type InvalidTransitionError struct {
	From WorkOrderStatus
	To   WorkOrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition work order from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }
