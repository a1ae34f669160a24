package reconcile

import (
	"fmt"
)

// NoOpError is returned when neither an add list nor a remove list was supplied.
type NoOpError struct{}

func (e *NoOpError) Error() string {
	return "no fields provided for update"
}

// ConflictError is returned when an id appears in both the add and remove lists.
type ConflictError struct {
	IDs []int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("Conflict: Feature IDs present in both add and remove lists: %s", FormatIDs(e.IDs))
}
