package model

import (
	"errors"
	"fmt"
)

var (
	// ErrCoercion marks a record field that could not be converted to its typed form.
	ErrCoercion = errors.New("coercion failed")
	// ErrSourceUnavailable marks a failure of the upstream record source.
	ErrSourceUnavailable = errors.New("record source unavailable")
)

// CoercionError describes a line item (or item list) that could not be decoded.
// Item is the zero-based index in the order's item list, or -1 for order-level fields.
type CoercionError struct {
	OrderID string
	Item    int
	Field   string
	Value   any
}

func (e *CoercionError) Error() string {
	if e.Item < 0 {
		return fmt.Sprintf("order %q: field %q: cannot coerce %v (%T)", e.OrderID, e.Field, e.Value, e.Value)
	}
	if e.Value == nil {
		return fmt.Sprintf("order %q item %d: missing field %q", e.OrderID, e.Item, e.Field)
	}
	return fmt.Sprintf("order %q item %d: field %q: cannot coerce %v (%T)", e.OrderID, e.Item, e.Field, e.Value, e.Value)
}

func (e *CoercionError) Unwrap() error {
	return ErrCoercion
}
