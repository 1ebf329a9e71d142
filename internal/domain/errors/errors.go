package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest         = errors.New("invalid request")
	ErrInvalidLineItem        = errors.New("invalid line item")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrProductNotFound        = errors.New("product not found")
	ErrOrderNotFound          = errors.New("order not found")
	ErrInvalidStatus          = errors.New("invalid order status")
	ErrIllegalTransition      = errors.New("illegal status transition")
	ErrGatewayUnavailable     = errors.New("payment gateway unavailable")
	ErrGatewayDeclined        = errors.New("payment gateway declined")
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrPersistence            = errors.New("persistence failure")
	ErrForbidden              = errors.New("forbidden")
)

// LineItemError reports which cart entry failed validation.
type LineItemError struct {
	Index  int
	Reason string
	Err    error
}

func (e *LineItemError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s at index %d", e.Err, e.Index)
	}
	return fmt.Sprintf("%s at index %d: %s", e.Err, e.Index, e.Reason)
}

func (e *LineItemError) Unwrap() error {
	return e.Err
}

// TransitionError is returned when the state machine rejects a move.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("order cannot move from %q to %q", e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrIllegalTransition
}
