package payment

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the payment service. Callers classify with
// errors.Is and map them to HTTP responses at the controller layer.
var (
	// ErrInvalidCategory: the requested race category is not in the fee table.
	ErrInvalidCategory = errors.New("invalid race category")

	// ErrGatewayUnavailable: the gateway order call failed or timed out.
	// Nothing was persisted locally.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	// ErrInvalidSignature: the gateway callback signature did not verify.
	ErrInvalidSignature = errors.New("invalid payment signature")

	// ErrUnknownOrder: no registration exists for the given order id.
	ErrUnknownOrder = errors.New("unknown order id")

	// ErrAlreadyFailed: the registration already reached the failed state;
	// a success callback for it is a terminal-state conflict, not a replay.
	ErrAlreadyFailed = errors.New("registration already marked failed")

	// ErrLogWrite: the failure-log append itself failed.
	ErrLogWrite = errors.New("failed to write payment failure log")

	// ErrStorageUnavailable: a read against the registration store failed.
	ErrStorageUnavailable = errors.New("registration storage unavailable")
)

// PersistenceError reports that a gateway order was minted but the local
// registration could not be saved. The order exists at the gateway with no
// matching row, so it carries the order id for manual reconciliation.
type PersistenceError struct {
	OrderID string
	Err     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("gateway order %s minted but registration not persisted: %v", e.OrderID, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
