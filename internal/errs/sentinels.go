// Package errs contains sentinel errors shared across the service and
// handler layers so callers can distinguish failure kinds with errors.Is.
package errs

import "errors"

// Validation failures, rejected before any state is read.
var (
	ErrInvalidContentPointer = errors.New("content pointer is empty")
	ErrInvalidPrice          = errors.New("price must be greater than zero")
	ErrInvalidDisplayName    = errors.New("display name is empty")
)

// Lookup and authorization failures.
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrSellerNotFound   = errors.New("seller not found")
	ErrNotOwner         = errors.New("caller does not own this product")
	ErrNotPlatformOwner = errors.New("caller is not the platform owner")
)

// State-conflict failures, rejected after a consistency check.
var (
	ErrNoStateChange     = errors.New("product is already in the requested state")
	ErrProductInactive   = errors.New("product is not active")
	ErrSelfPurchase      = errors.New("sellers cannot purchase their own products")
	ErrAlreadyOwned      = errors.New("buyer already owns this product")
	ErrNothingToWithdraw = errors.New("no balance to withdraw")
	ErrFeeTooHigh        = errors.New("fee rate exceeds the maximum")
)

// ErrPaymentFailed wraps token transfer failures; the settlement aborts with
// no other state change.
var ErrPaymentFailed = errors.New("token payment failed")
