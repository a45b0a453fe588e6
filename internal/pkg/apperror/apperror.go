package apperror

import (
	"errors"
	"fmt"
)

// Kind is the stable, machine-checkable category of a failure.
type Kind string

const (
	KindUnauthenticated     Kind = "Unauthenticated"
	KindForbidden           Kind = "Forbidden"
	KindNotFound            Kind = "NotFound"
	KindInvalidArgument     Kind = "InvalidArgument"
	KindConflict            Kind = "Conflict"
	KindInsufficientBalance Kind = "InsufficientBalance"
	KindPartialFailure      Kind = "PartialFailure"
	KindInternal            Kind = "Internal"
)

// Reasons carried by Conflict, InvalidArgument and PartialFailure errors.
const (
	ReasonAlreadyPending     = "AlreadyPending"
	ReasonAlreadyProcessed   = "AlreadyProcessed"
	ReasonEmptyCart          = "EmptyCart"
	ReasonPriceMismatch      = "PriceMismatch"
	ReasonItemCreationFailed = "ItemCreationFailed"
	ReasonLedgerWriteFailed  = "LedgerWriteFailed"
	ReasonItemUpdateFailed   = "ItemUpdateFailed"
	ReasonInvalidTransition  = "InvalidTransition"
	ReasonDuplicate          = "Duplicate"
)

type Error struct {
	Kind    Kind
	Reason  string
	Message string
	Details map[string]interface{}
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by kind and, when the target sets one, by reason.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Reason == "" || t.Reason == e.Reason
}

// Sentinels usable with errors.Is.
var (
	ErrUnauthenticated     = &Error{Kind: KindUnauthenticated}
	ErrForbidden           = &Error{Kind: KindForbidden}
	ErrNotFound            = &Error{Kind: KindNotFound}
	ErrInvalidArgument     = &Error{Kind: KindInvalidArgument}
	ErrConflict            = &Error{Kind: KindConflict}
	ErrInsufficientBalance = &Error{Kind: KindInsufficientBalance}
	ErrPartialFailure      = &Error{Kind: KindPartialFailure}
	ErrInternal            = &Error{Kind: KindInternal}
)

func Unauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func InvalidArgument(message string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: message}
}

func InvalidArgumentReason(reason, message string) *Error {
	return &Error{Kind: KindInvalidArgument, Reason: reason, Message: message}
}

func Conflict(reason, message string) *Error {
	return &Error{Kind: KindConflict, Reason: reason, Message: message}
}

func PartialFailure(reason, message string, err error) *Error {
	return &Error{Kind: KindPartialFailure, Reason: reason, Message: message, Err: err}
}

// Internal wraps an unexpected store or infrastructure error. The wrapped
// error is never shown to clients.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// InternalReason is Internal with a machine-readable reason for the failed step.
func InternalReason(reason string, err error) *Error {
	return &Error{Kind: KindInternal, Reason: reason, Message: "internal server error", Err: err}
}

// InsufficientBalance reports the amount the caller is short by.
func InsufficientBalance(required, current int64) *Error {
	return &Error{
		Kind:    KindInsufficientBalance,
		Message: "insufficient balance",
		Details: map[string]interface{}{
			"required": required,
			"current":  current,
			"shortage": required - current,
		},
	}
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// As extracts the *Error from err, wrapping foreign errors as Internal.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
