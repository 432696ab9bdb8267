// Package apperror defines user-facing errors shared by the HTTP and gRPC boundaries.
package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/grpc/codes"
)

// Kind classifies an APIError for boundary mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
	KindConflict
	KindStorage
	KindPayment
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindConflict:
		return "conflict"
	case KindStorage:
		return "storage"
	case KindPayment:
		return "payment"
	default:
		return "internal"
	}
}

// APIError is an error that can be shown to the user as is.
// Two APIErrors match with errors.Is when their codes are equal.
type APIError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an APIError with the same code.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// HTTPStatus returns the HTTP status code for the error kind.
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindPayment:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

// GRPCCode returns the gRPC status code for the error kind.
func (e *APIError) GRPCCode() codes.Code {
	switch e.Kind {
	case KindValidation:
		return codes.InvalidArgument
	case KindNotFound:
		return codes.NotFound
	case KindUnauthorized:
		return codes.PermissionDenied
	case KindConflict:
		return codes.Aborted
	case KindPayment:
		return codes.FailedPrecondition
	case KindStorage:
		return codes.Unavailable
	default:
		return codes.Internal
	}
}

// As returns the APIError in err's chain, if any.
func As(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsKind reports whether err carries an APIError of the given kind.
func IsKind(err error, kind Kind) bool {
	apiErr, ok := As(err)
	return ok && apiErr.Kind == kind
}

// ErrTokenInvalidOrExpired is returned when a password reset token does not match or is past its expiry.
var ErrTokenInvalidOrExpired = &APIError{
	Kind:    KindValidation,
	Code:    "token_invalid_or_expired",
	Message: "password reset link is invalid or has expired",
}

func NewErrValidation(message string) *APIError {
	return &APIError{Kind: KindValidation, Code: "validation_failed", Message: message}
}

func NewErrInvalidCredentials() *APIError {
	return &APIError{Kind: KindValidation, Code: "invalid_credentials", Message: "invalid email or password"}
}

func NewErrEmailIsTaken(email string) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Code:    "email_taken",
		Message: fmt.Sprintf("email %s exists already, please pick a different one", email),
	}
}

func NewErrProductNotFound(id fmt.Stringer) *APIError {
	return &APIError{Kind: KindNotFound, Code: "product_not_found", Message: fmt.Sprintf("product %s not found", id)}
}

func NewErrOrderNotFound(id fmt.Stringer) *APIError {
	return &APIError{Kind: KindNotFound, Code: "order_not_found", Message: fmt.Sprintf("order %s not found", id)}
}

func NewErrNotOwner() *APIError {
	return &APIError{Kind: KindUnauthorized, Code: "not_owner", Message: "you are not allowed to modify this resource"}
}

func NewErrEmptyCart() *APIError {
	return &APIError{Kind: KindValidation, Code: "empty_cart", Message: "your cart is empty"}
}

func NewErrCheckoutInProgress() *APIError {
	return &APIError{Kind: KindConflict, Code: "checkout_in_progress", Message: "checkout already in progress"}
}

// ErrPaymentUncertain matches payment failures where the processor may still
// have charged the card: timeouts, network errors and processor outages.
// A retry must reuse the same order so the idempotency key is replayed.
var ErrPaymentUncertain = &APIError{
	Kind:    KindPayment,
	Code:    "payment_uncertain",
	Message: "we could not confirm your payment, please submit the order again",
}

// NewErrPayment reports a definite decline: nothing was charged.
func NewErrPayment(message string, err error) *APIError {
	return &APIError{Kind: KindPayment, Code: "payment_failed", Message: message, Err: err}
}

func NewErrPaymentUncertain(message string, err error) *APIError {
	return &APIError{Kind: KindPayment, Code: ErrPaymentUncertain.Code, Message: message, Err: err}
}

func NewErrStorage(op string, err error) *APIError {
	return &APIError{Kind: KindStorage, Code: "storage_failed", Message: fmt.Sprintf("failed to %s", op), Err: err}
}
