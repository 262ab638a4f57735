package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is the machine-readable error code surfaced to callers.
type Code string

const (
	// Input errors — caller mistake, never worth retrying.
	CodeInvalidItems     Code = "InvalidItems"
	CodeTooManyItems     Code = "TooManyItems"
	CodeInvalidProductID Code = "InvalidProductId"
	CodeInvalidQuantity  Code = "InvalidQuantity"

	// Referential errors.
	CodeProductNotFound Code = "ProductNotFound"
	CodeVariantMismatch Code = "VariantMismatch"

	// Business-rule errors; both carry the offending id as metadata.
	CodeInsufficientVariantStock Code = "InsufficientVariantStock"
	CodeInsufficientProductStock Code = "InsufficientProductStock"

	// Transient infra failure; the whole request is safe to retry.
	CodeOrderTransactionFailed Code = "OrderTransactionFailed"

	// Supplemented read surface.
	CodeOrderNotFound Code = "OrderNotFound"
	CodeUnauthorized  Code = "Unauthorized"
)

type Error struct {
	Code      Code
	Message   string
	ProductID string
	VariantID string
	Cause     error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

func (e *Error) WithProduct(id string) *Error {
	e.ProductID = id
	return e
}

func (e *Error) WithVariant(id string) *Error {
	e.VariantID = id
	return e
}

func As(err error) (*Error, bool) {
	var ae *Error
	ok := errors.As(err, &ae)
	return ae, ok
}

// HTTPStatus is the only place error codes meet HTTP. Client errors map
// to 400, missing resources to 404, transient failures to 503.
func HTTPStatus(code Code) int {
	switch code {
	case CodeInvalidItems, CodeTooManyItems, CodeInvalidProductID, CodeInvalidQuantity,
		CodeProductNotFound, CodeVariantMismatch,
		CodeInsufficientVariantStock, CodeInsufficientProductStock:
		return http.StatusBadRequest
	case CodeOrderNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeOrderTransactionFailed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
