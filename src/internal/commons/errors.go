package commons

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindNotFound          ErrorKind = "NOT_FOUND"
	KindUnauthorized      ErrorKind = "UNAUTHORIZED"
	KindInvalidState      ErrorKind = "INVALID_STATE"
	KindLimitExceeded     ErrorKind = "LIMIT_EXCEEDED"
	KindInsufficientFunds ErrorKind = "INSUFFICIENT_FUNDS"
	KindDuplicateResource ErrorKind = "DUPLICATE_RESOURCE"
	KindValidation        ErrorKind = "VALIDATION_ERROR"
	KindInternal          ErrorKind = "INTERNAL_ERROR"
)

// ErrRecordNotFound is returned by repositories; services translate it.
var ErrRecordNotFound = errors.New("Record not found")

var (
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidState      = errors.New("invalid state")
	ErrLimitExceeded     = errors.New("limit exceeded")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrDuplicateResource = errors.New("duplicate resource")
	ErrValidation        = errors.New("validation failed")
)

var (
	ErrCustomerNotFound    = fmt.Errorf("customer %w", ErrNotFound)
	ErrAccountNotFound     = fmt.Errorf("account %w", ErrNotFound)
	ErrCardNotFound        = fmt.Errorf("card %w", ErrNotFound)
	ErrTransactionNotFound = fmt.Errorf("transaction %w", ErrNotFound)
)

var kinds = []struct {
	sentinel error
	kind     ErrorKind
}{
	{ErrNotFound, KindNotFound},
	{ErrRecordNotFound, KindNotFound},
	{ErrUnauthorized, KindUnauthorized},
	{ErrInvalidState, KindInvalidState},
	{ErrLimitExceeded, KindLimitExceeded},
	{ErrInsufficientFunds, KindInsufficientFunds},
	{ErrDuplicateResource, KindDuplicateResource},
	{ErrValidation, KindValidation},
}

// KindOf reports the error kind carried by err. A nil error has no kind.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.sentinel) {
			return k.kind
		}
	}
	return KindInternal
}

func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func InvalidStatef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
}

func LimitExceededf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrLimitExceeded, fmt.Sprintf(format, args...))
}

func Unauthorizedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnauthorized, fmt.Sprintf(format, args...))
}
