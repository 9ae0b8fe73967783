package httperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a business failure. The HTTP status is a pure function of
// the kind.
type Kind int

const (
	KindValidation Kind = iota
	KindInvalidStatus
	KindInvalidCredentials
	KindUnauthorized
	KindForbidden
	KindNotFoundOrDenied
	KindNotFound
)

type BusinessError struct {
	Kind Kind
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

// ErrBusiness builds a validation failure with the given code.
func ErrBusiness(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func ErrInvalidStatus() error {
	return BusinessError{Kind: KindInvalidStatus, Code: "invalid_status"}
}

func ErrInvalidCredentials() error {
	return BusinessError{Kind: KindInvalidCredentials, Code: "invalid_credentials"}
}

func ErrUnauthorized() error {
	return BusinessError{Kind: KindUnauthorized, Code: "unauthorized"}
}

func ErrForbidden() error {
	return BusinessError{Kind: KindForbidden, Code: "forbidden"}
}

// ErrNotFoundOrDenied is returned when an entity is missing or owned by
// someone else. Callers cannot tell the two apart.
func ErrNotFoundOrDenied(code string) error {
	return BusinessError{Kind: KindNotFoundOrDenied, Code: code}
}

func ErrNotFound(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func IsKind(err error, kind Kind) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}

// StoreError wraps a failure of the relational store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Store wraps err as a StoreError. Business errors pass through untouched so
// a transaction callback can return either kind.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	var be BusinessError
	if errors.As(err, &be) {
		return err
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

func StatusOf(err error) int {
	var be BusinessError
	if !errors.As(err, &be) {
		return http.StatusInternalServerError
	}
	switch be.Kind {
	case KindValidation, KindInvalidStatus:
		return http.StatusBadRequest
	case KindInvalidCredentials, KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFoundOrDenied, KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
