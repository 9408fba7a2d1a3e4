package services

import (
	"errors"
	"fmt"

	"restaurant-pos/models"
)

// ErrKind classifies business errors so the HTTP layer can pick a
// status code without parsing messages.
type ErrKind int

const (
	KindUnknown ErrKind = iota
	KindNotFound
	KindConflict
	KindValidation
	KindInvalidTransition
	KindIntegrity
)

type ServiceError struct {
	Kind    ErrKind
	Message string
}

func (e *ServiceError) Error() string { return e.Message }

func NotFoundf(format string, a ...interface{}) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Message: fmt.Sprintf(format, a...)}
}

func Conflictf(format string, a ...interface{}) *ServiceError {
	return &ServiceError{Kind: KindConflict, Message: fmt.Sprintf(format, a...)}
}

func Validationf(format string, a ...interface{}) *ServiceError {
	return &ServiceError{Kind: KindValidation, Message: fmt.Sprintf(format, a...)}
}

// Integrityf marks a non-recoverable inconsistency (e.g. an order number
// collision). Callers must abort, never retry.
func Integrityf(format string, a ...interface{}) *ServiceError {
	return &ServiceError{Kind: KindIntegrity, Message: fmt.Sprintf(format, a...)}
}

// InvalidTransitionError carries both sides of a rejected status change.
type InvalidTransitionError struct {
	Current   models.OrderStatus
	Requested models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.Current, e.Requested)
}

// KindOf reports the taxonomy kind of err, or KindUnknown for
// infrastructure failures.
func KindOf(err error) ErrKind {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind
	}
	var te *InvalidTransitionError
	if errors.As(err, &te) {
		return KindInvalidTransition
	}
	return KindUnknown
}
