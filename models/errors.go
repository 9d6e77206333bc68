package models

import (
	"fmt"

	"github.com/pkg/errors"
)

type ErrorKind string

const (
	KindUnauthenticated       ErrorKind = "Unauthenticated"
	KindForbidden             ErrorKind = "Forbidden"
	KindNotFound              ErrorKind = "NotFound"
	KindInvalidTransition     ErrorKind = "InvalidTransition"
	KindContractorUnavailable ErrorKind = "ContractorUnavailable"
	KindConflict              ErrorKind = "Conflict"
	KindNotEligible           ErrorKind = "NotEligible"
	KindAlreadyRated          ErrorKind = "AlreadyRated"
	KindAlreadyResolved       ErrorKind = "AlreadyResolved"
	KindEmptyContent          ErrorKind = "EmptyContent"
	KindOutOfRange            ErrorKind = "OutOfRange"
	KindUnavailable           ErrorKind = "Unavailable"
)

// WorkflowError ошибка, которую вызывающая сторона может обработать
type WorkflowError struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *WorkflowError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *WorkflowError) Unwrap() error {
	return e.cause
}

func NewError(kind ErrorKind, message string) error {
	return &WorkflowError{Kind: kind, Message: message}
}

func NewErrorf(kind ErrorKind, format string, args ...any) error {
	return &WorkflowError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Unavailable ошибка хранилища/инфраструктуры
func Unavailable(err error, message string) error {
	if err == nil {
		return nil
	}
	var wErr *WorkflowError
	if errors.As(err, &wErr) {
		return err
	}
	return &WorkflowError{Kind: KindUnavailable, Message: message, cause: errors.WithStack(err)}
}

// KindOf неизвестные ошибки считаются ошибками инфраструктуры
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var wErr *WorkflowError
	if errors.As(err, &wErr) {
		return wErr.Kind
	}
	return KindUnavailable
}

func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// HumanMessage текст ошибки без технических подробностей
func HumanMessage(err error) string {
	var wErr *WorkflowError
	if errors.As(err, &wErr) {
		return wErr.Message
	}
	return "сервис временно недоступен"
}

func ErrNotFound(what string) error {
	return NewErrorf(KindNotFound, "%s не найден(а)", what)
}

func ErrForbidden() error {
	return NewError(KindForbidden, "операция недоступна")
}
