package httperr

import (
	"errors"
	"fmt"
)

// Kind groups business errors by how callers must react to them.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindSlotUnavailable   Kind = "slot_unavailable"
	KindConfig            Kind = "config"
	KindInvalidTransition Kind = "invalid_transition"
	KindBusy              Kind = "busy"
)

type BusinessError struct {
	Kind   Kind
	Code   string
	Detail string
}

func (e BusinessError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Detail)
	}
	return e.Code
}

func Validation(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func NotFound(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

func Config(code, detail string) error {
	return BusinessError{Kind: KindConfig, Code: code, Detail: detail}
}

// ErrSlotUnavailable is returned when the requested interval overlaps an
// active appointment. Callers re-prompt for another time; it is never retried.
var ErrSlotUnavailable error = BusinessError{Kind: KindSlotUnavailable, Code: "slot_unavailable"}

// ErrBookingBusy means the write lost a race that did not prove an overlap.
// The same request may succeed when retried.
var ErrBookingBusy error = BusinessError{Kind: KindBusy, Code: "booking_busy"}

func InvalidTransition(from, to string) error {
	return BusinessError{
		Kind:   KindInvalidTransition,
		Code:   "invalid_transition",
		Detail: fmt.Sprintf("%s -> %s", from, to),
	}
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

func As(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}
