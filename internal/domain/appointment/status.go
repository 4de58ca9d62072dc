package appointment

import "github.com/BruksfildServices01/bot-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
	StatusCompleted: nil,
	StatusCancelled: nil,
	StatusNoShow:    nil,
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := transitions[st]; !ok {
		return "", httperr.Validation("invalid_status")
	}
	return st, nil
}

// ===============================
// Validations
// ===============================

// CanTransition checks the status state machine. Terminal states have no
// outgoing edges.
func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.InvalidTransition(string(from), string(to))
}

func IsTerminal(s Status) bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// IsActive reports whether an appointment in status s still occupies its
// interval.
func IsActive(s Status) bool {
	return s != StatusCancelled
}

// ValidateInitialStatus accepts only the statuses a new booking may start in.
// Which one applies is decided by the caller.
func ValidateInitialStatus(s Status) error {
	switch s {
	case StatusPending, StatusConfirmed:
		return nil
	case "":
		return httperr.Validation("missing_initial_status")
	default:
		return httperr.Validation("invalid_initial_status")
	}
}
