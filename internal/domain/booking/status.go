package booking

import "errors"

var ErrInvalidStatus = errors.New("invalid booking status")

type Status string

const (
	StatusPending          Status = "pending"
	StatusConfirmed        Status = "confirmed"
	StatusCompleted        Status = "completed"
	StatusCancelledByGuest Status = "cancelled_by_guest"
	StatusCancelledByHost  Status = "cancelled_by_host"
)

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelledByGuest, StatusCancelledByHost:
		return true
	default:
		return false
	}
}

// IsActive reports whether the booking still occupies its date range.
// Only active bookings participate in overlap detection.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelledByGuest, StatusCancelledByHost:
		return true
	default:
		return false
	}
}

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelledByGuest, StatusCancelledByHost},
	StatusConfirmed: {StatusCompleted, StatusCancelledByGuest, StatusCancelledByHost},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ActiveStatuses is the set of statuses the overlap invariant ranges over,
// in the order they appear in SQL IN clauses.
func ActiveStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed}
}
