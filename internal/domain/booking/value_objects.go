package booking

import (
	"errors"
	"time"
)

var (
	ErrInvalidStayRange = errors.New("check-out must be after check-in")
	ErrCheckInInPast    = errors.New("check-in date cannot be in the past")
	ErrNegativePrice    = errors.New("price cannot be negative")
)

// StayRange is a half-open calendar interval [checkIn, checkOut) over UTC
// dates. The checkout day is excluded, so back-to-back stays sharing a
// boundary date never overlap.
type StayRange struct {
	checkIn  time.Time
	checkOut time.Time
}

// NewStayRange normalizes both dates to UTC midnight and requires at least
// one night. Past check-ins are validated separately so reconstruction of
// historical bookings stays possible.
func NewStayRange(checkIn, checkOut time.Time) (StayRange, error) {
	in := truncateToDate(checkIn)
	out := truncateToDate(checkOut)
	if !out.After(in) {
		return StayRange{}, ErrInvalidStayRange
	}
	return StayRange{checkIn: in, checkOut: out}, nil
}

func (r StayRange) CheckIn() time.Time  { return r.checkIn }
func (r StayRange) CheckOut() time.Time { return r.checkOut }

func (r StayRange) Nights() int {
	return int(r.checkOut.Sub(r.checkIn).Hours() / 24)
}

// Overlaps uses half-open interval intersection: adjacency is not overlap.
func (r StayRange) Overlaps(other StayRange) bool {
	return r.checkIn.Before(other.checkOut) && r.checkOut.After(other.checkIn)
}

// ValidateNotPast rejects ranges whose check-in is before today.
func (r StayRange) ValidateNotPast(today time.Time) error {
	if r.checkIn.Before(truncateToDate(today)) {
		return ErrCheckInInPast
	}
	return nil
}

// Dates expands the range into its occupied calendar dates. The checkout
// date itself is not included.
func (r StayRange) Dates() []time.Time {
	dates := make([]time.Time, 0, r.Nights())
	for d := r.checkIn; d.Before(r.checkOut); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// ClampTo intersects the range with [from, to) and reports whether anything
// remains.
func (r StayRange) ClampTo(from, to time.Time) (StayRange, bool) {
	in := r.checkIn
	if from.After(in) {
		in = from
	}
	out := r.checkOut
	if to.Before(out) {
		out = to
	}
	if !out.After(in) {
		return StayRange{}, false
	}
	return StayRange{checkIn: in, checkOut: out}, true
}

func truncateToDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativePrice
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Multiply(n int) Money {
	return Money{cents: m.cents * int64(n)}
}
