//go:build unit

package booking_test

import (
	"testing"
	"time"

	"bookplace/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustStay(t *testing.T, checkIn, checkOut time.Time) booking.StayRange {
	t.Helper()
	stay, err := booking.NewStayRange(checkIn, checkOut)
	require.NoError(t, err)
	return stay
}

func TestNewStayRange(t *testing.T) {
	t.Run("requires at least one night", func(t *testing.T) {
		_, err := booking.NewStayRange(date(2026, 6, 10), date(2026, 6, 10))
		assert.ErrorIs(t, err, booking.ErrInvalidStayRange)

		_, err = booking.NewStayRange(date(2026, 6, 11), date(2026, 6, 10))
		assert.ErrorIs(t, err, booking.ErrInvalidStayRange)
	})

	t.Run("normalizes to UTC midnight", func(t *testing.T) {
		loc := time.FixedZone("JST", 9*60*60)
		checkIn := time.Date(2026, 6, 10, 15, 30, 0, 0, time.UTC)
		checkOut := time.Date(2026, 6, 12, 8, 0, 0, 0, loc)

		stay, err := booking.NewStayRange(checkIn, checkOut)
		require.NoError(t, err)

		assert.Equal(t, date(2026, 6, 10), stay.CheckIn())
		// 2026-06-12 08:00 JST is 2026-06-11 23:00 UTC
		assert.Equal(t, date(2026, 6, 11), stay.CheckOut())
	})

	t.Run("nights counts occupied dates", func(t *testing.T) {
		stay := mustStay(t, date(2026, 6, 10), date(2026, 6, 13))
		assert.Equal(t, 3, stay.Nights())
	})
}

func TestStayRangeOverlaps(t *testing.T) {
	base := mustStay(t, date(2026, 6, 10), date(2026, 6, 13))

	cases := []struct {
		name     string
		other    booking.StayRange
		overlaps bool
	}{
		{"identical range", mustStay(t, date(2026, 6, 10), date(2026, 6, 13)), true},
		{"contained range", mustStay(t, date(2026, 6, 11), date(2026, 6, 12)), true},
		{"overlaps at start", mustStay(t, date(2026, 6, 8), date(2026, 6, 11)), true},
		{"overlaps at end", mustStay(t, date(2026, 6, 12), date(2026, 6, 15)), true},
		{"surrounding range", mustStay(t, date(2026, 6, 1), date(2026, 6, 30)), true},
		{"checkout on check-in day", mustStay(t, date(2026, 6, 7), date(2026, 6, 10)), false},
		{"check-in on checkout day", mustStay(t, date(2026, 6, 13), date(2026, 6, 16)), false},
		{"disjoint before", mustStay(t, date(2026, 6, 1), date(2026, 6, 5)), false},
		{"disjoint after", mustStay(t, date(2026, 6, 20), date(2026, 6, 25)), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.overlaps, base.Overlaps(c.other))
			assert.Equal(t, c.overlaps, c.other.Overlaps(base))
		})
	}
}

func TestStayRangeValidateNotPast(t *testing.T) {
	today := date(2026, 6, 10)

	t.Run("check-in today is allowed", func(t *testing.T) {
		stay := mustStay(t, date(2026, 6, 10), date(2026, 6, 12))
		assert.NoError(t, stay.ValidateNotPast(today))
	})

	t.Run("check-in before today is rejected", func(t *testing.T) {
		stay := mustStay(t, date(2026, 6, 9), date(2026, 6, 12))
		assert.ErrorIs(t, stay.ValidateNotPast(today), booking.ErrCheckInInPast)
	})
}

func TestStayRangeDates(t *testing.T) {
	stay := mustStay(t, date(2026, 6, 10), date(2026, 6, 13))

	dates := stay.Dates()
	require.Len(t, dates, 3)
	assert.Equal(t, date(2026, 6, 10), dates[0])
	assert.Equal(t, date(2026, 6, 11), dates[1])
	assert.Equal(t, date(2026, 6, 12), dates[2])
}

func TestStayRangeClampTo(t *testing.T) {
	stay := mustStay(t, date(2026, 5, 28), date(2026, 6, 3))
	monthStart := date(2026, 6, 1)
	monthEnd := date(2026, 7, 1)

	t.Run("clamps a range spanning the boundary", func(t *testing.T) {
		clamped, ok := stay.ClampTo(monthStart, monthEnd)
		require.True(t, ok)
		assert.Equal(t, date(2026, 6, 1), clamped.CheckIn())
		assert.Equal(t, date(2026, 6, 3), clamped.CheckOut())
	})

	t.Run("reports nothing left outside the window", func(t *testing.T) {
		_, ok := stay.ClampTo(date(2026, 7, 1), date(2026, 8, 1))
		assert.False(t, ok)
	})
}

func TestMoney(t *testing.T) {
	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := booking.NewMoney(-1)
		assert.ErrorIs(t, err, booking.ErrNegativePrice)
	})

	t.Run("multiplies nightly price", func(t *testing.T) {
		nightly, err := booking.NewMoney(12000)
		require.NoError(t, err)
		assert.Equal(t, int64(36000), nightly.Multiply(3).Cents())
	})
}
