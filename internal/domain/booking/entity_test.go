//go:build unit

package booking_test

import (
	"testing"

	"bookplace/internal/domain/booking"
	"bookplace/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingCancelByGuest(t *testing.T) {
	t.Run("guest cancels own booking", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		entity := b.BuildReconstructed()

		require.NoError(t, entity.CancelByGuest(b.GuestID, b.Today))
		assert.Equal(t, booking.StatusCancelledByGuest, entity.Status())
	})

	t.Run("host cannot use guest cancellation", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		entity := b.BuildReconstructed()

		assert.ErrorIs(t, entity.CancelByGuest(b.HostID, b.Today), booking.ErrNotGuest)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		entity := b.BuildReconstructed()

		assert.ErrorIs(t, entity.CancelByGuest(uuid.New(), b.Today), booking.ErrNotGuest)
	})

	t.Run("terminal booking stays put", func(t *testing.T) {
		b := builder.NewBookingBuilder().
			With(func(b *builder.BookingBuilder) { b.Status = booking.StatusCancelledByHost })
		entity := b.BuildReconstructed()

		assert.ErrorIs(t, entity.CancelByGuest(b.GuestID, b.Today), booking.ErrTerminalStatus)
		assert.Equal(t, booking.StatusCancelledByHost, entity.Status())
	})

	t.Run("confirmed stay past checkout is already completed", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		entity := b.BuildReconstructed()
		today := b.CheckOut.AddDate(0, 0, 5)

		assert.ErrorIs(t, entity.CancelByGuest(b.GuestID, today), booking.ErrTerminalStatus)
		assert.Equal(t, booking.StatusConfirmed, entity.Status())
	})
}

func TestBookingCancelByHost(t *testing.T) {
	t.Run("host cancels booking on own offer", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		entity := b.BuildReconstructed()

		require.NoError(t, entity.CancelByHost(b.HostID, b.Today))
		assert.Equal(t, booking.StatusCancelledByHost, entity.Status())
	})

	t.Run("guest cannot use host cancellation", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		entity := b.BuildReconstructed()

		assert.ErrorIs(t, entity.CancelByHost(b.GuestID, b.Today), booking.ErrNotHost)
	})

	t.Run("pending booking can be cancelled by host", func(t *testing.T) {
		b := builder.NewBookingBuilder().
			With(func(b *builder.BookingBuilder) { b.Status = booking.StatusPending })
		entity := b.BuildReconstructed()

		require.NoError(t, entity.CancelByHost(b.HostID, b.Today))
		assert.Equal(t, booking.StatusCancelledByHost, entity.Status())
	})

	t.Run("confirmed stay past checkout is already completed", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		entity := b.BuildReconstructed()

		assert.ErrorIs(t, entity.CancelByHost(b.HostID, b.CheckOut), booking.ErrTerminalStatus)
		assert.Equal(t, booking.StatusConfirmed, entity.Status())
	})
}

func TestBookingConfirm(t *testing.T) {
	t.Run("host confirms pending booking", func(t *testing.T) {
		b := builder.NewBookingBuilder().
			With(func(b *builder.BookingBuilder) { b.Status = booking.StatusPending })
		entity := b.BuildReconstructed()

		require.NoError(t, entity.Confirm(b.HostID, b.Today))
		assert.Equal(t, booking.StatusConfirmed, entity.Status())
	})

	t.Run("guest cannot confirm", func(t *testing.T) {
		b := builder.NewBookingBuilder().
			With(func(b *builder.BookingBuilder) { b.Status = booking.StatusPending })
		entity := b.BuildReconstructed()

		assert.ErrorIs(t, entity.Confirm(b.GuestID, b.Today), booking.ErrNotHost)
	})

	t.Run("already confirmed", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		entity := b.BuildReconstructed()

		assert.ErrorIs(t, entity.Confirm(b.HostID, b.Today), booking.ErrAlreadyConfirmed)
	})

	t.Run("cancelled booking cannot be confirmed", func(t *testing.T) {
		b := builder.NewBookingBuilder().
			With(func(b *builder.BookingBuilder) { b.Status = booking.StatusCancelledByGuest })
		entity := b.BuildReconstructed()

		assert.ErrorIs(t, entity.Confirm(b.HostID, b.Today), booking.ErrTerminalStatus)
	})

	t.Run("confirmed stay past checkout is already completed", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		entity := b.BuildReconstructed()

		assert.ErrorIs(t, entity.Confirm(b.HostID, b.CheckOut.AddDate(0, 0, 1)), booking.ErrTerminalStatus)
	})
}

func TestBookingIsParticipant(t *testing.T) {
	b := builder.NewBookingBuilder()
	entity := b.BuildReconstructed()

	assert.True(t, entity.IsParticipant(b.GuestID))
	assert.True(t, entity.IsParticipant(b.HostID))
	assert.False(t, entity.IsParticipant(uuid.New()))
}

func TestBookingEffectiveStatus(t *testing.T) {
	b := builder.NewBookingBuilder()
	entity := b.BuildReconstructed()

	assert.Equal(t, booking.StatusConfirmed, entity.EffectiveStatus(b.CheckIn))
	assert.Equal(t, booking.StatusCompleted, entity.EffectiveStatus(b.CheckOut))
	assert.Equal(t, booking.StatusCompleted, entity.EffectiveStatus(b.CheckOut.AddDate(0, 1, 0)))
}
