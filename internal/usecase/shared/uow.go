package shared

import (
	"context"
	"time"

	"bookplace/internal/domain/booking"

	"github.com/google/uuid"
)

// UnitOfWork runs command-side work inside a transaction. Within retries
// serialization failures; everything else surfaces to the caller untouched.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx exposes write repositories bound to the running transaction.
type Tx interface {
	Bookings() BookingRepository
	Notifications() NotificationRepository
}

type BookingRepository interface {
	// LockOffer takes the per-offer serialization point (a row lock on the
	// offer record). Concurrent creates for the same offer queue here;
	// different offers proceed in parallel. Reports NotFound when the offer
	// does not exist.
	LockOffer(ctx context.Context, offerID uuid.UUID) error

	// FindConflict returns the id of an active booking whose half-open
	// range intersects stay, or nil when the slot is free. Only valid
	// after LockOffer in the same transaction.
	FindConflict(ctx context.Context, offerID uuid.UUID, stay booking.StayRange) (*uuid.UUID, error)

	Insert(ctx context.Context, b *booking.Booking) error

	// FindByIDForUpdate loads the booking with its offer's host and locks
	// the row for a status transition.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status, updatedAt time.Time) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}
