package repository

import (
	"context"
	"time"

	"bookplace/internal/domain/booking"
	"bookplace/internal/infra"
	"bookplace/internal/infra/db"
	"bookplace/internal/pkg/pgconv"

	"github.com/google/uuid"
)

// BookingRepository is the write side of the reservation engine. All of its
// methods are meant to run inside a unit-of-work transaction.
type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

// LockOffer takes the per-offer serialization point: a row lock on the
// offer record. Every create for this offer queues behind it until the
// holder commits, which makes the overlap check and the insert atomic.
func (r *BookingRepository) LockOffer(ctx context.Context, offerID uuid.UUID) error {
	const query = `SELECT id FROM offers WHERE id = $1 FOR UPDATE`

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, offerID).Scan(&id); err != nil {
		if pgconv.IsNoRows(err) {
			return infra.WrapRepoErr("offer not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to lock offer", err)
	}
	return nil
}

// FindConflict looks for an active booking intersecting the requested stay
// under half-open semantics: adjacency at the checkout boundary is free.
func (r *BookingRepository) FindConflict(ctx context.Context, offerID uuid.UUID, stay booking.StayRange) (*uuid.UUID, error) {
	const query = `
		SELECT id FROM bookings
		WHERE offer_id = $1
		  AND status IN ('pending', 'confirmed')
		  AND check_in < $3
		  AND check_out > $2
		ORDER BY check_in
		LIMIT 1`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query, offerID, pgconv.DateToPgtype(stay.CheckIn()), pgconv.DateToPgtype(stay.CheckOut())).Scan(&id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to check date conflicts", err)
	}
	return &id, nil
}

func (r *BookingRepository) Insert(ctx context.Context, b *booking.Booking) error {
	const query = `
		INSERT INTO bookings (id, offer_id, guest_id, check_in, check_out, number_of_guests, status, total_price_cents, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(ctx, query,
		b.ID(),
		b.OfferID(),
		b.GuestID(),
		pgconv.DateToPgtype(b.Stay().CheckIn()),
		pgconv.DateToPgtype(b.Stay().CheckOut()),
		b.Guests(),
		b.Status().String(),
		b.TotalPrice().Cents(),
		pgconv.TimeToPgtype(b.CreatedAt()),
		pgconv.TimeToPgtype(b.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert booking", err)
	}
	return nil
}

// FindByIDForUpdate locks the booking row for a status transition. The
// host id comes from the offer, joined rather than stored twice.
func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	const query = `
		SELECT b.id, b.offer_id, b.guest_id, o.host_id, b.check_in, b.check_out,
		       b.number_of_guests, b.status, b.total_price_cents, b.created_at, b.updated_at
		FROM bookings b
		JOIN offers o ON o.id = b.offer_id
		WHERE b.id = $1
		FOR UPDATE OF b`

	var row bookingRow
	err := r.db.QueryRow(ctx, query, id).Scan(
		&row.ID, &row.OfferID, &row.GuestID, &row.HostID, &row.CheckIn, &row.CheckOut,
		&row.Guests, &row.Status, &row.TotalPriceCents, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load booking for update", err)
	}

	return row.toDomain()
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status, updatedAt time.Time) error {
	const query = `UPDATE bookings SET status = $2, updated_at = $3 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, status.String(), pgconv.TimeToPgtype(updatedAt))
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}
