package readstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bookplace/internal/domain/booking"
	"bookplace/internal/domain/user"
	"bookplace/internal/infra"
	"bookplace/internal/infra/db"
	"bookplace/internal/pkg/pgconv"
	"bookplace/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

const bookingViewColumns = `
	b.id, b.offer_id, o.title, b.guest_id, o.host_id, b.check_in, b.check_out,
	b.number_of_guests, b.status, b.total_price_cents, b.created_at, b.updated_at`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	query := `
		SELECT ` + bookingViewColumns + `
		FROM bookings b
		JOIN offers o ON o.id = b.offer_id
		WHERE b.id = $1`

	var (
		view     queries.BookingView
		checkIn  pgtype.Date
		checkOut pgtype.Date
		created  pgtype.Timestamptz
		updated  pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.OfferID, &view.OfferTitle, &view.GuestID, &view.HostID,
		&checkIn, &checkOut, &view.NumberOfGuests, &view.Status,
		&view.TotalPriceCents, &created, &updated,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	view.CheckInDate = pgconv.DateFromPgtype(checkIn)
	view.CheckOutDate = pgconv.DateFromPgtype(checkOut)
	view.CreatedAt = pgconv.TimeFromPgtype(created)
	view.UpdatedAt = pgconv.TimeFromPgtype(updated)
	return &view, nil
}

// List assembles the filter into a WHERE clause; each absent filter field
// contributes nothing. Ordering is check_in DESC with id DESC as the
// deterministic tie-break so page boundaries are stable.
func (r *BookingReadStore) List(
	ctx context.Context,
	callerID uuid.UUID,
	filter queries.BookingFilter,
	today time.Time,
	limit, offset int32,
) ([]*queries.BookingListItem, int64, error) {
	where, args := buildListFilter(callerID, filter, today)

	countQuery := `
		SELECT COUNT(*)
		FROM bookings b
		JOIN offers o ON o.id = b.offer_id
		WHERE ` + where

	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count bookings", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT b.id, b.offer_id, o.title, b.guest_id, b.check_in, b.check_out,
		       b.number_of_guests, b.status, b.total_price_cents, b.created_at
		FROM bookings b
		JOIN offers o ON o.id = b.offer_id
		WHERE %s
		ORDER BY b.check_in DESC, b.id DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var items []*queries.BookingListItem
	for rows.Next() {
		var (
			item     queries.BookingListItem
			checkIn  pgtype.Date
			checkOut pgtype.Date
			created  pgtype.Timestamptz
		)
		if err := rows.Scan(
			&item.ID, &item.OfferID, &item.OfferTitle, &item.GuestID,
			&checkIn, &checkOut, &item.NumberOfGuests, &item.Status,
			&item.TotalPriceCents, &created,
		); err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan booking row", err)
		}
		item.CheckInDate = pgconv.DateFromPgtype(checkIn)
		item.CheckOutDate = pgconv.DateFromPgtype(checkOut)
		item.CreatedAt = pgconv.TimeFromPgtype(created)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to iterate booking rows", err)
	}

	return items, total, nil
}

func buildListFilter(callerID uuid.UUID, filter queries.BookingFilter, today time.Time) (string, []any) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	switch filter.Role {
	case user.RoleGuest:
		conds = append(conds, "b.guest_id = "+arg(callerID))
	case user.RoleHost:
		conds = append(conds, "o.host_id = "+arg(callerID))
	default:
		p := arg(callerID)
		conds = append(conds, fmt.Sprintf("(b.guest_id = %s OR o.host_id = %s)", p, p))
	}

	if filter.Status != nil {
		// Completed is derived, not stored: translate the filter into the
		// stored-status shape so confirmed and completed stay disjoint.
		todayArg := pgconv.DateToPgtype(today)
		switch *filter.Status {
		case booking.StatusCompleted:
			conds = append(conds, "b.status = 'confirmed' AND b.check_out <= "+arg(todayArg))
		case booking.StatusConfirmed:
			conds = append(conds, "b.status = 'confirmed' AND b.check_out > "+arg(todayArg))
		default:
			conds = append(conds, "b.status = "+arg(filter.Status.String()))
		}
	}

	if filter.OfferID != nil {
		conds = append(conds, "b.offer_id = "+arg(*filter.OfferID))
	}

	// Date filters select bookings whose stay intersects [from, to].
	if filter.DateFrom != nil {
		conds = append(conds, "b.check_out > "+arg(pgconv.DatePtrToPgtype(filter.DateFrom)))
	}
	if filter.DateTo != nil {
		conds = append(conds, "b.check_in <= "+arg(pgconv.DatePtrToPgtype(filter.DateTo)))
	}

	return strings.Join(conds, " AND "), args
}

func (r *BookingReadStore) FindActiveStays(ctx context.Context, offerID uuid.UUID, from, to time.Time) ([]queries.StayRow, error) {
	const query = `
		SELECT id, check_in, check_out
		FROM bookings
		WHERE offer_id = $1
		  AND status IN ('pending', 'confirmed')
		  AND check_in < $3
		  AND check_out > $2
		ORDER BY check_in`

	rows, err := r.db.Query(ctx, query, offerID, pgconv.DateToPgtype(from), pgconv.DateToPgtype(to))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load occupied stays", err)
	}
	defer rows.Close()

	var stays []queries.StayRow
	for rows.Next() {
		var (
			row      queries.StayRow
			checkIn  pgtype.Date
			checkOut pgtype.Date
		)
		if err := rows.Scan(&row.BookingID, &checkIn, &checkOut); err != nil {
			return nil, infra.WrapRepoErr("failed to scan stay row", err)
		}
		row.CheckIn = pgconv.DateFromPgtype(checkIn)
		row.CheckOut = pgconv.DateFromPgtype(checkOut)
		stays = append(stays, row)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate stay rows", err)
	}

	return stays, nil
}
