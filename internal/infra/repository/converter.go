package repository

import (
	"bookplace/internal/domain/booking"
	"bookplace/internal/infra"
	"bookplace/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type bookingRow struct {
	ID              uuid.UUID
	OfferID         uuid.UUID
	GuestID         uuid.UUID
	HostID          uuid.UUID
	CheckIn         pgtype.Date
	CheckOut        pgtype.Date
	Guests          int32
	Status          string
	TotalPriceCents int64
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
}

func (row bookingRow) toDomain() (*booking.Booking, error) {
	stay, err := booking.NewStayRange(pgconv.DateFromPgtype(row.CheckIn), pgconv.DateFromPgtype(row.CheckOut))
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking has invalid stay range", err)
	}

	total, err := booking.NewMoney(row.TotalPriceCents)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking has invalid price", err)
	}

	status := booking.Status(row.Status)
	if !status.IsValid() {
		return nil, infra.WrapRepoErr("stored booking has invalid status", nil)
	}

	return booking.ReconstructBooking(
		row.ID,
		row.OfferID,
		row.GuestID,
		row.HostID,
		stay,
		int(row.Guests),
		status,
		total,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
