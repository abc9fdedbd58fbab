package request

import (
	"time"

	"bookplace/internal/domain/booking"
	"bookplace/internal/domain/user"
	"bookplace/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	OfferID        uuid.UUID `json:"offer_id" binding:"required"`
	CheckInDate    time.Time `json:"check_in_date" binding:"required"`
	CheckOutDate   time.Time `json:"check_out_date" binding:"required"`
	NumberOfGuests int       `json:"number_of_guests" binding:"required,min=1"`
}

// ListBookingsRequest is bound from query parameters. Dates use the
// 2006-01-02 form; everything is optional.
type ListBookingsRequest struct {
	Role     string `form:"role" binding:"omitempty,oneof=guest host"`
	Status   string `form:"status" binding:"omitempty"`
	OfferID  string `form:"offer_id" binding:"omitempty,uuid"`
	DateFrom string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1"`
}

func (r ListBookingsRequest) ToFilter() (queries.BookingFilter, error) {
	var filter queries.BookingFilter

	if r.Role != "" {
		filter.Role = user.Role(r.Role)
	}

	if r.Status != "" {
		status, err := booking.NewStatus(r.Status)
		if err != nil {
			return queries.BookingFilter{}, err
		}
		filter.Status = &status
	}

	if r.OfferID != "" {
		id, err := uuid.Parse(r.OfferID)
		if err != nil {
			return queries.BookingFilter{}, err
		}
		filter.OfferID = &id
	}

	if r.DateFrom != "" {
		from, err := time.ParseInLocation("2006-01-02", r.DateFrom, time.UTC)
		if err != nil {
			return queries.BookingFilter{}, err
		}
		filter.DateFrom = &from
	}

	if r.DateTo != "" {
		to, err := time.ParseInLocation("2006-01-02", r.DateTo, time.UTC)
		if err != nil {
			return queries.BookingFilter{}, err
		}
		filter.DateTo = &to
	}

	return filter, nil
}

func (r ListBookingsRequest) ToPage() queries.PageRequest {
	return queries.PageRequest{
		Number: r.Page,
		Size:   r.PageSize,
	}
}
