//go:build unit || e2e

package builder

import (
	"time"

	dombooking "bookplace/internal/domain/booking"
	domoffer "bookplace/internal/domain/offer"
	reqdto "bookplace/internal/handler/dto/request"
	"bookplace/internal/pkg/clock"
	"bookplace/internal/usecase/queries"
	"bookplace/internal/usecase/shared"

	"github.com/google/uuid"
)

// BookingBuilder produces a valid booking and its surrounding offer by
// default; tests mutate single fields to hit each validation edge.
type BookingBuilder struct {
	OfferID            uuid.UUID
	OfferTitle         string
	HostID             uuid.UUID
	GuestID            uuid.UUID
	PricePerNightCents int64
	MaxGuests          int
	OfferStatus        domoffer.Status
	OfferArchived      bool

	CheckIn        time.Time
	CheckOut       time.Time
	NumberOfGuests int
	Status         dombooking.Status
	Today          time.Time
	InstantConfirm bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func NewBookingBuilder() *BookingBuilder {
	today := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		OfferID:            uuid.New(),
		OfferTitle:         "Seaside Cabin",
		HostID:             uuid.New(),
		GuestID:            uuid.New(),
		PricePerNightCents: 12000,
		MaxGuests:          4,
		OfferStatus:        domoffer.StatusActive,
		OfferArchived:      false,
		CheckIn:            today.AddDate(0, 0, 10),
		CheckOut:           today.AddDate(0, 0, 13),
		NumberOfGuests:     2,
		Status:             dombooking.StatusConfirmed,
		Today:              today,
		InstantConfirm:     true,
		CreatedAt:          today,
		UpdatedAt:          today,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildOffer() (*domoffer.Offer, error) {
	return domoffer.NewOffer(b.OfferID, b.HostID, b.PricePerNightCents, b.MaxGuests, b.OfferStatus, b.OfferArchived)
}

func (b *BookingBuilder) BuildStay() (dombooking.StayRange, error) {
	return dombooking.NewStayRange(b.CheckIn, b.CheckOut)
}

// BuildDomain runs the full factory path, so every offer and stay
// validation applies.
func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	off, err := b.BuildOffer()
	if err != nil {
		return nil, err
	}
	stay, err := b.BuildStay()
	if err != nil {
		return nil, err
	}

	factory := dombooking.NewFactory(
		clock.NewMockClock(b.Today),
		dombooking.Policy{InstantConfirm: b.InstantConfirm},
	)
	return factory.NewBooking(off, b.GuestID, stay, b.NumberOfGuests)
}

// BuildReconstructed skips factory validation; used for transition tests
// where the stored state may already be historical.
func (b *BookingBuilder) BuildReconstructed() *dombooking.Booking {
	stay, _ := dombooking.NewStayRange(b.CheckIn, b.CheckOut)
	total, _ := dombooking.NewMoney(b.PricePerNightCents * int64(stay.Nights()))
	return dombooking.ReconstructBooking(
		uuid.New(), b.OfferID, b.GuestID, b.HostID,
		stay, b.NumberOfGuests, b.Status, total,
		b.CreatedAt, b.UpdatedAt,
	)
}

func (b *BookingBuilder) BuildOfferSnapshot() *shared.OfferSnapshot {
	return &shared.OfferSnapshot{
		ID:                 b.OfferID,
		HostID:             b.HostID,
		PricePerNightCents: b.PricePerNightCents,
		MaxGuests:          b.MaxGuests,
		Status:             b.OfferStatus.String(),
		IsArchive:          b.OfferArchived,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		OfferID:        b.OfferID,
		CheckInDate:    b.CheckIn,
		CheckOutDate:   b.CheckOut,
		NumberOfGuests: b.NumberOfGuests,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	stay, _ := dombooking.NewStayRange(b.CheckIn, b.CheckOut)
	return &queries.BookingView{
		ID:              uuid.New(),
		OfferID:         b.OfferID,
		OfferTitle:      b.OfferTitle,
		GuestID:         b.GuestID,
		HostID:          b.HostID,
		CheckInDate:     stay.CheckIn(),
		CheckOutDate:    stay.CheckOut(),
		NumberOfGuests:  b.NumberOfGuests,
		Status:          b.Status.String(),
		TotalPriceCents: b.PricePerNightCents * int64(stay.Nights()),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func (b *BookingBuilder) BuildListItem() *queries.BookingListItem {
	stay, _ := dombooking.NewStayRange(b.CheckIn, b.CheckOut)
	return &queries.BookingListItem{
		ID:              uuid.New(),
		OfferID:         b.OfferID,
		OfferTitle:      b.OfferTitle,
		GuestID:         b.GuestID,
		CheckInDate:     stay.CheckIn(),
		CheckOutDate:    stay.CheckOut(),
		NumberOfGuests:  b.NumberOfGuests,
		Status:          b.Status.String(),
		TotalPriceCents: b.PricePerNightCents * int64(stay.Nights()),
		CreatedAt:       b.CreatedAt,
	}
}
