package booking

import (
	"errors"

	"bookplace/internal/domain/offer"
	"bookplace/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrCapacityExceeded = errors.New("number of guests exceeds offer capacity")
	ErrOwnOffer         = errors.New("hosts cannot book their own offer")
)

// Policy captures the product decisions the engine does not hardwire.
type Policy struct {
	// InstantConfirm skips the pending step and creates bookings as
	// confirmed, matching instant-booking listings.
	InstantConfirm bool
}

type Factory struct {
	Clock  clock.Clock
	Policy Policy
}

func NewFactory(clk clock.Clock, policy Policy) *Factory {
	return &Factory{Clock: clk, Policy: policy}
}

// NewBooking validates the request against the offer and prices the stay.
// It does not check date conflicts; that happens under the offer lock in
// the repository so the check and the insert are atomic.
func (f *Factory) NewBooking(
	off *offer.Offer,
	guestID uuid.UUID,
	stay StayRange,
	guests int,
) (*Booking, error) {
	if err := off.Bookable(); err != nil {
		return nil, err
	}
	if guestID == off.HostID() {
		return nil, ErrOwnOffer
	}
	if guests <= 0 || guests > off.MaxGuests() {
		return nil, ErrCapacityExceeded
	}
	if err := stay.ValidateNotPast(clock.Today(f.Clock)); err != nil {
		return nil, err
	}

	nightly, err := NewMoney(off.PricePerNightCents())
	if err != nil {
		return nil, err
	}

	status := StatusPending
	if f.Policy.InstantConfirm {
		status = StatusConfirmed
	}

	now := f.Clock.Now().UTC()
	return &Booking{
		id:        uuid.New(),
		offerID:   off.ID(),
		guestID:   guestID,
		hostID:    off.HostID(),
		stay:      stay,
		guests:    guests,
		status:    status,
		total:     nightly.Multiply(stay.Nights()),
		createdAt: now,
		updatedAt: now,
	}, nil
}
