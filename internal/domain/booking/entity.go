package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotParticipant   = errors.New("caller is not a participant of this booking")
	ErrNotGuest         = errors.New("caller is not the guest of this booking")
	ErrNotHost          = errors.New("caller is not the host of this booking")
	ErrTerminalStatus   = errors.New("booking is in a terminal status")
	ErrAlreadyConfirmed = errors.New("booking is already confirmed")
)

// Booking is the reservation aggregate. Rows are never deleted; lifecycle
// ends in a terminal status and cancelled rows stay for history while no
// longer blocking the offer's calendar.
type Booking struct {
	id        uuid.UUID
	offerID   uuid.UUID
	guestID   uuid.UUID
	hostID    uuid.UUID
	stay      StayRange
	guests    int
	status    Status
	total     Money
	createdAt time.Time
	updatedAt time.Time
}

func ReconstructBooking(
	id, offerID, guestID, hostID uuid.UUID,
	stay StayRange,
	guests int,
	status Status,
	total Money,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		offerID:   offerID,
		guestID:   guestID,
		hostID:    hostID,
		stay:      stay,
		guests:    guests,
		status:    status,
		total:     total,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) OfferID() uuid.UUID   { return b.offerID }
func (b *Booking) GuestID() uuid.UUID   { return b.guestID }
func (b *Booking) HostID() uuid.UUID    { return b.hostID }
func (b *Booking) Stay() StayRange      { return b.stay }
func (b *Booking) Guests() int          { return b.guests }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) TotalPrice() Money    { return b.total }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

func (b *Booking) IsParticipant(callerID uuid.UUID) bool {
	return callerID == b.guestID || callerID == b.hostID
}

// CancelByGuest transitions to cancelled_by_guest. Only the guest who made
// the booking may cancel it; terminal bookings stay as they are.
func (b *Booking) CancelByGuest(callerID uuid.UUID, today time.Time) error {
	if callerID != b.guestID {
		return ErrNotGuest
	}
	return b.transition(StatusCancelledByGuest, today)
}

// CancelByHost transitions to cancelled_by_host. Only the host of the
// booked offer may cancel.
func (b *Booking) CancelByHost(callerID uuid.UUID, today time.Time) error {
	if callerID != b.hostID {
		return ErrNotHost
	}
	return b.transition(StatusCancelledByHost, today)
}

// Confirm moves a pending booking to confirmed, host-initiated.
func (b *Booking) Confirm(callerID uuid.UUID, today time.Time) error {
	if callerID != b.hostID {
		return ErrNotHost
	}
	if b.EffectiveStatus(today) == StatusConfirmed {
		return ErrAlreadyConfirmed
	}
	return b.transition(StatusConfirmed, today)
}

// transition guards on the effective status, so a confirmed stay whose
// checkout has passed is already terminal even though the stored row
// still says confirmed.
func (b *Booking) transition(next Status, today time.Time) error {
	if !b.EffectiveStatus(today).CanTransitionTo(next) {
		return ErrTerminalStatus
	}
	b.status = next
	return nil
}

// EffectiveStatus derives completed at read time: a confirmed stay whose
// checkout has passed is reported completed without a storage write.
func (b *Booking) EffectiveStatus(today time.Time) Status {
	return DeriveStatus(b.status, b.stay.CheckOut(), today)
}

// DeriveStatus applies the read-time completion rule to a stored status.
func DeriveStatus(stored Status, checkOut, today time.Time) Status {
	if stored == StatusConfirmed && !checkOut.After(today) {
		return StatusCompleted
	}
	return stored
}
