package offer

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInactiveOffer = errors.New("offer is not active")
	ErrArchivedOffer = errors.New("offer is archived")
	ErrInvalidPrice  = errors.New("price per night must be positive")
	ErrInvalidGuests = errors.New("max guests must be positive")
	ErrInvalidStatus = errors.New("invalid offer status")
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive:
		return true
	default:
		return false
	}
}

// Offer is the bookable side of a listing as the reservation engine sees
// it. Listing content (title, photos, address) lives in the catalog and is
// only joined into read views.
type Offer struct {
	id                 uuid.UUID
	hostID             uuid.UUID
	pricePerNightCents int64
	maxGuests          int
	status             Status
	isArchive          bool
}

func NewOffer(id, hostID uuid.UUID, pricePerNightCents int64, maxGuests int, status Status, isArchive bool) (*Offer, error) {
	if pricePerNightCents <= 0 {
		return nil, ErrInvalidPrice
	}
	if maxGuests <= 0 {
		return nil, ErrInvalidGuests
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return &Offer{
		id:                 id,
		hostID:             hostID,
		pricePerNightCents: pricePerNightCents,
		maxGuests:          maxGuests,
		status:             status,
		isArchive:          isArchive,
	}, nil
}

func (o *Offer) ID() uuid.UUID             { return o.id }
func (o *Offer) HostID() uuid.UUID         { return o.hostID }
func (o *Offer) PricePerNightCents() int64 { return o.pricePerNightCents }
func (o *Offer) MaxGuests() int            { return o.maxGuests }
func (o *Offer) Status() Status            { return o.status }
func (o *Offer) IsArchive() bool           { return o.isArchive }

// Bookable reports whether new reservations may target this offer.
func (o *Offer) Bookable() error {
	if o.isArchive {
		return ErrArchivedOffer
	}
	if o.status != StatusActive {
		return ErrInactiveOffer
	}
	return nil
}
