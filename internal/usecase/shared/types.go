package shared

import (
	"context"

	"github.com/google/uuid"
)

// OfferSnapshot is the slice of the offer catalog the engine validates
// against.
type OfferSnapshot struct {
	ID                 uuid.UUID
	HostID             uuid.UUID
	PricePerNightCents int64
	MaxGuests          int
	Status             string
	IsArchive          bool
}

type OfferReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OfferSnapshot, error)
}

// AvailabilityCache caches the expanded unavailable-date sets per offer
// and month. Invalidate must complete before a create/cancel reports
// success so readers never see a stale month after a write.
type AvailabilityCache interface {
	GetMonth(ctx context.Context, offerID uuid.UUID, year int, month int) ([]string, bool, error)
	SetMonth(ctx context.Context, offerID uuid.UUID, year int, month int, dates []string) error
	Invalidate(ctx context.Context, offerID uuid.UUID) error
}
