package readstore

import (
	"context"

	"bookplace/internal/infra"
	"bookplace/internal/infra/db"
	"bookplace/internal/pkg/pgconv"
	"bookplace/internal/usecase/shared"

	"github.com/google/uuid"
)

type OfferReadStore struct {
	db db.DBTX
}

func NewOfferReadStore(dbtx db.DBTX) *OfferReadStore {
	return &OfferReadStore{db: dbtx}
}

func (r *OfferReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.OfferSnapshot, error) {
	const query = `
		SELECT id, host_id, price_per_night_cents, max_guests, status, is_archive
		FROM offers
		WHERE id = $1`

	var snap shared.OfferSnapshot
	err := r.db.QueryRow(ctx, query, id).Scan(
		&snap.ID, &snap.HostID, &snap.PricePerNightCents,
		&snap.MaxGuests, &snap.Status, &snap.IsArchive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("offer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find offer by ID", err)
	}
	return &snap, nil
}
