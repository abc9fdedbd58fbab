package components

import (
	"bookplace/internal/infra/db"
	"bookplace/internal/infra/readstore"
	"bookplace/internal/infra/uow"
	"bookplace/internal/usecase/queries"
	"bookplace/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			readstore.NewOfferReadStore,
			fx.As(new(shared.OfferReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
