package components

import (
	"bookplace/internal/domain/booking"
	"bookplace/internal/pkg/clock"
	"bookplace/internal/pkg/config"
	"bookplace/internal/usecase"
	"bookplace/internal/usecase/commands"
	"bookplace/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
	usecaseValidatorsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(clk clock.Clock, cfg config.Config) *booking.Factory {
		return booking.NewFactory(clk, booking.Policy{
			InstantConfirm: cfg.Booking.InstantConfirm,
		})
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
