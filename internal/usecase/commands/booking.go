package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"bookplace/internal/domain/booking"
	"bookplace/internal/domain/offer"
	reqdto "bookplace/internal/handler/dto/request"
	"bookplace/internal/infra"
	"bookplace/internal/pkg/clock"
	"bookplace/internal/pkg/errs"
	"bookplace/internal/usecase/queries"
	"bookplace/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrOfferNotFound           = errs.New("offer not found")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrInvalidStayRange        = errs.New("invalid stay range")
	ErrCapacityExceeded        = errs.New("guest count exceeds offer capacity")
	ErrOwnOffer                = errs.New("cannot book own offer")
	ErrOfferNotBookable        = errs.New("offer is not bookable")
	ErrDateConflict            = errs.New("requested dates conflict with an existing booking")
	ErrForbidden               = errs.New("caller may not act on this booking")
	ErrInvalidState            = errs.New("booking is in a terminal state")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// DateConflictError carries the booking that blocks the requested range so
// callers can render which stay is in the way.
type DateConflictError struct {
	ConflictingBookingID uuid.UUID
}

func (e *DateConflictError) Error() string {
	return fmt.Sprintf("dates conflict with booking %s", e.ConflictingBookingID)
}

type BookingCommands interface {
	Create(ctx context.Context, req reqdto.CreateBookingRequest, guestID uuid.UUID) (*queries.BookingView, error)
	CancelAsGuest(ctx context.Context, bookingID, callerID uuid.UUID) (*queries.BookingView, error)
	CancelAsHost(ctx context.Context, bookingID, callerID uuid.UUID) (*queries.BookingView, error)
	Confirm(ctx context.Context, bookingID, callerID uuid.UUID) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	uow     shared.UnitOfWork
	offers  shared.OfferReadStore
	store   queries.BookingReadStore
	cache   shared.AvailabilityCache
	factory *booking.Factory
	clock   clock.Clock
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	offers shared.OfferReadStore,
	store queries.BookingReadStore,
	cache shared.AvailabilityCache,
	factory *booking.Factory,
	clk clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:     uow,
		offers:  offers,
		store:   store,
		cache:   cache,
		factory: factory,
		clock:   clk,
	}
}

// Create reserves the requested stay. The overlap check and the insert run
// under the offer's row lock, so two concurrent requests for the same offer
// serialize and at most one of them wins any contested date cell.
func (c *bookingCommandsImpl) Create(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	guestID uuid.UUID,
) (*queries.BookingView, error) {
	offerEntity, err := c.loadOffer(ctx, req.OfferID)
	if err != nil {
		return nil, err
	}

	stay, err := booking.NewStayRange(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidStayRange)
	}

	bookingEntity, err := c.factory.NewBooking(offerEntity, guestID, stay, req.NumberOfGuests)
	if err != nil {
		return nil, markFactoryError(err)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if lockErr := tx.Bookings().LockOffer(ctx, req.OfferID); lockErr != nil {
			if infra.IsKind(lockErr, infra.KindNotFound) {
				return ErrOfferNotFound
			}
			return errs.Mark(lockErr, ErrDatabaseOperationFailed)
		}

		conflictID, findErr := tx.Bookings().FindConflict(ctx, req.OfferID, stay)
		if findErr != nil {
			return errs.Mark(findErr, ErrDatabaseOperationFailed)
		}
		if conflictID != nil {
			return errs.Mark(&DateConflictError{ConflictingBookingID: *conflictID}, ErrDateConflict)
		}

		if insertErr := tx.Bookings().Insert(ctx, bookingEntity); insertErr != nil {
			return errs.Mark(insertErr, ErrDatabaseOperationFailed)
		}

		return c.scheduleNotification(ctx, tx, "booking_created", bookingEntity)
	})
	if err != nil {
		return nil, err
	}

	c.invalidateAvailability(ctx, req.OfferID)

	return c.readBack(ctx, bookingEntity.ID())
}

func (c *bookingCommandsImpl) CancelAsGuest(ctx context.Context, bookingID, callerID uuid.UUID) (*queries.BookingView, error) {
	return c.transition(ctx, bookingID, "booking_cancelled", func(b *booking.Booking) error {
		return b.CancelByGuest(callerID, clock.Today(c.clock))
	})
}

func (c *bookingCommandsImpl) CancelAsHost(ctx context.Context, bookingID, callerID uuid.UUID) (*queries.BookingView, error) {
	return c.transition(ctx, bookingID, "booking_cancelled", func(b *booking.Booking) error {
		return b.CancelByHost(callerID, clock.Today(c.clock))
	})
}

func (c *bookingCommandsImpl) Confirm(ctx context.Context, bookingID, callerID uuid.UUID) (*queries.BookingView, error) {
	return c.transition(ctx, bookingID, "booking_confirmed", func(b *booking.Booking) error {
		return b.Confirm(callerID, clock.Today(c.clock))
	})
}

// transition loads the booking under a row lock, applies the state change
// through the entity's guards and persists the new status. Cancelled rows
// stop blocking the calendar the moment the transaction commits.
func (c *bookingCommandsImpl) transition(
	ctx context.Context,
	bookingID uuid.UUID,
	topic string,
	apply func(*booking.Booking) error,
) (*queries.BookingView, error) {
	var offerID uuid.UUID

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		bookingEntity, findErr := tx.Bookings().FindByIDForUpdate(ctx, bookingID)
		if findErr != nil {
			if infra.IsKind(findErr, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(findErr, ErrDatabaseOperationFailed)
		}
		offerID = bookingEntity.OfferID()

		if applyErr := apply(bookingEntity); applyErr != nil {
			return markTransitionError(applyErr)
		}

		now := c.clock.Now().UTC()
		if updErr := tx.Bookings().UpdateStatus(ctx, bookingID, bookingEntity.Status(), now); updErr != nil {
			return errs.Mark(updErr, ErrDatabaseOperationFailed)
		}

		return c.scheduleNotification(ctx, tx, topic, bookingEntity)
	})
	if err != nil {
		return nil, err
	}

	c.invalidateAvailability(ctx, offerID)

	return c.readBack(ctx, bookingID)
}

func (c *bookingCommandsImpl) loadOffer(ctx context.Context, offerID uuid.UUID) (*offer.Offer, error) {
	snap, err := c.offers.FindByID(ctx, offerID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, errs.Wrap(err, "failed to find offer")
	}

	return offer.NewOffer(
		snap.ID,
		snap.HostID,
		snap.PricePerNightCents,
		snap.MaxGuests,
		offer.Status(snap.Status),
		snap.IsArchive,
	)
}

func (c *bookingCommandsImpl) scheduleNotification(ctx context.Context, tx shared.Tx, topic string, b *booking.Booking) error {
	payload, err := json.Marshal(map[string]any{
		"booking_id": b.ID(),
		"offer_id":   b.OfferID(),
		"guest_id":   b.GuestID(),
		"host_id":    b.HostID(),
		"check_in":   b.Stay().CheckIn().Format("2006-01-02"),
		"check_out":  b.Stay().CheckOut().Format("2006-01-02"),
		"status":     b.Status().String(),
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	// The job row commits with the booking; delivery happens out of band
	// and its failures never reach the caller.
	if err := tx.Notifications().CreateJob(ctx, "email", topic, payload, c.clock.Now()); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

// invalidateAvailability runs after commit and before the caller sees
// success. A failed delete only shortens to the cache TTL, so it is logged
// rather than surfaced.
func (c *bookingCommandsImpl) invalidateAvailability(ctx context.Context, offerID uuid.UUID) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Invalidate(ctx, offerID); err != nil {
		slog.Warn("failed to invalidate availability cache", "offer_id", offerID, "error", err.Error())
	}
}

func (c *bookingCommandsImpl) readBack(ctx context.Context, bookingID uuid.UUID) (*queries.BookingView, error) {
	view, err := c.store.FindByID(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	view.Status = booking.DeriveStatus(booking.Status(view.Status), view.CheckOutDate, clock.Today(c.clock)).String()
	return view, nil
}

func markFactoryError(err error) error {
	switch {
	case errors.Is(err, booking.ErrCapacityExceeded):
		return errs.Mark(err, ErrCapacityExceeded)
	case errors.Is(err, booking.ErrOwnOffer):
		return errs.Mark(err, ErrOwnOffer)
	case errors.Is(err, booking.ErrCheckInInPast), errors.Is(err, booking.ErrInvalidStayRange):
		return errs.Mark(err, ErrInvalidStayRange)
	case errors.Is(err, offer.ErrInactiveOffer), errors.Is(err, offer.ErrArchivedOffer):
		return errs.Mark(err, ErrOfferNotBookable)
	default:
		return errs.Wrap(err, "booking validation failed")
	}
}

func markTransitionError(err error) error {
	switch {
	case errors.Is(err, booking.ErrNotGuest), errors.Is(err, booking.ErrNotHost):
		return errs.Mark(err, ErrForbidden)
	case errors.Is(err, booking.ErrTerminalStatus), errors.Is(err, booking.ErrAlreadyConfirmed):
		return errs.Mark(err, ErrInvalidState)
	default:
		return errs.Wrap(err, "booking transition failed")
	}
}
