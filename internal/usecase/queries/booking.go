package queries

import (
	"context"
	"sort"
	"time"

	"bookplace/internal/domain/booking"
	"bookplace/internal/domain/user"
	"bookplace/internal/infra"
	"bookplace/internal/pkg/clock"
	"bookplace/internal/pkg/errs"
	"bookplace/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrOfferNotFound   = errs.New("offer not found")
	ErrForbidden       = errs.New("caller may not view this booking")
	ErrInvalidMonth    = errs.New("month must be between 1 and 12")
)

// Read models (DTO for read side)
type BookingView struct {
	ID              uuid.UUID `json:"id"`
	OfferID         uuid.UUID `json:"offer_id"`
	OfferTitle      string    `json:"offer_title"`
	GuestID         uuid.UUID `json:"guest_id"`
	HostID          uuid.UUID `json:"host_id"`
	CheckInDate     time.Time `json:"check_in_date"`
	CheckOutDate    time.Time `json:"check_out_date"`
	NumberOfGuests  int       `json:"number_of_guests"`
	Status          string    `json:"status"`
	TotalPriceCents int64     `json:"total_price_cents"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type BookingListItem struct {
	ID              uuid.UUID `json:"id"`
	OfferID         uuid.UUID `json:"offer_id"`
	OfferTitle      string    `json:"offer_title"`
	GuestID         uuid.UUID `json:"guest_id"`
	CheckInDate     time.Time `json:"check_in_date"`
	CheckOutDate    time.Time `json:"check_out_date"`
	NumberOfGuests  int       `json:"number_of_guests"`
	Status          string    `json:"status"`
	TotalPriceCents int64     `json:"total_price_cents"`
	CreatedAt       time.Time `json:"created_at"`
}

// BookingFilter interprets absence as "no constraint". Role narrows the
// caller's side of the booking; empty role matches either side.
type BookingFilter struct {
	Role     user.Role
	Status   *booking.Status
	OfferID  *uuid.UUID
	DateFrom *time.Time
	DateTo   *time.Time
}

// StayRow is a bare occupied range used for calendar expansion.
type StayRow struct {
	BookingID uuid.UUID
	CheckIn   time.Time
	CheckOut  time.Time
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	// List returns one page plus the unpaginated total. today drives the
	// derived-completed interpretation of status filters.
	List(ctx context.Context, callerID uuid.UUID, filter BookingFilter, today time.Time, limit, offset int32) ([]*BookingListItem, int64, error)
	// FindActiveStays returns active bookings for the offer intersecting
	// [from, to).
	FindActiveStays(ctx context.Context, offerID uuid.UUID, from, to time.Time) ([]StayRow, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, callerID, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, callerID uuid.UUID, filter BookingFilter, page PageRequest) (*Page, error)
	// UnavailableDates expands every active stay for the offer into the
	// blocked calendar dates of the given month, as "2006-01-02" strings.
	UnavailableDates(ctx context.Context, offerID uuid.UUID, year, month int) ([]string, error)
}

type bookingQueriesImpl struct {
	store  BookingReadStore
	offers shared.OfferReadStore
	cache  shared.AvailabilityCache
	clock  clock.Clock
}

func NewBookingQueries(
	store BookingReadStore,
	offers shared.OfferReadStore,
	cache shared.AvailabilityCache,
	clk clock.Clock,
) BookingQueries {
	return &bookingQueriesImpl{
		store:  store,
		offers: offers,
		cache:  cache,
		clock:  clk,
	}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, callerID, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Wrap(err, "failed to find booking")
	}

	if callerID != view.GuestID && callerID != view.HostID {
		return nil, ErrForbidden
	}

	view.Status = deriveStatus(view.Status, view.CheckOutDate, clock.Today(q.clock))
	return view, nil
}

func (q *bookingQueriesImpl) List(ctx context.Context, callerID uuid.UUID, filter BookingFilter, page PageRequest) (*Page, error) {
	page = page.Normalize()
	today := clock.Today(q.clock)

	items, total, err := q.store.List(ctx, callerID, filter, today, page.Limit(), page.Offset())
	if err != nil {
		return nil, errs.Wrap(err, "failed to list bookings")
	}

	for _, item := range items {
		item.Status = deriveStatus(item.Status, item.CheckOutDate, today)
	}

	return NewPage(items, page, total), nil
}

func (q *bookingQueriesImpl) UnavailableDates(ctx context.Context, offerID uuid.UUID, year, month int) ([]string, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}

	if _, err := q.offers.FindByID(ctx, offerID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, errs.Wrap(err, "failed to find offer")
	}

	if q.cache != nil {
		if dates, ok, err := q.cache.GetMonth(ctx, offerID, year, month); err == nil && ok {
			return dates, nil
		}
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	stays, err := q.store.FindActiveStays(ctx, offerID, monthStart, monthEnd)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load occupied ranges")
	}

	dates := expandToDates(stays, monthStart, monthEnd)

	if q.cache != nil {
		// Best effort; the read path never fails on cache writes.
		_ = q.cache.SetMonth(ctx, offerID, year, month, dates)
	}

	return dates, nil
}

func expandToDates(stays []StayRow, from, to time.Time) []string {
	seen := make(map[string]struct{})
	for _, row := range stays {
		stay, err := booking.NewStayRange(row.CheckIn, row.CheckOut)
		if err != nil {
			continue
		}
		clamped, ok := stay.ClampTo(from, to)
		if !ok {
			continue
		}
		for _, d := range clamped.Dates() {
			seen[d.Format("2006-01-02")] = struct{}{}
		}
	}

	dates := make([]string, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

func deriveStatus(stored string, checkOut, today time.Time) string {
	return booking.DeriveStatus(booking.Status(stored), checkOut, today).String()
}
