package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	reqdto "bookplace/internal/handler/dto/request"
	resdto "bookplace/internal/handler/dto/response"
	"bookplace/internal/handler/httperr"
	"bookplace/internal/handler/middleware"
	"bookplace/internal/usecase/commands"
	"bookplace/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Create booking
// @Description Reserve a stay on an offer for the given date range
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	guestID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	view, err := h.bookingCommands.Create(c.Request.Context(), req, guestID)
	if err != nil {
		h.respondCreateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

func (h *BookingHandler) respondCreateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrOfferNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Offer not found", nil)
	case errors.Is(err, commands.ErrInvalidStayRange):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid stay range", nil)
	case errors.Is(err, commands.ErrCapacityExceeded):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Guest count exceeds offer capacity", nil)
	case errors.Is(err, commands.ErrOwnOffer):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Hosts cannot book their own offer", nil)
	case errors.Is(err, commands.ErrOfferNotBookable):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Offer is not open for booking", nil)
	case errors.Is(err, commands.ErrDateConflict):
		var detail any
		var conflict *commands.DateConflictError
		if errors.As(err, &conflict) {
			detail = gin.H{"conflicting_booking_id": conflict.ConflictingBookingID}
		}
		httperr.AbortWithError(c, http.StatusConflict, err, "Requested dates conflict with an existing booking", detail)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

// @Summary Get booking
// @Description Get booking by ID; only the guest or the host may view it
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), callerID, id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		case errors.Is(err, queries.ErrForbidden):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Not a participant of this booking", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List bookings
// @Description List the caller's bookings with optional role, status, offer and date filters
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param role query string false "guest or host"
// @Param status query string false "Booking status"
// @Param offer_id query string false "Offer ID"
// @Param date_from query string false "Earliest stay date (2006-01-02)"
// @Param date_to query string false "Latest stay date (2006-01-02)"
// @Param page query int false "Page number (1-based)"
// @Param page_size query int false "Page size"
// @Success 200 {object} resdto.BookingPageResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	var req reqdto.ListBookingsRequest
	if bindErr := c.ShouldBindQuery(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid query parameters", nil)
		return
	}

	filter, err := req.ToFilter()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid filter values", nil)
		return
	}

	page, err := h.bookingQueries.List(c.Request.Context(), callerID, filter, req.ToPage())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingPage(page))
}

// @Summary Cancel booking as guest
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/guest-cancel [post]
func (h *BookingHandler) CancelAsGuest(c *gin.Context) {
	h.transition(c, h.bookingCommands.CancelAsGuest)
}

// @Summary Cancel booking as host
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/host-cancel [post]
func (h *BookingHandler) CancelAsHost(c *gin.Context) {
	h.transition(c, h.bookingCommands.CancelAsHost)
}

// @Summary Confirm booking
// @Description Host confirms a pending booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/confirm [post]
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	h.transition(c, h.bookingCommands.Confirm)
}

func (h *BookingHandler) transition(
	c *gin.Context,
	apply func(ctx context.Context, bookingID, callerID uuid.UUID) (*queries.BookingView, error),
) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	view, err := apply(c.Request.Context(), id, callerID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		case errors.Is(err, commands.ErrForbidden):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Caller may not act on this booking", nil)
		case errors.Is(err, commands.ErrInvalidState):
			httperr.AbortWithError(c, http.StatusConflict, err, "Booking state does not allow this transition", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Offer unavailable dates
// @Description Blocked calendar dates for the offer in the given month
// @Tags offers
// @Produce json
// @Param id path string true "Offer ID"
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {object} resdto.UnavailableDatesResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /offers/{id}/unavailable-dates [get]
func (h *BookingHandler) GetUnavailableDates(c *gin.Context) {
	offerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid offer ID format", nil)
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1 {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid year", nil)
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid month", nil)
		return
	}

	dates, err := h.bookingQueries.UnavailableDates(c.Request.Context(), offerID, year, month)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrOfferNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Offer not found", nil)
		case errors.Is(err, queries.ErrInvalidMonth):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Month must be between 1 and 12", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.UnavailableDatesResponse{
		OfferID: offerID,
		Year:    year,
		Month:   month,
		Dates:   dates,
	})
}
