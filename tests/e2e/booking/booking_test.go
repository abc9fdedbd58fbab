//go:build e2e

package booking_test

import (
	"fmt"
	"math/rand/v2"
	"net/http"
	"sync"
	"testing"
	"time"

	"bookplace/internal/domain/user"
	"bookplace/internal/handler/dto/request"
	"bookplace/internal/handler/dto/response"
	"bookplace/tests/common/authtest"
	"bookplace/tests/common/dbtest"
	"bookplace/tests/common/httptest"
	"bookplace/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL         = "/api/bookings"
	unavailableDatesURL = "/api/offers/%s/unavailable-dates?year=%d&month=%d"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func (s *BookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

// day returns midnight UTC offset days from now; e2e runs against the real
// clock, so stays are always placed in the future.
func day(offset int) time.Time {
	now := time.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.AddDate(0, 0, offset)
}

func createRequest(offerID uuid.UUID, checkIn, checkOut time.Time, guests int) request.CreateBookingRequest {
	return request.CreateBookingRequest{
		OfferID:        offerID,
		CheckInDate:    checkIn,
		CheckOutDate:   checkOut,
		NumberOfGuests: guests,
	}
}

func (s *BookingSuite) token(userID uuid.UUID, role user.Role) string {
	return authtest.NewJWTHelper(s.Config.JWT).GenerateToken(s.T(), userID, role)
}

// =============================================================================
// TestCreateBooking - Booking creation API tests
// =============================================================================

func (s *BookingSuite) TestCreateBooking() {
	s.Run("Normal case: guest books a free range and reads it back", func() {
		t := s.T()

		hostID := dbtest.CreateTestUser(t, s.DB, "host@example.com", "Host")
		guestID := dbtest.CreateTestUser(t, s.DB, "guest@example.com", "Guest")
		offerID := dbtest.CreateTestOffer(t, s.DB, hostID, "Seaside Cabin", 12000, 4)

		token := s.token(guestID, user.RoleGuest)
		reqBody := createRequest(offerID, day(10), day(13), 2)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, token)
		require.Equal(t, http.StatusCreated, w.Code, "should create booking successfully")

		var created response.BookingResponse
		httptest.DecodeResponseBody(t, w.Body, &created)
		require.NotEqual(t, uuid.Nil, created.ID)

		// Fetch detail and assert
		dw := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"/"+created.ID.String(), nil, token)
		require.Equal(t, http.StatusOK, dw.Code)

		var actual response.BookingResponse
		httptest.DecodeResponseBody(t, dw.Body, &actual)

		expected := &response.BookingResponse{
			OfferID:         offerID,
			OfferTitle:      "Seaside Cabin",
			GuestID:         guestID,
			HostID:          hostID,
			CheckInDate:     day(10).Format("2006-01-02"),
			CheckOutDate:    day(13).Format("2006-01-02"),
			NumberOfGuests:  2,
			Status:          "confirmed",
			TotalPriceCents: 36000,
		}

		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.BookingResponse{}, "ID", "CreatedAt", "UpdatedAt"),
		}
		if diff := cmp.Diff(expected, &actual, opts...); diff != "" {
			t.Errorf("booking response mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("Error case: overlapping range returns 409 with the blocking booking", func() {
		t := s.T()

		hostID := dbtest.CreateTestUser(t, s.DB, "host@example.com", "Host")
		guestID := dbtest.CreateTestUser(t, s.DB, "guest@example.com", "Guest")
		rivalID := dbtest.CreateTestUser(t, s.DB, "rival@example.com", "Rival")
		offerID := dbtest.CreateTestOffer(t, s.DB, hostID, "Seaside Cabin", 12000, 4)

		guestToken := s.token(guestID, user.RoleGuest)
		w1 := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			createRequest(offerID, day(10), day(13), 2), guestToken)
		require.Equal(t, http.StatusCreated, w1.Code)

		var first response.BookingResponse
		httptest.DecodeResponseBody(t, w1.Body, &first)

		rivalToken := s.token(rivalID, user.RoleGuest)
		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			createRequest(offerID, day(12), day(15), 2), rivalToken)
		require.Equal(t, http.StatusConflict, w2.Code)

		var conflict map[string]any
		httptest.DecodeResponseBody(t, w2.Body, &conflict)
		detail, ok := conflict["detail"].(map[string]any)
		require.True(t, ok, "conflict response should carry a detail object: %v", conflict)
		require.Equal(t, first.ID.String(), detail["conflicting_booking_id"])
	})

	s.Run("Normal case: back-to-back stays share a boundary date", func() {
		t := s.T()

		hostID := dbtest.CreateTestUser(t, s.DB, "host@example.com", "Host")
		guestID := dbtest.CreateTestUser(t, s.DB, "guest@example.com", "Guest")
		rivalID := dbtest.CreateTestUser(t, s.DB, "rival@example.com", "Rival")
		offerID := dbtest.CreateTestOffer(t, s.DB, hostID, "Seaside Cabin", 12000, 4)

		w1 := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			createRequest(offerID, day(10), day(13), 2), s.token(guestID, user.RoleGuest))
		require.Equal(t, http.StatusCreated, w1.Code)

		// Checkout day is free, so the next stay may start on it
		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			createRequest(offerID, day(13), day(15), 2), s.token(rivalID, user.RoleGuest))
		require.Equal(t, http.StatusCreated, w2.Code)
	})

	s.Run("Normal case: cancelled booking frees the range", func() {
		t := s.T()

		hostID := dbtest.CreateTestUser(t, s.DB, "host@example.com", "Host")
		guestID := dbtest.CreateTestUser(t, s.DB, "guest@example.com", "Guest")
		rivalID := dbtest.CreateTestUser(t, s.DB, "rival@example.com", "Rival")
		offerID := dbtest.CreateTestOffer(t, s.DB, hostID, "Seaside Cabin", 12000, 4)

		guestToken := s.token(guestID, user.RoleGuest)
		w1 := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			createRequest(offerID, day(10), day(13), 2), guestToken)
		require.Equal(t, http.StatusCreated, w1.Code)

		var first response.BookingResponse
		httptest.DecodeResponseBody(t, w1.Body, &first)

		cw := httptest.PerformRequest(t, s.Router, http.MethodPost,
			bookingsURL+"/"+first.ID.String()+"/guest-cancel", nil, guestToken)
		require.Equal(t, http.StatusOK, cw.Code)

		var cancelled response.BookingResponse
		httptest.DecodeResponseBody(t, cw.Body, &cancelled)
		require.Equal(t, "cancelled_by_guest", cancelled.Status)

		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			createRequest(offerID, day(10), day(13), 2), s.token(rivalID, user.RoleGuest))
		require.Equal(t, http.StatusCreated, w2.Code)
	})

	s.Run("Error case: host cannot book own offer", func() {
		t := s.T()

		hostID := dbtest.CreateTestUser(t, s.DB, "host@example.com", "Host")
		offerID := dbtest.CreateTestOffer(t, s.DB, hostID, "Seaside Cabin", 12000, 4)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			createRequest(offerID, day(10), day(13), 2), s.token(hostID, user.RoleHost))
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	s.Run("Error case: inactive offer is not bookable", func() {
		t := s.T()

		hostID := dbtest.CreateTestUser(t, s.DB, "host@example.com", "Host")
		guestID := dbtest.CreateTestUser(t, s.DB, "guest@example.com", "Guest")
		offerID := dbtest.CreateTestOffer(t, s.DB, hostID, "Seaside Cabin", 12000, 4)
		dbtest.SetOfferStatus(t, s.DB, offerID, "inactive", false)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			createRequest(offerID, day(10), day(13), 2), s.token(guestID, user.RoleGuest))
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	s.Run("Auth test: unauthorized when not logged in", func() {
		t := s.T()

		hostID := dbtest.CreateTestUser(t, s.DB, "host@example.com", "Host")
		offerID := dbtest.CreateTestOffer(t, s.DB, hostID, "Seaside Cabin", 12000, 4)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			createRequest(offerID, day(10), day(13), 2), "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// TestConcurrentCreate - the offer row lock serializes racing requests
// =============================================================================

func (s *BookingSuite) TestConcurrentCreate() {
	s.Run("Concurrency: exactly one of two racing requests wins", func() {
		t := s.T()

		hostID := dbtest.CreateTestUser(t, s.DB, "host@example.com", "Host")
		guestID := dbtest.CreateTestUser(t, s.DB, "guest@example.com", "Guest")
		rivalID := dbtest.CreateTestUser(t, s.DB, "rival@example.com", "Rival")
		offerID := dbtest.CreateTestOffer(t, s.DB, hostID, "Seaside Cabin", 12000, 4)

		tokens := []string{
			s.token(guestID, user.RoleGuest),
			s.token(rivalID, user.RoleGuest),
		}

		codes := make([]int, len(tokens))
		var wg sync.WaitGroup
		for i, token := range tokens {
			wg.Add(1)
			go func(i int, token string) {
				defer wg.Done()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
					createRequest(offerID, day(10), day(13), 2), token)
				codes[i] = w.Code
			}(i, token)
		}
		wg.Wait()

		created, conflicted := 0, 0
		for _, code := range codes {
			switch code {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
				conflicted++
			}
		}
		require.Equal(t, 1, created, "exactly one request should win, got codes %v", codes)
		require.Equal(t, 1, conflicted, "the loser should see a conflict, got codes %v", codes)
	})

	s.Run("Concurrency: surviving bookings from random racing requests never overlap", func() {
		t := s.T()

		hostID := dbtest.CreateTestUser(t, s.DB, "host@example.com", "Host")
		offerID := dbtest.CreateTestOffer(t, s.DB, hostID, "Seaside Cabin", 12000, 4)

		const attempts = 12
		type attempt struct {
			token    string
			checkIn  time.Time
			checkOut time.Time
		}
		requests := make([]attempt, attempts)
		for i := range requests {
			guestID := dbtest.CreateTestUser(t, s.DB, fmt.Sprintf("guest%d@example.com", i), fmt.Sprintf("Guest %d", i))
			start := day(10 + rand.IntN(10))
			requests[i] = attempt{
				token:    s.token(guestID, user.RoleGuest),
				checkIn:  start,
				checkOut: start.AddDate(0, 0, 1+rand.IntN(4)),
			}
		}

		codes := make([]int, attempts)
		var wg sync.WaitGroup
		for i, req := range requests {
			wg.Add(1)
			go func(i int, req attempt) {
				defer wg.Done()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
					createRequest(offerID, req.checkIn, req.checkOut, 2), req.token)
				codes[i] = w.Code
			}(i, req)
		}
		wg.Wait()

		var winners []attempt
		for i, code := range codes {
			require.Contains(t, []int{http.StatusCreated, http.StatusConflict}, code,
				"request %d (%s..%s) got unexpected code %d",
				i, requests[i].checkIn.Format("2006-01-02"), requests[i].checkOut.Format("2006-01-02"), code)
			if code == http.StatusCreated {
				winners = append(winners, requests[i])
			}
		}
		require.NotEmpty(t, winners, "at least one request should win, got codes %v", codes)

		// Stays are half-open, so sharing a boundary date is not an overlap
		for i := range winners {
			for j := i + 1; j < len(winners); j++ {
				overlap := winners[i].checkIn.Before(winners[j].checkOut) &&
					winners[j].checkIn.Before(winners[i].checkOut)
				require.False(t, overlap, "surviving bookings %s..%s and %s..%s overlap",
					winners[i].checkIn.Format("2006-01-02"), winners[i].checkOut.Format("2006-01-02"),
					winners[j].checkIn.Format("2006-01-02"), winners[j].checkOut.Format("2006-01-02"))
			}
		}
	})
}

// =============================================================================
// TestListBookings - listing, filters and pagination
// =============================================================================

func (s *BookingSuite) TestListBookings() {
	s.Run("Normal case: guest sees own bookings newest stay first", func() {
		t := s.T()

		hostID := dbtest.CreateTestUser(t, s.DB, "host@example.com", "Host")
		guestID := dbtest.CreateTestUser(t, s.DB, "guest@example.com", "Guest")
		otherID := dbtest.CreateTestUser(t, s.DB, "other@example.com", "Other")
		offerID := dbtest.CreateTestOffer(t, s.DB, hostID, "Seaside Cabin", 12000, 4)

		dbtest.CreateTestBooking(t, s.DB, offerID, guestID, day(10), day(12), "confirmed", 24000)
		dbtest.CreateTestBooking(t, s.DB, offerID, guestID, day(20), day(22), "confirmed", 24000)
		dbtest.CreateTestBooking(t, s.DB, offerID, guestID, day(30), day(32), "pending", 24000)
		dbtest.CreateTestBooking(t, s.DB, offerID, otherID, day(40), day(42), "confirmed", 24000)

		token := s.token(guestID, user.RoleGuest)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?role=guest", nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		var page response.BookingPageResponse
		httptest.DecodeResponseBody(t, w.Body, &page)
		require.Equal(t, int64(3), page.TotalItems)
		require.Len(t, page.Items, 3)
		require.Equal(t, day(30).Format("2006-01-02"), page.Items[0].CheckInDate)
		require.Equal(t, day(10).Format("2006-01-02"), page.Items[2].CheckInDate)
	})

	s.Run("Normal case: pagination slices a stable order", func() {
		t := s.T()

		hostID := dbtest.CreateTestUser(t, s.DB, "host@example.com", "Host")
		guestID := dbtest.CreateTestUser(t, s.DB, "guest@example.com", "Guest")
		offerID := dbtest.CreateTestOffer(t, s.DB, hostID, "Seaside Cabin", 12000, 4)

		for i := range 5 {
			dbtest.CreateTestBooking(t, s.DB, offerID, guestID, day(10+3*i), day(12+3*i), "confirmed", 24000)
		}

		token := s.token(guestID, user.RoleGuest)
		w1 := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?page=1&page_size=2", nil, token)
		require.Equal(t, http.StatusOK, w1.Code)

		var page1 response.BookingPageResponse
		httptest.DecodeResponseBody(t, w1.Body, &page1)
		require.Equal(t, int64(5), page1.TotalItems)
		require.Equal(t, 3, page1.TotalPages)
		require.Len(t, page1.Items, 2)

		w2 := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?page=3&page_size=2", nil, token)
		var page3 response.BookingPageResponse
		httptest.DecodeResponseBody(t, w2.Body, &page3)
		require.Len(t, page3.Items, 1)

		// A page past the end keeps the true totals
		w4 := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?page=9&page_size=2", nil, token)
		var page9 response.BookingPageResponse
		httptest.DecodeResponseBody(t, w4.Body, &page9)
		require.Empty(t, page9.Items)
		require.Equal(t, int64(5), page9.TotalItems)
	})

	s.Run("Normal case: host role lists bookings on own offers", func() {
		t := s.T()

		hostID := dbtest.CreateTestUser(t, s.DB, "host@example.com", "Host")
		guestID := dbtest.CreateTestUser(t, s.DB, "guest@example.com", "Guest")
		offerID := dbtest.CreateTestOffer(t, s.DB, hostID, "Seaside Cabin", 12000, 4)

		dbtest.CreateTestBooking(t, s.DB, offerID, guestID, day(10), day(12), "confirmed", 24000)

		token := s.token(hostID, user.RoleHost)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?role=host", nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		var page response.BookingPageResponse
		httptest.DecodeResponseBody(t, w.Body, &page)
		require.Equal(t, int64(1), page.TotalItems)
		require.Equal(t, offerID, page.Items[0].OfferID)
	})

	s.Run("Normal case: status filter distinguishes completed from confirmed", func() {
		t := s.T()

		hostID := dbtest.CreateTestUser(t, s.DB, "host@example.com", "Host")
		guestID := dbtest.CreateTestUser(t, s.DB, "guest@example.com", "Guest")
		offerID := dbtest.CreateTestOffer(t, s.DB, hostID, "Seaside Cabin", 12000, 4)

		dbtest.CreateTestBooking(t, s.DB, offerID, guestID, day(-10), day(-7), "confirmed", 36000)
		dbtest.CreateTestBooking(t, s.DB, offerID, guestID, day(10), day(13), "confirmed", 36000)

		token := s.token(guestID, user.RoleGuest)

		w1 := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?status=completed", nil, token)
		var completed response.BookingPageResponse
		httptest.DecodeResponseBody(t, w1.Body, &completed)
		require.Equal(t, int64(1), completed.TotalItems)
		require.Equal(t, "completed", completed.Items[0].Status)

		w2 := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?status=confirmed", nil, token)
		var confirmed response.BookingPageResponse
		httptest.DecodeResponseBody(t, w2.Body, &confirmed)
		require.Equal(t, int64(1), confirmed.TotalItems)
		require.Equal(t, "confirmed", confirmed.Items[0].Status)
	})
}

// =============================================================================
// TestTransitions - cancel and confirm flows
// =============================================================================

func (s *BookingSuite) TestTransitions() {
	s.Run("Normal case: host confirms a pending booking", func() {
		t := s.T()

		hostID := dbtest.CreateTestUser(t, s.DB, "host@example.com", "Host")
		guestID := dbtest.CreateTestUser(t, s.DB, "guest@example.com", "Guest")
		offerID := dbtest.CreateTestOffer(t, s.DB, hostID, "Seaside Cabin", 12000, 4)
		bookingID := dbtest.CreateTestBooking(t, s.DB, offerID, guestID, day(10), day(13), "pending", 36000)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			bookingsURL+"/"+bookingID.String()+"/confirm", nil, s.token(hostID, user.RoleHost))
		require.Equal(t, http.StatusOK, w.Code)

		var confirmed response.BookingResponse
		httptest.DecodeResponseBody(t, w.Body, &confirmed)
		require.Equal(t, "confirmed", confirmed.Status)
	})

	s.Run("Error case: guest may not confirm", func() {
		t := s.T()

		hostID := dbtest.CreateTestUser(t, s.DB, "host@example.com", "Host")
		guestID := dbtest.CreateTestUser(t, s.DB, "guest@example.com", "Guest")
		offerID := dbtest.CreateTestOffer(t, s.DB, hostID, "Seaside Cabin", 12000, 4)
		bookingID := dbtest.CreateTestBooking(t, s.DB, offerID, guestID, day(10), day(13), "pending", 36000)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			bookingsURL+"/"+bookingID.String()+"/confirm", nil, s.token(guestID, user.RoleGuest))
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	s.Run("Error case: stranger may not cancel", func() {
		t := s.T()

		hostID := dbtest.CreateTestUser(t, s.DB, "host@example.com", "Host")
		guestID := dbtest.CreateTestUser(t, s.DB, "guest@example.com", "Guest")
		strangerID := dbtest.CreateTestUser(t, s.DB, "stranger@example.com", "Stranger")
		offerID := dbtest.CreateTestOffer(t, s.DB, hostID, "Seaside Cabin", 12000, 4)
		bookingID := dbtest.CreateTestBooking(t, s.DB, offerID, guestID, day(10), day(13), "confirmed", 36000)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			bookingsURL+"/"+bookingID.String()+"/guest-cancel", nil, s.token(strangerID, user.RoleGuest))
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	s.Run("Error case: cancelling twice conflicts", func() {
		t := s.T()

		hostID := dbtest.CreateTestUser(t, s.DB, "host@example.com", "Host")
		guestID := dbtest.CreateTestUser(t, s.DB, "guest@example.com", "Guest")
		offerID := dbtest.CreateTestOffer(t, s.DB, hostID, "Seaside Cabin", 12000, 4)
		bookingID := dbtest.CreateTestBooking(t, s.DB, offerID, guestID, day(10), day(13), "confirmed", 36000)

		token := s.token(guestID, user.RoleGuest)
		w1 := httptest.PerformRequest(t, s.Router, http.MethodPost,
			bookingsURL+"/"+bookingID.String()+"/guest-cancel", nil, token)
		require.Equal(t, http.StatusOK, w1.Code)

		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost,
			bookingsURL+"/"+bookingID.String()+"/guest-cancel", nil, token)
		require.Equal(t, http.StatusConflict, w2.Code)
	})

	s.Run("Error case: completed stay cannot be cancelled", func() {
		t := s.T()

		hostID := dbtest.CreateTestUser(t, s.DB, "host@example.com", "Host")
		guestID := dbtest.CreateTestUser(t, s.DB, "guest@example.com", "Guest")
		offerID := dbtest.CreateTestOffer(t, s.DB, hostID, "Seaside Cabin", 12000, 4)
		bookingID := dbtest.CreateTestBooking(t, s.DB, offerID, guestID, day(-10), day(-7), "confirmed", 36000)

		w1 := httptest.PerformRequest(t, s.Router, http.MethodPost,
			bookingsURL+"/"+bookingID.String()+"/guest-cancel", nil, s.token(guestID, user.RoleGuest))
		require.Equal(t, http.StatusConflict, w1.Code)

		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost,
			bookingsURL+"/"+bookingID.String()+"/host-cancel", nil, s.token(hostID, user.RoleHost))
		require.Equal(t, http.StatusConflict, w2.Code)

		// The stay still reads as completed afterwards
		dw := httptest.PerformRequest(t, s.Router, http.MethodGet,
			bookingsURL+"/"+bookingID.String(), nil, s.token(guestID, user.RoleGuest))
		require.Equal(t, http.StatusOK, dw.Code)

		var view response.BookingResponse
		httptest.DecodeResponseBody(t, dw.Body, &view)
		require.Equal(t, "completed", view.Status)
	})

	s.Run("Normal case: past confirmed stay reads as completed", func() {
		t := s.T()

		hostID := dbtest.CreateTestUser(t, s.DB, "host@example.com", "Host")
		guestID := dbtest.CreateTestUser(t, s.DB, "guest@example.com", "Guest")
		offerID := dbtest.CreateTestOffer(t, s.DB, hostID, "Seaside Cabin", 12000, 4)
		bookingID := dbtest.CreateTestBooking(t, s.DB, offerID, guestID, day(-10), day(-7), "confirmed", 36000)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			bookingsURL+"/"+bookingID.String(), nil, s.token(guestID, user.RoleGuest))
		require.Equal(t, http.StatusOK, w.Code)

		var view response.BookingResponse
		httptest.DecodeResponseBody(t, w.Body, &view)
		require.Equal(t, "completed", view.Status)
	})
}

// =============================================================================
// TestUnavailableDates - public availability calendar
// =============================================================================

func (s *BookingSuite) TestUnavailableDates() {
	s.Run("Normal case: active stays block their nights, checkout day stays free", func() {
		t := s.T()

		hostID := dbtest.CreateTestUser(t, s.DB, "host@example.com", "Host")
		guestID := dbtest.CreateTestUser(t, s.DB, "guest@example.com", "Guest")
		offerID := dbtest.CreateTestOffer(t, s.DB, hostID, "Seaside Cabin", 12000, 4)

		checkIn := day(35)
		checkOut := day(38)
		dbtest.CreateTestBooking(t, s.DB, offerID, guestID, checkIn, checkOut, "confirmed", 36000)
		// Cancelled stays never block the calendar
		dbtest.CreateTestBooking(t, s.DB, offerID, guestID, day(50), day(55), "cancelled_by_guest", 60000)

		url := fmt.Sprintf(unavailableDatesURL, offerID, checkIn.Year(), int(checkIn.Month()))
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, "")
		require.Equal(t, http.StatusOK, w.Code, "calendar is public, no token needed")

		var cal response.UnavailableDatesResponse
		httptest.DecodeResponseBody(t, w.Body, &cal)

		for d := checkIn; d.Before(checkOut); d = d.AddDate(0, 0, 1) {
			if int(d.Month()) == int(checkIn.Month()) {
				require.Contains(t, cal.Dates, d.Format("2006-01-02"))
			}
		}
		require.NotContains(t, cal.Dates, checkOut.Format("2006-01-02"))
	})

	s.Run("Normal case: empty month returns an empty list", func() {
		t := s.T()

		hostID := dbtest.CreateTestUser(t, s.DB, "host@example.com", "Host")
		offerID := dbtest.CreateTestOffer(t, s.DB, hostID, "Seaside Cabin", 12000, 4)

		future := day(365)
		url := fmt.Sprintf(unavailableDatesURL, offerID, future.Year(), int(future.Month()))
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var cal response.UnavailableDatesResponse
		httptest.DecodeResponseBody(t, w.Body, &cal)
		require.Empty(t, cal.Dates)
	})

	s.Run("Error case: unknown offer returns 404", func() {
		t := s.T()

		url := fmt.Sprintf(unavailableDatesURL, uuid.New(), 2030, 6)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, "")
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	s.Run("Error case: month out of range returns 400", func() {
		t := s.T()

		hostID := dbtest.CreateTestUser(t, s.DB, "host@example.com", "Host")
		offerID := dbtest.CreateTestOffer(t, s.DB, hostID, "Seaside Cabin", 12000, 4)

		url := fmt.Sprintf(unavailableDatesURL, offerID, 2030, 13)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, "")
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}
