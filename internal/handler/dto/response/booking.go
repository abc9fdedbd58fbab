package response

import (
	"time"

	"bookplace/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID              uuid.UUID `json:"id"`
	OfferID         uuid.UUID `json:"offerId"`
	OfferTitle      string    `json:"offerTitle"`
	GuestID         uuid.UUID `json:"guestId"`
	HostID          uuid.UUID `json:"hostId"`
	CheckInDate     string    `json:"checkInDate"`
	CheckOutDate    string    `json:"checkOutDate"`
	NumberOfGuests  int       `json:"numberOfGuests"`
	Status          string    `json:"status"`
	TotalPriceCents int64     `json:"totalPriceCents"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type BookingListResponse struct {
	ID              uuid.UUID `json:"id"`
	OfferID         uuid.UUID `json:"offerId"`
	OfferTitle      string    `json:"offerTitle"`
	CheckInDate     string    `json:"checkInDate"`
	CheckOutDate    string    `json:"checkOutDate"`
	NumberOfGuests  int       `json:"numberOfGuests"`
	Status          string    `json:"status"`
	TotalPriceCents int64     `json:"totalPriceCents"`
	CreatedAt       time.Time `json:"createdAt"`
}

type BookingPageResponse struct {
	Items      []*BookingListResponse `json:"items"`
	PageNumber int                    `json:"pageNumber"`
	PageSize   int                    `json:"pageSize"`
	TotalItems int64                  `json:"totalItems"`
	TotalPages int                    `json:"totalPages"`
}

type UnavailableDatesResponse struct {
	OfferID uuid.UUID `json:"offerId"`
	Year    int       `json:"year"`
	Month   int       `json:"month"`
	Dates   []string  `json:"dates"`
}

const dateLayout = "2006-01-02"

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:              v.ID,
		OfferID:         v.OfferID,
		OfferTitle:      v.OfferTitle,
		GuestID:         v.GuestID,
		HostID:          v.HostID,
		CheckInDate:     v.CheckInDate.Format(dateLayout),
		CheckOutDate:    v.CheckOutDate.Format(dateLayout),
		NumberOfGuests:  v.NumberOfGuests,
		Status:          v.Status,
		TotalPriceCents: v.TotalPriceCents,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

func FromBookingListItem(item *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:              item.ID,
		OfferID:         item.OfferID,
		OfferTitle:      item.OfferTitle,
		CheckInDate:     item.CheckInDate.Format(dateLayout),
		CheckOutDate:    item.CheckOutDate.Format(dateLayout),
		NumberOfGuests:  item.NumberOfGuests,
		Status:          item.Status,
		TotalPriceCents: item.TotalPriceCents,
		CreatedAt:       item.CreatedAt,
	}
}

func FromBookingPage(page *queries.Page) *BookingPageResponse {
	items := make([]*BookingListResponse, len(page.Items))
	for i, item := range page.Items {
		items[i] = FromBookingListItem(item)
	}
	return &BookingPageResponse{
		Items:      items,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}
}
