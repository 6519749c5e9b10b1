package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"tourbook/entity"
)

type bookingResponse struct {
	BookingID     string               `json:"booking_id"`
	Reference     string               `json:"reference"`
	TourID        string               `json:"tour_id"`
	Date          string               `json:"date"`
	Time          string               `json:"time"`
	Adults        int                  `json:"adults"`
	Children      int                  `json:"children"`
	Infants       int                  `json:"infants"`
	Total         float64              `json:"total"`
	Status        entity.BookingStatus `json:"status"`
	PaymentMethod entity.PaymentMethod `json:"payment_method"`
	TransactionID string               `json:"transaction_id"`
}

type putBookingStatusRequest struct {
	Status entity.BookingStatus `json:"status"`
}

type deleteBookingsRequest struct {
	BookingIDs []string `json:"booking_ids"`
}

func (s Server) GetBookings(c echo.Context) error {
	tenantID := c.QueryParam("tenant_id")
	if tenantID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "tenant_id is required")
	}

	bookings, err := s.bookingsRepo.FindByTenant(c.Request().Context(), tenantID)
	if err != nil {
		return err
	}

	response := lo.Map(bookings, func(b entity.Booking, _ int) bookingResponse {
		return bookingResponse{
			BookingID:     b.BookingID,
			Reference:     b.Reference,
			TourID:        b.TourID,
			Date:          b.ActivityDateRaw,
			Time:          b.ActivityTime,
			Adults:        b.Adults,
			Children:      b.Children,
			Infants:       b.Infants,
			Total:         b.Total,
			Status:        b.Status,
			PaymentMethod: b.PaymentMethod,
			TransactionID: b.TransactionID,
		}
	})

	return c.JSON(http.StatusOK, response)
}

func (s Server) PutBookingStatus(c echo.Context) error {
	tenantID := c.QueryParam("tenant_id")
	if tenantID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "tenant_id is required")
	}

	var request putBookingStatusRequest
	if err := c.Bind(&request); err != nil {
		return err
	}
	if !request.Status.IsValid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown booking status")
	}

	err := s.bookingsRepo.UpdateStatus(c.Request().Context(), tenantID, c.Param("booking_id"), request.Status)
	if err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (s Server) PutBookingCancel(c echo.Context) error {
	tenantID := c.QueryParam("tenant_id")
	if tenantID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "tenant_id is required")
	}

	err := s.bookingsRepo.UpdateStatus(c.Request().Context(), tenantID, c.Param("booking_id"), entity.BookingStatusCancelled)
	if err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (s Server) DeleteBookings(c echo.Context) error {
	tenantID := c.QueryParam("tenant_id")
	if tenantID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "tenant_id is required")
	}

	var request deleteBookingsRequest
	if err := c.Bind(&request); err != nil {
		return err
	}
	if len(request.BookingIDs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "booking_ids is required")
	}

	err := s.bookingsRepo.DeleteByIDs(c.Request().Context(), tenantID, request.BookingIDs)
	if err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
