package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"tourbook/entity"
)

type postToursRequest struct {
	TourID    string  `json:"tour_id"`
	TenantID  string  `json:"tenant_id"`
	Title     string  `json:"title"`
	BasePrice float64 `json:"base_price"`
}

func (s Server) PostTours(c echo.Context) error {
	var request postToursRequest
	if err := c.Bind(&request); err != nil {
		return err
	}
	if request.TenantID == "" || request.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "tenant_id and title are required")
	}

	tour := entity.Tour{
		TourID:    request.TourID,
		TenantID:  request.TenantID,
		Title:     request.Title,
		BasePrice: request.BasePrice,
		CreatedAt: time.Now().UTC(),
	}
	if tour.TourID == "" {
		tour.TourID = uuid.NewString()
	}

	if err := s.toursRepo.Store(c.Request().Context(), tour); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, tour)
}

func (s Server) GetTour(c echo.Context) error {
	tenantID := c.QueryParam("tenant_id")
	if tenantID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "tenant_id is required")
	}

	tour, err := s.toursRepo.Get(c.Request().Context(), tenantID, c.Param("tour_id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tour)
}
