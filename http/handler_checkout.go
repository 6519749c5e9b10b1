package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"tourbook/checkout"
	"tourbook/metrics"
)

type checkoutResponse struct {
	Success        bool     `json:"success"`
	Reference      string   `json:"booking_reference"`
	BookingIDs     []string `json:"booking_ids"`
	TransactionID  string   `json:"transaction_id"`
	CustomerName   string   `json:"customer_name"`
	CustomerEmail  string   `json:"customer_email"`
	Duplicate      bool     `json:"duplicate,omitempty"`
	AccountCreated bool     `json:"account_created,omitempty"`
}

func (s Server) PostCheckout(c echo.Context) error {
	var request checkout.Request
	err := c.Bind(&request)
	if err != nil {
		return err
	}

	if request.TenantID == "" {
		request.TenantID = c.Request().Header.Get("X-Tenant-ID")
	}

	result, err := s.checkoutWorkflow.Process(c.Request().Context(), request)

	labels := prometheus.Labels{
		"tenant":         request.TenantID,
		"payment_method": string(request.PaymentMethod),
		"result":         "ok",
	}
	if err != nil {
		labels["result"] = "error"
	}
	metrics.CheckoutsTotal.With(labels).Inc()

	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.Duplicate {
		status = http.StatusOK
	}

	return c.JSON(status, checkoutResponse{
		Success:        true,
		Reference:      result.Reference,
		BookingIDs:     result.BookingIDs,
		TransactionID:  result.TransactionID,
		CustomerName:   result.CustomerName,
		CustomerEmail:  result.CustomerEmail,
		Duplicate:      result.Duplicate,
		AccountCreated: result.AccountCreated,
	})
}
