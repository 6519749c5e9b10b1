package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"tourbook/checkout"
	"tourbook/entity"
)

type CheckoutWorkflow interface {
	Process(ctx context.Context, req checkout.Request) (checkout.Result, error)
}

type BookingsRepository interface {
	FindByTenant(ctx context.Context, tenantID string) ([]entity.Booking, error)
	UpdateStatus(ctx context.Context, tenantID, bookingID string, status entity.BookingStatus) error
	DeleteByIDs(ctx context.Context, tenantID string, bookingIDs []string) error
}

type ToursRepository interface {
	Store(ctx context.Context, tour entity.Tour) error
	Get(ctx context.Context, tenantID, tourID string) (entity.Tour, error)
}

type Server struct {
	addr             string
	e                *echo.Echo
	checkoutWorkflow CheckoutWorkflow
	bookingsRepo     BookingsRepository
	toursRepo        ToursRepository
}

func NewServer(
	addr string,
	checkoutWorkflow CheckoutWorkflow,
	bookingsRepo BookingsRepository,
	toursRepo ToursRepository,
	exposeErrors bool,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echoMiddleware.Recover())
	e.Use(otelecho.Middleware("tourbook"))
	e.HTTPErrorHandler = newHTTPErrorHandler(e, exposeErrors)

	server := &Server{
		addr:             addr,
		e:                e,
		checkoutWorkflow: checkoutWorkflow,
		bookingsRepo:     bookingsRepo,
		toursRepo:        toursRepo,
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/checkout", server.PostCheckout)

	e.GET("/bookings", server.GetBookings)
	e.PUT("/bookings/:booking_id/status", server.PutBookingStatus)
	e.PUT("/bookings/:booking_id/cancel", server.PutBookingCancel)
	e.DELETE("/bookings", server.DeleteBookings)

	e.POST("/tours", server.PostTours)
	e.GET("/tours/:tour_id", server.GetTour)

	return server
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		err := s.e.Shutdown(ctx)
		if err != nil {
			log.FromContext(ctx).WithError(err).Error("failed to shutdown HTTP server")
		}
	}()
	log.FromContext(ctx).WithField("addr", s.addr).Info("[HTTP] server listening")
	if err := s.e.Start(s.addr); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newHTTPErrorHandler maps the error taxonomy to status codes. Payment
// failures get their own status so clients can prompt a retry with a
// different method; raw server-error messages are withheld in production.
func newHTTPErrorHandler(e *echo.Echo, exposeErrors bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			httpErr    *echo.HTTPError
			paymentErr entity.PaymentError
		)

		switch {
		case errors.As(err, &httpErr):
			// already mapped by the handler
		case errors.As(err, &paymentErr):
			err = echo.NewHTTPError(http.StatusPaymentRequired, paymentErr.Error())
		case errors.Is(err, entity.ErrValidation):
			err = echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, entity.ErrNotFound):
			err = echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, entity.ErrConflict):
			err = echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			log.FromContext(c.Request().Context()).WithError(err).Error("Unhandled error")
			if exposeErrors {
				err = echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			} else {
				err = echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
			}
		}

		e.DefaultHTTPErrorHandler(err, c)
	}
}
