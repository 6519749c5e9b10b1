package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourbook/checkout"
	"tourbook/entity"
)

type workflowStub struct {
	result checkout.Result
	err    error

	lastRequest checkout.Request
}

func (s *workflowStub) Process(ctx context.Context, req checkout.Request) (checkout.Result, error) {
	s.lastRequest = req
	return s.result, s.err
}

type bookingsRepoStub struct {
	bookings  []entity.Booking
	updateErr error

	updatedStatus entity.BookingStatus
	deletedIDs    []string
}

func (s *bookingsRepoStub) FindByTenant(ctx context.Context, tenantID string) ([]entity.Booking, error) {
	return s.bookings, nil
}

func (s *bookingsRepoStub) UpdateStatus(ctx context.Context, tenantID, bookingID string, status entity.BookingStatus) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updatedStatus = status
	return nil
}

func (s *bookingsRepoStub) DeleteByIDs(ctx context.Context, tenantID string, bookingIDs []string) error {
	s.deletedIDs = bookingIDs
	return nil
}

type toursRepoStub struct {
	tours map[string]entity.Tour
}

func (s *toursRepoStub) Store(ctx context.Context, tour entity.Tour) error {
	if s.tours == nil {
		s.tours = map[string]entity.Tour{}
	}
	s.tours[tour.TourID] = tour
	return nil
}

func (s *toursRepoStub) Get(ctx context.Context, tenantID, tourID string) (entity.Tour, error) {
	tour, ok := s.tours[tourID]
	if !ok {
		return entity.Tour{}, entity.ErrNotFound
	}
	return tour, nil
}

type serverFixture struct {
	server   *Server
	workflow *workflowStub
	bookings *bookingsRepoStub
	tours    *toursRepoStub
}

func newServerFixture() *serverFixture {
	f := &serverFixture{
		workflow: &workflowStub{},
		bookings: &bookingsRepoStub{},
		tours:    &toursRepoStub{},
	}
	f.server = NewServer(":0", f.workflow, f.bookings, f.tours, true)
	return f
}

func (f *serverFixture) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.server.e.ServeHTTP(rec, req)
	return rec
}

func TestPostCheckout(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		f := newServerFixture()
		f.workflow.result = checkout.Result{
			Reference:     "SST-00000001-ABCDEF",
			BookingIDs:    []string{"b-1"},
			TransactionID: "pi_123",
			CustomerName:  "Jane Doe",
			CustomerEmail: "jane@example.com",
		}

		rec := f.do(http.MethodPost, "/checkout", `{
			"tenant_id": "tenant-1",
			"customer": {"name": "Jane Doe", "email": "jane@example.com"},
			"payment_method": "card",
			"cart": [{"tour_id": "tour-city", "adults": 2}]
		}`)

		require.Equal(t, http.StatusCreated, rec.Code)

		var response checkoutResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.True(t, response.Success)
		assert.Equal(t, "SST-00000001-ABCDEF", response.Reference)
		assert.Equal(t, "tenant-1", f.workflow.lastRequest.TenantID)
	})

	t.Run("tenant from header", func(t *testing.T) {
		f := newServerFixture()

		req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(`{"payment_method": "bank"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set("X-Tenant-ID", "tenant-h")
		rec := httptest.NewRecorder()
		f.server.e.ServeHTTP(rec, req)

		assert.Equal(t, "tenant-h", f.workflow.lastRequest.TenantID)
	})

	t.Run("duplicate returns 200", func(t *testing.T) {
		f := newServerFixture()
		f.workflow.result = checkout.Result{Reference: "SST-1", Duplicate: true}

		rec := f.do(http.MethodPost, "/checkout", `{"tenant_id": "tenant-1"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("validation error maps to 400", func(t *testing.T) {
		f := newServerFixture()
		f.workflow.err = entity.ErrValidation

		rec := f.do(http.MethodPost, "/checkout", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("payment error maps to 402", func(t *testing.T) {
		f := newServerFixture()
		f.workflow.err = entity.PaymentError{Reason: "card declined"}

		rec := f.do(http.MethodPost, "/checkout", `{}`)

		assert.Equal(t, http.StatusPaymentRequired, rec.Code)
		assert.Contains(t, rec.Body.String(), "card declined")
	})

	t.Run("conflict maps to 409", func(t *testing.T) {
		f := newServerFixture()
		f.workflow.err = entity.ErrConflict

		rec := f.do(http.MethodPost, "/checkout", `{}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("missing tour maps to 404", func(t *testing.T) {
		f := newServerFixture()
		f.workflow.err = entity.TourNotFoundError{TourID: "tour-x"}

		rec := f.do(http.MethodPost, "/checkout", `{}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unexpected errors are withheld in production", func(t *testing.T) {
		f := newServerFixture()
		f.workflow.err = errors.New("pq: connection refused")
		f.server = NewServer(":0", f.workflow, f.bookings, f.tours, false)

		rec := f.do(http.MethodPost, "/checkout", `{}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})
}

func TestBookingsEndpoints(t *testing.T) {
	t.Run("list requires tenant", func(t *testing.T) {
		f := newServerFixture()

		rec := f.do(http.MethodGet, "/bookings", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("list", func(t *testing.T) {
		f := newServerFixture()
		f.bookings.bookings = []entity.Booking{
			{BookingID: "b-1", Reference: "SST-1", ActivityDateRaw: "2026-09-12", Status: entity.BookingStatusConfirmed},
		}

		rec := f.do(http.MethodGet, "/bookings?tenant_id=tenant-1", "")

		require.Equal(t, http.StatusOK, rec.Code)

		var response []bookingResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		require.Len(t, response, 1)
		assert.Equal(t, "2026-09-12", response[0].Date)
	})

	t.Run("status update", func(t *testing.T) {
		f := newServerFixture()

		rec := f.do(http.MethodPut, "/bookings/b-1/status?tenant_id=tenant-1", `{"status": "Completed"}`)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, entity.BookingStatusCompleted, f.bookings.updatedStatus)
	})

	t.Run("status update rejects unknown status", func(t *testing.T) {
		f := newServerFixture()

		rec := f.do(http.MethodPut, "/bookings/b-1/status?tenant_id=tenant-1", `{"status": "Teleported"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("status update for unknown booking", func(t *testing.T) {
		f := newServerFixture()
		f.bookings.updateErr = entity.ErrNotFound

		rec := f.do(http.MethodPut, "/bookings/b-1/status?tenant_id=tenant-1", `{"status": "Completed"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("cancel", func(t *testing.T) {
		f := newServerFixture()

		rec := f.do(http.MethodPut, "/bookings/b-1/cancel?tenant_id=tenant-1", "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, entity.BookingStatusCancelled, f.bookings.updatedStatus)
	})

	t.Run("bulk delete", func(t *testing.T) {
		f := newServerFixture()

		rec := f.do(http.MethodDelete, "/bookings?tenant_id=tenant-1", `{"booking_ids": ["b-1", "b-2"]}`)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, []string{"b-1", "b-2"}, f.bookings.deletedIDs)
	})

	t.Run("bulk delete requires ids", func(t *testing.T) {
		f := newServerFixture()

		rec := f.do(http.MethodDelete, "/bookings?tenant_id=tenant-1", `{"booking_ids": []}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestToursEndpoints(t *testing.T) {
	t.Run("create and fetch", func(t *testing.T) {
		f := newServerFixture()

		rec := f.do(http.MethodPost, "/tours", `{"tenant_id": "tenant-1", "title": "City Walk", "base_price": 100}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		var created entity.Tour
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.NotEmpty(t, created.TourID)

		rec = f.do(http.MethodGet, "/tours/"+created.TourID+"?tenant_id=tenant-1", "")
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("create requires title", func(t *testing.T) {
		f := newServerFixture()

		rec := f.do(http.MethodPost, "/tours", `{"tenant_id": "tenant-1"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("fetch unknown tour", func(t *testing.T) {
		f := newServerFixture()

		rec := f.do(http.MethodGet, "/tours/tour-x?tenant_id=tenant-1", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHealth(t *testing.T) {
	f := newServerFixture()

	rec := f.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}
