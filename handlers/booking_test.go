package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	calendarRepo "slotify/database/repository/calendar"
	"slotify/models"
	"slotify/services/booking"
)

type stubBookingService struct {
	resp *models.BookingResponse
	err  error
}

func (s *stubBookingService) CreateBooking(ctx context.Context, calendarID string, req models.BookingRequest) (*models.BookingResponse, error) {
	return s.resp, s.err
}

func (s *stubBookingService) CancelBooking(ctx context.Context, tenantID, appointmentID string) error {
	return s.err
}

func bookingRouter(svc *stubBookingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewBookingHandler(svc)
	r.POST("/api/public/calendars/:id/bookings", h.CreateBookingHandler)
	return r
}

func postBooking(t *testing.T, r *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/public/calendars/cal-1/bookings", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func bookingBody() models.BookingRequest {
	return models.BookingRequest{
		TenantID: "tenant-1",
		Email:    "ada@example.com",
		Start:    time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC),
	}
}

func TestCreateBookingHandler_Created(t *testing.T) {
	svc := &stubBookingService{
		resp: &models.BookingResponse{
			Success:   true,
			BookingID: "appt-1",
			Start:     time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC),
			End:       time.Date(2024, 6, 10, 10, 30, 0, 0, time.UTC),
		},
	}
	w := postBooking(t, bookingRouter(svc), bookingBody())

	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "appt-1", resp.BookingID)
}

func TestCreateBookingHandler_ValidationError(t *testing.T) {
	svc := &stubBookingService{err: booking.ValidationError{Field: "email"}}
	w := postBooking(t, bookingRouter(svc), bookingBody())
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBookingHandler_SlotUnavailable(t *testing.T) {
	svc := &stubBookingService{err: booking.SlotUnavailableError{Start: time.Now()}}
	w := postBooking(t, bookingRouter(svc), bookingBody())
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateBookingHandler_CalendarNotFound(t *testing.T) {
	svc := &stubBookingService{err: calendarRepo.ErrCalendarNotFound}
	w := postBooking(t, bookingRouter(svc), bookingBody())
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateBookingHandler_MalformedBody(t *testing.T) {
	r := bookingRouter(&stubBookingService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/public/calendars/cal-1/bookings", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
