package list_master_appointments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/service/appointments/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	masterID int64
	date     time.Time
}

func (f *fakeService) ListByMasterAndDate(_ context.Context, masterID int64, date time.Time) (*models.AppointmentListResponse, error) {
	f.masterID, f.date = masterID, date
	return &models.AppointmentListResponse{Appointments: []models.AppointmentResponse{{ID: 1, Time: "10:00"}}}, nil
}

func serve(svc AppointmentService, url string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/masters/{masterId}/appointments", NewHandler(svc, nopLogger{}).Handle)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/api/v1/masters/4/appointments?date=2024-06-10")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(4), svc.masterID)
	assert.Equal(t, 10, svc.date.Day())
	assert.Contains(t, rec.Body.String(), `"appointments":[`)

	assert.Equal(t, http.StatusBadRequest, serve(svc, "/api/v1/masters/4/appointments").Code)
	assert.Equal(t, http.StatusBadRequest, serve(svc, "/api/v1/masters/x/appointments?date=2024-06-10").Code)
}
