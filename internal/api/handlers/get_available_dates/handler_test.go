package get_available_dates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	getAvailableDates "github.com/m04kA/SMC-SalonBookingService/internal/usecase/get_available_dates"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got  *getAvailableDates.Request
	resp *getAvailableDates.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableDates.Request) (*getAvailableDates.Response, error) {
	f.got = req
	return f.resp, f.err
}

func TestHandle_OK(t *testing.T) {
	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &getAvailableDates.Response{
		From:  from,
		Days:  7,
		Dates: []getAvailableDates.AvailableDate{{Date: from.AddDate(0, 0, 2), FreeSlots: 18}},
	}}
	rec := httptest.NewRecorder()

	NewHandler(uc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/available-dates?days=7&serviceId=5", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, uc.got.Days)
	require.NotNil(t, uc.got.Filter.ServiceID)
	assert.JSONEq(t, `{"from":"2024-06-01","days":7,"dates":[{"date":"2024-06-03","freeSlots":18}]}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&fakeUseCase{}, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/available-dates?days=week", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	uc := &fakeUseCase{err: domain.NewFieldError("days", fmt.Errorf("%w: too many", getAvailableDates.ErrInvalidInput))}
	NewHandler(uc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/available-dates?days=90", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "days", body.Field)
	assert.Equal(t, handlers.CodeValidation, body.Code)

	rec = httptest.NewRecorder()
	uc = &fakeUseCase{err: fmt.Errorf("%w: boom", getAvailableDates.ErrInternal)}
	NewHandler(uc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/available-dates", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
