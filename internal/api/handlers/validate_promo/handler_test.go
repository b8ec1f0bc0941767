package validate_promo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/pricing"
	validatePromo "github.com/m04kA/SMC-SalonBookingService/internal/usecase/validate_promo"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got  *validatePromo.Request
	resp *validatePromo.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *validatePromo.Request) (*validatePromo.Response, error) {
	f.got = req
	return f.resp, f.err
}

func serve(h *Handler, url string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/promo-codes/{code}/validate", h.Handle)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestHandle_ValidWithPreview(t *testing.T) {
	uc := &fakeUseCase{resp: &validatePromo.Response{
		Code:          "SUMMER20",
		Valid:         true,
		Kind:          domain.DiscountPercent,
		Value:         decimal.NewFromInt(20),
		ValidTo:       time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
		MaxUses:       100,
		UsedCount:     5,
		RemainingUses: 95,
		Preview: &pricing.Breakdown{
			Original: decimal.NewFromInt(2000),
			Discount: decimal.NewFromInt(400),
			Final:    decimal.NewFromInt(1600),
		},
	}}

	rec := serve(NewHandler(uc, nopLogger{}), "/api/v1/promo-codes/SUMMER20/validate?serviceId=1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "SUMMER20", uc.got.Code)
	var body PromoValidationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Valid)
	assert.Equal(t, "percent", body.DiscountType)
	assert.Equal(t, 95, body.RemainingUses)
	require.NotNil(t, body.Preview)
	assert.Equal(t, "1600.00", body.Preview.FinalPrice)
}

func TestHandle_Invalid(t *testing.T) {
	uc := &fakeUseCase{resp: &validatePromo.Response{Code: "OLD", Reason: domain.PromoReasonExpired}}

	rec := serve(NewHandler(uc, nopLogger{}), "/api/v1/promo-codes/OLD/validate")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"code":"OLD","valid":false,"reason":"expired"}`, rec.Body.String())
}

func TestHandle_ServiceNotFound(t *testing.T) {
	uc := &fakeUseCase{err: domain.NewFieldError("serviceId", validatePromo.ErrServiceNotFound)}

	rec := serve(NewHandler(uc, nopLogger{}), "/api/v1/promo-codes/SUMMER20/validate?serviceId=99")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(NewHandler(uc, nopLogger{}), "/api/v1/promo-codes/SUMMER20/validate?serviceId=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
