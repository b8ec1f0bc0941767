package list_statuses

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/service/appointments/models"
)

type staticStatuses struct{}

func (staticStatuses) Statuses() []models.StatusResponse {
	return models.FromDomainStatuses()
}

func TestHandle(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(staticStatuses{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/statuses", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body StatusesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Statuses, 5)
	assert.Equal(t, "confirmed", body.Statuses[1].Value)
	assert.Equal(t, []string{"completed", "cancelled", "no_show"}, body.Statuses[1].Transitions)
}
