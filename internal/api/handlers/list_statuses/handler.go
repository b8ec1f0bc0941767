package list_statuses

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/appointments/models"
)

// StatusesResponse справочник статусов записи
type StatusesResponse struct {
	Statuses []models.StatusResponse `json:"statuses"`
}

type Handler struct {
	service StatusService
}

func NewHandler(service StatusService) *Handler {
	return &Handler{service: service}
}

// Handle GET /api/v1/statuses
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, StatusesResponse{Statuses: h.service.Statuses()})
}
