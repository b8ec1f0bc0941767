package list_master_appointments

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

const (
	msgInvalidMasterID = "некорректный ID мастера"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/masters/{masterId}/appointments
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	masterID, err := handlers.PathID(r, "masterId")
	if err != nil {
		h.logger.Warn("GET /masters/{id}/appointments - Invalid master ID: %v", err)
		handlers.RespondFieldError(w, http.StatusBadRequest, msgInvalidMasterID, "masterId")
		return
	}

	date, err := handlers.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /masters/{id}/appointments - Invalid date: %v", err)
		handlers.RespondFieldError(w, http.StatusBadRequest, msgInvalidDate, "date")
		return
	}

	list, err := h.service.ListByMasterAndDate(r.Context(), masterID, date)
	if err != nil {
		if domain.KindOf(err) == domain.ErrValidation {
			h.logger.Warn("GET /masters/{id}/appointments - Invalid input: %v", err)
			handlers.RespondDomainError(w, err, msgInvalidMasterID)
			return
		}
		h.logger.Error("GET /masters/{id}/appointments - Failed to list appointments: master_id=%d, error=%v", masterID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /masters/{id}/appointments - master_id=%d, count=%d", masterID, len(list.Appointments))
	handlers.RespondJSON(w, http.StatusOK, list)
}
