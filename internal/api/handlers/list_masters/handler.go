package list_masters

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/catalog/models"
)

const msgInvalidParam = "некорректный параметр запроса"

// MastersResponse список мастеров
type MastersResponse struct {
	Masters []models.MasterResponse `json:"masters"`
}

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/masters
// Query params: salonId, serviceId
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var (
		filter domain.MasterFilter
		err    error
	)
	if filter.SalonID, err = handlers.OptionalQueryID(r, "salonId"); err == nil {
		filter.ServiceID, err = handlers.OptionalQueryID(r, "serviceId")
	}
	if err != nil {
		h.logger.Warn("GET /masters - Invalid query: %v", err)
		handlers.RespondFieldError(w, http.StatusBadRequest, msgInvalidParam, handlers.ParamField(err))
		return
	}

	masters, err := h.service.ListMasters(r.Context(), filter)
	if err != nil {
		if domain.KindOf(err) == domain.ErrValidation {
			h.logger.Warn("GET /masters - Invalid filter: %v", err)
		} else {
			h.logger.Error("GET /masters - Failed to list masters: error=%v", err)
		}
		handlers.RespondDomainError(w, err, msgInvalidParam)
		return
	}

	h.logger.Info("GET /masters - count=%d", len(masters))
	handlers.RespondJSON(w, http.StatusOK, MastersResponse{Masters: masters})
}
