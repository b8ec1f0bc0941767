package list_services

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/catalog/models"
)

const msgInvalidParam = "некорректный параметр запроса"

// ServicesResponse услуги, сгруппированные по категориям
type ServicesResponse struct {
	Categories []models.CategoryResponse `json:"categories"`
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

// Handle GET /api/v1/services
// Query params: salonId, categoryId
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var (
		filter domain.ServiceFilter
		err    error
	)
	if filter.SalonID, err = handlers.OptionalQueryID(r, "salonId"); err == nil {
		filter.CategoryID, err = handlers.OptionalQueryID(r, "categoryId")
	}
	if err != nil {
		h.logger.Warn("GET /services - Invalid query: %v", err)
		handlers.RespondFieldError(w, http.StatusBadRequest, msgInvalidParam, handlers.ParamField(err))
		return
	}

	categories, err := h.service.ListServices(r.Context(), filter)
	if err != nil {
		if domain.KindOf(err) == domain.ErrValidation {
			h.logger.Warn("GET /services - Invalid filter: %v", err)
		} else {
			h.logger.Error("GET /services - Failed to list services: error=%v", err)
		}
		handlers.RespondDomainError(w, err, msgInvalidParam)
		return
	}

	h.logger.Info("GET /services - categories=%d", len(categories))
	handlers.RespondJSON(w, http.StatusOK, ServicesResponse{Categories: categories})
}
