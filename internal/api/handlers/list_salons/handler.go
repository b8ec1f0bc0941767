package list_salons

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/catalog/models"
)

// SalonsResponse список салонов
type SalonsResponse struct {
	Salons []models.SalonResponse `json:"salons"`
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

// Handle GET /api/v1/salons
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salons, err := h.service.ListSalons(r.Context())
	if err != nil {
		h.logger.Error("GET /salons - Failed to list salons: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /salons - count=%d", len(salons))
	handlers.RespondJSON(w, http.StatusOK, SalonsResponse{Salons: salons})
}
