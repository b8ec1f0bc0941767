package validate_promo

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	validatePromo "github.com/m04kA/SMC-SalonBookingService/internal/usecase/validate_promo"
)

const (
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidCode      = "некорректный промокод"
	msgServiceNotFound  = "услуга не найдена"
)

type Handler struct {
	useCase ValidatePromoUseCase
	logger  Logger
}

func NewHandler(useCase ValidatePromoUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/promo-codes/{code}/validate
// Query params: serviceId (optional, adds a price preview)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	serviceID, err := handlers.OptionalQueryID(r, "serviceId")
	if err != nil {
		h.logger.Warn("GET /promo-codes/{code}/validate - Invalid service ID: %v", err)
		handlers.RespondFieldError(w, http.StatusBadRequest, msgInvalidServiceID, "serviceId")
		return
	}

	result, err := h.useCase.Execute(r.Context(), &validatePromo.Request{Code: code, ServiceID: serviceID})
	if err != nil {
		switch {
		case errors.Is(err, validatePromo.ErrInvalidInput):
			h.logger.Warn("GET /promo-codes/{code}/validate - Invalid input: %v", err)
			handlers.RespondDomainError(w, err, msgInvalidCode)

		case errors.Is(err, validatePromo.ErrServiceNotFound):
			h.logger.Warn("GET /promo-codes/{code}/validate - Service not found: service_id=%v", serviceID)
			handlers.RespondDomainError(w, err, msgServiceNotFound)

		default:
			h.logger.Error("GET /promo-codes/{code}/validate - Failed to validate promo: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /promo-codes/{code}/validate - code=%q valid=%t reason=%s", result.Code, result.Valid, result.Reason)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
