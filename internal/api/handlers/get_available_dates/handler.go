package get_available_dates

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	getAvailableDates "github.com/m04kA/SMC-SalonBookingService/internal/usecase/get_available_dates"
)

const (
	msgInvalidParam = "некорректный параметр запроса"
	msgInvalidDays  = "количество дней должно быть от 1 до 60"
)

type Handler struct {
	useCase GetAvailableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/available-dates
// Query params: masterId, salonId, serviceId, days (default 30, max 60)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r)
	if err != nil {
		h.logger.Warn("GET /available-dates - Invalid query: %v", err)
		handlers.RespondFieldError(w, http.StatusBadRequest, msgInvalidParam, handlers.ParamField(err))
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableDates.ErrInvalidInput):
			h.logger.Warn("GET /available-dates - Invalid days: %v", err)
			handlers.RespondDomainError(w, err, msgInvalidDays)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /available-dates - Invalid filter: %v", err)
			handlers.RespondDomainError(w, err, msgInvalidParam)

		default:
			h.logger.Error("GET /available-dates - Failed to get dates: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-dates - Dates retrieved: days=%d, available=%d", result.Days, len(result.Dates))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
