package get_free_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	getFreeSlots "github.com/m04kA/SMC-SalonBookingService/internal/usecase/get_free_slots"
)

const (
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidParam  = "некорректный параметр запроса"
	msgInvalidFilter = "некорректный фильтр"
)

type Handler struct {
	useCase GetFreeSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetFreeSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots
// Query params: date (required, YYYY-MM-DD), masterId, salonId, serviceId, grouped
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r)
	if err != nil {
		field, msg := handlers.ParamField(err), msgInvalidParam
		if field == "date" {
			msg = msgInvalidDate
		}
		h.logger.Warn("GET /slots - Invalid query: %v", err)
		handlers.RespondFieldError(w, http.StatusBadRequest, msg, field)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getFreeSlots.ErrInvalidInput):
			h.logger.Warn("GET /slots - Invalid filter: %v", err)
			handlers.RespondDomainError(w, err, msgInvalidFilter)

		default:
			h.logger.Error("GET /slots - Failed to get free slots: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots - Free slots retrieved: date=%s, count=%d", r.URL.Query().Get("date"), len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
