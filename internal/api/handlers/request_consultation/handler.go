package request_consultation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	requestConsultation "github.com/m04kA/SMC-SalonBookingService/internal/usecase/request_consultation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные заявки"
)

type Handler struct {
	useCase RequestConsultationUseCase
	logger  Logger
}

func NewHandler(useCase RequestConsultationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/consultations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ConsultationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /consultations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, requestConsultation.ErrInvalidInput):
			h.logger.Warn("POST /consultations - Invalid input: %v", err)
			handlers.RespondDomainError(w, err, msgInvalidInput)

		default:
			h.logger.Error("POST /consultations - Failed to create consultation: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /consultations - Consultation created: consultation_id=%d, client_id=%d", result.ConsultationID, result.ClientID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
