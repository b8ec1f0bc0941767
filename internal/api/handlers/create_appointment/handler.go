package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/schedule"
	createAppointment "github.com/m04kA/SMC-SalonBookingService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgInvalidInput       = "некорректные данные записи"
	msgSlotTaken          = "выбранное время уже занято"
	msgConcurrentUpdate   = "запись не удалась из-за параллельного запроса, повторите попытку"
	msgSalonNotFound      = "салон не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgMasterNotFound     = "мастер не найден"
	msgMasterUnavailable  = "мастер не оказывает эту услугу в выбранном салоне"
	msgPromoNotFound      = "промокод не найден"
	msgPromoNotApplicable = "промокод сейчас не действует"
	msgPromoExhausted     = "лимит использований промокода исчерпан"
	msgOutsideHours       = "время вне рабочей сетки салона"
	msgDateInPast         = "нельзя записаться на прошедшую дату"
	msgDateTooFar         = "дата записи слишком далеко в будущем"
	msgTooLate            = "слишком поздно для записи на это время"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		field := handlers.ParamField(err)
		msg := msgInvalidDate
		if field == "time" {
			msg = msgInvalidTime
		}
		handlers.RespondFieldError(w, http.StatusBadRequest, msg, field)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, &req, err)
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%d, number=%s, salon_id=%d, master_id=%d",
		result.AppointmentID, result.Number, req.SalonID, req.MasterID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func (h *Handler) respondError(w http.ResponseWriter, req *CreateAppointmentRequest, err error) {
	var msg string
	switch {
	case errors.Is(err, createAppointment.ErrSlotTaken):
		msg = msgSlotTaken
	case errors.Is(err, createAppointment.ErrConcurrentUpdate):
		msg = msgConcurrentUpdate
	case errors.Is(err, createAppointment.ErrSalonNotFound):
		msg = msgSalonNotFound
	case errors.Is(err, createAppointment.ErrServiceNotFound):
		msg = msgServiceNotFound
	case errors.Is(err, createAppointment.ErrMasterNotFound):
		msg = msgMasterNotFound
	case errors.Is(err, createAppointment.ErrMasterUnavailable):
		msg = msgMasterUnavailable
	case errors.Is(err, createAppointment.ErrPromoNotFound):
		msg = msgPromoNotFound
	case errors.Is(err, createAppointment.ErrPromoNotApplicable):
		msg = msgPromoNotApplicable
	case errors.Is(err, createAppointment.ErrPromoExhausted):
		msg = msgPromoExhausted
	case errors.Is(err, schedule.ErrInvalidTime), errors.Is(err, schedule.ErrOutsideWorkingHours):
		msg = msgOutsideHours
	case errors.Is(err, schedule.ErrDateInPast):
		msg = msgDateInPast
	case errors.Is(err, schedule.ErrDateTooFar):
		msg = msgDateTooFar
	case errors.Is(err, schedule.ErrTooLate):
		msg = msgTooLate
	case errors.Is(err, createAppointment.ErrInvalidInput):
		msg = msgInvalidInput
	default:
		h.logger.Error("POST /appointments - Failed to create appointment: salon_id=%d, master_id=%d, error=%v",
			req.SalonID, req.MasterID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Warn("POST /appointments - Rejected: salon_id=%d, master_id=%d, date=%s, time=%s: %v",
		req.SalonID, req.MasterID, req.Date, req.Time, err)
	handlers.RespondDomainError(w, err, msg)
}
