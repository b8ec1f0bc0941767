package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Request модели

// UpdateStatusRequest запрос на смену статуса записи
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID          int64  `json:"id"`
	Number      string `json:"appointmentNumber"`
	ClientID    int64  `json:"clientId"`
	MasterID    int64  `json:"masterId"`
	ServiceID   int64  `json:"serviceId"`
	SalonID     int64  `json:"salonId"`
	Date        string `json:"date"` // "2025-10-15"
	Time        string `json:"time"` // "14:00"
	Status      string `json:"status"`
	StatusTitle string `json:"statusTitle"`

	// Цены строками с двумя знаками после запятой
	OriginalPrice  string `json:"originalPrice"`
	DiscountAmount string `json:"discountAmount"`
	FinalPrice     string `json:"finalPrice"`
	PromoCodeID    *int64 `json:"promoCodeId,omitempty"`

	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// StatusResponse статус жизненного цикла и допустимые переходы
type StatusResponse struct {
	Value       string   `json:"value"`
	Title       string   `json:"title"`
	Occupying   bool     `json:"occupiesSlot"`
	Transitions []string `json:"transitions"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:             a.ID,
		Number:         a.Number(),
		ClientID:       a.ClientID,
		MasterID:       a.MasterID,
		ServiceID:      a.ServiceID,
		SalonID:        a.SalonID,
		Date:           types.FormatDate(a.Date),
		Time:           a.Time.String(),
		Status:         string(a.Status),
		StatusTitle:    a.Status.Title(),
		OriginalPrice:  a.OriginalPrice.StringFixed(domain.MoneyScale),
		DiscountAmount: a.DiscountAmount.StringFixed(domain.MoneyScale),
		FinalPrice:     a.FinalPrice.StringFixed(domain.MoneyScale),
		PromoCodeID:    a.PromoCodeID,
		Notes:          a.Notes,
		CreatedAt:      a.CreatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(list []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(list)),
	}
	for _, a := range list {
		if item := FromDomainAppointment(a); item != nil {
			resp.Appointments = append(resp.Appointments, *item)
		}
	}
	return resp
}

// FromDomainStatuses описывает все статусы в порядке жизненного цикла
func FromDomainStatuses() []StatusResponse {
	all := domain.AllStatuses()
	result := make([]StatusResponse, 0, len(all))
	for _, s := range all {
		next := make([]string, 0)
		for _, candidate := range all {
			if s.CanTransitionTo(candidate) {
				next = append(next, string(candidate))
			}
		}
		result = append(result, StatusResponse{
			Value:       string(s),
			Title:       s.Title(),
			Occupying:   s.IsSlotOccupying(),
			Transitions: next,
		})
	}
	return result
}
