package notifier

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Имена очередей (routing key = имя очереди, exchange по умолчанию)
const (
	QueueAppointmentCreated       = "appointment.created"
	QueueAppointmentStatusChanged = "appointment.status_changed"
)

// AppointmentCreatedEvent событие создания записи
type AppointmentCreatedEvent struct {
	AppointmentID     int64     `json:"appointmentId"`
	AppointmentNumber string    `json:"appointmentNumber"`
	ClientID          int64     `json:"clientId"`
	MasterID          int64     `json:"masterId"`
	ServiceID         int64     `json:"serviceId"`
	SalonID           int64     `json:"salonId"`
	Date              string    `json:"date"`
	Time              string    `json:"time"`
	Status            string    `json:"status"`
	OriginalPrice     string    `json:"originalPrice"`
	DiscountAmount    string    `json:"discountAmount"`
	FinalPrice        string    `json:"finalPrice"`
	PromoCodeID       *int64    `json:"promoCodeId,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// NewAppointmentCreatedEvent собирает событие из записи
func NewAppointmentCreatedEvent(a *domain.Appointment) AppointmentCreatedEvent {
	return AppointmentCreatedEvent{
		AppointmentID:     a.ID,
		AppointmentNumber: a.Number(),
		ClientID:          a.ClientID,
		MasterID:          a.MasterID,
		ServiceID:         a.ServiceID,
		SalonID:           a.SalonID,
		Date:              types.FormatDate(a.Date),
		Time:              a.Time.String(),
		Status:            string(a.Status),
		OriginalPrice:     a.OriginalPrice.StringFixed(domain.MoneyScale),
		DiscountAmount:    a.DiscountAmount.StringFixed(domain.MoneyScale),
		FinalPrice:        a.FinalPrice.StringFixed(domain.MoneyScale),
		PromoCodeID:       a.PromoCodeID,
		CreatedAt:         a.CreatedAt,
	}
}

// AppointmentStatusChangedEvent событие смены статуса записи
type AppointmentStatusChangedEvent struct {
	AppointmentID int64     `json:"appointmentId"`
	MasterID      int64     `json:"masterId"`
	Date          string    `json:"date"`
	From          string    `json:"from"`
	To            string    `json:"to"`
	ChangedAt     time.Time `json:"changedAt"`
}

// NewStatusChangedEvent собирает событие из применённого перехода
func NewStatusChangedEvent(change domain.StatusChange, at time.Time) AppointmentStatusChangedEvent {
	return AppointmentStatusChangedEvent{
		AppointmentID: change.AppointmentID,
		MasterID:      change.MasterID,
		Date:          types.FormatDate(change.Date),
		From:          string(change.From),
		To:            string(change.To),
		ChangedAt:     at,
	}
}
