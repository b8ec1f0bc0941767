package create_appointment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	SalonID   int64
	ServiceID int64
	MasterID  int64
	Date      time.Time // Дата (без времени)
	Time      types.TimeString

	ClientName  string
	ClientPhone string  // В любом формате, нормализуется
	ClientEmail *string // Опционально

	PromoCode string // Пустая строка - без промокода
	Notes     string
}

// Response модель ответа после создания записи
type Response struct {
	AppointmentID int64
	Number        string
	ClientID      int64
	Status        domain.AppointmentStatus
	Date          time.Time
	Time          types.TimeString

	OriginalPrice  decimal.Decimal
	DiscountAmount decimal.Decimal
	FinalPrice     decimal.Decimal
	PromoApplied   bool
}

// FromDomain формирует ответ из сохранённой записи
func FromDomain(a *domain.Appointment) *Response {
	return &Response{
		AppointmentID:  a.ID,
		Number:         a.Number(),
		ClientID:       a.ClientID,
		Status:         a.Status,
		Date:           a.Date,
		Time:           a.Time,
		OriginalPrice:  a.OriginalPrice,
		DiscountAmount: a.DiscountAmount,
		FinalPrice:     a.FinalPrice,
		PromoApplied:   a.PromoCodeID != nil,
	}
}
