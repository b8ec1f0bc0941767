package create_appointment

import (
	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	createAppointment "github.com/m04kA/SMC-SalonBookingService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SalonBookingService/pkg/ptr"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	SalonID     int64   `json:"salonId"`
	ServiceID   int64   `json:"serviceId"`
	MasterID    int64   `json:"masterId"`
	Date        string  `json:"date"` // "2025-10-15"
	Time        string  `json:"time"` // "14:00"
	ClientName  string  `json:"clientName"`
	ClientPhone string  `json:"clientPhone"`
	ClientEmail *string `json:"clientEmail,omitempty"`
	PromoCode   *string `json:"promoCode,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// AppointmentCreatedResponse HTTP response model
type AppointmentCreatedResponse struct {
	AppointmentID     int64  `json:"appointmentId"`
	AppointmentNumber string `json:"appointmentNumber"`
	ClientID          int64  `json:"clientId"`
	Status            string `json:"status"`
	Date              string `json:"date"`
	Time              string `json:"time"`
	OriginalPrice     string `json:"originalPrice"`
	DiscountAmount    string `json:"discountAmount"`
	FinalPrice        string `json:"finalPrice"`
	PromoApplied      bool   `json:"promoApplied"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом даты и времени)
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, &handlers.ParamError{Field: "date", Err: err}
	}

	t, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, &handlers.ParamError{Field: "time", Err: err}
	}

	return &createAppointment.Request{
		SalonID:     r.SalonID,
		ServiceID:   r.ServiceID,
		MasterID:    r.MasterID,
		Date:        date,
		Time:        t,
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
		ClientEmail: r.ClientEmail,
		PromoCode:   ptr.Value(r.PromoCode),
		Notes:       ptr.Value(r.Notes),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response; деньги строками "1600.00"
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentCreatedResponse {
	return &AppointmentCreatedResponse{
		AppointmentID:     resp.AppointmentID,
		AppointmentNumber: resp.Number,
		ClientID:          resp.ClientID,
		Status:            string(resp.Status),
		Date:              types.FormatDate(resp.Date),
		Time:              resp.Time.String(),
		OriginalPrice:     resp.OriginalPrice.StringFixed(domain.MoneyScale),
		DiscountAmount:    resp.DiscountAmount.StringFixed(domain.MoneyScale),
		FinalPrice:        resp.FinalPrice.StringFixed(domain.MoneyScale),
		PromoApplied:      resp.PromoApplied,
	}
}
