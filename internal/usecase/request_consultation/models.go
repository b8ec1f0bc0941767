package request_consultation

import "github.com/m04kA/SMC-SalonBookingService/internal/domain"

// Request заявка на обратный звонок
type Request struct {
	ClientName  string
	ClientPhone string
	Notes       string
}

// Response созданная заявка
type Response struct {
	ConsultationID int64
	ClientID       int64
	Status         domain.ConsultationStatus
}
