package request_consultation

import (
	requestConsultation "github.com/m04kA/SMC-SalonBookingService/internal/usecase/request_consultation"
	"github.com/m04kA/SMC-SalonBookingService/pkg/ptr"
)

// ConsultationRequest тело заявки на обратный звонок
type ConsultationRequest struct {
	ClientName  string  `json:"clientName"`
	ClientPhone string  `json:"clientPhone"`
	Notes       *string `json:"notes,omitempty"`
}

// ConsultationResponse созданная заявка
type ConsultationResponse struct {
	ConsultationID int64  `json:"consultationId"`
	ClientID       int64  `json:"clientId"`
	Status         string `json:"status"`
}

func (r *ConsultationRequest) ToUseCaseRequest() *requestConsultation.Request {
	return &requestConsultation.Request{
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
		Notes:       ptr.Value(r.Notes),
	}
}

func FromUseCaseResponse(resp *requestConsultation.Response) *ConsultationResponse {
	return &ConsultationResponse{
		ConsultationID: resp.ConsultationID,
		ClientID:       resp.ClientID,
		Status:         string(resp.Status),
	}
}
