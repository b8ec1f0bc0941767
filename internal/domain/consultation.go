package domain

import "time"

// ConsultationStatus is the state of a call-back request
type ConsultationStatus string

const (
	ConsultationPending   ConsultationStatus = "pending"
	ConsultationCompleted ConsultationStatus = "completed"
)

// Consultation is a client's request to be contacted by the salon
type Consultation struct {
	ID        int64
	ClientID  int64
	Status    ConsultationStatus
	Notes     string
	CreatedAt time.Time
}
