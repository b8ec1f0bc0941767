package list_statuses

import "github.com/m04kA/SMC-SalonBookingService/internal/service/appointments/models"

type StatusService interface {
	Statuses() []models.StatusResponse
}
