package list_salons

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/service/catalog/models"
)

type CatalogService interface {
	ListSalons(ctx context.Context) ([]models.SalonResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
