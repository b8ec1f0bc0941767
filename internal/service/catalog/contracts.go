package catalog

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// CatalogRepository интерфейс справочников
type CatalogRepository interface {
	ListSalons(ctx context.Context) ([]*domain.Salon, error)
	ListServices(ctx context.Context, filter domain.ServiceFilter) ([]*domain.Service, error)
	ListMasters(ctx context.Context, filter domain.MasterFilter) ([]*domain.Master, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
