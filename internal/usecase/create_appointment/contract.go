package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// CatalogRepository интерфейс справочников салонов, услуг и мастеров
type CatalogRepository interface {
	GetSalon(ctx context.Context, id int64) (*domain.Salon, error)
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	GetMaster(ctx context.Context, id int64) (*domain.Master, error)
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	UpsertByPhone(ctx context.Context, client *domain.Client) (*domain.Client, error)
}

// PromoCodeRepository интерфейс репозитория промокодов
type PromoCodeRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.PromoCode, error)
	// IncrementUsage атомарно увеличивает used_count, пока он меньше max_uses
	IncrementUsage(ctx context.Context, id int64) error
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	IsSlotOccupied(ctx context.Context, masterID int64, date time.Time, t types.TimeString) (bool, error)
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// SlotsCache кэш занятого времени
type SlotsCache interface {
	InvalidateDate(ctx context.Context, date time.Time)
}

// Publisher публикация событий о записях
type Publisher interface {
	AppointmentCreated(ctx context.Context, event notifier.AppointmentCreatedEvent) error
}

// Metrics бизнес-метрики записи
type Metrics interface {
	AppointmentCreated(withPromo bool)
	BookingConflict(reason string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
