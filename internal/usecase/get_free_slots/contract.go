package get_free_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/cache/slots"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// OccupiedTimes занятое время на дату (только статусы pending/confirmed)
	OccupiedTimes(ctx context.Context, filter domain.OccupiedFilter) ([]types.TimeString, error)
}

// SlotsCache кэш занятого времени
type SlotsCache interface {
	Get(ctx context.Context, q slots.Query) *slots.Lookup
	Put(ctx context.Context, lookup *slots.Lookup, times []types.TimeString)
}

// Metrics метрики попаданий в кэш
type Metrics interface {
	SlotsCacheLookup(hit bool)
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
