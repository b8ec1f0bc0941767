package get_available_dates

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/usecase/get_free_slots"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// SlotsFinder источник свободных слотов на дату
type SlotsFinder interface {
	FreeSlots(ctx context.Context, date time.Time, filter get_free_slots.Filter, now time.Time) ([]types.TimeString, error)
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
