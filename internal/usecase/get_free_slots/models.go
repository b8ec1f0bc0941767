package get_free_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/service/schedule"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Filter необязательные фильтры; nil означает "любой"
type Filter struct {
	MasterID  *int64
	SalonID   *int64
	ServiceID *int64
}

// Request модель запроса свободных слотов
type Request struct {
	Date    time.Time // Дата (без времени)
	Filter  Filter
	Grouped bool // Вернуть также группировку по периодам дня
}

// Response модель ответа со свободными слотами
type Response struct {
	Date    time.Time
	Slots   []types.TimeString     // Свободное время по возрастанию
	Periods []schedule.PeriodSlots // Только при Grouped
}
