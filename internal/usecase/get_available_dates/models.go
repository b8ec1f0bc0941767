package get_available_dates

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/usecase/get_free_slots"
)

// Request модель запроса доступных дат
type Request struct {
	Filter get_free_slots.Filter
	Days   int // 0 - значение по умолчанию
}

// Response модель ответа с датами, на которые есть хотя бы один свободный слот
type Response struct {
	From  time.Time
	Days  int
	Dates []AvailableDate
}

// AvailableDate дата и количество свободных слотов на неё
type AvailableDate struct {
	Date      time.Time
	FreeSlots int
}
