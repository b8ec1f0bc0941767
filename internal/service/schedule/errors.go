package schedule

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

var (
	// ErrInvalidTime время не в формате HH:MM
	ErrInvalidTime = fmt.Errorf("schedule: invalid time: %w", domain.ErrValidation)

	// ErrOutsideWorkingHours время вне сетки рабочего дня
	ErrOutsideWorkingHours = fmt.Errorf("schedule: time is outside the working grid: %w", domain.ErrValidation)

	// ErrDateInPast дата в прошлом
	ErrDateInPast = fmt.Errorf("schedule: date is in the past: %w", domain.ErrValidation)

	// ErrDateTooFar дата за пределами горизонта записи
	ErrDateTooFar = fmt.Errorf("schedule: date is too far in the future: %w", domain.ErrValidation)

	// ErrTooLate слот начинается раньше, чем через минимальный запас времени
	ErrTooLate = fmt.Errorf("schedule: too late to book this slot: %w", domain.ErrValidation)
)
