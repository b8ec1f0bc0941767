package appointments

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = fmt.Errorf("appointment %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("invalid input data: %w", domain.ErrValidation)

	// ErrInvalidTransition переход статуса не разрешён жизненным циклом
	ErrInvalidTransition = domain.ErrInvalidTransition

	// ErrSlotTaken слот мастера уже занят другой записью
	ErrSlotTaken = fmt.Errorf("time slot is already taken: %w", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("service: %w", domain.ErrInternal)
)
