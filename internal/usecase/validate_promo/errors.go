package validate_promo

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("invalid input data: %w", domain.ErrValidation)

	// ErrServiceNotFound возвращается, когда услуга для предпросмотра не найдена
	ErrServiceNotFound = fmt.Errorf("service %w", domain.ErrNotFound)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("validate_promo: %w", domain.ErrInternal)
)
