package create_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("invalid input data: %w", domain.ErrValidation)

	// ErrSalonNotFound возвращается, когда салон не найден или неактивен
	ErrSalonNotFound = fmt.Errorf("salon %w", domain.ErrNotFound)

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = fmt.Errorf("service %w", domain.ErrNotFound)

	// ErrMasterNotFound возвращается, когда мастер не найден или неактивен
	ErrMasterNotFound = fmt.Errorf("master %w", domain.ErrNotFound)

	// ErrMasterUnavailable мастер не работает в салоне или не оказывает услугу
	ErrMasterUnavailable = fmt.Errorf("master does not provide this service at this salon: %w", domain.ErrValidation)

	// ErrPromoNotFound промокод не найден или неактивен
	ErrPromoNotFound = fmt.Errorf("promo code %w", domain.ErrNotFound)

	// ErrPromoNotApplicable промокод ещё не начал действовать или истёк
	ErrPromoNotApplicable = fmt.Errorf("promo code is not valid at this time: %w", domain.ErrValidation)

	// ErrPromoExhausted лимит использований промокода исчерпан
	ErrPromoExhausted = fmt.Errorf("promo code usage limit reached: %w", domain.ErrConflict)

	// ErrSlotTaken слот уже занят другой записью
	ErrSlotTaken = fmt.Errorf("time slot is already taken: %w", domain.ErrConflict)

	// ErrConcurrentUpdate параллельная транзакция изменила общие данные (промокод, клиента); запрос можно повторить
	ErrConcurrentUpdate = fmt.Errorf("concurrent booking update, retry the request: %w", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("create_appointment: %w", domain.ErrInternal)
)

// Причины конфликтов для метрик
const (
	conflictSlotTaken      = "slot_taken"
	conflictPromoExhausted = "promo_exhausted"
	conflictConcurrent     = "concurrent_update"
)
