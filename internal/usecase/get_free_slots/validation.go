package get_free_slots

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return domain.NewFieldError("date", fmt.Errorf("%w: date is required", ErrInvalidInput))
	}
	return validateFilter(req.Filter)
}

// validateFilter проверяет, что заданные идентификаторы положительные
func validateFilter(f Filter) error {
	checks := []struct {
		field string
		id    *int64
	}{
		{"masterId", f.MasterID},
		{"salonId", f.SalonID},
		{"serviceId", f.ServiceID},
	}
	for _, c := range checks {
		if c.id != nil && *c.id <= 0 {
			return domain.NewFieldError(c.field, fmt.Errorf("%w: %s must be positive", ErrInvalidInput, c.field))
		}
	}
	return nil
}
