package create_appointment

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// normalized очищенные данные клиента и промокода
type normalized struct {
	name  string
	phone string
	email *string
	promo string
	notes string
}

func invalid(field, format string, args ...interface{}) error {
	return domain.NewFieldError(field, fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...)))
}

// validateRequest валидирует форму запроса и нормализует поля клиента
func validateRequest(req *Request) (*normalized, error) {
	ids := []struct {
		field string
		id    int64
	}{
		{"salonId", req.SalonID},
		{"serviceId", req.ServiceID},
		{"masterId", req.MasterID},
	}
	for _, c := range ids {
		if c.id <= 0 {
			return nil, invalid(c.field, "%s must be positive", c.field)
		}
	}

	if req.Date.IsZero() {
		return nil, invalid("date", "date is required")
	}
	if req.Time.IsZero() {
		return nil, invalid("time", "time is required")
	}

	n := &normalized{
		name:  strings.TrimSpace(req.ClientName),
		notes: strings.TrimSpace(req.Notes),
		promo: domain.NormalizePromoCode(req.PromoCode),
	}

	if n.name == "" {
		return nil, invalid("clientName", "client name is required")
	}
	if utf8.RuneCountInString(n.name) > domain.MaxClientNameLength {
		return nil, invalid("clientName", "client name must not exceed %d characters", domain.MaxClientNameLength)
	}

	phone, err := domain.NormalizePhone(req.ClientPhone)
	if err != nil {
		return nil, domain.NewFieldError("clientPhone", fmt.Errorf("%w: %w", ErrInvalidInput, err))
	}
	n.phone = phone

	if req.ClientEmail != nil {
		if email := strings.TrimSpace(*req.ClientEmail); email != "" {
			if len(email) > domain.MaxEmailLength {
				return nil, invalid("clientEmail", "email must not exceed %d characters", domain.MaxEmailLength)
			}
			if err := domain.ValidateEmail(email); err != nil {
				return nil, domain.NewFieldError("clientEmail", fmt.Errorf("%w: %w", ErrInvalidInput, err))
			}
			n.email = &email
		}
	}

	if len(n.promo) > domain.MaxPromoCodeLength {
		return nil, invalid("promoCode", "promo code must not exceed %d characters", domain.MaxPromoCodeLength)
	}
	if utf8.RuneCountInString(n.notes) > domain.MaxNotesLength {
		return nil, invalid("notes", "notes must not exceed %d characters", domain.MaxNotesLength)
	}

	return n, nil
}
