package pricing

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// ErrInvariant нарушен инвариант original = discount + final
var ErrInvariant = fmt.Errorf("pricing: price breakdown invariant violated: %w", domain.ErrInternal)

// Breakdown разбивка цены записи
type Breakdown struct {
	Original decimal.Decimal
	Discount decimal.Decimal
	Final    decimal.Decimal
	// PromoApplied true, если промокод был валиден и дал скидку (в т.ч. нулевую при нулевой цене)
	PromoApplied bool
}

// Calculate считает цену от базовой цены услуги и необязательного промокода
// Невалидный промокод даёт нулевую скидку
func Calculate(basePrice decimal.Decimal, promo *domain.PromoCode, now time.Time) Breakdown {
	original := basePrice.Round(domain.MoneyScale)
	if original.IsNegative() {
		original = decimal.Zero
	}

	b := Breakdown{
		Original: original,
		Discount: decimal.Zero,
		Final:    original,
	}

	if promo == nil || !promo.IsValid(now) {
		return b
	}

	b.Discount = promo.CalculateDiscount(original, now)
	b.Final = original.Sub(b.Discount)
	b.PromoApplied = true
	return b
}

// Check проверяет инварианты перед сохранением
func (b Breakdown) Check() error {
	switch {
	case b.Discount.IsNegative():
		return fmt.Errorf("%w: negative discount %s", ErrInvariant, b.Discount)
	case b.Final.IsNegative():
		return fmt.Errorf("%w: negative final price %s", ErrInvariant, b.Final)
	case !b.Original.Equal(b.Discount.Add(b.Final)):
		return fmt.Errorf("%w: %s != %s + %s", ErrInvariant, b.Original, b.Discount, b.Final)
	}
	return nil
}

// IsInvariantError true, если ошибка вызвана нарушением инварианта цены
func IsInvariantError(err error) bool {
	return errors.Is(err, ErrInvariant)
}
