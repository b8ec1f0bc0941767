package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DiscountKind selects how a promo code value is applied to a price.
type DiscountKind string

const (
	DiscountPercent DiscountKind = "percent"
	DiscountFixed   DiscountKind = "fixed"
)

// ErrUnknownDiscountKind is returned when parsing an unsupported discount kind.
var ErrUnknownDiscountKind = errors.New("unknown discount kind")

// ParseDiscountKind converts a stored value into a DiscountKind.
func ParseDiscountKind(s string) (DiscountKind, error) {
	switch k := DiscountKind(strings.ToLower(strings.TrimSpace(s))); k {
	case DiscountPercent, DiscountFixed:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDiscountKind, s)
	}
}

// PromoInvalidReason explains why a promo code cannot be applied.
type PromoInvalidReason string

const (
	PromoReasonNone       PromoInvalidReason = ""
	PromoReasonNotFound   PromoInvalidReason = "not_found"
	PromoReasonInactive   PromoInvalidReason = "inactive"
	PromoReasonNotStarted PromoInvalidReason = "not_started"
	PromoReasonExpired    PromoInvalidReason = "expired"
	PromoReasonExhausted  PromoInvalidReason = "exhausted"
)

var hundred = decimal.NewFromInt(100)

// PromoCode is a discount voucher with a validity window and a usage cap.
// The window is half-open: [ValidFrom, ValidTo).
type PromoCode struct {
	ID          int64
	Code        string
	Kind        DiscountKind
	Value       decimal.Decimal
	Description string
	ValidFrom   time.Time
	ValidTo     time.Time
	IsActive    bool
	MaxUses     int
	UsedCount   int
	CreatedAt   time.Time
}

// InvalidReason returns PromoReasonNone when the code may be applied at now.
// Checks run in a fixed order so the most fundamental problem is reported.
func (p *PromoCode) InvalidReason(now time.Time) PromoInvalidReason {
	switch {
	case !p.IsActive:
		return PromoReasonInactive
	case now.Before(p.ValidFrom):
		return PromoReasonNotStarted
	case !now.Before(p.ValidTo):
		return PromoReasonExpired
	case p.UsedCount >= p.MaxUses:
		return PromoReasonExhausted
	default:
		return PromoReasonNone
	}
}

// IsValid reports is_active && valid_from <= now < valid_to && used_count < max_uses.
func (p *PromoCode) IsValid(now time.Time) bool {
	return p.InvalidReason(now) == PromoReasonNone
}

// RemainingUses is never negative.
func (p *PromoCode) RemainingUses() int {
	if p.UsedCount >= p.MaxUses {
		return 0
	}
	return p.MaxUses - p.UsedCount
}

// CalculateDiscount returns the discount for base at now, rounded to cents.
// An invalid code yields zero; the result never exceeds base.
func (p *PromoCode) CalculateDiscount(base decimal.Decimal, now time.Time) decimal.Decimal {
	if !p.IsValid(now) || !base.IsPositive() {
		return decimal.Zero
	}

	var discount decimal.Decimal
	switch p.Kind {
	case DiscountPercent:
		discount = base.Mul(p.Value).Div(hundred)
	case DiscountFixed:
		discount = decimal.Min(base, p.Value)
	default:
		return decimal.Zero
	}

	discount = discount.Round(MoneyScale)
	if discount.IsNegative() {
		return decimal.Zero
	}
	if discount.GreaterThan(base) {
		return base
	}
	return discount
}

// Validate checks the invariants a stored promo code must satisfy.
func (p *PromoCode) Validate() error {
	switch {
	case strings.TrimSpace(p.Code) == "":
		return NewFieldError("code", fmt.Errorf("code is required: %w", ErrValidation))
	case p.Kind != DiscountPercent && p.Kind != DiscountFixed:
		return NewFieldError("discount_type", fmt.Errorf("%w: %w", ErrUnknownDiscountKind, ErrValidation))
	case !p.Value.IsPositive():
		return NewFieldError("discount_value", fmt.Errorf("discount value must be positive: %w", ErrValidation))
	case p.Kind == DiscountPercent && p.Value.GreaterThan(hundred):
		return NewFieldError("discount_value", fmt.Errorf("percent discount above 100: %w", ErrValidation))
	case !p.ValidFrom.Before(p.ValidTo):
		return NewFieldError("valid_to", fmt.Errorf("validity window is empty: %w", ErrValidation))
	case p.MaxUses < 0 || p.UsedCount < 0:
		return NewFieldError("max_uses", fmt.Errorf("usage counters must not be negative: %w", ErrValidation))
	case p.UsedCount > p.MaxUses:
		return NewFieldError("used_count", fmt.Errorf("used_count exceeds max_uses: %w", ErrValidation))
	}
	return nil
}

// NormalizePromoCode trims user input; codes are matched case-sensitively as stored.
func NormalizePromoCode(code string) string {
	return strings.TrimSpace(code)
}
