package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

var now = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

func promo(kind domain.DiscountKind, value string) *domain.PromoCode {
	return &domain.PromoCode{
		Code:      "CODE",
		Kind:      kind,
		Value:     decimal.RequireFromString(value),
		ValidFrom: now.Add(-time.Hour),
		ValidTo:   now.Add(time.Hour),
		IsActive:  true,
		MaxUses:   5,
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculate(t *testing.T) {
	expiredPromo := promo(domain.DiscountPercent, "50")
	expiredPromo.ValidTo = now

	tests := []struct {
		name         string
		base         string
		promo        *domain.PromoCode
		wantDiscount string
		wantFinal    string
		wantApplied  bool
	}{
		{name: "no promo", base: "1500.00", wantDiscount: "0", wantFinal: "1500"},
		{name: "percent 20 of 2000", base: "2000.00", promo: promo(domain.DiscountPercent, "20"), wantDiscount: "400", wantFinal: "1600", wantApplied: true},
		{name: "fixed clamp", base: "300.00", promo: promo(domain.DiscountFixed, "500"), wantDiscount: "300", wantFinal: "0", wantApplied: true},
		{name: "fixed partial", base: "1200.50", promo: promo(domain.DiscountFixed, "200.25"), wantDiscount: "200.25", wantFinal: "1000.25", wantApplied: true},
		{name: "expired promo", base: "1000", promo: expiredPromo, wantDiscount: "0", wantFinal: "1000"},
		{name: "free service", base: "0", promo: promo(domain.DiscountPercent, "10"), wantDiscount: "0", wantFinal: "0", wantApplied: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Calculate(dec(tt.base), tt.promo, now)

			assert.True(t, dec(tt.wantDiscount).Equal(b.Discount), "discount %s", b.Discount)
			assert.True(t, dec(tt.wantFinal).Equal(b.Final), "final %s", b.Final)
			assert.Equal(t, tt.wantApplied, b.PromoApplied)
			require.NoError(t, b.Check())
		})
	}
}

func TestCalculate_InvariantsHoldAcrossRange(t *testing.T) {
	kinds := []domain.DiscountKind{domain.DiscountPercent, domain.DiscountFixed}
	values := []string{"0.01", "1", "33.33", "99.99", "100"}
	bases := []string{"0", "0.01", "1.99", "99.99", "1000", "12345.67"}

	for _, k := range kinds {
		for _, v := range values {
			for _, base := range bases {
				b := Calculate(dec(base), promo(k, v), now)
				assert.NoError(t, b.Check(), "%s %s on %s", k, v, base)
				assert.False(t, b.Discount.GreaterThan(b.Original))
			}
		}
	}
}

func TestBreakdown_Check(t *testing.T) {
	bad := Breakdown{Original: dec("100"), Discount: dec("30"), Final: dec("60")}
	assert.True(t, IsInvariantError(bad.Check()))

	negative := Breakdown{Original: dec("100"), Discount: dec("-10"), Final: dec("110")}
	assert.ErrorIs(t, negative.Check(), domain.ErrInternal)
}
