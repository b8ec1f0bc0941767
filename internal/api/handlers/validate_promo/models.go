package validate_promo

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	validatePromo "github.com/m04kA/SMC-SalonBookingService/internal/usecase/validate_promo"
)

// PromoValidationResponse HTTP response model
type PromoValidationResponse struct {
	Code   string `json:"code"`
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`

	DiscountType  string     `json:"discountType,omitempty"`
	DiscountValue string     `json:"discountValue,omitempty"`
	Description   string     `json:"description,omitempty"`
	ValidTo       *time.Time `json:"validTo,omitempty"`
	MaxUses       int        `json:"maxUses,omitempty"`
	UsedCount     int        `json:"usedCount,omitempty"`
	RemainingUses int        `json:"remainingUses,omitempty"`

	Preview *PricePreview `json:"preview,omitempty"`
}

// PricePreview цена услуги с промокодом
type PricePreview struct {
	OriginalPrice  string `json:"originalPrice"`
	DiscountAmount string `json:"discountAmount"`
	FinalPrice     string `json:"finalPrice"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *validatePromo.Response) *PromoValidationResponse {
	out := &PromoValidationResponse{
		Code:   resp.Code,
		Valid:  resp.Valid,
		Reason: string(resp.Reason),
	}
	if !resp.Valid {
		return out
	}

	validTo := resp.ValidTo
	out.DiscountType = string(resp.Kind)
	out.DiscountValue = resp.Value.StringFixed(domain.MoneyScale)
	out.Description = resp.Description
	out.ValidTo = &validTo
	out.MaxUses = resp.MaxUses
	out.UsedCount = resp.UsedCount
	out.RemainingUses = resp.RemainingUses

	if resp.Preview != nil {
		out.Preview = &PricePreview{
			OriginalPrice:  resp.Preview.Original.StringFixed(domain.MoneyScale),
			DiscountAmount: resp.Preview.Discount.StringFixed(domain.MoneyScale),
			FinalPrice:     resp.Preview.Final.StringFixed(domain.MoneyScale),
		}
	}
	return out
}
