package validate_promo

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/pricing"
)

// Request модель запроса проверки промокода
type Request struct {
	Code      string
	ServiceID *int64 // Если задан, в ответ добавляется предпросмотр цены
}

// Response результат проверки; невалидный промокод - не ошибка, а Valid=false с причиной
type Response struct {
	Code   string
	Valid  bool
	Reason domain.PromoInvalidReason

	// Заполняются только для валидного промокода
	Kind          domain.DiscountKind
	Value         decimal.Decimal
	Description   string
	ValidTo       time.Time
	MaxUses       int
	UsedCount     int
	RemainingUses int

	Preview *pricing.Breakdown
}
