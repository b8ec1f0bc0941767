package validate_promo

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/catalog"
	promoRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/promocode"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/pricing"
)

// UseCase use case проверки промокода
type UseCase struct {
	promoRepo    PromoCodeRepository
	serviceRepo  ServiceRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(promoRepo PromoCodeRepository, serviceRepo ServiceRepository, logger Logger) *UseCase {
	return &UseCase{
		promoRepo:    promoRepo,
		serviceRepo:  serviceRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет проверку промокода
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	code := domain.NormalizePromoCode(req.Code)

	// 1. Валидация входных данных
	if code == "" {
		return nil, domain.NewFieldError("code", fmt.Errorf("%w: promo code is required", ErrInvalidInput))
	}
	if len(code) > domain.MaxPromoCodeLength {
		return nil, domain.NewFieldError("code", fmt.Errorf("%w: promo code is too long", ErrInvalidInput))
	}
	if req.ServiceID != nil && *req.ServiceID <= 0 {
		return nil, domain.NewFieldError("serviceId", fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput))
	}

	resp := &Response{Code: code}

	// 2. Получаем промокод
	promo, err := uc.promoRepo.GetByCode(ctx, code)
	if errors.Is(err, promoRepo.ErrPromoCodeNotFound) {
		uc.logger.Info("ValidatePromo: code %q not found", code)
		resp.Reason = domain.PromoReasonNotFound
		return resp, nil
	}
	if err != nil {
		uc.logger.Error("ValidatePromo: failed to get promo code %q: %v", code, err)
		return nil, fmt.Errorf("%w: failed to get promo code: %w", ErrInternal, err)
	}

	// 3. Проверяем применимость; неактивный промокод для клиента не отличается от отсутствующего
	now := uc.timeProvider.Now()
	if reason := promo.InvalidReason(now); reason != domain.PromoReasonNone {
		if reason == domain.PromoReasonInactive {
			reason = domain.PromoReasonNotFound
		}
		uc.logger.Info("ValidatePromo: code %q is not applicable: %s", code, reason)
		resp.Reason = reason
		return resp, nil
	}

	resp.Valid = true
	resp.Kind = promo.Kind
	resp.Value = promo.Value
	resp.Description = promo.Description
	resp.ValidTo = promo.ValidTo
	resp.MaxUses = promo.MaxUses
	resp.UsedCount = promo.UsedCount
	resp.RemainingUses = promo.RemainingUses()

	// 4. Предпросмотр цены для услуги
	if req.ServiceID != nil {
		service, err := uc.serviceRepo.GetService(ctx, *req.ServiceID)
		if errors.Is(err, catalogRepo.ErrServiceNotFound) || (err == nil && !service.IsActive) {
			return nil, domain.NewFieldError("serviceId", ErrServiceNotFound)
		}
		if err != nil {
			uc.logger.Error("ValidatePromo: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
		}
		preview := pricing.Calculate(service.Price, promo, now)
		resp.Preview = &preview
	}

	uc.logger.Info("ValidatePromo: code %q is valid, remaining uses %d", code, resp.RemainingUses)

	return resp, nil
}
