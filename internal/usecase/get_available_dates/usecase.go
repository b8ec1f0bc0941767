package get_available_dates

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/schedule"
	"github.com/m04kA/SMC-SalonBookingService/internal/usecase/get_free_slots"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// UseCase use case для поиска ближайших дат со свободными слотами
type UseCase struct {
	finder       SlotsFinder
	policy       *schedule.Policy
	defaultDays  int
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// defaultDays <= 0 заменяется на domain.DefaultDatesAhead
func NewUseCase(finder SlotsFinder, policy *schedule.Policy, defaultDays int, logger Logger) *UseCase {
	if defaultDays <= 0 || defaultDays > domain.MaxDatesAhead {
		defaultDays = domain.DefaultDatesAhead
	}
	return &UseCase{
		finder:       finder,
		policy:       policy,
		defaultDays:  defaultDays,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case поиска доступных дат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.Days < 0 || req.Days > domain.MaxDatesAhead {
		err := domain.NewFieldError("days", fmt.Errorf("%w: days must be between 1 and %d", ErrInvalidInput, domain.MaxDatesAhead))
		uc.logger.Warn("GetAvailableDates: validation failed: %v", err)
		return nil, err
	}
	if err := get_free_slots.ValidateFilter(req.Filter); err != nil {
		uc.logger.Warn("GetAvailableDates: validation failed: %v", err)
		return nil, err
	}

	days := req.Days
	if days == 0 {
		days = uc.defaultDays
	}

	// 2. Перебираем даты начиная с сегодняшней
	now := uc.timeProvider.Now()
	from := uc.policy.Today(now)

	dates := make([]AvailableDate, 0, days)
	for i := 0; i < days; i++ {
		date := from.AddDate(0, 0, i)
		free, err := uc.finder.FreeSlots(ctx, date, req.Filter, now)
		if err != nil {
			uc.logger.Error("GetAvailableDates: failed on %s: %v", types.FormatDate(date), err)
			return nil, fmt.Errorf("%w: %w", ErrInternal, err)
		}
		if len(free) > 0 {
			dates = append(dates, AvailableDate{Date: date, FreeSlots: len(free)})
		}
	}

	uc.logger.Info("GetAvailableDates: %d of %d days available from %s", len(dates), days, types.FormatDate(from))

	return &Response{From: from, Days: days, Dates: dates}, nil
}
