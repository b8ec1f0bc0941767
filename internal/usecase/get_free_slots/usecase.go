package get_free_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/cache/slots"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/schedule"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// UseCase use case для получения свободных слотов на дату
type UseCase struct {
	appointmentRepo AppointmentRepository
	cache           SlotsCache
	policy          *schedule.Policy
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	cache SlotsCache,
	policy *schedule.Policy,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		cache:           cache,
		policy:          policy,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetFreeSlots: date=%s, master=%s, salon=%s, service=%s",
		types.FormatDate(req.Date), idString(req.Filter.MasterID), idString(req.Filter.SalonID), idString(req.Filter.ServiceID))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetFreeSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Считаем свободные слоты
	date := uc.policy.NormalizeDate(req.Date)
	free, err := uc.FreeSlots(ctx, date, req.Filter, uc.timeProvider.Now())
	if err != nil {
		return nil, err
	}

	resp := &Response{
		Date:  date,
		Slots: free,
	}

	// 3. Группировка по периодам - чистая перегруппировка, не фильтр
	if req.Grouped {
		resp.Periods = schedule.GroupByPeriod(free)
	}

	uc.logger.Info("GetFreeSlots: %d free slots on %s", len(free), types.FormatDate(date))

	return resp, nil
}

// FreeSlots свободное время на дату для уже провалидированных фильтров
// Переиспользуется при поиске доступных дат
func (uc *UseCase) FreeSlots(ctx context.Context, date time.Time, filter Filter, now time.Time) ([]types.TimeString, error) {
	// Прошедшая дата и дата за горизонтом записи не имеют свободных слотов
	if uc.policy.IsPastDate(date, now) || uc.policy.IsBeyondHorizon(date, now) {
		return []types.TimeString{}, nil
	}

	occupied, err := uc.occupiedTimes(ctx, date, filter)
	if err != nil {
		return nil, err
	}

	return uc.policy.FreeSlots(date, occupied, now), nil
}

// occupiedTimes занятое время: сначала кэш, затем хранилище
func (uc *UseCase) occupiedTimes(ctx context.Context, date time.Time, filter Filter) ([]types.TimeString, error) {
	query := slots.Query{
		Date:      date,
		MasterID:  filter.MasterID,
		SalonID:   filter.SalonID,
		ServiceID: filter.ServiceID,
	}

	lookup := uc.cache.Get(ctx, query)
	uc.metrics.SlotsCacheLookup(lookup.Hit)
	if lookup.Hit {
		return lookup.Times, nil
	}

	occupied, err := uc.appointmentRepo.OccupiedTimes(ctx, domain.OccupiedFilter{
		Date:      date,
		MasterID:  filter.MasterID,
		SalonID:   filter.SalonID,
		ServiceID: filter.ServiceID,
	})
	if err != nil {
		uc.logger.Error("GetFreeSlots: failed to get occupied times for %s: %v", types.FormatDate(date), err)
		return nil, fmt.Errorf("%w: failed to get occupied times: %w", ErrInternal, err)
	}

	uc.cache.Put(ctx, lookup, occupied)

	return occupied, nil
}

func idString(id *int64) string {
	if id == nil {
		return "any"
	}
	return fmt.Sprintf("%d", *id)
}

// ValidateFilter проверка фильтров для других use case
func ValidateFilter(f Filter) error {
	return validateFilter(f)
}
