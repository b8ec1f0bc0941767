package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/pgerr"
	promoRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/promocode"
	"github.com/m04kA/SMC-SalonBookingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/pricing"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/schedule"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// UseCase use case для создания записи
type UseCase struct {
	catalogRepo     CatalogRepository
	clientRepo      ClientRepository
	promoRepo       PromoCodeRepository
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	cache           SlotsCache
	publisher       Publisher
	metrics         Metrics
	policy          *schedule.Policy
	timeProvider    TimeProvider
	logger          Logger
}

// Deps зависимости use case
type Deps struct {
	Catalog      CatalogRepository
	Clients      ClientRepository
	PromoCodes   PromoCodeRepository
	Appointments AppointmentRepository
	TxManager    TransactionManager
	Cache        SlotsCache
	Publisher    Publisher
	Metrics      Metrics
	Policy       *schedule.Policy
	Logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(deps Deps) *UseCase {
	return &UseCase{
		catalogRepo:     deps.Catalog,
		clientRepo:      deps.Clients,
		promoRepo:       deps.PromoCodes,
		appointmentRepo: deps.Appointments,
		txManager:       deps.TxManager,
		cache:           deps.Cache,
		publisher:       deps.Publisher,
		metrics:         deps.Metrics,
		policy:          deps.Policy,
		timeProvider:    &RealTimeProvider{},
		logger:          deps.Logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания записи
// Проверка слота, клиент, запись и списание промокода выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: salon=%d, service=%d, master=%d, date=%s, time=%s, promo=%q",
		req.SalonID, req.ServiceID, req.MasterID, types.FormatDate(req.Date), req.Time, req.PromoCode)

	// 1. Валидация входных данных
	input, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверка даты и времени (сетка, прошлое, горизонт, запас времени)
	now := uc.timeProvider.Now()
	date := uc.policy.NormalizeDate(req.Date)
	if err := uc.policy.ValidateSlot(date, req.Time, now); err != nil {
		uc.logger.Warn("CreateAppointment: slot %s %s rejected: %v", types.FormatDate(date), req.Time, err)
		return nil, err
	}

	// 3. Проверяем салон, услугу и мастера
	service, err := uc.resolveReferences(ctx, req)
	if err != nil {
		return nil, err
	}

	// 4. Транзакция: повторная проверка слота, промокод, клиент, запись, списание промокода
	var created *domain.Appointment
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		taken, err := uc.appointmentRepo.IsSlotOccupied(txCtx, req.MasterID, date, req.Time)
		if err != nil {
			return fmt.Errorf("%w: failed to check slot: %w", ErrInternal, err)
		}
		if taken {
			return domain.NewFieldError("time", ErrSlotTaken)
		}

		promo, err := uc.loadPromo(txCtx, input.promo, now)
		if err != nil {
			return err
		}

		client, err := uc.clientRepo.UpsertByPhone(txCtx, &domain.Client{
			Phone: input.phone,
			Name:  input.name,
			Email: input.email,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to upsert client: %w", ErrInternal, err)
		}

		price := pricing.Calculate(service.Price, promo, now)
		if err := price.Check(); err != nil {
			return fmt.Errorf("%w: %w", ErrInternal, err)
		}

		a := &domain.Appointment{
			ClientID:       client.ID,
			MasterID:       req.MasterID,
			ServiceID:      req.ServiceID,
			SalonID:        req.SalonID,
			Date:           date,
			Time:           req.Time,
			Status:         domain.StatusPending,
			OriginalPrice:  price.Original,
			DiscountAmount: price.Discount,
			FinalPrice:     price.Final,
			Notes:          input.notes,
		}
		if price.PromoApplied {
			a.PromoCodeID = &promo.ID
		}

		created, err = uc.appointmentRepo.Create(txCtx, a)
		if errors.Is(err, appointment.ErrSlotTaken) {
			return domain.NewFieldError("time", ErrSlotTaken)
		}
		if err != nil {
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		// Списание ровно одного использования; при исчерпании откатывается вся транзакция
		if price.PromoApplied {
			err := uc.promoRepo.IncrementUsage(txCtx, promo.ID)
			if errors.Is(err, promoRepo.ErrPromoExhausted) {
				return domain.NewFieldError("promoCode", ErrPromoExhausted)
			}
			if err != nil {
				return fmt.Errorf("%w: failed to increment promo usage: %w", ErrInternal, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, uc.failure(ctx, req, date, err)
	}

	// 5. После фиксации: кэш, событие, метрики
	uc.cache.InvalidateDate(ctx, date)

	if err := uc.publisher.AppointmentCreated(ctx, notifier.NewAppointmentCreatedEvent(created)); err != nil {
		uc.logger.Error("CreateAppointment: failed to publish event for appointment %d: %v", created.ID, err)
	}

	uc.metrics.AppointmentCreated(created.PromoCodeID != nil)

	uc.logger.Info("CreateAppointment: appointment %s created: id=%d, client=%d, final_price=%s",
		created.Number(), created.ID, created.ClientID, created.FinalPrice.StringFixed(domain.MoneyScale))

	return FromDomain(created), nil
}

// resolveReferences проверяет, что салон, услуга и мастер активны и совместимы
func (uc *UseCase) resolveReferences(ctx context.Context, req *Request) (*domain.Service, error) {
	salon, err := uc.catalogRepo.GetSalon(ctx, req.SalonID)
	if errors.Is(err, catalogRepo.ErrSalonNotFound) || (err == nil && !salon.IsActive) {
		uc.logger.Warn("CreateAppointment: salon %d not found", req.SalonID)
		return nil, domain.NewFieldError("salonId", ErrSalonNotFound)
	}
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get salon %d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %w", ErrInternal, err)
	}

	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if errors.Is(err, catalogRepo.ErrServiceNotFound) || (err == nil && !service.IsActive) {
		uc.logger.Warn("CreateAppointment: service %d not found", req.ServiceID)
		return nil, domain.NewFieldError("serviceId", ErrServiceNotFound)
	}
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get service %d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}

	master, err := uc.catalogRepo.GetMaster(ctx, req.MasterID)
	if errors.Is(err, catalogRepo.ErrMasterNotFound) || (err == nil && !master.IsActive) {
		uc.logger.Warn("CreateAppointment: master %d not found", req.MasterID)
		return nil, domain.NewFieldError("masterId", ErrMasterNotFound)
	}
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get master %d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: failed to get master: %w", ErrInternal, err)
	}

	if !master.WorksAt(salon.ID) || !master.OffersService(service.ID) {
		uc.logger.Warn("CreateAppointment: master %d does not provide service %d at salon %d",
			master.ID, service.ID, salon.ID)
		return nil, domain.NewFieldError("masterId", ErrMasterUnavailable)
	}

	return service, nil
}

// loadPromo читает промокод внутри транзакции; пустой код - без скидки
// Ошибка чтения прерывает запись: молча считать полную цену нельзя
func (uc *UseCase) loadPromo(ctx context.Context, code string, now time.Time) (*domain.PromoCode, error) {
	if code == "" {
		return nil, nil
	}

	promo, err := uc.promoRepo.GetByCode(ctx, code)
	if errors.Is(err, promoRepo.ErrPromoCodeNotFound) {
		return nil, domain.NewFieldError("promoCode", ErrPromoNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get promo code: %w", ErrInternal, err)
	}

	switch promo.InvalidReason(now) {
	case domain.PromoReasonNone:
		return promo, nil
	case domain.PromoReasonInactive:
		return nil, domain.NewFieldError("promoCode", ErrPromoNotFound)
	case domain.PromoReasonExhausted:
		return nil, domain.NewFieldError("promoCode", ErrPromoExhausted)
	default:
		return nil, domain.NewFieldError("promoCode", ErrPromoNotApplicable)
	}
}

// failure логирует ошибку транзакции и приводит её к виду ошибки use case
func (uc *UseCase) failure(ctx context.Context, req *Request, date time.Time, err error) error {
	if pgerr.IsSerializationFailure(err) {
		err = uc.serializationFailure(ctx, req, date, err)
	}

	switch {
	case errors.Is(err, ErrSlotTaken):
		uc.metrics.BookingConflict(conflictSlotTaken)
		uc.logger.Warn("CreateAppointment: slot conflict: %v", err)
	case errors.Is(err, ErrPromoExhausted):
		uc.metrics.BookingConflict(conflictPromoExhausted)
		uc.logger.Warn("CreateAppointment: promo conflict: %v", err)
	case errors.Is(err, ErrConcurrentUpdate):
		uc.metrics.BookingConflict(conflictConcurrent)
		uc.logger.Warn("CreateAppointment: concurrent update: %v", err)
	case errors.Is(err, domain.ErrInternal):
		uc.logger.Error("CreateAppointment: transaction failed: %v", err)
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrNotFound):
		uc.logger.Warn("CreateAppointment: rejected: %v", err)
	default:
		uc.logger.Error("CreateAppointment: transaction failed: %v", err)
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return err
}

// serializationFailure различает причину отката сериализуемой транзакции
// Слот считается занятым, только если после отката в нём действительно есть запись:
// общие строки (промокод, клиент по телефону) тоже дают 40001 при свободном слоте
func (uc *UseCase) serializationFailure(ctx context.Context, req *Request, date time.Time, err error) error {
	taken, checkErr := uc.appointmentRepo.IsSlotOccupied(ctx, req.MasterID, date, req.Time)
	if checkErr != nil {
		return fmt.Errorf("%w: failed to recheck slot after %v: %w", ErrInternal, err, checkErr)
	}
	if taken {
		return domain.NewFieldError("time", fmt.Errorf("%w: %v", ErrSlotTaken, err))
	}
	return fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
}
