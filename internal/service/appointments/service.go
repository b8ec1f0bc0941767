package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonBookingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Service сервис для работы с записями
type Service struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	cache           SlotsCache
	publisher       Publisher
	logger          Logger
	now             func() time.Time
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	cache SlotsCache,
	publisher Publisher,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		cache:           cache,
		publisher:       publisher,
		logger:          logger,
		now:             time.Now,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	if id <= 0 {
		return nil, domain.NewFieldError("appointmentId", fmt.Errorf("%w: id must be positive", ErrInvalidInput))
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appointment), nil
}

// ListByMasterAndDate записи мастера на дату в порядке времени, включая отменённые
func (s *Service) ListByMasterAndDate(ctx context.Context, masterID int64, date time.Time) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListByMasterAndDate: master=%d, date=%s", masterID, types.FormatDate(date))

	if masterID <= 0 {
		return nil, domain.NewFieldError("masterId", fmt.Errorf("%w: masterId must be positive", ErrInvalidInput))
	}
	if date.IsZero() {
		return nil, domain.NewFieldError("date", fmt.Errorf("%w: date is required", ErrInvalidInput))
	}

	list, err := s.appointmentRepo.ListByMasterAndDate(ctx, masterID, date)
	if err != nil {
		s.logger.Error("ListByMasterAndDate: repository error for master=%d: %v", masterID, err)
		return nil, fmt.Errorf("%w: ListByMasterAndDate - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentList(list), nil
}

// Statuses справочник статусов с допустимыми переходами
func (s *Service) Statuses() []models.StatusResponse {
	return models.FromDomainStatuses()
}

// UpdateStatus переводит запись в новый статус по правилам жизненного цикла
// Подтверждение ничего не проверяет дополнительно: pending уже занимает слот.
// Использование промокода при отмене не возвращается.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: appointment id=%d, status=%s", id, req.Status)

	if id <= 0 {
		return nil, domain.NewFieldError("appointmentId", fmt.Errorf("%w: id must be positive", ErrInvalidInput))
	}
	next, err := domain.ParseStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%q for appointment id=%d", req.Status, id)
		return nil, domain.NewFieldError("status", err)
	}

	var (
		updated *domain.Appointment
		change  domain.StatusChange
	)
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// В транзакции строка блокируется до смены статуса
		appointment, err := s.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - get appointment: %v", ErrInternal, err)
		}

		if !appointment.Status.CanTransitionTo(next) {
			return domain.NewFieldError("status",
				fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appointment.Status, next))
		}

		if err := s.appointmentRepo.UpdateStatus(txCtx, id, next); err != nil {
			switch {
			case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
				return ErrAppointmentNotFound
			case errors.Is(err, appointmentRepo.ErrSlotTaken):
				return domain.NewFieldError("status", ErrSlotTaken)
			}
			return fmt.Errorf("%w: UpdateStatus - update status: %v", ErrInternal, err)
		}

		change = domain.StatusChange{
			AppointmentID: appointment.ID,
			From:          appointment.Status,
			To:            next,
			Date:          appointment.Date,
			MasterID:      appointment.MasterID,
		}
		appointment.Status = next
		updated = appointment
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrInternal) {
			s.logger.Error("UpdateStatus: appointment id=%d: %v", id, err)
		} else {
			s.logger.Warn("UpdateStatus: appointment id=%d rejected: %v", id, err)
		}
		return nil, err
	}

	// Занятость слота могла измениться (отмена, неявка, завершение)
	if change.From.IsSlotOccupying() != change.To.IsSlotOccupying() {
		s.cache.InvalidateDate(ctx, change.Date)
	}

	if err := s.publisher.AppointmentStatusChanged(ctx, notifier.NewStatusChangedEvent(change, s.now())); err != nil {
		s.logger.Error("UpdateStatus: failed to publish status change for appointment id=%d: %v", id, err)
	}

	s.logger.Info("UpdateStatus: appointment id=%d moved %s -> %s", id, change.From, change.To)
	return models.FromDomainAppointment(updated), nil
}
