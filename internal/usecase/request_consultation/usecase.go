package request_consultation

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// UseCase use case заявки на консультацию
type UseCase struct {
	clientRepo       ClientRepository
	consultationRepo ConsultationRepository
	txManager        TransactionManager
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	clientRepo ClientRepository,
	consultationRepo ConsultationRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		clientRepo:       clientRepo,
		consultationRepo: consultationRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// Execute сохраняет клиента и заявку в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	name := strings.TrimSpace(req.ClientName)
	notes := strings.TrimSpace(req.Notes)

	// 1. Валидация
	if name == "" {
		return nil, domain.NewFieldError("clientName", fmt.Errorf("%w: client name is required", ErrInvalidInput))
	}
	if utf8.RuneCountInString(name) > domain.MaxClientNameLength {
		return nil, domain.NewFieldError("clientName",
			fmt.Errorf("%w: client name must not exceed %d characters", ErrInvalidInput, domain.MaxClientNameLength))
	}
	if utf8.RuneCountInString(notes) > domain.MaxNotesLength {
		return nil, domain.NewFieldError("notes",
			fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength))
	}
	phone, err := domain.NormalizePhone(req.ClientPhone)
	if err != nil {
		uc.logger.Warn("RequestConsultation: invalid phone: %v", err)
		return nil, domain.NewFieldError("clientPhone", fmt.Errorf("%w: %w", ErrInvalidInput, err))
	}

	// 2. Клиент и заявка
	var created *domain.Consultation
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		client, err := uc.clientRepo.UpsertByPhone(txCtx, &domain.Client{Phone: phone, Name: name})
		if err != nil {
			return fmt.Errorf("failed to upsert client: %w", err)
		}

		created, err = uc.consultationRepo.Create(txCtx, &domain.Consultation{
			ClientID: client.ID,
			Status:   domain.ConsultationPending,
			Notes:    notes,
		})
		if err != nil {
			return fmt.Errorf("failed to create consultation: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("RequestConsultation: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	uc.logger.Info("RequestConsultation: consultation %d created for client %d", created.ID, created.ClientID)

	return &Response{
		ConsultationID: created.ID,
		ClientID:       created.ClientID,
		Status:         created.Status,
	}, nil
}
