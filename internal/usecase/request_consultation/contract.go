package request_consultation

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	UpsertByPhone(ctx context.Context, client *domain.Client) (*domain.Client, error)
}

// ConsultationRepository интерфейс репозитория заявок
type ConsultationRepository interface {
	Create(ctx context.Context, consultation *domain.Consultation) (*domain.Consultation, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
