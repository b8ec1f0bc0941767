package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/psqlbuilder"
)

// Repository репозиторий клиентов; клиент однозначно определяется нормализованным телефоном
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// UpsertByPhone создает клиента или обновляет имя существующего
// Email перезаписывается только непустым значением. Повторный вызов с тем же телефоном
// возвращает того же клиента.
func (r *Repository) UpsertByPhone(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("clients").
		Columns("phone", "name", "email").
		Values(c.Phone, c.Name, c.Email).
		Suffix("ON CONFLICT (phone) DO UPDATE SET name = EXCLUDED.name, " +
			"email = COALESCE(EXCLUDED.email, clients.email) " +
			"RETURNING id, email, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertByPhone - build insert query: %v", ErrBuildQuery, err)
	}

	var (
		email     sql.NullString
		createdAt sql.NullTime
	)
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &email, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: UpsertByPhone - execute upsert: %w", ErrExecQuery, err)
	}

	c.Email = nullString(email)
	c.CreatedAt = createdAt.Time

	return c, nil
}

// GetByPhone получает клиента по нормализованному телефону
func (r *Repository) GetByPhone(ctx context.Context, phone string) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "phone", "name", "email", "created_at").
		From("clients").
		Where(squirrel.Eq{"phone": phone}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPhone - build select query: %v", ErrBuildQuery, err)
	}

	var (
		c         domain.Client
		email     sql.NullString
		createdAt sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Phone, &c.Name, &email, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPhone - scan client: %w", ErrExecQuery, err)
	}

	c.Email = nullString(email)
	c.CreatedAt = createdAt.Time

	return &c, nil
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
