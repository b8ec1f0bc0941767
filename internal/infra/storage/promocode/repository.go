package promocode

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/psqlbuilder"
)

const (
	tableName       = "promo_codes"
	usageConstraint = "promo_codes_usage_check"
)

var columns = []string{
	"id",
	"code",
	"discount_type",
	"discount_value",
	"description",
	"valid_from",
	"valid_to",
	"is_active",
	"max_uses",
	"used_count",
	"created_at",
}

// Repository репозиторий промокодов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория промокодов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByCode получает промокод по коду (точное совпадение)
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы счётчик не изменился до инкремента
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"code": code})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - build select query: %v", ErrBuildQuery, err)
	}

	var (
		p         domain.PromoCode
		kind      string
		createdAt sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.Code,
		&kind,
		&p.Value,
		&p.Description,
		&p.ValidFrom,
		&p.ValidTo,
		&p.IsActive,
		&p.MaxUses,
		&p.UsedCount,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPromoCodeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - scan promo code: %w", ErrScanRow, err)
	}

	p.Kind, err = domain.ParseDiscountKind(kind)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - %w", ErrScanRow, err)
	}
	p.CreatedAt = createdAt.Time

	return &p, nil
}

// IncrementUsage атомарно увеличивает счётчик использований
// Условие used_count < max_uses проверяется в самом UPDATE: если лимит исчерпан
// (в том числе конкурирующей транзакцией), строка не обновится.
func (r *Repository) IncrementUsage(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("used_count", squirrel.Expr("used_count + 1")).
		Where(squirrel.Eq{"id": id}).
		Where("used_count < max_uses").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if pgerr.IsCheckViolation(err, usageConstraint) {
		return fmt.Errorf("%w: IncrementUsage - promo %d", ErrPromoExhausted, id)
	}
	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: IncrementUsage - promo %d", ErrPromoExhausted, id)
	}

	return nil
}

// Save создает промокод или обновляет существующий с тем же кодом
// Счётчик использований при обновлении не трогается.
func (r *Repository) Save(ctx context.Context, p *domain.PromoCode) (*domain.PromoCode, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: Save - %w", ErrInvalidPromoCode, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("code", "discount_type", "discount_value", "description", "valid_from", "valid_to", "is_active", "max_uses", "used_count").
		Values(p.Code, string(p.Kind), p.Value, p.Description, p.ValidFrom, p.ValidTo, p.IsActive, p.MaxUses, p.UsedCount).
		Suffix("ON CONFLICT (code) DO UPDATE SET " +
			"discount_type = EXCLUDED.discount_type, " +
			"discount_value = EXCLUDED.discount_value, " +
			"description = EXCLUDED.description, " +
			"valid_from = EXCLUDED.valid_from, " +
			"valid_to = EXCLUDED.valid_to, " +
			"is_active = EXCLUDED.is_active, " +
			"max_uses = EXCLUDED.max_uses " +
			"RETURNING id, used_count, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Save - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.UsedCount, &createdAt)
	if pgerr.IsCheckViolation(err, "") {
		return nil, fmt.Errorf("%w: Save - %w", ErrInvalidPromoCode, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Save - execute upsert: %w", ErrExecQuery, err)
	}
	p.CreatedAt = createdAt.Time

	return p, nil
}
