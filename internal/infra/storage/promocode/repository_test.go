package promocode

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestRepository_GetByCode(t *testing.T) {
	repo, mock := newMock(t)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT (.+) FROM promo_codes WHERE code = \$1$`).
		WithArgs("SUMMER20").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(1), "SUMMER20", "percent", "20.00", "Летняя скидка", from, to, true, 100, 5, from))

	p, err := repo.GetByCode(context.Background(), "SUMMER20")
	require.NoError(t, err)
	assert.Equal(t, domain.DiscountPercent, p.Kind)
	assert.True(t, p.Value.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, 95, p.RemainingUses())
}

func TestRepository_GetByCode_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`FROM promo_codes`).WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByCode(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrPromoCodeNotFound)
}

func TestRepository_IncrementUsage(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`UPDATE promo_codes SET used_count = used_count \+ 1 WHERE id = \$1 AND used_count < max_uses`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.IncrementUsage(context.Background(), 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_IncrementUsage_Exhausted(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`UPDATE promo_codes`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE promo_codes`).WillReturnError(&pq.Error{Code: "23514", Constraint: usageConstraint})

	assert.ErrorIs(t, repo.IncrementUsage(context.Background(), 1), ErrPromoExhausted)
	assert.ErrorIs(t, repo.IncrementUsage(context.Background(), 1), ErrPromoExhausted)
}

func TestRepository_Save_RejectsInvalid(t *testing.T) {
	repo, mock := newMock(t)

	now := time.Now()
	_, err := repo.Save(context.Background(), &domain.PromoCode{
		Code:      "BROKEN",
		Kind:      domain.DiscountFixed,
		Value:     decimal.NewFromInt(100),
		ValidFrom: now,
		ValidTo:   now.Add(time.Hour),
		MaxUses:   1,
		UsedCount: 2,
	})
	assert.ErrorIs(t, err, ErrInvalidPromoCode)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Save(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO promo_codes (.+) ON CONFLICT \(code\) DO UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "used_count", "created_at"}).AddRow(int64(9), 3, now))

	p, err := repo.Save(context.Background(), &domain.PromoCode{
		Code:      "WELCOME500",
		Kind:      domain.DiscountFixed,
		Value:     decimal.NewFromInt(500),
		ValidFrom: now,
		ValidTo:   now.AddDate(0, 1, 0),
		IsActive:  true,
		MaxUses:   10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), p.ID)
	assert.Equal(t, 3, p.UsedCount)
}
