package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/promocode"
)

// PromoCodeRepository промокоды в памяти
type PromoCodeRepository struct {
	store *Store
}

// PromoCodes возвращает репозиторий промокодов
func (s *Store) PromoCodes() *PromoCodeRepository {
	return &PromoCodeRepository{store: s}
}

// GetByCode получает промокод по коду (точное совпадение)
func (r *PromoCodeRepository) GetByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	var (
		found domain.PromoCode
		ok    bool
	)
	r.store.read(ctx, func(d *dataset) {
		var id int64
		if id, ok = d.promoByCode[code]; ok {
			found = d.promoCodes[id]
		}
	})
	if !ok {
		return nil, promocode.ErrPromoCodeNotFound
	}
	return &found, nil
}

// IncrementUsage увеличивает счётчик, если лимит ещё не исчерпан
func (r *PromoCodeRepository) IncrementUsage(ctx context.Context, id int64) error {
	var err error
	r.store.write(ctx, func(d *dataset) {
		p, ok := d.promoCodes[id]
		if !ok || p.UsedCount >= p.MaxUses {
			err = fmt.Errorf("%w: IncrementUsage - promo %d", promocode.ErrPromoExhausted, id)
			return
		}
		p.UsedCount++
		d.promoCodes[id] = p
	})
	return err
}

// Save создает промокод или обновляет существующий с тем же кодом, не трогая счётчик
func (r *PromoCodeRepository) Save(ctx context.Context, p *domain.PromoCode) (*domain.PromoCode, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: Save - %w", promocode.ErrInvalidPromoCode, err)
	}

	var err error
	r.store.write(ctx, func(d *dataset) {
		if id, ok := d.promoByCode[p.Code]; ok {
			existing := d.promoCodes[id]
			if existing.UsedCount > p.MaxUses {
				err = fmt.Errorf("%w: Save - max_uses below used_count", promocode.ErrInvalidPromoCode)
				return
			}
			p.ID = id
			p.UsedCount = existing.UsedCount
			p.CreatedAt = existing.CreatedAt
			d.promoCodes[id] = *p
			return
		}

		p.ID = d.nextID()
		p.CreatedAt = time.Now()
		d.promoCodes[p.ID] = *p
		d.promoByCode[p.Code] = p.ID
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}
