package memory

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// ConsultationRepository заявки на консультацию в памяти
type ConsultationRepository struct {
	store *Store
}

// Consultations возвращает репозиторий заявок
func (s *Store) Consultations() *ConsultationRepository {
	return &ConsultationRepository{store: s}
}

// Create сохраняет заявку
func (r *ConsultationRepository) Create(ctx context.Context, c *domain.Consultation) (*domain.Consultation, error) {
	r.store.write(ctx, func(d *dataset) {
		c.ID = d.nextID()
		c.CreatedAt = time.Now()
		d.consultations[c.ID] = *c
	})
	return c, nil
}

// Count количество сохранённых заявок
func (r *ConsultationRepository) Count(ctx context.Context) int {
	var n int
	r.store.read(ctx, func(d *dataset) {
		n = len(d.consultations)
	})
	return n
}
