package memory

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/client"
)

// ClientRepository клиенты в памяти
type ClientRepository struct {
	store *Store
}

// Clients возвращает репозиторий клиентов
func (s *Store) Clients() *ClientRepository {
	return &ClientRepository{store: s}
}

// UpsertByPhone создает клиента или обновляет имя (и email, если передан) существующего
func (r *ClientRepository) UpsertByPhone(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	r.store.write(ctx, func(d *dataset) {
		if id, ok := d.clientByPhone[c.Phone]; ok {
			existing := d.clients[id]
			existing.Name = c.Name
			if c.Email != nil {
				existing.Email = c.Email
			}
			d.clients[id] = copyClient(existing)
			*c = copyClient(existing)
			return
		}

		c.ID = d.nextID()
		c.CreatedAt = time.Now()
		d.clients[c.ID] = copyClient(*c)
		d.clientByPhone[c.Phone] = c.ID
	})
	return c, nil
}

// GetByPhone получает клиента по нормализованному телефону
func (r *ClientRepository) GetByPhone(ctx context.Context, phone string) (*domain.Client, error) {
	var (
		found domain.Client
		ok    bool
	)
	r.store.read(ctx, func(d *dataset) {
		var id int64
		if id, ok = d.clientByPhone[phone]; ok {
			found = copyClient(d.clients[id])
		}
	})
	if !ok {
		return nil, client.ErrClientNotFound
	}
	return &found, nil
}
