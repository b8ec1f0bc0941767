package memory

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/catalog"
)

// CatalogRepository справочники в памяти
type CatalogRepository struct {
	store *Store
}

// Catalog возвращает репозиторий справочников
func (s *Store) Catalog() *CatalogRepository {
	return &CatalogRepository{store: s}
}

// GetSalon получает салон по ID
func (r *CatalogRepository) GetSalon(ctx context.Context, id int64) (*domain.Salon, error) {
	var (
		found domain.Salon
		ok    bool
	)
	r.store.read(ctx, func(d *dataset) {
		found, ok = d.salons[id]
	})
	if !ok {
		return nil, catalog.ErrSalonNotFound
	}
	return &found, nil
}

// ListSalons активные салоны по имени
func (r *CatalogRepository) ListSalons(ctx context.Context) ([]*domain.Salon, error) {
	result := make([]*domain.Salon, 0)
	r.store.read(ctx, func(d *dataset) {
		for _, s := range d.salons {
			if s.IsActive {
				cp := s
				result = append(result, &cp)
			}
		}
	})
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// GetService получает услугу по ID
func (r *CatalogRepository) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	var (
		found domain.Service
		ok    bool
	)
	r.store.read(ctx, func(d *dataset) {
		found, ok = d.services[id]
		if ok {
			found.CategoryName = d.categories[found.CategoryID].Name
		}
	})
	if !ok {
		return nil, catalog.ErrServiceNotFound
	}
	return &found, nil
}

// ListServices активные услуги в порядке категорий, затем услуг
func (r *CatalogRepository) ListServices(ctx context.Context, filter domain.ServiceFilter) ([]*domain.Service, error) {
	type item struct {
		service  domain.Service
		category domain.ServiceCategory
	}

	items := make([]item, 0)
	r.store.read(ctx, func(d *dataset) {
		for _, s := range d.services {
			if !s.IsActive {
				continue
			}
			if filter.CategoryID != nil && s.CategoryID != *filter.CategoryID {
				continue
			}
			if filter.SalonID != nil && !d.offeredAt(s.ID, *filter.SalonID) {
				continue
			}
			cat := d.categories[s.CategoryID]
			s.CategoryName = cat.Name
			items = append(items, item{service: s, category: cat})
		}
	})

	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.category.Order != b.category.Order {
			return a.category.Order < b.category.Order
		}
		if a.category.ID != b.category.ID {
			return a.category.ID < b.category.ID
		}
		if a.service.Order != b.service.Order {
			return a.service.Order < b.service.Order
		}
		return a.service.ID < b.service.ID
	})

	result := make([]*domain.Service, len(items))
	for i := range items {
		result[i] = &items[i].service
	}
	return result, nil
}

// offeredAt есть ли активный мастер, оказывающий услугу в салоне
func (d *dataset) offeredAt(serviceID, salonID int64) bool {
	for _, m := range d.masters {
		if m.IsActive && m.OffersService(serviceID) && m.WorksAt(salonID) {
			return true
		}
	}
	return false
}

// GetMaster получает мастера по ID со ссылками на активные услуги и салоны
func (r *CatalogRepository) GetMaster(ctx context.Context, id int64) (*domain.Master, error) {
	var (
		found domain.Master
		ok    bool
	)
	r.store.read(ctx, func(d *dataset) {
		var m domain.Master
		if m, ok = d.masters[id]; ok {
			found = d.withActiveLinks(m)
		}
	})
	if !ok {
		return nil, catalog.ErrMasterNotFound
	}
	return &found, nil
}

// ListMasters активные мастера с учётом фильтров
func (r *CatalogRepository) ListMasters(ctx context.Context, filter domain.MasterFilter) ([]*domain.Master, error) {
	result := make([]*domain.Master, 0)
	r.store.read(ctx, func(d *dataset) {
		for _, m := range d.masters {
			if !m.IsActive {
				continue
			}
			if filter.SalonID != nil && !m.WorksAt(*filter.SalonID) {
				continue
			}
			if filter.ServiceID != nil && !m.OffersService(*filter.ServiceID) {
				continue
			}
			cp := d.withActiveLinks(m)
			result = append(result, &cp)
		}
	})

	sort.Slice(result, func(i, j int) bool {
		if result[i].Order != result[j].Order {
			return result[i].Order < result[j].Order
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (d *dataset) withActiveLinks(m domain.Master) domain.Master {
	services := make([]int64, 0, len(m.ServiceIDs))
	for _, id := range m.ServiceIDs {
		if s, ok := d.services[id]; ok && s.IsActive {
			services = append(services, id)
		}
	}
	salons := make([]int64, 0, len(m.SalonIDs))
	for _, id := range m.SalonIDs {
		if s, ok := d.salons[id]; ok && s.IsActive {
			salons = append(salons, id)
		}
	}
	sort.Slice(services, func(i, j int) bool { return services[i] < services[j] })
	sort.Slice(salons, func(i, j int) bool { return salons[i] < salons[j] })

	m.ServiceIDs = services
	m.SalonIDs = salons
	return m
}
