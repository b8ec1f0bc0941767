package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// AddSalon добавляет салон и возвращает его ID
func (s *Store) AddSalon(salon domain.Salon) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	salon.ID = s.data.nextID()
	s.data.salons[salon.ID] = salon
	return salon.ID
}

// AddCategory добавляет категорию услуг
func (s *Store) AddCategory(category domain.ServiceCategory) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	category.ID = s.data.nextID()
	s.data.categories[category.ID] = category
	return category.ID
}

// AddService добавляет услугу
func (s *Store) AddService(service domain.Service) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	service.ID = s.data.nextID()
	s.data.services[service.ID] = service
	return service.ID
}

// AddMaster добавляет мастера со связями на услуги и салоны
func (s *Store) AddMaster(master domain.Master) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	master.ID = s.data.nextID()
	s.data.masters[master.ID] = copyMaster(master)
	return master.ID
}

// AddPromoCode сохраняет промокод, проверяя инварианты
func (s *Store) AddPromoCode(p domain.PromoCode) (int64, error) {
	saved, err := s.PromoCodes().Save(context.Background(), &p)
	if err != nil {
		return 0, err
	}
	return saved.ID, nil
}

// SeedDemo заполняет хранилище демонстрационными данными
func SeedDemo(s *Store, now time.Time) error {
	center := s.AddSalon(domain.Salon{
		Name:         "Салон на Тверской",
		Address:      "ул. Тверская, 12",
		Phone:        "+74951234567",
		WorkingHours: "10:00–19:00",
		IsActive:     true,
	})
	north := s.AddSalon(domain.Salon{
		Name:         "Салон на Соколе",
		Address:      "Ленинградский пр-т, 77",
		Phone:        "+74957654321",
		WorkingHours: "10:00–19:00",
		IsActive:     true,
	})

	hair := s.AddCategory(domain.ServiceCategory{Name: "Стрижки", Order: 1})
	nails := s.AddCategory(domain.ServiceCategory{Name: "Маникюр", Order: 2})

	womenCut := s.AddService(domain.Service{
		CategoryID:      hair,
		Name:            "Женская стрижка",
		Price:           decimal.NewFromInt(2000),
		DurationMinutes: 60,
		IsActive:        true,
		Order:           1,
	})
	menCut := s.AddService(domain.Service{
		CategoryID:      hair,
		Name:            "Мужская стрижка",
		Price:           decimal.NewFromInt(1200),
		DurationMinutes: 30,
		IsActive:        true,
		Order:           2,
	})
	manicure := s.AddService(domain.Service{
		CategoryID:      nails,
		Name:            "Классический маникюр",
		Price:           decimal.RequireFromString("1500.00"),
		DurationMinutes: 60,
		IsActive:        true,
		Order:           1,
	})

	s.AddMaster(domain.Master{
		Name:       "Ольга Смирнова",
		Specialty:  "Стилист-парикмахер",
		Experience: "8 лет",
		Rating:     decimal.RequireFromString("4.9"),
		IsActive:   true,
		Order:      1,
		ServiceIDs: []int64{womenCut, menCut},
		SalonIDs:   []int64{center, north},
	})
	s.AddMaster(domain.Master{
		Name:       "Ирина Ковалёва",
		Specialty:  "Мастер ногтевого сервиса",
		Experience: "5 лет",
		Rating:     decimal.RequireFromString("4.8"),
		IsActive:   true,
		Order:      2,
		ServiceIDs: []int64{manicure},
		SalonIDs:   []int64{center},
	})

	promos := []domain.PromoCode{
		{
			Code:        "SUMMER20",
			Kind:        domain.DiscountPercent,
			Value:       decimal.NewFromInt(20),
			Description: "Скидка 20% на любую услугу",
			ValidFrom:   now.AddDate(0, -1, 0),
			ValidTo:     now.AddDate(0, 3, 0),
			IsActive:    true,
			MaxUses:     100,
		},
		{
			Code:        "WELCOME500",
			Kind:        domain.DiscountFixed,
			Value:       decimal.NewFromInt(500),
			Description: "500 ₽ на первый визит",
			ValidFrom:   now.AddDate(0, -1, 0),
			ValidTo:     now.AddDate(1, 0, 0),
			IsActive:    true,
			MaxUses:     1000,
		},
	}
	for _, p := range promos {
		if _, err := s.AddPromoCode(p); err != nil {
			return err
		}
	}

	return nil
}
