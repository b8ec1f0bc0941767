package models

import "github.com/m04kA/SMC-SalonBookingService/internal/domain"

// SalonResponse салон
type SalonResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	WorkingHours string `json:"workingHours"`
}

// ServiceResponse услуга
type ServiceResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	Price           string `json:"price"` // "2000.00"
	DurationMinutes int    `json:"durationMinutes"`
}

// CategoryResponse категория с услугами
type CategoryResponse struct {
	ID       int64             `json:"id"`
	Name     string            `json:"name"`
	Services []ServiceResponse `json:"services"`
}

// MasterResponse мастер
type MasterResponse struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Specialty  string  `json:"specialty"`
	Experience string  `json:"experience"`
	Rating     string  `json:"rating"` // "4.9"
	ServiceIDs []int64 `json:"serviceIds"`
	SalonIDs   []int64 `json:"salonIds"`
}

// FromDomainSalons конвертирует список салонов
func FromDomainSalons(salons []*domain.Salon) []SalonResponse {
	result := make([]SalonResponse, 0, len(salons))
	for _, s := range salons {
		result = append(result, SalonResponse{
			ID:           s.ID,
			Name:         s.Name,
			Address:      s.Address,
			Phone:        s.Phone,
			WorkingHours: s.WorkingHours,
		})
	}
	return result
}

// GroupByCategory группирует упорядоченный список услуг по категориям, сохраняя порядок
func GroupByCategory(services []*domain.Service) []CategoryResponse {
	result := make([]CategoryResponse, 0)
	index := make(map[int64]int)
	for _, s := range services {
		i, ok := index[s.CategoryID]
		if !ok {
			i = len(result)
			index[s.CategoryID] = i
			result = append(result, CategoryResponse{
				ID:       s.CategoryID,
				Name:     s.CategoryName,
				Services: make([]ServiceResponse, 0),
			})
		}
		result[i].Services = append(result[i].Services, ServiceResponse{
			ID:              s.ID,
			Name:            s.Name,
			Description:     s.Description,
			Price:           s.Price.StringFixed(domain.MoneyScale),
			DurationMinutes: s.DurationMinutes,
		})
	}
	return result
}

// FromDomainMasters конвертирует список мастеров
func FromDomainMasters(masters []*domain.Master) []MasterResponse {
	result := make([]MasterResponse, 0, len(masters))
	for _, m := range masters {
		result = append(result, MasterResponse{
			ID:         m.ID,
			Name:       m.Name,
			Specialty:  m.Specialty,
			Experience: m.Experience,
			Rating:     m.Rating.StringFixed(1),
			ServiceIDs: nonNil(m.ServiceIDs),
			SalonIDs:   nonNil(m.SalonIDs),
		})
	}
	return result
}

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
