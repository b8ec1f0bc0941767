package catalog

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/catalog/models"
)

// Service сервис просмотра справочников: салоны, услуги, мастера
type Service struct {
	repo   CatalogRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса
func NewService(repo CatalogRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListSalons активные салоны по имени
func (s *Service) ListSalons(ctx context.Context) ([]models.SalonResponse, error) {
	salons, err := s.repo.ListSalons(ctx)
	if err != nil {
		s.logger.Error("ListSalons: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListSalons - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainSalons(salons), nil
}

// ListServices активные услуги, сгруппированные по категориям
// С фильтром по салону остаются только услуги, которые там оказывает активный мастер
func (s *Service) ListServices(ctx context.Context, filter domain.ServiceFilter) ([]models.CategoryResponse, error) {
	if err := checkID("salonId", filter.SalonID); err != nil {
		return nil, err
	}
	if err := checkID("categoryId", filter.CategoryID); err != nil {
		return nil, err
	}

	services, err := s.repo.ListServices(ctx, filter)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}
	return models.GroupByCategory(services), nil
}

// ListMasters активные мастера с их активными салонами и услугами
func (s *Service) ListMasters(ctx context.Context, filter domain.MasterFilter) ([]models.MasterResponse, error) {
	if err := checkID("salonId", filter.SalonID); err != nil {
		return nil, err
	}
	if err := checkID("serviceId", filter.ServiceID); err != nil {
		return nil, err
	}

	masters, err := s.repo.ListMasters(ctx, filter)
	if err != nil {
		s.logger.Error("ListMasters: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListMasters - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainMasters(masters), nil
}

func checkID(field string, id *int64) error {
	if id != nil && *id <= 0 {
		return domain.NewFieldError(field, fmt.Errorf("%w: %s must be positive", ErrInvalidInput, field))
	}
	return nil
}
