package catalog

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

var (
	salonColumns   = []string{"id", "name", "address", "phone", "working_hours", "is_active"}
	serviceColumns = []string{"s.id", "s.category_id", "c.name", "s.name", "s.description", "s.price", "s.duration_minutes", "s.is_active", "s.sort_order"}
	masterColumns  = []string{"id", "name", "specialty", "experience", "rating", "is_active", "sort_order"}
)

// Repository справочники салонов, услуг и мастеров (только чтение)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочников
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetSalon получает салон по ID (в том числе неактивный)
func (r *Repository) GetSalon(ctx context.Context, id int64) (*domain.Salon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(salonColumns...).
		From("salons").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSalon - build select query: %v", ErrBuildQuery, err)
	}

	salon, err := scanSalon(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSalonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSalon - scan salon: %w", ErrScanRow, err)
	}

	return salon, nil
}

// ListSalons возвращает активные салоны по имени
func (r *Repository) ListSalons(ctx context.Context) ([]*domain.Salon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(salonColumns...).
		From("salons").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListSalons - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListSalons - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	salons := make([]*domain.Salon, 0)
	for rows.Next() {
		salon, err := scanSalon(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListSalons - scan row: %w", ErrScanRow, err)
		}
		salons = append(salons, salon)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListSalons - rows error: %w", ErrScanRow, err)
	}

	return salons, nil
}

// GetService получает услугу по ID вместе с названием категории
func (r *Repository) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := servicesQuery().
		Where(squirrel.Eq{"s.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	service, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %w", ErrScanRow, err)
	}

	return service, nil
}

// ListServices возвращает активные услуги в порядке категорий, затем услуг
// С фильтром по салону остаются только услуги, которые там оказывает хотя бы один активный мастер
func (r *Repository) ListServices(ctx context.Context, filter domain.ServiceFilter) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := servicesQuery().
		Where(squirrel.Eq{"s.is_active": true})
	if filter.CategoryID != nil {
		builder = builder.Where(squirrel.Eq{"s.category_id": *filter.CategoryID})
	}
	if filter.SalonID != nil {
		builder = builder.Where(squirrel.Expr(
			"EXISTS (SELECT 1 FROM master_services ms "+
				"JOIN master_salons ml ON ml.master_id = ms.master_id "+
				"JOIN masters m ON m.id = ms.master_id "+
				"WHERE ms.service_id = s.id AND m.is_active AND ml.salon_id = ?)",
			*filter.SalonID,
		))
	}

	query, args, err := builder.
		OrderBy("c.sort_order ASC", "c.id ASC", "s.sort_order ASC", "s.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListServices - scan row: %w", ErrScanRow, err)
		}
		services = append(services, service)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListServices - rows error: %w", ErrScanRow, err)
	}

	return services, nil
}

// GetMaster получает мастера по ID вместе с его услугами и салонами
func (r *Repository) GetMaster(ctx context.Context, id int64) (*domain.Master, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(masterColumns...).
		From("masters").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetMaster - build select query: %v", ErrBuildQuery, err)
	}

	master, err := scanMaster(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMasterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetMaster - scan master: %w", ErrScanRow, err)
	}

	if err := r.attachLinks(ctx, []*domain.Master{master}); err != nil {
		return nil, err
	}

	return master, nil
}

// ListMasters возвращает активных мастеров с учётом фильтров
// Связи с услугами и салонами содержат только активные записи
func (r *Repository) ListMasters(ctx context.Context, filter domain.MasterFilter) ([]*domain.Master, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(masterColumns...).
		From("masters").
		Where(squirrel.Eq{"is_active": true})
	if filter.SalonID != nil {
		builder = builder.Where(squirrel.Expr(
			"EXISTS (SELECT 1 FROM master_salons ml WHERE ml.master_id = masters.id AND ml.salon_id = ?)",
			*filter.SalonID,
		))
	}
	if filter.ServiceID != nil {
		builder = builder.Where(squirrel.Expr(
			"EXISTS (SELECT 1 FROM master_services ms WHERE ms.master_id = masters.id AND ms.service_id = ?)",
			*filter.ServiceID,
		))
	}

	query, args, err := builder.OrderBy("sort_order ASC", "name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListMasters - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListMasters - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	masters := make([]*domain.Master, 0)
	for rows.Next() {
		master, err := scanMaster(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListMasters - scan row: %w", ErrScanRow, err)
		}
		masters = append(masters, master)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListMasters - rows error: %w", ErrScanRow, err)
	}

	if len(masters) == 0 {
		return masters, nil
	}
	if err := r.attachLinks(ctx, masters); err != nil {
		return nil, err
	}

	return masters, nil
}

// attachLinks заполняет ServiceIDs и SalonIDs мастеров двумя запросами
func (r *Repository) attachLinks(ctx context.Context, masters []*domain.Master) error {
	byID := make(map[int64]*domain.Master, len(masters))
	ids := make([]int64, 0, len(masters))
	for _, m := range masters {
		byID[m.ID] = m
		ids = append(ids, m.ID)
		m.ServiceIDs = make([]int64, 0)
		m.SalonIDs = make([]int64, 0)
	}

	services := psqlbuilder.Select("ms.master_id", "ms.service_id").
		From("master_services ms").
		Join("services s ON s.id = ms.service_id").
		Where(squirrel.Eq{"ms.master_id": ids, "s.is_active": true}).
		OrderBy("ms.master_id ASC", "ms.service_id ASC")
	if err := r.collectLinks(ctx, "services", services, func(m *domain.Master, id int64) {
		m.ServiceIDs = append(m.ServiceIDs, id)
	}, byID); err != nil {
		return err
	}

	salons := psqlbuilder.Select("ml.master_id", "ml.salon_id").
		From("master_salons ml").
		Join("salons sa ON sa.id = ml.salon_id").
		Where(squirrel.Eq{"ml.master_id": ids, "sa.is_active": true}).
		OrderBy("ml.master_id ASC", "ml.salon_id ASC")
	return r.collectLinks(ctx, "salons", salons, func(m *domain.Master, id int64) {
		m.SalonIDs = append(m.SalonIDs, id)
	}, byID)
}

func (r *Repository) collectLinks(
	ctx context.Context,
	name string,
	builder squirrel.SelectBuilder,
	add func(m *domain.Master, id int64),
	byID map[int64]*domain.Master,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: attachLinks(%s) - build select query: %v", ErrBuildQuery, name, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachLinks(%s) - execute query: %w", ErrExecQuery, name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var masterID, linkedID int64
		if err := rows.Scan(&masterID, &linkedID); err != nil {
			return fmt.Errorf("%w: attachLinks(%s) - scan row: %w", ErrScanRow, name, err)
		}
		if m, ok := byID[masterID]; ok {
			add(m, linkedID)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachLinks(%s) - rows error: %w", ErrScanRow, name, err)
	}

	return nil
}

func servicesQuery() squirrel.SelectBuilder {
	return psqlbuilder.Select(serviceColumns...).
		From("services s").
		Join("service_categories c ON c.id = s.category_id")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSalon(row rowScanner) (*domain.Salon, error) {
	var s domain.Salon
	if err := row.Scan(&s.ID, &s.Name, &s.Address, &s.Phone, &s.WorkingHours, &s.IsActive); err != nil {
		return nil, err
	}
	return &s, nil
}

func scanService(row rowScanner) (*domain.Service, error) {
	var s domain.Service
	err := row.Scan(
		&s.ID,
		&s.CategoryID,
		&s.CategoryName,
		&s.Name,
		&s.Description,
		&s.Price,
		&s.DurationMinutes,
		&s.IsActive,
		&s.Order,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scanMaster(row rowScanner) (*domain.Master, error) {
	var m domain.Master
	if err := row.Scan(&m.ID, &m.Name, &m.Specialty, &m.Experience, &m.Rating, &m.IsActive, &m.Order); err != nil {
		return nil, err
	}
	return &m, nil
}
