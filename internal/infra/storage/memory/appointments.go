package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// AppointmentRepository записи клиентов в памяти
type AppointmentRepository struct {
	store *Store
}

// Appointments возвращает репозиторий записей
func (s *Store) Appointments() *AppointmentRepository {
	return &AppointmentRepository{store: s}
}

func (d *dataset) slotTaken(masterID int64, date time.Time, t types.TimeString, exceptID int64) bool {
	for id, a := range d.appointments {
		if id == exceptID || a.MasterID != masterID || !a.Status.IsSlotOccupying() {
			continue
		}
		if a.Time == t && types.SameDay(a.Date, date) {
			return true
		}
	}
	return false
}

// Create сохраняет запись; занятый слот мастера даёт appointment.ErrSlotTaken
func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	var err error
	r.store.write(ctx, func(d *dataset) {
		if a.Status.IsSlotOccupying() && d.slotTaken(a.MasterID, a.Date, a.Time, 0) {
			err = fmt.Errorf("%w: Create - master %d at %s %s", appointment.ErrSlotTaken, a.MasterID, types.FormatDate(a.Date), a.Time)
			return
		}
		if a.DiscountAmount.IsNegative() || a.FinalPrice.IsNegative() ||
			!a.FinalPrice.Equal(a.OriginalPrice.Sub(a.DiscountAmount)) {
			err = fmt.Errorf("%w: Create - price breakdown mismatch", appointment.ErrInvalidPrice)
			return
		}

		a.ID = d.nextID()
		a.Date = types.DateOnly(a.Date)
		a.CreatedAt = time.Now()
		d.appointments[a.ID] = copyAppointment(*a)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetByID получает запись по ID
func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	var (
		found domain.Appointment
		ok    bool
	)
	r.store.read(ctx, func(d *dataset) {
		found, ok = d.appointments[id]
		found = copyAppointment(found)
	})
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	return &found, nil
}

// OccupiedTimes занятое время на дату с учётом фильтров, по возрастанию
func (r *AppointmentRepository) OccupiedTimes(ctx context.Context, filter domain.OccupiedFilter) ([]types.TimeString, error) {
	seen := make(map[types.TimeString]struct{})
	r.store.read(ctx, func(d *dataset) {
		for _, a := range d.appointments {
			if !a.Status.IsSlotOccupying() || !types.SameDay(a.Date, filter.Date) {
				continue
			}
			if filter.MasterID != nil && a.MasterID != *filter.MasterID {
				continue
			}
			if filter.SalonID != nil && a.SalonID != *filter.SalonID {
				continue
			}
			if filter.ServiceID != nil && a.ServiceID != *filter.ServiceID {
				continue
			}
			seen[a.Time] = struct{}{}
		}
	})

	times := make([]types.TimeString, 0, len(seen))
	for t := range seen {
		times = append(times, t)
	}
	sort.Slice(times, func(i, j int) bool { return times[i].IsBefore(times[j]) })

	return times, nil
}

// IsSlotOccupied проверяет, занят ли слот мастера
func (r *AppointmentRepository) IsSlotOccupied(ctx context.Context, masterID int64, date time.Time, t types.TimeString) (bool, error) {
	var taken bool
	r.store.read(ctx, func(d *dataset) {
		taken = d.slotTaken(masterID, date, t, 0)
	})
	return taken, nil
}

// ListByMasterAndDate все записи мастера на дату, по времени
func (r *AppointmentRepository) ListByMasterAndDate(ctx context.Context, masterID int64, date time.Time) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	r.store.read(ctx, func(d *dataset) {
		for _, a := range d.appointments {
			if a.MasterID == masterID && types.SameDay(a.Date, date) {
				cp := copyAppointment(a)
				result = append(result, &cp)
			}
		}
	})

	sort.Slice(result, func(i, j int) bool {
		if result[i].Time != result[j].Time {
			return result[i].Time.IsBefore(result[j].Time)
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// UpdateStatus меняет статус записи
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	var err error
	r.store.write(ctx, func(d *dataset) {
		a, ok := d.appointments[id]
		if !ok {
			err = appointment.ErrAppointmentNotFound
			return
		}
		if status.IsSlotOccupying() && !a.Status.IsSlotOccupying() && d.slotTaken(a.MasterID, a.Date, a.Time, id) {
			err = fmt.Errorf("%w: UpdateStatus - appointment %d", appointment.ErrSlotTaken, id)
			return
		}
		a.Status = status
		d.appointments[id] = a
	})
	return err
}
