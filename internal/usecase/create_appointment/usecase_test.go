package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/client"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SalonBookingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/schedule"
	"github.com/m04kA/SMC-SalonBookingService/pkg/ptr"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

var (
	moscow = time.FixedZone("MSK", 3*60*60)
	now    = time.Date(2024, 6, 1, 12, 0, 0, 0, moscow)
	day    = time.Date(2024, 6, 10, 0, 0, 0, 0, moscow)
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type recordingCache struct {
	mu    sync.Mutex
	dates []time.Time
}

func (c *recordingCache) InvalidateDate(_ context.Context, date time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dates = append(c.dates, date)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []notifier.AppointmentCreatedEvent
	err    error
}

func (p *recordingPublisher) AppointmentCreated(_ context.Context, e notifier.AppointmentCreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

type recordingMetrics struct {
	mu        sync.Mutex
	created   int
	withPromo int
	conflicts map[string]int
}

func (m *recordingMetrics) AppointmentCreated(withPromo bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created++
	if withPromo {
		m.withPromo++
	}
}

func (m *recordingMetrics) BookingConflict(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conflicts == nil {
		m.conflicts = map[string]int{}
	}
	m.conflicts[reason]++
}

// failingPromos отдаёт ошибку хранилища при чтении промокода
type failingPromos struct {
	PromoCodeRepository
}

func (failingPromos) GetByCode(context.Context, string) (*domain.PromoCode, error) {
	return nil, errors.New("connection reset")
}

// contendedPromos имитирует откат сериализуемой транзакции на строке промокода
type contendedPromos struct {
	PromoCodeRepository
}

func (contendedPromos) IncrementUsage(context.Context, int64) error {
	return &pq.Error{Code: "40001", Message: "could not serialize access due to concurrent update"}
}

// racedAppointments отдаёт свободный слот внутри транзакции, затем его занимает конкурент
type racedAppointments struct {
	AppointmentRepository
	mu     sync.Mutex
	checks int
}

func (r *racedAppointments) IsSlotOccupied(context.Context, int64, time.Time, types.TimeString) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks++
	return r.checks > 1, nil
}

func (r *racedAppointments) Create(context.Context, *domain.Appointment) (*domain.Appointment, error) {
	return nil, &pq.Error{Code: "40001", Message: "could not serialize access due to read/write dependencies"}
}

type fixture struct {
	store     *memory.Store
	uc        *UseCase
	cache     *recordingCache
	publisher *recordingPublisher
	metrics   *recordingMetrics

	salonID, otherSalonID   int64
	serviceID, cheapService int64
	masterID, otherMasterID int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	f := &fixture{
		store:     store,
		cache:     &recordingCache{},
		publisher: &recordingPublisher{},
		metrics:   &recordingMetrics{},
	}

	f.salonID = store.AddSalon(domain.Salon{Name: "Центр", IsActive: true})
	f.otherSalonID = store.AddSalon(domain.Salon{Name: "Север", IsActive: true})
	category := store.AddCategory(domain.ServiceCategory{Name: "Стрижки"})
	f.serviceID = store.AddService(domain.Service{CategoryID: category, Name: "Стрижка", Price: decimal.NewFromInt(2000), IsActive: true})
	f.cheapService = store.AddService(domain.Service{CategoryID: category, Name: "Чёлка", Price: decimal.NewFromInt(300), IsActive: true})
	f.masterID = store.AddMaster(domain.Master{
		Name: "Ольга", IsActive: true,
		ServiceIDs: []int64{f.serviceID, f.cheapService},
		SalonIDs:   []int64{f.salonID},
	})
	f.otherMasterID = store.AddMaster(domain.Master{
		Name: "Ирина", IsActive: true,
		ServiceIDs: []int64{f.serviceID},
		SalonIDs:   []int64{f.otherSalonID},
	})

	promos := []domain.PromoCode{
		{Code: "SUMMER20", Kind: domain.DiscountPercent, Value: decimal.NewFromInt(20),
			ValidFrom: now.AddDate(0, -1, 0), ValidTo: now.AddDate(0, 1, 0), IsActive: true, MaxUses: 100},
		{Code: "BIG", Kind: domain.DiscountFixed, Value: decimal.NewFromInt(500),
			ValidFrom: now.AddDate(0, -1, 0), ValidTo: now.AddDate(0, 1, 0), IsActive: true, MaxUses: 100},
		{Code: "USED", Kind: domain.DiscountFixed, Value: decimal.NewFromInt(100),
			ValidFrom: now.AddDate(0, -1, 0), ValidTo: now.AddDate(0, 1, 0), IsActive: true, MaxUses: 1, UsedCount: 1},
		{Code: "ONCE", Kind: domain.DiscountPercent, Value: decimal.NewFromInt(10),
			ValidFrom: now.AddDate(0, -1, 0), ValidTo: now.AddDate(0, 1, 0), IsActive: true, MaxUses: 1},
		{Code: "OLD", Kind: domain.DiscountFixed, Value: decimal.NewFromInt(100),
			ValidFrom: now.AddDate(0, -2, 0), ValidTo: now.AddDate(0, -1, 0), IsActive: true, MaxUses: 10},
		{Code: "OFF", Kind: domain.DiscountFixed, Value: decimal.NewFromInt(100),
			ValidFrom: now.AddDate(0, -1, 0), ValidTo: now.AddDate(0, 1, 0), IsActive: false, MaxUses: 10},
	}
	for _, p := range promos {
		_, err := store.AddPromoCode(p)
		require.NoError(t, err)
	}

	f.uc = f.newUseCase(store.PromoCodes())
	return f
}

func (f *fixture) newUseCase(promos PromoCodeRepository) *UseCase {
	return f.newUseCaseWith(promos, f.store.Appointments())
}

func (f *fixture) newUseCaseWith(promos PromoCodeRepository, appointments AppointmentRepository) *UseCase {
	return NewUseCase(Deps{
		Catalog:      f.store.Catalog(),
		Clients:      f.store.Clients(),
		PromoCodes:   promos,
		Appointments: appointments,
		TxManager:    memory.NewTxManager(f.store),
		Cache:        f.cache,
		Publisher:    f.publisher,
		Metrics:      f.metrics,
		Policy:       schedule.NewPolicy(moscow, 60, 60),
		Logger:       nopLogger{},
	}).WithTimeProvider(fixedTime{now: now})
}

func (f *fixture) request() *Request {
	return &Request{
		SalonID:     f.salonID,
		ServiceID:   f.serviceID,
		MasterID:    f.masterID,
		Date:        day,
		Time:        "14:00",
		ClientName:  "Анна",
		ClientPhone: "8 (999) 123-45-67",
	}
}

func (f *fixture) usedCount(t *testing.T, code string) int {
	t.Helper()
	p, err := f.store.PromoCodes().GetByCode(context.Background(), code)
	require.NoError(t, err)
	return p.UsedCount
}

func (f *fixture) appointmentsOn(t *testing.T, masterID int64) []*domain.Appointment {
	t.Helper()
	list, err := f.store.Appointments().ListByMasterAndDate(context.Background(), masterID, day)
	require.NoError(t, err)
	return list
}

func TestExecute_WithPercentPromo(t *testing.T) {
	f := newFixture(t)
	req := f.request()
	req.PromoCode = " SUMMER20 "

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "2000.00", resp.OriginalPrice.StringFixed(2))
	assert.Equal(t, "400.00", resp.DiscountAmount.StringFixed(2))
	assert.Equal(t, "1600.00", resp.FinalPrice.StringFixed(2))
	assert.True(t, resp.PromoApplied)
	assert.Equal(t, domain.StatusPending, resp.Status)
	assert.Equal(t, fmt.Sprintf("#%06d", resp.AppointmentID), resp.Number)
	assert.Equal(t, 1, f.usedCount(t, "SUMMER20"))

	stored, err := f.store.Appointments().GetByID(context.Background(), resp.AppointmentID)
	require.NoError(t, err)
	require.NotNil(t, stored.PromoCodeID)
	assert.True(t, stored.OriginalPrice.Equal(stored.DiscountAmount.Add(stored.FinalPrice)))

	saved, err := f.store.Clients().GetByPhone(context.Background(), "+79991234567")
	require.NoError(t, err)
	assert.Equal(t, resp.ClientID, saved.ID)

	require.Len(t, f.cache.dates, 1)
	assert.True(t, types.SameDay(day, f.cache.dates[0]))
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, "1600.00", f.publisher.events[0].FinalPrice)
	assert.Equal(t, 1, f.metrics.withPromo)
}

func TestExecute_WithoutPromo(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	assert.False(t, resp.PromoApplied)
	assert.True(t, resp.DiscountAmount.IsZero())
	assert.True(t, resp.FinalPrice.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, 1, f.metrics.created)
	assert.Equal(t, 0, f.metrics.withPromo)
}

func TestExecute_FixedDiscountClampedToPrice(t *testing.T) {
	f := newFixture(t)
	req := f.request()
	req.ServiceID = f.cheapService
	req.PromoCode = "BIG"

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "300.00", resp.DiscountAmount.StringFixed(2))
	assert.True(t, resp.FinalPrice.IsZero())
	assert.Equal(t, 1, f.usedCount(t, "BIG"))
}

func TestExecute_SlotAlreadyTaken(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	req := f.request()
	req.ClientPhone = "+79990000000"
	req.PromoCode = "SUMMER20"
	_, err = f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Equal(t, "time", domain.FieldOf(err))
	assert.Len(t, f.appointmentsOn(t, f.masterID), 1)
	assert.Equal(t, 0, f.usedCount(t, "SUMMER20"))
	assert.Equal(t, 1, f.metrics.conflicts[conflictSlotTaken])

	// клиент второго запроса не создан
	_, err = f.store.Clients().GetByPhone(context.Background(), "+79990000000")
	assert.ErrorIs(t, err, client.ErrClientNotFound)
}

func TestExecute_CancelledAppointmentFreesSlot(t *testing.T) {
	f := newFixture(t)
	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)
	require.NoError(t, f.store.Appointments().UpdateStatus(context.Background(), resp.AppointmentID, domain.StatusCancelled))

	_, err = f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)
}

func TestExecute_ConcurrentCreatesForOneSlot(t *testing.T) {
	f := newFixture(t)

	const workers = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := f.request()
			req.ClientPhone = fmt.Sprintf("+7999000%04d", i)
			req.PromoCode = "SUMMER20"
			_, err := f.uc.Execute(context.Background(), req)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, domain.ErrConflict):
				conflicts++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)
	assert.Len(t, f.appointmentsOn(t, f.masterID), 1)
	assert.Equal(t, 1, f.usedCount(t, "SUMMER20"))
}

func TestExecute_PromoErrors(t *testing.T) {
	cases := []struct {
		code string
		kind error
		want error
	}{
		{"NOPE", domain.ErrNotFound, ErrPromoNotFound},
		{"OFF", domain.ErrNotFound, ErrPromoNotFound},
		{"OLD", domain.ErrValidation, ErrPromoNotApplicable},
		{"USED", domain.ErrConflict, ErrPromoExhausted},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			f := newFixture(t)
			req := f.request()
			req.PromoCode = tc.code

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tc.kind)
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, "promoCode", domain.FieldOf(err))
			assert.Empty(t, f.appointmentsOn(t, f.masterID))
			assert.Empty(t, f.publisher.events)
			if tc.code == "USED" {
				assert.Equal(t, 1, f.usedCount(t, "USED"))
			}
		})
	}
}

func TestExecute_ConcurrentCreatesShareLastPromoUse(t *testing.T) {
	f := newFixture(t)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		applied   int
		exhausted int
		other     []error
	)
	slots := make([]types.TimeString, workers)
	for i := range slots {
		slot, err := types.FromMinutes(domain.WorkdayStartMinutes + domain.SlotStepMinutes*i)
		require.NoError(t, err)
		slots[i] = slot
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := f.request()
			req.Time = slots[i]
			req.ClientPhone = fmt.Sprintf("+7999111%04d", i)
			req.PromoCode = "ONCE"
			resp, err := f.uc.Execute(context.Background(), req)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil && resp.PromoApplied:
				applied++
			case errors.Is(err, ErrPromoExhausted):
				exhausted++
			default:
				other = append(other, err)
			}
		}(i)
	}
	wg.Wait()

	assert.Empty(t, other)
	assert.Equal(t, 1, applied)
	assert.Equal(t, workers-1, exhausted)
	assert.Equal(t, 1, f.usedCount(t, "ONCE"))
	assert.Len(t, f.appointmentsOn(t, f.masterID), 1)
	assert.Equal(t, workers-1, f.metrics.conflicts[conflictPromoExhausted])
}

func TestExecute_SerializationFailureOnPromoIsRetryable(t *testing.T) {
	f := newFixture(t)
	uc := f.newUseCase(contendedPromos{PromoCodeRepository: f.store.PromoCodes()})
	req := f.request()
	req.PromoCode = "SUMMER20"

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.ErrorIs(t, err, ErrConcurrentUpdate)
	assert.NotErrorIs(t, err, ErrSlotTaken)
	assert.NotErrorIs(t, err, domain.ErrInternal)
	assert.Empty(t, domain.FieldOf(err))
	assert.Equal(t, 1, f.metrics.conflicts[conflictConcurrent])
	assert.Zero(t, f.metrics.conflicts[conflictSlotTaken])
	assert.Empty(t, f.appointmentsOn(t, f.masterID))
	assert.Equal(t, 0, f.usedCount(t, "SUMMER20"))
	assert.Empty(t, f.cache.dates)

	_, err = f.store.Clients().GetByPhone(context.Background(), "+79991234567")
	assert.ErrorIs(t, err, client.ErrClientNotFound)
}

func TestExecute_SerializationFailureOnTakenSlot(t *testing.T) {
	f := newFixture(t)
	appointments := &racedAppointments{AppointmentRepository: f.store.Appointments()}
	uc := f.newUseCaseWith(f.store.PromoCodes(), appointments)

	_, err := uc.Execute(context.Background(), f.request())

	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.NotErrorIs(t, err, ErrConcurrentUpdate)
	assert.NotErrorIs(t, err, domain.ErrInternal)
	assert.Equal(t, "time", domain.FieldOf(err))
	assert.Equal(t, 2, appointments.checks)
	assert.Equal(t, 1, f.metrics.conflicts[conflictSlotTaken])
}

func TestExecute_PromoLookupFailureAborts(t *testing.T) {
	f := newFixture(t)
	uc := f.newUseCase(failingPromos{PromoCodeRepository: f.store.PromoCodes()})
	req := f.request()
	req.PromoCode = "SUMMER20"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInternal)
	assert.Empty(t, f.appointmentsOn(t, f.masterID))
	assert.Empty(t, f.cache.dates)
}

func TestExecute_UpsertsClientByPhone(t *testing.T) {
	f := newFixture(t)

	first := f.request()
	first.ClientName = "Анна"
	r1, err := f.uc.Execute(context.Background(), first)
	require.NoError(t, err)

	second := f.request()
	second.Time = "15:00"
	second.ClientName = "Анна Петровна"
	second.ClientPhone = "+7 999 123 45 67"
	second.ClientEmail = ptr.Ptr("anna@example.com")
	r2, err := f.uc.Execute(context.Background(), second)
	require.NoError(t, err)

	assert.Equal(t, r1.ClientID, r2.ClientID)
	saved, err := f.store.Clients().GetByPhone(context.Background(), "+79991234567")
	require.NoError(t, err)
	assert.Equal(t, "Анна Петровна", saved.Name)
	require.NotNil(t, saved.Email)
	assert.Equal(t, "anna@example.com", *saved.Email)
}

func TestExecute_PublishFailureDoesNotFailBooking(t *testing.T) {
	f := newFixture(t)
	f.publisher.err = errors.New("broker down")

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)
	assert.Positive(t, resp.AppointmentID)
}

func TestExecute_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(f *fixture, r *Request)
		field  string
	}{
		{"no name", func(_ *fixture, r *Request) { r.ClientName = "  " }, "clientName"},
		{"bad phone", func(_ *fixture, r *Request) { r.ClientPhone = "12-34" }, "clientPhone"},
		{"bad email", func(_ *fixture, r *Request) { r.ClientEmail = ptr.Ptr("anna@") }, "clientEmail"},
		{"zero salon", func(_ *fixture, r *Request) { r.SalonID = 0 }, "salonId"},
		{"off grid", func(_ *fixture, r *Request) { r.Time = "14:15" }, "time"},
		{"after hours", func(_ *fixture, r *Request) { r.Time = "19:00" }, "time"},
		{"past date", func(_ *fixture, r *Request) { r.Date = now.AddDate(0, 0, -1) }, "date"},
		{"too far", func(_ *fixture, r *Request) { r.Date = now.AddDate(0, 0, 90) }, "date"},
		{"lead time", func(_ *fixture, r *Request) { r.Date = now; r.Time = "12:30" }, "time"},
		{"long notes", func(_ *fixture, r *Request) { r.Notes = strings.Repeat("a", domain.MaxNotesLength+1) }, "notes"},
		{"master elsewhere", func(f *fixture, r *Request) { r.MasterID = f.otherMasterID }, "masterId"},
		{"service not offered", func(f *fixture, r *Request) {
			r.MasterID = f.otherMasterID
			r.SalonID = f.otherSalonID
			r.ServiceID = f.cheapService
		}, "masterId"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			req := f.request()
			tc.mutate(f, req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Equal(t, tc.field, domain.FieldOf(err))
			assert.Empty(t, f.appointmentsOn(t, f.masterID))
		})
	}
}

func TestExecute_NotFound(t *testing.T) {
	f := newFixture(t)
	inactive := f.store.AddSalon(domain.Salon{Name: "Закрыт", IsActive: false})

	cases := map[string]func(r *Request){
		"salonId":   func(r *Request) { r.SalonID = inactive },
		"serviceId": func(r *Request) { r.ServiceID = 9999 },
		"masterId":  func(r *Request) { r.MasterID = 9999 },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			req := f.request()
			mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrNotFound)
			assert.Equal(t, field, domain.FieldOf(err))
		})
	}
}
