package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	createAppointmentHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_appointment"
	getAvailableDatesHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_available_dates"
	getFreeSlotsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_free_slots"
	listMasterAppointmentsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/list_master_appointments"
	listMastersHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/list_masters"
	listSalonsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/list_salons"
	listServicesHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/list_services"
	listStatusesHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/list_statuses"
	requestConsultationHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/request_consultation"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/update_appointment_status"
	validatePromoHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/validate_promo"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/config"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/cache/slots"
	appointmentRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/catalog"
	clientRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/client"
	consultationRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/consultation"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/memory"
	promoCodeRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/promocode"
	"github.com/m04kA/SMC-SalonBookingService/internal/integrations/notifier"
	appointmentsService "github.com/m04kA/SMC-SalonBookingService/internal/service/appointments"
	catalogService "github.com/m04kA/SMC-SalonBookingService/internal/service/catalog"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/schedule"
	createAppointmentUC "github.com/m04kA/SMC-SalonBookingService/internal/usecase/create_appointment"
	getAvailableDatesUC "github.com/m04kA/SMC-SalonBookingService/internal/usecase/get_available_dates"
	getFreeSlotsUC "github.com/m04kA/SMC-SalonBookingService/internal/usecase/get_free_slots"
	requestConsultationUC "github.com/m04kA/SMC-SalonBookingService/internal/usecase/request_consultation"
	validatePromoUC "github.com/m04kA/SMC-SalonBookingService/internal/usecase/validate_promo"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
	"github.com/m04kA/SMC-SalonBookingService/pkg/metrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/txmanager"
)

const maxRequestBodyBytes = 64 << 10

// Хранилище собирается либо на postgres, либо в памяти; интерфейсы объединяют контракты потребителей

type catalogRepository interface {
	createAppointmentUC.CatalogRepository
	catalogService.CatalogRepository
}

type clientRepository interface {
	createAppointmentUC.ClientRepository
}

type promoCodeRepository interface {
	createAppointmentUC.PromoCodeRepository
}

type appointmentRepository interface {
	createAppointmentUC.AppointmentRepository
	getFreeSlotsUC.AppointmentRepository
	appointmentsService.AppointmentRepository
}

type consultationRepository interface {
	requestConsultationUC.ConsultationRepository
}

type transactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type storage struct {
	catalog       catalogRepository
	clients       clientRepository
	promoCodes    promoCodeRepository
	appointments  appointmentRepository
	consultations consultationRepository
	txManager     transactionManager
	close         func() error
}

type eventPublisher interface {
	createAppointmentUC.Publisher
	appointmentsService.Publisher
	Close() error
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-SalonBookingService...")
	log.Info("Configuration loaded from config.toml (storage=%s)", cfg.Storage.Driver)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище
	var store *storage
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store, err = newMemoryStorage()
	default:
		store, err = newPostgresStorage(cfg, metricsCollector, stopMetricsCh, log)
	}
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	defer store.close()

	// Часовой пояс и правила записи
	loc, err := cfg.Schedule.Location()
	if err != nil {
		log.Fatal("Invalid schedule timezone %q: %v", cfg.Schedule.Timezone, err)
	}
	policy := schedule.NewPolicy(loc, cfg.Schedule.LeadTimeMinutes, cfg.Schedule.HorizonDays)
	log.Info("Schedule: timezone=%s, lead_time=%dm, horizon=%dd",
		cfg.Schedule.Timezone, cfg.Schedule.LeadTimeMinutes, cfg.Schedule.HorizonDays)

	// Кэш занятых слотов (если включен)
	var slotsCache *slots.Cache
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			// Кэш необязателен: без него слоты читаются из БД
			log.Warn("Redis unavailable at %s, slots cache disabled: %v", cfg.Redis.Addr, err)
		} else {
			slotsCache = slots.New(rdb, time.Duration(cfg.Redis.TTLSeconds)*time.Second, log)
			log.Info("Slots cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
		}
		cancel()
	}

	// Публикация событий (если включена)
	var publisher eventPublisher = notifier.Noop{}
	if cfg.RabbitMQ.Enabled {
		p, err := notifier.Dial(cfg.RabbitMQ.URL)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		publisher = p
		log.Info("Event publishing enabled (rabbitmq)")
	}
	defer publisher.Close()

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(store.catalog, log)
	appointmentsSvc := appointmentsService.NewService(
		store.appointments,
		store.txManager,
		slotsCache,
		publisher,
		log,
	)

	// Инициализируем use cases
	getFreeSlotsUseCase := getFreeSlotsUC.NewUseCase(
		store.appointments,
		slotsCache,
		policy,
		metricsCollector,
		log,
	)
	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(
		getFreeSlotsUseCase,
		policy,
		cfg.Schedule.AvailableDatesDays,
		log,
	)
	validatePromoUseCase := validatePromoUC.NewUseCase(store.promoCodes, store.catalog, log)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(createAppointmentUC.Deps{
		Catalog:      store.catalog,
		Clients:      store.clients,
		PromoCodes:   store.promoCodes,
		Appointments: store.appointments,
		TxManager:    store.txManager,
		Cache:        slotsCache,
		Publisher:    publisher,
		Metrics:      metricsCollector,
		Policy:       policy,
		Logger:       log,
	})
	requestConsultationUseCase := requestConsultationUC.NewUseCase(
		store.clients,
		store.consultations,
		store.txManager,
		log,
	)

	// Инициализируем handlers
	listSalons := listSalonsHandler.NewHandler(catalogSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	listMasters := listMastersHandler.NewHandler(catalogSvc, log)
	getFreeSlots := getFreeSlotsHandler.NewHandler(getFreeSlotsUseCase, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, log)
	validatePromo := validatePromoHandler.NewHandler(validatePromoUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	listMasterAppointments := listMasterAppointmentsHandler.NewHandler(appointmentsSvc, log)
	listStatuses := listStatusesHandler.NewHandler(appointmentsSvc)
	requestConsultation := requestConsultationHandler.NewHandler(requestConsultationUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover(log), middleware.AccessLog(log), middleware.BodyLimit(maxRequestBodyBytes))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Справочники ---
	api.HandleFunc("/salons", listSalons.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/masters", listMasters.Handle).Methods(http.MethodGet)
	api.HandleFunc("/statuses", listStatuses.Handle).Methods(http.MethodGet)

	// --- Свободное время ---
	api.HandleFunc("/slots", getFreeSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/available-dates", getAvailableDates.Handle).Methods(http.MethodGet)

	// --- Промокоды ---
	api.HandleFunc("/promo-codes/{code}/validate", validatePromo.Handle).Methods(http.MethodGet)

	// --- Записи ---
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/masters/{masterId}/appointments", listMasterAppointments.Handle).Methods(http.MethodGet)

	// --- Заявки на консультацию ---
	api.HandleFunc("/consultations", requestConsultation.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// newPostgresStorage подключается к postgres; с метриками запросы идут через обёртку dbmetrics
func newPostgresStorage(cfg *config.Config, recorder *metrics.Metrics, stopCh <-chan struct{}, log *logger.Logger) (*storage, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.Wrap(db)
	if recorder != nil {
		wrappedDB = dbmetrics.WrapWithDefault(db, recorder, cfg.Metrics.ServiceName, stopCh)
		log.Info("Database metrics collection started")
	}

	return &storage{
		catalog:       catalogRepo.NewRepository(wrappedDB),
		clients:       clientRepo.NewRepository(wrappedDB),
		promoCodes:    promoCodeRepo.NewRepository(wrappedDB),
		appointments:  appointmentRepo.NewRepository(wrappedDB),
		consultations: consultationRepo.NewRepository(wrappedDB),
		txManager:     txmanager.NewTransactionManager(wrappedDB),
		close:         db.Close,
	}, nil
}

// newMemoryStorage хранилище в памяти с демонстрационными данными
func newMemoryStorage() (*storage, error) {
	store := memory.New()
	if err := memory.SeedDemo(store, time.Now()); err != nil {
		return nil, fmt.Errorf("seed demo data: %w", err)
	}

	return &storage{
		catalog:       store.Catalog(),
		clients:       store.Clients(),
		promoCodes:    store.PromoCodes(),
		appointments:  store.Appointments(),
		consultations: store.Consultations(),
		txManager:     memory.NewTxManager(store),
		close:         func() error { return nil },
	}, nil
}
