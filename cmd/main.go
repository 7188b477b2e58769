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

	cancelBookingHandler "github.com/remedyhq/RMT-SchedulingService/internal/api/handlers/cancel_booking"
	createRuleHandler "github.com/remedyhq/RMT-SchedulingService/internal/api/handlers/create_availability_rule"
	createBookingHandler "github.com/remedyhq/RMT-SchedulingService/internal/api/handlers/create_booking"
	deleteRuleHandler "github.com/remedyhq/RMT-SchedulingService/internal/api/handlers/delete_availability_rule"
	getAvailableSlotsHandler "github.com/remedyhq/RMT-SchedulingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/remedyhq/RMT-SchedulingService/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/remedyhq/RMT-SchedulingService/internal/api/handlers/get_client_bookings"
	getScheduleHandler "github.com/remedyhq/RMT-SchedulingService/internal/api/handlers/get_schedule"
	listRulesHandler "github.com/remedyhq/RMT-SchedulingService/internal/api/handlers/list_availability_rules"
	rescheduleBookingHandler "github.com/remedyhq/RMT-SchedulingService/internal/api/handlers/reschedule_booking"
	sessionsAttentionHandler "github.com/remedyhq/RMT-SchedulingService/internal/api/handlers/sessions_needing_attention"
	updateRuleHandler "github.com/remedyhq/RMT-SchedulingService/internal/api/handlers/update_availability_rule"
	updateBookingStatusHandler "github.com/remedyhq/RMT-SchedulingService/internal/api/handlers/update_booking_status"
	updateSessionStatusHandler "github.com/remedyhq/RMT-SchedulingService/internal/api/handlers/update_session_status"
	"github.com/remedyhq/RMT-SchedulingService/internal/api/middleware"
	"github.com/remedyhq/RMT-SchedulingService/internal/config"
	availabilityRepo "github.com/remedyhq/RMT-SchedulingService/internal/infra/storage/availability"
	bookingRepo "github.com/remedyhq/RMT-SchedulingService/internal/infra/storage/booking"
	serviceOptionRepo "github.com/remedyhq/RMT-SchedulingService/internal/infra/storage/serviceoption"
	notifyServiceClient "github.com/remedyhq/RMT-SchedulingService/internal/integrations/notifyservice"
	paymentServiceClient "github.com/remedyhq/RMT-SchedulingService/internal/integrations/paymentservice"
	remindersJob "github.com/remedyhq/RMT-SchedulingService/internal/jobs/reminders"
	availabilityService "github.com/remedyhq/RMT-SchedulingService/internal/service/availability"
	bookingsService "github.com/remedyhq/RMT-SchedulingService/internal/service/bookings"
	scheduleService "github.com/remedyhq/RMT-SchedulingService/internal/service/schedule"
	createBookingUC "github.com/remedyhq/RMT-SchedulingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/remedyhq/RMT-SchedulingService/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/remedyhq/RMT-SchedulingService/internal/usecase/reschedule_booking"
	"github.com/remedyhq/RMT-SchedulingService/pkg/dbmetrics"
	"github.com/remedyhq/RMT-SchedulingService/pkg/logger"
	"github.com/remedyhq/RMT-SchedulingService/pkg/metrics"
	"github.com/remedyhq/RMT-SchedulingService/pkg/simpletxmanager"
	"github.com/remedyhq/RMT-SchedulingService/pkg/txmanager"
)

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

	log.Info("Starting RMT-SchedulingService...")

	// Часовой пояс клиники - все календарные вычисления в нём
	location, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.Scheduling.Timezone, err)
	}
	log.Info("Clinic timezone: %s", location)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	paymentClient := paymentServiceClient.NewClient(cfg.PaymentSvc.APIKey, log)
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifySvc.URL,
		time.Duration(cfg.NotifySvc.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (NotifyService=%s timeout=%ds)",
		cfg.NotifySvc.URL, cfg.NotifySvc.Timeout)

	// Интерфейс transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		optionRepository       *serviceOptionRepo.Repository
		txMgr                  TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		optionRepository = serviceOptionRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		optionRepository = serviceOptionRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		notifyClient,
		bookingsService.Config{Location: location},
		log,
	)
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		txMgr,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		bookingRepository,
		availabilityRepository,
		scheduleService.Config{Location: location},
		log,
	)

	// Инициализируем use cases
	slotsCfg := getAvailableSlotsUC.Config{
		GranularityMinutes:      cfg.Scheduling.SlotGranularityMinutes,
		MinBookingNoticeMinutes: cfg.Scheduling.MinBookingNoticeMinutes,
		AdvanceBookingDays:      cfg.Scheduling.AdvanceBookingDays,
		Location:                location,
	}
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		optionRepository,
		slotsCfg,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		optionRepository,
		paymentClient,
		notifyClient,
		txMgr,
		createBookingUC.Config{
			MinBookingNoticeMinutes: cfg.Scheduling.MinBookingNoticeMinutes,
			AdvanceBookingDays:      cfg.Scheduling.AdvanceBookingDays,
			Location:                location,
			Currency:                cfg.PaymentSvc.Currency,
		},
		log,
	)

	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		notifyClient,
		txMgr,
		rescheduleBookingUC.Config{
			MinBookingNoticeMinutes: cfg.Scheduling.MinBookingNoticeMinutes,
			AdvanceBookingDays:      cfg.Scheduling.AdvanceBookingDays,
			Location:                location,
		},
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log, metricsCollector)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	updateSessionStatus := updateSessionStatusHandler.NewHandler(bookingSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	sessionsAttention := sessionsAttentionHandler.NewHandler(scheduleSvc, log)
	listRules := listRulesHandler.NewHandler(availabilitySvc, log)
	createRule := createRuleHandler.NewHandler(availabilitySvc, log)
	updateRule := updateRuleHandler.NewHandler(availabilitySvc, log)
	deleteRule := deleteRuleHandler.NewHandler(availabilitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты: по конкретному терапевту и по всем сразу
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/therapists/{therapistId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}/session-status", updateSessionStatus.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/clients/{clientId}/bookings", getClientBookings.Handle).Methods(http.MethodGet)

	// --- Расписание персонала ---
	protected.HandleFunc("/therapists/{therapistId}/schedule", getSchedule.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/sessions/needing-attention", sessionsAttention.Handle).Methods(http.MethodGet)

	// --- Правила доступности ---
	protected.HandleFunc("/therapists/{therapistId}/availability-rules", listRules.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/therapists/{therapistId}/availability-rules", createRule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/therapists/{therapistId}/availability-rules/batch", createRule.HandleBatch).Methods(http.MethodPost)
	protected.HandleFunc("/availability-rules/{ruleId}", updateRule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/availability-rules/{ruleId}", deleteRule.Handle).Methods(http.MethodDelete)

	// Cron-задача напоминаний о завтрашних сеансах
	var reminders *remindersJob.Job
	if cfg.Reminders.Enabled {
		reminders = remindersJob.NewJob(bookingRepository, notifyClient, location, log)
		if err := reminders.Start(cfg.Reminders.Spec); err != nil {
			log.Fatal("Failed to start reminders job: %v", err)
		}
	}

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if reminders != nil {
		reminders.Stop()
	}

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
