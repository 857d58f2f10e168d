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

	blockDateHandler "github.com/salon-nv/NV-BookingService/internal/api/handlers/block_date"
	cancelReservationHandler "github.com/salon-nv/NV-BookingService/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/salon-nv/NV-BookingService/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/salon-nv/NV-BookingService/internal/api/handlers/get_available_slots"
	getCalendarHandler "github.com/salon-nv/NV-BookingService/internal/api/handlers/get_calendar"
	getReservationHandler "github.com/salon-nv/NV-BookingService/internal/api/handlers/get_reservation"
	getReservationsHandler "github.com/salon-nv/NV-BookingService/internal/api/handlers/get_reservations"
	getScheduleConfigHandler "github.com/salon-nv/NV-BookingService/internal/api/handlers/get_schedule_config"
	getUserReservationsHandler "github.com/salon-nv/NV-BookingService/internal/api/handlers/get_user_reservations"
	listBlockedDatesHandler "github.com/salon-nv/NV-BookingService/internal/api/handlers/list_blocked_dates"
	unblockDateHandler "github.com/salon-nv/NV-BookingService/internal/api/handlers/unblock_date"
	updateReservationStatusHandler "github.com/salon-nv/NV-BookingService/internal/api/handlers/update_reservation_status"
	updateScheduleConfigHandler "github.com/salon-nv/NV-BookingService/internal/api/handlers/update_schedule_config"
	"github.com/salon-nv/NV-BookingService/internal/api/middleware"
	"github.com/salon-nv/NV-BookingService/internal/config"
	reservationRepo "github.com/salon-nv/NV-BookingService/internal/infra/storage/reservation"
	scheduleRepo "github.com/salon-nv/NV-BookingService/internal/infra/storage/schedule"
	identityServiceClient "github.com/salon-nv/NV-BookingService/internal/integrations/identityservice"
	reservationsService "github.com/salon-nv/NV-BookingService/internal/service/reservations"
	scheduleService "github.com/salon-nv/NV-BookingService/internal/service/schedule"
	createReservationUC "github.com/salon-nv/NV-BookingService/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/salon-nv/NV-BookingService/internal/usecase/get_available_slots"
	getCalendarUC "github.com/salon-nv/NV-BookingService/internal/usecase/get_calendar"
	"github.com/salon-nv/NV-BookingService/pkg/dbmetrics"
	"github.com/salon-nv/NV-BookingService/pkg/logger"
	"github.com/salon-nv/NV-BookingService/pkg/metrics"
	"github.com/salon-nv/NV-BookingService/pkg/simpletxmanager"
	"github.com/salon-nv/NV-BookingService/pkg/txmanager"
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

	log.Info("Starting NV-BookingService...")
	log.Info("Configuration loaded from config.toml")

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

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем клиента IdentityService
	identityClient := identityServiceClient.NewClient(
		cfg.IdentityService.URL,
		time.Duration(cfg.IdentityService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (IdentityService=%s timeout=%ds)",
		cfg.IdentityService.URL, cfg.IdentityService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		reservationRepository = reservationRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		cfg.Studio.AdminIDs,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		cfg.Studio.AdminIDs,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		scheduleRepository,
		identityClient,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		scheduleRepository,
		log,
	)

	getCalendarUseCase := getCalendarUC.NewUseCase(
		reservationRepository,
		scheduleRepository,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getCalendar := getCalendarHandler.NewHandler(getCalendarUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationSvc, log)
	getReservations := getReservationsHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	getScheduleConfig := getScheduleConfigHandler.NewHandler(scheduleSvc, log)
	updateScheduleConfig := updateScheduleConfigHandler.NewHandler(scheduleSvc, log)
	blockDate := blockDateHandler.NewHandler(scheduleSvc, log)
	unblockDate := unblockDateHandler.NewHandler(scheduleSvc, log)
	listBlockedDates := listBlockedDatesHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Конфигурация расписания студии
	api.HandleFunc("/schedule/config", getScheduleConfig.Handle).Methods(http.MethodGet)

	// Календарь занятости студии
	api.HandleFunc("/schedule/calendar", getCalendar.Handle).Methods(http.MethodGet)

	// Заблокированные даты
	api.HandleFunc("/schedule/blocked-dates", listBlockedDates.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Расписание ---
	// Доступные слоты на дату
	protected.HandleFunc("/schedule/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Обновление конфигурации расписания (для администраторов)
	protected.HandleFunc("/schedule/config", updateScheduleConfig.Handle).Methods(http.MethodPut)

	// Блокировка дат (для администраторов)
	protected.HandleFunc("/schedule/blocked-dates", blockDate.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/schedule/blocked-dates/{date}", unblockDate.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Список бронирований студии (для администраторов)
	protected.HandleFunc("/reservations", getReservations.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// Обновление статуса бронирования (для администраторов)
	protected.HandleFunc("/reservations/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

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
