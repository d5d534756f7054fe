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

	cancelReservationHandler "github.com/fitcrm/FC-ReservationService/internal/api/handlers/cancel_reservation"
	createBlackoutHandler "github.com/fitcrm/FC-ReservationService/internal/api/handlers/create_blackout"
	createReservationHandler "github.com/fitcrm/FC-ReservationService/internal/api/handlers/create_reservation"
	deleteBlackoutHandler "github.com/fitcrm/FC-ReservationService/internal/api/handlers/delete_blackout"
	getAvailabilityHandler "github.com/fitcrm/FC-ReservationService/internal/api/handlers/get_availability"
	getClientReservationsHandler "github.com/fitcrm/FC-ReservationService/internal/api/handlers/get_client_reservations"
	getReservationHandler "github.com/fitcrm/FC-ReservationService/internal/api/handlers/get_reservation"
	getTrainerConfigHandler "github.com/fitcrm/FC-ReservationService/internal/api/handlers/get_trainer_config"
	getTrainerReservationsHandler "github.com/fitcrm/FC-ReservationService/internal/api/handlers/get_trainer_reservations"
	rescheduleReservationHandler "github.com/fitcrm/FC-ReservationService/internal/api/handlers/reschedule_reservation"
	updateReservationStatusHandler "github.com/fitcrm/FC-ReservationService/internal/api/handlers/update_reservation_status"
	updateTrainerConfigHandler "github.com/fitcrm/FC-ReservationService/internal/api/handlers/update_trainer_config"
	"github.com/fitcrm/FC-ReservationService/internal/api/middleware"
	"github.com/fitcrm/FC-ReservationService/internal/config"
	blackoutRepo "github.com/fitcrm/FC-ReservationService/internal/infra/storage/blackout"
	durationRepo "github.com/fitcrm/FC-ReservationService/internal/infra/storage/duration"
	policyRepo "github.com/fitcrm/FC-ReservationService/internal/infra/storage/policy"
	reservationRepo "github.com/fitcrm/FC-ReservationService/internal/infra/storage/reservation"
	scheduleRepo "github.com/fitcrm/FC-ReservationService/internal/infra/storage/schedule"
	"github.com/fitcrm/FC-ReservationService/internal/integrations/notifyservice"
	reservationsService "github.com/fitcrm/FC-ReservationService/internal/service/reservations"
	trainerConfigService "github.com/fitcrm/FC-ReservationService/internal/service/trainerconfig"
	createReservationUC "github.com/fitcrm/FC-ReservationService/internal/usecase/create_reservation"
	getAvailabilityUC "github.com/fitcrm/FC-ReservationService/internal/usecase/get_availability"
	rescheduleReservationUC "github.com/fitcrm/FC-ReservationService/internal/usecase/reschedule_reservation"
	"github.com/fitcrm/FC-ReservationService/pkg/dbmetrics"
	"github.com/fitcrm/FC-ReservationService/pkg/logger"
	"github.com/fitcrm/FC-ReservationService/pkg/metrics"
	"github.com/fitcrm/FC-ReservationService/pkg/simpletxmanager"
	"github.com/fitcrm/FC-ReservationService/pkg/txmanager"
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

	log.Info("Starting FC-ReservationService...")
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

	// Инициализируем клиент уведомлений
	notifyClient := notifyservice.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (NotifyService=%s timeout=%ds)",
		cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		policyRepository      *policyRepo.Repository
		durationRepository    *durationRepo.Repository
		blackoutRepository    *blackoutRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		policyRepository = policyRepo.NewRepository(wrappedDB)
		durationRepository = durationRepo.NewRepository(wrappedDB)
		blackoutRepository = blackoutRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		reservationRepository = reservationRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		policyRepository = policyRepo.NewRepository(db)
		durationRepository = durationRepo.NewRepository(db)
		blackoutRepository = blackoutRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		log,
	)
	trainerConfigSvc := trainerConfigService.NewService(
		scheduleRepository,
		policyRepository,
		durationRepository,
		blackoutRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		reservationRepository,
		scheduleRepository,
		policyRepository,
		durationRepository,
		blackoutRepository,
		log,
	)

	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		scheduleRepository,
		policyRepository,
		durationRepository,
		blackoutRepository,
		txMgr,
		log,
	)

	rescheduleReservationUseCase := rescheduleReservationUC.NewUseCase(
		reservationRepository,
		scheduleRepository,
		policyRepository,
		blackoutRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, notifyClient, log)
	rescheduleReservation := rescheduleReservationHandler.NewHandler(rescheduleReservationUseCase, notifyClient, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, notifyClient, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationsSvc, log)
	getClientReservations := getClientReservationsHandler.NewHandler(reservationsSvc, log)
	getTrainerReservations := getTrainerReservationsHandler.NewHandler(reservationsSvc, log)
	getTrainerConfig := getTrainerConfigHandler.NewHandler(trainerConfigSvc, log)
	updateTrainerConfig := updateTrainerConfigHandler.NewHandler(trainerConfigSvc, log)
	createBlackout := createBlackoutHandler.NewHandler(trainerConfigSvc, log)
	deleteBlackout := deleteBlackoutHandler.NewHandler(trainerConfigSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
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

	// Доступные слоты тренера на дату
	api.HandleFunc("/trainers/{trainerId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Конфигурация бронирования тренера
	api.HandleFunc("/trainers/{trainerId}/config",
		getTrainerConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Перенос бронирования
	protected.HandleFunc("/reservations/{reservationId}/reschedule", rescheduleReservation.Handle).Methods(http.MethodPatch)

	// Отмена бронирования
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// Смена статуса (подтверждение, завершение, no-show) - только тренер
	protected.HandleFunc("/reservations/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/clients/{clientId}/reservations", getClientReservations.Handle).Methods(http.MethodGet)

	// --- Кабинет тренера ---
	// Календарь бронирований тренера
	protected.HandleFunc("/trainers/{trainerId}/reservations", getTrainerReservations.Handle).Methods(http.MethodGet)

	// Обновление конфигурации бронирования
	protected.HandleFunc("/trainers/{trainerId}/config", updateTrainerConfig.Handle).Methods(http.MethodPut)

	// Блэкауты (отпуска, праздники)
	protected.HandleFunc("/trainers/{trainerId}/blackouts", createBlackout.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/trainers/{trainerId}/blackouts/{blackoutId}", deleteBlackout.Handle).Methods(http.MethodDelete)

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
