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

	createReservationHandler "github.com/mcenturion/turnos-api/internal/api/handlers/create_reservation"
	createServiceHandler "github.com/mcenturion/turnos-api/internal/api/handlers/create_service"
	deleteServiceHandler "github.com/mcenturion/turnos-api/internal/api/handlers/delete_service"
	getAvailableSlotsHandler "github.com/mcenturion/turnos-api/internal/api/handlers/get_available_slots"
	getRevenueStatsHandler "github.com/mcenturion/turnos-api/internal/api/handlers/get_revenue_stats"
	getSelectableDaysHandler "github.com/mcenturion/turnos-api/internal/api/handlers/get_selectable_days"
	listReservationsHandler "github.com/mcenturion/turnos-api/internal/api/handlers/list_reservations"
	listServicesHandler "github.com/mcenturion/turnos-api/internal/api/handlers/list_services"
	loginHandler "github.com/mcenturion/turnos-api/internal/api/handlers/login"
	rescheduleReservationHandler "github.com/mcenturion/turnos-api/internal/api/handlers/reschedule_reservation"
	updateReservationStatusHandler "github.com/mcenturion/turnos-api/internal/api/handlers/update_reservation_status"
	updateServiceHandler "github.com/mcenturion/turnos-api/internal/api/handlers/update_service"
	"github.com/mcenturion/turnos-api/internal/api/middleware"
	"github.com/mcenturion/turnos-api/internal/config"
	reservationRepo "github.com/mcenturion/turnos-api/internal/infra/storage/reservation"
	serviceRepo "github.com/mcenturion/turnos-api/internal/infra/storage/service"
	"github.com/mcenturion/turnos-api/internal/integrations/mailer"
	authService "github.com/mcenturion/turnos-api/internal/service/auth"
	catalogService "github.com/mcenturion/turnos-api/internal/service/catalog"
	reservationsService "github.com/mcenturion/turnos-api/internal/service/reservations"
	createReservationUC "github.com/mcenturion/turnos-api/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/mcenturion/turnos-api/internal/usecase/get_available_slots"
	getSelectableDaysUC "github.com/mcenturion/turnos-api/internal/usecase/get_selectable_days"
	"github.com/mcenturion/turnos-api/pkg/dbmetrics"
	"github.com/mcenturion/turnos-api/pkg/logger"
	"github.com/mcenturion/turnos-api/pkg/metrics"
	"github.com/mcenturion/turnos-api/pkg/simpletxmanager"
	"github.com/mcenturion/turnos-api/pkg/txmanager"
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

	log.Info("Starting turnos-api...")
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

	// Инициализируем почтовый клиент (уведомления админу о новых бронях)
	mailClient := mailer.NewClient(
		cfg.Mailer.BaseURL,
		cfg.Mailer.APIKey,
		cfg.Mailer.From,
		cfg.Mailer.AdminEmail,
		cfg.Mailer.Enabled,
		time.Duration(cfg.Mailer.Timeout)*time.Second,
		log,
	)
	log.Info("Mailer initialized (enabled=%v, admin_email=%s)", cfg.Mailer.Enabled, cfg.Mailer.AdminEmail)

	// Инициализируем репозитории и транзакционный менеджер (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		serviceRepository     *serviceRepo.Repository
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

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(
		serviceRepository,
		reservationRepository,
		txMgr,
		log,
	)
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		serviceRepository,
		txMgr,
		log,
	)
	authSvc := authService.NewService(
		cfg.Auth.AdminUsername,
		cfg.Auth.AdminPasswordHash,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		serviceRepository,
		mailClient,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		serviceRepository,
		log,
	)
	getSelectableDaysUseCase := getSelectableDaysUC.NewUseCase(
		serviceRepository,
		getSelectableDaysUC.RealTimeProvider{},
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getSelectableDays := getSelectableDaysHandler.NewHandler(getSelectableDaysUseCase, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	login := loginHandler.NewHandler(authSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationsSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationsSvc, log)
	rescheduleReservation := rescheduleReservationHandler.NewHandler(reservationsSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)
	getRevenueStats := getRevenueStatsHandler.NewHandler(reservationsSvc, log)

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
	// PUBLIC ROUTES (клиентский флоу бронирования)
	// ============================================================

	// Каталог услуг
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)

	// Доступные слоты для бронирования
	api.HandleFunc("/services/{serviceId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Выбираемые дни месяца
	api.HandleFunc("/services/{serviceId}/selectable-days",
		getSelectableDays.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Вход администратора
	api.HandleFunc("/auth/login", login.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (админ-панель, требуют Bearer JWT)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth([]byte(cfg.Auth.JWTSecret)))

	// --- Бронирования ---
	// Список бронирований
	protected.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)

	// Смена статуса бронирования
	protected.HandleFunc("/reservations/{reservationId}/status",
		updateReservationStatus.Handle).Methods(http.MethodPatch)

	// Перенос бронирования
	protected.HandleFunc("/reservations/{reservationId}/schedule",
		rescheduleReservation.Handle).Methods(http.MethodPatch)

	// --- Управление каталогом услуг ---
	protected.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/services/{serviceId}", updateService.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/services/{serviceId}", deleteService.Handle).Methods(http.MethodDelete)

	// --- Статистика ---
	protected.HandleFunc("/stats/revenue", getRevenueStats.Handle).Methods(http.MethodGet)

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
