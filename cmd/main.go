package main

import (
	"context"
	"database/sql"
	"errors"
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

	"github.com/devbada/sisters-salon-reservation-sub001/internal/api/handlers"
	changeStatusHandler "github.com/devbada/sisters-salon-reservation-sub001/internal/api/handlers/change_reservation_status"
	checkConflictsHandler "github.com/devbada/sisters-salon-reservation-sub001/internal/api/handlers/check_conflicts"
	createReservationHandler "github.com/devbada/sisters-salon-reservation-sub001/internal/api/handlers/create_reservation"
	deleteReservationHandler "github.com/devbada/sisters-salon-reservation-sub001/internal/api/handlers/delete_reservation"
	getAvailableSlotsHandler "github.com/devbada/sisters-salon-reservation-sub001/internal/api/handlers/get_available_slots"
	getCalendarConflictsHandler "github.com/devbada/sisters-salon-reservation-sub001/internal/api/handlers/get_calendar_conflicts"
	getRegularHoursHandler "github.com/devbada/sisters-salon-reservation-sub001/internal/api/handlers/get_regular_hours"
	getReservationHandler "github.com/devbada/sisters-salon-reservation-sub001/internal/api/handlers/get_reservation"
	getReservationHistoryHandler "github.com/devbada/sisters-salon-reservation-sub001/internal/api/handlers/get_reservation_history"
	holidaysHandler "github.com/devbada/sisters-salon-reservation-sub001/internal/api/handlers/holidays"
	listReservationsHandler "github.com/devbada/sisters-salon-reservation-sub001/internal/api/handlers/list_reservations"
	resolveHoursHandler "github.com/devbada/sisters-salon-reservation-sub001/internal/api/handlers/resolve_hours"
	specialHoursHandler "github.com/devbada/sisters-salon-reservation-sub001/internal/api/handlers/special_hours"
	updateRegularHoursHandler "github.com/devbada/sisters-salon-reservation-sub001/internal/api/handlers/update_regular_hours"
	updateReservationHandler "github.com/devbada/sisters-salon-reservation-sub001/internal/api/handlers/update_reservation"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/api/middleware"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/config"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/infra/cache/conflictcache"
	reservationRepo "github.com/devbada/sisters-salon-reservation-sub001/internal/infra/storage/reservation"
	scheduleRepo "github.com/devbada/sisters-salon-reservation-sub001/internal/infra/storage/schedule"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/scheduling/status"
	businessHoursService "github.com/devbada/sisters-salon-reservation-sub001/internal/service/businesshours"
	reservationsService "github.com/devbada/sisters-salon-reservation-sub001/internal/service/reservations"
	changeStatusUC "github.com/devbada/sisters-salon-reservation-sub001/internal/usecase/change_reservation_status"
	checkConflictsUC "github.com/devbada/sisters-salon-reservation-sub001/internal/usecase/check_conflicts"
	createReservationUC "github.com/devbada/sisters-salon-reservation-sub001/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/devbada/sisters-salon-reservation-sub001/internal/usecase/get_available_slots"
	getCalendarConflictsUC "github.com/devbada/sisters-salon-reservation-sub001/internal/usecase/get_calendar_conflicts"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/logger"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/metrics"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/txmanager"
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

	log.Info("Starting salon scheduler...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены); nil коллектор ничего не пишет
	var metricsCollector *metrics.Metrics
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

	// Redis для кэша индекса конфликтов (опционально)
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// кэш деградирует к пересчету, сервис продолжает работу
			log.Warn("Redis is unavailable at %s: %v", cfg.Redis.Address, err)
		} else {
			log.Info("Connected to Redis at %s", cfg.Redis.Address)
		}
		cancel()
	}

	var conflictCache *conflictcache.Cache
	if redisClient != nil {
		conflictCache = conflictcache.New(
			redisClient,
			time.Duration(cfg.Redis.CacheTTLSeconds)*time.Second,
			log,
			metricsCollector,
		)
	}

	txMgr := txmanager.NewTransactionManager(db)

	// Инициализируем репозитории
	scheduleRepository := scheduleRepo.NewRepository(db)
	reservationRepository := reservationRepo.NewRepository(db)

	// Инициализируем сервисы
	hoursSvc := businessHoursService.NewService(scheduleRepository, txMgr, log)
	reservationSvc := reservationsService.NewService(reservationRepository, hoursSvc, conflictCache, txMgr, log)

	// Применяем начальное расписание салона
	if cfg.Schedule.SeedFile != "" {
		if err := applySeed(hoursSvc, cfg.Schedule.SeedFile); err != nil {
			log.Fatal("Failed to apply salon seed %s: %v", cfg.Schedule.SeedFile, err)
		}
	}

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		hoursSvc,
		metricsCollector,
		log,
		cfg.Schedule.SlotStepMinutes,
		cfg.Schedule.DefaultDurationMinutes,
	)
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		hoursSvc,
		conflictCache,
		metricsCollector,
		txMgr,
		log,
		cfg.Schedule.DefaultDurationMinutes,
	)
	changeStatusUseCase := changeStatusUC.NewUseCase(
		reservationRepository,
		hoursSvc,
		status.NewMachine(&status.RealTimeProvider{}),
		conflictCache,
		metricsCollector,
		txMgr,
		log,
	)
	checkConflictsUseCase := checkConflictsUC.NewUseCase(
		reservationRepository,
		hoursSvc,
		metricsCollector,
		log,
	)
	getCalendarConflictsUseCase := getCalendarConflictsUC.NewUseCase(
		reservationRepository,
		conflictCache,
		log,
	)

	// Инициализируем handlers
	resolveHours := resolveHoursHandler.NewHandler(hoursSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getRegularHours := getRegularHoursHandler.NewHandler(hoursSvc, log)
	updateRegularHours := updateRegularHoursHandler.NewHandler(hoursSvc, log)
	specialHours := specialHoursHandler.NewHandler(hoursSvc, log)
	holidays := holidaysHandler.NewHandler(hoursSvc, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	listReservations := listReservationsHandler.NewHandler(reservationSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	updateReservation := updateReservationHandler.NewHandler(reservationSvc, log)
	deleteReservation := deleteReservationHandler.NewHandler(reservationSvc, log)
	changeStatus := changeStatusHandler.NewHandler(changeStatusUseCase, log)
	getReservationHistory := getReservationHistoryHandler.NewHandler(reservationSvc, log)
	checkConflicts := checkConflictsHandler.NewHandler(checkConflictsUseCase, log)
	getCalendarConflicts := getCalendarConflictsHandler.NewHandler(getCalendarConflictsUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.AccessLog(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Health checks
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.HandleFunc("/readyz", readiness(db, redisClient)).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/business-hours/resolve", resolveHours.Handle).Methods(http.MethodGet)
	api.HandleFunc("/business-hours/regular", getRegularHours.Handle).Methods(http.MethodGet)
	api.HandleFunc("/special-hours", specialHours.List).Methods(http.MethodGet)
	api.HandleFunc("/holidays", holidays.List).Methods(http.MethodGet)
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/conflicts/check", checkConflicts.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Admin-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		defer limiter.Close()
		protected.Use(limiter.Middleware())
		log.Info("Rate limit enabled: %.2f req/s, burst %d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// --- Расписание салона ---
	protected.HandleFunc("/business-hours/regular", updateRegularHours.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/special-hours", specialHours.Create).Methods(http.MethodPost)
	protected.HandleFunc("/special-hours/{id}", specialHours.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/holidays", holidays.Create).Methods(http.MethodPost)
	protected.HandleFunc("/holidays/{id}", holidays.Delete).Methods(http.MethodDelete)

	// --- Бронирования ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{id}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{id}", updateReservation.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/reservations/{id}", deleteReservation.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/reservations/{id}/status", changeStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{id}/history", getReservationHistory.Handle).Methods(http.MethodGet)

	// --- Календарь конфликтов ---
	protected.HandleFunc("/conflicts", getCalendarConflicts.Handle).Methods(http.MethodGet)

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

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

// applySeed загружает salon.yaml и записывает его, если недельное расписание еще пустое
func applySeed(svc *businessHoursService.Service, path string) error {
	seed, err := config.LoadSalonSeed(path)
	if err != nil {
		return err
	}

	regular, err := seed.RegularHours()
	if err != nil {
		return err
	}
	holidays, err := seed.HolidayList()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = svc.ApplySeed(ctx, regular, holidays)
	return err
}

// readiness проверяет доступность PostgreSQL и, если настроен, Redis
func readiness(db *sql.DB, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{"database": "ok"}
		ready := true

		if err := db.PingContext(ctx); err != nil {
			checks["database"] = err.Error()
			ready = false
		}
		if redisClient != nil {
			checks["redis"] = "ok"
			if err := redisClient.Ping(ctx).Err(); err != nil {
				checks["redis"] = err.Error()
				ready = false
			}
		}

		code := http.StatusOK
		if !ready {
			code = http.StatusServiceUnavailable
		}
		handlers.RespondJSON(w, code, checks)
	}
}
