package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/delete_booking"
	exportBookingsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/export_bookings"
	getAdminStatsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_admin_stats"
	getBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_booking"
	getSlotHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_slot"
	healthHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/health"
	listBookingsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/list_bookings"
	listSlotsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/list_slots"
	updateBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/update_booking"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/config"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/events"
	"github.com/m04kA/SMC-ParkingService/internal/jobs/sweeper"
	bookingsService "github.com/m04kA/SMC-ParkingService/internal/service/bookings"
	reconcilerService "github.com/m04kA/SMC-ParkingService/internal/service/reconciler"
	slotsService "github.com/m04kA/SMC-ParkingService/internal/service/slots"
	statsService "github.com/m04kA/SMC-ParkingService/internal/service/stats"
	bootstrapCatalogUC "github.com/m04kA/SMC-ParkingService/internal/usecase/bootstrap_catalog"
	createBookingUC "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ParkingService/pkg/locker"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
)

const (
	bootstrapTimeout = time.Minute
	sweepTimeout     = time.Minute
)

type eventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
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

	log.Info("Starting SMC-ParkingService...")
	log.Info("Configuration loaded from config.toml (driver=%s)", cfg.Database.Driver)

	loc, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к хранилищу
	startCtx, cancelStart := context.WithTimeout(context.Background(), bootstrapTimeout)
	defer cancelStart()

	st, err := openStorage(startCtx, cfg.Database, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh, log)
	if err != nil {
		log.Fatal("Failed to open storage: %v", err)
	}
	defer st.close()
	log.Info("Storage ready (driver=%s)", cfg.Database.Driver)

	// Блокировка проходов реконсиляции: redis для нескольких инстансов, иначе в памяти процесса
	var lock reconcilerService.Locker = locker.NewMemory()
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(startCtx).Err(); err != nil {
			log.Fatal("Failed to connect to redis at %s: %v", cfg.Redis.Addr, err)
		}
		lock = locker.NewRedis(redisClient, cfg.Redis.Prefix, time.Duration(cfg.Reconciler.LockTTLSeconds)*time.Second)
		log.Info("Distributed reconciliation lock enabled (redis=%s)", cfg.Redis.Addr)
	}

	// Публикация доменных событий
	var publisher eventPublisher = events.NewNoop(metricsCollector)
	if cfg.RabbitMQ.Enabled {
		p, err := events.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue, metricsCollector, log)
		if err != nil {
			log.Fatal("Failed to connect to rabbitmq: %v", err)
		}
		publisher = p
		log.Info("Event publishing enabled (queue=%s)", cfg.RabbitMQ.Queue)
	}
	defer publisher.Close()

	// Инициализируем сервисы
	reconciler := reconcilerService.NewService(
		st.slots,
		st.reservations,
		st.txManager,
		lock,
		publisher,
		metricsCollector,
		loc,
		time.Duration(cfg.Reconciler.LockTimeout)*time.Second,
		log,
	)
	bookingSvc := bookingsService.NewService(
		st.reservations,
		st.slots,
		reconciler,
		publisher,
		st.txManager,
		loc,
		log,
	)
	slotSvc := slotsService.NewService(st.slots, reconciler, log)
	statsSvc := statsService.NewService(st.stats, st.reservations, reconciler, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		st.slots,
		st.reservations,
		publisher,
		st.txManager,
		loc,
		log,
	)
	bootstrapUseCase := bootstrapCatalogUC.NewUseCase(st.slots, reconciler, log)

	// Каталог мест и перевод legacy идентификаторов до приёма запросов
	bootstrapResult, err := bootstrapUseCase.Execute(startCtx, &bootstrapCatalogUC.Request{
		Locations: cfg.Catalog.Locations,
		Floors:    cfg.Catalog.Floors,
		Rows:      cfg.Catalog.Rows,
		Numbers:   cfg.Catalog.Numbers,
	})
	if err != nil {
		log.Fatal("Failed to bootstrap slot catalog: %v", err)
	}
	log.Info("Slot catalog ready: created=%d, renamed=%d, rename_skipped=%d",
		bootstrapResult.Created, bootstrapResult.Renamed, len(bootstrapResult.RenameSkipped))

	// Фоновая реконсиляция по расписанию (если задано)
	var sweep *sweeper.Sweeper
	if cfg.Reconciler.Schedule != "" {
		sweep, err = sweeper.New(cfg.Reconciler.Schedule, loc, sweepTimeout, reconciler, log)
		if err != nil {
			log.Fatal("Failed to schedule reconciliation: %v", err)
		}
		sweep.Start()
		log.Info("Background reconciliation scheduled: %s", cfg.Reconciler.Schedule)
	}

	// Инициализируем handlers
	health := healthHandler.NewHandler(st.pinger, log)
	listSlots := listSlotsHandler.NewHandler(slotSvc, log)
	getSlot := getSlotHandler.NewHandler(slotSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	adminStats := getAdminStatsHandler.NewHandler(statsSvc, log)
	exportBookings := exportBookingsHandler.NewHandler(statsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// Реестр мест
	api.HandleFunc("/parking-slots", listSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/parking-slots/{location}/{slotId}", getSlot.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret))

	// --- Бронирования ---
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Администрирование ---
	protected.HandleFunc("/admin/stats", adminStats.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/export", exportBookings.Handle).Methods(http.MethodGet)

	// CORS для веб-клиента и защита от паник
	var handler http.Handler = r
	if len(cfg.Server.CORSOrigins) > 0 {
		handler = handlers.CORS(
			handlers.AllowedOrigins(cfg.Server.CORSOrigins),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}),
			handlers.AllowedHeaders([]string{"Authorization", "Content-Type", middleware.RequestIDHeader}),
		)(handler)
	}
	handler = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(handler)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
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

	if sweep != nil {
		sweep.Stop(shutdownCtx)
		log.Info("Background reconciliation stopped")
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
