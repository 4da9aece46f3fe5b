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

	cancelBookingHandler "github.com/fixwise/booking-service/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/fixwise/booking-service/internal/api/handlers/create_booking"
	findNextSlotHandler "github.com/fixwise/booking-service/internal/api/handlers/find_next_slot"
	getAvailableSlotsHandler "github.com/fixwise/booking-service/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/fixwise/booking-service/internal/api/handlers/get_booking"
	getCustomerBookingsHandler "github.com/fixwise/booking-service/internal/api/handlers/get_customer_bookings"
	rescheduleBookingHandler "github.com/fixwise/booking-service/internal/api/handlers/reschedule_booking"
	verifyCodeHandler "github.com/fixwise/booking-service/internal/api/handlers/verify_code"
	"github.com/fixwise/booking-service/internal/api/middleware"
	"github.com/fixwise/booking-service/internal/config"
	bookingRepo "github.com/fixwise/booking-service/internal/infra/storage/booking"
	calendarSyncClient "github.com/fixwise/booking-service/internal/integrations/calendarsync"
	notifyServiceClient "github.com/fixwise/booking-service/internal/integrations/notifyservice"
	bookingsService "github.com/fixwise/booking-service/internal/service/bookings"
	notifierService "github.com/fixwise/booking-service/internal/service/notifier"
	createBookingUC "github.com/fixwise/booking-service/internal/usecase/create_booking"
	findNextSlotUC "github.com/fixwise/booking-service/internal/usecase/find_next_slot"
	getAvailableSlotsUC "github.com/fixwise/booking-service/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/fixwise/booking-service/internal/usecase/reschedule_booking"
	"github.com/fixwise/booking-service/pkg/dbmetrics"
	"github.com/fixwise/booking-service/pkg/logger"
	"github.com/fixwise/booking-service/pkg/metrics"
	"github.com/fixwise/booking-service/pkg/simpletxmanager"
	"github.com/fixwise/booking-service/pkg/txmanager"
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

	log.Info("Starting booking-service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Инициализируем интеграционных клиентов
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	calendarClient := calendarSyncClient.NewClient(
		cfg.CalendarService.URL,
		time.Duration(cfg.CalendarService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (NotifyService=%s timeout=%ds, CalendarService=%s timeout=%ds)",
		cfg.NotifyService.URL, cfg.NotifyService.Timeout, cfg.CalendarService.URL, cfg.CalendarService.Timeout)

	// Инициализируем репозиторий и transaction manager (с метриками или без)
	var bookingRepository *bookingRepo.Repository

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB).WithMetrics(metricsCollector)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Рабочие часы и политика бронирований
	hours := cfg.Booking.BusinessHours()

	// Инициализируем нотификатор и сервисы
	notifier := notifierService.New(notifyClient, calendarClient, log)

	bookingSvc := bookingsService.NewService(
		bookingRepository,
		notifier,
		cfg.Booking.CutoffHours,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		txMgr,
		notifier,
		hours,
		log,
	)

	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		txMgr,
		notifier,
		hours,
		cfg.Booking.CutoffHours,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		hours,
		log,
	)

	findNextSlotUseCase := findNextSlotUC.NewUseCase(
		bookingRepository,
		hours,
		cfg.Booking.SearchHorizonDays,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	findNextSlot := findNextSlotHandler.NewHandler(findNextSlotUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	verifyCode := verifyCodeHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты техника на день или диапазон дней
	api.HandleFunc("/technicians/{technicianId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Ближайший свободный слот техника
	api.HandleFunc("/technicians/{technicianId}/next-available",
		findNextSlot.Handle).Methods(http.MethodGet)

	// Проверка кода подтверждения (клиент называет код, аутентификации нет)
	api.HandleFunc("/bookings/{bookingId}/verify-code",
		verifyCode.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Customer-Ref header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Перенос бронирования
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/customers/{customerRef}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

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
