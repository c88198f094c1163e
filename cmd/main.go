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

	bookGroupSessionHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/book_group_session"
	cancelBookingHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/cancel_booking"
	cancelGroupBookingHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/cancel_group_booking"
	createAvailabilityHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/create_availability"
	createBookingHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/create_booking"
	createGroupSessionHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/create_group_session"
	deleteAvailabilityHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/delete_availability"
	getAvailableSlotsHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/get_booking"
	getBookingChainHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/get_booking_chain"
	getCancellationHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/get_cancellation"
	getCancellationPolicyHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/get_cancellation_policy"
	getClientBookingsHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/get_client_bookings"
	getGroupSessionHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/get_group_session"
	getTrainerBookingsHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/get_trainer_bookings"
	listAvailabilityHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/list_availability"
	listGroupParticipantsHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/list_group_participants"
	markNoShowHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/mark_no_show"
	rescheduleBookingHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/reschedule_booking"
	transitionBookingHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/transition_booking"
	updateBookingHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/update_booking"
	updateCancellationPolicyHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/update_cancellation_policy"
	"github.com/m04kA/SMC-TrainingService/internal/api/middleware"
	"github.com/m04kA/SMC-TrainingService/internal/config"
	availabilityRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/booking"
	cancellationRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/cancellation"
	groupRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/group"
	policyRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/policy"
	notificationServiceClient "github.com/m04kA/SMC-TrainingService/internal/integrations/notificationservice"
	userServiceClient "github.com/m04kA/SMC-TrainingService/internal/integrations/userservice"
	availabilityService "github.com/m04kA/SMC-TrainingService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-TrainingService/internal/service/bookings"
	groupsService "github.com/m04kA/SMC-TrainingService/internal/service/groups"
	policyService "github.com/m04kA/SMC-TrainingService/internal/service/policy"
	bookGroupSessionUC "github.com/m04kA/SMC-TrainingService/internal/usecase/book_group_session"
	cancelBookingUC "github.com/m04kA/SMC-TrainingService/internal/usecase/cancel_booking"
	cancelGroupBookingUC "github.com/m04kA/SMC-TrainingService/internal/usecase/cancel_group_booking"
	createBookingUC "github.com/m04kA/SMC-TrainingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-TrainingService/internal/usecase/get_available_slots"
	markNoShowUC "github.com/m04kA/SMC-TrainingService/internal/usecase/mark_no_show"
	rescheduleBookingUC "github.com/m04kA/SMC-TrainingService/internal/usecase/reschedule_booking"
	updateBookingUC "github.com/m04kA/SMC-TrainingService/internal/usecase/update_booking"
	"github.com/m04kA/SMC-TrainingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TrainingService/pkg/logger"
	"github.com/m04kA/SMC-TrainingService/pkg/metrics"
	"github.com/m04kA/SMC-TrainingService/pkg/txmanager"
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

	log.Info("Starting SMC-TrainingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	// Методы *metrics.Metrics безопасны для nil, поэтому коллектор передаётся дальше как есть
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

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	notificationClient := notificationServiceClient.NewClient(
		cfg.NotificationService.URL,
		time.Duration(cfg.NotificationService.Timeout)*time.Second,
		log,
		metricsCollector,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds, NotificationService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout, cfg.NotificationService.URL, cfg.NotificationService.Timeout)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	policyRepository := policyRepo.NewRepository(wrappedDB)
	cancellationRepository := cancellationRepo.NewRepository(wrappedDB)
	groupRepository := groupRepo.NewRepository(wrappedDB)

	// Все изменения расписания идут через SERIALIZABLE с повторами
	txMgr := txmanager.NewTransactionManager(
		wrappedDB,
		txmanager.WithMaxRetries(cfg.Scheduling.SerializableRetries),
		txmanager.WithRetryRecorder(metricsCollector),
	)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		cancellationRepository,
		notificationClient,
		txMgr,
		metricsCollector,
		log,
	)
	availabilitySvc := availabilityService.NewService(availabilityRepository, log)
	policySvc := policyService.NewService(policyRepository, log)
	groupsSvc := groupsService.NewService(groupRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		userClient,
		notificationClient,
		txMgr,
		metricsCollector,
		log,
	)
	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		userClient,
		notificationClient,
		txMgr,
		metricsCollector,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		userClient,
		cfg.Scheduling.SlotStepMinutes,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		policyRepository,
		cancellationRepository,
		notificationClient,
		txMgr,
		metricsCollector,
		log,
	)
	markNoShowUseCase := markNoShowUC.NewUseCase(
		bookingRepository,
		policyRepository,
		cancellationRepository,
		notificationClient,
		txMgr,
		metricsCollector,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		policyRepository,
		notificationClient,
		txMgr,
		metricsCollector,
		log,
	)
	bookGroupSessionUseCase := bookGroupSessionUC.NewUseCase(
		groupRepository,
		userClient,
		notificationClient,
		txMgr,
		metricsCollector,
		log,
	)
	cancelGroupBookingUseCase := cancelGroupBookingUC.NewUseCase(
		groupRepository,
		notificationClient,
		txMgr,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	markNoShow := markNoShowHandler.NewHandler(markNoShowUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	bookGroupSession := bookGroupSessionHandler.NewHandler(bookGroupSessionUseCase, log)
	cancelGroupBooking := cancelGroupBookingHandler.NewHandler(cancelGroupBookingUseCase, log)

	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBookingChain := getBookingChainHandler.NewHandler(bookingSvc, log)
	getCancellation := getCancellationHandler.NewHandler(bookingSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	getTrainerBookings := getTrainerBookingsHandler.NewHandler(bookingSvc, log)
	requestConfirmation := transitionBookingHandler.NewHandler(bookingSvc, transitionBookingHandler.ActionRequestConfirmation, log)
	confirmBooking := transitionBookingHandler.NewHandler(bookingSvc, transitionBookingHandler.ActionConfirm, log)
	startBooking := transitionBookingHandler.NewHandler(bookingSvc, transitionBookingHandler.ActionStart, log)
	completeBooking := transitionBookingHandler.NewHandler(bookingSvc, transitionBookingHandler.ActionComplete, log)

	listAvailability := listAvailabilityHandler.NewHandler(availabilitySvc, log)
	createAvailability := createAvailabilityHandler.NewHandler(availabilitySvc, log)
	deleteAvailability := deleteAvailabilityHandler.NewHandler(availabilitySvc, log)

	getCancellationPolicy := getCancellationPolicyHandler.NewHandler(policySvc, log)
	updateCancellationPolicy := updateCancellationPolicyHandler.NewHandler(policySvc, log)

	createGroupSession := createGroupSessionHandler.NewHandler(groupsSvc, log)
	getGroupSession := getGroupSessionHandler.NewHandler(groupsSvc, log)
	listGroupParticipants := listGroupParticipantsHandler.NewHandler(groupsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Logging(log))

	// Добавляем metrics middleware и endpoint (если метрики включены)
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

	// Свободные слоты тренера на дату
	api.HandleFunc("/trainers/{trainerId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Расписание доступности тренера
	api.HandleFunc("/trainers/{trainerId}/availability", listAvailability.Handle).Methods(http.MethodGet)

	// Политика отмены тренера
	api.HandleFunc("/trainers/{trainerId}/cancellation-policy", getCancellationPolicy.Handle).Methods(http.MethodGet)

	// Карточка групповой сессии
	api.HandleFunc("/group-sessions/{sessionId}", getGroupSession.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Индивидуальные сессии ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/chain", getBookingChain.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancellation", getCancellation.Handle).Methods(http.MethodGet)

	// Жизненный цикл
	protected.HandleFunc("/bookings/{bookingId}/pending", requestConfirmation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/start", startBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/no-show", markNoShow.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPost)

	// Списки
	protected.HandleFunc("/clients/{clientId}/bookings", getClientBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/trainers/{trainerId}/bookings", getTrainerBookings.Handle).Methods(http.MethodGet)

	// --- Управление тренером ---
	protected.HandleFunc("/trainers/{trainerId}/availability", createAvailability.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/trainers/{trainerId}/availability/{availabilityId}", deleteAvailability.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/trainers/{trainerId}/cancellation-policy", updateCancellationPolicy.Handle).Methods(http.MethodPut)

	// --- Групповые сессии ---
	protected.HandleFunc("/group-sessions", createGroupSession.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/group-sessions/{sessionId}/participants", listGroupParticipants.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/group-sessions/{sessionId}/participants", bookGroupSession.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/group-sessions/{sessionId}/participants/{clientId}", cancelGroupBooking.Handle).Methods(http.MethodDelete)

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

	// Дожидаемся отправки уведомлений, поставленных обработанными запросами
	if err := notificationClient.Wait(shutdownCtx); err != nil {
		log.Warn("Pending notifications dropped on shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
