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

	cancelConsultationHandler "github.com/NovaCoreVectra/NCV-ConsultationService/internal/api/handlers/cancel_consultation"
	getAvailableSlotsHandler "github.com/NovaCoreVectra/NCV-ConsultationService/internal/api/handlers/get_available_slots"
	getClientConsultationsHandler "github.com/NovaCoreVectra/NCV-ConsultationService/internal/api/handlers/get_client_consultations"
	getConsultationHandler "github.com/NovaCoreVectra/NCV-ConsultationService/internal/api/handlers/get_consultation"
	listConsultationsHandler "github.com/NovaCoreVectra/NCV-ConsultationService/internal/api/handlers/list_consultations"
	rescheduleConsultationHandler "github.com/NovaCoreVectra/NCV-ConsultationService/internal/api/handlers/reschedule_consultation"
	submitConsultationHandler "github.com/NovaCoreVectra/NCV-ConsultationService/internal/api/handlers/submit_consultation"
	updateStatusHandler "github.com/NovaCoreVectra/NCV-ConsultationService/internal/api/handlers/update_status"
	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/api/middleware"
	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/app"
	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/config"
	consultationRepo "github.com/NovaCoreVectra/NCV-ConsultationService/internal/infra/storage/consultation"
	outboxRepo "github.com/NovaCoreVectra/NCV-ConsultationService/internal/infra/storage/outbox"
	calendarServiceClient "github.com/NovaCoreVectra/NCV-ConsultationService/internal/integrations/calendarservice"
	mailServiceClient "github.com/NovaCoreVectra/NCV-ConsultationService/internal/integrations/mailservice"
	consultationsService "github.com/NovaCoreVectra/NCV-ConsultationService/internal/service/consultations"
	bookConsultationUC "github.com/NovaCoreVectra/NCV-ConsultationService/internal/usecase/book_consultation"
	getAvailableSlotsUC "github.com/NovaCoreVectra/NCV-ConsultationService/internal/usecase/get_available_slots"
	rescheduleConsultationUC "github.com/NovaCoreVectra/NCV-ConsultationService/internal/usecase/reschedule_consultation"
	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/workers/invitations"
	"github.com/NovaCoreVectra/NCV-ConsultationService/pkg/dbmetrics"
	"github.com/NovaCoreVectra/NCV-ConsultationService/pkg/logger"
	"github.com/NovaCoreVectra/NCV-ConsultationService/pkg/metrics"
	"github.com/NovaCoreVectra/NCV-ConsultationService/pkg/simpletxmanager"
	"github.com/NovaCoreVectra/NCV-ConsultationService/pkg/txmanager"
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

	log.Info("Starting NCV-ConsultationService...")
	log.Info("Configuration loaded from config.toml")

	// Политика расписания и данные организатора из конфига
	policy, err := cfg.SchedulePolicy()
	if err != nil {
		log.Fatal("Failed to build schedule policy: %v", err)
	}
	organizer := cfg.EventOrganizer()

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

	// Применяем миграции при старте
	if err := app.RunMigrations(context.Background(), db, cfg.Database.MigrationsDir, log); err != nil {
		log.Fatal("Failed to run migrations: %v", err)
	}

	// Инициализируем интеграционных клиентов
	calendarClient := calendarServiceClient.NewClient(
		cfg.CalendarService.URL,
		cfg.CalendarService.CalendarID,
		time.Duration(cfg.CalendarService.Timeout)*time.Second,
		log,
	)
	mailClient := mailServiceClient.NewClient(
		cfg.MailService.URL,
		cfg.MailService.FromEmail,
		cfg.MailService.FromName,
		time.Duration(cfg.MailService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CalendarService=%s timeout=%ds, MailService=%s timeout=%ds)",
		cfg.CalendarService.URL, cfg.CalendarService.Timeout, cfg.MailService.URL, cfg.MailService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		consultationRepository *consultationRepo.Repository
		outboxRepository       *outboxRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и воркере)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		consultationRepository = consultationRepo.NewRepository(wrappedDB)
		outboxRepository = outboxRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		consultationRepository = consultationRepo.NewRepository(db)
		outboxRepository = outboxRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	consultationsSvc := consultationsService.NewService(
		consultationRepository,
		calendarClient,
		log,
	)

	// Инициализируем use cases
	bookConsultationUseCase := bookConsultationUC.NewUseCase(
		consultationRepository,
		outboxRepository,
		calendarClient,
		txMgr,
		policy,
		organizer,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		consultationRepository,
		calendarClient,
		policy,
		log,
	)

	rescheduleConsultationUseCase := rescheduleConsultationUC.NewUseCase(
		consultationRepository,
		outboxRepository,
		calendarClient,
		txMgr,
		policy,
		organizer,
		log,
	)

	// Инициализируем handlers
	submitConsultation := submitConsultationHandler.NewHandler(bookConsultationUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getConsultation := getConsultationHandler.NewHandler(consultationsSvc, log)
	cancelConsultation := cancelConsultationHandler.NewHandler(consultationsSvc, log)
	rescheduleConsultation := rescheduleConsultationHandler.NewHandler(rescheduleConsultationUseCase, log)
	listConsultations := listConsultationsHandler.NewHandler(consultationsSvc, log)
	getClientConsultations := getClientConsultationsHandler.NewHandler(consultationsSvc, log)
	updateStatus := updateStatusHandler.NewHandler(consultationsSvc, log)

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

	// Заявка на консультацию с формы сайта
	api.HandleFunc("/consultations", submitConsultation.Handle).Methods(http.MethodPost)

	// Доступные слоты на дату
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Manager-Key header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.ManagerAuth(cfg.Auth.ManagerKey))

	// --- Консультации ---
	// Список консультаций с фильтрами
	protected.HandleFunc("/consultations", listConsultations.Handle).Methods(http.MethodGet)

	// Получение консультации по ID
	protected.HandleFunc("/consultations/{consultationId}", getConsultation.Handle).Methods(http.MethodGet)

	// Отмена консультации
	protected.HandleFunc("/consultations/{consultationId}/cancel", cancelConsultation.Handle).Methods(http.MethodPatch)

	// Перенос консультации на другой слот
	protected.HandleFunc("/consultations/{consultationId}/reschedule", rescheduleConsultation.Handle).Methods(http.MethodPatch)

	// Смена статуса консультации
	protected.HandleFunc("/consultations/{consultationId}/status", updateStatus.Handle).Methods(http.MethodPatch)

	// История консультаций клиента
	protected.HandleFunc("/clients/{email}/consultations", getClientConsultations.Handle).Methods(http.MethodGet)

	// Запускаем воркер рассылки приглашений
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	var workerMetrics invitations.Metrics
	if cfg.Metrics.Enabled {
		workerMetrics = metricsCollector
	}
	invitationWorker := invitations.NewWorker(
		outboxRepository,
		mailClient,
		txMgr,
		workerMetrics,
		log,
		time.Duration(cfg.Invitations.PollIntervalSeconds)*time.Second,
		cfg.Invitations.BatchSize,
		cfg.Invitations.MaxAttempts,
	)
	go invitationWorker.Run(workerCtx)

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

	// Останавливаем воркер приглашений
	stopWorker()

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
