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

	calculatePriceHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/calculate_price"
	createRequirementHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/create_requirement"
	deleteAppointmentHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/delete_appointment"
	deleteRequirementHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/delete_requirement"
	getAppointmentHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/get_available_slots"
	getDashboardHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/get_dashboard"
	getServiceFormHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/get_service_form"
	getSettingsHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/get_settings"
	getWorkingHoursHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/get_working_hours"
	listAppointmentsHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/list_appointments"
	listServicesHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/list_services"
	submitBookingHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/submit_booking"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/update_appointment_status"
	updateRequirementHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/update_requirement"
	updateRequirementValueHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/update_requirement_value"
	updateServicePriceHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/update_service_price"
	updateSettingsHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/update_settings"
	"github.com/m04kA/SMC-TireService/internal/api/middleware"
	"github.com/m04kA/SMC-TireService/internal/config"
	appointmentRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/catalog"
	customerRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/customer"
	requirementRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/requirement"
	settingsRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-TireService/internal/integrations/notifier"
	appointmentsService "github.com/m04kA/SMC-TireService/internal/service/appointments"
	catalogService "github.com/m04kA/SMC-TireService/internal/service/catalog"
	settingsService "github.com/m04kA/SMC-TireService/internal/service/settings"
	calculatePriceUC "github.com/m04kA/SMC-TireService/internal/usecase/calculate_price"
	getAvailableSlotsUC "github.com/m04kA/SMC-TireService/internal/usecase/get_available_slots"
	submitBookingUC "github.com/m04kA/SMC-TireService/internal/usecase/submit_booking"
	"github.com/m04kA/SMC-TireService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TireService/pkg/logger"
	"github.com/m04kA/SMC-TireService/pkg/metrics"
	"github.com/m04kA/SMC-TireService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию (путь можно переопределить через CONFIG_PATH)
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

	log.Info("Starting SMC-TireService...")

	// Инициализируем метрики (если включены)
	// Интерфейсы получают nil без типа, иначе проверка на nil в потребителях не сработает
	var (
		metricsCollector *metrics.Metrics
		dbRecorder       dbmetrics.Recorder
		bookingMetrics   submitBookingUC.Metrics
		notifyMetrics    notifier.Metrics
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbRecorder = metricsCollector
		bookingMetrics = metricsCollector
		notifyMetrics = metricsCollector
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

	// Обёртка замеряет запросы, без метрик работает как обычный *sql.DB
	wrappedDB := dbmetrics.WrapWithDefault(db, dbRecorder, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	requirementRepository := requirementRepo.NewRepository(wrappedDB)
	customerRepository := customerRepo.NewRepository(wrappedDB)
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)

	// Каналы уведомлений: выключенные в конфиге не подключаются
	sendTimeout := time.Duration(cfg.Notifications.Pool.SendTimeout) * time.Second
	var senders []notifier.Sender
	if email := cfg.Notifications.Email; email.Enabled {
		senders = append(senders, notifier.NewEmailSender(notifier.EmailConfig{
			Host:     email.Host,
			Port:     email.Port,
			Username: email.Username,
			Password: email.Password,
			From:     email.From,
			ShopCopy: email.ShopCopy,
		}))
		log.Info("Email notifications enabled (host=%s)", email.Host)
	}
	if sms := cfg.Notifications.SMS; sms.Enabled {
		senders = append(senders, notifier.NewSMSSender(notifier.SMSConfig{
			AccountSID: sms.AccountSID,
			AuthToken:  sms.AuthToken,
			From:       sms.From,
			To:         sms.To,
			Timeout:    sendTimeout,
		}))
		log.Info("SMS notifications enabled")
	}

	dispatcher, err := notifier.NewDispatcher(
		cfg.Notifications.Pool.Workers,
		sendTimeout,
		senders,
		notifyMetrics,
		log,
	)
	if err != nil {
		log.Fatal("Failed to start notification pool: %v", err)
	}

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(catalogRepository, requirementRepository, txMgr, log)
	settingsSvc := settingsService.NewService(settingsRepository, log)
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, requirementRepository, log)

	// Инициализируем use cases
	submitBookingUseCase := submitBookingUC.NewUseCase(
		catalogSvc,
		settingsSvc,
		appointmentRepository,
		customerRepository,
		txMgr,
		dispatcher,
		bookingMetrics,
		log,
	)
	calculatePriceUseCase := calculatePriceUC.NewUseCase(catalogSvc, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		catalogSvc,
		settingsSvc,
		log,
	)

	// Инициализируем handlers
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	getServiceForm := getServiceFormHandler.NewHandler(catalogSvc, log)
	calculatePrice := calculatePriceHandler.NewHandler(calculatePriceUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getWorkingHours := getWorkingHoursHandler.NewHandler(settingsSvc, log)
	submitBooking := submitBookingHandler.NewHandler(submitBookingUseCase, log)

	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateRequirementValue := updateRequirementValueHandler.NewHandler(appointmentsSvc, log)
	getDashboard := getDashboardHandler.NewHandler(appointmentsSvc, log)
	createRequirement := createRequirementHandler.NewHandler(catalogSvc, log)
	updateRequirement := updateRequirementHandler.NewHandler(catalogSvc, log)
	deleteRequirement := deleteRequirementHandler.NewHandler(catalogSvc, log)
	updateServicePrice := updateServicePriceHandler.NewHandler(catalogSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (мастер записи)
	// ============================================================

	// --- Каталог услуг и формы требований ---
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}/form", getServiceForm.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}/form", getServiceForm.HandleValues).Methods(http.MethodPost)

	// --- Расчёт стоимости по мере заполнения формы ---
	api.HandleFunc("/pricing", calculatePrice.Handle).Methods(http.MethodPost)

	// --- Расписание ---
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/settings/working-hours", getWorkingHours.Handle).Methods(http.MethodGet)

	// --- Оформление записи ---
	api.HandleFunc("/bookings", submitBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-User-ID из списка администраторов)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth)
	admin.Use(middleware.RequireAdmin(cfg.Admin.UserIDs))

	// --- Записи ---
	admin.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{id}", getAppointment.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{id}", deleteAppointment.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/appointments/{id}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/appointments/{id}/services/{appointmentServiceId}/values/{requirementId}",
		updateRequirementValue.Handle).Methods(http.MethodPut)

	// --- Каталог ---
	admin.HandleFunc("/services/{serviceId}/requirements", createRequirement.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/services/{serviceId}/price", updateServicePrice.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/requirements/{id}", updateRequirement.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/requirements/{id}", deleteRequirement.Handle).Methods(http.MethodDelete)

	// --- Статистика и настройки ---
	admin.HandleFunc("/dashboard", getDashboard.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся отправки уже поставленных в очередь уведомлений
	dispatcher.Close()
	log.Info("Notification pool stopped")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
