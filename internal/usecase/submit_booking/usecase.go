package submit_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/form"
	"github.com/m04kA/SMC-TireService/internal/integrations/notifier"
	"github.com/m04kA/SMC-TireService/internal/pricing"
	"github.com/m04kA/SMC-TireService/internal/service/catalog"
)

// Результаты отправки записи для метрик
const (
	resultCreated          = "created"
	resultValidationFailed = "validation_failed"
	resultRejected         = "rejected"
	resultFailed           = "failed"
)

// UseCase use case отправки записи на обслуживание
type UseCase struct {
	catalog         CatalogService
	settings        SettingsService
	appointmentRepo AppointmentRepository
	customerRepo    CustomerRepository
	txManager       TransactionManager
	notifier        Notifier
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalog CatalogService,
	settings SettingsService,
	appointmentRepo AppointmentRepository,
	customerRepo CustomerRepository,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalog:         catalog,
		settings:        settings,
		appointmentRepo: appointmentRepo,
		customerRepo:    customerRepo,
		txManager:       txManager,
		notifier:        notifier,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case отправки записи
// Запись, услуги с зафиксированными ценами и ответы на требования сохраняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitBooking: services=%v, date=%s, time=%s",
		req.ServiceIDs, req.Date.Format(domain.DateFormat), req.StartTime)

	resp, err := uc.execute(ctx, req)
	uc.observe(err)

	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Загружаем активные услуги с требованиями
	services, err := uc.catalog.LoadActive(ctx, req.ServiceIDs)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrServiceNotFound):
			uc.logger.Warn("SubmitBooking: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrServiceNotFound, err)
		case errors.Is(err, catalog.ErrServiceInactive):
			uc.logger.Warn("SubmitBooking: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrServiceInactive, err)
		default:
			uc.logger.Error("SubmitBooking: failed to load services: %v", err)
			return nil, fmt.Errorf("%w: failed to load services: %v", ErrInternal, err)
		}
	}

	// 4. Проверяем все поля формы, ошибки собираются целиком
	fieldErrs := validateContact(req, services, now)
	answers, answerErrs := validateAnswers(services, req.Answers)
	fieldErrs = append(fieldErrs, answerErrs...)
	if len(fieldErrs) > 0 {
		uc.logger.Warn("SubmitBooking: %d invalid fields", len(fieldErrs))
		return nil, fmt.Errorf("%w: %w", ErrValidation, &form.ValidationError{Fields: fieldErrs})
	}

	// 5. Услуга без цены требует ручной оценки и не может быть записана
	for _, service := range services {
		if service.RequiresQuote() {
			uc.logger.Warn("SubmitBooking: service id=%d has no base price", service.ID)
			return nil, fmt.Errorf("%w: %s", ErrQuoteRequired, service.Name)
		}
	}

	// 6. Считаем стоимость, цены строк фиксируются в записи
	priced := pricing.Compute(services, answers)

	// 7. Проверяем дату и время по настройкам магазина
	settings, err := uc.settings.Current(ctx)
	if err != nil {
		uc.logger.Error("SubmitBooking: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	if err := validateDate(req.Date, now, settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("SubmitBooking: date validation failed: %v", err)
		return nil, err
	}

	schedule := settings.WorkingHours.ForDay(req.Date)
	if !schedule.IsOpen {
		uc.logger.Warn("SubmitBooking: shop is closed on %s", req.Date.Format(domain.DateFormat))
		return nil, ErrShopClosed
	}

	duration := domain.AppointmentDuration(services, settings.SlotDurationMinutes)
	if err := validateTimeSlot(schedule, req.StartTime, duration, settings.SlotDurationMinutes); err != nil {
		uc.logger.Warn("SubmitBooking: time slot validation failed: %v", err)
		return nil, err
	}

	if err := validateBookingTime(req.Date, req.StartTime, now, settings.MinBookingNoticeMinutes); err != nil {
		uc.logger.Warn("SubmitBooking: booking time validation failed: %v", err)
		return nil, err
	}

	var result *domain.Appointment

	// 8. Выполняем запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Получаем активные записи на дату с блокировкой (FOR UPDATE)
		existing, err := uc.appointmentRepo.GetActiveByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("SubmitBooking: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 8.2. Проверяем вместимость слота
		overlapping := domain.CountOverlapping(req.StartTime, duration, existing)
		if overlapping >= settings.MaxConcurrentAppointments {
			uc.logger.Warn("SubmitBooking: slot not available, %d/%d bays taken",
				overlapping, settings.MaxConcurrentAppointments)
			return ErrSlotNotAvailable
		}

		// 8.3. Клиент (по телефону) и автомобиль
		customer := req.Customer
		customerID, err := uc.customerRepo.Upsert(txCtx, &customer)
		if err != nil {
			uc.logger.Error("SubmitBooking: failed to save customer: %v", err)
			return fmt.Errorf("%w: failed to save customer: %v", ErrInternal, err)
		}
		customer.ID = &customerID

		vehicle := req.Vehicle
		vehicleID, err := uc.customerRepo.CreateVehicle(txCtx, customerID, &vehicle)
		if err != nil {
			uc.logger.Error("SubmitBooking: failed to save vehicle: %v", err)
			return fmt.Errorf("%w: failed to save vehicle: %v", ErrInternal, err)
		}
		vehicle.ID = &vehicleID

		// 8.4. Создаем запись
		total := priced.Total
		appointment, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			Customer:        customer,
			Vehicle:         vehicle,
			AppointmentDate: req.Date,
			AppointmentTime: req.StartTime,
			DurationMinutes: duration,
			FinalPrice:      &total,
			Status:          domain.StatusScheduled,
			Notes:           req.Notes,
		})
		if err != nil {
			uc.logger.Error("SubmitBooking: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		// 8.5. Услуги с зафиксированной ценой и непустые ответы на требования
		for i, service := range services {
			line, err := uc.appointmentRepo.CreateService(txCtx, &domain.AppointmentService{
				AppointmentID: appointment.ID,
				ServiceID:     service.ID,
				ServiceName:   service.Name,
				Price:         priced.Services[i].Total,
			})
			if err != nil {
				uc.logger.Error("SubmitBooking: failed to add service id=%d: %v", service.ID, err)
				return fmt.Errorf("%w: failed to add service: %v", ErrInternal, err)
			}

			for _, requirement := range domain.SortRequirements(service.Requirements) {
				value, ok := answers[service.ID][requirement.Key]
				if !ok {
					continue
				}

				saved, err := uc.appointmentRepo.CreateValue(txCtx, &domain.ServiceRequirementValue{
					AppointmentServiceID: line.ID,
					ServiceRequirementID: requirement.ID,
					RequirementKey:       requirement.Key,
					RequirementLabel:     requirement.Label,
					Value:                value,
				})
				if err != nil {
					uc.logger.Error("SubmitBooking: failed to save value %s of service id=%d: %v",
						requirement.Key, service.ID, err)
					return fmt.Errorf("%w: failed to save requirement value: %v", ErrInternal, err)
				}
				line.Values = append(line.Values, *saved)
			}

			appointment.Services = append(appointment.Services, *line)
		}

		result = appointment
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("SubmitBooking: created appointment id=%d, total=%s", result.ID, pricing.Format(priced.Total))

	// 9. Уведомления отправляются в фоне, ошибка не отменяет запись
	if err := uc.notifier.Notify(buildNotice(result, priced)); err != nil {
		uc.logger.Warn("SubmitBooking: failed to queue notifications for appointment id=%d: %v", result.ID, err)
	}

	return &Response{
		Appointment: result,
		Pricing:     priced,
	}, nil
}

func (uc *UseCase) observe(err error) {
	if uc.metrics == nil {
		return
	}

	switch {
	case err == nil:
		uc.metrics.IncBooking(resultCreated)
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidInput):
		uc.metrics.IncBooking(resultValidationFailed)
	case errors.Is(err, ErrInternal):
		uc.metrics.IncBooking(resultFailed)
	default:
		uc.metrics.IncBooking(resultRejected)
	}
}

func buildNotice(appointment *domain.Appointment, priced pricing.Result) notifier.BookingNotice {
	names := make([]string, len(appointment.Services))
	for i, s := range appointment.Services {
		names[i] = s.ServiceName
	}

	vehicle := strings.TrimSpace(fmt.Sprintf("%d %s %s",
		appointment.Vehicle.Year, appointment.Vehicle.Make, appointment.Vehicle.Model))

	return notifier.BookingNotice{
		AppointmentID: appointment.ID,
		CustomerName:  appointment.Customer.Name,
		CustomerPhone: appointment.Customer.Phone,
		CustomerEmail: appointment.Customer.Email,
		Vehicle:       vehicle,
		Date:          appointment.AppointmentDate.Format(domain.DateFormat),
		Time:          appointment.AppointmentTime.String(),
		Services:      names,
		Total:         pricing.Format(priced.Total),
		QuoteRequired: priced.QuoteRequired,
	}
}
