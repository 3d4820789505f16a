package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/service/catalog"
)

// UseCase use case для получения доступных слотов записи
// Проверка вместимости только информирует клиента, слот не резервируется
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalog         CatalogService
	settings        SettingsService
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalog CatalogService,
	settings SettingsService,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalog:         catalog,
		settings:        settings,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, services=%v", req.Date.Format(domain.DateFormat), req.ServiceIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем настройки магазина
	settings, err := uc.settings.Current(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 4. Длительность записи по выбранным услугам
	var services []*domain.Service
	if len(req.ServiceIDs) > 0 {
		services, err = uc.catalog.LoadActive(ctx, req.ServiceIDs)
		if err != nil {
			switch {
			case errors.Is(err, catalog.ErrServiceNotFound):
				uc.logger.Warn("GetAvailableSlots: %v", err)
				return nil, fmt.Errorf("%w: %v", ErrServiceNotFound, err)
			case errors.Is(err, catalog.ErrServiceInactive):
				uc.logger.Warn("GetAvailableSlots: %v", err)
				return nil, fmt.Errorf("%w: %v", ErrServiceInactive, err)
			default:
				uc.logger.Error("GetAvailableSlots: failed to load services: %v", err)
				return nil, fmt.Errorf("%w: failed to load services: %v", ErrInternal, err)
			}
		}
	}
	duration := domain.AppointmentDuration(services, settings.SlotDurationMinutes)

	// 5. Валидация даты с учетом настроек
	if err := validateDate(req.Date, now, settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 6. Получаем рабочие часы на указанную дату
	schedule := settings.WorkingHours.ForDay(req.Date)
	if !schedule.IsOpen {
		uc.logger.Info("GetAvailableSlots: shop is closed on %s", req.Date.Format(domain.DateFormat))
		return &Response{
			Date:            req.Date,
			IsOpen:          false,
			DurationMinutes: duration,
			Slots:           []Slot{},
		}, nil
	}

	// 7. Генерируем временные слоты
	timeSlots, err := generateTimeSlots(
		schedule,
		settings.SlotDurationMinutes,
		duration,
		req.Date,
		now,
		settings.MinBookingNoticeMinutes,
	)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}

	// 8. Получаем активные записи на эту дату
	appointments, err := uc.appointmentRepo.GetActiveByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 9. Вычисляем доступность для каждого слота
	slots := calculateAvailableSpots(timeSlots, duration, appointments, settings.MaxConcurrentAppointments)

	uc.logger.Info("GetAvailableSlots: generated %d slots for date=%s, duration=%d",
		len(slots), req.Date.Format(domain.DateFormat), duration)

	return &Response{
		Date:            req.Date,
		IsOpen:          true,
		DurationMinutes: duration,
		Slots:           slots,
		BookedTimes:     bookedTimes(appointments),
	}, nil
}
