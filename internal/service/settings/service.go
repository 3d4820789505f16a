package settings

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/m04kA/SMC-TireService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-TireService/internal/service/settings/models"
	"github.com/m04kA/SMC-TireService/pkg/types"
)

// Service сервис настроек магазина
type Service struct {
	settingsRepo SettingsRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Current возвращает действующие настройки
// Если настройки еще не сохранены, возвращаются настройки по умолчанию
func (s *Service) Current(ctx context.Context) (*domain.ShopSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Warn("Current: settings not found, using defaults")
			return domain.DefaultShopSettings(), nil
		}
		s.logger.Error("Current: repository error: %v", err)
		return nil, fmt.Errorf("%w: Current - repository error: %v", ErrInternal, err)
	}
	return settings, nil
}

// GetWorkingHours возвращает часы работы (публичный метод)
func (s *Service) GetWorkingHours(ctx context.Context) (*models.WorkingHoursResponse, error) {
	settings, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	return &models.WorkingHoursResponse{WorkingHours: settings.WorkingHours}, nil
}

// Get возвращает все настройки (для администратора)
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	settings, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSettings(settings), nil
}

// Update обновляет настройки магазина
// Применяет только переданные поля поверх текущих значений
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating shop settings")

	// 1. Получаем текущие настройки
	settings, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	// 2. Применяем изменения и валидируем результат
	req.ApplyTo(settings)
	if err := validateSettings(settings); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	// 3. Сохраняем
	saved, err := s.settingsRepo.Save(ctx, settings)
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated shop settings")
	return models.FromDomainSettings(saved), nil
}

// validateSettings валидирует параметры настроек
func validateSettings(s *domain.ShopSettings) error {
	if s.SlotDurationMinutes < domain.MinSlotDurationMinutes || s.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slotDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if s.MaxConcurrentAppointments < domain.MinConcurrentAppointments || s.MaxConcurrentAppointments > domain.MaxConcurrentAppointments {
		return fmt.Errorf("%w: maxConcurrentAppointments must be between %d and %d",
			ErrInvalidInput, domain.MinConcurrentAppointments, domain.MaxConcurrentAppointments)
	}

	if s.AdvanceBookingDays < 0 || s.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between 0 and %d", ErrInvalidInput, domain.MaxAdvanceBookingDays)
	}

	if s.MinBookingNoticeMinutes < 0 || s.MinBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: minBookingNoticeMinutes must be between 0 and %d", ErrInvalidInput, domain.MaxBookingNoticeMinutes)
	}

	for day, schedule := range s.WorkingHours.Days() {
		if err := validateDay(day, schedule); err != nil {
			return err
		}
	}

	if s.ShopEmail != nil && *s.ShopEmail != "" {
		if _, err := mail.ParseAddress(*s.ShopEmail); err != nil {
			return fmt.Errorf("%w: shopEmail is not a valid email address", ErrInvalidInput)
		}
	}

	return nil
}

func validateDay(day string, schedule domain.DaySchedule) error {
	if !schedule.IsOpen {
		return nil
	}
	if schedule.OpenTime == nil || schedule.CloseTime == nil {
		return fmt.Errorf("%w: %s: openTime and closeTime are required for an open day", ErrInvalidInput, day)
	}

	open, err := types.NewTimeStringFromString(*schedule.OpenTime)
	if err != nil {
		return fmt.Errorf("%w: %s: invalid openTime: %v", ErrInvalidInput, day, err)
	}
	closing, err := types.NewTimeStringFromString(*schedule.CloseTime)
	if err != nil {
		return fmt.Errorf("%w: %s: invalid closeTime: %v", ErrInvalidInput, day, err)
	}
	if !open.IsBefore(closing) {
		return fmt.Errorf("%w: %s: openTime must be before closeTime", ErrInvalidInput, day)
	}

	return nil
}
