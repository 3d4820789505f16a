package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TireService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetActiveByDate получает записи на дату, которые занимают место
	GetActiveByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
}

// CatalogService интерфейс каталога услуг
type CatalogService interface {
	LoadActive(ctx context.Context, ids []int64) ([]*domain.Service, error)
}

// SettingsService интерфейс настроек магазина
type SettingsService interface {
	Current(ctx context.Context) (*domain.ShopSettings, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
