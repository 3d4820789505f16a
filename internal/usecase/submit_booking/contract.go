package submit_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/integrations/notifier"
)

// CatalogService интерфейс каталога услуг
type CatalogService interface {
	LoadActive(ctx context.Context, ids []int64) ([]*domain.Service, error)
}

// SettingsService интерфейс настроек магазина
type SettingsService interface {
	Current(ctx context.Context) (*domain.ShopSettings, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetActiveByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	CreateService(ctx context.Context, service *domain.AppointmentService) (*domain.AppointmentService, error)
	CreateValue(ctx context.Context, value *domain.ServiceRequirementValue) (*domain.ServiceRequirementValue, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	Upsert(ctx context.Context, customer *domain.Customer) (int64, error)
	CreateVehicle(ctx context.Context, customerID int64, vehicle *domain.Vehicle) (int64, error)
}

// Notifier интерфейс отправки уведомлений о записи
type Notifier interface {
	Notify(notice notifier.BookingNotice) error
}

// Metrics интерфейс метрик бронирования
type Metrics interface {
	IncBooking(result string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
