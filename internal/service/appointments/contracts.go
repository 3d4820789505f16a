package appointments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TireService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	SoftDelete(ctx context.Context, id int64) error
	UpsertValue(ctx context.Context, value *domain.ServiceRequirementValue) (*domain.ServiceRequirementValue, error)
	DeleteValue(ctx context.Context, appointmentServiceID, requirementID int64) error
	Stats(ctx context.Context, from, to time.Time) (*domain.DashboardStats, error)
}

// RequirementRepository интерфейс репозитория определений требований
type RequirementRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceRequirement, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
