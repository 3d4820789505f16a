package get_dashboard

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TireService/internal/service/appointments/models"
)

type AppointmentService interface {
	Dashboard(ctx context.Context, req *models.DashboardRequest) (*models.DashboardResponse, error)
}

type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальное время
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
