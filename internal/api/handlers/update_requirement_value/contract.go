package update_requirement_value

import (
	"context"

	"github.com/m04kA/SMC-TireService/internal/service/appointments/models"
)

type AppointmentService interface {
	UpdateValue(
		ctx context.Context,
		appointmentID, appointmentServiceID, requirementID int64,
		req *models.UpdateValueRequest,
	) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
