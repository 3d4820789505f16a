package update_requirement_value

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TireService/internal/api/handlers"
	"github.com/m04kA/SMC-TireService/internal/form"
	"github.com/m04kA/SMC-TireService/internal/service/appointments"
	"github.com/m04kA/SMC-TireService/internal/service/appointments/models"
)

const route = "PUT /admin/appointments/{id}/services/{appointmentServiceId}/values/{requirementId}"

const (
	msgInvalidID                  = "некорректный ID в пути запроса"
	msgInvalidRequestBody         = "некорректное тело запроса"
	msgValidationFailed           = "некорректное значение"
	msgAppointmentNotFound        = "запись не найдена"
	msgAppointmentServiceNotFound = "услуга записи не найдена"
	msgRequirementNotFound        = "требование не найдено"
	msgAppointmentDeleted         = "запись удалена"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/appointments/{id}/services/{appointmentServiceId}/values/{requirementId}
// Body: {"value": ...}; null или пустое значение удаляет ответ
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("%s - %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}
	appointmentServiceID, err := handlers.PathInt64(r, "appointmentServiceId")
	if err != nil {
		h.logger.Warn("%s - %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}
	requirementID, err := handlers.PathInt64(r, "requirementId")
	if err != nil {
		h.logger.Warn("%s - %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req models.UpdateValueRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateValue(r.Context(), appointmentID, appointmentServiceID, requirementID, &req)
	if err != nil {
		var validationErr *form.ValidationError

		switch {
		case errors.As(err, &validationErr):
			h.logger.Warn("%s - Invalid value: appointment_id=%d, requirement_id=%d", route, appointmentID, requirementID)
			handlers.RespondValidationError(w, msgValidationFailed, validationErr.Fields)

		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("%s - Appointment not found: id=%d", route, appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointments.ErrAppointmentServiceNotFound):
			h.logger.Warn("%s - Appointment service not found: id=%d", route, appointmentServiceID)
			handlers.RespondNotFound(w, msgAppointmentServiceNotFound)

		case errors.Is(err, appointments.ErrRequirementNotFound):
			h.logger.Warn("%s - Requirement not found: id=%d", route, requirementID)
			handlers.RespondNotFound(w, msgRequirementNotFound)

		case errors.Is(err, appointments.ErrAppointmentDeleted):
			h.logger.Warn("%s - Appointment deleted: id=%d", route, appointmentID)
			handlers.RespondConflict(w, msgAppointmentDeleted)

		default:
			h.logger.Error("%s - Failed to update value: appointment_id=%d, error=%v", route, appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Value updated: appointment_id=%d, requirement_id=%d", route, appointmentID, requirementID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
