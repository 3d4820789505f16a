package get_dashboard

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TireService/internal/api/handlers"
	"github.com/m04kA/SMC-TireService/internal/service/appointments"
)

const (
	msgInvalidParams = "некорректный год или месяц"
)

type Handler struct {
	service      AppointmentService
	timeProvider TimeProvider
	logger       Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service:      service,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Handle GET /api/v1/admin/dashboard
// Query params: year, month (опционально, month=0 - весь год)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceReq, err := ToServiceRequest(r.URL.Query(), h.timeProvider.Now())
	if err != nil {
		h.logger.Warn("GET /admin/dashboard - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.Dashboard(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /admin/dashboard - Invalid period: year=%d, month=%d", serviceReq.Year, serviceReq.Month)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /admin/dashboard - Failed to get stats: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
