package get_service_form

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TireService/internal/api/handlers"
	"github.com/m04kA/SMC-TireService/internal/service/catalog"
)

const (
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgServiceNotFound    = "услуга не найдена"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/form
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, nil)
}

// HandleValues POST /api/v1/services/{serviceId}/form
// Отрисовывает форму с переданными значениями и ошибками полей
func (h *Handler) HandleValues(w http.ResponseWriter, r *http.Request) {
	var req RenderFormRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services/{id}/form - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	h.render(w, r, req.Values)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, values map[string]json.RawMessage) {
	serviceID, err := handlers.PathInt64(r, "serviceId")
	if err != nil {
		h.logger.Warn("%s /services/{id}/form - Invalid service ID: %v", r.Method, err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	result, err := h.service.RenderForm(r.Context(), serviceID, values)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrServiceNotFound), errors.Is(err, catalog.ErrServiceInactive):
			h.logger.Warn("%s /services/{id}/form - Service not found: service_id=%d", r.Method, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("%s /services/{id}/form - Failed to render form: service_id=%d, error=%v",
				r.Method, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s /services/{id}/form - Form rendered: service_id=%d, fields=%d, valid=%t",
		r.Method, serviceID, len(result.Fields), result.Valid)
	handlers.RespondJSON(w, http.StatusOK, result)
}
