package create_requirement

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TireService/internal/api/handlers"
	"github.com/m04kA/SMC-TireService/internal/service/catalog"
	"github.com/m04kA/SMC-TireService/internal/service/catalog/models"
)

const (
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDefinition  = "некорректное определение требования"
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

// Handle POST /api/v1/admin/services/{serviceId}/requirements
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := handlers.PathInt64(r, "serviceId")
	if err != nil {
		h.logger.Warn("POST /admin/services/{id}/requirements - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var req models.RequirementRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/services/{id}/requirements - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateRequirement(r.Context(), serviceID, &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidDefinition):
			h.logger.Warn("POST /admin/services/{id}/requirements - Invalid definition: service_id=%d, error=%v", serviceID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidDefinition+": "+handlers.ErrorDetail(err, catalog.ErrInvalidDefinition))

		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("POST /admin/services/{id}/requirements - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("POST /admin/services/{id}/requirements - Failed to create requirement: service_id=%d, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/services/{id}/requirements - Requirement created: service_id=%d, id=%d, key=%s",
		serviceID, result.ID, result.Key)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
