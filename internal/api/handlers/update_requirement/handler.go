package update_requirement

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TireService/internal/api/handlers"
	"github.com/m04kA/SMC-TireService/internal/service/catalog"
	"github.com/m04kA/SMC-TireService/internal/service/catalog/models"
)

const (
	msgInvalidRequirementID = "некорректный ID требования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDefinition    = "некорректное определение требования"
	msgRequirementNotFound  = "требование не найдено"
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

// Handle PUT /api/v1/admin/requirements/{id}
// Ключ требования не меняется, ранее сохраненные ответы остаются читаемыми
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("PUT /admin/requirements/{id} - Invalid requirement ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequirementID)
		return
	}

	var req models.RequirementRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/requirements/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateRequirement(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidDefinition):
			h.logger.Warn("PUT /admin/requirements/{id} - Invalid definition: id=%d, error=%v", id, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity,
				msgInvalidDefinition+": "+handlers.ErrorDetail(err, catalog.ErrInvalidDefinition))

		case errors.Is(err, catalog.ErrRequirementNotFound):
			h.logger.Warn("PUT /admin/requirements/{id} - Requirement not found: id=%d", id)
			handlers.RespondNotFound(w, msgRequirementNotFound)

		default:
			h.logger.Error("PUT /admin/requirements/{id} - Failed to update requirement: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/requirements/{id} - Requirement updated: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
