package delete_requirement

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TireService/internal/api/handlers"
	"github.com/m04kA/SMC-TireService/internal/service/catalog"
)

const (
	msgInvalidRequirementID = "некорректный ID требования"
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

// Handle DELETE /api/v1/admin/requirements/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /admin/requirements/{id} - Invalid requirement ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequirementID)
		return
	}

	if err := h.service.DeleteRequirement(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, catalog.ErrRequirementNotFound):
			h.logger.Warn("DELETE /admin/requirements/{id} - Requirement not found: id=%d", id)
			handlers.RespondNotFound(w, msgRequirementNotFound)

		default:
			h.logger.Error("DELETE /admin/requirements/{id} - Failed to delete requirement: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/requirements/{id} - Requirement deleted: id=%d", id)
	handlers.RespondNoContent(w)
}
