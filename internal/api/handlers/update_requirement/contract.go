package update_requirement

import (
	"context"

	"github.com/m04kA/SMC-TireService/internal/service/catalog/models"
)

type CatalogService interface {
	UpdateRequirement(ctx context.Context, id int64, req *models.RequirementRequest) (*models.RequirementResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
