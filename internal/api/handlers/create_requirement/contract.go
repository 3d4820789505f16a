package create_requirement

import (
	"context"

	"github.com/m04kA/SMC-TireService/internal/service/catalog/models"
)

type CatalogService interface {
	CreateRequirement(ctx context.Context, serviceID int64, req *models.RequirementRequest) (*models.RequirementResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
