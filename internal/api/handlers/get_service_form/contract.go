package get_service_form

import (
	"context"
	"encoding/json"

	"github.com/m04kA/SMC-TireService/internal/service/catalog/models"
)

type CatalogService interface {
	RenderForm(ctx context.Context, serviceID int64, values map[string]json.RawMessage) (*models.FormResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
