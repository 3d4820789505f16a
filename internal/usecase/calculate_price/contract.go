package calculate_price

import (
	"context"

	"github.com/m04kA/SMC-TireService/internal/domain"
)

// CatalogService интерфейс каталога услуг
type CatalogService interface {
	LoadActive(ctx context.Context, ids []int64) ([]*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
