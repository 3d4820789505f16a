package catalog

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-TireService/internal/domain"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	List(ctx context.Context, onlyActive bool) ([]*domain.Service, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	UpdateBasePrice(ctx context.Context, id int64, price *decimal.Decimal) error
}

// RequirementRepository интерфейс репозитория определений требований
type RequirementRepository interface {
	ListByServiceIDs(ctx context.Context, serviceIDs []int64) ([]domain.ServiceRequirement, error)
	GetByID(ctx context.Context, id int64) (*domain.ServiceRequirement, error)
	ListKeys(ctx context.Context, serviceID int64) ([]string, error)
	Create(ctx context.Context, req *domain.ServiceRequirement) (*domain.ServiceRequirement, error)
	Update(ctx context.Context, req *domain.ServiceRequirement) (*domain.ServiceRequirement, error)
	Delete(ctx context.Context, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
