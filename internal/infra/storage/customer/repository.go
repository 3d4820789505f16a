package customer

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TireService/pkg/psqlbuilder"
)

// Repository репозиторий клиентов и их автомобилей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert находит клиента по телефону или создает нового
// Имя и email обновляются последними введёнными значениями (email - только если передан)
func (r *Repository) Upsert(ctx context.Context, customer *domain.Customer) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customers").
		Columns("name", "phone", "email").
		Values(customer.Name, customer.Phone, customer.Email).
		Suffix(`ON CONFLICT (phone) DO UPDATE SET
			name = EXCLUDED.name,
			email = COALESCE(EXCLUDED.email, customers.email),
			updated_at = NOW()
		RETURNING id`).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var id int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return id, nil
}

// CreateVehicle сохраняет автомобиль клиента
func (r *Repository) CreateVehicle(ctx context.Context, customerID int64, vehicle *domain.Vehicle) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("vehicles").
		Columns("customer_id", "year", "make", "model", "trim", "tire_size", "mileage").
		Values(customerID, vehicle.Year, vehicle.Make, vehicle.Model, vehicle.Trim, vehicle.TireSize, vehicle.Mileage).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateVehicle - build insert query: %v", ErrBuildQuery, err)
	}

	var id int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("%w: CreateVehicle - execute insert: %v", ErrExecQuery, err)
	}

	return id, nil
}
