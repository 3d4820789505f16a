package requirement

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TireService/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL unique_violation
const uniqueViolation = "23505"

var requirementColumns = []string{
	"id",
	"service_id",
	"label",
	"key",
	"type",
	"options",
	"price",
	"is_required",
	"validations",
	"placeholder",
	"help_text",
	"sort_order",
	"created_at",
	"updated_at",
}

// Repository репозиторий определений требований услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория требований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByServiceIDs возвращает требования указанных услуг в порядке отображения
func (r *Repository) ListByServiceIDs(ctx context.Context, serviceIDs []int64) ([]domain.ServiceRequirement, error) {
	if len(serviceIDs) == 0 {
		return []domain.ServiceRequirement{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requirementColumns...).
		From("service_requirements").
		Where(squirrel.Expr("service_id = ANY(?)", pq.Array(serviceIDs))).
		OrderBy("service_id ASC, sort_order ASC, id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByServiceIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByServiceIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reqs := make([]domain.ServiceRequirement, 0)
	for rows.Next() {
		req, err := scanRequirement(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByServiceIDs - scan row: %v", ErrScanRow, err)
		}
		reqs = append(reqs, *req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByServiceIDs - rows error: %v", ErrScanRow, err)
	}

	return reqs, nil
}

// GetByID получает требование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ServiceRequirement, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requirementColumns...).
		From("service_requirements").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	req, err := scanRequirement(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequirementNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan requirement: %v", ErrScanRow, err)
	}

	return req, nil
}

// ListKeys возвращает ключи требований услуги
func (r *Repository) ListKeys(ctx context.Context, serviceID int64) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("key").
		From("service_requirements").
		Where(squirrel.Eq{"service_id": serviceID}).
		OrderBy("key ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListKeys - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListKeys - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("%w: ListKeys - scan key: %v", ErrScanRow, err)
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListKeys - rows error: %v", ErrScanRow, err)
	}

	return keys, nil
}

// Create создает требование; ключ должен быть уже сформирован
func (r *Repository) Create(ctx context.Context, req *domain.ServiceRequirement) (*domain.ServiceRequirement, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("service_requirements").
		Columns(
			"service_id",
			"label",
			"key",
			"type",
			"options",
			"price",
			"is_required",
			"validations",
			"placeholder",
			"help_text",
			"sort_order",
		).
		Values(
			req.ServiceID,
			req.Label,
			req.Key,
			req.Type,
			req.Options,
			nullDecimal(req.Price),
			req.IsRequired,
			req.Validations,
			req.Placeholder,
			req.HelpText,
			req.SortOrder,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&req.ID, &createdAt, &updatedAt)
	if isUniqueViolation(err) {
		return nil, ErrDuplicateKey
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return req, nil
}

// Update обновляет определение требования
// Ключ и услуга не изменяются
func (r *Repository) Update(ctx context.Context, req *domain.ServiceRequirement) (*domain.ServiceRequirement, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("service_requirements").
		Set("label", req.Label).
		Set("type", req.Type).
		Set("options", req.Options).
		Set("price", nullDecimal(req.Price)).
		Set("is_required", req.IsRequired).
		Set("validations", req.Validations).
		Set("placeholder", req.Placeholder).
		Set("help_text", req.HelpText).
		Set("sort_order", req.SortOrder).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": req.ID}).
		Suffix("RETURNING service_id, key, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&req.ServiceID, &req.Key, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequirementNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return req, nil
}

// Delete удаляет требование
// Сохранённые ответы клиентов остаются (service_requirement_id -> NULL)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("service_requirements").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRequirementNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRequirement(row rowScanner) (*domain.ServiceRequirement, error) {
	var req domain.ServiceRequirement
	var price decimal.NullDecimal
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&req.ID,
		&req.ServiceID,
		&req.Label,
		&req.Key,
		&req.Type,
		&req.Options,
		&price,
		&req.IsRequired,
		&req.Validations,
		&req.Placeholder,
		&req.HelpText,
		&req.SortOrder,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if price.Valid {
		p := price.Decimal
		req.Price = &p
	}
	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return &req, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
