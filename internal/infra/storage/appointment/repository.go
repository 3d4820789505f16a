package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TireService/pkg/psqlbuilder"
)

var appointmentColumns = []string{
	"id",
	"customer_id",
	"vehicle_id",
	"appointment_date",
	"appointment_time",
	"duration_minutes",
	"customer_name",
	"customer_phone",
	"customer_email",
	"vehicle_year",
	"vehicle_make",
	"vehicle_model",
	"vehicle_trim",
	"vehicle_tire_size",
	"vehicle_mileage",
	"final_price",
	"status",
	"notes",
	"deleted_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей на обслуживание
// Работает с service_appointments, appointment_services и service_requirement_values
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись (без услуг)
// Контакты клиента и автомобиль копируются в строку записи
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("service_appointments").
		Columns(
			"customer_id",
			"vehicle_id",
			"appointment_date",
			"appointment_time",
			"duration_minutes",
			"customer_name",
			"customer_phone",
			"customer_email",
			"vehicle_year",
			"vehicle_make",
			"vehicle_model",
			"vehicle_trim",
			"vehicle_tire_size",
			"vehicle_mileage",
			"final_price",
			"status",
			"notes",
		).
		Values(
			appointment.Customer.ID,
			appointment.Vehicle.ID,
			appointment.AppointmentDate,
			appointment.AppointmentTime,
			appointment.DurationMinutes,
			appointment.Customer.Name,
			appointment.Customer.Phone,
			appointment.Customer.Email,
			appointment.Vehicle.Year,
			appointment.Vehicle.Make,
			appointment.Vehicle.Model,
			appointment.Vehicle.Trim,
			appointment.Vehicle.TireSize,
			appointment.Vehicle.Mileage,
			nullDecimal(appointment.FinalPrice),
			appointment.Status,
			appointment.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&appointment.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return appointment, nil
}

// CreateService добавляет услугу к записи с зафиксированной ценой
func (r *Repository) CreateService(ctx context.Context, service *domain.AppointmentService) (*domain.AppointmentService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointment_services").
		Columns("service_appointment_id", "service_id", "service_name", "price").
		Values(service.AppointmentID, service.ServiceID, service.ServiceName, service.Price).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateService - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&service.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateService - execute insert: %v", ErrExecQuery, err)
	}

	service.CreatedAt = createdAt.Time

	return service, nil
}

// CreateValue сохраняет ответ на требование услуги записи
func (r *Repository) CreateValue(ctx context.Context, value *domain.ServiceRequirementValue) (*domain.ServiceRequirementValue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("service_requirement_values").
		Columns("appointment_service_id", "service_requirement_id", "requirement_key", "requirement_label", "value").
		Values(value.AppointmentServiceID, value.ServiceRequirementID, value.RequirementKey, value.RequirementLabel, value.Value).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateValue - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&value.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateValue - execute insert: %v", ErrExecQuery, err)
	}

	value.CreatedAt = createdAt.Time
	value.UpdatedAt = updatedAt.Time

	return value, nil
}

// UpsertValue создает или заменяет ответ на требование (правка администратором)
func (r *Repository) UpsertValue(ctx context.Context, value *domain.ServiceRequirementValue) (*domain.ServiceRequirementValue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("service_requirement_values").
		Columns("appointment_service_id", "service_requirement_id", "requirement_key", "requirement_label", "value").
		Values(value.AppointmentServiceID, value.ServiceRequirementID, value.RequirementKey, value.RequirementLabel, value.Value).
		Suffix(`ON CONFLICT (appointment_service_id, service_requirement_id) DO UPDATE SET
			value = EXCLUDED.value,
			requirement_label = EXCLUDED.requirement_label,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertValue - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&value.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertValue - execute insert: %v", ErrExecQuery, err)
	}

	value.CreatedAt = createdAt.Time
	value.UpdatedAt = updatedAt.Time

	return value, nil
}

// DeleteValue удаляет ответ на требование
func (r *Repository) DeleteValue(ctx context.Context, appointmentServiceID, requirementID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("service_requirement_values").
		Where(squirrel.Eq{
			"appointment_service_id": appointmentServiceID,
			"service_requirement_id": requirementID,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteValue - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteValue - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteValue - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrValueNotFound
	}

	return nil
}

// GetByID получает запись вместе с услугами и ответами на требования
// Мягко удалённые записи тоже возвращаются
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("service_appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appointment, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	if err := r.loadServices(ctx, []*domain.Appointment{appointment}, true); err != nil {
		return nil, err
	}

	return appointment, nil
}

// List получает записи по фильтру (с услугами, без ответов на требования)
//
// Примеры использования:
//
// 1. Все неудалённые записи:
//    filter := domain.AppointmentsFilter{}
//
// 2. Записи за октябрь, только выполненные:
//    status := domain.StatusCompleted
//    filter := domain.AppointmentsFilter{StartDate: &from, EndDate: &to, Status: &status}
func (r *Repository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("service_appointments").
		OrderBy("appointment_date DESC, appointment_time DESC, id DESC")

	if !filter.IncludeDeleted {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"deleted_at": nil})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"appointment_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"appointment_date": *filter.EndDate})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(filter.Offset)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	appointments, err := r.queryAppointments(ctx, executor, "List", query, args)
	if err != nil {
		return nil, err
	}

	if err := r.loadServices(ctx, appointments, false); err != nil {
		return nil, err
	}

	return appointments, nil
}

// GetActiveByDate получает записи на дату, которые занимают место (для проверки вместимости)
// Внутри транзакции строки блокируются FOR UPDATE
func (r *Repository) GetActiveByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	inactive := make([]string, len(domain.InactiveStatuses))
	for i, s := range domain.InactiveStatuses {
		inactive[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("service_appointments").
		Where(squirrel.Eq{"appointment_date": date.Format(domain.DateFormat)}).
		Where(squirrel.Eq{"deleted_at": nil}).
		Where(squirrel.NotEq{"status": inactive}).
		OrderBy("appointment_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDate - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryAppointments(ctx, executor, "GetActiveByDate", query, args)
}

// UpdateStatus обновляет статус неудалённой записи
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("service_appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateStatus", query, args)
}

// SoftDelete помечает запись удалённой, история сохраняется
func (r *Repository) SoftDelete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("service_appointments").
		Set("deleted_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "SoftDelete", query, args)
}

// Stats считает записи по статусам и выручку за период [from, to]
// Выручка - сумма зафиксированных цен услуг выполненных записей
func (r *Repository) Stats(ctx context.Context, from, to time.Time) (*domain.DashboardStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	stats := &domain.DashboardStats{
		From:           from,
		To:             to,
		CountsByStatus: make(map[domain.AppointmentStatus]int),
		Revenue:        decimal.Zero,
	}

	query, args, err := psqlbuilder.Select("status", "COUNT(*)").
		From("service_appointments").
		Where(squirrel.Eq{"deleted_at": nil}).
		Where(squirrel.GtOrEq{"appointment_date": from.Format(domain.DateFormat)}).
		Where(squirrel.LtOrEq{"appointment_date": to.Format(domain.DateFormat)}).
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - build count query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - execute count query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var status domain.AppointmentStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%w: Stats - scan count: %v", ErrScanRow, err)
		}
		stats.CountsByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Stats - rows error: %v", ErrScanRow, err)
	}

	query, args, err = psqlbuilder.Select("COALESCE(SUM(s.price), 0)").
		From("appointment_services s").
		Join("service_appointments a ON a.id = s.service_appointment_id").
		Where(squirrel.Eq{"a.deleted_at": nil, "a.status": domain.StatusCompleted}).
		Where(squirrel.GtOrEq{"a.appointment_date": from.Format(domain.DateFormat)}).
		Where(squirrel.LtOrEq{"a.appointment_date": to.Format(domain.DateFormat)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - build revenue query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&stats.Revenue); err != nil {
		return nil, fmt.Errorf("%w: Stats - scan revenue: %v", ErrScanRow, err)
	}

	return stats, nil
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

func (r *Repository) queryAppointments(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]*domain.Appointment, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return appointments, nil
}
