package appointment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TireService/pkg/psqlbuilder"
)

// loadServices подгружает услуги записей (и ответы на требования, если withValues)
func (r *Repository) loadServices(ctx context.Context, appointments []*domain.Appointment, withValues bool) error {
	if len(appointments) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	byID := make(map[int64]*domain.Appointment, len(appointments))
	ids := make([]int64, 0, len(appointments))
	for _, a := range appointments {
		byID[a.ID] = a
		ids = append(ids, a.ID)
	}

	query, args, err := psqlbuilder.Select("id", "service_appointment_id", "service_id", "service_name", "price", "created_at").
		From("appointment_services").
		Where(squirrel.Expr("service_appointment_id = ANY(?)", pq.Array(ids))).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var serviceIDs []int64
	for rows.Next() {
		var s domain.AppointmentService
		var createdAt sql.NullTime
		if err := rows.Scan(&s.ID, &s.AppointmentID, &s.ServiceID, &s.ServiceName, &s.Price, &createdAt); err != nil {
			return fmt.Errorf("%w: loadServices - scan row: %v", ErrScanRow, err)
		}
		s.CreatedAt = createdAt.Time

		a := byID[s.AppointmentID]
		a.Services = append(a.Services, s)
		serviceIDs = append(serviceIDs, s.ID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadServices - rows error: %v", ErrScanRow, err)
	}

	if !withValues || len(serviceIDs) == 0 {
		return nil
	}

	values, err := r.listValues(ctx, serviceIDs)
	if err != nil {
		return err
	}

	for _, a := range appointments {
		for i := range a.Services {
			a.Services[i].Values = values[a.Services[i].ID]
		}
	}

	return nil
}

// listValues возвращает ответы на требования, сгруппированные по appointment_service_id
func (r *Repository) listValues(ctx context.Context, appointmentServiceIDs []int64) (map[int64][]domain.ServiceRequirementValue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"v.id",
		"v.appointment_service_id",
		"v.service_requirement_id",
		"v.requirement_key",
		"v.requirement_label",
		"v.value",
		"v.created_at",
		"v.updated_at",
	).
		From("service_requirement_values v").
		LeftJoin("service_requirements r ON r.id = v.service_requirement_id").
		Where(squirrel.Expr("v.appointment_service_id = ANY(?)", pq.Array(appointmentServiceIDs))).
		OrderBy("v.appointment_service_id ASC, r.sort_order ASC NULLS LAST, v.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listValues - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listValues - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	values := make(map[int64][]domain.ServiceRequirementValue)
	for rows.Next() {
		var v domain.ServiceRequirementValue
		var requirementID sql.NullInt64
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&v.ID,
			&v.AppointmentServiceID,
			&requirementID,
			&v.RequirementKey,
			&v.RequirementLabel,
			&v.Value,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: listValues - scan row: %v", ErrScanRow, err)
		}

		// 0 - определение требования удалено, ответ хранится по ключу
		v.ServiceRequirementID = requirementID.Int64
		v.CreatedAt = createdAt.Time
		v.UpdatedAt = updatedAt.Time

		values[v.AppointmentServiceID] = append(values[v.AppointmentServiceID], v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listValues - rows error: %v", ErrScanRow, err)
	}

	return values, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var customerID, vehicleID sql.NullInt64
	var mileage sql.NullInt64
	var finalPrice decimal.NullDecimal
	var deletedAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&customerID,
		&vehicleID,
		&a.AppointmentDate,
		&a.AppointmentTime,
		&a.DurationMinutes,
		&a.Customer.Name,
		&a.Customer.Phone,
		&a.Customer.Email,
		&a.Vehicle.Year,
		&a.Vehicle.Make,
		&a.Vehicle.Model,
		&a.Vehicle.Trim,
		&a.Vehicle.TireSize,
		&mileage,
		&finalPrice,
		&a.Status,
		&a.Notes,
		&deletedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if customerID.Valid {
		a.Customer.ID = &customerID.Int64
	}
	if vehicleID.Valid {
		a.Vehicle.ID = &vehicleID.Int64
	}
	if mileage.Valid {
		m := int(mileage.Int64)
		a.Vehicle.Mileage = &m
	}
	if finalPrice.Valid {
		price := finalPrice.Decimal
		a.FinalPrice = &price
	}
	if deletedAt.Valid {
		a.DeletedAt = &deletedAt.Time
	}
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
