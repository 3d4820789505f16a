package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TireService/pkg/psqlbuilder"
)

// settingsID единственная строка таблицы shop_settings
const settingsID = 1

// Repository репозиторий настроек магазина
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает настройки магазина
func (r *Repository) Get(ctx context.Context) (*domain.ShopSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"working_hours",
		"slot_duration_minutes",
		"max_concurrent_appointments",
		"advance_booking_days",
		"min_booking_notice_minutes",
		"shop_email",
		"shop_phone",
		"updated_at",
	).
		From("shop_settings").
		Where(squirrel.Eq{"id": settingsID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.ShopSettings
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.WorkingHours,
		&s.SlotDurationMinutes,
		&s.MaxConcurrentAppointments,
		&s.AdvanceBookingDays,
		&s.MinBookingNoticeMinutes,
		&s.ShopEmail,
		&s.ShopPhone,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// Save создает или обновляет настройки магазина
func (r *Repository) Save(ctx context.Context, s *domain.ShopSettings) (*domain.ShopSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("shop_settings").
		Columns(
			"id",
			"working_hours",
			"slot_duration_minutes",
			"max_concurrent_appointments",
			"advance_booking_days",
			"min_booking_notice_minutes",
			"shop_email",
			"shop_phone",
		).
		Values(
			settingsID,
			s.WorkingHours,
			s.SlotDurationMinutes,
			s.MaxConcurrentAppointments,
			s.AdvanceBookingDays,
			s.MinBookingNoticeMinutes,
			s.ShopEmail,
			s.ShopPhone,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			working_hours = EXCLUDED.working_hours,
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			max_concurrent_appointments = EXCLUDED.max_concurrent_appointments,
			advance_booking_days = EXCLUDED.advance_booking_days,
			min_booking_notice_minutes = EXCLUDED.min_booking_notice_minutes,
			shop_email = EXCLUDED.shop_email,
			shop_phone = EXCLUDED.shop_phone,
			updated_at = NOW()
		RETURNING updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Save - build insert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Save - execute insert: %v", ErrExecQuery, err)
	}

	s.UpdatedAt = updatedAt.Time

	return s, nil
}
