package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/form"
	appointmentRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/appointment"
	requirementRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/requirement"
	"github.com/m04kA/SMC-TireService/internal/service/appointments/models"
)

// Service сервис управления записями (back office)
type Service struct {
	appointmentRepo AppointmentRepository
	requirementRepo RequirementRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, requirementRepo RequirementRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		requirementRepo: requirementRepo,
		logger:          logger,
	}
}

// Get возвращает запись с услугами и ответами на требования
func (s *Service) Get(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	appointment, err := s.load(ctx, "Get", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainAppointment(appointment), nil
}

// List возвращает список записей по фильтру
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.AppointmentListResponse, error) {
	if req.Status != nil && !req.Status.IsValid() {
		s.logger.Warn("List: unknown status %q", *req.Status)
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		s.logger.Warn("List: endDate before startDate")
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.List(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentList(appointments), nil
}

// UpdateStatus переводит запись в новый статус по жизненному циклу
// scheduled -> in_progress -> completed, отмена и неявка возможны до завершения
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: appointment=%d, status=%s", id, req.Status)

	if !req.Status.IsValid() {
		s.logger.Warn("UpdateStatus: unknown status %q", req.Status)
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	// 1. Получаем текущую запись
	appointment, err := s.load(ctx, "UpdateStatus", id)
	if err != nil {
		return nil, err
	}
	if appointment.IsDeleted() {
		s.logger.Warn("UpdateStatus: appointment id=%d is deleted", id)
		return nil, ErrAppointmentDeleted
	}

	// 2. Проверяем переход
	if !appointment.Status.CanTransitionTo(req.Status) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for id=%d", appointment.Status, req.Status, id)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appointment.Status, req.Status)
	}

	// 3. Сохраняем
	if err := s.appointmentRepo.UpdateStatus(ctx, id, req.Status); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d disappeared", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	appointment.Status = req.Status
	s.logger.Info("UpdateStatus: appointment id=%d is now %s", id, req.Status)

	return models.FromDomainAppointment(appointment), nil
}

// Delete мягко удаляет запись
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: appointment=%d", id)

	if err := s.appointmentRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Delete: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	return nil
}

// UpdateValue правит ответ на требование в существующей записи
// Значение проверяется по текущему определению; зафиксированная цена записи не пересчитывается.
// Пустое значение удаляет ответ.
func (s *Service) UpdateValue(
	ctx context.Context,
	appointmentID, appointmentServiceID, requirementID int64,
	req *models.UpdateValueRequest,
) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateValue: appointment=%d, appointmentService=%d, requirement=%d",
		appointmentID, appointmentServiceID, requirementID)

	// 1. Получаем запись и услугу в ней
	appointment, err := s.load(ctx, "UpdateValue", appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.IsDeleted() {
		s.logger.Warn("UpdateValue: appointment id=%d is deleted", appointmentID)
		return nil, ErrAppointmentDeleted
	}

	line, ok := appointment.FindService(appointmentServiceID)
	if !ok {
		s.logger.Warn("UpdateValue: service id=%d is not part of appointment id=%d", appointmentServiceID, appointmentID)
		return nil, ErrAppointmentServiceNotFound
	}

	// 2. Получаем определение требования, оно должно относиться к той же услуге
	requirement, err := s.requirementRepo.GetByID(ctx, requirementID)
	if err != nil {
		if errors.Is(err, requirementRepo.ErrRequirementNotFound) {
			s.logger.Warn("UpdateValue: requirement id=%d not found", requirementID)
			return nil, ErrRequirementNotFound
		}
		s.logger.Error("UpdateValue: failed to get requirement id=%d: %v", requirementID, err)
		return nil, fmt.Errorf("%w: UpdateValue - repository error: %v", ErrInternal, err)
	}
	if requirement.ServiceID != line.ServiceID {
		s.logger.Warn("UpdateValue: requirement id=%d belongs to service id=%d, not %d",
			requirementID, requirement.ServiceID, line.ServiceID)
		return nil, ErrRequirementNotFound
	}

	// 3. Разбираем и проверяем значение
	value, fieldErr := form.ParseValue(*requirement, req.Value)
	if fieldErr == nil {
		fieldErr = form.Validate(*requirement, value)
	}
	if fieldErr != nil {
		s.logger.Warn("UpdateValue: invalid value for %s: %s", requirement.Key, fieldErr.Message)
		return nil, &form.ValidationError{Fields: []form.FieldError{*fieldErr}}
	}

	// 4. Сохраняем или удаляем ответ
	if value.IsEmpty(requirement.Type) {
		err = s.appointmentRepo.DeleteValue(ctx, appointmentServiceID, requirementID)
		if err != nil && !errors.Is(err, appointmentRepo.ErrValueNotFound) {
			s.logger.Error("UpdateValue: failed to delete value: %v", err)
			return nil, fmt.Errorf("%w: UpdateValue - repository error: %v", ErrInternal, err)
		}
		line.Values = removeValue(line.Values, requirementID)
	} else {
		saved, err := s.appointmentRepo.UpsertValue(ctx, &domain.ServiceRequirementValue{
			AppointmentServiceID: appointmentServiceID,
			ServiceRequirementID: requirementID,
			RequirementKey:       requirement.Key,
			RequirementLabel:     requirement.Label,
			Value:                value,
		})
		if err != nil {
			s.logger.Error("UpdateValue: failed to save value: %v", err)
			return nil, fmt.Errorf("%w: UpdateValue - repository error: %v", ErrInternal, err)
		}
		line.Values = append(removeValue(line.Values, requirementID), *saved)
	}

	return models.FromDomainAppointment(appointment), nil
}

// Dashboard возвращает количество записей по статусам и выручку за месяц или год
func (s *Service) Dashboard(ctx context.Context, req *models.DashboardRequest) (*models.DashboardResponse, error) {
	if req.Year < 2000 || req.Year > 9999 {
		return nil, fmt.Errorf("%w: year must be between 2000 and 9999", ErrInvalidInput)
	}
	if req.Month < 0 || req.Month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidInput)
	}

	from, to := period(req.Year, req.Month)

	stats, err := s.appointmentRepo.Stats(ctx, from, to)
	if err != nil {
		s.logger.Error("Dashboard: repository error: %v", err)
		return nil, fmt.Errorf("%w: Dashboard - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStats(stats), nil
}

func (s *Service) load(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appointment, nil
}

// period границы периода включительно; month == 0 - весь год
func period(year, month int) (time.Time, time.Time) {
	if month == 0 {
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return from, from.AddDate(1, 0, -1)
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, -1)
}

func removeValue(values []domain.ServiceRequirementValue, requirementID int64) []domain.ServiceRequirementValue {
	out := values[:0:0]
	for _, v := range values {
		if v.ServiceRequirementID != requirementID {
			out = append(out, v)
		}
	}
	return out
}
