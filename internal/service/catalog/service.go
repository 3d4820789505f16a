package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/form"
	catalogRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/catalog"
	requirementRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/requirement"
	"github.com/m04kA/SMC-TireService/internal/requirements"
	"github.com/m04kA/SMC-TireService/internal/service/catalog/models"
)

// Service сервис каталога услуг и определений требований
type Service struct {
	serviceRepo     ServiceRepository
	requirementRepo RequirementRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	serviceRepo ServiceRepository,
	requirementRepo RequirementRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		serviceRepo:     serviceRepo,
		requirementRepo: requirementRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// ListActive возвращает активные услуги с определениями требований (публичный метод)
func (s *Service) ListActive(ctx context.Context) (*models.ServiceListResponse, error) {
	services, err := s.serviceRepo.List(ctx, true)
	if err != nil {
		s.logger.Error("ListActive: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}

	if err := s.attachRequirements(ctx, services); err != nil {
		return nil, err
	}

	return models.FromDomainServiceList(services), nil
}

// GetService возвращает активную услугу с определениями требований (публичный метод)
func (s *Service) GetService(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	services, err := s.LoadActive(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	return models.FromDomainService(services[0]), nil
}

// LoadActive загружает услуги с требованиями в порядке переданных ID
// Отсутствующая услуга - ErrServiceNotFound, снятая с продажи - ErrServiceInactive
func (s *Service) LoadActive(ctx context.Context, ids []int64) ([]*domain.Service, error) {
	found, err := s.serviceRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("LoadActive: repository error for ids=%v: %v", ids, err)
		return nil, fmt.Errorf("%w: LoadActive - repository error: %v", ErrInternal, err)
	}

	byID := make(map[int64]*domain.Service, len(found))
	for _, svc := range found {
		byID[svc.ID] = svc
	}

	services := make([]*domain.Service, 0, len(ids))
	for _, id := range ids {
		svc, ok := byID[id]
		if !ok {
			s.logger.Warn("LoadActive: service id=%d not found", id)
			return nil, fmt.Errorf("%w: id=%d", ErrServiceNotFound, id)
		}
		if !svc.IsActive {
			s.logger.Warn("LoadActive: service id=%d is inactive", id)
			return nil, fmt.Errorf("%w: id=%d", ErrServiceInactive, id)
		}
		services = append(services, svc)
	}

	if err := s.attachRequirements(ctx, found); err != nil {
		return nil, err
	}

	return services, nil
}

// RenderForm отрисовывает форму услуги
// values == nil - первичная отрисовка без проверки значений
func (s *Service) RenderForm(ctx context.Context, serviceID int64, values map[string]json.RawMessage) (*models.FormResponse, error) {
	services, err := s.LoadActive(ctx, []int64{serviceID})
	if err != nil {
		return nil, err
	}
	service := services[0]

	return models.FromForm(service, form.Render(service.Requirements, values)), nil
}

// CreateRequirement создает определение требования
// Ключ формируется один раз: slug услуги + slug названия, при совпадении добавляется суффикс _2, _3, ...
func (s *Service) CreateRequirement(ctx context.Context, serviceID int64, req *models.RequirementRequest) (*models.RequirementResponse, error) {
	s.logger.Info("CreateRequirement: service=%d, label=%q, type=%s", serviceID, req.Label, req.Type)

	requirement := req.ToDomainRequirement(serviceID)
	requirement.Label = strings.TrimSpace(requirement.Label)

	// 1. Проверяем определение
	if err := requirements.ValidateDefinition(requirement); err != nil {
		s.logger.Warn("CreateRequirement: invalid definition: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}

	// 2. В транзакции блокируем услугу, формируем ключ и сохраняем
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		service, err := s.serviceRepo.GetByID(txCtx, serviceID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				s.logger.Warn("CreateRequirement: service id=%d not found", serviceID)
				return ErrServiceNotFound
			}
			s.logger.Error("CreateRequirement: failed to get service id=%d: %v", serviceID, err)
			return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}

		existingKeys, err := s.requirementRepo.ListKeys(txCtx, serviceID)
		if err != nil {
			s.logger.Error("CreateRequirement: failed to list keys of service id=%d: %v", serviceID, err)
			return fmt.Errorf("%w: failed to list keys: %v", ErrInternal, err)
		}

		key, err := requirements.FinalizeKey(requirement.Label, service.Slug, existingKeys)
		if err != nil {
			s.logger.Warn("CreateRequirement: cannot derive key: %v", err)
			return fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
		}
		requirement.Key = key

		if _, err := s.requirementRepo.Create(txCtx, requirement); err != nil {
			if errors.Is(err, requirementRepo.ErrDuplicateKey) {
				s.logger.Warn("CreateRequirement: key %q already taken", key)
				return fmt.Errorf("%w: duplicate key %q", ErrInvalidDefinition, key)
			}
			s.logger.Error("CreateRequirement: repository error: %v", err)
			return fmt.Errorf("%w: CreateRequirement - repository error: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("CreateRequirement: created requirement id=%d key=%s", requirement.ID, requirement.Key)
	return models.FromDomainRequirement(requirement), nil
}

// UpdateRequirement обновляет определение требования
// Ключ не меняется, даже если изменилось название
func (s *Service) UpdateRequirement(ctx context.Context, id int64, req *models.RequirementRequest) (*models.RequirementResponse, error) {
	s.logger.Info("UpdateRequirement: requirement=%d", id)

	// 1. Получаем текущее определение
	existing, err := s.requirementRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, requirementRepo.ErrRequirementNotFound) {
			s.logger.Warn("UpdateRequirement: requirement id=%d not found", id)
			return nil, ErrRequirementNotFound
		}
		s.logger.Error("UpdateRequirement: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateRequirement - repository error: %v", ErrInternal, err)
	}

	// 2. Собираем новое определение, сохраняя ключ
	requirement := req.ToDomainRequirement(existing.ServiceID)
	requirement.ID = existing.ID
	requirement.Key = existing.Key
	requirement.Label = strings.TrimSpace(requirement.Label)

	if err := requirements.ValidateDefinition(requirement); err != nil {
		s.logger.Warn("UpdateRequirement: invalid definition: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}

	// 3. Сохраняем
	updated, err := s.requirementRepo.Update(ctx, requirement)
	if err != nil {
		if errors.Is(err, requirementRepo.ErrRequirementNotFound) {
			return nil, ErrRequirementNotFound
		}
		s.logger.Error("UpdateRequirement: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateRequirement - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateRequirement: updated requirement id=%d key=%s", updated.ID, updated.Key)
	return models.FromDomainRequirement(updated), nil
}

// DeleteRequirement удаляет определение требования
func (s *Service) DeleteRequirement(ctx context.Context, id int64) error {
	s.logger.Info("DeleteRequirement: requirement=%d", id)

	if err := s.requirementRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, requirementRepo.ErrRequirementNotFound) {
			s.logger.Warn("DeleteRequirement: requirement id=%d not found", id)
			return ErrRequirementNotFound
		}
		s.logger.Error("DeleteRequirement: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteRequirement - repository error: %v", ErrInternal, err)
	}

	return nil
}

// UpdateBasePrice меняет базовую цену услуги
// Цены уже созданных записей зафиксированы и не пересчитываются
func (s *Service) UpdateBasePrice(ctx context.Context, serviceID int64, req *models.UpdatePriceRequest) (*models.ServiceResponse, error) {
	if req.BasePrice != nil && req.BasePrice.IsNegative() {
		return nil, fmt.Errorf("%w: basePrice must not be negative", ErrInvalidInput)
	}
	if req.BasePrice != nil && !domain.IsStorablePrice(*req.BasePrice) {
		return nil, fmt.Errorf("%w: basePrice must have at most %d decimal places", ErrInvalidInput, domain.PriceDecimals)
	}

	price := "quote"
	if req.BasePrice != nil {
		price = req.BasePrice.StringFixed(2)
	}
	s.logger.Info("UpdateBasePrice: service=%d, price=%s", serviceID, price)

	if err := s.serviceRepo.UpdateBasePrice(ctx, serviceID, req.BasePrice); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("UpdateBasePrice: service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("UpdateBasePrice: repository error for id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: UpdateBasePrice - repository error: %v", ErrInternal, err)
	}

	service, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		s.logger.Error("UpdateBasePrice: failed to reload service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: UpdateBasePrice - reload: %v", ErrInternal, err)
	}

	if err := s.attachRequirements(ctx, []*domain.Service{service}); err != nil {
		return nil, err
	}

	return models.FromDomainService(service), nil
}

// attachRequirements подгружает определения требований к услугам
func (s *Service) attachRequirements(ctx context.Context, services []*domain.Service) error {
	if len(services) == 0 {
		return nil
	}

	ids := make([]int64, len(services))
	byID := make(map[int64]*domain.Service, len(services))
	for i, svc := range services {
		ids[i] = svc.ID
		byID[svc.ID] = svc
		svc.Requirements = nil
	}

	reqs, err := s.requirementRepo.ListByServiceIDs(ctx, ids)
	if err != nil {
		s.logger.Error("attachRequirements: repository error: %v", err)
		return fmt.Errorf("%w: failed to load requirements: %v", ErrInternal, err)
	}

	for _, req := range reqs {
		if svc, ok := byID[req.ServiceID]; ok {
			svc.Requirements = append(svc.Requirements, req)
		}
	}

	return nil
}
