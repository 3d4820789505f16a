package calculate_price

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/form"
	"github.com/m04kA/SMC-TireService/internal/pricing"
	"github.com/m04kA/SMC-TireService/internal/service/catalog"
)

// UseCase use case предварительного расчёта стоимости по мере заполнения формы
type UseCase struct {
	catalog CatalogService
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(catalog CatalogService, logger Logger) *UseCase {
	return &UseCase{
		catalog: catalog,
		logger:  logger,
	}
}

// Execute считает стоимость выбранных услуг
// Некорректные значения возвращаются списком ошибок и ничего не добавляют к сумме.
// Незаполненные обязательные поля при предварительном расчёте ошибкой не считаются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CalculatePrice: validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем услуги
	services, err := uc.catalog.LoadActive(ctx, req.ServiceIDs)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrServiceNotFound):
			uc.logger.Warn("CalculatePrice: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrServiceNotFound, err)
		case errors.Is(err, catalog.ErrServiceInactive):
			uc.logger.Warn("CalculatePrice: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrServiceInactive, err)
		default:
			uc.logger.Error("CalculatePrice: failed to load services: %v", err)
			return nil, fmt.Errorf("%w: failed to load services: %v", ErrInternal, err)
		}
	}

	// 3. Разбираем значения и считаем
	answers, fields := parseAnswers(services, req)

	return &Response{
		Pricing: pricing.Compute(services, answers),
		Fields:  fields,
	}, nil
}

func parseAnswers(services []*domain.Service, req *Request) (pricing.Answers, []form.FieldError) {
	answers := make(pricing.Answers, len(services))
	var fields []form.FieldError

	for _, service := range services {
		values, errs := form.ValidateAll(service.Requirements, req.Answers[service.ID])
		answers[service.ID] = values

		prefix := "services." + strconv.FormatInt(service.ID, 10)
		for _, fe := range errs {
			if fe.Code == form.CodeRequired {
				continue
			}
			fields = append(fields, fe.WithPrefix(prefix))
		}
	}

	return answers, fields
}
