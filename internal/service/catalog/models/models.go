package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/form"
	"github.com/m04kA/SMC-TireService/internal/pricing"
)

// Request модели

// OptionRequest вариант выбора в запросе
type OptionRequest struct {
	Label string           `json:"label"`
	Value string           `json:"value"`
	Price *decimal.Decimal `json:"price,omitempty"`
}

// RequirementRequest запрос на создание или изменение требования
// Ключ не передается: он формируется один раз при создании
type RequirementRequest struct {
	Label       string                        `json:"label"`
	Type        domain.RequirementType        `json:"type"`
	Options     []OptionRequest               `json:"options,omitempty"`
	Price       *decimal.Decimal              `json:"price,omitempty"`
	IsRequired  bool                          `json:"isRequired"`
	Validations domain.RequirementValidations `json:"validations"`
	Placeholder *string                       `json:"placeholder,omitempty"`
	HelpText    *string                       `json:"helpText,omitempty"`
	SortOrder   int                           `json:"sortOrder"`
}

// UpdatePriceRequest запрос на изменение базовой цены услуги
// BasePrice == nil означает "цена по запросу"
type UpdatePriceRequest struct {
	BasePrice *decimal.Decimal `json:"basePrice"`
}

// Response модели

// OptionResponse вариант выбора
type OptionResponse struct {
	Label string  `json:"label"`
	Value string  `json:"value"`
	Price *string `json:"price,omitempty"`
}

// RequirementResponse определение требования
type RequirementResponse struct {
	ID          int64                         `json:"id"`
	ServiceID   int64                         `json:"serviceId"`
	Label       string                        `json:"label"`
	Key         string                        `json:"key"`
	Type        domain.RequirementType        `json:"type"`
	Options     []OptionResponse              `json:"options"`
	Price       *string                       `json:"price,omitempty"`
	IsRequired  bool                          `json:"isRequired"`
	Validations domain.RequirementValidations `json:"validations"`
	Placeholder *string                       `json:"placeholder,omitempty"`
	HelpText    *string                       `json:"helpText,omitempty"`
	SortOrder   int                           `json:"sortOrder"`
}

// ServiceResponse услуга с определениями требований
type ServiceResponse struct {
	ID                int64                 `json:"id"`
	Slug              string                `json:"slug"`
	Name              string                `json:"name"`
	BasePrice         *string               `json:"basePrice"`
	PriceVaries       bool                  `json:"priceVaries"`
	EstimatedDuration int                   `json:"estimatedDuration"`
	IsActive          bool                  `json:"isActive"`
	Details           json.RawMessage       `json:"details,omitempty"`
	RequiredFields    []string              `json:"requiredFields"`
	Requirements      []RequirementResponse `json:"requirements"`
}

// ServiceListResponse список услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FieldResponse отрисованное поле формы
type FieldResponse struct {
	RequirementID int64                  `json:"requirementId"`
	Key           string                 `json:"key"`
	Label         string                 `json:"label"`
	Type          domain.RequirementType `json:"type"`
	Control       form.Control           `json:"control"`
	Options       []OptionResponse       `json:"options,omitempty"`
	Price         *string                `json:"price,omitempty"`
	Required      bool                   `json:"required"`
	Placeholder   *string                `json:"placeholder,omitempty"`
	HelpText      *string                `json:"helpText,omitempty"`
	Constraints   form.Constraints       `json:"constraints"`
	Value         json.RawMessage        `json:"value,omitempty"`
	Error         *form.FieldError       `json:"error,omitempty"`
}

// FormResponse форма услуги
type FormResponse struct {
	ServiceID int64           `json:"serviceId"`
	Name      string          `json:"name"`
	Fields    []FieldResponse `json:"fields"`
	Valid     bool            `json:"valid"`
}

// Методы конвертации

// Money форматирует сумму с двумя знаками после запятой, nil остается nil
func Money(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := pricing.Format(*d)
	return &s
}

// FromDomainRequirement конвертирует domain модель в DTO
func FromDomainRequirement(r *domain.ServiceRequirement) *RequirementResponse {
	if r == nil {
		return nil
	}

	options := make([]OptionResponse, len(r.Options))
	for i, opt := range r.Options {
		options[i] = OptionResponse{Label: opt.Label, Value: opt.Value, Price: Money(opt.Price)}
	}

	return &RequirementResponse{
		ID:          r.ID,
		ServiceID:   r.ServiceID,
		Label:       r.Label,
		Key:         r.Key,
		Type:        r.Type,
		Options:     options,
		Price:       Money(r.Price),
		IsRequired:  r.IsRequired,
		Validations: r.Validations,
		Placeholder: r.Placeholder,
		HelpText:    r.HelpText,
		SortOrder:   r.SortOrder,
	}
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}

	reqs := domain.SortRequirements(s.Requirements)
	requirements := make([]RequirementResponse, len(reqs))
	for i := range reqs {
		requirements[i] = *FromDomainRequirement(&reqs[i])
	}

	requiredFields := []string(s.RequiredFields)
	if requiredFields == nil {
		requiredFields = []string{}
	}

	return &ServiceResponse{
		ID:                s.ID,
		Slug:              s.Slug,
		Name:              s.Name,
		BasePrice:         Money(s.BasePrice),
		PriceVaries:       s.RequiresQuote(),
		EstimatedDuration: s.EstimatedDuration,
		IsActive:          s.IsActive,
		Details:           s.Details,
		RequiredFields:    requiredFields,
		Requirements:      requirements,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, 0, len(services)),
	}

	for _, s := range services {
		if serviceResp := FromDomainService(s); serviceResp != nil {
			resp.Services = append(resp.Services, *serviceResp)
		}
	}

	return resp
}

// FromForm конвертирует отрисованную форму в DTO
func FromForm(service *domain.Service, f form.Form) *FormResponse {
	fields := make([]FieldResponse, len(f.Fields))
	for i, field := range f.Fields {
		var options []OptionResponse
		for _, opt := range field.Options {
			options = append(options, OptionResponse{Label: opt.Label, Value: opt.Value, Price: Money(opt.Price)})
		}

		fields[i] = FieldResponse{
			RequirementID: field.RequirementID,
			Key:           field.Key,
			Label:         field.Label,
			Type:          field.Type,
			Control:       field.Control,
			Options:       options,
			Price:         Money(field.Price),
			Required:      field.Required,
			Placeholder:   field.Placeholder,
			HelpText:      field.HelpText,
			Constraints:   field.Constraints,
			Value:         field.Value,
			Error:         field.Error,
		}
	}

	return &FormResponse{
		ServiceID: service.ID,
		Name:      service.Name,
		Fields:    fields,
		Valid:     f.Valid(),
	}
}

// ToDomainRequirement конвертирует запрос в domain модель
func (r *RequirementRequest) ToDomainRequirement(serviceID int64) *domain.ServiceRequirement {
	var options domain.RequirementOptions
	if len(r.Options) > 0 {
		options = make(domain.RequirementOptions, len(r.Options))
		for i, opt := range r.Options {
			options[i] = domain.RequirementOption{Label: opt.Label, Value: opt.Value, Price: opt.Price}
		}
	}

	return &domain.ServiceRequirement{
		ServiceID:   serviceID,
		Label:       r.Label,
		Type:        r.Type,
		Options:     options,
		Price:       r.Price,
		IsRequired:  r.IsRequired,
		Validations: r.Validations,
		Placeholder: r.Placeholder,
		HelpText:    r.HelpText,
		SortOrder:   r.SortOrder,
	}
}
