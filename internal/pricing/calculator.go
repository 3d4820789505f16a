package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-TireService/internal/domain"
)

// Answers значения требований: serviceID -> key требования -> значение
type Answers map[int64]map[string]domain.RequirementValue

// Addon доплата за выбранную опцию или включённый переключатель
type Addon struct {
	RequirementKey string
	Label          string
	Amount         decimal.Decimal
}

// Line расчёт по одной услуге
type Line struct {
	ServiceID   int64
	Name        string
	BasePrice   *decimal.Decimal
	PriceVaries bool // базовая цена не задана, в сумме считается как 0
	Addons      []Addon
	Total       decimal.Decimal
}

// Result расчёт по всем выбранным услугам
type Result struct {
	Services      []Line
	Total         decimal.Decimal
	QuoteRequired bool // хотя бы у одной услуги цена не задана
}

// Compute считает стоимость выбранных услуг с учётом ответов на требования
// Функция чистая: без I/O, результат не зависит от порядка услуг (кроме порядка строк).
// Округление не выполняется, до 2 знаков значения приводятся только при выводе.
func Compute(services []*domain.Service, answers Answers) Result {
	result := Result{
		Services: make([]Line, 0, len(services)),
		Total:    decimal.Zero,
	}

	for _, service := range services {
		line := ComputeLine(service, answers[service.ID])
		result.Total = result.Total.Add(line.Total)
		if line.PriceVaries {
			result.QuoteRequired = true
		}
		result.Services = append(result.Services, line)
	}

	return result
}

// ComputeLine считает строку одной услуги
func ComputeLine(service *domain.Service, values map[string]domain.RequirementValue) Line {
	line := Line{
		ServiceID:   service.ID,
		Name:        service.Name,
		BasePrice:   service.BasePrice,
		PriceVaries: service.BasePrice == nil,
		Total:       decimal.Zero,
	}
	if service.BasePrice != nil {
		line.Total = *service.BasePrice
	}

	for _, req := range domain.SortRequirements(service.Requirements) {
		value, ok := values[req.Key]
		if !ok || value.IsNull() {
			continue
		}
		for _, addon := range addonsFor(req, value) {
			line.Addons = append(line.Addons, addon)
			line.Total = line.Total.Add(addon.Amount)
		}
	}

	return line
}

func addonsFor(req domain.ServiceRequirement, value domain.RequirementValue) []Addon {
	switch req.Type {
	case domain.RequirementTypeCheckbox, domain.RequirementTypeToggle:
		checked, ok := value.AsBool()
		if !ok || !checked || req.Price == nil {
			return nil
		}
		return []Addon{{RequirementKey: req.Key, Label: req.Label, Amount: *req.Price}}

	case domain.RequirementTypeSelect, domain.RequirementTypeRadio:
		selected, ok := value.AsString()
		if !ok {
			return nil
		}
		opt, found := req.Options.Find(selected)
		if !found || opt.Price == nil {
			return nil
		}
		return []Addon{optionAddon(req, opt)}

	case domain.RequirementTypeMultiselect:
		selected, ok := value.AsStringList()
		if !ok {
			return nil
		}
		picked := make(map[string]struct{}, len(selected))
		for _, s := range selected {
			picked[s] = struct{}{}
		}
		// порядок объявления опций, каждая опция не более одного раза
		var addons []Addon
		for _, opt := range req.Options {
			if _, ok := picked[opt.Value]; !ok || opt.Price == nil {
				continue
			}
			addons = append(addons, optionAddon(req, opt))
		}
		return addons
	}

	return nil
}

func optionAddon(req domain.ServiceRequirement, opt domain.RequirementOption) Addon {
	return Addon{
		RequirementKey: req.Key,
		Label:          req.Label + ": " + opt.Label,
		Amount:         *opt.Price,
	}
}

// Format приводит сумму к виду с двумя знаками после запятой
func Format(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
