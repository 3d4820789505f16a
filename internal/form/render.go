package form

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-TireService/internal/domain"
)

// Control элемент ввода, который UI рисует для поля
type Control string

const (
	ControlTextInput   Control = "input:text"
	ControlTextarea    Control = "textarea"
	ControlNumberInput Control = "input:number"
	ControlSelect      Control = "select"
	ControlMultiSelect Control = "select:multiple"
	ControlRadioGroup  Control = "radio-group"
	ControlCheckbox    Control = "input:checkbox"
	ControlSwitch      Control = "switch"
	ControlDateInput   Control = "input:date"
)

var controls = map[domain.RequirementType]Control{
	domain.RequirementTypeText:        ControlTextInput,
	domain.RequirementTypeTextarea:    ControlTextarea,
	domain.RequirementTypeNumber:      ControlNumberInput,
	domain.RequirementTypeSelect:      ControlSelect,
	domain.RequirementTypeMultiselect: ControlMultiSelect,
	domain.RequirementTypeRadio:       ControlRadioGroup,
	domain.RequirementTypeCheckbox:    ControlCheckbox,
	domain.RequirementTypeToggle:      ControlSwitch,
	domain.RequirementTypeDate:        ControlDateInput,
}

// ControlFor возвращает элемент ввода для типа требования
func ControlFor(t domain.RequirementType) Control {
	if c, ok := controls[t]; ok {
		return c
	}
	return ControlTextInput
}

// Constraints ограничения, которые UI передаёт в атрибуты элемента
type Constraints struct {
	MaxLength       *int    `json:"maxLength,omitempty"`
	NumberMaxLength *int    `json:"numberMaxLength,omitempty"`
	MinDate         *string `json:"minDate,omitempty"`
	MaxDate         *string `json:"maxDate,omitempty"`
}

// Option вариант выбора поля
type Option struct {
	Label string           `json:"label"`
	Value string           `json:"value"`
	Price *decimal.Decimal `json:"price,omitempty"`
}

// Field одно отрисованное поле формы
type Field struct {
	RequirementID int64
	Key           string
	Label         string
	Type          domain.RequirementType
	Control       Control
	Options       []Option
	Price         *decimal.Decimal // цена checkbox/toggle, показывается как доплата
	Required      bool
	Placeholder   *string
	HelpText      *string
	Constraints   Constraints
	Value         json.RawMessage // значение как пришло от клиента
	Error         *FieldError
}

// Form форма услуги
type Form struct {
	Fields []Field
}

// Valid возвращает true, если ни одно поле не содержит ошибку
func (f Form) Valid() bool {
	for _, field := range f.Fields {
		if field.Error != nil {
			return false
		}
	}
	return true
}

// Errors возвращает ошибки полей в порядке отрисовки
func (f Form) Errors() []FieldError {
	var errs []FieldError
	for _, field := range f.Fields {
		if field.Error != nil {
			errs = append(errs, *field.Error)
		}
	}
	return errs
}

// Render строит форму услуги по определениям требований и текущим значениям
// Поле с некорректным значением отрисовывается вместе со своей ошибкой.
// Если values == nil, форма строится без проверки (первичная отрисовка).
func Render(reqs []domain.ServiceRequirement, values map[string]json.RawMessage) Form {
	sorted := domain.SortRequirements(reqs)
	fields := make([]Field, 0, len(sorted))

	for _, req := range sorted {
		field := Field{
			RequirementID: req.ID,
			Key:           req.Key,
			Label:         req.Label,
			Type:          req.Type,
			Control:       ControlFor(req.Type),
			Options:       renderOptions(req),
			Required:      req.IsRequired,
			Placeholder:   req.Placeholder,
			HelpText:      req.HelpText,
			Constraints:   renderConstraints(req),
		}
		if req.Type.IsBoolean() {
			field.Price = req.Price
		}

		if values != nil {
			raw := values[req.Key]
			field.Value = raw

			value, fieldErr := ParseValue(req, raw)
			if fieldErr == nil {
				fieldErr = Validate(req, value)
			}
			field.Error = fieldErr
		}

		fields = append(fields, field)
	}

	return Form{Fields: fields}
}

func renderOptions(req domain.ServiceRequirement) []Option {
	if !req.Type.IsChoice() {
		return nil
	}
	options := make([]Option, len(req.Options))
	for i, opt := range req.Options {
		options[i] = Option{Label: opt.Label, Value: opt.Value, Price: opt.Price}
	}
	return options
}

func renderConstraints(req domain.ServiceRequirement) Constraints {
	v := req.Validations
	var c Constraints

	switch {
	case req.Type.IsTextual():
		c.MaxLength = v.MaxLength
	case req.Type == domain.RequirementTypeNumber:
		c.NumberMaxLength = v.NumberMaxLength
	case req.Type == domain.RequirementTypeDate:
		c.MinDate = v.MinDate
		c.MaxDate = v.MaxDate
	}

	return c
}
