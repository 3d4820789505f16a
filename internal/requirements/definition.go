package requirements

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-TireService/internal/domain"
)

// ValidateDefinition проверяет определение требования перед сохранением
// Ошибки определения отсекаются на этапе администрирования и не доходят до формы бронирования
func ValidateDefinition(req *domain.ServiceRequirement) error {
	if strings.TrimSpace(req.Label) == "" {
		return fmt.Errorf("%w: label is required", ErrInvalidDefinition)
	}
	if len(req.Label) > domain.MaxRequirementLabelLength {
		return fmt.Errorf("%w: label is longer than %d characters", ErrInvalidDefinition, domain.MaxRequirementLabelLength)
	}
	if !req.Type.IsValid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidDefinition, req.Type)
	}

	if err := validateOptions(req); err != nil {
		return err
	}

	if req.Price != nil {
		if !req.Type.IsBoolean() {
			return fmt.Errorf("%w: flat price is only allowed for checkbox and toggle", ErrInvalidDefinition)
		}
		if req.Price.IsNegative() {
			return fmt.Errorf("%w: price must not be negative", ErrInvalidDefinition)
		}
		if !domain.IsStorablePrice(*req.Price) {
			return fmt.Errorf("%w: price must have at most %d decimal places", ErrInvalidDefinition, domain.PriceDecimals)
		}
	}

	return validateConstraints(req)
}

func validateOptions(req *domain.ServiceRequirement) error {
	if !req.Type.IsChoice() {
		if len(req.Options) > 0 {
			return fmt.Errorf("%w: options are only allowed for select, multiselect and radio", ErrInvalidDefinition)
		}
		return nil
	}

	if len(req.Options) == 0 {
		return fmt.Errorf("%w: %s requires at least one option", ErrInvalidDefinition, req.Type)
	}
	if len(req.Options) > domain.MaxRequirementOptionsPerType {
		return fmt.Errorf("%w: too many options", ErrInvalidDefinition)
	}

	seen := make(map[string]struct{}, len(req.Options))
	for i, opt := range req.Options {
		if strings.TrimSpace(opt.Value) == "" {
			return fmt.Errorf("%w: option #%d has an empty value", ErrInvalidDefinition, i+1)
		}
		if strings.TrimSpace(opt.Label) == "" {
			return fmt.Errorf("%w: option %q has an empty label", ErrInvalidDefinition, opt.Value)
		}
		if _, dup := seen[opt.Value]; dup {
			return fmt.Errorf("%w: duplicate option value %q", ErrInvalidDefinition, opt.Value)
		}
		seen[opt.Value] = struct{}{}

		if opt.Price != nil && opt.Price.IsNegative() {
			return fmt.Errorf("%w: option %q has a negative price", ErrInvalidDefinition, opt.Value)
		}
		if opt.Price != nil && !domain.IsStorablePrice(*opt.Price) {
			return fmt.Errorf("%w: option %q price must have at most %d decimal places", ErrInvalidDefinition, opt.Value, domain.PriceDecimals)
		}
	}
	return nil
}

func validateConstraints(req *domain.ServiceRequirement) error {
	v := req.Validations

	if v.MaxLength != nil && *v.MaxLength <= 0 {
		return fmt.Errorf("%w: max_length must be positive", ErrInvalidDefinition)
	}
	if v.NumberMaxLength != nil && *v.NumberMaxLength <= 0 {
		return fmt.Errorf("%w: number_max_length must be positive", ErrInvalidDefinition)
	}

	var minDate, maxDate time.Time
	var err error
	if v.MinDate != nil {
		if minDate, err = time.Parse(domain.DateFormat, *v.MinDate); err != nil {
			return fmt.Errorf("%w: min_date must be YYYY-MM-DD", ErrInvalidDefinition)
		}
	}
	if v.MaxDate != nil {
		if maxDate, err = time.Parse(domain.DateFormat, *v.MaxDate); err != nil {
			return fmt.Errorf("%w: max_date must be YYYY-MM-DD", ErrInvalidDefinition)
		}
	}
	if v.MinDate != nil && v.MaxDate != nil && minDate.After(maxDate) {
		return fmt.Errorf("%w: min_date is after max_date", ErrInvalidDefinition)
	}

	return nil
}
