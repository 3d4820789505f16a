package form

import (
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-TireService/internal/domain"
)

// Validate проверяет значение против определения требования
// Обязательное поле с пустым значением даёт ошибку required; необязательные поля на пустоту не проверяются.
// false у обязательного checkbox/toggle не считается пустым значением.
func Validate(req domain.ServiceRequirement, value domain.RequirementValue) *FieldError {
	if value.IsEmpty(req.Type) {
		if req.IsRequired {
			return newFieldError(req.Key, CodeRequired, "%s is required", req.Label)
		}
		return nil
	}

	if !value.MatchesType(req.Type) {
		return typeMismatch(req)
	}

	switch req.Type {
	case domain.RequirementTypeText, domain.RequirementTypeTextarea:
		return validateText(req, value)
	case domain.RequirementTypeNumber:
		return validateNumber(req, value)
	case domain.RequirementTypeSelect, domain.RequirementTypeRadio:
		return validateSingleChoice(req, value)
	case domain.RequirementTypeMultiselect:
		return validateMultiChoice(req, value)
	case domain.RequirementTypeDate:
		return validateDate(req, value)
	default:
		// checkbox/toggle: любое булево значение допустимо
		return nil
	}
}

// ValidateAll разбирает и проверяет значения всех требований услуги
// Поля независимы: ошибка одного поля не мешает проверке остальных.
// Возвращает только валидные непустые значения; ключи без определения игнорируются.
func ValidateAll(reqs []domain.ServiceRequirement, raw map[string]json.RawMessage) (map[string]domain.RequirementValue, []FieldError) {
	values := make(map[string]domain.RequirementValue)
	var errs []FieldError

	for _, req := range domain.SortRequirements(reqs) {
		value, fieldErr := ParseValue(req, raw[req.Key])
		if fieldErr == nil {
			fieldErr = Validate(req, value)
		}
		if fieldErr != nil {
			errs = append(errs, *fieldErr)
			continue
		}
		if !value.IsEmpty(req.Type) {
			values[req.Key] = value
		}
	}

	return values, errs
}

func validateText(req domain.ServiceRequirement, value domain.RequirementValue) *FieldError {
	if req.Validations.MaxLength == nil {
		return nil
	}

	s, _ := value.AsString()
	if maxLength := *req.Validations.MaxLength; utf8.RuneCountInString(s) > maxLength {
		return newFieldError(req.Key, CodeTooLong, "%s must be at most %d characters", req.Label, maxLength)
	}
	return nil
}

// validateNumber ограничение number_max_length - количество цифр, а не величина числа
func validateNumber(req domain.ServiceRequirement, value domain.RequirementValue) *FieldError {
	if req.Validations.NumberMaxLength == nil {
		return nil
	}
	n, _ := value.AsNumber()

	if digits := countDigits(n.String()); digits > *req.Validations.NumberMaxLength {
		return newFieldError(req.Key, CodeTooManyDigits, "%s must have at most %d digits", req.Label, *req.Validations.NumberMaxLength)
	}
	return nil
}

func countDigits(s string) int {
	count := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			count++
		}
	}
	return count
}

func validateSingleChoice(req domain.ServiceRequirement, value domain.RequirementValue) *FieldError {
	s, _ := value.AsString()
	if _, ok := req.Options.Find(s); !ok {
		return newFieldError(req.Key, CodeInvalidOption, "%s: %q is not one of the available options", req.Label, s)
	}
	return nil
}

func validateMultiChoice(req domain.ServiceRequirement, value domain.RequirementValue) *FieldError {
	selected, _ := value.AsStringList()

	seen := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		if _, ok := req.Options.Find(s); !ok {
			return newFieldError(req.Key, CodeInvalidOption, "%s: %q is not one of the available options", req.Label, s)
		}
		if _, dup := seen[s]; dup {
			return newFieldError(req.Key, CodeDuplicateOption, "%s: %q is selected more than once", req.Label, s)
		}
		seen[s] = struct{}{}
	}
	return nil
}

func validateDate(req domain.ServiceRequirement, value domain.RequirementValue) *FieldError {
	s, _ := value.AsString()

	date, err := time.Parse(domain.DateFormat, strings.TrimSpace(s))
	if err != nil {
		return newFieldError(req.Key, CodeInvalidDate, "%s must be a date in YYYY-MM-DD format", req.Label)
	}

	if req.Validations.MinDate != nil {
		if minDate, err := time.Parse(domain.DateFormat, *req.Validations.MinDate); err == nil && date.Before(minDate) {
			return newFieldError(req.Key, CodeDateBeforeMin, "%s must be on or after %s", req.Label, *req.Validations.MinDate)
		}
	}
	if req.Validations.MaxDate != nil {
		if maxDate, err := time.Parse(domain.DateFormat, *req.Validations.MaxDate); err == nil && date.After(maxDate) {
			return newFieldError(req.Key, CodeDateAfterMax, "%s must be on or before %s", req.Label, *req.Validations.MaxDate)
		}
	}
	return nil
}
