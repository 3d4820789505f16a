package form

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-TireService/internal/domain"
)

// ParseValue переводит сырое JSON значение из запроса в RequirementValue согласно типу требования
// Несовпадение формы значения с типом возвращается как ошибка поля, а не паника/ошибка формы
func ParseValue(req domain.ServiceRequirement, raw json.RawMessage) (domain.RequirementValue, *FieldError) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return domain.NullValue(), nil
	}

	var value domain.RequirementValue
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return domain.NullValue(), typeMismatch(req)
	}

	// number принимает и числовую строку, пустая строка считается пустым значением
	if req.Type == domain.RequirementTypeNumber {
		if s, ok := value.AsString(); ok {
			s = strings.TrimSpace(s)
			if s == "" {
				return domain.NullValue(), nil
			}
			n, err := decimal.NewFromString(s)
			if err != nil {
				return domain.NullValue(), typeMismatch(req)
			}
			return domain.NumberValue(n), nil
		}
	}

	if !value.MatchesType(req.Type) {
		return domain.NullValue(), typeMismatch(req)
	}

	return value, nil
}

func typeMismatch(req domain.ServiceRequirement) *FieldError {
	return newFieldError(req.Key, CodeTypeMismatch, "%s has an invalid value for a %s field", req.Label, req.Type)
}
