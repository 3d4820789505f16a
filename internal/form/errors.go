package form

import (
	"fmt"
	"strings"
)

// Коды ошибок полей
const (
	CodeRequired        = "required"
	CodeTypeMismatch    = "type_mismatch"
	CodeInvalidOption   = "invalid_option"
	CodeDuplicateOption = "duplicate_option"
	CodeTooLong         = "too_long"
	CodeTooManyDigits   = "too_many_digits"
	CodeInvalidDate     = "invalid_date"
	CodeDateBeforeMin   = "date_before_min"
	CodeDateAfterMax    = "date_after_max"
	CodeInvalidValue    = "invalid_value"
)

// FieldError ошибка валидации одного поля
// Field - путь поля в запросе (для формы услуги совпадает с Key)
type FieldError struct {
	Field   string `json:"field"`
	Key     string `json:"key"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newFieldError(key, code, format string, args ...interface{}) *FieldError {
	return &FieldError{
		Field:   key,
		Key:     key,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewFieldError ошибка поля, не привязанного к требованию услуги (например, customer.phone)
func NewFieldError(field, code, message string) FieldError {
	return FieldError{
		Field:   field,
		Key:     field,
		Code:    code,
		Message: message,
	}
}

// WithPrefix возвращает копию ошибки с путём prefix.key
func (e FieldError) WithPrefix(prefix string) FieldError {
	e.Field = prefix + "." + e.Key
	return e
}

// ValidationError набор ошибок полей, возвращается целиком
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
