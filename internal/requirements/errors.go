package requirements

import "errors"

var (
	// ErrInvalidDefinition возвращается, когда определение требования некорректно
	ErrInvalidDefinition = errors.New("requirements: invalid definition")

	// ErrEmptyKey возвращается, когда из label и slug услуги не удалось получить ключ
	ErrEmptyKey = errors.New("requirements: cannot derive key")
)
