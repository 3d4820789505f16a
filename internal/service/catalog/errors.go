package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("catalog: service not found")

	// ErrServiceInactive возвращается, когда услуга снята с продажи
	ErrServiceInactive = errors.New("catalog: service is inactive")

	// ErrRequirementNotFound возвращается, когда требование не найдено
	ErrRequirementNotFound = errors.New("catalog: requirement not found")

	// ErrInvalidDefinition возвращается при некорректном определении требования
	ErrInvalidDefinition = errors.New("catalog: invalid requirement definition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("catalog: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog: internal error")
)
