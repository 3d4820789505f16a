package requirement

import "errors"

var (
	// ErrRequirementNotFound возвращается, когда требование не найдено
	ErrRequirementNotFound = errors.New("requirement.repository: requirement not found")

	// ErrDuplicateKey возвращается при нарушении уникальности (service_id, key)
	ErrDuplicateKey = errors.New("requirement.repository: duplicate requirement key")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("requirement.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("requirement.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("requirement.repository: failed to scan row")
)
