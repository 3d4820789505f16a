package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointments: appointment not found")

	// ErrAppointmentServiceNotFound возвращается, когда услуга не входит в запись
	ErrAppointmentServiceNotFound = errors.New("appointments: appointment service not found")

	// ErrRequirementNotFound возвращается, когда требование не найдено или относится к другой услуге
	ErrRequirementNotFound = errors.New("appointments: requirement not found")

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = errors.New("appointments: status transition not allowed")

	// ErrAppointmentDeleted возвращается при попытке изменить удалённую запись
	ErrAppointmentDeleted = errors.New("appointments: appointment is deleted")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("appointments: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments: internal error")
)
