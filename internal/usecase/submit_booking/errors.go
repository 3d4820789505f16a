package submit_booking

import "errors"

var (
	// ErrValidation возвращается, когда поля формы заполнены некорректно (список ошибок в *form.ValidationError)
	ErrValidation = errors.New("submit_booking: validation failed")

	// ErrQuoteRequired возвращается, когда у выбранной услуги не задана цена
	ErrQuoteRequired = errors.New("submit_booking: service price must be quoted before booking")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("submit_booking: service not found")

	// ErrServiceInactive возвращается, когда услуга снята с продажи
	ErrServiceInactive = errors.New("submit_booking: service is inactive")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("submit_booking: invalid appointment date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("submit_booking: date is too far in the future")

	// ErrShopClosed возвращается, когда магазин закрыт в указанную дату
	ErrShopClosed = errors.New("submit_booking: shop is closed on this date")

	// ErrInvalidTimeSlot возвращается, когда время не совпадает с сеткой слотов или выходит за часы работы
	ErrInvalidTimeSlot = errors.New("submit_booking: invalid time slot")

	// ErrTooLateToBook возвращается, когда запись нарушает minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("submit_booking: too late to book this slot")

	// ErrSlotNotAvailable возвращается, когда все места в слоте заняты
	ErrSlotNotAvailable = errors.New("submit_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_booking: internal error")
)
