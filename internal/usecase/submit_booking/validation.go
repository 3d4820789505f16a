package submit_booking

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/form"
	"github.com/m04kA/SMC-TireService/internal/pricing"
	"github.com/m04kA/SMC-TireService/pkg/types"
)

const (
	minVehicleYear = 1900
	minPhoneDigits = 7
	maxPhoneDigits = 15
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}

	if len(req.ServiceIDs) > domain.MaxServicesPerAppointment {
		return fmt.Errorf("%w: at most %d services per appointment", ErrInvalidInput, domain.MaxServicesPerAppointment)
	}

	seen := make(map[int64]struct{}, len(req.ServiceIDs))
	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: service id=%d selected twice", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateContact проверяет блоки клиента и автомобиля
// Поля из requiredFields услуг становятся обязательными.
func validateContact(req *Request, services []*domain.Service, now time.Time) []form.FieldError {
	var errs []form.FieldError

	required := func(field string) bool {
		for _, s := range services {
			if s.RequiresField(field) {
				return true
			}
		}
		return false
	}
	missing := func(field, label string) {
		errs = append(errs, form.NewFieldError(field, form.CodeRequired, label+" is required"))
	}

	// Клиент
	if strings.TrimSpace(req.Customer.Name) == "" {
		missing("customer.name", "Name")
	}

	if strings.TrimSpace(req.Customer.Phone) == "" {
		missing("customer.phone", "Phone")
	} else if digits := countDigits(req.Customer.Phone); digits < minPhoneDigits || digits > maxPhoneDigits {
		errs = append(errs, form.NewFieldError("customer.phone", form.CodeInvalidValue, "Phone number is not valid"))
	}

	if isBlank(req.Customer.Email) {
		if required(domain.FieldCustomerEmail) {
			missing(domain.FieldCustomerEmail, "Email")
		}
	} else if _, err := mail.ParseAddress(*req.Customer.Email); err != nil {
		errs = append(errs, form.NewFieldError(domain.FieldCustomerEmail, form.CodeInvalidValue, "Email is not valid"))
	}

	// Автомобиль
	if req.Vehicle.Year < minVehicleYear || req.Vehicle.Year > now.Year()+1 {
		errs = append(errs, form.NewFieldError("vehicle.year", form.CodeInvalidValue,
			"Year must be between "+strconv.Itoa(minVehicleYear)+" and "+strconv.Itoa(now.Year()+1)))
	}
	if strings.TrimSpace(req.Vehicle.Make) == "" {
		missing("vehicle.make", "Make")
	}
	if strings.TrimSpace(req.Vehicle.Model) == "" {
		missing("vehicle.model", "Model")
	}
	if isBlank(req.Vehicle.Trim) && required(domain.FieldVehicleTrim) {
		missing(domain.FieldVehicleTrim, "Trim")
	}
	if isBlank(req.Vehicle.TireSize) && required(domain.FieldVehicleTireSize) {
		missing(domain.FieldVehicleTireSize, "Tire size")
	}
	if req.Vehicle.Mileage == nil {
		if required(domain.FieldVehicleMileage) {
			missing(domain.FieldVehicleMileage, "Mileage")
		}
	} else if *req.Vehicle.Mileage < 0 {
		errs = append(errs, form.NewFieldError(domain.FieldVehicleMileage, form.CodeInvalidValue, "Mileage cannot be negative"))
	}

	// Комментарий
	if isBlank(req.Notes) {
		if required(domain.FieldNotes) {
			missing(domain.FieldNotes, "Notes")
		}
	} else if utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		errs = append(errs, form.NewFieldError(domain.FieldNotes, form.CodeTooLong,
			"Notes must be at most "+strconv.Itoa(domain.MaxNotesLength)+" characters"))
	}

	return errs
}

// validateAnswers проверяет ответы на требования всех услуг
// Ошибки собираются по всем услугам, путь поля: services.<id>.<key>
func validateAnswers(services []*domain.Service, answers map[int64]map[string]json.RawMessage) (pricing.Answers, []form.FieldError) {
	values := make(pricing.Answers, len(services))
	var errs []form.FieldError

	for _, service := range services {
		serviceValues, fieldErrs := form.ValidateAll(service.Requirements, answers[service.ID])
		values[service.ID] = serviceValues

		prefix := "services." + strconv.FormatInt(service.ID, 10)
		for _, fe := range fieldErrs {
			errs = append(errs, fe.WithPrefix(prefix))
		}
	}

	return values, errs
}

// validateDate проверяет, что дата подходит для записи
func validateDate(appointmentDate time.Time, now time.Time, advanceBookingDays int) error {
	// Проверяем, что дата не в прошлом
	if isDateInPast(appointmentDate, now) {
		return ErrInvalidDate
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, advanceBookingDays)

	dateOnly := time.Date(appointmentDate.Year(), appointmentDate.Month(), appointmentDate.Day(), 0, 0, 0, 0, time.UTC)

	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateTimeSlot проверяет, что время начала лежит на сетке слотов и запись укладывается в часы работы
func validateTimeSlot(schedule domain.DaySchedule, startTime types.TimeString, duration, slotDuration int) error {
	if schedule.OpenTime == nil || schedule.CloseTime == nil {
		return fmt.Errorf("%w: working hours are not set", ErrInvalidTimeSlot)
	}

	openTime, err := types.NewTimeStringFromString(*schedule.OpenTime)
	if err != nil {
		return fmt.Errorf("%w: invalid open time: %v", ErrInternal, err)
	}
	closeTime, err := types.NewTimeStringFromString(*schedule.CloseTime)
	if err != nil {
		return fmt.Errorf("%w: invalid close time: %v", ErrInternal, err)
	}

	if startTime.IsBefore(openTime) {
		return fmt.Errorf("%w: shop opens at %s", ErrInvalidTimeSlot, openTime)
	}

	openMinutes, _ := openTime.Minutes()
	startMinutes, err := startTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	if (startMinutes-openMinutes)%slotDuration != 0 {
		return fmt.Errorf("%w: start time must align to %d minute slots", ErrInvalidTimeSlot, slotDuration)
	}

	endTime, err := startTime.AddMinutes(duration)
	if err != nil || endTime.IsAfter(closeTime) {
		return fmt.Errorf("%w: appointment must end by %s", ErrInvalidTimeSlot, closeTime)
	}

	return nil
}

// validateBookingTime проверяет, что запись не нарушает minBookingNoticeMinutes
func validateBookingTime(
	appointmentDate time.Time,
	startTime types.TimeString,
	now time.Time,
	minBookingNoticeMinutes int,
) error {
	// Если дата записи не сегодня, проверка не нужна
	if !isSameDay(appointmentDate, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minBookingNoticeMinutes)
	if err != nil {
		// окно уведомления переходит на следующий день
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minBookingNoticeMinutes)
	}

	if startTime.IsBefore(minAllowedTime) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minBookingNoticeMinutes)
	}

	return nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
