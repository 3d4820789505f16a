package get_available_slots

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/pkg/types"
)

// generateTimeSlots генерирует времена начала записей на день
// Слоты идут от открытия с шагом slotDuration; запись длительностью duration должна закончиться до закрытия.
// Для сегодняшнего дня отбрасываются слоты раньше now + minBookingNoticeMinutes.
func generateTimeSlots(
	schedule domain.DaySchedule,
	slotDuration int,
	duration int,
	requestDate time.Time,
	now time.Time,
	minBookingNoticeMinutes int,
) ([]types.TimeString, error) {
	if isDateInPast(requestDate, now) {
		return []types.TimeString{}, nil
	}

	if !schedule.IsOpen || schedule.OpenTime == nil || schedule.CloseTime == nil {
		return []types.TimeString{}, nil
	}

	openTime, err := types.NewTimeStringFromString(*schedule.OpenTime)
	if err != nil {
		return nil, err
	}

	closeTime, err := types.NewTimeStringFromString(*schedule.CloseTime)
	if err != nil {
		return nil, err
	}

	// Шаг 1: все слоты от открытия, в которые запись успевает закончиться
	allSlots := make([]types.TimeString, 0)
	currentSlot := openTime

	for currentSlot.IsBefore(closeTime) {
		end, err := currentSlot.AddMinutes(duration)
		if err != nil || end.IsAfter(closeTime) {
			break
		}

		allSlots = append(allSlots, currentSlot)
		currentSlot, err = currentSlot.AddMinutes(slotDuration)
		if err != nil {
			break
		}
	}

	// Шаг 2: не сегодня - возвращаем все слоты
	if !isSameDay(requestDate, now) {
		return allSlots, nil
	}

	// Шаг 3: сегодня - учитываем минимальное время до записи
	minAllowedTime, err := types.NewTimeString(now).AddMinutes(minBookingNoticeMinutes)
	if err != nil {
		// окно уведомления уходит за полночь
		return []types.TimeString{}, nil
	}

	availableSlots := make([]types.TimeString, 0)
	for _, slot := range allSlots {
		if !slot.IsBefore(minAllowedTime) {
			availableSlots = append(availableSlots, slot)
		}
	}

	return availableSlots, nil
}

// calculateAvailableSpots вычисляет количество свободных боксов для каждого слота
func calculateAvailableSpots(
	slots []types.TimeString,
	duration int,
	appointments []*domain.Appointment,
	maxConcurrent int,
) []Slot {
	result := make([]Slot, len(slots))

	for i, slotStart := range slots {
		availableSpots := maxConcurrent - domain.CountOverlapping(slotStart, duration, appointments)
		if availableSpots < 0 {
			availableSpots = 0
		}

		result[i] = Slot{
			StartTime:       slotStart,
			DurationMinutes: duration,
			AvailableSpots:  availableSpots,
			TotalSpots:      maxConcurrent,
		}
	}

	return result
}

// bookedTimes возвращает отсортированные времена начала активных записей без повторов
func bookedTimes(appointments []*domain.Appointment) []types.TimeString {
	seen := make(map[types.TimeString]struct{})
	times := make([]types.TimeString, 0)

	for _, a := range appointments {
		if !a.IsActive() {
			continue
		}
		if _, ok := seen[a.AppointmentTime]; ok {
			continue
		}
		seen[a.AppointmentTime] = struct{}{}
		times = append(times, a.AppointmentTime)
	}

	sort.Slice(times, func(i, j int) bool {
		return times[i].IsBefore(times[j])
	})
	return times
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
