package domain

import "github.com/m04kA/SMC-TireService/pkg/types"

// AvailableSlot represents a time slot available for booking
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	AvailableSpots  int // free service bays
	TotalSpots      int
}

// IsFull returns true if the slot has no available spots
func (s *AvailableSlot) IsFull() bool {
	return s.AvailableSpots <= 0
}

// AppointmentDuration is the time the selected services occupy a bay,
// rounded up to whole slots (at least one slot)
func AppointmentDuration(services []*Service, slotDuration int) int {
	if slotDuration <= 0 {
		slotDuration = DefaultSlotDurationMinutes
	}
	total := 0
	for _, s := range services {
		total += s.EstimatedDuration
	}
	slots := (total + slotDuration - 1) / slotDuration
	if slots < 1 {
		slots = 1
	}
	return slots * slotDuration
}

// CountOverlapping counts active appointments intersecting [start, start+duration).
// Touching intervals (one ends exactly where the other starts) do not overlap.
func CountOverlapping(start types.TimeString, duration int, appointments []*Appointment) int {
	end, err := start.AddMinutes(duration)
	if err != nil {
		return 0
	}

	count := 0
	for _, a := range appointments {
		if !a.IsActive() {
			continue
		}
		aEnd, err := a.AppointmentTime.AddMinutes(a.DurationMinutes)
		if err != nil {
			continue
		}
		if a.AppointmentTime.IsBefore(end) && aEnd.IsAfter(start) {
			count++
		}
	}
	return count
}
