package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to AppointmentStatus
		allowed  bool
	}{
		{StatusScheduled, StatusInProgress, true},
		{StatusScheduled, StatusCancelled, true},
		{StatusScheduled, StatusNoShow, true},
		{StatusScheduled, StatusCompleted, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusScheduled, false},
		{StatusNoShow, StatusInProgress, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestAppointment_IsActive(t *testing.T) {
	now := time.Now()
	assert.True(t, (&Appointment{Status: StatusScheduled}).IsActive())
	assert.False(t, (&Appointment{Status: StatusCancelled}).IsActive())
	assert.False(t, (&Appointment{Status: StatusScheduled, DeletedAt: &now}).IsActive())
}

func TestCountOverlapping(t *testing.T) {
	appointments := []*Appointment{
		{AppointmentTime: "10:00", DurationMinutes: 60, Status: StatusScheduled},
		{AppointmentTime: "11:00", DurationMinutes: 30, Status: StatusScheduled},
		{AppointmentTime: "10:30", DurationMinutes: 30, Status: StatusCancelled},
	}

	assert.Equal(t, 1, CountOverlapping("10:30", 30, appointments))
	assert.Equal(t, 2, CountOverlapping("10:30", 60, appointments))
	assert.Equal(t, 0, CountOverlapping("11:30", 30, appointments))
	assert.Equal(t, 0, CountOverlapping("09:30", 30, appointments))
}

func TestAppointmentDuration(t *testing.T) {
	services := []*Service{{EstimatedDuration: 45}, {EstimatedDuration: 20}}
	assert.Equal(t, 90, AppointmentDuration(services, 30))
	assert.Equal(t, 30, AppointmentDuration(nil, 30))
}

func TestWorkingHours_ForDay(t *testing.T) {
	settings := DefaultShopSettings()
	sunday := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	monday := sunday.AddDate(0, 0, 1)

	assert.False(t, settings.WorkingHours.ForDay(sunday).IsOpen)
	assert.True(t, settings.WorkingHours.ForDay(monday).IsOpen)
}
