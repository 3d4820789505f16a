package domain

// Default shop settings, used when the settings row has not been created yet
const (
	DefaultSlotDurationMinutes       = 30
	DefaultMaxConcurrentAppointments = 2
	DefaultAdvanceBookingDays        = 60
	DefaultMinBookingNoticeMinutes   = 60
)

// Business validation constants
const (
	MinSlotDurationMinutes       = 5
	MaxSlotDurationMinutes       = 480 // 8 hours
	MinConcurrentAppointments    = 1
	MaxConcurrentAppointments    = 50
	MaxAdvanceBookingDays        = 365
	MaxBookingNoticeMinutes      = 10080 // 1 week
	MaxNotesLength               = 1000
	MaxServicesPerAppointment    = 10
	MaxRequirementLabelLength    = 255
	MaxRequirementOptionsPerType = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses appointments in these statuses do not occupy a slot
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusNoShow,
}

// ActiveStatuses appointments in these statuses occupy a slot
var ActiveStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusInProgress,
	StatusCompleted,
}
