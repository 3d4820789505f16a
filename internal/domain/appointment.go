package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-TireService/pkg/types"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusScheduled  AppointmentStatus = "scheduled"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusNoShow     AppointmentStatus = "no_show"
)

// allowedTransitions scheduled -> in_progress -> completed | cancelled | no_show
var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled:  {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted, StatusCancelled, StatusNoShow},
}

// IsValid returns true for a known status
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// CanTransitionTo returns true if the lifecycle allows moving to next
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsFinal returns true when no further transitions are possible
func (s AppointmentStatus) IsFinal() bool {
	return len(allowedTransitions[s]) == 0
}

// Vehicle describes the customer's car as entered in the booking wizard
type Vehicle struct {
	ID       *int64
	Year     int
	Make     string
	Model    string
	Trim     *string
	TireSize *string
	Mileage  *int
}

// Customer contact block of the booking wizard
type Customer struct {
	ID    *int64
	Name  string
	Phone string
	Email *string
}

// Appointment is the aggregate root of a booking
type Appointment struct {
	ID              int64
	Customer        Customer
	Vehicle         Vehicle
	AppointmentDate time.Time
	AppointmentTime types.TimeString
	DurationMinutes int
	FinalPrice      *decimal.Decimal
	Status          AppointmentStatus
	Notes           *string
	Services        []AppointmentService
	DeletedAt       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsActive returns true if the appointment occupies its slot
func (a *Appointment) IsActive() bool {
	if a.DeletedAt != nil {
		return false
	}
	for _, s := range InactiveStatuses {
		if a.Status == s {
			return false
		}
	}
	return true
}

// IsDeleted returns true for soft-deleted appointments
func (a *Appointment) IsDeleted() bool {
	return a.DeletedAt != nil
}

// FindService returns the appointment service with the given id
func (a *Appointment) FindService(appointmentServiceID int64) (*AppointmentService, bool) {
	for i := range a.Services {
		if a.Services[i].ID == appointmentServiceID {
			return &a.Services[i], true
		}
	}
	return nil, false
}

// AppointmentService links one appointment to one booked service.
// Price is the line total frozen at booking time and is never recomputed.
type AppointmentService struct {
	ID            int64
	AppointmentID int64
	ServiceID     int64
	ServiceName   string
	Price         decimal.Decimal
	Values        []ServiceRequirementValue
	CreatedAt     time.Time
}

// ServiceRequirementValue is the customer's answer to one requirement of a booked service
type ServiceRequirementValue struct {
	ID                   int64
	AppointmentServiceID int64
	ServiceRequirementID int64
	RequirementKey       string
	RequirementLabel     string
	Value                RequirementValue
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// AppointmentsFilter filter for the back office appointment list
type AppointmentsFilter struct {
	StartDate      *time.Time
	EndDate        *time.Time
	Status         *AppointmentStatus
	IncludeDeleted bool
	Limit          uint64
	Offset         uint64
}

// DashboardStats aggregated figures for one period
type DashboardStats struct {
	From           time.Time
	To             time.Time
	CountsByStatus map[AppointmentStatus]int
	Revenue        decimal.Decimal // sum of frozen prices of completed appointments
}
