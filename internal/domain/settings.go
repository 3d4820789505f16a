package domain

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// DaySchedule opening hours of one weekday
type DaySchedule struct {
	IsOpen    bool    `json:"isOpen"`
	OpenTime  *string `json:"openTime,omitempty"`  // "08:00"
	CloseTime *string `json:"closeTime,omitempty"` // "18:00"
}

// WorkingHours weekly schedule, stored as jsonb
type WorkingHours struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// ForDay returns the schedule of the weekday of date
func (w WorkingHours) ForDay(date time.Time) DaySchedule {
	switch date.Weekday() {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DaySchedule{IsOpen: false}
	}
}

// Days returns the schedules keyed by lower-case weekday name
func (w WorkingHours) Days() map[string]DaySchedule {
	return map[string]DaySchedule{
		"monday":    w.Monday,
		"tuesday":   w.Tuesday,
		"wednesday": w.Wednesday,
		"thursday":  w.Thursday,
		"friday":    w.Friday,
		"saturday":  w.Saturday,
		"sunday":    w.Sunday,
	}
}

// Scan implements sql.Scanner
func (w *WorkingHours) Scan(src interface{}) error {
	return scanJSON(src, w)
}

// Value implements driver.Valuer
func (w WorkingHours) Value() (driver.Value, error) {
	return json.Marshal(w)
}

// ShopSettings booking configuration of the shop (single row)
type ShopSettings struct {
	WorkingHours              WorkingHours
	SlotDurationMinutes       int
	MaxConcurrentAppointments int
	AdvanceBookingDays        int // 0 = unlimited
	MinBookingNoticeMinutes   int
	ShopEmail                 *string
	ShopPhone                 *string
	UpdatedAt                 time.Time
}

// DefaultShopSettings Monday to Saturday, 08:00-18:00
func DefaultShopSettings() *ShopSettings {
	open, closing := "08:00", "18:00"
	weekday := DaySchedule{IsOpen: true, OpenTime: &open, CloseTime: &closing}

	return &ShopSettings{
		WorkingHours: WorkingHours{
			Monday:    weekday,
			Tuesday:   weekday,
			Wednesday: weekday,
			Thursday:  weekday,
			Friday:    weekday,
			Saturday:  weekday,
			Sunday:    DaySchedule{IsOpen: false},
		},
		SlotDurationMinutes:       DefaultSlotDurationMinutes,
		MaxConcurrentAppointments: DefaultMaxConcurrentAppointments,
		AdvanceBookingDays:        DefaultAdvanceBookingDays,
		MinBookingNoticeMinutes:   DefaultMinBookingNoticeMinutes,
	}
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (s *ShopSettings) HasAdvanceBookingLimit() bool {
	return s.AdvanceBookingDays > 0
}
