package models

import (
	"time"

	"github.com/m04kA/SMC-TireService/internal/domain"
)

// Request модели

// UpdateSettingsRequest запрос на обновление настроек магазина
// Все поля опциональны - обновляются только переданные значения
type UpdateSettingsRequest struct {
	WorkingHours              *domain.WorkingHours `json:"workingHours,omitempty"`
	SlotDurationMinutes       *int                 `json:"slotDurationMinutes,omitempty"`
	MaxConcurrentAppointments *int                 `json:"maxConcurrentAppointments,omitempty"`
	AdvanceBookingDays        *int                 `json:"advanceBookingDays,omitempty"` // 0 = без ограничений
	MinBookingNoticeMinutes   *int                 `json:"minBookingNoticeMinutes,omitempty"`
	ShopEmail                 *string              `json:"shopEmail,omitempty"`
	ShopPhone                 *string              `json:"shopPhone,omitempty"`
}

// Response модели

// WorkingHoursResponse публичный ответ с часами работы
type WorkingHoursResponse struct {
	WorkingHours domain.WorkingHours `json:"workingHours"`
}

// SettingsResponse ответ с настройками магазина
type SettingsResponse struct {
	WorkingHours              domain.WorkingHours `json:"workingHours"`
	SlotDurationMinutes       int                 `json:"slotDurationMinutes"`
	MaxConcurrentAppointments int                 `json:"maxConcurrentAppointments"`
	AdvanceBookingDays        int                 `json:"advanceBookingDays"`
	MinBookingNoticeMinutes   int                 `json:"minBookingNoticeMinutes"`
	ShopEmail                 *string             `json:"shopEmail,omitempty"`
	ShopPhone                 *string             `json:"shopPhone,omitempty"`
	UpdatedAt                 *time.Time          `json:"updatedAt,omitempty"`
}

// Методы конвертации

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.ShopSettings) *SettingsResponse {
	if s == nil {
		return nil
	}

	resp := &SettingsResponse{
		WorkingHours:              s.WorkingHours,
		SlotDurationMinutes:       s.SlotDurationMinutes,
		MaxConcurrentAppointments: s.MaxConcurrentAppointments,
		AdvanceBookingDays:        s.AdvanceBookingDays,
		MinBookingNoticeMinutes:   s.MinBookingNoticeMinutes,
		ShopEmail:                 s.ShopEmail,
		ShopPhone:                 s.ShopPhone,
	}
	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}

// ApplyTo применяет переданные поля к настройкам
func (r *UpdateSettingsRequest) ApplyTo(s *domain.ShopSettings) {
	if r.WorkingHours != nil {
		s.WorkingHours = *r.WorkingHours
	}
	if r.SlotDurationMinutes != nil {
		s.SlotDurationMinutes = *r.SlotDurationMinutes
	}
	if r.MaxConcurrentAppointments != nil {
		s.MaxConcurrentAppointments = *r.MaxConcurrentAppointments
	}
	if r.AdvanceBookingDays != nil {
		s.AdvanceBookingDays = *r.AdvanceBookingDays
	}
	if r.MinBookingNoticeMinutes != nil {
		s.MinBookingNoticeMinutes = *r.MinBookingNoticeMinutes
	}
	if r.ShopEmail != nil {
		s.ShopEmail = r.ShopEmail
	}
	if r.ShopPhone != nil {
		s.ShopPhone = r.ShopPhone
	}
}
