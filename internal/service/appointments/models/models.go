package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/pricing"
)

// Request модели

// ListRequest фильтр списка записей
type ListRequest struct {
	StartDate      *time.Time
	EndDate        *time.Time
	Status         *domain.AppointmentStatus
	IncludeDeleted bool
	Limit          uint64
	Offset         uint64
}

// UpdateStatusRequest запрос на смену статуса
type UpdateStatusRequest struct {
	Status domain.AppointmentStatus `json:"status"`
}

// UpdateValueRequest запрос на правку ответа на требование
// Value == null удаляет ответ
type UpdateValueRequest struct {
	Value json.RawMessage `json:"value"`
}

// DashboardRequest период статистики; Month == 0 - весь год
type DashboardRequest struct {
	Year  int
	Month int
}

// Response модели

// VehicleResponse автомобиль
type VehicleResponse struct {
	Year     int     `json:"year"`
	Make     string  `json:"make"`
	Model    string  `json:"model"`
	Trim     *string `json:"trim,omitempty"`
	TireSize *string `json:"tireSize,omitempty"`
	Mileage  *int    `json:"mileage,omitempty"`
}

// CustomerResponse контакты клиента
type CustomerResponse struct {
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Email *string `json:"email,omitempty"`
}

// ValueResponse ответ на требование
type ValueResponse struct {
	RequirementID *int64                  `json:"requirementId,omitempty"` // nil - определение удалено
	Key           string                  `json:"key"`
	Label         string                  `json:"label"`
	Value         domain.RequirementValue `json:"value"`
}

// AppointmentServiceResponse услуга записи с зафиксированной ценой
type AppointmentServiceResponse struct {
	ID        int64           `json:"id"`
	ServiceID int64           `json:"serviceId"`
	Name      string          `json:"name"`
	Price     string          `json:"price"`
	Values    []ValueResponse `json:"values,omitempty"`
}

// AppointmentResponse запись на обслуживание
type AppointmentResponse struct {
	ID              int64                        `json:"id"`
	Date            string                       `json:"date"`
	Time            string                       `json:"time"`
	DurationMinutes int                          `json:"durationMinutes"`
	Status          domain.AppointmentStatus     `json:"status"`
	FinalPrice      *string                      `json:"finalPrice"`
	Customer        CustomerResponse             `json:"customer"`
	Vehicle         VehicleResponse              `json:"vehicle"`
	Notes           *string                      `json:"notes,omitempty"`
	Services        []AppointmentServiceResponse `json:"services"`
	Deleted         bool                         `json:"deleted,omitempty"`
	CreatedAt       time.Time                    `json:"createdAt"`
	UpdatedAt       time.Time                    `json:"updatedAt"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// DashboardResponse статистика за период
type DashboardResponse struct {
	From           string         `json:"from"`
	To             string         `json:"to"`
	Total          int            `json:"total"`
	CountsByStatus map[string]int `json:"countsByStatus"`
	Revenue        string         `json:"revenue"`
}

// Методы конвертации

func money(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := pricing.Format(*d)
	return &s
}

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	services := make([]AppointmentServiceResponse, len(a.Services))
	for i, s := range a.Services {
		var values []ValueResponse
		for _, v := range s.Values {
			value := ValueResponse{
				Key:   v.RequirementKey,
				Label: v.RequirementLabel,
				Value: v.Value,
			}
			if v.ServiceRequirementID != 0 {
				id := v.ServiceRequirementID
				value.RequirementID = &id
			}
			values = append(values, value)
		}

		services[i] = AppointmentServiceResponse{
			ID:        s.ID,
			ServiceID: s.ServiceID,
			Name:      s.ServiceName,
			Price:     pricing.Format(s.Price),
			Values:    values,
		}
	}

	return &AppointmentResponse{
		ID:              a.ID,
		Date:            a.AppointmentDate.Format(domain.DateFormat),
		Time:            a.AppointmentTime.String(),
		DurationMinutes: a.DurationMinutes,
		Status:          a.Status,
		FinalPrice:      money(a.FinalPrice),
		Customer: CustomerResponse{
			Name:  a.Customer.Name,
			Phone: a.Customer.Phone,
			Email: a.Customer.Email,
		},
		Vehicle: VehicleResponse{
			Year:     a.Vehicle.Year,
			Make:     a.Vehicle.Make,
			Model:    a.Vehicle.Model,
			Trim:     a.Vehicle.Trim,
			TireSize: a.Vehicle.TireSize,
			Mileage:  a.Vehicle.Mileage,
		},
		Notes:     a.Notes,
		Services:  services,
		Deleted:   a.IsDeleted(),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		if appointmentResp := FromDomainAppointment(a); appointmentResp != nil {
			resp.Appointments = append(resp.Appointments, *appointmentResp)
		}
	}

	return resp
}

// FromDomainStats конвертирует статистику в DTO
func FromDomainStats(stats *domain.DashboardStats) *DashboardResponse {
	resp := &DashboardResponse{
		From:           stats.From.Format(domain.DateFormat),
		To:             stats.To.Format(domain.DateFormat),
		CountsByStatus: make(map[string]int, len(stats.CountsByStatus)),
		Revenue:        pricing.Format(stats.Revenue),
	}

	for status, count := range stats.CountsByStatus {
		resp.CountsByStatus[string(status)] = count
		resp.Total += count
	}

	return resp
}

// ToDomainFilter конвертирует запрос в фильтр репозитория
func (r *ListRequest) ToDomainFilter() domain.AppointmentsFilter {
	return domain.AppointmentsFilter{
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		Status:         r.Status,
		IncludeDeleted: r.IncludeDeleted,
		Limit:          r.Limit,
		Offset:         r.Offset,
	}
}
