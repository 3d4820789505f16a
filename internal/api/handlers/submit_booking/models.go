package submit_booking

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TireService/internal/api/handlers"
	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/service/appointments/models"
	submitBooking "github.com/m04kA/SMC-TireService/internal/usecase/submit_booking"
	"github.com/m04kA/SMC-TireService/pkg/types"
)

// VehicleRequest автомобиль клиента
type VehicleRequest struct {
	Year     int     `json:"year"`
	Make     string  `json:"make"`
	Model    string  `json:"model"`
	Trim     *string `json:"trim,omitempty"`
	TireSize *string `json:"tireSize,omitempty"`
	Mileage  *int    `json:"mileage,omitempty"`
}

// CustomerRequest контакты клиента
type CustomerRequest struct {
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Email *string `json:"email,omitempty"`
}

// SubmitBookingRequest HTTP request model
type SubmitBookingRequest struct {
	ServiceIDs []int64                               `json:"serviceIds"`
	Vehicle    VehicleRequest                        `json:"vehicle"`
	Customer   CustomerRequest                       `json:"customer"`
	Date       string                                `json:"date"`      // "2026-11-03"
	StartTime  string                                `json:"startTime"` // "09:00"
	Notes      *string                               `json:"notes,omitempty"`
	Answers    map[string]map[string]json.RawMessage `json:"answers,omitempty"` // "serviceId" -> key -> value
}

// SubmitBookingResponse HTTP response model
type SubmitBookingResponse struct {
	Appointment *models.AppointmentResponse `json:"appointment"`
	Pricing     handlers.PricingResponse    `json:"pricing"`
}

// errInvalidDate и errInvalidTime различают ошибки разбора для ответа клиенту
var (
	errInvalidDate = errors.New("invalid date format")
	errInvalidTime = errors.New("invalid time format")
)

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом даты и времени)
func (r *SubmitBookingRequest) ToUseCaseRequest() (*submitBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	answers, err := handlers.ParseAnswers(r.Answers)
	if err != nil {
		return nil, err
	}

	return &submitBooking.Request{
		ServiceIDs: r.ServiceIDs,
		Vehicle: domain.Vehicle{
			Year:     r.Vehicle.Year,
			Make:     r.Vehicle.Make,
			Model:    r.Vehicle.Model,
			Trim:     r.Vehicle.Trim,
			TireSize: r.Vehicle.TireSize,
			Mileage:  r.Vehicle.Mileage,
		},
		Customer: domain.Customer{
			Name:  r.Customer.Name,
			Phone: r.Customer.Phone,
			Email: r.Customer.Email,
		},
		Date:      date,
		StartTime: startTime,
		Notes:     r.Notes,
		Answers:   answers,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitBooking.Response) *SubmitBookingResponse {
	return &SubmitBookingResponse{
		Appointment: models.FromDomainAppointment(resp.Appointment),
		Pricing:     handlers.FromPricing(resp.Pricing),
	}
}
