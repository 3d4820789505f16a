package domain

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Booking-level fields a service may require through RequiredFields
const (
	FieldVehicleTrim     = "vehicle.trim"
	FieldVehicleTireSize = "vehicle.tire_size"
	FieldVehicleMileage  = "vehicle.mileage"
	FieldCustomerEmail   = "customer.email"
	FieldNotes           = "notes"
)

// Service is a catalog entry customers can book
type Service struct {
	ID                int64
	Slug              string
	Name              string
	BasePrice         *decimal.Decimal // nil means the price varies and must be quoted
	EstimatedDuration int              // minutes
	IsActive          bool
	Details           json.RawMessage
	RequiredFields    StringList
	Requirements      []ServiceRequirement
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// RequiresQuote returns true when the service has no base price
func (s *Service) RequiresQuote() bool {
	return s.BasePrice == nil
}

// RequiresField reports whether a booking-level field is mandatory for this service
func (s *Service) RequiresField(field string) bool {
	for _, f := range s.RequiredFields {
		if f == field {
			return true
		}
	}
	return false
}

// StringList list of strings stored as jsonb
type StringList []string

// Scan implements sql.Scanner
func (l *StringList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// PriceDecimals is the number of fractional digits a stored price keeps.
const PriceDecimals = 2

var maxPrice = decimal.New(1, 8)

// IsStorablePrice reports whether p fits a NUMERIC(10,2) price column without rounding.
func IsStorablePrice(p decimal.Decimal) bool {
	return p.Equal(p.Round(PriceDecimals)) && p.Abs().LessThan(maxPrice)
}
