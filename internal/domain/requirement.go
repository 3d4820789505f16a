package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// RequirementType is the declared input type of a service requirement
type RequirementType string

const (
	RequirementTypeText        RequirementType = "text"
	RequirementTypeTextarea    RequirementType = "textarea"
	RequirementTypeNumber      RequirementType = "number"
	RequirementTypeSelect      RequirementType = "select"
	RequirementTypeMultiselect RequirementType = "multiselect"
	RequirementTypeRadio       RequirementType = "radio"
	RequirementTypeCheckbox    RequirementType = "checkbox"
	RequirementTypeToggle      RequirementType = "toggle"
	RequirementTypeDate        RequirementType = "date"
)

// RequirementTypes lists every supported type in display order
var RequirementTypes = []RequirementType{
	RequirementTypeText,
	RequirementTypeTextarea,
	RequirementTypeNumber,
	RequirementTypeSelect,
	RequirementTypeMultiselect,
	RequirementTypeRadio,
	RequirementTypeCheckbox,
	RequirementTypeToggle,
	RequirementTypeDate,
}

// IsValid returns true for a known type
func (t RequirementType) IsValid() bool {
	for _, known := range RequirementTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsChoice returns true for types whose value is picked from Options
func (t RequirementType) IsChoice() bool {
	return t == RequirementTypeSelect || t == RequirementTypeMultiselect || t == RequirementTypeRadio
}

// IsBoolean returns true for checkbox and toggle
func (t RequirementType) IsBoolean() bool {
	return t == RequirementTypeCheckbox || t == RequirementTypeToggle
}

// IsTextual returns true for free text types
func (t RequirementType) IsTextual() bool {
	return t == RequirementTypeText || t == RequirementTypeTextarea
}

// RequirementOption is one choice of a select, multiselect or radio requirement
type RequirementOption struct {
	Label string           `json:"label"`
	Value string           `json:"value"`
	Price *decimal.Decimal `json:"price,omitempty"`
}

// RequirementOptions ordered option list, stored as jsonb
type RequirementOptions []RequirementOption

// Find returns the option with the given value
func (o RequirementOptions) Find(value string) (RequirementOption, bool) {
	for _, opt := range o {
		if opt.Value == value {
			return opt, true
		}
	}
	return RequirementOption{}, false
}

// Scan implements sql.Scanner
func (o *RequirementOptions) Scan(src interface{}) error {
	return scanJSON(src, o)
}

// Value implements driver.Valuer
func (o RequirementOptions) Value() (driver.Value, error) {
	if o == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(o)
}

// RequirementValidations type-specific constraints, stored as jsonb
type RequirementValidations struct {
	MaxLength       *int    `json:"max_length,omitempty"`
	NumberMaxLength *int    `json:"number_max_length,omitempty"`
	MinDate         *string `json:"min_date,omitempty"`
	MaxDate         *string `json:"max_date,omitempty"`
}

// Scan implements sql.Scanner
func (v *RequirementValidations) Scan(src interface{}) error {
	return scanJSON(src, v)
}

// Value implements driver.Valuer
func (v RequirementValidations) Value() (driver.Value, error) {
	return json.Marshal(v)
}

// ServiceRequirement is a typed form field a customer fills in when booking a service
//
// Key is derived once at creation and never changes afterwards; it is unique per service.
type ServiceRequirement struct {
	ID          int64
	ServiceID   int64
	Label       string
	Key         string
	Type        RequirementType
	Options     RequirementOptions
	Price       *decimal.Decimal // flat add-on, checkbox and toggle only
	IsRequired  bool
	Validations RequirementValidations
	Placeholder *string
	HelpText    *string
	SortOrder   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SortRequirements returns a copy ordered by SortOrder, ties broken by ID
func SortRequirements(reqs []ServiceRequirement) []ServiceRequirement {
	sorted := make([]ServiceRequirement, len(reqs))
	copy(sorted, reqs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].SortOrder != sorted[j].SortOrder {
			return sorted[i].SortOrder < sorted[j].SortOrder
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

func scanJSON(src interface{}, dst interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("domain: cannot scan %T into %T", src, dst)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dst)
}
