package form

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/pkg/ptr"
)

func money(s string) *decimal.Decimal {
	return ptr.Ptr(decimal.RequireFromString(s))
}

func tireServiceRequirements() []domain.ServiceRequirement {
	return []domain.ServiceRequirement{
		{ID: 1, Key: "plate", Label: "License plate", Type: domain.RequirementTypeText, SortOrder: 1},
		{ID: 2, Key: "mileage", Label: "Mileage", Type: domain.RequirementTypeNumber, SortOrder: 2,
			Validations: domain.RequirementValidations{NumberMaxLength: ptr.Ptr(6)}},
		{ID: 3, Key: "season", Label: "Season", Type: domain.RequirementTypeSelect, SortOrder: 3,
			Options: domain.RequirementOptions{{Label: "Winter", Value: "winter"}, {Label: "Summer", Value: "summer"}}},
		{ID: 4, Key: "oil_type", Label: "Oil type", Type: domain.RequirementTypeRadio, SortOrder: 4,
			Options: domain.RequirementOptions{{Label: "Conventional", Value: "conventional"}, {Label: "Synthetic", Value: "synthetic", Price: money("15.00")}}},
		{ID: 5, Key: "last_change", Label: "Last change", Type: domain.RequirementTypeDate, SortOrder: 5},
		{ID: 6, Key: "extras", Label: "Extras", Type: domain.RequirementTypeMultiselect, SortOrder: 6,
			Options: domain.RequirementOptions{{Label: "TPMS", Value: "tpms", Price: money("20.00")}, {Label: "Valve stems", Value: "valves"}}},
		{ID: 7, Key: "nitrogen", Label: "Nitrogen", Type: domain.RequirementTypeToggle, SortOrder: 7, Price: money("10.00")},
	}
}

func raw(s string) json.RawMessage {
	return json.RawMessage(s)
}

func TestValidateAll_RequiredEmptyFlagsOnlyThatField(t *testing.T) {
	emptyByType := map[domain.RequirementType]string{
		domain.RequirementTypeText:   `"   "`,
		domain.RequirementTypeNumber: `null`,
		domain.RequirementTypeSelect: `""`,
		domain.RequirementTypeRadio:  `null`,
		domain.RequirementTypeDate:   `""`,
	}
	validByKey := map[string]json.RawMessage{
		"plate":       raw(`"AB123"`),
		"mileage":     raw(`42000`),
		"season":      raw(`"winter"`),
		"oil_type":    raw(`"synthetic"`),
		"last_change": raw(`"2026-01-15"`),
	}

	for _, req := range tireServiceRequirements() {
		emptyRaw, ok := emptyByType[req.Type]
		if !ok {
			continue
		}
		t.Run(string(req.Type), func(t *testing.T) {
			reqs := tireServiceRequirements()
			for i := range reqs {
				reqs[i].IsRequired = true
			}
			values := map[string]json.RawMessage{}
			for k, v := range validByKey {
				values[k] = v
			}
			values["extras"] = raw(`["tpms"]`)
			values["nitrogen"] = raw(`false`)
			values[req.Key] = raw(emptyRaw)

			_, errs := ValidateAll(reqs, values)

			require.Len(t, errs, 1)
			assert.Equal(t, req.Key, errs[0].Key)
			assert.Equal(t, CodeRequired, errs[0].Code)
		})
	}
}

func TestValidateAll_OptionalEmptyIsNotFlagged(t *testing.T) {
	values, errs := ValidateAll(tireServiceRequirements(), map[string]json.RawMessage{})

	assert.Empty(t, errs)
	assert.Empty(t, values)
}

func TestValidateAll_RequiredFalseToggleIsValid(t *testing.T) {
	reqs := []domain.ServiceRequirement{
		{Key: "nitrogen", Label: "Nitrogen", Type: domain.RequirementTypeToggle, IsRequired: true},
		{Key: "rotate", Label: "Rotate", Type: domain.RequirementTypeCheckbox, IsRequired: true},
	}

	values, errs := ValidateAll(reqs, map[string]json.RawMessage{
		"nitrogen": raw(`false`),
	})

	require.Len(t, errs, 1)
	assert.Equal(t, "rotate", errs[0].Key)
	assert.Equal(t, CodeRequired, errs[0].Code)
	assert.Contains(t, values, "nitrogen")
}

func TestValidate_Multiselect(t *testing.T) {
	req := tireServiceRequirements()[5]

	tests := []struct {
		name string
		raw  string
		code string
	}{
		{name: "subset", raw: `["tpms"]`},
		{name: "all", raw: `["tpms","valves"]`},
		{name: "unknown option", raw: `["tpms","balancing"]`, code: CodeInvalidOption},
		{name: "duplicate", raw: `["tpms","tpms"]`, code: CodeDuplicateOption},
		{name: "string instead of array", raw: `"tpms"`, code: CodeTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, fieldErr := ParseValue(req, raw(tt.raw))
			if fieldErr == nil {
				fieldErr = Validate(req, value)
			}
			if tt.code == "" {
				assert.Nil(t, fieldErr)
				return
			}
			require.NotNil(t, fieldErr)
			assert.Equal(t, tt.code, fieldErr.Code)
		})
	}
}

func TestValidate_TypeSpecificConstraints(t *testing.T) {
	reqs := tireServiceRequirements()
	mileage := reqs[1]
	season := reqs[2]
	lastChange := reqs[4]
	lastChange.Validations = domain.RequirementValidations{MinDate: ptr.Ptr("2020-01-01"), MaxDate: ptr.Ptr("2026-12-31")}
	plate := reqs[0]
	plate.Validations.MaxLength = ptr.Ptr(8)

	tests := []struct {
		name string
		req  domain.ServiceRequirement
		raw  string
		code string
	}{
		{name: "number within digits", req: mileage, raw: `123456`},
		{name: "number from string", req: mileage, raw: `"98000"`},
		{name: "number too many digits", req: mileage, raw: `1234567`, code: CodeTooManyDigits},
		{name: "number decimals count as digits", req: mileage, raw: `12345.67`, code: CodeTooManyDigits},
		{name: "number garbage string", req: mileage, raw: `"lots"`, code: CodeTypeMismatch},
		{name: "select invalid option", req: season, raw: `"spring"`, code: CodeInvalidOption},
		{name: "select array", req: season, raw: `["winter"]`, code: CodeTypeMismatch},
		{name: "date format", req: lastChange, raw: `"15/01/2026"`, code: CodeInvalidDate},
		{name: "date before min", req: lastChange, raw: `"2019-12-31"`, code: CodeDateBeforeMin},
		{name: "date after max", req: lastChange, raw: `"2027-01-01"`, code: CodeDateAfterMax},
		{name: "date in range", req: lastChange, raw: `"2024-06-01"`},
		{name: "text too long", req: plate, raw: `"ABCDEFGHI"`, code: CodeTooLong},
		{name: "text object", req: plate, raw: `{"v":1}`, code: CodeTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, fieldErr := ParseValue(tt.req, raw(tt.raw))
			if fieldErr == nil {
				fieldErr = Validate(tt.req, value)
			}
			if tt.code == "" {
				assert.Nil(t, fieldErr)
				return
			}
			require.NotNil(t, fieldErr)
			assert.Equal(t, tt.code, fieldErr.Code)
			assert.Equal(t, tt.req.Key, fieldErr.Key)
		})
	}
}

func TestRender_OrderControlsAndFieldErrors(t *testing.T) {
	reqs := tireServiceRequirements()
	// перемешиваем порядок, отрисовка должна идти по SortOrder
	reqs[0], reqs[6] = reqs[6], reqs[0]

	f := Render(reqs, map[string]json.RawMessage{
		"season":   raw(`"spring"`),
		"oil_type": raw(`"synthetic"`),
	})

	require.Len(t, f.Fields, 7)
	assert.Equal(t, "plate", f.Fields[0].Key)
	assert.Equal(t, ControlTextInput, f.Fields[0].Control)
	assert.Equal(t, ControlRadioGroup, f.Fields[3].Control)
	assert.Equal(t, ControlSwitch, f.Fields[6].Control)
	assert.True(t, f.Fields[6].Price.Equal(decimal.NewFromInt(10)))
	assert.Len(t, f.Fields[5].Options, 2)

	assert.False(t, f.Valid())
	errs := f.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "season", errs[0].Key)
	assert.Nil(t, f.Fields[3].Error)
}

func TestRender_WithoutValuesSkipsValidation(t *testing.T) {
	reqs := tireServiceRequirements()
	reqs[0].IsRequired = true

	f := Render(reqs, nil)

	assert.True(t, f.Valid())
	assert.Nil(t, f.Fields[0].Constraints.MaxLength)
}

func TestValidate_TextWithoutMaxLengthIsUnbounded(t *testing.T) {
	notes := domain.ServiceRequirement{ID: 9, Label: "Notes", Key: "notes", Type: domain.RequirementTypeTextarea}
	value := domain.StringValue(strings.Repeat("a", 5000))

	assert.Nil(t, Validate(notes, value))
}

func TestFieldError_WithPrefix(t *testing.T) {
	fe := FieldError{Field: "oil_type", Key: "oil_type", Code: CodeRequired}
	assert.Equal(t, "services.3.oil_type", fe.WithPrefix("services.3").Field)
}
