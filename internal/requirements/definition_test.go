package requirements

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/pkg/ptr"
)

func TestValidateDefinition(t *testing.T) {
	tests := []struct {
		name    string
		req     domain.ServiceRequirement
		wantErr bool
	}{
		{
			name: "radio with options",
			req: domain.ServiceRequirement{
				Label: "Oil type",
				Type:  domain.RequirementTypeRadio,
				Options: domain.RequirementOptions{
					{Label: "Conventional", Value: "conventional"},
					{Label: "Synthetic", Value: "synthetic", Price: ptr.Ptr(decimal.RequireFromString("15.00"))},
				},
			},
		},
		{
			name:    "select without options",
			req:     domain.ServiceRequirement{Label: "Brand", Type: domain.RequirementTypeSelect},
			wantErr: true,
		},
		{
			name: "duplicate option values",
			req: domain.ServiceRequirement{
				Label: "Extras",
				Type:  domain.RequirementTypeMultiselect,
				Options: domain.RequirementOptions{
					{Label: "TPMS", Value: "tpms"},
					{Label: "TPMS again", Value: "tpms"},
				},
			},
			wantErr: true,
		},
		{
			name:    "unknown type",
			req:     domain.ServiceRequirement{Label: "Color", Type: "color"},
			wantErr: true,
		},
		{
			name:    "price on text field",
			req:     domain.ServiceRequirement{Label: "Notes", Type: domain.RequirementTypeText, Price: ptr.Ptr(decimal.NewFromInt(5))},
			wantErr: true,
		},
		{
			name:    "toggle price with fractional cents",
			req:     domain.ServiceRequirement{Label: "Nitrogen fill", Type: domain.RequirementTypeToggle, Price: ptr.Ptr(decimal.RequireFromString("10.005"))},
			wantErr: true,
		},
		{
			name: "toggle price with trailing zeros",
			req:  domain.ServiceRequirement{Label: "Nitrogen fill", Type: domain.RequirementTypeToggle, Price: ptr.Ptr(decimal.RequireFromString("10.500"))},
		},
		{
			name: "option price with fractional cents",
			req: domain.ServiceRequirement{
				Label:   "Oil type",
				Type:    domain.RequirementTypeSelect,
				Options: domain.RequirementOptions{{Label: "Synthetic", Value: "synthetic", Price: ptr.Ptr(decimal.RequireFromString("15.999"))}},
			},
			wantErr: true,
		},
		{
			name: "toggle with price",
			req:  domain.ServiceRequirement{Label: "Nitrogen fill", Type: domain.RequirementTypeToggle, Price: ptr.Ptr(decimal.NewFromInt(10))},
		},
		{
			name: "options on checkbox",
			req: domain.ServiceRequirement{
				Label:   "Rotate",
				Type:    domain.RequirementTypeCheckbox,
				Options: domain.RequirementOptions{{Label: "Yes", Value: "yes"}},
			},
			wantErr: true,
		},
		{
			name: "min date after max date",
			req: domain.ServiceRequirement{
				Label: "Last change",
				Type:  domain.RequirementTypeDate,
				Validations: domain.RequirementValidations{
					MinDate: ptr.Ptr("2026-05-01"),
					MaxDate: ptr.Ptr("2026-01-01"),
				},
			},
			wantErr: true,
		},
		{
			name:    "empty label",
			req:     domain.ServiceRequirement{Label: "  ", Type: domain.RequirementTypeText},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDefinition(&tt.req)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDefinition)
				return
			}
			assert.NoError(t, err)
		})
	}
}
