package pricing

import (
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

func oilChange() *domain.Service {
	return &domain.Service{
		ID:        1,
		Name:      "Oil Change",
		BasePrice: money("45.00"),
		Requirements: []domain.ServiceRequirement{
			{ID: 11, ServiceID: 1, Key: "oil_type", Label: "Oil type", Type: domain.RequirementTypeRadio, IsRequired: true, SortOrder: 1,
				Options: domain.RequirementOptions{
					{Label: "Conventional", Value: "conventional"},
					{Label: "Synthetic", Value: "synthetic", Price: money("15.00")},
				}},
			{ID: 12, ServiceID: 1, Key: "last_change_date", Label: "Last change", Type: domain.RequirementTypeDate, SortOrder: 2},
			{ID: 13, ServiceID: 1, Key: "flush", Label: "Engine flush", Type: domain.RequirementTypeCheckbox, SortOrder: 3, Price: money("10.00")},
		},
	}
}

func tireMount() *domain.Service {
	return &domain.Service{
		ID:        2,
		Name:      "Tire mounting",
		BasePrice: money("80.10"),
		Requirements: []domain.ServiceRequirement{
			// SortOrder не совпадает с порядком объявления
			{ID: 22, ServiceID: 2, Key: "nitrogen", Label: "Nitrogen", Type: domain.RequirementTypeToggle, SortOrder: 2, Price: money("0.10")},
			{ID: 21, ServiceID: 2, Key: "extras", Label: "Extras", Type: domain.RequirementTypeMultiselect, SortOrder: 1,
				Options: domain.RequirementOptions{
					{Label: "TPMS reset", Value: "tpms", Price: money("20.20")},
					{Label: "Valve stems", Value: "valves", Price: money("4.30")},
					{Label: "Disposal", Value: "disposal"},
				}},
			{ID: 23, ServiceID: 2, Key: "plate", Label: "Plate", Type: domain.RequirementTypeText, SortOrder: 3},
		},
	}
}

func TestCompute_OilChangeSynthetic(t *testing.T) {
	result := Compute([]*domain.Service{oilChange()}, Answers{
		1: {"oil_type": domain.StringValue("synthetic")},
	})

	require.Len(t, result.Services, 1)
	line := result.Services[0]
	require.Len(t, line.Addons, 1)
	assert.Equal(t, "Oil type: Synthetic", line.Addons[0].Label)
	assert.Equal(t, "60.00", Format(line.Total))
	assert.Equal(t, "60.00", Format(result.Total))
	assert.False(t, result.QuoteRequired)
}

func TestCompute_CheckboxAddonIsExact(t *testing.T) {
	result := Compute([]*domain.Service{oilChange()}, Answers{
		1: {"flush": domain.BoolValue(true)},
	})

	assert.True(t, result.Services[0].Total.Equal(decimal.RequireFromString("55")))
	assert.Equal(t, "55.00", Format(result.Total))
}

func TestCompute_UncheckedCheckboxAddsNothing(t *testing.T) {
	result := Compute([]*domain.Service{oilChange()}, Answers{
		1: {"flush": domain.BoolValue(false), "oil_type": domain.StringValue("conventional")},
	})

	assert.Empty(t, result.Services[0].Addons)
	assert.Equal(t, "45.00", Format(result.Total))
}

func TestCompute_NoDriftOnRepeatedCents(t *testing.T) {
	svc := &domain.Service{ID: 9, Name: "Cents", BasePrice: money("0.00")}
	answers := map[string]domain.RequirementValue{}
	for i := 0; i < 100; i++ {
		key := "opt" + decimal.NewFromInt(int64(i)).String()
		svc.Requirements = append(svc.Requirements, domain.ServiceRequirement{
			ID: int64(i + 1), Key: key, Label: key, Type: domain.RequirementTypeToggle, SortOrder: i, Price: money("0.10"),
		})
		answers[key] = domain.BoolValue(true)
	}

	result := Compute([]*domain.Service{svc}, Answers{9: answers})

	assert.Equal(t, "10.00", Format(result.Total))
	assert.True(t, result.Total.Equal(decimal.NewFromInt(10)))
}

func TestCompute_OrderIndependentTotal(t *testing.T) {
	answers := Answers{
		1: {"oil_type": domain.StringValue("synthetic"), "flush": domain.BoolValue(true)},
		2: {"extras": domain.StringListValue([]string{"valves", "tpms"}), "nitrogen": domain.BoolValue(true)},
	}

	ab := Compute([]*domain.Service{oilChange(), tireMount()}, answers)
	ba := Compute([]*domain.Service{tireMount(), oilChange()}, answers)

	assert.True(t, ab.Total.Equal(ba.Total))
	assert.Equal(t, "174.70", Format(ab.Total))
	assert.Equal(t, int64(1), ab.Services[0].ServiceID)
	assert.Equal(t, int64(2), ba.Services[0].ServiceID)
}

func TestCompute_MultiselectAddonsOncePerOptionInDeclarationOrder(t *testing.T) {
	result := Compute([]*domain.Service{tireMount()}, Answers{
		2: {
			"extras":   domain.StringListValue([]string{"disposal", "valves", "tpms"}),
			"nitrogen": domain.BoolValue(true),
		},
	})

	addons := result.Services[0].Addons
	require.Len(t, addons, 3)
	assert.Equal(t, "Extras: TPMS reset", addons[0].Label)
	assert.Equal(t, "Extras: Valve stems", addons[1].Label)
	assert.Equal(t, "Nitrogen", addons[2].Label)
	assert.Equal(t, "104.70", Format(result.Total))
}

func TestCompute_NullBasePriceCountsAsZeroAndFlagsQuote(t *testing.T) {
	svc := tireMount()
	svc.BasePrice = nil

	result := Compute([]*domain.Service{oilChange(), svc}, Answers{
		2: {"nitrogen": domain.BoolValue(true)},
	})

	assert.True(t, result.QuoteRequired)
	assert.False(t, result.Services[0].PriceVaries)
	assert.True(t, result.Services[1].PriceVaries)
	assert.Nil(t, result.Services[1].BasePrice)
	assert.Equal(t, "0.10", Format(result.Services[1].Total))
	assert.Equal(t, "45.10", Format(result.Total))
}

func TestCompute_UnknownOptionAndMismatchedValueAddNothing(t *testing.T) {
	result := Compute([]*domain.Service{oilChange()}, Answers{
		1: {
			"oil_type": domain.StringValue("racing"),
			"flush":    domain.StringValue("yes"),
		},
	})

	assert.Empty(t, result.Services[0].Addons)
	assert.Equal(t, "45.00", Format(result.Total))
}

func TestCompute_Empty(t *testing.T) {
	result := Compute(nil, nil)

	assert.Empty(t, result.Services)
	assert.Equal(t, "0.00", Format(result.Total))
}
