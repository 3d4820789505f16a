package calculate_price

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/form"
	"github.com/m04kA/SMC-TireService/internal/service/catalog"
	"github.com/m04kA/SMC-TireService/pkg/logger"
)

type fakeCatalog struct {
	services map[int64]*domain.Service
}

func (f *fakeCatalog) LoadActive(_ context.Context, ids []int64) ([]*domain.Service, error) {
	out := make([]*domain.Service, 0, len(ids))
	for _, id := range ids {
		s, ok := f.services[id]
		if !ok {
			return nil, fmt.Errorf("%w: id=%d", catalog.ErrServiceNotFound, id)
		}
		out = append(out, s)
	}
	return out, nil
}

func money(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func newUseCase() *UseCase {
	services := map[int64]*domain.Service{
		1: {
			ID: 1, Name: "Oil Change", BasePrice: money("45.00"), IsActive: true,
			Requirements: []domain.ServiceRequirement{
				{
					ID: 11, ServiceID: 1, Label: "Oil Type", Key: "oil-change_oil-type",
					Type: domain.RequirementTypeRadio, IsRequired: true,
					Options: domain.RequirementOptions{
						{Label: "Conventional", Value: "conventional"},
						{Label: "Synthetic", Value: "synthetic", Price: money("15.00")},
					},
				},
			},
		},
		2: {
			ID: 2, Name: "Alignment", IsActive: true,
			Requirements: []domain.ServiceRequirement{
				{
					ID: 21, ServiceID: 2, Label: "Extras", Key: "alignment_extras",
					Type: domain.RequirementTypeMultiselect,
					Options: domain.RequirementOptions{
						{Label: "Nitrogen", Value: "nitrogen", Price: money("4.95")},
						{Label: "Valve Stems", Value: "valve-stems", Price: money("12.50")},
					},
				},
			},
		},
	}
	return NewUseCase(&fakeCatalog{services: services}, logger.NewNop())
}

func TestExecute_PricesValidAnswers(t *testing.T) {
	uc := newUseCase()

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceIDs: []int64{1, 2},
		Answers: map[int64]map[string]json.RawMessage{
			1: {"oil-change_oil-type": json.RawMessage(`"synthetic"`)},
			2: {"alignment_extras": json.RawMessage(`["valve-stems","nitrogen"]`)},
		},
	})
	require.NoError(t, err)

	assert.Empty(t, resp.Fields)
	assert.True(t, resp.Pricing.QuoteRequired)
	assert.Equal(t, "77.45", resp.Pricing.Total.StringFixed(2))
	require.Len(t, resp.Pricing.Services, 2)
	assert.True(t, resp.Pricing.Services[1].PriceVaries)
}

func TestExecute_InvalidValuesAreReportedAndIgnored(t *testing.T) {
	uc := newUseCase()

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceIDs: []int64{1, 2},
		Answers: map[int64]map[string]json.RawMessage{
			2: {"alignment_extras": json.RawMessage(`["nitrogen","chrome"]`)},
		},
	})
	require.NoError(t, err)

	// незаполненный обязательный тип масла не считается ошибкой в предварительном расчёте
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, "services.2.alignment_extras", resp.Fields[0].Field)
	assert.Equal(t, form.CodeInvalidOption, resp.Fields[0].Code)
	assert.Equal(t, "45.00", resp.Pricing.Total.StringFixed(2))
}

func TestExecute_Errors(t *testing.T) {
	uc := newUseCase()

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ServiceIDs: []int64{1, 1}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ServiceIDs: []int64{9}})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}
