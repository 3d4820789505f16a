package calculate_price

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TireService/internal/form"
	"github.com/m04kA/SMC-TireService/internal/pricing"
	calculatePrice "github.com/m04kA/SMC-TireService/internal/usecase/calculate_price"
	"github.com/m04kA/SMC-TireService/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *calculatePrice.Request) (*calculatePrice.Response, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*calculatePrice.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestHandle_ReturnsFormattedPricing(t *testing.T) {
	base := decimal.RequireFromString("45")
	addon := decimal.RequireFromString("15.5")
	total := base.Add(addon)

	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *calculatePrice.Request) bool {
		return len(req.ServiceIDs) == 2 && string(req.Answers[2]["tpms"]) == "true"
	})).Return(&calculatePrice.Response{
		Pricing: pricing.Result{
			Services: []pricing.Line{
				{
					ServiceID: 2,
					Name:      "Tire Rotation",
					BasePrice: &base,
					Addons:    []pricing.Addon{{RequirementKey: "tpms", Label: "TPMS reset", Amount: addon}},
					Total:     total,
				},
				{ServiceID: 3, Name: "Alignment", PriceVaries: true, Total: decimal.Zero},
			},
			Total:         total,
			QuoteRequired: true,
		},
		Fields: []form.FieldError{{Field: "services.2.rim", Key: "rim", Code: form.CodeInvalidOption, Message: "unknown option"}},
	}, nil)

	h := NewHandler(uc, logger.NewNop())
	r := httptest.NewRequest(http.MethodPost, "/api/v1/pricing",
		strings.NewReader(`{"serviceIds":[2,3],"answers":{"2":{"tpms":true}}}`))
	w := httptest.NewRecorder()
	h.Handle(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Services []struct {
			BasePrice   *string `json:"basePrice"`
			PriceVaries bool    `json:"priceVaries"`
			Addons      []struct {
				Key    string `json:"key"`
				Amount string `json:"amount"`
			} `json:"addons"`
			Total string `json:"total"`
		} `json:"services"`
		Total         string            `json:"total"`
		QuoteRequired bool              `json:"quoteRequired"`
		Fields        []form.FieldError `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "60.50", body.Total)
	assert.True(t, body.QuoteRequired)
	require.Len(t, body.Services, 2)
	require.NotNil(t, body.Services[0].BasePrice)
	assert.Equal(t, "45.00", *body.Services[0].BasePrice)
	require.Len(t, body.Services[0].Addons, 1)
	assert.Equal(t, "15.50", body.Services[0].Addons[0].Amount)
	assert.Nil(t, body.Services[1].BasePrice)
	assert.True(t, body.Services[1].PriceVaries)
	require.Len(t, body.Fields, 1)
	assert.Equal(t, "services.2.rim", body.Fields[0].Field)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{name: "bad json", body: `{`, status: http.StatusBadRequest},
		{name: "bad answers key", body: `{"serviceIds":[1],"answers":{"x":{}}}`, status: http.StatusBadRequest},
		{name: "empty selection", body: `{"serviceIds":[]}`, err: calculatePrice.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "unknown service", body: `{"serviceIds":[9]}`, err: fmt.Errorf("%w: id=9", calculatePrice.ErrServiceNotFound), status: http.StatusNotFound},
		{name: "internal", body: `{"serviceIds":[1]}`, err: calculatePrice.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			if tt.err != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			h := NewHandler(uc, logger.NewNop())
			w := httptest.NewRecorder()
			h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/pricing", strings.NewReader(tt.body)))

			assert.Equal(t, tt.status, w.Code)
		})
	}
}
