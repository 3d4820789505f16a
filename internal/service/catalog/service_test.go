package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TireService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/catalog"
	requirementRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/requirement"
	"github.com/m04kA/SMC-TireService/internal/service/catalog/models"
	"github.com/m04kA/SMC-TireService/pkg/logger"
	"github.com/m04kA/SMC-TireService/pkg/ptr"
)

type fakeServiceRepo struct {
	services map[int64]*domain.Service
}

func (f *fakeServiceRepo) List(_ context.Context, onlyActive bool) ([]*domain.Service, error) {
	var out []*domain.Service
	for _, s := range f.services {
		if onlyActive && !s.IsActive {
			continue
		}
		copied := *s
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeServiceRepo) GetByIDs(_ context.Context, ids []int64) ([]*domain.Service, error) {
	var out []*domain.Service
	for _, id := range ids {
		if s, ok := f.services[id]; ok {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeServiceRepo) UpdateBasePrice(_ context.Context, id int64, price *decimal.Decimal) error {
	s, ok := f.services[id]
	if !ok {
		return catalogRepo.ErrServiceNotFound
	}
	s.BasePrice = price
	return nil
}

type fakeRequirementRepo struct {
	nextID int64
	reqs   map[int64]*domain.ServiceRequirement
}

func (f *fakeRequirementRepo) ListByServiceIDs(_ context.Context, ids []int64) ([]domain.ServiceRequirement, error) {
	var out []domain.ServiceRequirement
	for _, id := range ids {
		for _, r := range f.reqs {
			if r.ServiceID == id {
				out = append(out, *r)
			}
		}
	}
	return out, nil
}

func (f *fakeRequirementRepo) GetByID(_ context.Context, id int64) (*domain.ServiceRequirement, error) {
	r, ok := f.reqs[id]
	if !ok {
		return nil, requirementRepo.ErrRequirementNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRequirementRepo) ListKeys(_ context.Context, serviceID int64) ([]string, error) {
	var keys []string
	for _, r := range f.reqs {
		if r.ServiceID == serviceID {
			keys = append(keys, r.Key)
		}
	}
	return keys, nil
}

func (f *fakeRequirementRepo) Create(_ context.Context, req *domain.ServiceRequirement) (*domain.ServiceRequirement, error) {
	for _, r := range f.reqs {
		if r.ServiceID == req.ServiceID && r.Key == req.Key {
			return nil, requirementRepo.ErrDuplicateKey
		}
	}
	f.nextID++
	req.ID = f.nextID
	copied := *req
	f.reqs[req.ID] = &copied
	return req, nil
}

func (f *fakeRequirementRepo) Update(_ context.Context, req *domain.ServiceRequirement) (*domain.ServiceRequirement, error) {
	existing, ok := f.reqs[req.ID]
	if !ok {
		return nil, requirementRepo.ErrRequirementNotFound
	}
	// ключ и услуга не обновляются, как в SQL репозитории
	req.Key = existing.Key
	req.ServiceID = existing.ServiceID
	copied := *req
	f.reqs[req.ID] = &copied
	return req, nil
}

func (f *fakeRequirementRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.reqs[id]; !ok {
		return requirementRepo.ErrRequirementNotFound
	}
	delete(f.reqs, id)
	return nil
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService() (*Service, *fakeServiceRepo, *fakeRequirementRepo) {
	services := &fakeServiceRepo{services: map[int64]*domain.Service{
		1: {ID: 1, Slug: "oil-change", Name: "Oil Change", BasePrice: ptr.Ptr(decimal.RequireFromString("45.00")), IsActive: true},
		2: {ID: 2, Slug: "winter-storage", Name: "Winter storage", IsActive: false},
	}}
	reqs := &fakeRequirementRepo{nextID: 10, reqs: map[int64]*domain.ServiceRequirement{
		10: {ID: 10, ServiceID: 1, Label: "Oil type", Key: "oil-change_oil-type", Type: domain.RequirementTypeRadio,
			Options: domain.RequirementOptions{{Label: "Conventional", Value: "conventional"}, {Label: "Synthetic", Value: "synthetic"}}},
	}}
	return NewService(services, reqs, passthroughTx{}, logger.NewNop()), services, reqs
}

func TestCreateRequirement_KeyCollisionGetsSuffix(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.CreateRequirement(context.Background(), 1, &models.RequirementRequest{
		Label: "  Oil Type ",
		Type:  domain.RequirementTypeText,
	})

	require.NoError(t, err)
	assert.Equal(t, "oil-change_oil-type_2", resp.Key)
	assert.Equal(t, "Oil Type", resp.Label)
}

func TestCreateRequirement_FirstKey(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.CreateRequirement(context.Background(), 1, &models.RequirementRequest{
		Label: "Last change date",
		Type:  domain.RequirementTypeDate,
	})

	require.NoError(t, err)
	assert.Equal(t, "oil-change_last-change-date", resp.Key)
}

func TestCreateRequirement_Errors(t *testing.T) {
	tests := []struct {
		name      string
		serviceID int64
		req       models.RequirementRequest
		wantErr   error
	}{
		{
			name:      "choice type without options",
			serviceID: 1,
			req:       models.RequirementRequest{Label: "Brand", Type: domain.RequirementTypeSelect},
			wantErr:   ErrInvalidDefinition,
		},
		{
			name:      "unknown service",
			serviceID: 99,
			req:       models.RequirementRequest{Label: "Notes", Type: domain.RequirementTypeText},
			wantErr:   ErrServiceNotFound,
		},
		{
			name:      "label without usable characters",
			serviceID: 1,
			req:       models.RequirementRequest{Label: "???", Type: domain.RequirementTypeText},
			wantErr:   ErrInvalidDefinition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService()
			_, err := svc.CreateRequirement(context.Background(), tt.serviceID, &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpdateRequirement_RelabelKeepsKey(t *testing.T) {
	svc, _, reqs := newTestService()

	resp, err := svc.UpdateRequirement(context.Background(), 10, &models.RequirementRequest{
		Label: "Engine oil",
		Type:  domain.RequirementTypeRadio,
		Options: []models.OptionRequest{
			{Label: "Conventional", Value: "conventional"},
			{Label: "Synthetic", Value: "synthetic", Price: ptr.Ptr(decimal.RequireFromString("15.00"))},
		},
		IsRequired: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "oil-change_oil-type", resp.Key)
	assert.Equal(t, "Engine oil", resp.Label)
	assert.Equal(t, "15.00", *resp.Options[1].Price)
	assert.Equal(t, "oil-change_oil-type", reqs.reqs[10].Key)
}

func TestUpdateRequirement_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.UpdateRequirement(context.Background(), 404, &models.RequirementRequest{Label: "X", Type: domain.RequirementTypeText})

	assert.ErrorIs(t, err, ErrRequirementNotFound)
}

func TestLoadActive(t *testing.T) {
	svc, _, _ := newTestService()

	services, err := svc.LoadActive(context.Background(), []int64{1})
	require.NoError(t, err)
	require.Len(t, services, 1)
	require.Len(t, services[0].Requirements, 1)

	_, err = svc.LoadActive(context.Background(), []int64{1, 2})
	assert.ErrorIs(t, err, ErrServiceInactive)

	_, err = svc.LoadActive(context.Background(), []int64{3})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestRenderForm_ReportsFieldErrors(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.RenderForm(context.Background(), 1, map[string]json.RawMessage{
		"oil-change_oil-type": json.RawMessage(`"diesel"`),
	})

	require.NoError(t, err)
	assert.False(t, resp.Valid)
	require.Len(t, resp.Fields, 1)
	require.NotNil(t, resp.Fields[0].Error)
	assert.Equal(t, "invalid_option", resp.Fields[0].Error.Code)
}

func TestUpdateBasePrice(t *testing.T) {
	svc, services, _ := newTestService()

	resp, err := svc.UpdateBasePrice(context.Background(), 1, &models.UpdatePriceRequest{BasePrice: ptr.Ptr(decimal.RequireFromString("150"))})
	require.NoError(t, err)
	assert.Equal(t, "150.00", *resp.BasePrice)
	assert.True(t, services.services[1].BasePrice.Equal(decimal.NewFromInt(150)))

	_, err = svc.UpdateBasePrice(context.Background(), 1, &models.UpdatePriceRequest{BasePrice: ptr.Ptr(decimal.NewFromInt(-1))})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateBasePrice(context.Background(), 1, &models.UpdatePriceRequest{BasePrice: ptr.Ptr(decimal.RequireFromString("99.995"))})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.True(t, services.services[1].BasePrice.Equal(decimal.NewFromInt(150)))

	resp, err = svc.UpdateBasePrice(context.Background(), 1, &models.UpdatePriceRequest{})
	require.NoError(t, err)
	assert.Nil(t, resp.BasePrice)
	assert.True(t, resp.PriceVaries)
}
