package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TireService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-TireService/internal/service/settings/models"
	"github.com/m04kA/SMC-TireService/pkg/logger"
	"github.com/m04kA/SMC-TireService/pkg/ptr"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Get(ctx context.Context) (*domain.ShopSettings, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*domain.ShopSettings)
	return s, args.Error(1)
}

func (m *mockRepo) Save(ctx context.Context, s *domain.ShopSettings) (*domain.ShopSettings, error) {
	args := m.Called(ctx, s)
	saved, _ := args.Get(0).(*domain.ShopSettings)
	return saved, args.Error(1)
}

func TestCurrent_FallsBackToDefaults(t *testing.T) {
	repo := &mockRepo{}
	repo.On("Get", mock.Anything).Return(nil, settingsRepo.ErrSettingsNotFound)

	svc := NewService(repo, logger.NewNop())
	s, err := svc.Current(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSlotDurationMinutes, s.SlotDurationMinutes)
	assert.False(t, s.WorkingHours.Sunday.IsOpen)
}

func TestCurrent_RepositoryError(t *testing.T) {
	repo := &mockRepo{}
	repo.On("Get", mock.Anything).Return(nil, errors.New("connection refused"))

	svc := NewService(repo, logger.NewNop())
	_, err := svc.Current(context.Background())

	assert.ErrorIs(t, err, ErrInternal)
}

func TestUpdate_AppliesPartialChanges(t *testing.T) {
	current := domain.DefaultShopSettings()
	repo := &mockRepo{}
	repo.On("Get", mock.Anything).Return(current, nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(s *domain.ShopSettings) bool {
		return s.MaxConcurrentAppointments == 4 && s.SlotDurationMinutes == domain.DefaultSlotDurationMinutes
	})).Return(current, nil)

	svc := NewService(repo, logger.NewNop())
	resp, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		MaxConcurrentAppointments: ptr.Ptr(4),
		ShopEmail:                 ptr.Ptr("shop@example.com"),
	})

	require.NoError(t, err)
	assert.Equal(t, 4, resp.MaxConcurrentAppointments)
	assert.Equal(t, "shop@example.com", *resp.ShopEmail)
	repo.AssertExpectations(t)
}

func TestUpdate_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.UpdateSettingsRequest
	}{
		{name: "slot too short", req: models.UpdateSettingsRequest{SlotDurationMinutes: ptr.Ptr(1)}},
		{name: "no capacity", req: models.UpdateSettingsRequest{MaxConcurrentAppointments: ptr.Ptr(0)}},
		{name: "negative advance days", req: models.UpdateSettingsRequest{AdvanceBookingDays: ptr.Ptr(-1)}},
		{name: "bad email", req: models.UpdateSettingsRequest{ShopEmail: ptr.Ptr("not-an-email")}},
		{name: "open day closes before it opens", req: models.UpdateSettingsRequest{WorkingHours: func() *domain.WorkingHours {
			wh := domain.DefaultShopSettings().WorkingHours
			wh.Monday = domain.DaySchedule{IsOpen: true, OpenTime: ptr.Ptr("18:00"), CloseTime: ptr.Ptr("08:00")}
			return &wh
		}()}},
		{name: "open day without hours", req: models.UpdateSettingsRequest{WorkingHours: func() *domain.WorkingHours {
			wh := domain.DefaultShopSettings().WorkingHours
			wh.Sunday = domain.DaySchedule{IsOpen: true}
			return &wh
		}()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepo{}
			repo.On("Get", mock.Anything).Return(domain.DefaultShopSettings(), nil)

			svc := NewService(repo, logger.NewNop())
			_, err := svc.Update(context.Background(), &tt.req)

			assert.ErrorIs(t, err, ErrInvalidInput)
			repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}
