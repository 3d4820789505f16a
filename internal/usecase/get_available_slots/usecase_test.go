package get_available_slots

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/service/catalog"
	"github.com/m04kA/SMC-TireService/pkg/logger"
	"github.com/m04kA/SMC-TireService/pkg/types"
)

type fakeAppointments struct {
	appointments []*domain.Appointment
}

func (f *fakeAppointments) GetActiveByDate(_ context.Context, date time.Time) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, a := range f.appointments {
		if a.AppointmentDate.Equal(date) {
			out = append(out, a)
		}
	}
	return out, nil
}

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

type fakeSettings struct {
	settings *domain.ShopSettings
}

func (f *fakeSettings) Current(context.Context) (*domain.ShopSettings, error) {
	return f.settings, nil
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

// Понедельник 2026-11-02, 10:10
var testNow = time.Date(2026, 11, 2, 10, 10, 0, 0, time.UTC)

var tuesday = time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC)

func newUseCase(appointments ...*domain.Appointment) *UseCase {
	settings := domain.DefaultShopSettings()
	open, closing := "08:00", "10:00"
	settings.WorkingHours.Tuesday = domain.DaySchedule{IsOpen: true, OpenTime: &open, CloseTime: &closing}

	uc := NewUseCase(
		&fakeAppointments{appointments: appointments},
		&fakeCatalog{services: map[int64]*domain.Service{
			1: {ID: 1, Name: "Oil Change", EstimatedDuration: 30, IsActive: true},
			2: {ID: 2, Name: "Tire Rotation", EstimatedDuration: 45, IsActive: true},
		}},
		&fakeSettings{settings: settings},
		logger.NewNop(),
	)
	uc.timeProvider = fixedTime{now: testNow}
	return uc
}

func booked(date time.Time, start string, duration int, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		AppointmentDate: date,
		AppointmentTime: types.TimeString(start),
		DurationMinutes: duration,
		Status:          status,
	}
}

func startTimes(slots []Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.StartTime.String()
	}
	return out
}

func TestExecute_SingleSlotDuration(t *testing.T) {
	uc := newUseCase(
		booked(tuesday, "08:30", 30, domain.StatusScheduled),
		booked(tuesday, "08:30", 60, domain.StatusScheduled),
		booked(tuesday, "09:00", 30, domain.StatusCancelled),
	)

	resp, err := uc.Execute(context.Background(), &Request{Date: tuesday, ServiceIDs: []int64{1}})
	require.NoError(t, err)

	assert.True(t, resp.IsOpen)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, []string{"08:00", "08:30", "09:00", "09:30"}, startTimes(resp.Slots))

	spots := []int{2, 0, 1, 2}
	for i, slot := range resp.Slots {
		assert.Equal(t, spots[i], slot.AvailableSpots, slot.StartTime)
		assert.Equal(t, 2, slot.TotalSpots)
	}
	assert.False(t, resp.Slots[1].Available())
	assert.Equal(t, []types.TimeString{"08:30"}, resp.BookedTimes)
}

func TestExecute_LongerAppointmentNeedsRoomBeforeClosing(t *testing.T) {
	uc := newUseCase()

	resp, err := uc.Execute(context.Background(), &Request{Date: tuesday, ServiceIDs: []int64{1, 2}})
	require.NoError(t, err)

	// 30 + 45 минут = 3 слота, последняя запись должна закончиться к 10:00
	assert.Equal(t, 90, resp.DurationMinutes)
	assert.Equal(t, []string{"08:00", "08:30"}, startTimes(resp.Slots))
}

func TestExecute_WithoutServicesUsesOneSlot(t *testing.T) {
	uc := newUseCase()

	resp, err := uc.Execute(context.Background(), &Request{Date: tuesday})
	require.NoError(t, err)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Len(t, resp.Slots, 4)
}

func TestExecute_TodayRespectsNotice(t *testing.T) {
	uc := newUseCase()

	resp, err := uc.Execute(context.Background(), &Request{Date: time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	// 10:10 + 60 минут уведомления
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, "11:30", resp.Slots[0].StartTime.String())
	assert.Equal(t, "17:30", resp.Slots[len(resp.Slots)-1].StartTime.String())
}

func TestExecute_ClosedDay(t *testing.T) {
	uc := newUseCase()

	resp, err := uc.Execute(context.Background(), &Request{Date: time.Date(2026, 11, 8, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.False(t, resp.IsOpen)
	assert.Empty(t, resp.Slots)
}

func TestExecute_Errors(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{Date: time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = uc.Execute(ctx, &Request{Date: time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)

	_, err = uc.Execute(ctx, &Request{Date: tuesday, ServiceIDs: []int64{7}})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}
