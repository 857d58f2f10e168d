package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salon-nv/NV-BookingService/internal/domain"
	scheduleRepo "github.com/salon-nv/NV-BookingService/internal/infra/storage/schedule"
	"github.com/salon-nv/NV-BookingService/internal/service/schedule/models"
	"github.com/salon-nv/NV-BookingService/pkg/ptr"
)

const (
	adminID  = int64(1)
	clientID = int64(7)
)

// stubScheduleRepo in-memory репозиторий для тестов сервиса
type stubScheduleRepo struct {
	config  *domain.ScheduleConfig
	blocked map[string]*domain.BlockedDate
}

func newStubScheduleRepo() *stubScheduleRepo {
	return &stubScheduleRepo{blocked: map[string]*domain.BlockedDate{}}
}

func (s *stubScheduleRepo) Get(_ context.Context) (*domain.ScheduleConfig, error) {
	if s.config == nil {
		return nil, scheduleRepo.ErrConfigNotFound
	}
	return s.config, nil
}

func (s *stubScheduleRepo) Set(_ context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	out := *config
	out.ID = 1
	out.UpdatedAt = time.Now()
	s.config = &out
	return &out, nil
}

func (s *stubScheduleRepo) ListBlockedDates(_ context.Context, _, _ *time.Time) ([]*domain.BlockedDate, error) {
	out := make([]*domain.BlockedDate, 0, len(s.blocked))
	for _, bd := range s.blocked {
		out = append(out, bd)
	}
	return out, nil
}

func (s *stubScheduleRepo) AddBlockedDate(_ context.Context, blocked *domain.BlockedDate) error {
	key := blocked.Date.Format(domain.DateFormat)
	if _, ok := s.blocked[key]; ok {
		return scheduleRepo.ErrDateAlreadyBlocked
	}
	s.blocked[key] = blocked
	return nil
}

func (s *stubScheduleRepo) RemoveBlockedDate(_ context.Context, date time.Time) error {
	key := date.Format(domain.DateFormat)
	if _, ok := s.blocked[key]; !ok {
		return scheduleRepo.ErrBlockedDateNotFound
	}
	delete(s.blocked, key)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(repo *stubScheduleRepo) *Service {
	return NewService(repo, []int64{adminID}, nopLogger{})
}

func TestGetConfig_DefaultsWhenNotStored(t *testing.T) {
	svc := newTestService(newStubScheduleRepo())

	resp, err := svc.GetConfig(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultWorkStart, resp.WorkStart)
	assert.Equal(t, domain.DefaultWorkEnd, resp.WorkEnd)
	assert.Equal(t, domain.DefaultSlotMinutes, resp.SlotMinutes)
	assert.Equal(t, domain.DefaultMinNoticeMinutes, resp.MinNoticeMinutes)
}

func TestUpdateConfig_AdminOnly(t *testing.T) {
	svc := newTestService(newStubScheduleRepo())

	_, err := svc.UpdateConfig(context.Background(), &models.UpdateConfigRequest{
		UserID:      clientID,
		SlotMinutes: ptr.Ptr(30),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateConfig_PartialUpdate(t *testing.T) {
	repo := newStubScheduleRepo()
	svc := newTestService(repo)

	// Первое обновление поверх дефолтов
	resp, err := svc.UpdateConfig(context.Background(), &models.UpdateConfigRequest{
		UserID:      adminID,
		SlotMinutes: ptr.Ptr(30),
	})
	require.NoError(t, err)

	assert.Equal(t, 30, resp.SlotMinutes)
	// Остальные поля остались дефолтными
	assert.Equal(t, domain.DefaultWorkStart, resp.WorkStart)
	assert.Equal(t, domain.DefaultWorkEnd, resp.WorkEnd)

	// Второе обновление не затирает первое
	resp, err = svc.UpdateConfig(context.Background(), &models.UpdateConfigRequest{
		UserID:    adminID,
		WorkStart: ptr.Ptr("09:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "09:00", resp.WorkStart)
	assert.Equal(t, 30, resp.SlotMinutes)
}

func TestUpdateConfig_WorkDays(t *testing.T) {
	svc := newTestService(newStubScheduleRepo())

	days := []int{1, 2, 3, 4, 5}
	resp, err := svc.UpdateConfig(context.Background(), &models.UpdateConfigRequest{
		UserID:   adminID,
		WorkDays: &days,
	})
	require.NoError(t, err)
	assert.Equal(t, days, resp.WorkDays)

	badDays := []int{1, 7}
	_, err = svc.UpdateConfig(context.Background(), &models.UpdateConfigRequest{
		UserID:   adminID,
		WorkDays: &badDays,
	})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestUpdateConfig_InvalidValues(t *testing.T) {
	svc := newTestService(newStubScheduleRepo())

	cases := []struct {
		name string
		req  *models.UpdateConfigRequest
	}{
		{"bad time format", &models.UpdateConfigRequest{UserID: adminID, WorkStart: ptr.Ptr("25:00")}},
		{"start after end", &models.UpdateConfigRequest{UserID: adminID, WorkStart: ptr.Ptr("20:00")}},
		{"slot too small", &models.UpdateConfigRequest{UserID: adminID, SlotMinutes: ptr.Ptr(domain.MinSlotMinutes - 1)}},
		{"slot too large", &models.UpdateConfigRequest{UserID: adminID, SlotMinutes: ptr.Ptr(domain.MaxSlotMinutes + 1)}},
		{"negative notice", &models.UpdateConfigRequest{UserID: adminID, MinNoticeMinutes: ptr.Ptr(-1)}},
		{"notice above upper bound", &models.UpdateConfigRequest{UserID: adminID, MinNoticeMinutes: ptr.Ptr(domain.MinNoticeMinutesUpperBound + 1)}},
		{"advance above maximum", &models.UpdateConfigRequest{UserID: adminID, AdvanceBookingDays: ptr.Ptr(domain.MaxAdvanceBookingDays + 1)}},
		{"empty work days", &models.UpdateConfigRequest{UserID: adminID, WorkDays: &[]int{}}},
		// Слот 480 минут не помещается в рабочий день 10:00 - 12:00
		{"slot does not fit into working hours", &models.UpdateConfigRequest{
			UserID:      adminID,
			WorkEnd:     ptr.Ptr("12:00"),
			SlotMinutes: ptr.Ptr(domain.MaxSlotMinutes),
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.UpdateConfig(context.Background(), tc.req)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestBlockDate(t *testing.T) {
	repo := newStubScheduleRepo()
	svc := newTestService(repo)

	reason := "санитарный день"
	resp, err := svc.BlockDate(context.Background(), &models.BlockDateRequest{
		UserID: adminID,
		Date:   "2026-03-14",
		Reason: &reason,
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14", resp.Date)
	require.NotNil(t, resp.Reason)
	assert.Equal(t, reason, *resp.Reason)

	// Повторная блокировка той же даты
	_, err = svc.BlockDate(context.Background(), &models.BlockDateRequest{
		UserID: adminID,
		Date:   "2026-03-14",
	})
	assert.ErrorIs(t, err, ErrDateAlreadyBlocked)
}

func TestBlockDate_AdminOnly(t *testing.T) {
	svc := newTestService(newStubScheduleRepo())

	_, err := svc.BlockDate(context.Background(), &models.BlockDateRequest{
		UserID: clientID,
		Date:   "2026-03-14",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestBlockDate_InvalidDate(t *testing.T) {
	svc := newTestService(newStubScheduleRepo())

	_, err := svc.BlockDate(context.Background(), &models.BlockDateRequest{
		UserID: adminID,
		Date:   "14.03.2026",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUnblockDate(t *testing.T) {
	repo := newStubScheduleRepo()
	svc := newTestService(repo)

	_, err := svc.BlockDate(context.Background(), &models.BlockDateRequest{
		UserID: adminID,
		Date:   "2026-03-14",
	})
	require.NoError(t, err)

	err = svc.UnblockDate(context.Background(), &models.UnblockDateRequest{
		UserID: adminID,
		Date:   "2026-03-14",
	})
	require.NoError(t, err)
	assert.Empty(t, repo.blocked)

	// Дата больше не заблокирована
	err = svc.UnblockDate(context.Background(), &models.UnblockDateRequest{
		UserID: adminID,
		Date:   "2026-03-14",
	})
	assert.ErrorIs(t, err, ErrBlockedDateNotFound)
}

func TestUnblockDate_AdminOnly(t *testing.T) {
	svc := newTestService(newStubScheduleRepo())

	err := svc.UnblockDate(context.Background(), &models.UnblockDateRequest{
		UserID: clientID,
		Date:   "2026-03-14",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestListBlockedDates_Public(t *testing.T) {
	repo := newStubScheduleRepo()
	svc := newTestService(repo)

	resp, err := svc.ListBlockedDates(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, resp.BlockedDates)

	_, err = svc.BlockDate(context.Background(), &models.BlockDateRequest{
		UserID: adminID,
		Date:   "2026-03-14",
	})
	require.NoError(t, err)

	resp, err = svc.ListBlockedDates(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Len(t, resp.BlockedDates, 1)
	assert.Equal(t, "2026-03-14", resp.BlockedDates[0].Date)
}
