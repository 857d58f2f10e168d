package get_calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salon-nv/NV-BookingService/internal/domain"
)

// Фейки для зависимостей use case

type stubReservationRepo struct {
	reservations []*domain.Reservation
}

func (s *stubReservationRepo) ListWithFilter(_ context.Context, _ domain.ReservationsFilter) ([]*domain.Reservation, error) {
	return s.reservations, nil
}

type stubScheduleRepo struct {
	config  *domain.ScheduleConfig
	blocked []*domain.BlockedDate
}

func (s *stubScheduleRepo) Get(_ context.Context) (*domain.ScheduleConfig, error) {
	return s.config, nil
}

func (s *stubScheduleRepo) ListBlockedDates(_ context.Context, _, _ *time.Time) ([]*domain.BlockedDate, error) {
	return s.blocked, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

func testConfig() *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		WorkStart:   "10:00",
		WorkEnd:     "19:00",
		SlotMinutes: 60,
		WorkDays: []time.Weekday{
			time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday,
		},
		MinNoticeMinutes: 60,
	}
}

var (
	// Вторник
	tuesday = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	// Окно вторник - понедельник содержит одно воскресенье и один понедельник
	tuesdayMorning = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
)

func newTestUseCase(resRepo ReservationRepository, schedRepo ScheduleRepository, now time.Time) *UseCase {
	uc := NewUseCase(resRepo, schedRepo, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestExecute_WeekWindow(t *testing.T) {
	uc := newTestUseCase(&stubReservationRepo{}, &stubScheduleRepo{config: testConfig()}, tuesdayMorning)

	resp, err := uc.Execute(context.Background(), &Request{From: tuesday})
	require.NoError(t, err)

	// По умолчанию окно на 7 дней
	require.Len(t, resp.Days, 7)
	assert.Equal(t, tuesday, resp.From)

	// Вторник - суббота рабочие, воскресенье и понедельник нет
	for i, day := range resp.Days {
		assert.Equal(t, tuesday.AddDate(0, 0, i), day.Date)
	}
	for i := 0; i < 5; i++ {
		assert.True(t, resp.Days[i].WorkingDay, "day %d", i)
		assert.Equal(t, 9, resp.Days[i].TotalSlots)
		assert.Equal(t, 9, resp.Days[i].FreeSlots)
	}
	for i := 5; i < 7; i++ {
		assert.False(t, resp.Days[i].WorkingDay, "day %d", i)
		assert.Zero(t, resp.Days[i].TotalSlots)
		assert.Zero(t, resp.Days[i].FreeSlots)
	}
}

func TestExecute_ReservationsReduceFreeSlots(t *testing.T) {
	wednesday := tuesday.AddDate(0, 0, 1)
	resRepo := &stubReservationRepo{
		reservations: []*domain.Reservation{
			{Date: wednesday, StartTime: "12:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
			{Date: wednesday, StartTime: "14:00", DurationMinutes: 120, Status: domain.StatusPending},
			// Отмененная запись слоты не занимает
			{Date: wednesday, StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusCancelled},
		},
	}
	uc := newTestUseCase(resRepo, &stubScheduleRepo{config: testConfig()}, tuesdayMorning)

	resp, err := uc.Execute(context.Background(), &Request{From: tuesday, Days: 2})
	require.NoError(t, err)
	require.Len(t, resp.Days, 2)

	// Вторник свободен целиком
	assert.Equal(t, 9, resp.Days[0].FreeSlots)
	// Среда: занято 12:00 плюс двухчасовая запись 14:00 - 16:00
	assert.Equal(t, 9, resp.Days[1].TotalSlots)
	assert.Equal(t, 6, resp.Days[1].FreeSlots)
}

func TestExecute_BlockedDateNotWorking(t *testing.T) {
	wednesday := tuesday.AddDate(0, 0, 1)
	schedRepo := &stubScheduleRepo{
		config:  testConfig(),
		blocked: []*domain.BlockedDate{{Date: wednesday}},
	}
	uc := newTestUseCase(&stubReservationRepo{}, schedRepo, tuesdayMorning)

	resp, err := uc.Execute(context.Background(), &Request{From: tuesday, Days: 2})
	require.NoError(t, err)

	assert.True(t, resp.Days[0].WorkingDay)
	assert.False(t, resp.Days[1].WorkingDay)
	assert.Zero(t, resp.Days[1].FreeSlots)
}

func TestExecute_PastDaysHaveNoFreeSlots(t *testing.T) {
	// Окно начинается в понедельник, "сегодня" - вторник
	monday := tuesday.AddDate(0, 0, -1)
	uc := newTestUseCase(&stubReservationRepo{}, &stubScheduleRepo{config: testConfig()}, tuesdayMorning)

	resp, err := uc.Execute(context.Background(), &Request{From: monday, Days: 3})
	require.NoError(t, err)
	require.Len(t, resp.Days, 3)

	// Понедельник нерабочий, но и для прошедшего рабочего дня слотов не было бы
	assert.False(t, resp.Days[0].WorkingDay)
	assert.Zero(t, resp.Days[0].FreeSlots)
	assert.Equal(t, 9, resp.Days[1].FreeSlots)
	assert.Equal(t, 9, resp.Days[2].FreeSlots)
}

func TestExecute_DaysBounds(t *testing.T) {
	uc := newTestUseCase(&stubReservationRepo{}, &stubScheduleRepo{config: testConfig()}, tuesdayMorning)

	_, err := uc.Execute(context.Background(), &Request{From: tuesday, Days: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{From: tuesday, Days: domain.MaxCalendarDays + 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	resp, err := uc.Execute(context.Background(), &Request{From: tuesday, Days: domain.MaxCalendarDays})
	require.NoError(t, err)
	assert.Len(t, resp.Days, domain.MaxCalendarDays)
}

func TestExecute_ZeroFromRejected(t *testing.T) {
	uc := newTestUseCase(&stubReservationRepo{}, &stubScheduleRepo{config: testConfig()}, tuesdayMorning)

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_InvalidConfigRejected(t *testing.T) {
	cfg := testConfig()
	cfg.WorkDays = nil
	uc := newTestUseCase(&stubReservationRepo{}, &stubScheduleRepo{config: cfg}, tuesdayMorning)

	_, err := uc.Execute(context.Background(), &Request{From: tuesday})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
