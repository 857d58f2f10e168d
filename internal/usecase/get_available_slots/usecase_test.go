package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salon-nv/NV-BookingService/internal/domain"
	"github.com/salon-nv/NV-BookingService/pkg/types"
)

// Фейки для зависимостей use case

type stubReservationRepo struct {
	reservations []*domain.Reservation
	err          error
}

func (s *stubReservationRepo) ListWithFilter(_ context.Context, _ domain.ReservationsFilter) ([]*domain.Reservation, error) {
	return s.reservations, s.err
}

type stubScheduleRepo struct {
	config  *domain.ScheduleConfig
	blocked bool
	err     error
}

func (s *stubScheduleRepo) Get(_ context.Context) (*domain.ScheduleConfig, error) {
	return s.config, s.err
}

func (s *stubScheduleRepo) IsDateBlocked(_ context.Context, _ time.Time) (bool, error) {
	return s.blocked, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Вторник 10:00 - 19:00, слот 60 минут
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

func newTestUseCase(resRepo ReservationRepository, schedRepo ScheduleRepository, now time.Time) *UseCase {
	uc := NewUseCase(resRepo, schedRepo, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

var (
	// Суббота - рабочий день
	saturday = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	// Воскресенье - выходной
	sunday = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	// Запросы делаются заранее, во вторник утром
	tuesdayMorning = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
)

func TestExecute_FullyFreeDay(t *testing.T) {
	uc := newTestUseCase(&stubReservationRepo{}, &stubScheduleRepo{config: testConfig()}, tuesdayMorning)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 1, Date: saturday})
	require.NoError(t, err)

	// 10:00 - 19:00 при слоте 60 минут дает 9 слотов, последний начинается в 18:00
	require.Len(t, resp.Slots, 9)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("18:00"), resp.Slots[8].StartTime)
	for _, slot := range resp.Slots {
		assert.Equal(t, 60, slot.DurationMinutes)
	}
}

func TestExecute_PartialTailSlotDropped(t *testing.T) {
	cfg := testConfig()
	cfg.WorkEnd = "18:30"
	uc := newTestUseCase(&stubReservationRepo{}, &stubScheduleRepo{config: cfg}, tuesdayMorning)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 1, Date: saturday})
	require.NoError(t, err)

	// Неполный слот 18:00 - 18:30 отбрасывается
	require.Len(t, resp.Slots, 8)
	assert.Equal(t, types.TimeString("17:00"), resp.Slots[7].StartTime)
}

func TestExecute_BookedSlotExcluded(t *testing.T) {
	resRepo := &stubReservationRepo{
		reservations: []*domain.Reservation{
			{StartTime: "12:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
		},
	}
	uc := newTestUseCase(resRepo, &stubScheduleRepo{config: testConfig()}, tuesdayMorning)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 1, Date: saturday})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 8)
	for _, slot := range resp.Slots {
		assert.NotEqual(t, types.TimeString("12:00"), slot.StartTime)
	}
}

func TestExecute_PendingReservationBlocksSlot(t *testing.T) {
	// Неподтвержденная запись держит слот наравне с подтвержденной
	resRepo := &stubReservationRepo{
		reservations: []*domain.Reservation{
			{StartTime: "14:00", DurationMinutes: 60, Status: domain.StatusPending},
		},
	}
	uc := newTestUseCase(resRepo, &stubScheduleRepo{config: testConfig()}, tuesdayMorning)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 1, Date: saturday})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 8)
	for _, slot := range resp.Slots {
		assert.NotEqual(t, types.TimeString("14:00"), slot.StartTime)
	}
}

func TestExecute_CancelledReservationFreesSlot(t *testing.T) {
	resRepo := &stubReservationRepo{
		reservations: []*domain.Reservation{
			{StartTime: "12:00", DurationMinutes: 60, Status: domain.StatusCancelled},
		},
	}
	uc := newTestUseCase(resRepo, &stubScheduleRepo{config: testConfig()}, tuesdayMorning)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 1, Date: saturday})
	require.NoError(t, err)

	assert.Len(t, resp.Slots, 9)
}

func TestExecute_MultiUnitDuration(t *testing.T) {
	// Запись 13:00 - 14:00; услуга на 120 минут не помещается ни в 12:00, ни в 13:00
	resRepo := &stubReservationRepo{
		reservations: []*domain.Reservation{
			{StartTime: "13:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
		},
	}
	uc := newTestUseCase(resRepo, &stubScheduleRepo{config: testConfig()}, tuesdayMorning)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 1, Date: saturday, DurationMinutes: 120})
	require.NoError(t, err)

	starts := make(map[types.TimeString]bool)
	for _, slot := range resp.Slots {
		starts[slot.StartTime] = true
		assert.Equal(t, 120, slot.DurationMinutes)
	}

	assert.False(t, starts["12:00"])
	assert.False(t, starts["13:00"])
	// 11:00 + 120 заканчивается ровно в 13:00, граничащие интервалы не пересекаются
	assert.True(t, starts["11:00"])
	assert.True(t, starts["14:00"])
	// Последний старт для 120 минут - 17:00
	assert.False(t, starts["18:00"])
	assert.True(t, starts["17:00"])
}

func TestExecute_NonWorkingDayReturnsEmptyList(t *testing.T) {
	uc := newTestUseCase(&stubReservationRepo{}, &stubScheduleRepo{config: testConfig()}, tuesdayMorning)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 1, Date: sunday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_BlockedDateReturnsEmptyList(t *testing.T) {
	uc := newTestUseCase(&stubReservationRepo{}, &stubScheduleRepo{config: testConfig(), blocked: true}, tuesdayMorning)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 1, Date: saturday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PastDateRejected(t *testing.T) {
	uc := newTestUseCase(&stubReservationRepo{}, &stubScheduleRepo{config: testConfig()}, tuesdayMorning)

	yesterday := tuesdayMorning.AddDate(0, 0, -1)
	_, err := uc.Execute(context.Background(), &Request{UserID: 1, Date: yesterday})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_AdvanceBookingLimit(t *testing.T) {
	cfg := testConfig()
	cfg.AdvanceBookingDays = 3
	uc := newTestUseCase(&stubReservationRepo{}, &stubScheduleRepo{config: cfg}, tuesdayMorning)

	// Суббота на 4 дня дальше вторника
	_, err := uc.Execute(context.Background(), &Request{UserID: 1, Date: saturday})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)

	// Пятница укладывается в горизонт
	friday := time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)
	_, err = uc.Execute(context.Background(), &Request{UserID: 1, Date: friday})
	assert.NoError(t, err)
}

func TestExecute_NoticeFiltersTodaySlots(t *testing.T) {
	// Запрос на сегодня в 10:30 при minNotice=60: слоты до 11:30 отфильтрованы
	saturdayMorning := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	uc := newTestUseCase(&stubReservationRepo{}, &stubScheduleRepo{config: testConfig()}, saturdayMorning)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 1, Date: saturday})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, types.TimeString("12:00"), resp.Slots[0].StartTime)
}

func TestExecute_DefaultConfigWhenNotStored(t *testing.T) {
	uc := newTestUseCase(&stubReservationRepo{}, &stubScheduleRepo{config: nil}, tuesdayMorning)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 1, Date: saturday})
	require.NoError(t, err)

	// Дефолтная конфигурация: 10:00 - 19:00 по 60 минут
	assert.Len(t, resp.Slots, 9)
}

func TestExecute_InvalidConfigRejected(t *testing.T) {
	cfg := testConfig()
	cfg.SlotMinutes = -15
	uc := newTestUseCase(&stubReservationRepo{}, &stubScheduleRepo{config: cfg}, tuesdayMorning)

	_, err := uc.Execute(context.Background(), &Request{UserID: 1, Date: saturday})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&stubReservationRepo{}, &stubScheduleRepo{config: testConfig()}, tuesdayMorning)

	_, err := uc.Execute(context.Background(), &Request{UserID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{UserID: 1, Date: saturday, DurationMinutes: -30})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
