package create_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salon-nv/NV-BookingService/internal/domain"
	"github.com/salon-nv/NV-BookingService/internal/integrations/identityservice"
	"github.com/salon-nv/NV-BookingService/pkg/types"
)

// Фейки для зависимостей use case

type stubReservationRepo struct {
	reservations []*domain.Reservation
	created      *domain.Reservation
	createErr    error
}

func (s *stubReservationRepo) ListWithFilter(_ context.Context, _ domain.ReservationsFilter) ([]*domain.Reservation, error) {
	return s.reservations, nil
}

func (s *stubReservationRepo) Create(_ context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = reservation
	out := *reservation
	out.ID = 42
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	return &out, nil
}

type stubScheduleRepo struct {
	config  *domain.ScheduleConfig
	blocked bool
}

func (s *stubScheduleRepo) Get(_ context.Context) (*domain.ScheduleConfig, error) {
	return s.config, nil
}

func (s *stubScheduleRepo) IsDateBlocked(_ context.Context, _ time.Time) (bool, error) {
	return s.blocked, nil
}

type stubIdentityClient struct {
	profile *identityservice.Profile
	err     error
}

func (s *stubIdentityClient) GetProfileWithGracefulDegradation(_ context.Context, _ int64) (*identityservice.Profile, error) {
	return s.profile, s.err
}

// inlineTxManager выполняет функцию напрямую, без реальной транзакции
type inlineTxManager struct{}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

func testPhone() *string {
	phone := "+7 900 000-00-00"
	return &phone
}

var (
	saturday       = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	sunday         = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	tuesdayMorning = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
)

func newTestUseCase(
	resRepo *stubReservationRepo,
	schedRepo *stubScheduleRepo,
	identity *stubIdentityClient,
	now time.Time,
) *UseCase {
	uc := NewUseCase(resRepo, schedRepo, identity, inlineTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func okIdentity() *stubIdentityClient {
	return &stubIdentityClient{
		profile: &identityservice.Profile{ID: 7, DisplayName: "Анна Иванова", Phone: testPhone()},
	}
}

func TestExecute_Success(t *testing.T) {
	resRepo := &stubReservationRepo{}
	uc := newTestUseCase(resRepo, &stubScheduleRepo{config: testConfig()}, okIdentity(), tuesdayMorning)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    7,
		Date:      saturday,
		StartTime: "14:00",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.NotEmpty(t, resp.PublicCode)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, types.TimeString("14:00"), resp.StartTime)
	// Длительность по умолчанию равна одной базовой единице слота
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, "Анна Иванова", resp.ClientName)
	require.NotNil(t, resp.ClientPhone)

	require.NotNil(t, resRepo.created)
	assert.Equal(t, domain.StatusPending, resRepo.created.Status)
	assert.NotEmpty(t, resRepo.created.PublicCode)
}

func TestExecute_MisalignedStartTime(t *testing.T) {
	uc := newTestUseCase(&stubReservationRepo{}, &stubScheduleRepo{config: testConfig()}, okIdentity(), tuesdayMorning)

	// 13:30 не лежит на 60-минутной сетке от 10:00
	_, err := uc.Execute(context.Background(), &Request{UserID: 7, Date: saturday, StartTime: "13:30"})
	assert.ErrorIs(t, err, ErrMisalignedSlot)
}

func TestExecute_OutsideBusinessHours(t *testing.T) {
	uc := newTestUseCase(&stubReservationRepo{}, &stubScheduleRepo{config: testConfig()}, okIdentity(), tuesdayMorning)

	// 18:00 + 120 минут заканчивается в 20:00, позже закрытия
	_, err := uc.Execute(context.Background(), &Request{
		UserID: 7, Date: saturday, StartTime: "18:00", DurationMinutes: 120,
	})
	assert.ErrorIs(t, err, ErrOutsideBusinessHours)

	// Начало раньше открытия
	_, err = uc.Execute(context.Background(), &Request{UserID: 7, Date: saturday, StartTime: "09:00"})
	assert.ErrorIs(t, err, ErrOutsideBusinessHours)
}

func TestExecute_NonWorkingDay(t *testing.T) {
	uc := newTestUseCase(&stubReservationRepo{}, &stubScheduleRepo{config: testConfig()}, okIdentity(), tuesdayMorning)

	_, err := uc.Execute(context.Background(), &Request{UserID: 7, Date: sunday, StartTime: "14:00"})
	assert.ErrorIs(t, err, ErrNonWorkingDay)
}

func TestExecute_BlockedDate(t *testing.T) {
	uc := newTestUseCase(
		&stubReservationRepo{},
		&stubScheduleRepo{config: testConfig(), blocked: true},
		okIdentity(),
		tuesdayMorning,
	)

	_, err := uc.Execute(context.Background(), &Request{UserID: 7, Date: saturday, StartTime: "14:00"})
	assert.ErrorIs(t, err, ErrNonWorkingDay)
}

func TestExecute_SlotConflict(t *testing.T) {
	resRepo := &stubReservationRepo{
		reservations: []*domain.Reservation{
			{ID: 1, StartTime: "14:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
		},
	}
	uc := newTestUseCase(resRepo, &stubScheduleRepo{config: testConfig()}, okIdentity(), tuesdayMorning)

	_, err := uc.Execute(context.Background(), &Request{UserID: 7, Date: saturday, StartTime: "14:00"})
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Nil(t, resRepo.created)
}

func TestExecute_PendingReservationConflicts(t *testing.T) {
	// Неподтвержденная запись держит слот наравне с подтвержденной
	resRepo := &stubReservationRepo{
		reservations: []*domain.Reservation{
			{ID: 1, StartTime: "14:00", DurationMinutes: 60, Status: domain.StatusPending},
		},
	}
	uc := newTestUseCase(resRepo, &stubScheduleRepo{config: testConfig()}, okIdentity(), tuesdayMorning)

	_, err := uc.Execute(context.Background(), &Request{UserID: 7, Date: saturday, StartTime: "14:00"})
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_PartialOverlapConflicts(t *testing.T) {
	// Запись 13:00 - 15:00; услуга на 120 минут с 14:00 пересекается частично
	resRepo := &stubReservationRepo{
		reservations: []*domain.Reservation{
			{ID: 1, StartTime: "13:00", DurationMinutes: 120, Status: domain.StatusConfirmed},
		},
	}
	uc := newTestUseCase(resRepo, &stubScheduleRepo{config: testConfig()}, okIdentity(), tuesdayMorning)

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 7, Date: saturday, StartTime: "14:00", DurationMinutes: 120,
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_AdjacentReservationDoesNotConflict(t *testing.T) {
	// Запись 13:00 - 14:00 граничит с новым интервалом 14:00 - 15:00
	resRepo := &stubReservationRepo{
		reservations: []*domain.Reservation{
			{ID: 1, StartTime: "13:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
		},
	}
	uc := newTestUseCase(resRepo, &stubScheduleRepo{config: testConfig()}, okIdentity(), tuesdayMorning)

	_, err := uc.Execute(context.Background(), &Request{UserID: 7, Date: saturday, StartTime: "14:00"})
	assert.NoError(t, err)
}

func TestExecute_CancelledReservationDoesNotConflict(t *testing.T) {
	resRepo := &stubReservationRepo{
		reservations: []*domain.Reservation{
			{ID: 1, StartTime: "14:00", DurationMinutes: 60, Status: domain.StatusCancelled},
		},
	}
	uc := newTestUseCase(resRepo, &stubScheduleRepo{config: testConfig()}, okIdentity(), tuesdayMorning)

	_, err := uc.Execute(context.Background(), &Request{UserID: 7, Date: saturday, StartTime: "14:00"})
	assert.NoError(t, err)
}

func TestExecute_TooLateToBookToday(t *testing.T) {
	// Запрос на сегодня в 13:30: слот 14:00 нарушает minNotice=60
	saturdayAfternoon := time.Date(2026, 3, 14, 13, 30, 0, 0, time.UTC)
	uc := newTestUseCase(&stubReservationRepo{}, &stubScheduleRepo{config: testConfig()}, okIdentity(), saturdayAfternoon)

	_, err := uc.Execute(context.Background(), &Request{UserID: 7, Date: saturday, StartTime: "14:00"})
	assert.ErrorIs(t, err, ErrTooLateToBook)

	// Слот 15:00 проходит
	_, err = uc.Execute(context.Background(), &Request{UserID: 7, Date: saturday, StartTime: "15:00"})
	assert.NoError(t, err)
}

func TestExecute_PastDateRejected(t *testing.T) {
	uc := newTestUseCase(&stubReservationRepo{}, &stubScheduleRepo{config: testConfig()}, okIdentity(), tuesdayMorning)

	yesterday := tuesdayMorning.AddDate(0, 0, -1)
	_, err := uc.Execute(context.Background(), &Request{UserID: 7, Date: yesterday, StartTime: "14:00"})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_AdvanceBookingLimit(t *testing.T) {
	cfg := testConfig()
	cfg.AdvanceBookingDays = 3
	uc := newTestUseCase(&stubReservationRepo{}, &stubScheduleRepo{config: cfg}, okIdentity(), tuesdayMorning)

	_, err := uc.Execute(context.Background(), &Request{UserID: 7, Date: saturday, StartTime: "14:00"})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_UserNotFound(t *testing.T) {
	identity := &stubIdentityClient{err: identityservice.ErrUserNotFound}
	uc := newTestUseCase(&stubReservationRepo{}, &stubScheduleRepo{config: testConfig()}, identity, tuesdayMorning)

	_, err := uc.Execute(context.Background(), &Request{UserID: 7, Date: saturday, StartTime: "14:00"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestExecute_IdentityServiceDegraded(t *testing.T) {
	// При недоступности IdentityService бронирование создается с заглушкой
	identity := &stubIdentityClient{err: identityservice.ErrServiceDegraded}
	resRepo := &stubReservationRepo{}
	uc := newTestUseCase(resRepo, &stubScheduleRepo{config: testConfig()}, identity, tuesdayMorning)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 7, Date: saturday, StartTime: "14:00"})
	require.NoError(t, err)

	assert.Equal(t, "Клиент #7", resp.ClientName)
	assert.Nil(t, resp.ClientPhone)
}

func TestExecute_InvalidConfigRejected(t *testing.T) {
	cfg := testConfig()
	cfg.WorkStart = "19:00"
	cfg.WorkEnd = "10:00"
	uc := newTestUseCase(&stubReservationRepo{}, &stubScheduleRepo{config: cfg}, okIdentity(), tuesdayMorning)

	_, err := uc.Execute(context.Background(), &Request{UserID: 7, Date: saturday, StartTime: "14:00"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&stubReservationRepo{}, &stubScheduleRepo{config: testConfig()}, okIdentity(), tuesdayMorning)

	cases := []struct {
		name string
		req  *Request
	}{
		{"no user", &Request{Date: saturday, StartTime: "14:00"}},
		{"zero date", &Request{UserID: 7, StartTime: "14:00"}},
		{"no start time", &Request{UserID: 7, Date: saturday}},
		{"bad start time format", &Request{UserID: 7, Date: saturday, StartTime: "25:99"}},
		{"negative duration", &Request{UserID: 7, Date: saturday, StartTime: "14:00", DurationMinutes: -60}},
		{"duration over maximum", &Request{UserID: 7, Date: saturday, StartTime: "14:00", DurationMinutes: domain.MaxReservationDuration + 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tc.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_DefaultConfigWhenNotStored(t *testing.T) {
	uc := newTestUseCase(&stubReservationRepo{}, &stubScheduleRepo{config: nil}, okIdentity(), tuesdayMorning)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 7, Date: saturday, StartTime: "14:00"})
	require.NoError(t, err)
	assert.Equal(t, 60, resp.DurationMinutes)
}
