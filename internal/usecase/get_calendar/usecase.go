package get_calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salon-nv/NV-BookingService/internal/domain"
	scheduleRepo "github.com/salon-nv/NV-BookingService/internal/infra/storage/schedule"
	"github.com/salon-nv/NV-BookingService/pkg/types"
)

// UseCase use case для получения календаря занятости
type UseCase struct {
	reservationRepo ReservationRepository
	scheduleRepo    ScheduleRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	scheduleRepo ScheduleRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		scheduleRepo:    scheduleRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения календаря занятости
// Возвращает сводку по каждому дню окна: рабочий ли день, сколько слотов
// свободно из общего количества. Бронирования и блокировки за весь период
// выбираются одним запросом
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetCalendar: from=%s, days=%d", req.From.Format(domain.DateFormat), req.Days)

	// 1. Валидация входных данных
	days := req.Days
	if days == 0 {
		days = domain.DefaultCalendarDays
	}
	if days < 1 || days > domain.MaxCalendarDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", ErrInvalidInput, domain.MaxCalendarDays)
	}
	if req.From.IsZero() {
		return nil, fmt.Errorf("%w: from date is required", ErrInvalidInput)
	}

	// 2. Получаем конфигурацию расписания
	config, err := uc.scheduleRepo.Get(ctx)
	if err != nil && !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
		uc.logger.Error("GetCalendar: failed to get schedule config: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}

	// Если конфигурация еще не настроена, используем дефолтные значения
	if config == nil {
		config = defaultScheduleConfig()
	}

	if err := config.Validate(); err != nil {
		uc.logger.Error("GetCalendar: schedule config is invalid: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	from := truncateToDay(req.From)
	to := from.AddDate(0, 0, days-1)

	// 3. Заблокированные даты окна одним запросом
	blockedDates, err := uc.scheduleRepo.ListBlockedDates(ctx, &from, &to)
	if err != nil {
		uc.logger.Error("GetCalendar: failed to list blocked dates: %v", err)
		return nil, fmt.Errorf("%w: failed to list blocked dates: %v", ErrInternal, err)
	}

	blocked := make(map[string]bool, len(blockedDates))
	for _, bd := range blockedDates {
		blocked[bd.Date.Format(domain.DateFormat)] = true
	}

	// 4. Активные бронирования окна одним запросом
	filter := domain.ReservationsFilter{
		StartDate:       &from,
		EndDate:         &to,
		IncludeInactive: false, // Только активные бронирования
	}

	reservations, err := uc.reservationRepo.ListWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetCalendar: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	byDay := make(map[string][]*domain.Reservation, days)
	for _, res := range reservations {
		key := res.Date.Format(domain.DateFormat)
		byDay[key] = append(byDay[key], res)
	}

	// 5. Сетка слотов одинакова для всех рабочих дней
	starts, err := generateSlotStarts(config)
	if err != nil {
		uc.logger.Error("GetCalendar: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}
	totalSlots := len(starts)

	now := uc.timeProvider.Now()
	today := truncateToDay(now)

	// 6. Собираем сводку по каждому дню окна
	result := make([]*CalendarDay, 0, days)
	for i := 0; i < days; i++ {
		date := from.AddDate(0, 0, i)
		key := date.Format(domain.DateFormat)

		workingDay := config.IsWorkDay(date.Weekday()) && !blocked[key]

		day := &CalendarDay{
			Date:       date,
			WorkingDay: workingDay,
		}

		// Нерабочие и прошедшие дни свободных слотов не имеют
		if workingDay && !date.Before(today) {
			day.TotalSlots = totalSlots

			free, err := countFreeSlots(starts, config.SlotMinutes, byDay[key])
			if err != nil {
				uc.logger.Error("GetCalendar: failed to count free slots for %s: %v", key, err)
				return nil, fmt.Errorf("%w: failed to count free slots: %v", ErrInternal, err)
			}
			day.FreeSlots = free
		}

		result = append(result, day)
	}

	return &Response{
		From: from,
		Days: result,
	}, nil
}

// truncateToDay усекает время до начала суток
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// defaultScheduleConfig конфигурация расписания по умолчанию
func defaultScheduleConfig() *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		WorkStart:          types.TimeString(domain.DefaultWorkStart),
		WorkEnd:            types.TimeString(domain.DefaultWorkEnd),
		SlotMinutes:        domain.DefaultSlotMinutes,
		WorkDays:           domain.DefaultWorkDays,
		MinNoticeMinutes:   domain.DefaultMinNoticeMinutes,
		AdvanceBookingDays: domain.DefaultAdvanceBookingDays,
	}
}
