package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/salon-nv/NV-BookingService/internal/domain"
	scheduleRepo "github.com/salon-nv/NV-BookingService/internal/infra/storage/schedule"
	"github.com/salon-nv/NV-BookingService/pkg/types"
)

// UseCase use case для получения доступных слотов для бронирования
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

// Execute выполняет use case получения доступных слотов
// Чистая функция от конфигурации, снимка бронирований и даты: повторный вызов
// с теми же данными дает тот же результат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, date=%s, duration=%d",
		req.UserID, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем конфигурацию расписания
	config, err := uc.scheduleRepo.Get(ctx)
	if err != nil && !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get schedule config: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}

	// Если конфигурация еще не настроена, используем дефолтные значения
	if config == nil {
		config = defaultScheduleConfig()
		uc.logger.Info("GetAvailableSlots: using default schedule config")
	}

	// Некорректная конфигурация - фатальная ошибка запроса, слоты на ней не считаем
	if err := config.Validate(); err != nil {
		uc.logger.Error("GetAvailableSlots: schedule config is invalid: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	// 4. Валидация даты с учетом конфигурации
	if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 5. Нерабочий день недели или заблокированная дата - пустой список слотов
	blocked, err := uc.scheduleRepo.IsDateBlocked(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to check blocked date: %v", err)
		return nil, fmt.Errorf("%w: failed to check blocked date: %v", ErrInternal, err)
	}

	if blocked || !config.IsWorkDay(req.Date.Weekday()) {
		uc.logger.Info("GetAvailableSlots: studio is closed on %s", req.Date.Format(domain.DateFormat))
		return &Response{Date: req.Date, Slots: []Slot{}}, nil
	}

	// 6. Длительность услуги: по умолчанию одна базовая единица слота
	duration := req.DurationMinutes
	if duration == 0 {
		duration = config.SlotMinutes
	}

	// 7. Генерируем времена начала слотов и фильтруем по минимальному времени до брони
	starts, err := generateSlotStarts(config)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slot starts: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slot starts: %v", ErrInternal, err)
	}
	starts = filterByNotice(starts, req.Date, now, config.MinNoticeMinutes)

	// 8. Получаем все активные бронирования на эту дату
	filter := domain.ReservationsFilter{
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false, // Только активные бронирования
	}

	reservations, err := uc.reservationRepo.ListWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 9. Отбираем слоты, на которые помещается вся запрошенная длительность
	slots := availableSlots(starts, duration, config, reservations)

	uc.logger.Info("GetAvailableSlots: %d of %d slots available for date=%s, duration=%d",
		len(slots), len(starts), req.Date.Format(domain.DateFormat), duration)

	return &Response{
		Date:  req.Date,
		Slots: slots,
	}, nil
}

// defaultScheduleConfig конфигурация расписания по умолчанию
// Применяется, пока администратор не настроил свою
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
