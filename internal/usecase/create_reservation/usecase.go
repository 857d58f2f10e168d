package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/salon-nv/NV-BookingService/internal/domain"
	scheduleRepo "github.com/salon-nv/NV-BookingService/internal/infra/storage/schedule"
	identityClient "github.com/salon-nv/NV-BookingService/internal/integrations/identityservice"
	"github.com/salon-nv/NV-BookingService/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	scheduleRepo    ScheduleRepository
	identityClient  IdentityServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	scheduleRepo ScheduleRepository,
	identityClient IdentityServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		scheduleRepo:    scheduleRepo,
		identityClient:  identityClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
// Цепочка валидации, первый отказ выигрывает: выравнивание по сетке слотов,
// попадание в рабочие часы, рабочий день, отсутствие пересечений.
// Проверка пересечений и вставка выполняются в сериализуемой транзакции по
// заблокированным строкам дня: это закрывает гонку между валидацией и коммитом,
// два конкурентных запроса на один слот не могут пройти оба
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, date=%s, time=%s, duration=%d",
		req.UserID, req.Date.Format(domain.DateFormat), req.StartTime, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем профиль клиента для денормализации контактных данных
	// При недоступности IdentityService бронирование создается с заглушкой
	var clientName string
	var clientPhone *string

	profile, err := uc.identityClient.GetProfileWithGracefulDegradation(ctx, req.UserID)
	switch {
	case err == nil:
		clientName = profile.DisplayName
		clientPhone = profile.Phone
	case errors.Is(err, identityClient.ErrUserNotFound):
		uc.logger.Warn("CreateReservation: user id=%d not found", req.UserID)
		return nil, ErrUserNotFound
	case errors.Is(err, identityClient.ErrServiceDegraded):
		clientName = fmt.Sprintf("Клиент #%d", req.UserID)
		uc.logger.Warn("CreateReservation: identity service degraded, using placeholder name for user=%d", req.UserID)
	default:
		uc.logger.Error("CreateReservation: failed to get profile for user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get profile: %v", ErrInternal, err)
	}

	// Переменная для хранения результата
	var result *domain.Reservation

	// 4. Выполняем проверки и вставку в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем конфигурацию расписания
		config, err := uc.scheduleRepo.Get(txCtx)
		if err != nil && !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			uc.logger.Error("CreateReservation: failed to get schedule config: %v", err)
			return fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
		}

		// Если конфигурация еще не настроена, используем дефолтные значения
		if config == nil {
			config = defaultScheduleConfig()
			uc.logger.Info("CreateReservation: using default schedule config")
		}

		if err := config.Validate(); err != nil {
			uc.logger.Error("CreateReservation: schedule config is invalid: %v", err)
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}

		// 4.2. Длительность услуги: по умолчанию одна базовая единица слота
		duration := req.DurationMinutes
		if duration == 0 {
			duration = config.SlotMinutes
		}

		// 4.3. Валидация даты (не в прошлом, не дальше горизонта бронирования)
		if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
			uc.logger.Warn("CreateReservation: date validation failed: %v", err)
			return err
		}

		// 4.4. Время начала должно лежать на сетке слотов
		if err := validateAlignment(req.StartTime, config); err != nil {
			uc.logger.Warn("CreateReservation: alignment validation failed: %v", err)
			return err
		}

		// 4.5. Весь интервал должен помещаться в рабочие часы
		if err := validateContainment(req.StartTime, duration, config); err != nil {
			uc.logger.Warn("CreateReservation: containment validation failed: %v", err)
			return err
		}

		// 4.6. Дата должна быть рабочим днем и не заблокирована
		blocked, err := uc.scheduleRepo.IsDateBlocked(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to check blocked date: %v", err)
			return fmt.Errorf("%w: failed to check blocked date: %v", ErrInternal, err)
		}
		if blocked || !config.IsWorkDay(req.Date.Weekday()) {
			uc.logger.Warn("CreateReservation: %s is not a working day", req.Date.Format(domain.DateFormat))
			return ErrNonWorkingDay
		}

		// 4.7. Минимальное время до начала для бронирований на сегодня
		if err := validateNotice(req.Date, req.StartTime, now, config.MinNoticeMinutes); err != nil {
			uc.logger.Warn("CreateReservation: notice validation failed: %v", err)
			return err
		}

		// 4.8. Получаем все активные бронирования на эту дату с блокировкой (FOR UPDATE)
		filter := domain.ReservationsFilter{
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false, // Только активные бронирования
		}

		reservations, err := uc.reservationRepo.ListWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		// 4.9. Повторная проверка пересечений по авторитетному набору строк
		conflict, err := findConflict(req.StartTime, duration, reservations)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to check conflicts: %v", err)
			return fmt.Errorf("%w: failed to check conflicts: %v", ErrInternal, err)
		}
		if conflict != nil {
			uc.logger.Warn("CreateReservation: slot %s conflicts with reservation id=%d",
				req.StartTime, conflict.ID)
			return ErrSlotConflict
		}

		// 4.10. Создаем бронирование
		// Начальный статус pending: неподтвержденная запись тоже держит слот
		reservation := &domain.Reservation{
			PublicCode:      uuid.NewString(),
			UserID:          req.UserID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: duration,
			Status:          domain.StatusPending,
			ClientName:      clientName,
			ClientPhone:     clientPhone,
			Notes:           req.Notes,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d, code=%s",
		result.ID, result.PublicCode)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		PublicCode:      result.PublicCode,
		UserID:          result.UserID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ClientName:      result.ClientName,
		ClientPhone:     result.ClientPhone,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
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
