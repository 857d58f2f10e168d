package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salon-nv/NV-BookingService/internal/domain"
	scheduleRepo "github.com/salon-nv/NV-BookingService/internal/infra/storage/schedule"
	"github.com/salon-nv/NV-BookingService/internal/service/schedule/models"
	"github.com/salon-nv/NV-BookingService/pkg/types"
)

// Service сервис для работы с конфигурацией расписания
type Service struct {
	scheduleRepo ScheduleRepository
	adminIDs     map[int64]struct{}
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
// adminIDs - идентификаторы администраторов студии из конфигурации
func NewService(
	scheduleRepo ScheduleRepository,
	adminIDs []int64,
	logger Logger,
) *Service {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}

	return &Service{
		scheduleRepo: scheduleRepo,
		adminIDs:     admins,
		logger:       logger,
	}
}

// GetConfig получает конфигурацию расписания
// Публичный метод - доступен всем
// Если конфигурация еще не настроена, возвращает дефолтную
func (s *Service) GetConfig(ctx context.Context) (*models.ConfigResponse, error) {
	s.logger.Info("GetConfig: fetching schedule config")

	config, err := s.scheduleRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			s.logger.Info("GetConfig: no config stored, returning defaults")
			return models.FromDomainConfig(defaultScheduleConfig()), nil
		}
		s.logger.Error("GetConfig: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetConfig - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetConfig: successfully fetched config id=%d", config.ID)
	return models.FromDomainConfig(config), nil
}

// UpdateConfig обновляет конфигурацию расписания
// Доступно только администраторам студии
// Поддерживает частичное обновление - обновляются только указанные поля
// Изменение конфигурации не затрагивает уже созданные бронирования
func (s *Service) UpdateConfig(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("UpdateConfig: updating schedule config by user=%d", req.UserID)

	// 1. Проверяем права доступа (только администратор студии)
	if !s.isAdmin(req.UserID) {
		s.logger.Warn("UpdateConfig: access denied for user=%d", req.UserID)
		return nil, ErrAccessDenied
	}

	// 2. Получаем существующую конфигурацию (или дефолтную как базу)
	config, err := s.scheduleRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			s.logger.Error("UpdateConfig: repository error: %v", err)
			return nil, fmt.Errorf("%w: UpdateConfig - repository error: %v", ErrInternal, err)
		}
		config = defaultScheduleConfig()
	}

	// 3. Применяем обновления к конфигурации
	if err := req.ApplyToConfig(config); err != nil {
		s.logger.Warn("UpdateConfig: failed to apply updates: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	// 4. Валидируем обновленные данные
	if err := s.validateConfigData(config); err != nil {
		s.logger.Warn("UpdateConfig: validation failed: %v", err)
		return nil, err
	}

	// 5. Сохраняем конфигурацию в БД
	updatedConfig, err := s.scheduleRepo.Set(ctx, config)
	if err != nil {
		s.logger.Error("UpdateConfig: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateConfig - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateConfig: successfully updated config id=%d", updatedConfig.ID)
	return models.FromDomainConfig(updatedConfig), nil
}

// ListBlockedDates получает заблокированные даты
// Публичный метод - клиенту полезно видеть закрытые дни заранее
func (s *Service) ListBlockedDates(ctx context.Context, from, to *time.Time) (*models.BlockedDateListResponse, error) {
	s.logger.Info("ListBlockedDates: fetching blocked dates")

	dates, err := s.scheduleRepo.ListBlockedDates(ctx, from, to)
	if err != nil {
		s.logger.Error("ListBlockedDates: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBlockedDates - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBlockedDates: successfully fetched %d blocked dates", len(dates))
	return models.FromDomainBlockedDateList(dates), nil
}

// BlockDate блокирует дату для бронирования
// Доступно только администраторам студии
// Уже существующие бронирования на эту дату не отменяются автоматически
func (s *Service) BlockDate(ctx context.Context, req *models.BlockDateRequest) (*models.BlockedDateResponse, error) {
	s.logger.Info("BlockDate: blocking date=%s by user=%d", req.Date, req.UserID)

	// Проверяем права доступа (только администратор студии)
	if !s.isAdmin(req.UserID) {
		s.logger.Warn("BlockDate: access denied for user=%d", req.UserID)
		return nil, ErrAccessDenied
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		s.logger.Warn("BlockDate: invalid date=%s", req.Date)
		return nil, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("BlockDate: reason too long for date=%s", req.Date)
		return nil, fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	blocked := &domain.BlockedDate{
		Date:   date,
		Reason: req.Reason,
	}

	if err := s.scheduleRepo.AddBlockedDate(ctx, blocked); err != nil {
		if errors.Is(err, scheduleRepo.ErrDateAlreadyBlocked) {
			s.logger.Warn("BlockDate: date=%s already blocked", req.Date)
			return nil, ErrDateAlreadyBlocked
		}
		s.logger.Error("BlockDate: repository error for date=%s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: BlockDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("BlockDate: successfully blocked date=%s", req.Date)
	return models.FromDomainBlockedDate(blocked), nil
}

// UnblockDate снимает блокировку даты
// Доступно только администраторам студии
func (s *Service) UnblockDate(ctx context.Context, req *models.UnblockDateRequest) error {
	s.logger.Info("UnblockDate: unblocking date=%s by user=%d", req.Date, req.UserID)

	// Проверяем права доступа (только администратор студии)
	if !s.isAdmin(req.UserID) {
		s.logger.Warn("UnblockDate: access denied for user=%d", req.UserID)
		return ErrAccessDenied
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		s.logger.Warn("UnblockDate: invalid date=%s", req.Date)
		return fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	if err := s.scheduleRepo.RemoveBlockedDate(ctx, date); err != nil {
		if errors.Is(err, scheduleRepo.ErrBlockedDateNotFound) {
			s.logger.Warn("UnblockDate: date=%s is not blocked", req.Date)
			return ErrBlockedDateNotFound
		}
		s.logger.Error("UnblockDate: repository error for date=%s: %v", req.Date, err)
		return fmt.Errorf("%w: UnblockDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UnblockDate: successfully unblocked date=%s", req.Date)
	return nil
}

// Вспомогательные методы

// isAdmin проверяет, является ли пользователь администратором студии
func (s *Service) isAdmin(userID int64) bool {
	_, ok := s.adminIDs[userID]
	return ok
}

// validateConfigData валидирует параметры конфигурации по бизнес-ограничениям
func (s *Service) validateConfigData(config *domain.ScheduleConfig) error {
	// Базовые инварианты доменной модели
	if err := config.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	// Проверяем slotMinutes
	if config.SlotMinutes < domain.MinSlotMinutes || config.SlotMinutes > domain.MaxSlotMinutes {
		return fmt.Errorf("%w: slotMinutes must be between %d and %d",
			ErrInvalidConfig, domain.MinSlotMinutes, domain.MaxSlotMinutes)
	}

	// Проверяем advanceBookingDays
	if config.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidConfig, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	// Проверяем minNoticeMinutes
	if config.MinNoticeMinutes > domain.MinNoticeMinutesUpperBound {
		return fmt.Errorf("%w: minNoticeMinutes must be between %d and %d",
			ErrInvalidConfig, domain.MinNoticeMinutesLowerBound, domain.MinNoticeMinutesUpperBound)
	}

	// Рабочий день должен вмещать хотя бы один полный слот
	workDayMinutes := config.WorkEnd.Minutes() - config.WorkStart.Minutes()
	if config.SlotMinutes > workDayMinutes {
		return fmt.Errorf("%w: slotMinutes %d does not fit into working hours %s - %s",
			ErrInvalidConfig, config.SlotMinutes, config.WorkStart, config.WorkEnd)
	}

	return nil
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
