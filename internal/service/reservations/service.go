package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/salon-nv/NV-BookingService/internal/domain"
	reservationRepo "github.com/salon-nv/NV-BookingService/internal/infra/storage/reservation"
	"github.com/salon-nv/NV-BookingService/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	adminIDs        map[int64]struct{}
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
// adminIDs - идентификаторы администраторов студии из конфигурации
func NewService(
	reservationRepo ReservationRepository,
	adminIDs []int64,
	logger Logger,
) *Service {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}

	return &Service{
		reservationRepo: reservationRepo,
		adminIDs:        admins,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - пользователь может видеть только своё бронирование
// или если он является администратором студии
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if reservation.UserID != userID && !s.isAdmin(userID) {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(reservation), nil
}

// GetUserReservations получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d, status=%v", req.UserID, req.Status)

	// Конвертируем статус из строки в domain.ReservationStatus
	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserReservations: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: successfully fetched %d reservations for user=%d", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// ListReservations получает бронирования студии с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу, клиенту и включению неактивных бронирований
// Доступно только администраторам студии
//
// Примеры использования:
// - Все активные бронирования: ListReservations(ctx, &ListReservationsRequest{UserID: 456})
// - Бронирования на дату: StartDate и EndDate указывают на одну дату
// - Бронирования за период: StartDate и EndDate указывают на разные даты
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) ListReservations(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	// Логируем запрос с деталями фильтрации
	logMsg := fmt.Sprintf("ListReservations: fetching reservations for user=%d", req.UserID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	// Проверяем права доступа администратора
	if !s.isAdmin(req.UserID) {
		s.logger.Warn("ListReservations: access denied for user=%d", req.UserID)
		return nil, ErrAccessDenied
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListReservations: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	// Получаем бронирования с фильтрацией
	reservations, err := s.reservationRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListReservations: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListReservations: successfully fetched %d reservations", len(reservations))
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронирование
// Пользователь может отменить только своё бронирование,
// администратор студии - любое. Повторная отмена не является ошибкой
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", reservationID, req.UserID)

	// Получаем бронирование
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if reservation.UserID != req.UserID && !s.isAdmin(req.UserID) {
		s.logger.Warn("Cancel: access denied for user=%d to cancel reservation id=%d", req.UserID, reservationID)
		return ErrAccessDenied
	}

	// Отмена идемпотентна: уже отмененное бронирование не меняется
	if reservation.IsCancelled() {
		s.logger.Info("Cancel: reservation id=%d already cancelled", reservationID)
		return nil
	}

	// Проверяем, можно ли отменить бронирование
	if !reservation.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", reservationID, reservation.Status)
		return ErrCannotCancel
	}

	// Отменяем бронирование
	if err := s.reservationRepo.Cancel(ctx, reservationID, req.CancellationReason); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found during cancellation", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", reservationID)
	return nil
}

// UpdateStatus обновляет статус бронирования
// Доступно только администраторам студии
func (s *Service) UpdateStatus(ctx context.Context, reservationID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating reservation id=%d to status=%s by user=%d",
		reservationID, req.Status, req.UserID)

	// Получаем бронирование
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа (только администратор студии)
	if !s.isAdmin(req.UserID) {
		s.logger.Warn("UpdateStatus: access denied for user=%d to reservation id=%d", req.UserID, reservationID)
		return ErrAccessDenied
	}

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainReservationStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for reservation id=%d", req.Status, reservationID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// Проверяем допустимость перехода
	if !reservation.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for reservation id=%d",
			reservation.Status, newStatus, reservationID)
		return ErrInvalidTransition
	}

	// Обновляем статус
	if err := s.reservationRepo.UpdateStatus(ctx, reservationID, newStatus); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found during update", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated reservation id=%d to status=%s", reservationID, newStatus)
	return nil
}

// isAdmin проверяет, является ли пользователь администратором студии
func (s *Service) isAdmin(userID int64) bool {
	_, ok := s.adminIDs[userID]
	return ok
}
