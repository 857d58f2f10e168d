package create_reservation

import (
	"fmt"
	"time"

	"github.com/salon-nv/NV-BookingService/internal/domain"
	"github.com/salon-nv/NV-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: durationMinutes must not be negative", ErrInvalidInput)
	}

	if req.DurationMinutes > domain.MaxReservationDuration {
		return fmt.Errorf("%w: durationMinutes exceeds maximum of %d", ErrInvalidInput, domain.MaxReservationDuration)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed maximum length of %d", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата подходит для бронирования
func validateDate(reservationDate time.Time, now time.Time, advanceBookingDays int) error {
	// Проверяем, что дата не в прошлом
	if isDateInPast(reservationDate, now) {
		return ErrInvalidDate
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	// Проверяем, что дата не превышает ограничение advanceBookingDays
	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, advanceBookingDays)

	reservationDateOnly := time.Date(reservationDate.Year(), reservationDate.Month(), reservationDate.Day(), 0, 0, 0, 0, reservationDate.Location())

	if reservationDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateAlignment проверяет, что время начала выровнено по сетке слотов:
// (startTime - workStart) кратно slotMinutes
func validateAlignment(startTime types.TimeString, config *domain.ScheduleConfig) error {
	offset := startTime.Minutes() - config.WorkStart.Minutes()
	if offset%config.SlotMinutes != 0 {
		return fmt.Errorf("%w: %s is not aligned to %d-minute grid from %s",
			ErrMisalignedSlot, startTime, config.SlotMinutes, config.WorkStart)
	}
	return nil
}

// validateContainment проверяет, что интервал [start, start+duration) целиком
// лежит внутри рабочих часов [workStart, workEnd)
func validateContainment(startTime types.TimeString, durationMinutes int, config *domain.ScheduleConfig) error {
	if startTime.IsBefore(config.WorkStart) {
		return fmt.Errorf("%w: %s is before opening time %s",
			ErrOutsideBusinessHours, startTime, config.WorkStart)
	}

	end, err := startTime.AddMinutes(durationMinutes)
	if err != nil {
		return fmt.Errorf("%w: interval %s + %d minutes crosses end of day",
			ErrOutsideBusinessHours, startTime, durationMinutes)
	}

	if end.IsAfter(config.WorkEnd) {
		return fmt.Errorf("%w: interval ends at %s, after closing time %s",
			ErrOutsideBusinessHours, end, config.WorkEnd)
	}

	return nil
}

// validateNotice проверяет, что бронирование не нарушает minNoticeMinutes
func validateNotice(
	reservationDate time.Time,
	startTime types.TimeString,
	now time.Time,
	minNoticeMinutes int,
) error {
	// Если дата бронирования не сегодня, проверка не нужна
	if !isSameDay(reservationDate, now) {
		return nil
	}

	// Вычисляем минимальное допустимое время
	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minNoticeMinutes)
	if err != nil {
		// Минимальное время ушло за границу суток - сегодня бронировать уже поздно
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minNoticeMinutes)
	}

	// Проверяем, что время начала не раньше минимального
	if startTime.IsBefore(minAllowedTime) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minNoticeMinutes)
	}

	return nil
}

// findConflict ищет активное бронирование, пересекающееся с интервалом [start, start+duration)
// Граничащие интервалы пересечением не считаются
func findConflict(
	startTime types.TimeString,
	durationMinutes int,
	reservations []*domain.Reservation,
) (*domain.Reservation, error) {
	end, err := startTime.AddMinutes(durationMinutes)
	if err != nil {
		return nil, err
	}

	for _, res := range reservations {
		// Отмененные бронирования слот не занимают
		if !res.IsActive() {
			continue
		}

		resEnd, err := res.StartTime.AddMinutes(res.DurationMinutes)
		if err != nil {
			// Если не можем вычислить конец бронирования, пропускаем
			continue
		}

		if domain.Overlaps(startTime, end, res.StartTime, resEnd) {
			return res, nil
		}
	}

	return nil, nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
