package get_available_slots

import (
	"time"

	"github.com/salon-nv/NV-BookingService/internal/domain"
	"github.com/salon-nv/NV-BookingService/pkg/types"
)

// generateSlotStarts генерирует все возможные времена начала слотов на день
// Слоты идут от workStart с фиксированным шагом slotMinutes, пока очередной слот
// целиком помещается до workEnd; неполный хвостовой слот отбрасывается.
// Результат детерминирован и отсортирован по возрастанию времени
func generateSlotStarts(config *domain.ScheduleConfig) ([]types.TimeString, error) {
	starts := make([]types.TimeString, 0)
	current := config.WorkStart

	for current.IsBefore(config.WorkEnd) {
		slotEnd, err := current.AddMinutes(config.SlotMinutes)
		if err != nil {
			// Слот уперся в границу суток - дальше слотов нет
			break
		}
		if slotEnd.IsAfter(config.WorkEnd) {
			break
		}

		starts = append(starts, current)

		current, err = current.AddMinutes(config.SlotMinutes)
		if err != nil {
			break
		}
	}

	return starts, nil
}

// filterByNotice отбрасывает слоты, начинающиеся раньше минимального времени
// до бронирования. Применяется только для сегодняшней даты: на будущие даты
// все слоты проходят
func filterByNotice(
	starts []types.TimeString,
	requestDate time.Time,
	now time.Time,
	minNoticeMinutes int,
) []types.TimeString {
	if !isSameDay(requestDate, now) {
		return starts
	}

	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minNoticeMinutes)
	if err != nil {
		// Минимальное время ушло за границу суток - сегодня бронировать уже нечего
		return []types.TimeString{}
	}

	filtered := make([]types.TimeString, 0, len(starts))
	for _, start := range starts {
		if !start.IsBefore(minAllowedTime) {
			filtered = append(filtered, start)
		}
	}

	return filtered
}

// availableSlots отбирает времена начала, на которые можно разместить услугу
// длительностью durationMinutes: интервал [start, start+duration) должен целиком
// помещаться в рабочие часы и не пересекаться ни с одним активным бронированием.
// Для услуг, занимающих несколько базовых слотов, проверка интервала эквивалентна
// проверке каждой занимаемой базовой единицы
func availableSlots(
	starts []types.TimeString,
	durationMinutes int,
	config *domain.ScheduleConfig,
	reservations []*domain.Reservation,
) []Slot {
	result := make([]Slot, 0, len(starts))

	for _, start := range starts {
		end, err := start.AddMinutes(durationMinutes)
		if err != nil {
			// Интервал не помещается в сутки
			continue
		}
		if end.IsAfter(config.WorkEnd) {
			continue
		}

		if hasOverlap(start, end, reservations) {
			continue
		}

		result = append(result, Slot{
			StartTime:       start,
			DurationMinutes: durationMinutes,
		})
	}

	return result
}

// hasOverlap проверяет пересечение интервала [start, end) с активными бронированиями
// Пересечение есть только если интервалы действительно накладываются друг на друга:
// граничащие интервалы (конец одного равен началу другого) пересечением не считаются
func hasOverlap(start, end types.TimeString, reservations []*domain.Reservation) bool {
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

		if domain.Overlaps(start, end, res.StartTime, resEnd) {
			return true
		}
	}

	return false
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
