package get_calendar

import (
	"fmt"

	"github.com/salon-nv/NV-BookingService/internal/domain"
	"github.com/salon-nv/NV-BookingService/pkg/types"
)

// generateSlotStarts генерирует все времена начала слотов по сетке рабочего дня
// Неполный слот в конце дня отбрасывается
func generateSlotStarts(config *domain.ScheduleConfig) ([]types.TimeString, error) {
	var starts []types.TimeString

	current := config.WorkStart
	for {
		end, err := current.AddMinutes(config.SlotMinutes)
		if err != nil {
			// Вышли за границу суток
			break
		}

		// Слот должен целиком помещаться в рабочие часы
		if end.IsAfter(config.WorkEnd) {
			break
		}

		starts = append(starts, current)

		next, err := current.AddMinutes(config.SlotMinutes)
		if err != nil {
			break
		}
		current = next
	}

	return starts, nil
}

// countFreeSlots считает слоты базовой длительности, не пересекающиеся
// ни с одним активным бронированием
func countFreeSlots(
	starts []types.TimeString,
	slotMinutes int,
	reservations []*domain.Reservation,
) (int, error) {
	free := 0

	for _, start := range starts {
		end, err := start.AddMinutes(slotMinutes)
		if err != nil {
			return 0, fmt.Errorf("failed to compute slot end for %s: %v", start, err)
		}

		if !hasOverlap(start, end, reservations) {
			free++
		}
	}

	return free, nil
}

// hasOverlap проверяет пересечение интервала [start, end) с активными бронированиями
func hasOverlap(start, end types.TimeString, reservations []*domain.Reservation) bool {
	for _, res := range reservations {
		// Отмененные бронирования слот не занимают
		if !res.IsActive() {
			continue
		}

		resEnd, err := res.StartTime.AddMinutes(res.DurationMinutes)
		if err != nil {
			continue
		}

		if domain.Overlaps(start, end, res.StartTime, resEnd) {
			return true
		}
	}

	return false
}
