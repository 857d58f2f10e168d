package get_calendar

import (
	"context"
	"time"

	"github.com/salon-nv/NV-BookingService/internal/domain"
)

// ReservationRepository интерфейс для работы с хранилищем бронирований
type ReservationRepository interface {
	// ListWithFilter получает бронирования по фильтру
	ListWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
}

// ScheduleRepository интерфейс для работы с конфигурацией расписания
type ScheduleRepository interface {
	// Get получает конфигурацию расписания
	Get(ctx context.Context) (*domain.ScheduleConfig, error)

	// ListBlockedDates получает заблокированные даты в диапазоне
	ListBlockedDates(ctx context.Context, from, to *time.Time) ([]*domain.BlockedDate, error)
}

// TimeProvider предоставляет текущее время (для тестируемости)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// RealTimeProvider реализация TimeProvider с реальным временем
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
