package schedule

import (
	"context"
	"time"

	"github.com/salon-nv/NV-BookingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория конфигурации расписания
type ScheduleRepository interface {
	Get(ctx context.Context) (*domain.ScheduleConfig, error)
	Set(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error)
	ListBlockedDates(ctx context.Context, from, to *time.Time) ([]*domain.BlockedDate, error)
	AddBlockedDate(ctx context.Context, blocked *domain.BlockedDate) error
	RemoveBlockedDate(ctx context.Context, date time.Time) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
