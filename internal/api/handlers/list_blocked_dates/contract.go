package list_blocked_dates

import (
	"context"
	"time"

	"github.com/salon-nv/NV-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	ListBlockedDates(ctx context.Context, from, to *time.Time) (*models.BlockedDateListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
