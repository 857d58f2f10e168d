package unblock_date

import (
	"context"

	"github.com/salon-nv/NV-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	UnblockDate(ctx context.Context, req *models.UnblockDateRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
