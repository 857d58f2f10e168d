package create_reservation

import (
	"context"
	"time"

	"github.com/salon-nv/NV-BookingService/internal/domain"
	"github.com/salon-nv/NV-BookingService/internal/integrations/identityservice"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	ListWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	Get(ctx context.Context) (*domain.ScheduleConfig, error)
	IsDateBlocked(ctx context.Context, date time.Time) (bool, error)
}

// IdentityServiceClient интерфейс клиента для IdentityService
type IdentityServiceClient interface {
	GetProfileWithGracefulDegradation(ctx context.Context, userID int64) (*identityservice.Profile, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
