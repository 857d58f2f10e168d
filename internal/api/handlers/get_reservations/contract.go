package get_reservations

import (
	"context"

	"github.com/salon-nv/NV-BookingService/internal/service/reservations/models"
)

type ReservationService interface {
	ListReservations(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
