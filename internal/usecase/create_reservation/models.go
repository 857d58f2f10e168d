package create_reservation

import (
	"time"

	"github.com/salon-nv/NV-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID          int64            // ID клиента
	Date            time.Time        // Дата бронирования (без времени)
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность услуги; 0 = одна базовая единица слота
	Notes           *string          // Пожелания клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	PublicCode      string           // Публичный код бронирования для клиента
	UserID          int64            // ID клиента
	Date            time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования

	// Денормализованные данные клиента
	ClientName  string  // Отображаемое имя клиента
	ClientPhone *string // Телефон клиента
	Notes       *string // Пожелания

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
