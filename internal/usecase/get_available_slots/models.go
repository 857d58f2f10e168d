package get_available_slots

import (
	"time"

	"github.com/salon-nv/NV-BookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	UserID          int64     // ID пользователя (для логирования, не влияет на результат)
	Date            time.Time // Дата для получения слотов (без времени)
	DurationMinutes int       // Длительность услуги; 0 = одна базовая единица слота
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date  time.Time // Дата, на которую запрашивались слоты
	Slots []Slot    // Список доступных слотов, по возрастанию времени
}

// Slot модель свободного временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность в минутах
}
