package get_available_slots

import "errors"

var (
	// ErrInvalidDate возвращается при запросе слотов на дату в прошлом
	ErrInvalidDate = errors.New("invalid date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrInvalidConfig возвращается, когда сохраненная конфигурация расписания некорректна
	// Единственная фатальная для запроса ситуация: до аллокатора такая конфигурация
	// доходить не должна
	ErrInvalidConfig = errors.New("invalid schedule config")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
