package create_reservation

import "errors"

var (
	// ErrMisalignedSlot возвращается, когда время начала не выровнено по сетке слотов
	ErrMisalignedSlot = errors.New("create_reservation: start time is not aligned to slot boundary")

	// ErrOutsideBusinessHours возвращается, когда интервал выходит за рабочие часы
	ErrOutsideBusinessHours = errors.New("create_reservation: interval is outside business hours")

	// ErrNonWorkingDay возвращается для нерабочего дня недели или заблокированной даты
	ErrNonWorkingDay = errors.New("create_reservation: date is not a working day")

	// ErrSlotConflict возвращается, когда интервал пересекается с существующим бронированием
	// Финальная ошибка для клиента: повторная попытка на тот же слот детерминированно
	// упадет снова, нужно выбрать другое время
	ErrSlotConflict = errors.New("create_reservation: slot conflicts with an existing reservation")

	// ErrUserNotFound возвращается, когда пользователь не найден в IdentityService
	ErrUserNotFound = errors.New("create_reservation: user not found")

	// ErrInvalidDate возвращается при попытке бронирования на дату в прошлом
	ErrInvalidDate = errors.New("create_reservation: invalid reservation date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_reservation: date is too far in the future")

	// ErrTooLateToBook возвращается, когда бронирование нарушает minNoticeMinutes
	ErrTooLateToBook = errors.New("create_reservation: too late to book this slot")

	// ErrInvalidConfig возвращается, когда сохраненная конфигурация расписания некорректна
	ErrInvalidConfig = errors.New("create_reservation: invalid schedule config")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
