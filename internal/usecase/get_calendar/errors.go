package get_calendar

import "errors"

var (
	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig конфигурация расписания невалидна
	ErrInvalidConfig = errors.New("invalid schedule config")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("internal error")
)
