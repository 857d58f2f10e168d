package schedule

import "errors"

var (
	// ErrConfigNotFound возвращается, когда конфигурация не найдена
	ErrConfigNotFound = errors.New("schedule config not found")

	// ErrBlockedDateNotFound возвращается, когда заблокированная дата не найдена
	ErrBlockedDateNotFound = errors.New("blocked date not found")

	// ErrDateAlreadyBlocked возвращается при повторной блокировке даты
	ErrDateAlreadyBlocked = errors.New("date already blocked")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidConfig возвращается при некорректных параметрах конфигурации
	ErrInvalidConfig = errors.New("invalid schedule config")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
