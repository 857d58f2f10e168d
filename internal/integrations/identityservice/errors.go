package identityservice

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("identityservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("identityservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что IdentityService недоступен и контактные данные клиента
	// следует заполнить заглушкой
	ErrServiceDegraded = errors.New("identityservice unavailable: graceful degradation applied")
)
