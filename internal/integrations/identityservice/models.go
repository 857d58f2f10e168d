package identityservice

// Profile модель профиля пользователя из IdentityService
// Сервис бронирования не заглядывает в учетные данные,
// ему нужны только стабильный ID и контактные поля для отображения
type Profile struct {
	ID          int64   `json:"id"`
	DisplayName string  `json:"display_name"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
}

// ErrorResponse модель ошибки от IdentityService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
