package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/salon-nv/NV-BookingService/internal/api/handlers"
	"github.com/salon-nv/NV-BookingService/internal/api/middleware"
	getAvailableSlots "github.com/salon-nv/NV-BookingService/internal/usecase/get_available_slots"
)

const (
	msgMissingUserID   = "отсутствует ID пользователя"
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration = "некорректная длительность"
	msgInvalidRequest  = "некорректные параметры запроса"
	msgDateTooFar      = "дата слишком далеко в будущем"
	msgInvalidConfig   = "конфигурация расписания некорректна"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule/available-slots
// Query params: date (required, YYYY-MM-DD), durationMinutes (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /schedule/available-slots - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /schedule/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Извлекаем durationMinutes из query параметров (опционально)
	durationMinutes := 0
	if durationStr := r.URL.Query().Get("durationMinutes"); durationStr != "" {
		duration, err := strconv.Atoi(durationStr)
		if err != nil || duration < 0 {
			h.logger.Warn("GET /schedule/available-slots - Invalid duration: %s", durationStr)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
		durationMinutes = duration
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(userID, dateStr, durationMinutes)
	if err != nil {
		h.logger.Warn("GET /schedule/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /schedule/available-slots - Invalid date: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /schedule/available-slots - Date too far in future: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidConfig):
			h.logger.Error("GET /schedule/available-slots - Invalid schedule config: %v", err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidConfig)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /schedule/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /schedule/available-slots - Failed to get slots: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /schedule/available-slots - Slots retrieved successfully: date=%s, slots_count=%d",
		dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
