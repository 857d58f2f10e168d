package get_calendar

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/salon-nv/NV-BookingService/internal/api/handlers"
	"github.com/salon-nv/NV-BookingService/internal/domain"
	getCalendar "github.com/salon-nv/NV-BookingService/internal/usecase/get_calendar"
)

const (
	msgMissingFrom    = "дата начала окна обязательна"
	msgInvalidFrom    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDays    = "некорректное количество дней"
	msgInvalidRequest = "некорректные параметры запроса"
	msgInvalidConfig  = "конфигурация расписания некорректна"
)

type Handler struct {
	useCase GetCalendarUseCase
	logger  Logger
}

func NewHandler(useCase GetCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule/calendar
// Query params: from (required, YYYY-MM-DD), days (optional, 1-31)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// Извлекаем from из query параметров
	fromStr := query.Get("from")
	if fromStr == "" {
		h.logger.Warn("GET /schedule/calendar - Missing from date")
		handlers.RespondBadRequest(w, msgMissingFrom)
		return
	}

	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		h.logger.Warn("GET /schedule/calendar - Invalid from date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFrom)
		return
	}

	// Извлекаем days из query параметров (опционально)
	days := 0
	if daysStr := query.Get("days"); daysStr != "" {
		days, err = strconv.Atoi(daysStr)
		if err != nil {
			h.logger.Warn("GET /schedule/calendar - Invalid days: %s", daysStr)
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), &getCalendar.Request{
		From: from,
		Days: days,
	})
	if err != nil {
		switch {
		case errors.Is(err, getCalendar.ErrInvalidInput):
			h.logger.Warn("GET /schedule/calendar - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, getCalendar.ErrInvalidConfig):
			h.logger.Error("GET /schedule/calendar - Invalid schedule config: %v", err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidConfig)

		default:
			h.logger.Error("GET /schedule/calendar - Failed to get calendar: from=%s, error=%v", fromStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /schedule/calendar - Calendar retrieved successfully: from=%s, days=%d",
		fromStr, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, response)
}
