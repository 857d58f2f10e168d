package unblock_date

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/salon-nv/NV-BookingService/internal/api/handlers"
	"github.com/salon-nv/NV-BookingService/internal/api/middleware"
	"github.com/salon-nv/NV-BookingService/internal/service/schedule"
	"github.com/salon-nv/NV-BookingService/internal/service/schedule/models"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
	msgNotBlocked    = "дата не заблокирована"
	msgInvalidInput  = "некорректные данные запроса"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/schedule/blocked-dates/{date}
// Доступно только администраторам студии
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем date из URL
	vars := mux.Vars(r)
	dateStr := vars["date"]

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /schedule/blocked-dates/{date} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq := &models.UnblockDateRequest{
		UserID: userID,
		Date:   dateStr,
	}

	// Снимаем блокировку (сервис сам проверит права доступа)
	if err := h.service.UnblockDate(r.Context(), serviceReq); err != nil {
		switch {
		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("DELETE /schedule/blocked-dates/{date} - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrBlockedDateNotFound):
			h.logger.Warn("DELETE /schedule/blocked-dates/{date} - Date not blocked: date=%s", dateStr)
			handlers.RespondNotFound(w, msgNotBlocked)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("DELETE /schedule/blocked-dates/{date} - Invalid date: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("DELETE /schedule/blocked-dates/{date} - Failed to unblock date: date=%s, error=%v",
				dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /schedule/blocked-dates/{date} - Date unblocked successfully: date=%s, user_id=%d",
		dateStr, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
