package block_date

import (
	"errors"
	"net/http"

	"github.com/salon-nv/NV-BookingService/internal/api/handlers"
	"github.com/salon-nv/NV-BookingService/internal/api/middleware"
	"github.com/salon-nv/NV-BookingService/internal/service/schedule"
	"github.com/salon-nv/NV-BookingService/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgAlreadyBlocked     = "дата уже заблокирована"
	msgInvalidInput       = "некорректные данные запроса"
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

// BlockDateRequest HTTP request model
type BlockDateRequest struct {
	Date   string  `json:"date"` // "2026-03-14"
	Reason *string `json:"reason,omitempty"`
}

// Handle POST /api/v1/schedule/blocked-dates
// Доступно только администраторам студии
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /schedule/blocked-dates - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req BlockDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedule/blocked-dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.BlockDateRequest{
		UserID: userID,
		Date:   req.Date,
		Reason: req.Reason,
	}

	// Блокируем дату (сервис сам проверит права доступа)
	blocked, err := h.service.BlockDate(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("POST /schedule/blocked-dates - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrDateAlreadyBlocked):
			h.logger.Warn("POST /schedule/blocked-dates - Date already blocked: date=%s", req.Date)
			handlers.RespondConflict(w, msgAlreadyBlocked)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /schedule/blocked-dates - Invalid input: date=%s, error=%v", req.Date, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /schedule/blocked-dates - Failed to block date: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedule/blocked-dates - Date blocked successfully: date=%s, user_id=%d", req.Date, userID)
	handlers.RespondJSON(w, http.StatusCreated, blocked)
}
