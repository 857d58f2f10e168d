package update_schedule_config

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
	msgInvalidConfig      = "некорректные параметры конфигурации"
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

// UpdateConfigRequest HTTP request model
// Все поля опциональны - обновляются только указанные
type UpdateConfigRequest struct {
	WorkStart          *string `json:"workStart,omitempty"`
	WorkEnd            *string `json:"workEnd,omitempty"`
	SlotMinutes        *int    `json:"slotMinutes,omitempty"`
	WorkDays           *[]int  `json:"workDays,omitempty"`
	MinNoticeMinutes   *int    `json:"minNoticeMinutes,omitempty"`
	AdvanceBookingDays *int    `json:"advanceBookingDays,omitempty"`
}

// Handle PUT /api/v1/schedule/config
// Доступно только администраторам студии
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /schedule/config - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.UpdateConfigRequest{
		UserID:             userID,
		WorkStart:          req.WorkStart,
		WorkEnd:            req.WorkEnd,
		SlotMinutes:        req.SlotMinutes,
		WorkDays:           req.WorkDays,
		MinNoticeMinutes:   req.MinNoticeMinutes,
		AdvanceBookingDays: req.AdvanceBookingDays,
	}

	// Обновляем конфигурацию (сервис сам проверит права доступа)
	config, err := h.service.UpdateConfig(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("PUT /schedule/config - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrInvalidConfig):
			h.logger.Warn("PUT /schedule/config - Invalid config: user_id=%d, error=%v", userID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidConfig)

		default:
			h.logger.Error("PUT /schedule/config - Failed to update config: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /schedule/config - Config updated successfully: user_id=%d", userID)
	handlers.RespondJSON(w, http.StatusOK, config)
}
