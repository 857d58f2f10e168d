package get_schedule_config

import (
	"net/http"

	"github.com/salon-nv/NV-BookingService/internal/api/handlers"
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

// Handle GET /api/v1/schedule/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	config, err := h.service.GetConfig(r.Context())
	if err != nil {
		h.logger.Error("GET /schedule/config - Failed to get config: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /schedule/config - Config retrieved successfully")
	handlers.RespondJSON(w, http.StatusOK, config)
}
