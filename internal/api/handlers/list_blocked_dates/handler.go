package list_blocked_dates

import (
	"net/http"
	"time"

	"github.com/salon-nv/NV-BookingService/internal/api/handlers"
	"github.com/salon-nv/NV-BookingService/internal/domain"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/schedule/blocked-dates
// Query params: from, to (опционально, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var from, to *time.Time

	if fromStr := query.Get("from"); fromStr != "" {
		parsed, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			h.logger.Warn("GET /schedule/blocked-dates - Invalid from date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		from = &parsed
	}

	if toStr := query.Get("to"); toStr != "" {
		parsed, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			h.logger.Warn("GET /schedule/blocked-dates - Invalid to date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		to = &parsed
	}

	result, err := h.service.ListBlockedDates(r.Context(), from, to)
	if err != nil {
		h.logger.Error("GET /schedule/blocked-dates - Failed to list blocked dates: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /schedule/blocked-dates - Blocked dates retrieved successfully: count=%d",
		len(result.BlockedDates))
	handlers.RespondJSON(w, http.StatusOK, result)
}
