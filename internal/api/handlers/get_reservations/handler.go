package get_reservations

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/salon-nv/NV-BookingService/internal/api/handlers"
	"github.com/salon-nv/NV-BookingService/internal/api/middleware"
	"github.com/salon-nv/NV-BookingService/internal/domain"
	"github.com/salon-nv/NV-BookingService/internal/service/reservations"
	"github.com/salon-nv/NV-BookingService/internal/service/reservations/models"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidClientID    = "некорректный ID клиента"
	msgInvalidFilter      = "некорректные параметры фильтрации"
	msgInvalidDateRange   = "дата начала периода позже даты окончания"
	msgIncompletePeriod   = "для фильтрации по периоду нужны обе даты: startDate и endDate"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations
// Query params: startDate, endDate (YYYY-MM-DD), status, clientId, includeInactive
// Доступно только администраторам студии
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.ListReservationsRequest{UserID: userID}
	query := r.URL.Query()

	// Парсим период
	startDateStr := query.Get("startDate")
	endDateStr := query.Get("endDate")
	if (startDateStr == "") != (endDateStr == "") {
		h.logger.Warn("GET /reservations - Incomplete period filter")
		handlers.RespondBadRequest(w, msgIncompletePeriod)
		return
	}
	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			h.logger.Warn("GET /reservations - Invalid start date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			h.logger.Warn("GET /reservations - Invalid end date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		if endDate.Before(startDate) {
			h.logger.Warn("GET /reservations - Invalid date range: %s - %s", startDateStr, endDateStr)
			handlers.RespondBadRequest(w, msgInvalidDateRange)
			return
		}
		req.StartDate = &startDate
		req.EndDate = &endDate
	}

	// Парсим статус
	if statusStr := query.Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	// Парсим фильтр по клиенту
	if clientIDStr := query.Get("clientId"); clientIDStr != "" {
		clientID, err := strconv.ParseInt(clientIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /reservations - Invalid client ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidClientID)
			return
		}
		req.ClientID = &clientID
	}

	// Парсим includeInactive
	if includeStr := query.Get("includeInactive"); includeStr != "" {
		include, err := strconv.ParseBool(includeStr)
		if err != nil {
			h.logger.Warn("GET /reservations - Invalid includeInactive: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.IncludeInactive = include
	}

	// Получаем бронирования (сервис сам проверит права доступа)
	result, err := h.service.ListReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /reservations - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /reservations - Invalid filter: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /reservations - Failed to list reservations: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservations - Reservations retrieved successfully: user_id=%d, count=%d",
		userID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
