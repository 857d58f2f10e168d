package create_reservation

import (
	"errors"
	"net/http"

	"github.com/salon-nv/NV-BookingService/internal/api/handlers"
	"github.com/salon-nv/NV-BookingService/internal/api/middleware"
	createReservation "github.com/salon-nv/NV-BookingService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgMisalignedSlot     = "время начала не совпадает с сеткой слотов"
	msgOutsideHours       = "запись не помещается в рабочие часы"
	msgNonWorkingDay      = "студия не работает в выбранную дату"
	msgSlotConflict       = "выбранное время уже занято"
	msgUserNotFound       = "пользователь не найден"
	msgInvalidBookingDate = "некорректная дата записи"
	msgDateTooFar         = "дата записи слишком далеко в будущем"
	msgTooLateToBook      = "слишком поздно для записи на это время"
	msgInvalidConfig      = "конфигурация расписания некорректна"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createReservation.ErrSlotConflict):
			h.logger.Warn("POST /reservations - Slot conflict: user_id=%d, date=%s, time=%s",
				userID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, createReservation.ErrMisalignedSlot):
			h.logger.Warn("POST /reservations - Misaligned slot: user_id=%d, time=%s", userID, req.StartTime)
			handlers.RespondBadRequest(w, msgMisalignedSlot)

		case errors.Is(err, createReservation.ErrOutsideBusinessHours):
			h.logger.Warn("POST /reservations - Outside business hours: user_id=%d, time=%s", userID, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createReservation.ErrNonWorkingDay):
			h.logger.Warn("POST /reservations - Non-working day: user_id=%d, date=%s", userID, req.Date)
			handlers.RespondBadRequest(w, msgNonWorkingDay)

		case errors.Is(err, createReservation.ErrUserNotFound):
			h.logger.Warn("POST /reservations - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createReservation.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Invalid reservation date: user_id=%d, date=%s", userID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createReservation.ErrDateTooFarInFuture):
			h.logger.Warn("POST /reservations - Date too far in future: user_id=%d, date=%s", userID, req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createReservation.ErrTooLateToBook):
			h.logger.Warn("POST /reservations - Too late to book: user_id=%d, time=%s", userID, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createReservation.ErrInvalidConfig):
			h.logger.Error("POST /reservations - Invalid schedule config: %v", err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidConfig)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, user_id=%d",
		result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
