package get_calendar

import (
	"github.com/salon-nv/NV-BookingService/internal/domain"
	getCalendar "github.com/salon-nv/NV-BookingService/internal/usecase/get_calendar"
)

// CalendarResponse HTTP response model
type CalendarResponse struct {
	From string        `json:"from"`
	Days []CalendarDay `json:"days"`
}

// CalendarDay сводка по занятости одного дня
type CalendarDay struct {
	Date       string `json:"date"`
	WorkingDay bool   `json:"workingDay"`
	FreeSlots  int    `json:"freeSlots"`
	TotalSlots int    `json:"totalSlots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCalendar.Response) *CalendarResponse {
	days := make([]CalendarDay, len(resp.Days))
	for i, day := range resp.Days {
		days[i] = CalendarDay{
			Date:       day.Date.Format(domain.DateFormat),
			WorkingDay: day.WorkingDay,
			FreeSlots:  day.FreeSlots,
			TotalSlots: day.TotalSlots,
		}
	}

	return &CalendarResponse{
		From: resp.From.Format(domain.DateFormat),
		Days: days,
	}
}
