package get_calendar

import "time"

// Request запрос на получение календаря занятости
type Request struct {
	From time.Time // Первый день окна
	Days int       // Количество дней (по умолчанию 7, максимум domain.MaxCalendarDays)
}

// Response календарь занятости по дням
type Response struct {
	From time.Time      // Первый день окна
	Days []*CalendarDay // Дни в хронологическом порядке
}

// CalendarDay сводка по занятости одного дня
type CalendarDay struct {
	Date       time.Time // Дата
	WorkingDay bool      // Рабочий день (по расписанию и не заблокирован)
	FreeSlots  int       // Количество свободных слотов базовой длительности
	TotalSlots int       // Общее количество слотов в рабочем дне
}
