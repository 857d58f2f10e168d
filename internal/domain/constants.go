package domain

import "time"

// Default configuration values
const (
	DefaultWorkStart          = "10:00"
	DefaultWorkEnd            = "19:00"
	DefaultSlotMinutes        = 60
	DefaultMinNoticeMinutes   = 60 // 1 hour
	DefaultAdvanceBookingDays = 0  // 0 = unlimited
)

// Business validation constants
const (
	MinSlotMinutes              = 5
	MaxSlotMinutes              = 480 // 8 hours
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365 // 1 year
	MinNoticeMinutesLowerBound  = 0
	MinNoticeMinutesUpperBound  = 10080 // 1 week
	MaxReservationDuration      = 480   // 8 hours
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	DefaultCalendarDays         = 7
	MaxCalendarDays             = 31
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultWorkDays рабочие дни по умолчанию (вторник - суббота)
var DefaultWorkDays = []time.Weekday{
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
}

// InactiveStatuses список статусов, не занимающих слот
// Используется для фильтрации при подсчёте доступных слотов
var InactiveStatuses = []ReservationStatus{
	StatusCancelled,
}

// ActiveStatuses список статусов, занимающих слот
// pending блокирует слот наравне с confirmed, иначе за окно подтверждения
// один и тот же слот можно пообещать двум клиентам
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}
