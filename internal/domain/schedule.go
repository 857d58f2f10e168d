package domain

import (
	"fmt"
	"time"

	"github.com/salon-nv/NV-BookingService/pkg/types"
)

// ScheduleConfig represents the studio's booking schedule configuration
// Единственная активная конфигурация на студию; изменение конфигурации
// не затрагивает уже созданные бронирования
type ScheduleConfig struct {
	ID                 int64
	WorkStart          types.TimeString
	WorkEnd            types.TimeString
	SlotMinutes        int
	WorkDays           []time.Weekday
	MinNoticeMinutes   int
	AdvanceBookingDays int // 0 = unlimited
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsWorkDay returns true if the studio accepts bookings on the given weekday
func (c *ScheduleConfig) IsWorkDay(day time.Weekday) bool {
	for _, d := range c.WorkDays {
		if d == day {
			return true
		}
	}
	return false
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (c *ScheduleConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}

// Validate проверяет, что конфигурация пригодна для вычисления слотов
// Некорректная конфигурация никогда не должна доходить до аллокатора,
// валидация выполняется и при записи, и защитно при чтении
func (c *ScheduleConfig) Validate() error {
	if err := c.WorkStart.Validate(); err != nil {
		return fmt.Errorf("invalid workStart: %v", err)
	}
	if err := c.WorkEnd.Validate(); err != nil {
		return fmt.Errorf("invalid workEnd: %v", err)
	}
	if !c.WorkStart.IsBefore(c.WorkEnd) {
		return fmt.Errorf("workStart %s must be before workEnd %s", c.WorkStart, c.WorkEnd)
	}
	if c.SlotMinutes <= 0 {
		return fmt.Errorf("slotMinutes must be positive, got %d", c.SlotMinutes)
	}
	if len(c.WorkDays) == 0 {
		return fmt.Errorf("workDays must not be empty")
	}
	for _, d := range c.WorkDays {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("invalid weekday index %d", d)
		}
	}
	if c.MinNoticeMinutes < 0 {
		return fmt.Errorf("minNoticeMinutes must not be negative, got %d", c.MinNoticeMinutes)
	}
	if c.AdvanceBookingDays < 0 {
		return fmt.Errorf("advanceBookingDays must not be negative, got %d", c.AdvanceBookingDays)
	}
	return nil
}

// BlockedDate календарная дата, полностью закрытая для бронирования
// независимо от дня недели (праздник, отпуск мастера, санитарный день)
type BlockedDate struct {
	Date      time.Time
	Reason    *string
	CreatedAt time.Time
}
