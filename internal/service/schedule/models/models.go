package models

import (
	"errors"
	"time"

	"github.com/salon-nv/NV-BookingService/internal/domain"
	"github.com/salon-nv/NV-BookingService/pkg/types"
)

var (
	// ErrInvalidTime возвращается при некорректном формате времени
	ErrInvalidTime = errors.New("invalid time format, expected HH:MM")

	// ErrInvalidWeekday возвращается при некорректном дне недели
	ErrInvalidWeekday = errors.New("invalid weekday, expected 0 (Sunday) - 6 (Saturday)")
)

// Request модели

// UpdateConfigRequest запрос на обновление конфигурации расписания
// Поддерживает частичное обновление - обновляются только указанные поля
type UpdateConfigRequest struct {
	UserID             int64   `json:"userId"`
	WorkStart          *string `json:"workStart,omitempty"`          // "10:00"
	WorkEnd            *string `json:"workEnd,omitempty"`            // "19:00"
	SlotMinutes        *int    `json:"slotMinutes,omitempty"`        // Базовая длительность слота
	WorkDays           *[]int  `json:"workDays,omitempty"`           // 0 (воскресенье) - 6 (суббота)
	MinNoticeMinutes   *int    `json:"minNoticeMinutes,omitempty"`   // Минимальное время до начала
	AdvanceBookingDays *int    `json:"advanceBookingDays,omitempty"` // Горизонт бронирования, 0 = без ограничения
}

// ApplyToConfig применяет указанные поля запроса к конфигурации
func (r *UpdateConfigRequest) ApplyToConfig(config *domain.ScheduleConfig) error {
	if r.WorkStart != nil {
		ts, err := types.NewTimeStringFromString(*r.WorkStart)
		if err != nil {
			return ErrInvalidTime
		}
		config.WorkStart = ts
	}
	if r.WorkEnd != nil {
		ts, err := types.NewTimeStringFromString(*r.WorkEnd)
		if err != nil {
			return ErrInvalidTime
		}
		config.WorkEnd = ts
	}
	if r.SlotMinutes != nil {
		config.SlotMinutes = *r.SlotMinutes
	}
	if r.WorkDays != nil {
		days, err := toDomainWorkDays(*r.WorkDays)
		if err != nil {
			return err
		}
		config.WorkDays = days
	}
	if r.MinNoticeMinutes != nil {
		config.MinNoticeMinutes = *r.MinNoticeMinutes
	}
	if r.AdvanceBookingDays != nil {
		config.AdvanceBookingDays = *r.AdvanceBookingDays
	}
	return nil
}

// BlockDateRequest запрос на блокировку даты
type BlockDateRequest struct {
	UserID int64   `json:"userId"`
	Date   string  `json:"date"` // "2026-03-14"
	Reason *string `json:"reason,omitempty"`
}

// UnblockDateRequest запрос на разблокировку даты
type UnblockDateRequest struct {
	UserID int64  `json:"userId"`
	Date   string `json:"date"` // "2026-03-14"
}

// Response модели

// ConfigResponse ответ с конфигурацией расписания
type ConfigResponse struct {
	WorkStart          string    `json:"workStart"` // "10:00"
	WorkEnd            string    `json:"workEnd"`   // "19:00"
	SlotMinutes        int       `json:"slotMinutes"`
	WorkDays           []int     `json:"workDays"` // 0 (воскресенье) - 6 (суббота)
	MinNoticeMinutes   int       `json:"minNoticeMinutes"`
	AdvanceBookingDays int       `json:"advanceBookingDays"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// BlockedDateResponse ответ с заблокированной датой
type BlockedDateResponse struct {
	Date      string    `json:"date"` // "2026-03-14"
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlockedDateListResponse ответ со списком заблокированных дат
type BlockedDateListResponse struct {
	BlockedDates []BlockedDateResponse `json:"blockedDates"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.ScheduleConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	workDays := make([]int, len(c.WorkDays))
	for i, d := range c.WorkDays {
		workDays[i] = int(d)
	}

	return &ConfigResponse{
		WorkStart:          c.WorkStart.String(),
		WorkEnd:            c.WorkEnd.String(),
		SlotMinutes:        c.SlotMinutes,
		WorkDays:           workDays,
		MinNoticeMinutes:   c.MinNoticeMinutes,
		AdvanceBookingDays: c.AdvanceBookingDays,
		UpdatedAt:          c.UpdatedAt,
	}
}

// FromDomainBlockedDate конвертирует domain модель в DTO
func FromDomainBlockedDate(b *domain.BlockedDate) *BlockedDateResponse {
	if b == nil {
		return nil
	}

	return &BlockedDateResponse{
		Date:      b.Date.Format(domain.DateFormat),
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt,
	}
}

// FromDomainBlockedDateList конвертирует список domain моделей в DTO
func FromDomainBlockedDateList(dates []*domain.BlockedDate) *BlockedDateListResponse {
	if dates == nil {
		return &BlockedDateListResponse{
			BlockedDates: []BlockedDateResponse{},
		}
	}

	resp := &BlockedDateListResponse{
		BlockedDates: make([]BlockedDateResponse, len(dates)),
	}

	for i, date := range dates {
		if dateResp := FromDomainBlockedDate(date); dateResp != nil {
			resp.BlockedDates[i] = *dateResp
		}
	}

	return resp
}

// toDomainWorkDays конвертирует индексы дней недели в time.Weekday с валидацией
func toDomainWorkDays(days []int) ([]time.Weekday, error) {
	result := make([]time.Weekday, len(days))
	for i, d := range days {
		if d < 0 || d > 6 {
			return nil, ErrInvalidWeekday
		}
		result[i] = time.Weekday(d)
	}
	return result, nil
}
