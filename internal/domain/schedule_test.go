package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/salon-nv/NV-BookingService/pkg/types"
)

func validConfig() *ScheduleConfig {
	return &ScheduleConfig{
		WorkStart:   "10:00",
		WorkEnd:     "19:00",
		SlotMinutes: 60,
		WorkDays:    []time.Weekday{time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday},
	}
}

func TestScheduleConfig_Validate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	cfg := validConfig()
	cfg.WorkStart = "19:00"
	cfg.WorkEnd = "10:00"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.WorkStart = cfg.WorkEnd
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.SlotMinutes = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.WorkDays = nil
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.WorkStart = "25:00"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.MinNoticeMinutes = -1
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.AdvanceBookingDays = -1
	assert.Error(t, cfg.Validate())
}

func TestScheduleConfig_IsWorkDay(t *testing.T) {
	cfg := validConfig()

	assert.True(t, cfg.IsWorkDay(time.Tuesday))
	assert.True(t, cfg.IsWorkDay(time.Saturday))
	assert.False(t, cfg.IsWorkDay(time.Sunday))
	assert.False(t, cfg.IsWorkDay(time.Monday))
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd types.TimeString
		want                       bool
	}{
		{"identical intervals", "10:00", "11:00", "10:00", "11:00", true},
		{"partial overlap", "10:00", "11:00", "10:30", "11:30", true},
		{"contained interval", "10:00", "12:00", "10:30", "11:00", true},
		{"adjacent intervals do not overlap", "10:00", "11:00", "11:00", "12:00", false},
		{"adjacent intervals reversed", "11:00", "12:00", "10:00", "11:00", false},
		{"disjoint intervals", "10:00", "11:00", "14:00", "15:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
		})
	}
}
