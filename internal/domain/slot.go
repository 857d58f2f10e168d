package domain

import "github.com/salon-nv/NV-BookingService/pkg/types"

// Slot represents a bookable time window aligned to the studio's slot granularity
type Slot struct {
	StartTime       types.TimeString
	DurationMinutes int
}

// End returns the exclusive end of the slot interval
func (s Slot) End() (types.TimeString, error) {
	return s.StartTime.AddMinutes(s.DurationMinutes)
}

// Overlaps reports whether two half-open intervals [a, b) и [c, d) share any instant
// Интервалы, граничащие друг с другом, пересечением не считаются
func Overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && bStart.IsBefore(aEnd)
}
