package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// TimeFormat формат времени HH:MM
const TimeFormat = "15:04"

var (
	// ErrInvalidTimeString возвращается при некорректном формате строки времени
	ErrInvalidTimeString = errors.New("invalid time string format")
)

// TimeString время в пределах суток в формате "HH:MM"
// Используется для хранения времени начала слотов и бронирований без привязки к дате
type TimeString string

// NewTimeString создает TimeString из time.Time (отбрасывает дату и секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeFormat))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(TimeFormat, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return NewTimeString(t), nil
}

// String возвращает строковое представление "HH:MM"
func (ts TimeString) String() string {
	return string(ts)
}

// IsZero проверяет, что значение не задано
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// Validate проверяет корректность формата
func (ts TimeString) Validate() error {
	_, err := time.Parse(TimeFormat, string(ts))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return nil
}

// Minutes возвращает количество минут с начала суток
// Для некорректного значения возвращает 0
func (ts TimeString) Minutes() int {
	t, err := time.Parse(TimeFormat, string(ts))
	if err != nil {
		return 0
	}
	return t.Hour()*60 + t.Minute()
}

// IsBefore проверяет, что время строго раньше other
func (ts TimeString) IsBefore(other TimeString) bool {
	return ts.Minutes() < other.Minutes()
}

// IsAfter проверяет, что время строго позже other
func (ts TimeString) IsAfter(other TimeString) bool {
	return ts.Minutes() > other.Minutes()
}

// AddMinutes возвращает время, сдвинутое на minutes минут вперед
// Возвращает ошибку при выходе за пределы суток
func (ts TimeString) AddMinutes(minutes int) (TimeString, error) {
	if err := ts.Validate(); err != nil {
		return "", err
	}

	total := ts.Minutes() + minutes
	if total < 0 || total >= 24*60 {
		return "", fmt.Errorf("%w: %s + %d minutes is out of day range", ErrInvalidTimeString, ts, minutes)
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// Value реализует driver.Valuer для записи в БД
func (ts TimeString) Value() (driver.Value, error) {
	if ts.IsZero() {
		return nil, nil
	}
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	return string(ts), nil
}

// Scan реализует sql.Scanner для чтения из БД
// Поддерживает строки "HH:MM" и "HH:MM:SS" (тип TIME в Postgres), а также time.Time
func (ts *TimeString) Scan(src interface{}) error {
	if src == nil {
		*ts = ""
		return nil
	}

	switch v := src.(type) {
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	case []byte:
		return ts.scanString(string(v))
	case string:
		return ts.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrInvalidTimeString, src)
	}
}

func (ts *TimeString) scanString(s string) error {
	// Postgres TIME приходит как "15:04:05"
	if t, err := time.Parse("15:04:05", s); err == nil {
		*ts = NewTimeString(t)
		return nil
	}

	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}
