package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// timeFormat формат времени HH:MM
const timeFormat = "15:04"

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format, expected HH:MM")

	// ErrTimeOutOfRange возвращается, когда результат операции выходит за пределы суток
	ErrTimeOutOfRange = errors.New("time is out of day range")
)

// TimeString время в формате "HH:MM" (например, "14:00")
// Используется для хранения времени начала слота без привязки к дате
type TimeString string

// NewTimeString создает TimeString из time.Time (отбрасывая дату и секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeFormat))
}

// NewTimeStringFromString создает TimeString из строки с валидацией
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// String возвращает строковое представление времени
func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет, что строка соответствует формату HH:MM
func (t TimeString) Validate() error {
	if _, err := time.Parse(timeFormat, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// Hour возвращает час (0-23)
// Для невалидного значения возвращает 0
func (t TimeString) Hour() int {
	parsed, err := time.Parse(timeFormat, string(t))
	if err != nil {
		return 0
	}
	return parsed.Hour()
}

// Minute возвращает минуты (0-59)
func (t TimeString) Minute() int {
	parsed, err := time.Parse(timeFormat, string(t))
	if err != nil {
		return 0
	}
	return parsed.Minute()
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// AddMinutes возвращает новое время, сдвинутое на minutes минут вперед
// Возвращает ошибку, если результат выходит за пределы суток
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	parsed, err := time.Parse(timeFormat, string(t))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}

	total := parsed.Hour()*60 + parsed.Minute() + minutes
	if total < 0 || total >= 24*60 {
		return "", fmt.Errorf("%w: %s + %d minutes", ErrTimeOutOfRange, t, minutes)
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// At возвращает time.Time с датой date и временем t в локации date
func (t TimeString) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}

// Value реализует driver.Valuer для сохранения в БД
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan реализует sql.Scanner для чтения из БД
// Поддерживает колонки типа TIME (приходят как время или строка "HH:MM:SS")
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	// PostgreSQL отдает TIME как "HH:MM:SS", обрезаем секунды
	if len(s) > 5 {
		s = s[:5]
	}
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = ts
	return nil
}
