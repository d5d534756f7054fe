package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidTimeFormat возвращается при некорректном формате времени (ожидается HH:MM)
	ErrInvalidTimeFormat = errors.New("types: invalid time string format, expected HH:MM")

	// ErrInvalidInterval возвращается, когда конец интервала не позже его начала
	ErrInvalidInterval = errors.New("types: invalid interval, end must be after start")
)

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

// TimeString represents a wall-clock time of day in "HH:MM" format.
// Used for schedule blocks, slots and reservation times; minute resolution,
// никогда не пересекает полночь.
type TimeString string

// NewTimeString создает TimeString из time.Time (отбрасывая дату и секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString парсит строку "HH:MM" в TimeString
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts.normalize(), nil
}

// FromMinutes конвертирует смещение в минутах от полуночи в TimeString
func FromMinutes(m int) (TimeString, error) {
	if m < 0 || m >= MinutesPerDay {
		return "", fmt.Errorf("%w: %d minutes is out of day range", ErrInvalidTimeFormat, m)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)), nil
}

// Minutes возвращает смещение в минутах от полуночи
func (t TimeString) Minutes() (int, error) {
	h, m, err := t.parse()
	if err != nil {
		return 0, err
	}
	return h*60 + m, nil
}

// Validate проверяет формат HH:MM и диапазоны часов/минут
func (t TimeString) Validate() error {
	_, _, err := t.parse()
	return err
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a < b
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a > b
}

// AddMinutes возвращает время, сдвинутое на minutes минут вперед.
// Ошибка, если результат выходит за пределы суток (блоки не пересекают полночь).
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	m, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return FromMinutes(m + minutes)
}

// String возвращает каноническое представление "HH:MM"
func (t TimeString) String() string {
	return string(t.normalize())
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) overlap. Touching endpoints do not count: back-to-back
// slots are legal.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// ValidateInterval проверяет, что end строго позже start
func ValidateInterval(start, end TimeString) error {
	s, err := start.Minutes()
	if err != nil {
		return err
	}
	e, err := end.Minutes()
	if err != nil {
		return err
	}
	if e <= s {
		return fmt.Errorf("%w: %s-%s", ErrInvalidInterval, start, end)
	}
	return nil
}

// Scan реализует sql.Scanner (колонки TIME приходят как time.Time, string или []byte)
func (t *TimeString) Scan(value interface{}) error {
	switch v := value.(type) {
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
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeFormat, value)
	}
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t.String(), nil
}

func (t *TimeString) scanString(s string) error {
	// Postgres может вернуть "HH:MM:SS" - отбрасываем секунды
	if len(s) > 5 {
		s = s[:5]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t TimeString) normalize() TimeString {
	h, m, err := t.parse()
	if err != nil {
		return t
	}
	return TimeString(fmt.Sprintf("%02d:%02d", h, m))
}

func (t TimeString) parse() (hour, minute int, err error) {
	s := string(t)
	// Допускаем "H:MM" и "HH:MM"
	var n int
	n, err = fmt.Sscanf(s, "%d:%d", &hour, &minute)
	if err != nil || n != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return hour, minute, nil
}
