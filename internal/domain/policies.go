package domain

import "time"

// BufferPolicy is padding added around existing reservations during which
// no new slot may start or end. Inactive policy equals zero padding.
type BufferPolicy struct {
	Active        bool
	MinutesBefore int
	MinutesAfter  int
}

// Padding возвращает действующие отступы с учетом флага активности
func (p BufferPolicy) Padding() (before, after int) {
	if !p.Active {
		return 0, 0
	}
	return p.MinutesBefore, p.MinutesAfter
}

// AdvanceNoticePolicy is the minimum lead time between "now" and a bookable
// slot's start. Inactive policy means the floor is "now" itself.
type AdvanceNoticePolicy struct {
	Active         bool
	MinutesMinimum int
}

// Floor возвращает минимально допустимый момент начала слота.
// При неактивной политике это просто now - то же сравнение с ослабленным порогом.
func (p AdvanceNoticePolicy) Floor(now time.Time) time.Time {
	if !p.Active {
		return now
	}
	return now.Add(time.Duration(p.MinutesMinimum) * time.Minute)
}

// HorizonPolicy limits how many days into the future a slot may be offered.
// Inactive policy means unbounded.
type HorizonPolicy struct {
	Active  bool
	MaxDays int
}

// Allows возвращает true, если дата date попадает в горизонт бронирования.
// Сравнение ведется с точностью до дня: дата ровно maxDays вперед допустима.
func (p HorizonPolicy) Allows(date, now time.Time) bool {
	if !p.Active {
		return true
	}
	maxDate := midnight(now).AddDate(0, 0, p.MaxDays)
	return !midnight(date).After(maxDate)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
