package domain

import "time"

// BlackoutScope определяет, к кому применяется блокировка дат
type BlackoutScope string

const (
	ScopeTrainer  BlackoutScope = "trainer"
	ScopeLocation BlackoutScope = "location"
)

// BlackoutRange is an inclusive date range during which no slots are offered,
// regardless of schedule (vacation, holidays, maintenance).
type BlackoutRange struct {
	ID        int64
	Scope     BlackoutScope
	OwnerID   int64 // trainerID или locationID в зависимости от Scope
	StartDate time.Time
	EndDate   time.Time // включительно, целые дни
	Reason    string
	CreatedAt time.Time
}

// Covers возвращает true, если дата date попадает в диапазон [StartDate, EndDate]
// включительно (с точностью до дня)
func (b *BlackoutRange) Covers(date time.Time) bool {
	d := midnight(date)
	return !d.Before(midnight(b.StartDate)) && !d.After(midnight(b.EndDate))
}

// AnyBlackoutCovers возвращает true, если хотя бы один диапазон закрывает дату
func AnyBlackoutCovers(ranges []*BlackoutRange, date time.Time) bool {
	for _, r := range ranges {
		if r.Covers(date) {
			return true
		}
	}
	return false
}
