package domain

import "time"

// SessionDuration is one bookable duration option from the trainer's catalog
// (e.g. 30/45/60/90 minutes). SortOrder defines the slot-generation pass order.
type SessionDuration struct {
	ID        int64
	TrainerID int64
	Minutes   int
	Name      string
	Price     float64
	Active    bool
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ImplicitDuration возвращает неявную 60-минутную длительность,
// используемую когда каталог пуст или недоступен
func ImplicitDuration() SessionDuration {
	return SessionDuration{
		Minutes: ImplicitDurationMinutes,
		Name:    "Sesión estándar",
		Active:  true,
	}
}

// ActiveDurations фильтрует каталог до активных длительностей.
// Порядок входного слайса (sort_order из каталога) сохраняется.
func ActiveDurations(catalog []SessionDuration) []SessionDuration {
	active := make([]SessionDuration, 0, len(catalog))
	for _, d := range catalog {
		if d.Active && d.Minutes > 0 {
			active = append(active, d)
		}
	}
	return active
}
