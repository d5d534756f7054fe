package domain

import (
	"fmt"
	"time"

	"github.com/fitcrm/FC-ReservationService/pkg/types"
)

// TimeBlock is a working interval within a single day, e.g. 09:00-13:00.
// Blocks never cross midnight.
type TimeBlock struct {
	Start types.TimeString
	End   types.TimeString
}

// Validate проверяет формат и то, что конец блока строго позже начала
func (b TimeBlock) Validate() error {
	return types.ValidateInterval(b.Start, b.End)
}

// DaySchedule describes availability for one day of week
type DaySchedule struct {
	DayOfWeek time.Weekday
	Available bool
	Blocks    []TimeBlock
}

// Validate проверяет блоки дня: каждый корректен и блоки не пересекаются
func (d DaySchedule) Validate() error {
	for _, b := range d.Blocks {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("day %s: %w", d.DayOfWeek, err)
		}
	}
	for i := range d.Blocks {
		for j := i + 1; j < len(d.Blocks); j++ {
			ai, _ := d.Blocks[i].Start.Minutes()
			bi, _ := d.Blocks[i].End.Minutes()
			aj, _ := d.Blocks[j].Start.Minutes()
			bj, _ := d.Blocks[j].End.Minutes()
			if types.Overlaps(ai, bi, aj, bj) {
				return fmt.Errorf("day %s: %w: blocks %s-%s and %s-%s overlap",
					d.DayOfWeek, types.ErrInvalidInterval,
					d.Blocks[i].Start, d.Blocks[i].End, d.Blocks[j].Start, d.Blocks[j].End)
			}
		}
	}
	return nil
}

// WeeklySchedule is a trainer's weekly availability template.
// Never deleted, only deactivated; mutated only through explicit save.
type WeeklySchedule struct {
	ID        int64
	TrainerID int64
	Active    bool
	Days      [7]DaySchedule // индекс = time.Weekday (0 = Sunday)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Day возвращает расписание на день недели указанной даты
func (s *WeeklySchedule) Day(date time.Time) DaySchedule {
	return s.Days[int(date.Weekday())]
}

// Validate проверяет все дни недели
func (s *WeeklySchedule) Validate() error {
	for _, d := range s.Days {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// DefaultWeeklySchedule возвращает расписание по умолчанию:
// Пн-Пт 09:00-18:00, выходные недоступны. Создается при первом обращении
// к конфигурации тренера.
func DefaultWeeklySchedule(trainerID int64) *WeeklySchedule {
	s := &WeeklySchedule{
		TrainerID: trainerID,
		Active:    true,
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		day := DaySchedule{DayOfWeek: wd}
		if wd >= time.Monday && wd <= time.Friday {
			day.Available = true
			day.Blocks = []TimeBlock{{
				Start: types.TimeString(DefaultWindowStart),
				End:   types.TimeString(DefaultWindowEnd),
			}}
		}
		s.Days[int(wd)] = day
	}
	return s
}
