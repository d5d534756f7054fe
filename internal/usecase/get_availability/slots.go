package get_availability

import (
	"sort"
	"time"

	"github.com/fitcrm/FC-ReservationService/internal/domain"
	"github.com/fitcrm/FC-ReservationService/pkg/ptr"
	"github.com/fitcrm/FC-ReservationService/pkg/types"
)

// generateSlots генерирует доступные слоты на день по разрешённой конфигурации.
//
// Для каждой активной длительности каталога рабочие блоки дня замощаются
// слотами встык, с шагом равным длительности. Кандидат отбрасывается, если:
//   - он выходит за конец блока;
//   - его начало раньше порога предварительного уведомления (актуально для
//     сегодняшней даты);
//   - он пересекается с существующим pending/confirmed бронированием
//     с учетом буферов.
//
// Результат отсортирован по времени начала; при равном начале слоты идут
// в порядке каталога (стабильная сортировка).
func generateSlots(
	cfg domain.ResolvedConfig,
	date time.Time,
	now time.Time,
	reservations []*domain.Reservation,
) []Slot {
	floor := cfg.Notice.Floor(now)

	type candidate struct {
		slot     Slot
		startMin int
	}
	candidates := make([]candidate, 0)

	for _, dur := range cfg.Durations {
		for _, block := range cfg.Day.Blocks {
			blockStart, err := block.Start.Minutes()
			if err != nil {
				continue
			}
			blockEnd, err := block.End.Minutes()
			if err != nil || blockEnd <= blockStart {
				continue
			}

			for startMin := blockStart; startMin+dur.Minutes <= blockEnd; startMin += dur.Minutes {
				endMin := startMin + dur.Minutes

				// Порог уведомления: начало слота как момент времени на дату date
				slotStart := time.Date(date.Year(), date.Month(), date.Day(),
					startMin/60, startMin%60, 0, 0, now.Location())
				if slotStart.Before(floor) {
					continue
				}

				if domain.Conflicts(startMin, endMin, reservations, cfg.Buffer) {
					continue
				}

				startTS, err := types.FromMinutes(startMin)
				if err != nil {
					continue
				}
				endTS, err := types.FromMinutes(endMin)
				if err != nil {
					continue
				}

				slot := Slot{
					StartTime:       startTS,
					EndTime:         endTS,
					DurationMinutes: dur.Minutes,
					SessionName:     dur.Name,
					Price:           dur.Price,
				}
				// Неявная длительность не имеет записи в каталоге
				if dur.ID > 0 {
					slot.SessionTypeID = ptr.Ptr(dur.ID)
				}

				candidates = append(candidates, candidate{slot: slot, startMin: startMin})
			}
		}
	}

	// Стабильная сортировка: при равном начале сохраняется порядок каталога
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].startMin < candidates[j].startMin
	})

	slots := make([]Slot, len(candidates))
	for i, c := range candidates {
		slots[i] = c.slot
	}
	return slots
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
