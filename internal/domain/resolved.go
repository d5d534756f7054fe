package domain

import "time"

// ResolvedConfig собирает все входные данные генерации слотов в одном месте
// с уже применёнными правилами подстановки значений по умолчанию.
// Единственная точка, где живут fallback-правила - генератор слотов работает
// только с уже разрешённой конфигурацией.
type ResolvedConfig struct {
	Day       DaySchedule       // блоки дня для тайлинга
	Durations []SessionDuration // активные длительности в порядке каталога
	Buffer    BufferPolicy
	Notice    AdvanceNoticePolicy
	Horizon   HorizonPolicy

	// LegacyWindow - использовано окно по умолчанию 09:00-18:00 с шагом в час
	// (расписание неактивно либо день не настроен)
	LegacyWindow bool
}

// ResolveConfig строит ResolvedConfig на дату date.
//
// Правила подстановки:
//   - schedule == nil, schedule.Active == false или день недоступен ->
//     окно 09:00-18:00 с часовой сеткой вместо каталога длительностей
//     (поведение для тренеров без настроенного расписания);
//   - пустой список активных длительностей -> неявная 60-минутная.
//
// Политики передаются как есть: деградация при ошибках чтения (политика
// трактуется как неактивная) - ответственность вызывающего адаптера.
func ResolveConfig(
	schedule *WeeklySchedule,
	date time.Time,
	catalog []SessionDuration,
	buffer BufferPolicy,
	notice AdvanceNoticePolicy,
	horizon HorizonPolicy,
) ResolvedConfig {
	cfg := ResolvedConfig{
		Buffer:  buffer,
		Notice:  notice,
		Horizon: horizon,
	}

	if schedule == nil || !schedule.Active || !schedule.Day(date).Available {
		cfg.LegacyWindow = true
		cfg.Day = DaySchedule{
			DayOfWeek: date.Weekday(),
			Available: true,
			Blocks: []TimeBlock{{
				Start: DefaultWindowStart,
				End:   DefaultWindowEnd,
			}},
		}
		cfg.Durations = []SessionDuration{ImplicitDuration()}
		return cfg
	}

	cfg.Day = schedule.Day(date)
	cfg.Durations = ActiveDurations(catalog)
	if len(cfg.Durations) == 0 {
		cfg.Durations = []SessionDuration{ImplicitDuration()}
	}
	return cfg
}
