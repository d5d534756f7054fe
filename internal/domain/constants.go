package domain

// Default fallback values applied when a trainer has no stored configuration
const (
	// Legacy default window used when the weekly schedule is inactive or the
	// day has no configured blocks: 09:00-18:00, hourly granularity.
	DefaultWindowStart = "09:00"
	DefaultWindowEnd   = "18:00"

	// ImplicitDurationMinutes подставляется, когда в каталоге нет ни одной активной длительности
	ImplicitDurationMinutes = 60

	DefaultBufferMinutesBefore = 0
	DefaultBufferMinutesAfter  = 0
	DefaultNoticeMinutes       = 0
	DefaultHorizonDays         = 0 // 0 = без ограничения
)

// Business validation constants
const (
	MinSessionDurationMinutes = 15
	MaxSessionDurationMinutes = 240
	MaxNoticeMinutes          = 20160 // 2 недели
	MaxHorizonDays            = 365
	MaxBufferMinutes          = 180
	MaxNotesLength            = 500
	MaxCancelReasonLength     = 500
	MaxBlackoutReasonLength   = 255
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses статусы бронирований, которые занимают время тренера.
// Только pending и confirmed участвуют в проверке конфликтов - отменённые,
// завершённые и no-show прозрачны для доступности.
var BlockingStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses статусы, при которых бронирование больше не блокирует слоты
var InactiveStatuses = []ReservationStatus{
	StatusCancelledByClient,
	StatusCancelledByTrainer,
	StatusCompleted,
	StatusNoShow,
}
