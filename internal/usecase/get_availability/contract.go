package get_availability

import (
	"context"
	"time"

	"github.com/fitcrm/FC-ReservationService/internal/domain"
	policystore "github.com/fitcrm/FC-ReservationService/internal/infra/storage/policy"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// GetByTrainerWithFilter получает бронирования тренера по фильтру
	GetByTrainerWithFilter(ctx context.Context, filter domain.TrainerReservationsFilter) ([]*domain.Reservation, error)
}

// ScheduleRepository интерфейс репозитория недельных расписаний
type ScheduleRepository interface {
	GetByTrainerID(ctx context.Context, trainerID int64) (*domain.WeeklySchedule, error)
}

// PolicyRepository интерфейс репозитория политик бронирования
type PolicyRepository interface {
	GetByTrainerID(ctx context.Context, trainerID int64) (*policystore.Policies, error)
}

// DurationRepository интерфейс репозитория каталога длительностей
type DurationRepository interface {
	ListByTrainer(ctx context.Context, trainerID int64) ([]domain.SessionDuration, error)
}

// BlackoutRepository интерфейс репозитория диапазонов недоступности
type BlackoutRepository interface {
	ListForDate(ctx context.Context, trainerID int64, locationID *int64, date time.Time) ([]*domain.BlackoutRange, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
