package create_reservation

import (
	"context"
	"time"

	"github.com/fitcrm/FC-ReservationService/internal/domain"
	policystore "github.com/fitcrm/FC-ReservationService/internal/infra/storage/policy"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
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
	GetByID(ctx context.Context, id int64) (*domain.SessionDuration, error)
}

// BlackoutRepository интерфейс репозитория диапазонов недоступности
type BlackoutRepository interface {
	ListForDate(ctx context.Context, trainerID int64, locationID *int64, date time.Time) ([]*domain.BlackoutRange, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
