package trainerconfig

import (
	"context"
	"time"

	"github.com/fitcrm/FC-ReservationService/internal/domain"
	policystore "github.com/fitcrm/FC-ReservationService/internal/infra/storage/policy"
)

// ScheduleRepository интерфейс репозитория недельных расписаний
type ScheduleRepository interface {
	GetByTrainerID(ctx context.Context, trainerID int64) (*domain.WeeklySchedule, error)
	Save(ctx context.Context, schedule *domain.WeeklySchedule) (*domain.WeeklySchedule, error)
}

// PolicyRepository интерфейс репозитория политик бронирования
type PolicyRepository interface {
	GetByTrainerID(ctx context.Context, trainerID int64) (*policystore.Policies, error)
	Upsert(ctx context.Context, p *policystore.Policies) error
}

// DurationRepository интерфейс репозитория каталога длительностей
type DurationRepository interface {
	ListByTrainer(ctx context.Context, trainerID int64) ([]domain.SessionDuration, error)
	Replace(ctx context.Context, trainerID int64, durations []domain.SessionDuration) ([]domain.SessionDuration, error)
}

// BlackoutRepository интерфейс репозитория диапазонов недоступности
type BlackoutRepository interface {
	ListByTrainer(ctx context.Context, trainerID int64) ([]*domain.BlackoutRange, error)
	Create(ctx context.Context, b *domain.BlackoutRange) (*domain.BlackoutRange, error)
	Delete(ctx context.Context, id, trainerID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// dateOnly форматирует дату без времени
func dateOnly(t time.Time) string {
	return t.Format(domain.DateFormat)
}
