package policy

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/fitcrm/FC-ReservationService/internal/domain"
	"github.com/fitcrm/FC-ReservationService/pkg/dbmetrics"
	"github.com/fitcrm/FC-ReservationService/pkg/psqlbuilder"
)

// DBExecutor интерфейс выполнения запросов (см. pkg/dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

// Policies набор политик бронирования тренера - одна строка на тренера
type Policies struct {
	TrainerID int64
	Buffer    domain.BufferPolicy
	Notice    domain.AdvanceNoticePolicy
	Horizon   domain.HorizonPolicy
}

// Repository репозиторий политик бронирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория политик
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByTrainerID получает политики бронирования тренера.
// Возвращает ErrPoliciesNotFound, если политики еще не настраивались.
func (r *Repository) GetByTrainerID(ctx context.Context, trainerID int64) (*Policies, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"trainer_id",
		"buffer_active",
		"buffer_minutes_before",
		"buffer_minutes_after",
		"notice_active",
		"notice_minutes_minimum",
		"horizon_active",
		"horizon_max_days",
	).
		From("booking_policies").
		Where(squirrel.Eq{"trainer_id": trainerID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByTrainerID - build select query: %v", ErrBuildQuery, err)
	}

	var p Policies
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.TrainerID,
		&p.Buffer.Active,
		&p.Buffer.MinutesBefore,
		&p.Buffer.MinutesAfter,
		&p.Notice.Active,
		&p.Notice.MinutesMinimum,
		&p.Horizon.Active,
		&p.Horizon.MaxDays,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPoliciesNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTrainerID - scan policies: %v", ErrScanRow, err)
	}

	return &p, nil
}

// Upsert сохраняет политики тренера, перезаписывая существующие
func (r *Repository) Upsert(ctx context.Context, p *Policies) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_policies").
		Columns(
			"trainer_id",
			"buffer_active",
			"buffer_minutes_before",
			"buffer_minutes_after",
			"notice_active",
			"notice_minutes_minimum",
			"horizon_active",
			"horizon_max_days",
		).
		Values(
			p.TrainerID,
			p.Buffer.Active,
			p.Buffer.MinutesBefore,
			p.Buffer.MinutesAfter,
			p.Notice.Active,
			p.Notice.MinutesMinimum,
			p.Horizon.Active,
			p.Horizon.MaxDays,
		).
		Suffix(`ON CONFLICT (trainer_id) DO UPDATE SET
			buffer_active = EXCLUDED.buffer_active,
			buffer_minutes_before = EXCLUDED.buffer_minutes_before,
			buffer_minutes_after = EXCLUDED.buffer_minutes_after,
			notice_active = EXCLUDED.notice_active,
			notice_minutes_minimum = EXCLUDED.notice_minutes_minimum,
			horizon_active = EXCLUDED.horizon_active,
			horizon_max_days = EXCLUDED.horizon_max_days,
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}
