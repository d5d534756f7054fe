package blackout

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/fitcrm/FC-ReservationService/internal/domain"
	"github.com/fitcrm/FC-ReservationService/pkg/dbmetrics"
	"github.com/fitcrm/FC-ReservationService/pkg/psqlbuilder"
)

// DBExecutor интерфейс выполнения запросов (см. pkg/dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий диапазонов недоступности (отпуска, праздники)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блэкаутов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var blackoutColumns = []string{
	"id",
	"scope",
	"owner_id",
	"start_date",
	"end_date",
	"reason",
	"created_at",
}

// ListForDate получает все блэкауты, покрывающие дату: персональные блэкауты
// тренера плюс блэкауты локации (если locationID передан)
func (r *Repository) ListForDate(ctx context.Context, trainerID int64, locationID *int64, date time.Time) ([]*domain.BlackoutRange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// trainer scope - по trainerID, location scope - по locationID
	scopeFilter := squirrel.Or{
		squirrel.And{
			squirrel.Eq{"scope": string(domain.ScopeTrainer)},
			squirrel.Eq{"owner_id": trainerID},
		},
	}
	if locationID != nil {
		scopeFilter = append(scopeFilter, squirrel.And{
			squirrel.Eq{"scope": string(domain.ScopeLocation)},
			squirrel.Eq{"owner_id": *locationID},
		})
	}

	day := date.Format("2006-01-02")
	query, args, err := psqlbuilder.Select(blackoutColumns...).
		From("blackout_ranges").
		Where(scopeFilter).
		Where(squirrel.LtOrEq{"start_date": day}).
		Where(squirrel.GtOrEq{"end_date": day}).
		OrderBy("start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBlackouts(rows)
}

// ListByTrainer получает все персональные блэкауты тренера
func (r *Repository) ListByTrainer(ctx context.Context, trainerID int64) ([]*domain.BlackoutRange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blackoutColumns...).
		From("blackout_ranges").
		Where(squirrel.Eq{
			"scope":    string(domain.ScopeTrainer),
			"owner_id": trainerID,
		}).
		OrderBy("start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByTrainer - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTrainer - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBlackouts(rows)
}

// Create создает новый диапазон недоступности
func (r *Repository) Create(ctx context.Context, b *domain.BlackoutRange) (*domain.BlackoutRange, error) {
	if b.EndDate.Before(b.StartDate) {
		return nil, ErrInvalidRange
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blackout_ranges").
		Columns("scope", "owner_id", "start_date", "end_date", "reason").
		Values(
			string(b.Scope),
			b.OwnerID,
			b.StartDate.Format("2006-01-02"),
			b.EndDate.Format("2006-01-02"),
			b.Reason,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	return b, nil
}

// Delete удаляет блэкаут тренера. Сверяет владельца, чтобы тренер не мог
// удалить чужой диапазон или диапазон локации.
func (r *Repository) Delete(ctx context.Context, id, trainerID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blackout_ranges").
		Where(squirrel.Eq{
			"id":       id,
			"scope":    string(domain.ScopeTrainer),
			"owner_id": trainerID,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBlackoutNotFound
	}

	return nil
}

func scanBlackouts(rows *sql.Rows) ([]*domain.BlackoutRange, error) {
	var blackouts []*domain.BlackoutRange

	for rows.Next() {
		var b domain.BlackoutRange
		var scope string
		var reason sql.NullString
		var createdAt sql.NullTime

		err := rows.Scan(
			&b.ID,
			&scope,
			&b.OwnerID,
			&b.StartDate,
			&b.EndDate,
			&reason,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scan blackout: %v", ErrScanRow, err)
		}

		b.Scope = domain.BlackoutScope(scope)
		b.Reason = reason.String
		b.CreatedAt = createdAt.Time
		blackouts = append(blackouts, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}

	return blackouts, nil
}
