package duration

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

// Repository репозиторий каталога длительностей сессий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория длительностей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var durationColumns = []string{
	"id",
	"trainer_id",
	"minutes",
	"name",
	"price",
	"active",
	"sort_order",
	"created_at",
	"updated_at",
}

// ListByTrainer получает каталог длительностей тренера в порядке sort_order.
// Возвращает и неактивные записи - фильтрация происходит на уровне домена.
func (r *Repository) ListByTrainer(ctx context.Context, trainerID int64) ([]domain.SessionDuration, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(durationColumns...).
		From("session_durations").
		Where(squirrel.Eq{"trainer_id": trainerID}).
		OrderBy("sort_order ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByTrainer - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTrainer - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var durations []domain.SessionDuration
	for rows.Next() {
		d, err := scanDuration(rows)
		if err != nil {
			return nil, err
		}
		durations = append(durations, *d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByTrainer - rows error: %v", ErrScanRow, err)
	}

	return durations, nil
}

// GetByID получает одну запись каталога
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.SessionDuration, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(durationColumns...).
		From("session_durations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	d, err := scanDurationRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrDurationNotFound
	}
	if err != nil {
		return nil, err
	}

	return d, nil
}

// Replace полностью заменяет каталог длительностей тренера.
// Вызывается внутри транзакции из сервиса конфигурации.
func (r *Repository) Replace(ctx context.Context, trainerID int64, durations []domain.SessionDuration) ([]domain.SessionDuration, error) {
	for _, d := range durations {
		if d.Minutes < domain.MinSessionDurationMinutes || d.Minutes > domain.MaxSessionDurationMinutes {
			return nil, fmt.Errorf("%w: %d minutes", ErrInvalidDuration, d.Minutes)
		}
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	delQuery, delArgs, err := psqlbuilder.Delete("session_durations").
		Where(squirrel.Eq{"trainer_id": trainerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Replace - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, delQuery, delArgs...); err != nil {
		return nil, fmt.Errorf("%w: Replace - clear catalog: %v", ErrExecQuery, err)
	}

	result := make([]domain.SessionDuration, 0, len(durations))
	for i, d := range durations {
		query, args, err := psqlbuilder.Insert("session_durations").
			Columns("trainer_id", "minutes", "name", "price", "active", "sort_order").
			Values(trainerID, d.Minutes, d.Name, d.Price, d.Active, i).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: Replace - build insert query: %v", ErrBuildQuery, err)
		}

		var createdAt, updatedAt sql.NullTime
		err = executor.QueryRowContext(ctx, query, args...).Scan(&d.ID, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: Replace - execute insert: %v", ErrExecQuery, err)
		}

		d.TrainerID = trainerID
		d.SortOrder = i
		d.CreatedAt = createdAt.Time
		d.UpdatedAt = updatedAt.Time
		result = append(result, d)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDuration(s rowScanner) (*domain.SessionDuration, error) {
	d, err := scanDurationRow(s)
	if err != nil {
		return nil, fmt.Errorf("%w: scan duration: %v", ErrScanRow, err)
	}
	return d, nil
}

func scanDurationRow(s rowScanner) (*domain.SessionDuration, error) {
	var d domain.SessionDuration
	var name sql.NullString
	var price sql.NullFloat64
	var createdAt, updatedAt sql.NullTime

	err := s.Scan(
		&d.ID,
		&d.TrainerID,
		&d.Minutes,
		&name,
		&price,
		&d.Active,
		&d.SortOrder,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	d.Name = name.String
	d.Price = price.Float64
	d.CreatedAt = createdAt.Time
	d.UpdatedAt = updatedAt.Time

	return &d, nil
}
