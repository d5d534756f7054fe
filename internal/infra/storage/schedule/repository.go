package schedule

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

// Repository репозиторий недельных расписаний тренеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByTrainerID получает недельное расписание тренера вместе с блоками.
// Возвращает ErrScheduleNotFound, если расписание еще не создавалось.
func (r *Repository) GetByTrainerID(ctx context.Context, trainerID int64) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"trainer_id",
		"active",
		"created_at",
		"updated_at",
	).
		From("weekly_schedules").
		Where(squirrel.Eq{"trainer_id": trainerID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByTrainerID - build select query: %v", ErrBuildQuery, err)
	}

	var schedule domain.WeeklySchedule
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&schedule.ID,
		&schedule.TrainerID,
		&schedule.Active,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTrainerID - scan schedule: %v", ErrScanRow, err)
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	// Инициализируем все 7 дней - дни без строк остаются недоступными
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		schedule.Days[int(wd)] = domain.DaySchedule{DayOfWeek: wd}
	}

	if err := r.loadDays(ctx, executor, &schedule); err != nil {
		return nil, err
	}
	if err := r.loadBlocks(ctx, executor, &schedule); err != nil {
		return nil, err
	}

	return &schedule, nil
}

// Save сохраняет недельное расписание целиком (upsert + полная перезапись
// дней и блоков). Вызывается внутри транзакции из сервиса конфигурации.
func (r *Repository) Save(ctx context.Context, schedule *domain.WeeklySchedule) (*domain.WeeklySchedule, error) {
	if err := schedule.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("weekly_schedules").
		Columns("trainer_id", "active").
		Values(schedule.TrainerID, schedule.Active).
		Suffix("ON CONFLICT (trainer_id) DO UPDATE SET active = EXCLUDED.active, updated_at = NOW()").
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&schedule.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Save - execute upsert: %v", ErrExecQuery, err)
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	// Полностью перезаписываем дни и блоки
	for _, table := range []string{"schedule_blocks", "schedule_days"} {
		delQuery, delArgs, err := psqlbuilder.Delete(table).
			Where(squirrel.Eq{"schedule_id": schedule.ID}).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: Save - build delete query for %s: %v", ErrBuildQuery, table, err)
		}
		if _, err := executor.ExecContext(ctx, delQuery, delArgs...); err != nil {
			return nil, fmt.Errorf("%w: Save - clear %s: %v", ErrExecQuery, table, err)
		}
	}

	daysInsert := psqlbuilder.Insert("schedule_days").
		Columns("schedule_id", "day_of_week", "available")
	blocksInsert := psqlbuilder.Insert("schedule_blocks").
		Columns("schedule_id", "day_of_week", "start_time", "end_time")
	hasBlocks := false

	for _, day := range schedule.Days {
		daysInsert = daysInsert.Values(schedule.ID, int(day.DayOfWeek), day.Available)
		for _, block := range day.Blocks {
			blocksInsert = blocksInsert.Values(schedule.ID, int(day.DayOfWeek), block.Start, block.End)
			hasBlocks = true
		}
	}

	daysQuery, daysArgs, err := daysInsert.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Save - build days insert: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, daysQuery, daysArgs...); err != nil {
		return nil, fmt.Errorf("%w: Save - insert days: %v", ErrExecQuery, err)
	}

	if hasBlocks {
		blocksQuery, blocksArgs, err := blocksInsert.ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: Save - build blocks insert: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, blocksQuery, blocksArgs...); err != nil {
			return nil, fmt.Errorf("%w: Save - insert blocks: %v", ErrExecQuery, err)
		}
	}

	return schedule, nil
}

// SetActive включает/выключает расписание без изменения блоков
func (r *Repository) SetActive(ctx context.Context, trainerID int64, active bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("weekly_schedules").
		Set("active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"trainer_id": trainerID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetActive - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetActive - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}

func (r *Repository) loadDays(ctx context.Context, executor DBExecutor, schedule *domain.WeeklySchedule) error {
	query, args, err := psqlbuilder.Select("day_of_week", "available").
		From("schedule_days").
		Where(squirrel.Eq{"schedule_id": schedule.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadDays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadDays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var dayOfWeek int
		var available bool
		if err := rows.Scan(&dayOfWeek, &available); err != nil {
			return fmt.Errorf("%w: loadDays - scan row: %v", ErrScanRow, err)
		}
		if dayOfWeek < 0 || dayOfWeek > 6 {
			continue
		}
		schedule.Days[dayOfWeek].Available = available
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadDays - rows error: %v", ErrScanRow, err)
	}
	return nil
}

func (r *Repository) loadBlocks(ctx context.Context, executor DBExecutor, schedule *domain.WeeklySchedule) error {
	query, args, err := psqlbuilder.Select("day_of_week", "start_time", "end_time").
		From("schedule_blocks").
		Where(squirrel.Eq{"schedule_id": schedule.ID}).
		OrderBy("day_of_week ASC, start_time ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadBlocks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadBlocks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var dayOfWeek int
		var block domain.TimeBlock
		if err := rows.Scan(&dayOfWeek, &block.Start, &block.End); err != nil {
			return fmt.Errorf("%w: loadBlocks - scan row: %v", ErrScanRow, err)
		}
		if dayOfWeek < 0 || dayOfWeek > 6 {
			continue
		}
		schedule.Days[dayOfWeek].Blocks = append(schedule.Days[dayOfWeek].Blocks, block)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadBlocks - rows error: %v", ErrScanRow, err)
	}
	return nil
}
