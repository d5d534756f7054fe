package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда у тренера нет сохраненного расписания
	ErrScheduleNotFound = errors.New("schedule.repository: weekly schedule not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")

	// ErrInvalidSchedule возвращается при попытке сохранить расписание с
	// некорректными блоками (end <= start либо пересечения внутри дня)
	ErrInvalidSchedule = errors.New("schedule.repository: invalid schedule blocks")
)
