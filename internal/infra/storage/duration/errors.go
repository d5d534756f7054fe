package duration

import "errors"

var (
	// ErrDurationNotFound возвращается, когда длительность не найдена в каталоге
	ErrDurationNotFound = errors.New("duration.repository: session duration not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("duration.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("duration.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("duration.repository: failed to scan row")

	// ErrInvalidDuration возвращается при сохранении длительности вне допустимых границ
	ErrInvalidDuration = errors.New("duration.repository: invalid session duration")
)
