package blackout

import "errors"

var (
	// ErrBlackoutNotFound возвращается, когда блэкаут не найден
	ErrBlackoutNotFound = errors.New("blackout.repository: blackout range not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("blackout.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("blackout.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("blackout.repository: failed to scan row")

	// ErrInvalidRange возвращается при попытке создать диапазон с end_date < start_date
	ErrInvalidRange = errors.New("blackout.repository: invalid blackout range")
)
