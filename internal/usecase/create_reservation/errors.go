package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInvalidDate возвращается при попытке бронирования на прошедшую дату
	ErrInvalidDate = errors.New("create_reservation: invalid reservation date")

	// ErrDateTooFarInFuture возвращается, когда дата выходит за горизонт бронирования
	ErrDateTooFarInFuture = errors.New("create_reservation: date is beyond booking horizon")

	// ErrTooLateToBook возвращается при нарушении минимального времени предупреждения
	ErrTooLateToBook = errors.New("create_reservation: too late to book this slot")

	// ErrDateBlackedOut возвращается, когда дата закрыта блэкаутом тренера или локации
	ErrDateBlackedOut = errors.New("create_reservation: date is blacked out")

	// ErrOutsideWorkingHours возвращается, когда интервал не помещается в рабочие блоки дня
	ErrOutsideWorkingHours = errors.New("create_reservation: slot is outside working hours")

	// ErrSlotConflict возвращается, когда интервал пересекается с существующим
	// бронированием (с учетом буферов)
	ErrSlotConflict = errors.New("create_reservation: slot conflicts with an existing reservation")

	// ErrSessionTypeNotFound возвращается, когда длительность не найдена в каталоге тренера
	ErrSessionTypeNotFound = errors.New("create_reservation: session type not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
