package reschedule_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_reservation: invalid input data")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reschedule_reservation: reservation not found")

	// ErrAccessDenied возвращается, когда пользователь не является ни клиентом,
	// ни тренером этого бронирования
	ErrAccessDenied = errors.New("reschedule_reservation: access denied")

	// ErrCannotReschedule возвращается для бронирований в финальном статусе
	ErrCannotReschedule = errors.New("reschedule_reservation: reservation cannot be rescheduled")

	// ErrInvalidDate возвращается при попытке переноса на прошедшую дату
	ErrInvalidDate = errors.New("reschedule_reservation: invalid reservation date")

	// ErrDateTooFarInFuture возвращается, когда новая дата выходит за горизонт бронирования
	ErrDateTooFarInFuture = errors.New("reschedule_reservation: date is beyond booking horizon")

	// ErrTooLateToBook возвращается при нарушении минимального времени предупреждения
	ErrTooLateToBook = errors.New("reschedule_reservation: too late to move to this slot")

	// ErrDateBlackedOut возвращается, когда новая дата закрыта блэкаутом
	ErrDateBlackedOut = errors.New("reschedule_reservation: date is blacked out")

	// ErrOutsideWorkingHours возвращается, когда новый интервал не помещается в рабочие блоки
	ErrOutsideWorkingHours = errors.New("reschedule_reservation: slot is outside working hours")

	// ErrRescheduleConflict возвращается, когда новый интервал пересекается с
	// другим бронированием (исходное бронирование из проверки исключено)
	ErrRescheduleConflict = errors.New("reschedule_reservation: slot conflicts with an existing reservation")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_reservation: internal error")
)
