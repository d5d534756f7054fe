package domain

// Conflicts reports whether the candidate interval [startMin, endMin), given
// in minutes from midnight, collides with any blocking reservation of the
// same calendar day under the buffer policy.
//
// Каждое pending/confirmed бронирование расширяется буфером до
// [resStart - minutesBefore, resEnd + minutesAfter), после чего применяется
// полуоткрытая проверка пересечения: соседние интервалы, граничащие точно
// по краю, конфликтом не считаются.
//
// Бронирования с некорректным временем пропускаются - их исключает из
// генерации слотов валидация на границе хранилища.
func Conflicts(startMin, endMin int, reservations []*Reservation, buffer BufferPolicy) bool {
	before, after := buffer.Padding()

	for _, res := range reservations {
		if !res.IsBlocking() {
			continue
		}

		resStart, err := res.StartTime.Minutes()
		if err != nil {
			continue
		}
		resEnd, err := res.EndTime.Minutes()
		if err != nil || resEnd <= resStart {
			continue
		}

		paddedStart := resStart - before
		paddedEnd := resEnd + after

		// Полуоткрытые интервалы: пересечение есть iff start < paddedEnd && paddedStart < end
		if startMin < paddedEnd && paddedStart < endMin {
			return true
		}
	}
	return false
}
