package get_availability

import (
	"time"

	"github.com/fitcrm/FC-ReservationService/pkg/types"
)

// Request модель запроса доступности тренера на дату
type Request struct {
	TrainerID  int64     // ID тренера
	LocationID *int64    // ID локации (для учета блэкаутов локации, опционально)
	Date       time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	TrainerID int64     // ID тренера
	Date      time.Time // Дата, на которую запрашивались слоты
	Slots     []Slot    // Список доступных слотов в порядке возрастания времени начала
}

// Slot модель доступного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	EndTime         types.TimeString // Время конца слота
	DurationMinutes int              // Длительность в минутах
	SessionTypeID   *int64           // ID длительности из каталога (nil для неявной 60-минутной)
	SessionName     string           // Название из каталога
	Price           float64          // Цена из каталога
}
