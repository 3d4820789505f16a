package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-TireService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date       time.Time // Дата (без времени)
	ServiceIDs []int64   // Выбранные услуги, определяют длительность записи (может быть пустым)
}

// Response модель ответа со списком слотов
type Response struct {
	Date            time.Time          // Дата, на которую запрашивались слоты
	IsOpen          bool               // Магазин работает в этот день
	DurationMinutes int                // Длительность записи для выбранных услуг
	Slots           []Slot             // Слоты дня
	BookedTimes     []types.TimeString // Время начала существующих записей
}

// Slot модель временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность записи в минутах
	AvailableSpots  int              // Количество свободных боксов
	TotalSpots      int              // Общее количество боксов
}

// Available возвращает true, если в слоте есть свободный бокс
func (s Slot) Available() bool {
	return s.AvailableSpots > 0
}
