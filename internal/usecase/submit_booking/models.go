package submit_booking

import (
	"encoding/json"
	"time"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/pricing"
	"github.com/m04kA/SMC-TireService/pkg/types"
)

// Request модель запроса на запись
type Request struct {
	ServiceIDs []int64                              // выбранные услуги
	Vehicle    domain.Vehicle                       // автомобиль
	Customer   domain.Customer                      // контакты клиента
	Date       time.Time                            // дата записи (без времени)
	StartTime  types.TimeString                     // время начала, "09:00"
	Notes      *string                              // комментарий (опционально)
	Answers    map[int64]map[string]json.RawMessage // serviceID -> key требования -> значение
}

// Response модель ответа с созданной записью
type Response struct {
	Appointment *domain.Appointment // запись с услугами и ответами
	Pricing     pricing.Result      // расчёт на момент записи
}
