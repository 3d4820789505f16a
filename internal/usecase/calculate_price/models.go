package calculate_price

import (
	"encoding/json"

	"github.com/m04kA/SMC-TireService/internal/form"
	"github.com/m04kA/SMC-TireService/internal/pricing"
)

// Request модель запроса на расчёт стоимости
type Request struct {
	ServiceIDs []int64                              // выбранные услуги
	Answers    map[int64]map[string]json.RawMessage // serviceID -> key требования -> значение
}

// Response модель ответа с расчётом
type Response struct {
	Pricing pricing.Result    // расчёт по корректным значениям
	Fields  []form.FieldError // некорректные значения, в расчёт не вошли
}
