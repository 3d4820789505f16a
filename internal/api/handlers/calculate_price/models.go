package calculate_price

import (
	"encoding/json"

	"github.com/m04kA/SMC-TireService/internal/api/handlers"
	"github.com/m04kA/SMC-TireService/internal/form"
	calculatePrice "github.com/m04kA/SMC-TireService/internal/usecase/calculate_price"
)

// CalculatePriceRequest HTTP request model
type CalculatePriceRequest struct {
	ServiceIDs []int64                               `json:"serviceIds"`
	Answers    map[string]map[string]json.RawMessage `json:"answers,omitempty"` // "serviceId" -> key -> value
}

// CalculatePriceResponse HTTP response model
type CalculatePriceResponse struct {
	handlers.PricingResponse
	Fields []form.FieldError `json:"fields,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CalculatePriceRequest) ToUseCaseRequest() (*calculatePrice.Request, error) {
	answers, err := handlers.ParseAnswers(r.Answers)
	if err != nil {
		return nil, err
	}

	return &calculatePrice.Request{
		ServiceIDs: r.ServiceIDs,
		Answers:    answers,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *calculatePrice.Response) *CalculatePriceResponse {
	return &CalculatePriceResponse{
		PricingResponse: handlers.FromPricing(resp.Pricing),
		Fields:          resp.Fields,
	}
}
