package handlers

import (
	"github.com/m04kA/SMC-TireService/internal/pricing"
)

// AddonResponse доплата за выбранную опцию
type AddonResponse struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

// PricingLineResponse расчёт по одной услуге
type PricingLineResponse struct {
	ServiceID   int64           `json:"serviceId"`
	Name        string          `json:"name"`
	BasePrice   *string         `json:"basePrice"`
	PriceVaries bool            `json:"priceVaries"`
	Addons      []AddonResponse `json:"addons"`
	Total       string          `json:"total"`
}

// PricingResponse расчёт стоимости, суммы строками с двумя знаками
type PricingResponse struct {
	Services      []PricingLineResponse `json:"services"`
	Total         string                `json:"total"`
	QuoteRequired bool                  `json:"quoteRequired"`
}

// FromPricing конвертирует результат калькулятора в DTO
func FromPricing(result pricing.Result) PricingResponse {
	resp := PricingResponse{
		Services:      make([]PricingLineResponse, len(result.Services)),
		Total:         pricing.Format(result.Total),
		QuoteRequired: result.QuoteRequired,
	}

	for i, line := range result.Services {
		addons := make([]AddonResponse, len(line.Addons))
		for j, addon := range line.Addons {
			addons[j] = AddonResponse{
				Key:    addon.RequirementKey,
				Label:  addon.Label,
				Amount: pricing.Format(addon.Amount),
			}
		}

		var basePrice *string
		if line.BasePrice != nil {
			s := pricing.Format(*line.BasePrice)
			basePrice = &s
		}

		resp.Services[i] = PricingLineResponse{
			ServiceID:   line.ServiceID,
			Name:        line.Name,
			BasePrice:   basePrice,
			PriceVaries: line.PriceVaries,
			Addons:      addons,
			Total:       pricing.Format(line.Total),
		}
	}

	return resp
}
