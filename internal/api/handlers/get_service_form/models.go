package get_service_form

import "encoding/json"

// RenderFormRequest значения полей для повторной отрисовки формы
type RenderFormRequest struct {
	Values map[string]json.RawMessage `json:"values"`
}
