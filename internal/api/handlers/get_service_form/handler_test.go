package get_service_form

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-TireService/internal/service/catalog"
	"github.com/m04kA/SMC-TireService/internal/service/catalog/models"
	"github.com/m04kA/SMC-TireService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) RenderForm(ctx context.Context, serviceID int64, values map[string]json.RawMessage) (*models.FormResponse, error) {
	args := m.Called(ctx, serviceID, values)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.FormResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestHandle_EmptyForm(t *testing.T) {
	svc := &mockService{}
	svc.On("RenderForm", mock.Anything, int64(5), map[string]json.RawMessage(nil)).
		Return(&models.FormResponse{ServiceID: 5, Name: "Tire Mounting", Valid: true}, nil)

	h := NewHandler(svc, logger.NewNop())
	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/v1/services/5/form", nil), map[string]string{"serviceId": "5"})
	w := httptest.NewRecorder()
	h.Handle(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestHandleValues_PassesValues(t *testing.T) {
	svc := &mockService{}
	svc.On("RenderForm", mock.Anything, int64(5), mock.MatchedBy(func(values map[string]json.RawMessage) bool {
		return string(values["rim_size"]) == `"17"`
	})).Return(&models.FormResponse{ServiceID: 5}, nil)

	h := NewHandler(svc, logger.NewNop())
	r := httptest.NewRequest(http.MethodPost, "/api/v1/services/5/form", strings.NewReader(`{"values":{"rim_size":"17"}}`))
	r = mux.SetURLVars(r, map[string]string{"serviceId": "5"})
	w := httptest.NewRecorder()
	h.HandleValues(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestHandle_InactiveServiceIsNotFound(t *testing.T) {
	svc := &mockService{}
	svc.On("RenderForm", mock.Anything, int64(5), mock.Anything).Return(nil, catalog.ErrServiceInactive)

	h := NewHandler(svc, logger.NewNop())
	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/v1/services/5/form", nil), map[string]string{"serviceId": "5"})
	w := httptest.NewRecorder()
	h.Handle(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
