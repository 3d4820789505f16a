package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TireService/internal/form"
)

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Jane"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "Jane", dst.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Jane","extra":1}`))
	assert.Error(t, DecodeJSON(r, &dst))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Jane"} {}`))
	assert.Error(t, DecodeJSON(r, &dst))
}

func TestRespondValidationError(t *testing.T) {
	w := httptest.NewRecorder()
	RespondValidationError(w, "invalid", []form.FieldError{
		form.NewFieldError("customer.phone", form.CodeRequired, "Phone is required"),
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "invalid", body["error"])
	fields := body["fields"].([]interface{})
	require.Len(t, fields, 1)
	assert.Equal(t, "customer.phone", fields[0].(map[string]interface{})["field"])
	assert.Equal(t, "required", fields[0].(map[string]interface{})["code"])
}

func TestParseIDList(t *testing.T) {
	ids, err := ParseIDList("1, 2,3")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids)

	ids, err = ParseIDList("")
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = ParseIDList("1,x")
	assert.Error(t, err)

	_, err = ParseIDList("0")
	assert.Error(t, err)
}

func TestPathInt64(t *testing.T) {
	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "42"})
	id, err := PathInt64(r, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	r = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "-1"})
	_, err = PathInt64(r, "id")
	assert.Error(t, err)
}

func TestParseAnswers(t *testing.T) {
	out, err := ParseAnswers(map[string]int{"1": 10, "2": 20})
	require.NoError(t, err)
	assert.Equal(t, map[int64]int{1: 10, 2: 20}, out)

	_, err = ParseAnswers(map[string]int{"oil": 1})
	assert.Error(t, err)
}
