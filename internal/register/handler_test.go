package register

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()

	router := mux.NewRouter()
	NewHandler().SetupRoutes(router)
	return router
}

func TestHandler_page(t *testing.T) {
	router := newTestRouter(t)

	req, err := http.NewRequest("GET", "/register", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"loginUrl":"/"`)
}

func TestHandler_register_json(t *testing.T) {
	router := newTestRouter(t)
	faker := gofakeit.New(0)

	form := Form{
		FirstName: faker.FirstName(),
		LastName:  faker.LastName(),
		Email:     faker.Email(),
		Phone:     "0201234567",
		Address:   faker.Street(),
	}
	body, err := json.Marshal(form)
	require.NoError(t, err)

	req, err := http.NewRequest("POST", "/register", strings.NewReader(string(body)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp registerResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Registration successful!", resp.Message)
	assert.Empty(t, resp.Errors)
}

func TestHandler_register_form(t *testing.T) {
	router := newTestRouter(t)

	formValues := url.Values{}
	formValues.Set("firstName", "Kurtis")
	formValues.Set("lastName", "Weissnat")
	formValues.Set("email", "Telly.Hoeger@billy.biz")
	formValues.Set("phone", "2106761271")
	formValues.Set("address", "Rex Trail 283")

	req, err := http.NewRequest("POST", "/register", strings.NewReader(formValues.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp registerResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestHandler_register_invalid(t *testing.T) {
	router := newTestRouter(t)

	body := `{"firstName":"K","lastName":"Weissnat","email":"nope","phone":"123","address":"ab"}`
	req, err := http.NewRequest("POST", "/register", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp registerResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Len(t, resp.Errors, 4)
	assert.Contains(t, resp.Errors, "firstName")
	assert.Contains(t, resp.Errors, "email")
	assert.Contains(t, resp.Errors, "phone")
	assert.Contains(t, resp.Errors, "address")
	assert.NotContains(t, resp.Errors, "lastName")
}

func TestHandler_register_badJson(t *testing.T) {
	router := newTestRouter(t)

	req, err := http.NewRequest("POST", "/register", strings.NewReader("{nope"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
