package userserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	usermemory "github.com/clearsolutions/user-api/internal/domains/users/adapters/memory"
	userapp "github.com/clearsolutions/user-api/internal/domains/users/application"
)

var testToday = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	service := userapp.NewService(
		usermemory.NewRepository(),
		18,
		userapp.WithClock(func() time.Time { return testToday }),
	)
	router := gin.New()
	router.Use(gin.Recovery())
	return NewRouterWithGinEngine(router, ApiHandleFunctions{UserAPI: NewUserAPI(service)})
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createPayload(email, phone string) map[string]any {
	payload := map[string]any{
		"email":     email,
		"firstName": "Anna",
		"lastName":  "Kovalenko",
		"birthDate": "1990-01-01",
	}
	if phone != "" {
		payload["phone"] = phone
	}
	return payload
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCreateUser_ReturnsAssignedID(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/users", createPayload("a@x.com", "+380123456789"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp CreateUserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Id)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/users", createPayload("a@x.com", "+380123456789"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/users", createPayload("a@x.com", "+380987654321"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "BAD_REQUEST", body.Error)
	assert.Contains(t, body.Message, "email is already taken")
	assert.Equal(t, "/api/v1/users", body.Path)
}

func TestCreateUser_MissingBirthDate(t *testing.T) {
	router := newTestRouter(t)

	payload := createPayload("a@x.com", "")
	delete(payload, "birthDate")
	rec := doJSON(t, router, http.MethodPost, "/api/v1/users", payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "birth date")
}

func TestCreateUser_InvalidPhonePattern(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/users", createPayload("a@x.com", "12345"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "+380")
}

func TestCreateUser_Underage(t *testing.T) {
	router := newTestRouter(t)

	payload := createPayload("kid@x.com", "")
	payload["birthDate"] = "2010-06-15"
	rec := doJSON(t, router, http.MethodPost, "/api/v1/users", payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "18 years old")
}

func TestCreateUser_MalformedJSON(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "BAD_REQUEST", decodeError(t, rec).Error)
}

func TestUpdateUser_SelfEmailWithNullPhone(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/users", createPayload("a@x.com", "+380123456789"))
	require.Equal(t, http.StatusOK, rec.Code)

	patch := createPayload("a@x.com", "")
	patch["id"] = 1
	rec = doJSON(t, router, http.MethodPut, "/api/v1/users", patch)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Empty(t, rec.Body.String())
}

func TestUpdateUser_MissingID(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPut, "/api/v1/users", createPayload("a@x.com", ""))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "id is required")
}

func TestUpdateUser_UnknownID(t *testing.T) {
	router := newTestRouter(t)

	patch := createPayload("a@x.com", "")
	patch["id"] = 42
	rec := doJSON(t, router, http.MethodPut, "/api/v1/users", patch)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, rec).Error)
}

func TestDeleteUser_Flow(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/users", createPayload("a@x.com", ""))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/users/abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "invalid id format")

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/users/999", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "/api/v1/users/999", decodeError(t, rec).Path)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/users/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/users/1", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchByBirthDateRange_E2E(t *testing.T) {
	router := newTestRouter(t)

	seed := func(email, birthDate string) {
		payload := createPayload(email, "")
		payload["birthDate"] = birthDate
		rec := doJSON(t, router, http.MethodPost, "/api/v1/users", payload)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	seed("a@x.com", "1990-01-01")
	seed("b@x.com", "1995-06-15")
	seed("c@x.com", "2000-01-01")

	rec := doJSON(t, router, http.MethodGet, "/api/v1/users?from=1990-01-01&to=1999-12-31", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var found []User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &found))
	require.Len(t, found, 2)
	emails := []string{found[0].Email, found[1].Email}
	assert.ElementsMatch(t, []string{"a@x.com", "b@x.com"}, emails)
}

func TestSearchByBirthDateRange_BoundaryDatesIncluded(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/users", createPayload("a@x.com", ""))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/users?from=1990-01-01&to=1990-01-01", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var found []User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &found))
	require.Len(t, found, 1)
	require.NotNil(t, found[0].BirthDate)
	assert.Equal(t, "1990-01-01", found[0].BirthDate.Format(time.DateOnly))
}

func TestSearchByBirthDateRange_BadRequests(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/users?to=2000-01-01", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "required parameter is missing: from")

	rec = doJSON(t, router, http.MethodGet, "/api/v1/users?from=1990-01-01", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "required parameter is missing: to")

	rec = doJSON(t, router, http.MethodGet, "/api/v1/users?from=01.01.1990&to=2000-01-01", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/users?from=2000-01-02&to=2000-01-01", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "invalid birth date range")
}
