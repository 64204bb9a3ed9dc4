package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestGinContext создает *gin.Context для тестов с JSON body
func newTestGinContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()

	var req *http.Request
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, path, bytes.NewReader(bodyBytes))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

// parseJSONResponse парсит JSON ответ из *httptest.ResponseRecorder
func parseJSONResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err, "Response body should be valid JSON: %s", w.Body.String())
	return resp
}

// ============================================================================
// Request validation tests — не требуют реального AttemptService.
// Handler возвращает 400 до вызова сервиса
// ============================================================================

func TestJoin_ValidationErrors(t *testing.T) {
	handler := &AttemptHandler{} // nil service — OK для validation tests

	tests := []struct {
		name string
		body interface{}
	}{
		{
			name: "empty body",
			body: nil,
		},
		{
			name: "missing access_code",
			body: map[string]string{},
		},
		{
			name: "access code too short",
			body: map[string]string{"access_code": "123"},
		},
		{
			name: "access code too long",
			body: map[string]string{"access_code": "1234567"},
		},
		{
			name: "non-numeric access code",
			body: map[string]string{"access_code": "abc123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext(http.MethodPost, "/api/quizzes/join", tt.body)
			c.Set("user_id", uint(5))

			handler.Join(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := parseJSONResponse(t, w)
			assert.Contains(t, resp, "error")
		})
	}
}

func TestJoin_MissingUserIsUnauthorized(t *testing.T) {
	handler := &AttemptHandler{}

	c, w := newTestGinContext(http.MethodPost, "/api/quizzes/join", map[string]string{"access_code": "123456"})
	// user_id не установлен — middleware не пройден

	handler.Join(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubmit_ValidationErrors(t *testing.T) {
	handler := &AttemptHandler{}

	tests := []struct {
		name string
		body interface{}
	}{
		{
			name: "empty body",
			body: nil,
		},
		{
			name: "missing join_id",
			body: map[string]interface{}{
				"answers": []map[string]uint{{"question_id": 1, "option_id": 2}},
			},
		},
		{
			name: "missing answers",
			body: map[string]interface{}{"join_id": 42},
		},
		{
			name: "answer without option_id",
			body: map[string]interface{}{
				"join_id": 42,
				"answers": []map[string]uint{{"question_id": 1}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext(http.MethodPost, "/api/quizzes/submit", tt.body)
			c.Set("user_id", uint(5))

			handler.Submit(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := parseJSONResponse(t, w)
			assert.Contains(t, resp, "error")
		})
	}
}
