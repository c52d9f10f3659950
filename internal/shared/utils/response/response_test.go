package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondJSONEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	RespondJSON(c, "success", http.StatusOK, "done", map[string]int{"count": 3}, nil)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, float64(http.StatusOK), body["status_code"])
	assert.Equal(t, "done", body["message"])
	assert.Contains(t, body, "data")
	assert.NotContains(t, body, "errors") // omitted when nil
}

func TestRespondJSONErrorOmitsData(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	RespondJSON(c, "error", http.StatusBadRequest, "bad input", nil, "weeks must be positive")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "error", body["status"])
	assert.NotContains(t, body, "data")
	assert.Equal(t, "weeks must be positive", body["errors"])
}
