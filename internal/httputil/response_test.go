package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondProblem(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondProblem(rec, NewProblem(http.StatusBadRequest, "slug taken").With("resource_type", "article"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Bad Request", body["title"])
	assert.Equal(t, "slug taken", body["detail"])
	assert.Equal(t, "article", body["resource_type"])
	assert.EqualValues(t, 400, body["status"])
}

func TestRespondError_UnknownStatusType(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, http.StatusTeapot, "")

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "about:blank", body["type"])
	assert.NotContains(t, body, "detail")
}

func TestRespondJSON_EncodingFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusOK, map[string]interface{}{"bad": make(chan int)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestParseJSON(t *testing.T) {
	type body struct {
		Title string `json:"title"`
	}

	t.Run("single value", func(t *testing.T) {
		var dest body
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"x","extra":1}`))
		require.NoError(t, ParseJSON(httptest.NewRecorder(), req, &dest))
		assert.Equal(t, "x", dest.Title)
	})

	t.Run("trailing data", func(t *testing.T) {
		var dest body
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"x"}{"title":"y"}`))
		assert.Error(t, ParseJSON(httptest.NewRecorder(), req, &dest))
	})

	t.Run("too large", func(t *testing.T) {
		var dest body
		big := `{"title":"` + strings.Repeat("a", MaxBodyBytes) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big))
		assert.ErrorIs(t, ParseJSON(httptest.NewRecorder(), req, &dest), ErrBodyTooLarge)
	})
}
