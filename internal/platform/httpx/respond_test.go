package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProblemMediaType(t *testing.T) {
	rr := httptest.NewRecorder()
	Problem(rr, http.StatusNotFound, "Not Found", "product not found")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), `"product not found"`)
}

func TestDecodeJSONCapsBody(t *testing.T) {
	oversized := `{"message":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(oversized))

	var target struct {
		Message string `json:"message"`
	}
	require.Error(t, DecodeJSON(req, &target))
}

func TestRespondErrorMapsSentinels(t *testing.T) {
	rr := httptest.NewRecorder()
	RespondError(rr, ErrUnavailable)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	rr = httptest.NewRecorder()
	RespondError(rr, ErrValidation)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
