//go:build unit || e2e

package httptest

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for k, v := range expected {
		assert.Equal(t, v, w.Header().Get(k), "header %s mismatch", k)
	}
}

// AssertRateLimited checks a 429 with a positive Retry-After in seconds.
func AssertRateLimited(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()

	AssertErrorResponse(t, w, http.StatusTooManyRequests, "Too many requests")
	retry, err := strconv.Atoi(w.Header().Get("Retry-After"))
	if assert.NoError(t, err, "Retry-After must be seconds") {
		assert.Positive(t, retry)
	}
}
