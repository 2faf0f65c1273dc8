package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github/seimcp/go-wallet/internal/api"
)

// GenericPayload is an arbitrary JSON request body.
type GenericPayload map[string]any

// PerformRequest serves a single request against the server's echo instance
// and returns the recorded response.
func PerformRequest(t *testing.T, s *api.Server, method, path string, body any, headers http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for key, vals := range headers {
		for _, val := range vals {
			req.Header.Add(key, val)
		}
	}

	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)

	return rec
}

// ParseResponseBody decodes the recorded JSON response into out.
func ParseResponseBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}
