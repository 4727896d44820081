package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/MKhiriev/obesitrack/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodeOrFail decodes a JSON object and reports the outcome like a handler.
var decodeOrFail = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	var v map[string]any
	if err := decodeJSON(r, &v); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
})

func TestWithBodyLimit(t *testing.T) {
	const limit = 64
	small := `{"email":"sara@example.com"}`
	large := `{"email":"` + strings.Repeat("a", 4*limit) + `"}`

	tests := []struct {
		name       string
		body       []byte
		encoding   string
		wantStatus int
	}{
		{name: "small plain body", body: []byte(small), wantStatus: http.StatusNoContent},
		{name: "small gzip body", body: gzipBytes(t, small), encoding: "gzip", wantStatus: http.StatusNoContent},
		{name: "large plain body", body: []byte(large), wantStatus: http.StatusRequestEntityTooLarge},
		{name: "large once inflated", body: gzipBytes(t, large), encoding: "gzip", wantStatus: http.StatusRequestEntityTooLarge},
		{name: "truncated json is still malformed", body: []byte(`{"email":`), wantStatus: http.StatusBadRequest},
	}

	handler := withGzipRequest(withBodyLimit(limit)(decodeOrFail))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(tt.body))
			if tt.encoding != "" {
				req.Header.Set("Content-Encoding", tt.encoding)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			switch tt.wantStatus {
			case http.StatusRequestEntityTooLarge:
				assert.Equal(t, ErrBodyTooLarge.Error(), decodeBody[models.ErrorResponse](t, rec).Detail)
			case http.StatusBadRequest:
				assert.Equal(t, ErrMalformedBody.Error(), decodeBody[models.ErrorResponse](t, rec).Detail)
			}
		})
	}
}

func TestWithBodyLimit_NoBody(t *testing.T) {
	called := false
	handler := withBodyLimit(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.NoBody, r.Body)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWithBodyLimit_LoginForm(t *testing.T) {
	h := &Handler{}
	form := url.Values{"username": {"sara@example.com"}, "password": {strings.Repeat("p", 256)}}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	withBodyLimit(64)(http.HandlerFunc(h.login)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
