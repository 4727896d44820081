package http

import "net/http"

// maxBodyBytes caps every request body after any gzip inflation.
const maxBodyBytes = 1 << 20

// withBodyLimit stops reads past limit bytes. Mounted after withGzipRequest
// it bounds the inflated body, not the compressed one.
func withBodyLimit(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
