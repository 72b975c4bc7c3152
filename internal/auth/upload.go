package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// UploadTokenMiddleware optionally guards the upload path with a shared
// token. The mobile app cannot sign requests, but it can carry a fixed token
// either as a bearer header or a 'token' field in the upload URL it was
// configured with. An empty configured token disables the check.
type UploadTokenMiddleware struct {
	Token string
}

// NewUploadTokenMiddleware constructs the upload guard.
func NewUploadTokenMiddleware(token string) *UploadTokenMiddleware {
	return &UploadTokenMiddleware{Token: strings.TrimSpace(token)}
}

// Wrap enforces the shared upload token when one is configured.
func (m *UploadTokenMiddleware) Wrap(next http.Handler) http.Handler {
	if m == nil || m.Token == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		presented := extractBearer(r)
		if presented == "" {
			presented = r.URL.Query().Get("token")
		}
		if subtle.ConstantTimeCompare([]byte(presented), []byte(m.Token)) != 1 {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
