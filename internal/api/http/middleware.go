package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"campus-transport-backend/internal/domain"
	"campus-transport-backend/internal/logger"
	"campus-transport-backend/internal/security"
)

type contextKey string

const (
	contextKeyUserID    contextKey = "user_id"
	contextKeyRequestID contextKey = "request_id"
)

// RequestLogger assigns a request id and logs one line per request.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		ctx := context.WithValue(r.Context(), contextKeyRequestID, requestID)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))
		logger.WithRequest(requestID).Info("Handled request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// Authenticate verifies the Bearer token and stores the caller's uid in
// the request context. The legacy API trusted the path userId outright;
// every per-user route now requires a verified token.
func Authenticate(verifier security.Verifier) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeError(w, domain.ErrUnauthenticated)
				return
			}

			uid, err := verifier.Verify(r.Context(), token)
			if err != nil {
				writeError(w, domain.ErrUnauthenticated)
				return
			}

			ctx := context.WithValue(r.Context(), contextKeyUserID, uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// callerID returns the authenticated uid set by Authenticate.
func callerID(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(contextKeyUserID).(string)
	return uid, ok
}

// authorizedUserID resolves the {userId} path variable against the
// authenticated caller. A mismatch is rejected: a caller may only act on
// their own account.
func authorizedUserID(r *http.Request) (string, error) {
	caller, ok := callerID(r.Context())
	if !ok {
		return "", domain.ErrUnauthenticated
	}
	pathUser := mux.Vars(r)["userId"]
	if pathUser != "" && pathUser != caller {
		return "", domain.ErrForbidden
	}
	return caller, nil
}
