// internal/server/middleware.go
package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"review-engine/internal/auth"
	commonerrors "review-engine/internal/common/errors"
	"review-engine/internal/common/metrics"
)

// authenticate validates the bearer token and resolves the caller's role from
// the user directory on every request. Roles are never read from the token
// itself, so a promotion or demotion takes effect on the next call.
func (s *Server) authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			s.writeError(w, "authenticate", commonerrors.NewUnauthenticatedError("missing bearer token"))
			return
		}

		claims, err := s.tokens.ValidateToken(token)
		if err != nil {
			s.writeError(w, "authenticate", commonerrors.NewUnauthenticatedError("invalid token"))
			return
		}

		role, err := s.users.GetRole(r.Context(), claims.UserID)
		if err != nil {
			s.writeError(w, "authenticate", commonerrors.NewInternalError("resolving role", err))
			return
		}

		identity := auth.Identity{UID: claims.UserID, Role: auth.ParseRole(role)}
		next(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
	}
}

// requireRole gates a handler on a minimum role. Admin satisfies every gate.
func (s *Server) requireRole(required auth.Role, next http.HandlerFunc) http.HandlerFunc {
	return s.authenticate(func(w http.ResponseWriter, r *http.Request) {
		identity, _ := auth.IdentityFrom(r.Context())
		if !identity.Role.Meets(required) {
			s.writeError(w, "authorize", commonerrors.NewPermissionDeniedError(
				"caller does not hold the required role"))
			return
		}
		next(w, r)
	})
}

// statusRecorder captures the response code for instrumentation.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument records request duration and outcome per logical operation.
func (s *Server) instrument(operation string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(recorder, r)

		elapsed := time.Since(start)
		metrics.RequestDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
		if s.obs != nil {
			s.obs.RecordRequest(r.Context(), operation, strconv.Itoa(recorder.status))
			s.obs.RecordRequestDuration(r.Context(), operation, elapsed)
		}
	}
}
