// internal/server/respond.go
package server

import (
	"encoding/json"
	"net/http"

	commonerrors "review-engine/internal/common/errors"
	"review-engine/internal/common/metrics"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Server) writeError(w http.ResponseWriter, operation string, err error) {
	code := commonerrors.CodeOf(err)
	metrics.RequestsFailed.WithLabelValues(operation, string(code)).Inc()

	if code == commonerrors.ErrCodeInternal {
		s.logger.WithError(err).Error("request failed", map[string]interface{}{"operation": operation})
	} else {
		s.logger.Warn("request rejected", map[string]interface{}{
			"operation": operation,
			"code":      string(code),
		})
	}

	s.writeJSON(w, commonerrors.HTTPStatus(err), commonerrors.ToHTTPBody(err))
}
