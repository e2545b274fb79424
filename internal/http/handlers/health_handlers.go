package handlers

import (
	"context"
	"net/http"
	"time"
)

// HealthHandler godoc
// @Summary Liveness and database reachability
// @Tags health
// @Produce json
// @Success 200 {object} HealthResult
// @Failure 503 {object} ErrorResponse "Database unreachable"
// @Router /api/health [get]
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if s.Store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := s.Store.Ping(ctx); err != nil {
			s.Logger.Warn(r.Context(), "health check failed", "err", err)
			WriteError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	s.respond(w, r, http.StatusOK, HealthResult{Status: "ok"})
}
