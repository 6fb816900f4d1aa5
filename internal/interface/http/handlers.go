package http

import (
	"errors"
	"net/http"

	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/application/query"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/ranking"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH & STATUS HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleRoot serves the root endpoint with basic API information.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	info := map[string]interface{}{
		"name":        "Student Performance Rankings API",
		"version":     "v1",
		"description": "Aggregated academic performance rankings from SMS platform data",
		"endpoints": map[string]string{
			"health":     "/health",
			"rankings":   "/api/v1/rankings",
			"dimensions": "/api/v1/dimensions",
		},
	}

	writeJSON(w, http.StatusOK, info)
}

// handleHealth handles the health check endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.deps.HealthChecker != nil {
		status := s.deps.HealthChecker.Check(r.Context())
		if !status.Healthy {
			writeJSON(w, http.StatusServiceUnavailable, status)
			return
		}
		writeJSON(w, http.StatusOK, status)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"uptime":  s.Uptime().String(),
		"version": "v1",
	})
}

// handleReady handles the readiness probe endpoint (for Kubernetes).
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.deps.HealthChecker != nil {
		status := s.deps.HealthChecker.Check(r.Context())
		if !status.Ready {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not_ready",
				"reason": status.Message,
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleLive handles the liveness probe endpoint (for Kubernetes).
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// ══════════════════════════════════════════════════════════════════════════════
// RANKINGS HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleGetRankings handles GET /api/v1/rankings?dimension=
func (s *Server) handleGetRankings(w http.ResponseWriter, r *http.Request) {
	s.handleRankingsInternal(w, r, getQueryParam(r, "dimension", ""))
}

// handleGetRankingsByDimension handles GET /api/v1/rankings/{dimension}
func (s *Server) handleGetRankingsByDimension(w http.ResponseWriter, r *http.Request) {
	s.handleRankingsInternal(w, r, r.PathValue("dimension"))
}

// handleRankingsInternal is the shared implementation for ranking reads.
func (s *Server) handleRankingsInternal(w http.ResponseWriter, r *http.Request, dimension string) {
	if s.deps.GetRankingsHandler == nil {
		writeJSONError(w, http.StatusNotImplemented, "not_implemented", "Rankings handler not configured")
		return
	}

	q := query.GetRankingsQuery{
		Dimension: dimension,
		Limit:     getQueryParamInt(r, "limit", 0),
		SkipCache: getQueryParamBool(r, "fresh"),
	}

	result, err := s.deps.GetRankingsHandler.Handle(r.Context(), q)
	if err != nil {
		if errors.Is(err, shared.ErrValidation) {
			writeJSONError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		s.logger.Error("failed to get rankings",
			"error", err,
			"dimension", dimension,
			"request_id", getRequestID(r.Context()),
		)
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to compute rankings")
		return
	}

	meta := &ResponseMeta{
		TotalCount: result.TotalConsidered,
		FromCache:  result.FromCache,
	}

	writeJSONWithMeta(w, r, http.StatusOK, result, meta)
}

// handleGetStudentRank handles GET /api/v1/rankings/{dimension}/students/{id}
func (s *Server) handleGetStudentRank(w http.ResponseWriter, r *http.Request) {
	if s.deps.GetStudentRankHandler == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "cache_unavailable", "Rank lookups require a ranking cache")
		return
	}

	q := query.GetStudentRankQuery{
		StudentID: r.PathValue("id"),
		Dimension: r.PathValue("dimension"),
	}

	result, err := s.deps.GetStudentRankHandler.Handle(r.Context(), q)
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrValidation):
			writeJSONError(w, http.StatusBadRequest, "invalid_request", err.Error())
		case errors.Is(err, shared.ErrNotFound):
			writeJSONError(w, http.StatusNotFound, "not_ranked", "Student is not in this ranking")
		case errors.Is(err, shared.ErrServiceUnavailable):
			writeJSONError(w, http.StatusServiceUnavailable, "cache_unavailable", "Ranking is not available yet")
		default:
			s.logger.Error("failed to get student rank",
				"error", err,
				"student_id", q.StudentID,
				"dimension", q.Dimension,
				"request_id", getRequestID(r.Context()),
			)
			writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to look up rank")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleGetDimensions handles GET /api/v1/dimensions
func (s *Server) handleGetDimensions(w http.ResponseWriter, r *http.Request) {
	dims := ranking.Dimensions()
	names := make([]string, len(dims))
	for i, d := range dims {
		names[i] = string(d)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"dimensions": names,
		"default":    string(ranking.DimensionOverall),
	})
}
