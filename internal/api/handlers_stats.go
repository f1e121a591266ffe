package api

import (
	"net/http"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"latency":     s.orchestrator.Latency().Snapshot(),
		"outcomes":    s.orchestrator.Outcomes().Snapshot(),
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}
