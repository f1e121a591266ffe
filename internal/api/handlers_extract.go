package api

import (
	"encoding/json"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/dgallion1/mdagest/internal/mda"
)

type extractRequest struct {
	Text     string `json:"text"`
	Keywords string `json:"keywords"`
}

type extractResponse struct {
	Strategy string `json:"strategy"`
	MDA      string `json:"mda"`
	Length   int    `json:"length"`
	Reason   string `json:"reason,omitempty"`
}

// handleExtract runs extraction synchronously on report text. A report with
// no MD&A is still a 200 with an empty mda.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid json body: "+err.Error(), http.StatusBadRequest)
		return
	}

	keywords := req.Keywords
	if keywords != "" {
		if err := mda.ValidateKeywords(keywords); err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		keywords = s.orchestrator.Keywords()
	}

	start := time.Now()
	res := mda.ExtractDetailed(req.Text, keywords)
	s.orchestrator.Latency().Since(start)

	length := utf8.RuneCountInString(res.Text)
	s.orchestrator.Outcomes().Record(string(res.Strategy), length)

	resp := extractResponse{Strategy: string(res.Strategy), MDA: res.Text, Length: length}
	if !res.Found() && res.Err != nil {
		resp.Reason = res.Err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}
