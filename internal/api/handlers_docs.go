package api

import (
	"net/http"
	"strconv"

	"github.com/dgallion1/mdagest/internal/store"
	"github.com/go-chi/chi/v5"
)

// handleListDocuments lists stored extraction results, without MD&A text.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 1000 {
			jsonError(w, "limit must be between 1 and 1000", http.StatusBadRequest)
			return
		}
		limit = n
	}

	recs, err := s.orchestrator.Sink().List(r.Context(), limit)
	if err != nil {
		jsonError(w, "failed to list documents: "+err.Error(), http.StatusInternalServerError)
		return
	}

	docs := make([]map[string]any, 0, len(recs))
	for _, rec := range recs {
		docs = append(docs, map[string]any{
			"doc_id":       rec.DocID,
			"filename":     rec.Filename,
			"content_hash": rec.ContentHash,
			"strategy":     rec.Strategy,
			"length":       rec.Length,
			"created_at":   rec.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if !store.ValidDocID(docID) {
		jsonError(w, "invalid doc_id", http.StatusBadRequest)
		return
	}
	rec, err := s.orchestrator.Sink().Get(r.Context(), docID)
	if err != nil {
		jsonError(w, "failed to get document: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if rec == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if !store.ValidDocID(docID) {
		jsonError(w, "invalid doc_id", http.StatusBadRequest)
		return
	}
	if err := s.orchestrator.Sink().Delete(r.Context(), docID); err != nil {
		jsonError(w, "failed to delete document: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": docID})
}
