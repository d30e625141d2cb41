package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nikogura/storyboard-scorer/pkg/feedback"
	"github.com/nikogura/storyboard-scorer/pkg/plan"
	"github.com/nikogura/storyboard-scorer/pkg/scorer"
)

// maxBodyBytes bounds an uploaded storyboard.
const maxBodyBytes = 4 << 20

// handleScore scores the posted storyboard.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.decodeDocument(w, r)
	if !ok {
		return
	}

	report, err := s.scorer.ScorePlan(r.Context(), doc)
	if err != nil {
		jsonError(w, s.log, err.Error(), http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, s.log, http.StatusOK, report)
}

// handleMetrics returns word statistics for the posted storyboard.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.decodeDocument(w, r)
	if !ok {
		return
	}

	writeJSON(w, s.log, http.StatusOK, s.scorer.ComputeMetrics(doc))
}

func (s *Server) handleGetCriteria(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.log, http.StatusOK, s.scorer.Criteria())
}

// handlePatchCriteria applies a partial criteria update.
func (s *Server) handlePatchCriteria(w http.ResponseWriter, r *http.Request) {
	var patch scorer.CriteriaPatch
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		jsonError(w, s.log, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	criteria, err := s.scorer.UpdateCriteria(patch)
	if err != nil {
		jsonError(w, s.log, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	s.log.Info("criteria updated", "min_words", criteria.MinWordsPerSection, "max_words", criteria.MaxWordsPerSection)
	writeJSON(w, s.log, http.StatusOK, criteria)
}

func (s *Server) handleClearCache(w http.ResponseWriter, r *http.Request) {
	if s.cache != nil {
		s.cache.Clear()
	}
	if s.feedback != nil {
		s.feedback.Clear()
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleFeedback returns mentor feedback for one section.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedback.Request
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, s.log, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	fb, err := s.feedback.Generate(r.Context(), req)
	if err != nil {
		jsonError(w, s.log, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	writeJSON(w, s.log, http.StatusOK, fb)
}

// handleFeedbackHistory lists cached feedback for a section, newest first.
func (s *Server) handleFeedbackHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.log, http.StatusOK, s.feedback.History(chi.URLParam(r, "sectionID")))
}

func (s *Server) decodeDocument(w http.ResponseWriter, r *http.Request) (doc plan.Document, ok bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		jsonError(w, s.log, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return doc, false
	}

	if err := doc.Validate(); err != nil {
		jsonError(w, s.log, err.Error(), http.StatusUnprocessableEntity)
		return doc, false
	}

	return doc, true
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response", "status", status, "error", err)
	}
}

func jsonError(w http.ResponseWriter, log *slog.Logger, msg string, status int) {
	writeJSON(w, log, status, map[string]string{"error": msg})
}
