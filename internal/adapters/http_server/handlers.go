package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"maptruth/internal/app"
	"maptruth/internal/domain"
)

type Handlers struct {
	Svc *app.AnalyzeService
	Gen domain.TextGenerator
	// APIKeySet gates /analyze: without the places key the pipeline cannot run.
	APIKeySet bool
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/", h.root)
	s.mux.Get("/health", h.health)
	s.mux.Post("/analyze", h.analyze)
	s.mux.Post("/analyze-text", h.analyzeText)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func (h *Handlers) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "MapTruth - map review analyzer",
		"status":  "running",
	})
}

func (h *Handlers) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	connected := h.Gen != nil && h.Gen.Ping(ctx) == nil
	writeJSON(w, http.StatusOK, map[string]any{
		"status":           "healthy",
		"ollama_connected": connected,
	})
}

func (h *Handlers) analyze(w http.ResponseWriter, r *http.Request) {
	if !h.APIKeySet {
		writeProblem(w, http.StatusInternalServerError, "Not Configured", "maps API key not configured")
		return
	}

	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", "body must be JSON with a non-empty url")
		return
	}

	report, err := h.Svc.Analyze(r.Context(), req.URL)
	if err != nil {
		var fe *domain.FetchError
		switch {
		case errors.Is(err, domain.ErrNoPlaceID):
			writeProblem(w, http.StatusBadRequest, "Resolution Failed", "could not extract a place id from the URL")
		case errors.As(err, &fe):
			writeProblem(w, http.StatusBadRequest, "Fetch Failed", fe.Error())
		default:
			log.Error().Err(err).Msg("analyze failed")
			writeProblem(w, http.StatusInternalServerError, "Internal Error", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (h *Handlers) analyzeText(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ReviewText   string `json:"review_text"`
		ReviewerName string `json:"reviewer_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.ReviewText) == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", "body must be JSON with a non-empty review_text")
		return
	}

	analysis := h.Svc.AnalyzeText(r.Context(), req.ReviewerName, req.ReviewText)
	if analysis.RawOutput != "" {
		writeJSON(w, http.StatusOK, map[string]any{
			"success":    false,
			"raw_output": analysis.RawOutput,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"analysis": analysis,
	})
}
