package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

type AnalyzeRequest struct {
	Symptoms []interface{} `json:"symptoms"`
}

type AnalyzeResponse struct {
	Observations        []string            `json:"observations"`
	Recommendations     []string            `json:"recommendations"`
	FoodRecommendations []map[string]string `json:"food_recommendations"`
}

// Analyze maps symptom names to catalog advice. A missing or malformed body
// counts as no symptoms, and non-string entries are ignored like unknown keys.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		req.Symptoms = nil
	}

	keys := make([]string, 0, len(req.Symptoms))
	for _, s := range req.Symptoms {
		if name, ok := s.(string); ok {
			keys = append(keys, name)
		}
	}

	obs, recs, food := h.catalog.LookupMany(keys)
	writeJSON(w, http.StatusOK, AnalyzeResponse{
		Observations:        obs,
		Recommendations:     recs,
		FoodRecommendations: food,
	})
}

// ListSymptoms returns every catalog key in definition order.
func (h *Handler) ListSymptoms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.ListKeys())
}

// GetSymptom returns one catalog record, remedies included.
func (h *Handler) GetSymptom(w http.ResponseWriter, r *http.Request) {
	// chi matches on RawPath when the request has one, leaving the param escaped.
	name := chi.URLParam(r, "name")
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(name); err == nil {
			name = unescaped
		}
	}

	rec, ok := h.catalog.Lookup(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "unknown_symptom"})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
