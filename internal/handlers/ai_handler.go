package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"jobtrack/internal/models"
)

// AIHandler serves the placeholder text-similarity endpoints.
type AIHandler struct {
	v *validator.Validate
}

func NewAIHandler() *AIHandler {
	return &AIHandler{v: validator.New()}
}

// Summarize handles POST /api/v1/ai/summarize
func (h *AIHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req models.SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	text := req.JobDescription
	summary := text
	if len(text) > 300 {
		summary = text[:300] + "..."
	}

	writeJSON(w, http.StatusOK, models.SummarizeResponse{Summary: summary})
}

// Compare handles POST /api/v1/ai/compare with a word-overlap score.
func (h *AIHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var req models.CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	jdWords := wordSet(req.JobDescription)
	cvWords := wordSet(req.ResumeText)

	overlap := 0
	for word := range jdWords {
		if _, ok := cvWords[word]; ok {
			overlap++
		}
	}
	total := len(jdWords)
	if total == 0 {
		total = 1
	}

	score := math.Min(100.0, float64(overlap)/float64(total)*100*2)
	score = math.Round(score*10) / 10

	writeJSON(w, http.StatusOK, models.CompareResponse{
		Score:   score,
		Comment: "Rough overlap-based score. Integrate real AI for production.",
	})
}

func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, word := range strings.Fields(strings.ToLower(text)) {
		set[word] = struct{}{}
	}
	return set
}
