package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/yourorg/moodtunes/internal/security/middleware"
	"github.com/yourorg/moodtunes/internal/service"
)

// defaultRecommendationLimit matches the catalog sample size the original
// client asks for
const defaultRecommendationLimit = 10

// RecommendationsHandler handles emotion-to-tracks lookups
type RecommendationsHandler struct {
	recService *service.RecommendationService
	logger     *slog.Logger
}

// NewRecommendationsHandler creates a new recommendations handler
func NewRecommendationsHandler(recService *service.RecommendationService, logger *slog.Logger) *RecommendationsHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &RecommendationsHandler{
		recService: recService,
		logger:     logger,
	}
}

// RecommendationsRequest asks for tracks matching an emotion
type RecommendationsRequest struct {
	Emotion string `json:"emotion"`
	Limit   int    `json:"limit,omitempty"`
}

// Recommend handles POST /api/recommendations
func (h *RecommendationsHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	if middleware.GetIdentityFromContext(r.Context()) == nil {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
		return
	}

	var req RecommendationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode recommendations request", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
		return
	}

	if req.Emotion == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "emotion is required"})
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}

	tracks := h.recService.Recommend(req.Emotion, limit)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tracks":  tracks,
		"total":   len(tracks),
		"emotion": req.Emotion,
	})
}
