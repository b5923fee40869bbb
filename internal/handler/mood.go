package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/yourorg/moodtunes/internal/domain"
	"github.com/yourorg/moodtunes/internal/security/audit"
	"github.com/yourorg/moodtunes/internal/security/middleware"
	"github.com/yourorg/moodtunes/internal/service"
)

// historyLimit caps how many ledger entries the history endpoint returns
const historyLimit = 10

// MoodHandler handles emotion analysis and mood history
type MoodHandler struct {
	moodService   *service.MoodService
	audit         *audit.Logger
	maxImageBytes int64
	logger        *slog.Logger
}

// NewMoodHandler creates a new mood handler
func NewMoodHandler(
	moodService *service.MoodService,
	auditLog *audit.Logger,
	maxImageBytes int64,
	logger *slog.Logger,
) *MoodHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &MoodHandler{
		moodService:   moodService,
		audit:         auditLog,
		maxImageBytes: maxImageBytes,
		logger:        logger,
	}
}

// AnalyzeRequest carries the image as raw base64 or a data-URL
type AnalyzeRequest struct {
	Image string `json:"image"`
}

// AnalyzeResponse is the detected emotion
type AnalyzeResponse struct {
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
	Emoji      string  `json:"emoji"`
}

// HistoryEntry is one mood observation in the history response
type HistoryEntry struct {
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
	Timestamp  string  `json:"timestamp"`
	Emoji      string  `json:"emoji"`
}

// Analyze handles POST /api/analyze-emotion
func (h *MoodHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentityFromContext(r.Context())
	if identity == nil {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxImageBytes)

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode analyze request", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
		return
	}

	record, err := h.moodService.Analyze(r.Context(), identity.UserID, req.Image)
	if err != nil {
		h.audit.LogAnalysis(r.Context(), identity.UserID, identity.Username, "failed")
		writeError(w, h.logger, err)
		return
	}

	h.audit.LogAnalysis(r.Context(), identity.UserID, identity.Username, "ok")

	writeJSON(w, http.StatusOK, AnalyzeResponse{
		Emotion:    record.Emotion,
		Confidence: record.Confidence,
		Emoji:      domain.EmojiFor(record.Emotion),
	})
}

// History handles GET /api/mood-history
func (h *MoodHandler) History(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentityFromContext(r.Context())
	if identity == nil {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
		return
	}

	records, err := h.moodService.History(r.Context(), identity.UserID, historyLimit)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	history := make([]HistoryEntry, 0, len(records))
	for _, rec := range records {
		history = append(history, HistoryEntry{
			Emotion:    rec.Emotion,
			Confidence: rec.Confidence,
			Timestamp:  rec.RecordedAt.Format(time.RFC3339),
			Emoji:      domain.EmojiFor(rec.Emotion),
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"history": history})
}
