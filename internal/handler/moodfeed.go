package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yourorg/moodtunes/internal/domain"
	"github.com/yourorg/moodtunes/internal/feed"
	"github.com/yourorg/moodtunes/internal/security/middleware"
)

// MoodFeedHandler streams newly recorded mood observations to the
// authenticated user over a WebSocket
type MoodFeedHandler struct {
	hub            *feed.Hub
	logger         *slog.Logger
	allowedOrigins []string
}

// NewMoodFeedHandler creates a new mood feed handler
func NewMoodFeedHandler(hub *feed.Hub, logger *slog.Logger, allowedOrigins []string) *MoodFeedHandler {
	return &MoodFeedHandler{
		hub:            hub,
		logger:         logger,
		allowedOrigins: allowedOrigins,
	}
}

// feedEvent is the wire shape of one streamed observation
type feedEvent struct {
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
	Emoji      string  `json:"emoji"`
	Timestamp  string  `json:"timestamp"`
}

// upgrader is initialized per-request to use instance's allowed origins
func (h *MoodFeedHandler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				// Allow requests with no origin (e.g., non-browser clients)
				return true
			}
			for _, allowed := range h.allowedOrigins {
				if origin == allowed {
					return true
				}
			}
			h.logger.Warn("websocket origin rejected", slog.String("origin", origin))
			return false
		},
	}
}

// ServeHTTP handles GET /ws/mood-feed. The session cookie authenticates the
// upgrade like any other protected request.
func (h *MoodFeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentityFromContext(r.Context())
	if identity == nil {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
		return
	}

	upgrader := h.getUpgrader()
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer ws.Close()

	records, cancel := h.hub.Subscribe(identity.UserID)
	defer cancel()

	h.logger.Debug("mood feed opened", slog.Int64("user_id", identity.UserID))

	// Drain client frames so close messages are noticed; the feed is
	// write-only from our side.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case rec, ok := <-records:
			if !ok {
				return
			}
			event := feedEvent{
				Emotion:    rec.Emotion,
				Confidence: rec.Confidence,
				Emoji:      domain.EmojiFor(rec.Emotion),
				Timestamp:  rec.RecordedAt.Format(time.RFC3339),
			}
			if err := ws.WriteJSON(event); err != nil {
				h.logger.Debug("mood feed closed",
					slog.Int64("user_id", identity.UserID),
					slog.String("reason", err.Error()),
				)
				return
			}
		}
	}
}
