package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/yourorg/moodtunes/internal/security/audit"
	"github.com/yourorg/moodtunes/internal/security/middleware"
	"github.com/yourorg/moodtunes/internal/service"
)

// PlaylistHandler handles saving and listing playlists
type PlaylistHandler struct {
	playlistService *service.PlaylistService
	audit           *audit.Logger
	logger          *slog.Logger
}

// NewPlaylistHandler creates a new playlist handler
func NewPlaylistHandler(playlistService *service.PlaylistService, auditLog *audit.Logger, logger *slog.Logger) *PlaylistHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &PlaylistHandler{
		playlistService: playlistService,
		audit:           auditLog,
		logger:          logger,
	}
}

// SavePlaylistRequest carries a playlist to persist. Tracks are opaque at
// this layer and stored verbatim.
type SavePlaylistRequest struct {
	Name    string          `json:"name"`
	Emotion string          `json:"emotion,omitempty"`
	Tracks  json.RawMessage `json:"tracks"`
}

// Save handles POST /api/save-playlist
func (h *PlaylistHandler) Save(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentityFromContext(r.Context())
	if identity == nil {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
		return
	}

	var req SavePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode save-playlist request", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
		return
	}

	playlist, err := h.playlistService.Save(r.Context(), identity.UserID, req.Name, req.Emotion, req.Tracks)
	if err != nil {
		h.audit.LogPlaylistSave(r.Context(), identity.UserID, identity.Username, "failed")
		writeError(w, h.logger, err)
		return
	}

	h.audit.LogPlaylistSave(r.Context(), identity.UserID, identity.Username, "ok")

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":     "playlist saved successfully",
		"playlist_id": playlist.ID,
	})
}

// List handles GET /api/playlists
func (h *PlaylistHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentityFromContext(r.Context())
	if identity == nil {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
		return
	}

	playlists, err := h.playlistService.List(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"playlists": playlists})
}
