package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/yourorg/moodtunes/internal/domain"
	"github.com/yourorg/moodtunes/internal/observability/metrics"
)

// PlaylistService persists named, optionally emotion-tagged track lists.
// Track payloads are opaque at this layer: they are stored and returned
// verbatim without validating track shape.
type PlaylistService struct {
	playlistRepo domain.PlaylistRepository
	logger       *slog.Logger
}

// NewPlaylistService creates a new playlist service
func NewPlaylistService(playlistRepo domain.PlaylistRepository, logger *slog.Logger) *PlaylistService {
	if logger == nil {
		logger = slog.Default()
	}

	return &PlaylistService{
		playlistRepo: playlistRepo,
		logger:       logger,
	}
}

// Save stores a playlist. The name must be non-empty; an empty track list is
// allowed and stored as given.
func (s *PlaylistService) Save(ctx context.Context, userID int64, name, emotion string, tracks json.RawMessage) (*domain.Playlist, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if len(tracks) == 0 {
		tracks = json.RawMessage("[]")
	}

	playlist := &domain.Playlist{
		UserID:  userID,
		Name:    name,
		Emotion: emotion,
		Tracks:  tracks,
	}
	if err := s.playlistRepo.Insert(ctx, playlist); err != nil {
		return nil, err
	}

	metrics.ObservePlaylistSaved()
	s.logger.Info("playlist saved",
		slog.Int64("user_id", userID),
		slog.Int64("playlist_id", playlist.ID),
		slog.String("name", name),
	)

	return playlist, nil
}

// List returns the user's saved playlists, newest first
func (s *PlaylistService) List(ctx context.Context, userID int64) ([]domain.Playlist, error) {
	return s.playlistRepo.ListByUser(ctx, userID)
}
