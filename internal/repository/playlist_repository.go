package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/yourorg/moodtunes/internal/domain"
)

// PostgresPlaylistRepository implements domain.PlaylistRepository using
// PostgreSQL. Track lists are stored as an opaque JSONB blob and returned
// verbatim: this layer is a pass-through, not a catalog validator.
type PostgresPlaylistRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresPlaylistRepository creates a new playlist repository
func NewPostgresPlaylistRepository(db *sql.DB, logger *slog.Logger) *PostgresPlaylistRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPlaylistRepository{
		db:     db,
		logger: logger,
	}
}

// Insert stores a new playlist
func (r *PostgresPlaylistRepository) Insert(ctx context.Context, playlist *domain.Playlist) error {
	query := `
		INSERT INTO playlists (user_id, name, emotion, tracks)
		VALUES ($1, $2, NULLIF($3, ''), $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		playlist.UserID,
		playlist.Name,
		playlist.Emotion,
		[]byte(playlist.Tracks),
	).Scan(&playlist.ID, &playlist.CreatedAt)

	if err != nil {
		r.logger.Error("failed to insert playlist",
			slog.Int64("user_id", playlist.UserID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to insert playlist: %w", err)
	}

	return nil
}

// ListByUser returns the user's playlists, newest first
func (r *PostgresPlaylistRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Playlist, error) {
	query := `
		SELECT id, user_id, name, COALESCE(emotion, ''), tracks, created_at
		FROM playlists
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to query playlists",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	playlists := []domain.Playlist{}
	for rows.Next() {
		var p domain.Playlist
		var tracks []byte
		err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Emotion, &tracks, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		p.Tracks = tracks
		playlists = append(playlists, p)
	}

	return playlists, rows.Err()
}
