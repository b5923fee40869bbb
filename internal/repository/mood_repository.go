package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/yourorg/moodtunes/internal/domain"
)

// PostgresMoodRepository implements domain.MoodRepository using PostgreSQL.
// The mood ledger is append-only: rows are inserted once and never updated
// or deleted.
type PostgresMoodRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresMoodRepository creates a new mood repository
func NewPostgresMoodRepository(db *sql.DB, logger *slog.Logger) *PostgresMoodRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresMoodRepository{
		db:     db,
		logger: logger,
	}
}

// Insert appends one observation with a server-assigned timestamp. The
// emotion label is stored verbatim; the ledger does not validate it against
// the canonical set.
func (r *PostgresMoodRepository) Insert(ctx context.Context, record *domain.MoodRecord) error {
	query := `
		INSERT INTO mood_history (user_id, emotion, confidence)
		VALUES ($1, $2, $3)
		RETURNING id, recorded_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		record.UserID,
		record.Emotion,
		record.Confidence,
	).Scan(&record.ID, &record.RecordedAt)

	if err != nil {
		r.logger.Error("failed to insert mood record",
			slog.Int64("user_id", record.UserID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to insert mood record: %w", err)
	}

	return nil
}

// RecentByUser returns at most limit records for the user, strictly
// newest-first with ids breaking timestamp ties
func (r *PostgresMoodRepository) RecentByUser(ctx context.Context, userID int64, limit int) ([]domain.MoodRecord, error) {
	query := `
		SELECT id, user_id, emotion, confidence, recorded_at
		FROM mood_history
		WHERE user_id = $1
		ORDER BY recorded_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		r.logger.Error("failed to query mood history",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to query mood history: %w", err)
	}
	defer rows.Close()

	records := []domain.MoodRecord{}
	for rows.Next() {
		var rec domain.MoodRecord
		err := rows.Scan(&rec.ID, &rec.UserID, &rec.Emotion, &rec.Confidence, &rec.RecordedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mood record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
