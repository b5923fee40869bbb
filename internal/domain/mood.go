package domain

import (
	"context"
	"encoding/json"
	"time"
)

// Canonical emotion labels the stub classifier draws from. The mood ledger
// stores whatever label the classifier produced and does not validate
// against this set.
var Emotions = []string{
	"happy",
	"sad",
	"angry",
	"surprised",
	"neutral",
	"excited",
	"relaxed",
	"fearful",
	"disgusted",
}

var emojiByEmotion = map[string]string{
	"happy":     "😊",
	"sad":       "😢",
	"angry":     "😠",
	"surprised": "😲",
	"neutral":   "😐",
	"excited":   "🤩",
	"relaxed":   "😌",
	"fearful":   "😨",
	"disgusted": "🤢",
}

// EmojiFor returns the display emoji for an emotion label, falling back to
// the neutral face for labels outside the canonical set.
func EmojiFor(emotion string) string {
	if e, ok := emojiByEmotion[emotion]; ok {
		return e
	}
	return "😐"
}

// MoodRecord is one emotion observation in the append-only ledger
type MoodRecord struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"-"`
	Emotion    string    `json:"emotion"`
	Confidence float64   `json:"confidence"`
	RecordedAt time.Time `json:"timestamp"`
}

// MoodRepository defines data access for the mood ledger. Records are
// inserted once and never mutated or deleted.
type MoodRepository interface {
	Insert(ctx context.Context, record *MoodRecord) error
	// RecentByUser returns at most limit records for the user, strictly
	// newest-first (recorded_at DESC, id DESC on ties).
	RecentByUser(ctx context.Context, userID int64, limit int) ([]MoodRecord, error)
}

// Track is the value object produced by the track catalog. Playlists store
// track lists opaquely and return them verbatim.
type Track struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Artist     string `json:"artist"`
	Album      string `json:"album,omitempty"`
	DurationMS int    `json:"duration,omitempty"`
	PreviewURL string `json:"preview_url,omitempty"`
	Image      string `json:"image,omitempty"`
}

// Playlist is a saved, named collection of tracks owned by one user
type Playlist struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"-"`
	Name      string          `json:"name"`
	Emotion   string          `json:"emotion,omitempty"`
	Tracks    json.RawMessage `json:"tracks"`
	CreatedAt time.Time       `json:"created_at"`
}

// PlaylistRepository defines data access for saved playlists
type PlaylistRepository interface {
	Insert(ctx context.Context, playlist *Playlist) error
	ListByUser(ctx context.Context, userID int64) ([]Playlist, error)
}
