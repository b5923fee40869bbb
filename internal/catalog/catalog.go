package catalog

import (
	"math/rand/v2"

	"github.com/yourorg/moodtunes/internal/domain"
)

// DefaultEmotion is the category served when a label has no entry of its
// own. The catalog never returns an empty result or an error for unknown
// labels.
const DefaultEmotion = "happy"

// Catalog maps an emotion label to an ordered list of tracks. It stands in
// for a real external music service; callers depend only on this interface.
type Catalog interface {
	Recommend(emotion string, limit int) []domain.Track
}

// Static is the reference in-memory catalog
type Static struct {
	byEmotion map[string][]domain.Track
}

// NewStatic creates the catalog with the built-in track library
func NewStatic() *Static {
	return &Static{byEmotion: library}
}

// Recommend returns tracks for the emotion, falling back to the default
// category for unknown labels. A positive limit smaller than the category
// size selects a limit-sized sample without replacement; otherwise the full
// category is returned in catalog order.
func (c *Static) Recommend(emotion string, limit int) []domain.Track {
	tracks, ok := c.byEmotion[emotion]
	if !ok {
		tracks = c.byEmotion[DefaultEmotion]
	}

	if limit <= 0 || limit >= len(tracks) {
		out := make([]domain.Track, len(tracks))
		copy(out, tracks)
		return out
	}

	out := make([]domain.Track, 0, limit)
	for _, i := range rand.Perm(len(tracks))[:limit] {
		out = append(out, tracks[i])
	}
	return out
}
