package service

import (
	"log/slog"

	"github.com/yourorg/moodtunes/internal/catalog"
	"github.com/yourorg/moodtunes/internal/domain"
	"github.com/yourorg/moodtunes/internal/observability/metrics"
)

// RecommendationService resolves emotion labels to track lists through the
// injected catalog
type RecommendationService struct {
	catalog catalog.Catalog
	logger  *slog.Logger
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(c catalog.Catalog, logger *slog.Logger) *RecommendationService {
	if logger == nil {
		logger = slog.Default()
	}

	return &RecommendationService{
		catalog: c,
		logger:  logger,
	}
}

// Recommend returns tracks for the emotion. Labels the catalog does not
// carry fall through to its default category, so the result is never empty.
func (s *RecommendationService) Recommend(emotion string, limit int) []domain.Track {
	tracks := s.catalog.Recommend(emotion, limit)

	fallback := !knownEmotion(emotion)
	metrics.ObserveRecommendation(emotion, fallback)
	if fallback {
		s.logger.Debug("unknown emotion, served default category",
			slog.String("emotion", emotion),
		)
	}

	return tracks
}

func knownEmotion(emotion string) bool {
	for _, e := range domain.Emotions {
		if e == emotion {
			return true
		}
	}
	return false
}
