package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yourorg/moodtunes/internal/classifier"
	"github.com/yourorg/moodtunes/internal/domain"
	"github.com/yourorg/moodtunes/internal/feed"
	"github.com/yourorg/moodtunes/internal/observability/metrics"
)

// MoodService runs the classifier over a submitted image and appends the
// observation to the user's mood ledger
type MoodService struct {
	classifier classifier.Classifier
	moodRepo   domain.MoodRepository
	hub        *feed.Hub
	logger     *slog.Logger
}

// NewMoodService creates a new mood service. The hub may be nil when no live
// feed is wanted (tests).
func NewMoodService(
	c classifier.Classifier,
	moodRepo domain.MoodRepository,
	hub *feed.Hub,
	logger *slog.Logger,
) *MoodService {
	if logger == nil {
		logger = slog.Default()
	}

	return &MoodService{
		classifier: c,
		moodRepo:   moodRepo,
		hub:        hub,
		logger:     logger,
	}
}

// Analyze decodes the image payload, classifies it, and records the result.
// The payload may be raw base64 or a data-URL; anything up to and including
// the first comma is stripped before decoding.
func (s *MoodService) Analyze(ctx context.Context, userID int64, imagePayload string) (*domain.MoodRecord, error) {
	if imagePayload == "" {
		return nil, fmt.Errorf("%w: image is required", domain.ErrValidation)
	}

	image, err := decodeImagePayload(imagePayload)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid image encoding", domain.ErrDecode)
	}

	emotion, confidence := s.classifier.Classify(image)

	record := &domain.MoodRecord{
		UserID:     userID,
		Emotion:    emotion,
		Confidence: confidence,
	}
	if err := s.moodRepo.Insert(ctx, record); err != nil {
		return nil, err
	}

	metrics.ObserveAnalysis(emotion)
	if s.hub != nil {
		s.hub.Publish(*record)
	}

	s.logger.Info("emotion analyzed",
		slog.Int64("user_id", userID),
		slog.String("emotion", emotion),
		slog.Float64("confidence", confidence),
	)

	return record, nil
}

// History returns at most limit of the user's most recent observations,
// newest first. An empty history is a valid result, not an error.
func (s *MoodService) History(ctx context.Context, userID int64, limit int) ([]domain.MoodRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.moodRepo.RecentByUser(ctx, userID, limit)
}

func decodeImagePayload(payload string) ([]byte, error) {
	// Data-URL form: data:<mime>;base64,<payload>
	if i := strings.Index(payload, ","); i >= 0 {
		payload = payload[i+1:]
	}
	return base64.StdEncoding.DecodeString(payload)
}
