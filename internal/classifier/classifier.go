package classifier

import (
	"math"
	"math/rand/v2"

	"github.com/yourorg/moodtunes/internal/domain"
)

// Classifier maps image bytes to an emotion label with a confidence score.
// Implementations must return a confidence in [0, 1]; the handlers depend
// only on this interface, so a real model can replace the stub without
// touching them.
type Classifier interface {
	Classify(image []byte) (emotion string, confidence float64)
}

// Random is the reference stub. It ignores the image content and returns a
// uniformly random label from the canonical set with a confidence drawn
// uniformly from [0.70, 0.95], rounded to two decimal places.
type Random struct{}

// NewRandom creates the stub classifier
func NewRandom() *Random {
	return &Random{}
}

// Classify implements Classifier
func (c *Random) Classify(_ []byte) (string, float64) {
	emotion := domain.Emotions[rand.IntN(len(domain.Emotions))]
	confidence := 0.70 + rand.Float64()*0.25
	confidence = math.Round(confidence*100) / 100
	return emotion, confidence
}
