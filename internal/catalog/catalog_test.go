package catalog

import (
	"testing"

	"github.com/yourorg/moodtunes/internal/domain"
)

func TestEveryEmotionHasTracks(t *testing.T) {
	c := NewStatic()
	for _, emotion := range domain.Emotions {
		tracks := c.Recommend(emotion, 0)
		if len(tracks) == 0 {
			t.Errorf("emotion %q has no tracks", emotion)
		}
	}
}

func TestUnknownEmotionFallsBackToDefault(t *testing.T) {
	c := NewStatic()

	fallback := c.Recommend("nonexistent-label", 0)
	happy := c.Recommend(DefaultEmotion, 0)

	if len(fallback) == 0 {
		t.Fatalf("fallback result must not be empty")
	}
	if len(fallback) != len(happy) {
		t.Fatalf("fallback length %d != default length %d", len(fallback), len(happy))
	}
	for i := range happy {
		if fallback[i].ID != happy[i].ID {
			t.Fatalf("fallback differs from default category at index %d", i)
		}
	}
}

func TestFullCategoryReturnedInOrder(t *testing.T) {
	c := NewStatic()

	full := c.Recommend("sad", 0)
	again := c.Recommend("sad", len(full)+10)

	if len(again) != len(full) {
		t.Fatalf("oversized limit changed result length: %d vs %d", len(again), len(full))
	}
	for i := range full {
		if full[i].ID != again[i].ID {
			t.Fatalf("catalog order not stable at index %d", i)
		}
	}
}

func TestLimitSamplesWithoutReplacement(t *testing.T) {
	c := NewStatic()
	category := c.Recommend("happy", 0)
	inCategory := map[string]bool{}
	for _, tr := range category {
		inCategory[tr.ID] = true
	}

	for i := 0; i < 50; i++ {
		sample := c.Recommend("happy", 2)
		if len(sample) != 2 {
			t.Fatalf("sample length = %d, want 2", len(sample))
		}
		if sample[0].ID == sample[1].ID {
			t.Fatalf("sample repeated track %q", sample[0].ID)
		}
		for _, tr := range sample {
			if !inCategory[tr.ID] {
				t.Fatalf("sampled track %q not in happy category", tr.ID)
			}
		}
	}
}

func TestRecommendCopiesDoNotAlias(t *testing.T) {
	c := NewStatic()
	first := c.Recommend("happy", 0)
	first[0].Name = "mutated"

	second := c.Recommend("happy", 0)
	if second[0].Name == "mutated" {
		t.Fatalf("Recommend returned aliased library slice")
	}
}
