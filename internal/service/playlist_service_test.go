package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/yourorg/moodtunes/internal/domain"
)

type memPlaylistRepo struct {
	nextID    int64
	playlists []domain.Playlist
}

func newMemPlaylistRepo() *memPlaylistRepo {
	return &memPlaylistRepo{nextID: 1}
}

func (m *memPlaylistRepo) Insert(_ context.Context, p *domain.Playlist) error {
	p.ID = m.nextID
	m.nextID++
	p.CreatedAt = time.Now()
	m.playlists = append(m.playlists, *p)
	return nil
}

func (m *memPlaylistRepo) ListByUser(_ context.Context, userID int64) ([]domain.Playlist, error) {
	out := []domain.Playlist{}
	for i := len(m.playlists) - 1; i >= 0; i-- {
		if m.playlists[i].UserID == userID {
			out = append(out, m.playlists[i])
		}
	}
	return out, nil
}

func TestSavePlaylistRequiresName(t *testing.T) {
	s := NewPlaylistService(newMemPlaylistRepo(), nil)

	_, err := s.Save(context.Background(), 1, "", "happy", json.RawMessage(`[]`))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("empty name: got %v, want validation error", err)
	}
}

func TestSavePlaylistRoundTripsOpaqueTracks(t *testing.T) {
	s := NewPlaylistService(newMemPlaylistRepo(), nil)
	ctx := context.Background()

	// The store must not inspect track shape: arbitrary fields survive
	tracks := json.RawMessage(`[{"id":"x","name":"Song","extra_field":42}]`)
	saved, err := s.Save(ctx, 1, "road trip", "excited", tracks)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if saved.ID == 0 {
		t.Fatalf("expected assigned playlist id")
	}

	got, err := s.List(ctx, 1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("list length = %d, want 1", len(got))
	}
	if string(got[0].Tracks) != string(tracks) {
		t.Fatalf("tracks not returned verbatim: %s", got[0].Tracks)
	}
	if got[0].Emotion != "excited" {
		t.Fatalf("emotion tag = %q, want excited", got[0].Emotion)
	}
}

func TestSavePlaylistAcceptsEmptyTracks(t *testing.T) {
	s := NewPlaylistService(newMemPlaylistRepo(), nil)
	ctx := context.Background()

	saved, err := s.Save(ctx, 1, "empty", "", nil)
	if err != nil {
		t.Fatalf("save with empty tracks failed: %v", err)
	}
	if saved.ID == 0 {
		t.Fatalf("expected assigned playlist id")
	}

	got, err := s.List(ctx, 1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if string(got[0].Tracks) != "[]" {
		t.Fatalf("empty track list round trip = %s, want []", got[0].Tracks)
	}
}
