package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yourorg/moodtunes/internal/catalog"
	"github.com/yourorg/moodtunes/internal/classifier"
	"github.com/yourorg/moodtunes/internal/domain"
	"github.com/yourorg/moodtunes/internal/feed"
	"github.com/yourorg/moodtunes/internal/infrastructure/logger"
	"github.com/yourorg/moodtunes/internal/security/audit"
	"github.com/yourorg/moodtunes/internal/security/middleware"
	"github.com/yourorg/moodtunes/internal/security/ratelimit"
	"github.com/yourorg/moodtunes/internal/security/session"
	"github.com/yourorg/moodtunes/internal/service"
)

// In-memory repositories backing the test server

type memUserRepo struct {
	nextID int64
	users  []*domain.User
}

func (m *memUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, existing := range m.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return fmt.Errorf("%w: username or email", domain.ErrConflict)
		}
	}
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = time.Now()
	m.users = append(m.users, u)
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w: user %d", domain.ErrNotFound, id)
}

func (m *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w: user %q", domain.ErrNotFound, username)
}

type memMoodRepo struct {
	nextID  int64
	records []domain.MoodRecord
}

func (m *memMoodRepo) Insert(_ context.Context, rec *domain.MoodRecord) error {
	m.nextID++
	rec.ID = m.nextID
	rec.RecordedAt = time.Now()
	m.records = append(m.records, *rec)
	return nil
}

func (m *memMoodRepo) RecentByUser(_ context.Context, userID int64, limit int) ([]domain.MoodRecord, error) {
	out := []domain.MoodRecord{}
	for i := len(m.records) - 1; i >= 0 && len(out) < limit; i-- {
		if m.records[i].UserID == userID {
			out = append(out, m.records[i])
		}
	}
	return out, nil
}

type memPlaylistRepo struct {
	nextID    int64
	playlists []domain.Playlist
}

func (m *memPlaylistRepo) Insert(_ context.Context, p *domain.Playlist) error {
	m.nextID++
	p.ID = m.nextID
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

// newTestServer wires the full API surface over in-memory repositories,
// mirroring the production middleware chain.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := logger.NewLogger("error")
	auditLog := audit.NewLogger(log)
	sessions := session.NewManager("test-secret", time.Hour, session.NewMemoryRevocationStore(), log)

	authService := service.NewAuthService(&memUserRepo{}, log)
	moodService := service.NewMoodService(classifier.NewRandom(), &memMoodRepo{}, feed.NewHub(), log)
	recService := service.NewRecommendationService(catalog.NewStatic(), log)
	playlistService := service.NewPlaylistService(&memPlaylistRepo{}, log)

	authHandler := NewAuthHandler(authService, sessions, auditLog, false, log)
	moodHandler := NewMoodHandler(moodService, auditLog, 16<<20, log)
	recHandler := NewRecommendationsHandler(recService, log)
	playlistHandler := NewPlaylistHandler(playlistService, auditLog, log)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/register", authHandler.Register)
	mux.HandleFunc("POST /api/login", authHandler.Login)
	mux.HandleFunc("POST /api/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/user", authHandler.Me)
	mux.HandleFunc("POST /api/analyze-emotion", moodHandler.Analyze)
	mux.HandleFunc("POST /api/recommendations", recHandler.Recommend)
	mux.HandleFunc("GET /api/mood-history", moodHandler.History)
	mux.HandleFunc("POST /api/save-playlist", playlistHandler.Save)
	mux.HandleFunc("GET /api/playlists", playlistHandler.List)

	limiter := ratelimit.NewLimiter(1000, time.Minute)
	t.Cleanup(limiter.Stop)

	// Same order as production: CORS outermost so preflights bypass the
	// session gate
	root := middleware.CORSMiddleware([]string{"http://localhost:5173"})(
		middleware.SessionMiddleware(sessions, log)(
			middleware.RateLimitMiddleware(limiter, log)(mux),
		),
	)

	server := httptest.NewServer(root)
	t.Cleanup(server.Close)
	return server
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

func postJSON(t *testing.T, client *http.Client, url string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestRegisterLoginAnalyzeHistoryFlow(t *testing.T) {
	server := newTestServer(t)
	client := newClient(t)

	// Register
	resp := postJSON(t, client, server.URL+"/api/register", map[string]string{
		"username": "alice", "email": "a@x.com", "password": "pw123",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d, want 201", resp.StatusCode)
	}
	var reg struct {
		User UserSummary `json:"user"`
	}
	decodeBody(t, resp, &reg)
	if reg.User.ID != 1 || reg.User.Username != "alice" {
		t.Fatalf("register returned %+v", reg.User)
	}

	// Login with the same credentials
	resp = postJSON(t, client, server.URL+"/api/login", map[string]string{
		"username": "alice", "password": "pw123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, want 200", resp.StatusCode)
	}
	var login struct {
		User UserSummary `json:"user"`
	}
	decodeBody(t, resp, &login)
	if login.User.ID != 1 {
		t.Fatalf("login returned id %d, want 1", login.User.ID)
	}

	// Analyze any payload
	image := base64.StdEncoding.EncodeToString([]byte("selfie"))
	resp = postJSON(t, client, server.URL+"/api/analyze-emotion", map[string]string{"image": image})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("analyze status = %d, want 200", resp.StatusCode)
	}
	var analyze AnalyzeResponse
	decodeBody(t, resp, &analyze)

	known := false
	for _, e := range domain.Emotions {
		if e == analyze.Emotion {
			known = true
		}
	}
	if !known {
		t.Fatalf("emotion %q outside canonical set", analyze.Emotion)
	}
	if analyze.Confidence < 0.70 || analyze.Confidence > 0.95 {
		t.Fatalf("confidence %v outside [0.70, 0.95]", analyze.Confidence)
	}
	if analyze.Emoji == "" {
		t.Fatalf("missing emoji")
	}

	// History holds exactly the just-recorded observation
	resp, err := client.Get(server.URL + "/api/mood-history")
	if err != nil {
		t.Fatalf("GET mood-history: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("history status = %d, want 200", resp.StatusCode)
	}
	var hist struct {
		History []HistoryEntry `json:"history"`
	}
	decodeBody(t, resp, &hist)
	if len(hist.History) != 1 {
		t.Fatalf("history length = %d, want 1", len(hist.History))
	}
	if hist.History[0].Emotion != analyze.Emotion {
		t.Fatalf("history emotion %q != analyzed %q", hist.History[0].Emotion, analyze.Emotion)
	}
}

func TestRegisterValidationAndConflict(t *testing.T) {
	server := newTestServer(t)
	client := newClient(t)

	resp := postJSON(t, client, server.URL+"/api/register", map[string]string{
		"username": "alice", "email": "", "password": "pw",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing field status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()

	resp = postJSON(t, client, server.URL+"/api/register", map[string]string{
		"username": "alice", "email": "a@x.com", "password": "pw",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d, want 201", resp.StatusCode)
	}
	resp.Body.Close()

	resp = postJSON(t, newClient(t), server.URL+"/api/register", map[string]string{
		"username": "alice", "email": "other@x.com", "password": "pw",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate status = %d, want 409", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestLoginInvalidCredentials(t *testing.T) {
	server := newTestServer(t)
	client := newClient(t)

	resp := postJSON(t, client, server.URL+"/api/register", map[string]string{
		"username": "alice", "email": "a@x.com", "password": "pw123",
	})
	resp.Body.Close()

	for _, creds := range []map[string]string{
		{"username": "alice", "password": "wrong"},
		{"username": "nobody", "password": "pw123"},
	} {
		resp := postJSON(t, newClient(t), server.URL+"/api/login", creds)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("login %v status = %d, want 401", creds, resp.StatusCode)
		}
		var body ErrorResponse
		decodeBody(t, resp, &body)
		if body.Error != "invalid credentials" {
			t.Fatalf("login error message %q leaks detail", body.Error)
		}
	}
}

func TestProtectedEndpointsFailClosed(t *testing.T) {
	server := newTestServer(t)
	client := newClient(t) // no session cookie

	gets := []string{"/api/user", "/api/mood-history", "/api/playlists"}
	for _, path := range gets {
		resp, err := client.Get(server.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("GET %s status = %d, want 401", path, resp.StatusCode)
		}
		if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("GET %s Content-Type = %q, want application/json", path, ct)
		}
		var body ErrorResponse
		decodeBody(t, resp, &body)
		if body.Error != "not authenticated" {
			t.Fatalf("GET %s error = %q", path, body.Error)
		}
	}

	posts := []string{"/api/analyze-emotion", "/api/recommendations", "/api/save-playlist", "/api/logout"}
	for _, path := range posts {
		resp := postJSON(t, client, server.URL+path, map[string]string{})
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("POST %s status = %d, want 401", path, resp.StatusCode)
		}
		if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("POST %s Content-Type = %q, want application/json", path, ct)
		}
		resp.Body.Close()
	}
}

func TestPreflightAnsweredWithoutSession(t *testing.T) {
	server := newTestServer(t)

	// No cookie jar: browsers send preflights without credentials
	req, err := http.NewRequest(http.MethodOptions, server.URL+"/api/recommendations", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("OPTIONS: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want 204", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("Allow-Origin = %q, want the requesting origin", got)
	}
	if resp.Header.Get("Access-Control-Allow-Credentials") != "true" {
		t.Fatalf("Allow-Credentials missing; cookie auth needs it")
	}
}

func TestPreflightIgnoresUnknownOrigin(t *testing.T) {
	server := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, server.URL+"/api/recommendations", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Origin", "http://evil.example")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("OPTIONS: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want 204", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("Allow-Origin = %q for an origin outside the allowlist", got)
	}
}

func TestAnalyzeRejectsMissingAndMalformedImage(t *testing.T) {
	server := newTestServer(t)
	client := registeredClient(t, server, "alice")

	resp := postJSON(t, client, server.URL+"/api/analyze-emotion", map[string]string{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing image status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()

	resp = postJSON(t, client, server.URL+"/api/analyze-emotion", map[string]string{"image": "@@@"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("malformed image status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestRecommendationsFallback(t *testing.T) {
	server := newTestServer(t)
	client := registeredClient(t, server, "alice")

	get := func(emotion string) []domain.Track {
		resp := postJSON(t, client, server.URL+"/api/recommendations", map[string]interface{}{
			"emotion": emotion, "limit": 0,
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("recommendations(%q) status = %d, want 200", emotion, resp.StatusCode)
		}
		var body struct {
			Tracks []domain.Track `json:"tracks"`
			Total  int            `json:"total"`
		}
		decodeBody(t, resp, &body)
		if body.Total != len(body.Tracks) {
			t.Fatalf("total %d != len(tracks) %d", body.Total, len(body.Tracks))
		}
		return body.Tracks
	}

	unknown := get("nonexistent-label")
	happy := get("happy")
	if len(unknown) == 0 || len(unknown) != len(happy) {
		t.Fatalf("fallback mismatch: %d vs %d tracks", len(unknown), len(happy))
	}
}

func TestSavePlaylistRoundTrip(t *testing.T) {
	server := newTestServer(t)
	client := registeredClient(t, server, "alice")

	resp := postJSON(t, client, server.URL+"/api/save-playlist", map[string]interface{}{
		"emotion": "happy", "tracks": []string{},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing name status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()

	resp = postJSON(t, client, server.URL+"/api/save-playlist", map[string]interface{}{
		"name": "quiet evening", "emotion": "relaxed", "tracks": []string{},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("save status = %d, want 201", resp.StatusCode)
	}
	var saved struct {
		PlaylistID int64 `json:"playlist_id"`
	}
	decodeBody(t, resp, &saved)
	if saved.PlaylistID == 0 {
		t.Fatalf("missing playlist_id")
	}

	listResp, err := client.Get(server.URL + "/api/playlists")
	if err != nil {
		t.Fatalf("GET playlists: %v", err)
	}
	var list struct {
		Playlists []domain.Playlist `json:"playlists"`
	}
	decodeBody(t, listResp, &list)
	if len(list.Playlists) != 1 {
		t.Fatalf("playlists length = %d, want 1", len(list.Playlists))
	}
	if string(list.Playlists[0].Tracks) != "[]" {
		t.Fatalf("empty track list round trip = %s, want []", list.Playlists[0].Tracks)
	}
	if list.Playlists[0].Emotion != "relaxed" {
		t.Fatalf("emotion tag = %q, want relaxed", list.Playlists[0].Emotion)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	server := newTestServer(t)
	client := registeredClient(t, server, "alice")

	resp, err := client.Get(server.URL + "/api/user")
	if err != nil {
		t.Fatalf("GET user: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("user status before logout = %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()

	resp = postJSON(t, client, server.URL+"/api/logout", map[string]string{})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout status = %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()

	// The cleared cookie (and revoked token) must no longer authenticate
	resp, err = client.Get(server.URL + "/api/user")
	if err != nil {
		t.Fatalf("GET user: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("user status after logout = %d, want 401", resp.StatusCode)
	}
	resp.Body.Close()
}

// registeredClient registers a fresh user and returns a client holding its
// session cookie
func registeredClient(t *testing.T, server *httptest.Server, username string) *http.Client {
	t.Helper()
	client := newClient(t)
	resp := postJSON(t, client, server.URL+"/api/register", map[string]string{
		"username": username, "email": username + "@x.com", "password": "pw123",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d, want 201", resp.StatusCode)
	}
	resp.Body.Close()
	return client
}
