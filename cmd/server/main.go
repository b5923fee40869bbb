package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yourorg/moodtunes/internal/catalog"
	"github.com/yourorg/moodtunes/internal/classifier"
	"github.com/yourorg/moodtunes/internal/feed"
	"github.com/yourorg/moodtunes/internal/handler"
	"github.com/yourorg/moodtunes/internal/infrastructure/logger"
	"github.com/yourorg/moodtunes/internal/infrastructure/redis"
	"github.com/yourorg/moodtunes/internal/observability/metrics"
	"github.com/yourorg/moodtunes/internal/observability/tracing"
	"github.com/yourorg/moodtunes/internal/repository"
	"github.com/yourorg/moodtunes/internal/security/audit"
	"github.com/yourorg/moodtunes/internal/security/middleware"
	"github.com/yourorg/moodtunes/internal/security/ratelimit"
	"github.com/yourorg/moodtunes/internal/security/session"
	"github.com/yourorg/moodtunes/internal/service"
	"github.com/yourorg/moodtunes/pkg/config"
	"github.com/yourorg/moodtunes/pkg/database"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize structured logger
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("starting MoodTunes server", slog.String("environment", cfg.Environment))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Initialize tracing (no-op unless an OTLP endpoint is configured)
	shutdownTracing, err := tracing.Init(ctx, log, "moodtunes", cfg.Environment, cfg.OTLPEndpoint)
	if err != nil {
		log.Error("failed to initialize tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Connect to Postgres and apply migrations
	pool, err := database.NewConnectionPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Migrate(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Error("failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 5. Optional Redis for the session revocation list
	var redisClient *redis.Client
	var revocations session.RevocationStore
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(cfg.RedisURL)
		if err != nil {
			log.Error("failed to connect to Redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer redisClient.Close()
		revocations = session.NewRedisRevocationStore(redisClient)
		log.Info("session revocation list backed by Redis")
	} else {
		revocations = session.NewMemoryRevocationStore()
		log.Info("session revocation list kept in memory")
	}

	// 6. Initialize repositories
	db := pool.GetDB()
	userRepo := repository.NewPostgresUserRepository(db, log)
	moodRepo := repository.NewPostgresMoodRepository(db, log)
	playlistRepo := repository.NewPostgresPlaylistRepository(db, log)

	// 7. Initialize collaborators and services
	emotionClassifier := classifier.NewRandom()
	trackCatalog := catalog.NewStatic()
	moodFeed := feed.NewHub()

	authService := service.NewAuthService(userRepo, log)
	moodService := service.NewMoodService(emotionClassifier, moodRepo, moodFeed, log)
	recService := service.NewRecommendationService(trackCatalog, log)
	playlistService := service.NewPlaylistService(playlistRepo, log)

	// 8. Initialize security components
	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL, revocations, log)
	rateLimiter := ratelimit.NewLimiter(100, time.Minute) // 100 requests per minute per user
	auditLogger := audit.NewLogger(log)

	// 9. Initialize handlers and routes
	secureCookies := cfg.Environment == "production"
	authHandler := handler.NewAuthHandler(authService, sessions, auditLogger, secureCookies, log)
	moodHandler := handler.NewMoodHandler(moodService, auditLogger, cfg.MaxImageBytes, log)
	recHandler := handler.NewRecommendationsHandler(recService, log)
	playlistHandler := handler.NewPlaylistHandler(playlistService, auditLogger, log)
	feedHandler := handler.NewMoodFeedHandler(moodFeed, log, cfg.CORSAllowedOrigins)
	healthHandler := handler.NewHealthHandler(pool, redisClient, log)

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
	mux.Handle("GET /ws/mood-feed", feedHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", healthHandler.Health)
	mux.HandleFunc("GET /readyz", healthHandler.Ready)

	// Chain middleware: request ID -> CORS -> session -> rate limit -> metrics.
	// CORS sits outside the session gate so browser preflights, which carry no
	// cookies, are answered instead of rejected with 401.
	rootHandler := withRequestID(
		middleware.CORSMiddleware(cfg.CORSAllowedOrigins)(
			middleware.SessionMiddleware(sessions, log)(
				middleware.RateLimitMiddleware(rateLimiter, log)(
					metrics.HTTPMetricsMiddleware(mux),
				),
			),
		),
		log,
	)

	// 10. Start HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      otelhttp.NewHandler(rootHandler, "moodtunes"),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("server starting",
		slog.Int("port", cfg.ServerPort),
		slog.String("auth", "session-cookie"),
		slog.Duration("session_ttl", cfg.SessionTTL),
	)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.String("error", err.Error()))
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", slog.String("error", err.Error()))
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	rateLimiter.Stop()
	log.Info("server stopped")
}

type requestIDKey struct{}

// withRequestID attaches a request ID to the context and response headers for traceability
func withRequestID(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		w.Header().Set("X-Request-ID", reqID)

		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		start := time.Now()

		next.ServeHTTP(w, r.WithContext(ctx))

		log.Info("request completed",
			slog.String("request_id", reqID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("duration_ms", time.Since(start)),
		)
	})
}
