package audit

import (
	"context"
	"log/slog"
	"time"
)

// Logger records security-relevant actions as structured log entries
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates an audit logger
func NewLogger(logger *slog.Logger) *Logger {
	return &Logger{logger: logger}
}

// LogAction writes one audit entry
func (al *Logger) LogAction(ctx context.Context, userID int64, username, action, resource, status string) {
	al.logger.Info("audit",
		slog.String("action", action),
		slog.String("resource", resource),
		slog.Int64("user_id", userID),
		slog.String("username", username),
		slog.String("status", status),
		slog.Time("timestamp", time.Now()),
	)
}

// LogRegistration records a registration attempt
func (al *Logger) LogRegistration(ctx context.Context, username, status string) {
	al.LogAction(ctx, 0, username, "register", "account", status)
}

// LogLogin records a login attempt
func (al *Logger) LogLogin(ctx context.Context, username, status string) {
	al.LogAction(ctx, 0, username, "login", "session", status)
}

// LogLogout records a session destruction
func (al *Logger) LogLogout(ctx context.Context, userID int64, username string) {
	al.LogAction(ctx, userID, username, "logout", "session", "ok")
}

// LogAnalysis records an emotion analysis that appended to the mood ledger
func (al *Logger) LogAnalysis(ctx context.Context, userID int64, username, status string) {
	al.LogAction(ctx, userID, username, "analyze", "mood_record", status)
}

// LogPlaylistSave records a playlist save
func (al *Logger) LogPlaylistSave(ctx context.Context, userID int64, username, status string) {
	al.LogAction(ctx, userID, username, "save", "playlist", status)
}
