package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/yourorg/moodtunes/internal/observability/metrics"
	"github.com/yourorg/moodtunes/internal/security/audit"
	"github.com/yourorg/moodtunes/internal/security/middleware"
	"github.com/yourorg/moodtunes/internal/security/session"
	"github.com/yourorg/moodtunes/internal/service"
)

// AuthHandler handles registration, login, logout, and the current-user
// endpoint. Login and registration set the session cookie; logout clears it
// and revokes the token.
type AuthHandler struct {
	authService   *service.AuthService
	sessions      *session.Manager
	audit         *audit.Logger
	secureCookies bool
	logger        *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	authService *service.AuthService,
	sessions *session.Manager,
	auditLog *audit.Logger,
	secureCookies bool,
	logger *slog.Logger,
) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthHandler{
		authService:   authService,
		sessions:      sessions,
		audit:         auditLog,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserSummary is the public shape of a user
type UserSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Register handles POST /api/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode register request", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
		return
	}

	user, err := h.authService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.audit.LogRegistration(r.Context(), req.Username, "failed")
		writeError(w, h.logger, err)
		return
	}

	token, expiresAt, err := h.sessions.Issue(user)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.setSessionCookie(w, token, expiresAt)

	h.audit.LogRegistration(r.Context(), user.Username, "ok")
	metrics.ObserveSessionIssued("register")

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "user registered successfully",
		"user":    UserSummary{ID: user.ID, Username: user.Username},
	})
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode login request", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
		return
	}

	user, err := h.authService.VerifyCredentials(r.Context(), req.Username, req.Password)
	if err != nil {
		h.audit.LogLogin(r.Context(), req.Username, "failed")
		writeError(w, h.logger, err)
		return
	}

	token, expiresAt, err := h.sessions.Issue(user)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.setSessionCookie(w, token, expiresAt)

	h.audit.LogLogin(r.Context(), user.Username, "ok")
	metrics.ObserveSessionIssued("login")
	h.logger.Info("user logged in", slog.Int64("user_id", user.ID))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "login successful",
		"user":    UserSummary{ID: user.ID, Username: user.Username},
	})
}

// Logout handles POST /api/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentityFromContext(r.Context())

	if cookie, err := r.Cookie(session.CookieName); err == nil {
		if err := h.sessions.Revoke(r.Context(), cookie.Value); err != nil {
			h.logger.Warn("session revocation failed", slog.String("error", err.Error()))
		}
	}
	h.clearSessionCookie(w)

	if identity != nil {
		h.audit.LogLogout(r.Context(), identity.UserID, identity.Username)
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out successfully"})
}

// Me handles GET /api/user
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentityFromContext(r.Context())
	if identity == nil {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user": UserSummary{ID: identity.UserID, Username: identity.Username},
	})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
