package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/unisync/api/internal/config"
	"github.com/unisync/api/internal/middleware"
	"github.com/unisync/api/internal/model"
	"github.com/unisync/api/internal/service"
)

// AuthService defines the auth operations the handler needs
type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (*model.Session, error)
	Logout(ctx context.Context, token string) error
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService AuthService
	session     config.SessionConfig
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, session config.SessionConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		session:     session,
	}
}

// LoginRequest represents the login endpoint request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionUserResponse represents the authenticated account in API responses
type SessionUserResponse struct {
	UserID    string `json:"user_id"`
	ProfileID string `json:"profile_id,omitempty"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	Role      string `json:"role"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	Success     bool                `json:"success"`
	User        SessionUserResponse `json:"user"`
	Token       string              `json:"token"`
	RedirectURL string              `json:"redirectUrl"`
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	session, err := h.authService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrProfileMissing) {
			slog.Error("login rejected, account has no profile record",
				slog.String("email", req.Email),
				slog.String("request_id", middleware.GetRequestID(r.Context())),
			)
		}
		WriteError(w, MapServiceError(err))
		return
	}

	h.setCookie(w, session.Token, int(h.session.TTL.Seconds()))
	WriteJSON(w, http.StatusOK, LoginResponse{
		Success:     true,
		User:        toSessionUserResponse(session),
		Token:       session.Token,
		RedirectURL: session.RedirectURL(),
	})
}

// Logout handles POST /api/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session != nil {
		if err := h.authService.Logout(r.Context(), session.Token); err != nil {
			WriteError(w, MapServiceError(err))
			return
		}
	}
	h.setCookie(w, "", -1)
	WriteData(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me handles GET /api/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session == nil {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}
	WriteData(w, http.StatusOK, toSessionUserResponse(session))
}

func (h *AuthHandler) setCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.session.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func toSessionUserResponse(session *model.Session) SessionUserResponse {
	return SessionUserResponse{
		UserID:    session.UserID,
		ProfileID: session.ProfileID,
		Email:     session.Email,
		Name:      session.Name,
		Role:      string(session.Role),
	}
}
