// Package web is the server-rendered page adapter. It is a thin client
// of the same services the JSON API uses: identical authentication,
// identical authorization, flash-message redirects instead of JSON
// problem documents.
package web

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/unisync/api/internal/config"
	"github.com/unisync/api/internal/middleware"
	"github.com/unisync/api/internal/model"
	"github.com/unisync/api/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

// AuthService defines the auth operations the pages need
type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (*model.Session, error)
	Logout(ctx context.Context, token string) error
}

// EventsService defines the dashboard composition and event mutations
// the pages need
type EventsService interface {
	StudentDashboardFor(ctx context.Context, studentID string) (*service.StudentDashboard, error)
	SocietyDashboardFor(ctx context.Context, societyID string) (*service.SocietyDashboard, error)
	CreateEvent(ctx context.Context, societyID string, req service.CreateEventRequest) (*model.Event, error)
	UpdateEvent(ctx context.Context, eventID, societyID string, req service.UpdateEventRequest) (*model.Event, error)
	DeleteEvent(ctx context.Context, eventID, societyID string) error
	Join(ctx context.Context, eventID, studentID string) error
	Leave(ctx context.Context, eventID, studentID string) error
}

// AccountsService defines the account operations the admin page needs
type AccountsService interface {
	ListStudents(ctx context.Context) ([]*model.StudentAccount, error)
	ListSocieties(ctx context.Context) ([]*model.SocietyAccount, error)
	CreateStudent(ctx context.Context, req service.CreateStudentRequest) (*model.StudentAccount, error)
	CreateSociety(ctx context.Context, req service.CreateSocietyRequest) (*model.SocietyAccount, error)
	DeleteStudent(ctx context.Context, id string) error
	DeleteSociety(ctx context.Context, id string) error
}

// Handler serves the HTML pages.
type Handler struct {
	auth     AuthService
	events   EventsService
	accounts AccountsService
	session  config.SessionConfig
	tmpl     *template.Template
}

// New creates the page handler, parsing the embedded templates.
func New(auth AuthService, events EventsService, accounts AccountsService, session config.SessionConfig) (*Handler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Handler{
		auth:     auth,
		events:   events,
		accounts: accounts,
		session:  session,
		tmpl:     tmpl,
	}, nil
}

// LoginPage handles GET /
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "login.html", map[string]interface{}{
		"Error": r.URL.Query().Get("error"),
	})
}

// Login handles POST /login (form submission)
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWithError(w, r, "/", "invalid form submission")
		return
	}

	session, err := h.auth.Authenticate(r.Context(), r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		// Credential failures and operational failures read the same
		// on the page; details stay in the logs.
		h.redirectWithError(w, r, "/", "invalid email or password")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.session.CookieName,
		Value:    session.Token,
		Path:     "/",
		MaxAge:   int(h.session.TTL.Seconds()),
		HttpOnly: true,
		Secure:   h.session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, session.RedirectURL(), http.StatusSeeOther)
}

// Logout handles GET /logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.session.CookieName); err == nil {
		_ = h.auth.Logout(r.Context(), cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     h.session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// AdminDashboard handles GET /AdminDashboard
func (h *Handler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	students, err := h.accounts.ListStudents(r.Context())
	if err != nil {
		h.renderError(w, err)
		return
	}
	societies, err := h.accounts.ListSocieties(r.Context())
	if err != nil {
		h.renderError(w, err)
		return
	}
	h.render(w, "admin.html", map[string]interface{}{
		"Session":   middleware.GetSession(r.Context()),
		"Students":  students,
		"Societies": societies,
		"Error":     r.URL.Query().Get("error"),
	})
}

// SocietyDashboard handles GET /SocietyDashboard
func (h *Handler) SocietyDashboard(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	dashboard, err := h.events.SocietyDashboardFor(r.Context(), session.ProfileID)
	if err != nil {
		h.renderError(w, err)
		return
	}
	h.render(w, "society.html", map[string]interface{}{
		"Session":   session,
		"Dashboard": dashboard,
		"Error":     r.URL.Query().Get("error"),
	})
}

// StudentDashboard handles GET /StudentDashboard
func (h *Handler) StudentDashboard(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	dashboard, err := h.events.StudentDashboardFor(r.Context(), session.ProfileID)
	if err != nil {
		h.renderError(w, err)
		return
	}
	h.render(w, "student.html", map[string]interface{}{
		"Session":   session,
		"Dashboard": dashboard,
		"Error":     r.URL.Query().Get("error"),
	})
}

func (h *Handler) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("template render failed", slog.String("template", name), slog.Any("error", err))
	}
}

func (h *Handler) renderError(w http.ResponseWriter, err error) {
	slog.Error("page render failed", slog.Any("error", err))
	w.WriteHeader(http.StatusInternalServerError)
	h.render(w, "error.html", nil)
}

func (h *Handler) redirectWithError(w http.ResponseWriter, r *http.Request, path, message string) {
	http.Redirect(w, r, path+"?error="+url.QueryEscape(message), http.StatusSeeOther)
}
