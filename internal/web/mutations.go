package web

import (
	"net/http"

	"github.com/unisync/api/internal/config"
	"github.com/unisync/api/internal/handler"
	"github.com/unisync/api/internal/middleware"
	"github.com/unisync/api/internal/model"
	"github.com/unisync/api/internal/service"
)

// Form posts mirror the JSON mutations one-for-one. Failures flash a
// message back onto the dashboard the request came from; the message is
// the same detail the JSON API would have put in the problem document.

// JoinEvent handles POST /student/join-event/{eventId}
func (h *Handler) JoinEvent(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if err := h.events.Join(r.Context(), r.PathValue("eventId"), session.ProfileID); err != nil {
		h.redirectWithError(w, r, "/StudentDashboard", handler.MapServiceError(err).Detail)
		return
	}
	http.Redirect(w, r, "/StudentDashboard", http.StatusSeeOther)
}

// LeaveEvent handles POST /student/leave-event/{eventId}
func (h *Handler) LeaveEvent(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if err := h.events.Leave(r.Context(), r.PathValue("eventId"), session.ProfileID); err != nil {
		h.redirectWithError(w, r, "/StudentDashboard", handler.MapServiceError(err).Detail)
		return
	}
	http.Redirect(w, r, "/StudentDashboard", http.StatusSeeOther)
}

// CreateEvent handles POST /society/add-event (multipart form: title,
// description, poster)
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxPosterBytes+config.MaxFormOverheadBytes)
	if err := r.ParseMultipartForm(config.MaxPosterBytes); err != nil {
		h.redirectWithError(w, r, "/SocietyDashboard", "invalid form or poster too large")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	req := service.CreateEventRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}
	if files, ok := r.MultipartForm.File["poster"]; ok && len(files) > 0 {
		poster, err := handler.OpenPoster(files[0])
		if err != nil {
			h.redirectWithError(w, r, "/SocietyDashboard", "unreadable poster upload")
			return
		}
		req.Poster = poster
	}

	if _, err := h.events.CreateEvent(r.Context(), session.ProfileID, req); err != nil {
		h.redirectWithError(w, r, "/SocietyDashboard", handler.MapServiceError(err).Detail)
		return
	}
	http.Redirect(w, r, "/SocietyDashboard", http.StatusSeeOther)
}

// UpdateEvent handles POST /society/event/{eventId}/update. The form is
// multipart so a replacement poster can ride along; blank fields are
// left unchanged.
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	societyID := withAdminOverride(session)

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxPosterBytes+config.MaxFormOverheadBytes)
	if err := r.ParseMultipartForm(config.MaxPosterBytes); err != nil {
		h.redirectWithError(w, r, session.RedirectURL(), "invalid form or poster too large")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	req := service.UpdateEventRequest{}
	if title := r.FormValue("title"); title != "" {
		req.Title = &title
	}
	if description := r.FormValue("description"); description != "" {
		req.Description = &description
	}
	if files, ok := r.MultipartForm.File["poster"]; ok && len(files) > 0 {
		poster, err := handler.OpenPoster(files[0])
		if err != nil {
			h.redirectWithError(w, r, session.RedirectURL(), "unreadable poster upload")
			return
		}
		req.Poster = poster
	}

	if _, err := h.events.UpdateEvent(r.Context(), r.PathValue("eventId"), societyID, req); err != nil {
		h.redirectWithError(w, r, session.RedirectURL(), handler.MapServiceError(err).Detail)
		return
	}
	http.Redirect(w, r, session.RedirectURL(), http.StatusSeeOther)
}

// DeleteEvent handles POST /society/event/{eventId}/delete
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	societyID := withAdminOverride(session)

	if err := h.events.DeleteEvent(r.Context(), r.PathValue("eventId"), societyID); err != nil {
		h.redirectWithError(w, r, session.RedirectURL(), handler.MapServiceError(err).Detail)
		return
	}
	http.Redirect(w, r, session.RedirectURL(), http.StatusSeeOther)
}

// CreateStudent handles POST /admin/add-student
func (h *Handler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWithError(w, r, "/AdminDashboard", "invalid form submission")
		return
	}

	_, err := h.accounts.CreateStudent(r.Context(), service.CreateStudentRequest{
		Name:       r.FormValue("name"),
		RollNo:     r.FormValue("rollno"),
		Department: r.FormValue("department"),
		Email:      r.FormValue("email"),
		Password:   r.FormValue("password"),
	})
	if err != nil {
		h.redirectWithError(w, r, "/AdminDashboard", handler.MapServiceError(err).Detail)
		return
	}
	http.Redirect(w, r, "/AdminDashboard", http.StatusSeeOther)
}

// DeleteStudent handles POST /admin/student/{id}/delete
func (h *Handler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.DeleteStudent(r.Context(), r.PathValue("id")); err != nil {
		h.redirectWithError(w, r, "/AdminDashboard", handler.MapServiceError(err).Detail)
		return
	}
	http.Redirect(w, r, "/AdminDashboard", http.StatusSeeOther)
}

// CreateSociety handles POST /admin/add-society
func (h *Handler) CreateSociety(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWithError(w, r, "/AdminDashboard", "invalid form submission")
		return
	}

	_, err := h.accounts.CreateSociety(r.Context(), service.CreateSocietyRequest{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	})
	if err != nil {
		h.redirectWithError(w, r, "/AdminDashboard", handler.MapServiceError(err).Detail)
		return
	}
	http.Redirect(w, r, "/AdminDashboard", http.StatusSeeOther)
}

// DeleteSociety handles POST /admin/society/{id}/delete
func (h *Handler) DeleteSociety(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.DeleteSociety(r.Context(), r.PathValue("id")); err != nil {
		h.redirectWithError(w, r, "/AdminDashboard", handler.MapServiceError(err).Detail)
		return
	}
	http.Redirect(w, r, "/AdminDashboard", http.StatusSeeOther)
}

// withAdminOverride returns the session's society id, or empty for an
// admin so the ownership check is skipped.
func withAdminOverride(session *model.Session) string {
	if session.Role == model.RoleAdmin {
		return ""
	}
	return session.ProfileID
}
