package handler

import (
	"net/http"

	"github.com/unisync/api/internal/middleware"
	"github.com/unisync/api/internal/model"
)

// StudentHandler handles student-facing participation endpoints.
// The acting student is always the session's profile; client-supplied
// ids are never trusted for authorization.
type StudentHandler struct {
	eventService EventsService
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(eventService EventsService) *StudentHandler {
	return &StudentHandler{eventService: eventService}
}

// Dashboard handles GET /api/mobile/student/dashboard
func (h *StudentHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())

	dashboard, err := h.eventService.StudentDashboardFor(r.Context(), session.ProfileID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, dashboard)
}

// Join handles POST /api/mobile/student/join-event/{eventId}
func (h *StudentHandler) Join(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())

	if err := h.eventService.Join(r.Context(), r.PathValue("eventId"), session.ProfileID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, map[string]string{"message": "joined event"})
}

// Leave handles POST /api/mobile/student/leave-event/{eventId}
func (h *StudentHandler) Leave(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())

	if err := h.eventService.Leave(r.Context(), r.PathValue("eventId"), session.ProfileID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, map[string]string{"message": "left event"})
}

// MyEvents handles GET /api/mobile/student/{studentId}/events. Students
// may only list their own participation.
func (h *StudentHandler) MyEvents(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	studentID := r.PathValue("studentId")
	if session.Role != model.RoleAdmin && studentID != session.ProfileID {
		WriteError(w, model.NewForbiddenError("cannot list another student's events"))
		return
	}

	page, err := h.eventService.ListEvents(r.Context(), model.EventFilter{StudentID: studentID})
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteCollection(w, http.StatusOK, page.Events, &PaginationInfo{
		Cursor:  page.Cursor,
		HasMore: page.HasMore,
	})
}
