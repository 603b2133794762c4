package handler

import (
	"context"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/unisync/api/internal/config"
	"github.com/unisync/api/internal/middleware"
	"github.com/unisync/api/internal/model"
	"github.com/unisync/api/internal/service"
)

// EventsService defines the event operations the event and student
// handlers need
type EventsService interface {
	CreateEvent(ctx context.Context, societyID string, req service.CreateEventRequest) (*model.Event, error)
	GetEvent(ctx context.Context, eventID string) (*model.EventWithSociety, error)
	UpdateEvent(ctx context.Context, eventID, societyID string, req service.UpdateEventRequest) (*model.Event, error)
	DeleteEvent(ctx context.Context, eventID, societyID string) error
	Participants(ctx context.Context, eventID, societyID string) ([]*model.Participant, error)
	ListEvents(ctx context.Context, filter model.EventFilter) (*model.EventPage, error)
	Join(ctx context.Context, eventID, studentID string) error
	Leave(ctx context.Context, eventID, studentID string) error
	StudentDashboardFor(ctx context.Context, studentID string) (*service.StudentDashboard, error)
	SocietyDashboardFor(ctx context.Context, societyID string) (*service.SocietyDashboard, error)
	PosterURL(ctx context.Context, eventID string) (string, error)
}

// EventHandler handles event publishing and browsing endpoints
type EventHandler struct {
	eventService EventsService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService EventsService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// Create handles POST /api/mobile/society/add-event (multipart form:
// title, description, poster)
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxPosterBytes+config.MaxFormOverheadBytes)
	if err := r.ParseMultipartForm(config.MaxPosterBytes); err != nil {
		WriteError(w, model.NewBadRequestError("invalid multipart form or poster too large"))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	poster, err := formPoster(r)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	event, err := h.eventService.CreateEvent(r.Context(), session.ProfileID, service.CreateEventRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Poster:      poster,
	})
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, event)
}

// Get handles GET /api/mobile/event/{eventId}
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	event, err := h.eventService.GetEvent(r.Context(), r.PathValue("eventId"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, event)
}

// Update handles PUT /api/mobile/event/{eventId}. The body is either a
// JSON patch or, when a new poster is included, a multipart form.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	societyID := session.ProfileID
	if session.Role == model.RoleAdmin {
		societyID = "" // admins bypass the ownership check
	}

	req, problem := decodeEventPatch(w, r)
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}
	if problem != nil {
		WriteError(w, problem)
		return
	}

	event, err := h.eventService.UpdateEvent(r.Context(), r.PathValue("eventId"), societyID, *req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, event)
}

// Delete handles DELETE /api/mobile/event/{eventId}
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	societyID := session.ProfileID
	if session.Role == model.RoleAdmin {
		societyID = ""
	}

	if err := h.eventService.DeleteEvent(r.Context(), r.PathValue("eventId"), societyID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteNoContent(w)
}

// Participants handles GET /api/mobile/event/{eventId}/participants
func (h *EventHandler) Participants(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	societyID := session.ProfileID
	if session.Role == model.RoleAdmin {
		societyID = ""
	}

	participants, err := h.eventService.Participants(r.Context(), r.PathValue("eventId"), societyID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, participants)
}

// List handles GET /api/mobile/events and GET /api/mobile/events/search
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := model.EventFilter{
		Search: r.URL.Query().Get("q"),
		Cursor: r.URL.Query().Get("cursor"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			WriteError(w, model.NewBadRequestError("limit must be a positive integer"))
			return
		}
		filter.Limit = limit
	}

	page, err := h.eventService.ListEvents(r.Context(), filter)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteCollection(w, http.StatusOK, page.Events, &PaginationInfo{
		Cursor:  page.Cursor,
		HasMore: page.HasMore,
	})
}

// SocietyDashboard handles GET /api/mobile/society/dashboard
func (h *EventHandler) SocietyDashboard(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())

	dashboard, err := h.eventService.SocietyDashboardFor(r.Context(), session.ProfileID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, dashboard)
}

// Poster handles GET /api/mobile/event/{eventId}/poster with a redirect
// to a short-lived URL on the blob store.
func (h *EventHandler) Poster(w http.ResponseWriter, r *http.Request) {
	url, err := h.eventService.PosterURL(r.Context(), r.PathValue("eventId"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

// decodeEventPatch reads an event update from either a JSON body or a
// multipart form (the latter when a replacement poster is attached).
func decodeEventPatch(w http.ResponseWriter, r *http.Request) (*service.UpdateEventRequest, *model.ProblemDetails) {
	contentType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if contentType == "multipart/form-data" {
		r.Body = http.MaxBytesReader(w, r.Body, config.MaxPosterBytes+config.MaxFormOverheadBytes)
		if err := r.ParseMultipartForm(config.MaxPosterBytes); err != nil {
			return nil, model.NewBadRequestError("invalid multipart form or poster too large")
		}

		req := &service.UpdateEventRequest{}
		if values, ok := r.MultipartForm.Value["title"]; ok && len(values) > 0 {
			req.Title = &values[0]
		}
		if values, ok := r.MultipartForm.Value["description"]; ok && len(values) > 0 {
			req.Description = &values[0]
		}
		if files, ok := r.MultipartForm.File["poster"]; ok && len(files) > 0 {
			poster, err := OpenPoster(files[0])
			if err != nil {
				return nil, model.NewBadRequestError("unreadable poster upload")
			}
			req.Poster = poster
		}
		return req, nil
	}

	var body struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
	}
	if err := DecodeJSON(r, &body); err != nil {
		return nil, model.NewBadRequestError("invalid request body")
	}
	return &service.UpdateEventRequest{Title: body.Title, Description: body.Description}, nil
}

// formPoster extracts the required poster file from a parsed multipart
// form.
func formPoster(r *http.Request) (*service.PosterUpload, error) {
	files, ok := r.MultipartForm.File["poster"]
	if !ok || len(files) == 0 {
		return nil, service.ErrPosterRequired
	}
	return OpenPoster(files[0])
}

// OpenPoster turns an uploaded multipart file into a poster upload,
// inferring the content type from the filename when the part carries
// none. Shared with the page adapter's event forms.
func OpenPoster(header *multipart.FileHeader) (*service.PosterUpload, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		// Fall back to the filename extension
		name := strings.ToLower(header.Filename)
		switch {
		case strings.HasSuffix(name, ".png"):
			contentType = "image/png"
		case strings.HasSuffix(name, ".jpg"), strings.HasSuffix(name, ".jpeg"):
			contentType = "image/jpeg"
		}
	}

	return &service.PosterUpload{
		Body:        file,
		Size:        header.Size,
		ContentType: contentType,
	}, nil
}
