package web

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/unisync/api/internal/config"
	"github.com/unisync/api/internal/middleware"
	"github.com/unisync/api/internal/model"
	"github.com/unisync/api/internal/service"
)

type mockAuth struct {
	authenticateFunc func(ctx context.Context, email, password string) (*model.Session, error)
	logoutFunc       func(ctx context.Context, token string) error
}

func (m *mockAuth) Authenticate(ctx context.Context, email, password string) (*model.Session, error) {
	if m.authenticateFunc != nil {
		return m.authenticateFunc(ctx, email, password)
	}
	return nil, service.ErrInvalidCredentials
}

func (m *mockAuth) Logout(ctx context.Context, token string) error {
	if m.logoutFunc != nil {
		return m.logoutFunc(ctx, token)
	}
	return nil
}

type mockEvents struct {
	createEventFunc func(ctx context.Context, societyID string, req service.CreateEventRequest) (*model.Event, error)
	updateEventFunc func(ctx context.Context, eventID, societyID string, req service.UpdateEventRequest) (*model.Event, error)
	deleteEventFunc func(ctx context.Context, eventID, societyID string) error
	joinFunc        func(ctx context.Context, eventID, studentID string) error
	leaveFunc       func(ctx context.Context, eventID, studentID string) error
}

func (m *mockEvents) StudentDashboardFor(ctx context.Context, studentID string) (*service.StudentDashboard, error) {
	return &service.StudentDashboard{
		Student: &model.StudentAccount{Student: model.Student{ID: studentID, Name: "Ada"}},
	}, nil
}

func (m *mockEvents) SocietyDashboardFor(ctx context.Context, societyID string) (*service.SocietyDashboard, error) {
	return &service.SocietyDashboard{
		Society: &model.SocietyAccount{Society: model.Society{ID: societyID, Name: "Tech Club"}},
	}, nil
}

func (m *mockEvents) CreateEvent(ctx context.Context, societyID string, req service.CreateEventRequest) (*model.Event, error) {
	if m.createEventFunc != nil {
		return m.createEventFunc(ctx, societyID, req)
	}
	return &model.Event{ID: "event:1"}, nil
}

func (m *mockEvents) UpdateEvent(ctx context.Context, eventID, societyID string, req service.UpdateEventRequest) (*model.Event, error) {
	if m.updateEventFunc != nil {
		return m.updateEventFunc(ctx, eventID, societyID, req)
	}
	return &model.Event{ID: eventID}, nil
}

func (m *mockEvents) DeleteEvent(ctx context.Context, eventID, societyID string) error {
	if m.deleteEventFunc != nil {
		return m.deleteEventFunc(ctx, eventID, societyID)
	}
	return nil
}

func (m *mockEvents) Join(ctx context.Context, eventID, studentID string) error {
	if m.joinFunc != nil {
		return m.joinFunc(ctx, eventID, studentID)
	}
	return nil
}

func (m *mockEvents) Leave(ctx context.Context, eventID, studentID string) error {
	if m.leaveFunc != nil {
		return m.leaveFunc(ctx, eventID, studentID)
	}
	return nil
}

type mockAccounts struct {
	createStudentFunc func(ctx context.Context, req service.CreateStudentRequest) (*model.StudentAccount, error)
	createSocietyFunc func(ctx context.Context, req service.CreateSocietyRequest) (*model.SocietyAccount, error)
	deleteStudentFunc func(ctx context.Context, id string) error
	deleteSocietyFunc func(ctx context.Context, id string) error
}

func (m *mockAccounts) ListStudents(ctx context.Context) ([]*model.StudentAccount, error) {
	return nil, nil
}

func (m *mockAccounts) ListSocieties(ctx context.Context) ([]*model.SocietyAccount, error) {
	return nil, nil
}

func (m *mockAccounts) CreateStudent(ctx context.Context, req service.CreateStudentRequest) (*model.StudentAccount, error) {
	if m.createStudentFunc != nil {
		return m.createStudentFunc(ctx, req)
	}
	return &model.StudentAccount{}, nil
}

func (m *mockAccounts) CreateSociety(ctx context.Context, req service.CreateSocietyRequest) (*model.SocietyAccount, error) {
	if m.createSocietyFunc != nil {
		return m.createSocietyFunc(ctx, req)
	}
	return &model.SocietyAccount{}, nil
}

func (m *mockAccounts) DeleteStudent(ctx context.Context, id string) error {
	if m.deleteStudentFunc != nil {
		return m.deleteStudentFunc(ctx, id)
	}
	return nil
}

func (m *mockAccounts) DeleteSociety(ctx context.Context, id string) error {
	if m.deleteSocietyFunc != nil {
		return m.deleteSocietyFunc(ctx, id)
	}
	return nil
}

func newTestHandler(t *testing.T, auth AuthService) *Handler {
	return newTestHandlerWith(t, auth, nil, nil)
}

func newTestHandlerWith(t *testing.T, auth AuthService, events *mockEvents, accounts *mockAccounts) *Handler {
	t.Helper()
	if auth == nil {
		auth = &mockAuth{}
	}
	if events == nil {
		events = &mockEvents{}
	}
	if accounts == nil {
		accounts = &mockAccounts{}
	}
	h, err := New(auth, events, accounts, config.SessionConfig{
		TTL:        6 * time.Hour,
		CookieName: "unisync_session",
	})
	if err != nil {
		t.Fatalf("failed to build handler: %v", err)
	}
	return h
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func withPageSession(req *http.Request, session *model.Session) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.SessionKey, session)
	return req.WithContext(ctx)
}

// routed runs a handler func through a mux so PathValue works.
func routed(pattern string, fn http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, fn)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func TestLogin_FormSuccess_RedirectsByRole(t *testing.T) {
	h := newTestHandler(t, &mockAuth{
		authenticateFunc: func(ctx context.Context, email, password string) (*model.Session, error) {
			return &model.Session{Token: "tok", Role: model.RoleSociety, ProfileID: "society:tech"}, nil
		},
	})

	rr := httptest.NewRecorder()
	h.Login(rr, postForm("/login", url.Values{"email": {"tech@campus.edu"}, "password": {"longenough"}}))

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/SocietyDashboard" {
		t.Errorf("expected /SocietyDashboard, got %s", loc)
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != "tok" {
		t.Error("expected session cookie to be set")
	}
}

func TestLogin_FormFailure_FlashRedirect(t *testing.T) {
	h := newTestHandler(t, &mockAuth{})

	rr := httptest.NewRecorder()
	h.Login(rr, postForm("/login", url.Values{"email": {"x@y.co"}, "password": {"bad"}}))

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}
	loc := rr.Header().Get("Location")
	if !strings.HasPrefix(loc, "/?error=") {
		t.Errorf("expected flash redirect, got %s", loc)
	}
	if len(rr.Result().Cookies()) != 0 {
		t.Error("no cookie on failed login")
	}
}

func TestLoginPage_ShowsFlash(t *testing.T) {
	h := newTestHandler(t, &mockAuth{})

	rr := httptest.NewRecorder()
	h.LoginPage(rr, httptest.NewRequest(http.MethodGet, "/?error=invalid+email+or+password", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "invalid email or password") {
		t.Error("expected flash message in page")
	}
}

func TestLogout_ClearsCookieAndRedirects(t *testing.T) {
	revoked := ""
	h := newTestHandler(t, &mockAuth{
		logoutFunc: func(ctx context.Context, token string) error {
			revoked = token
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "unisync_session", Value: "tok"})
	rr := httptest.NewRecorder()
	h.Logout(rr, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}
	if revoked != "tok" {
		t.Error("expected session to be revoked")
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Error("expected cookie to be cleared")
	}
}

// ============================================================================
// Form Mutation Tests
// ============================================================================

func studentPageSession() *model.Session {
	return &model.Session{Token: "tok", Role: model.RoleStudent, ProfileID: "student:ada"}
}

func societyPageSession() *model.Session {
	return &model.Session{Token: "tok", Role: model.RoleSociety, ProfileID: "society:tech"}
}

func TestJoinEventForm_RedirectsToDashboard(t *testing.T) {
	var gotEvent, gotStudent string
	h := newTestHandlerWith(t, nil, &mockEvents{
		joinFunc: func(ctx context.Context, eventID, studentID string) error {
			gotEvent, gotStudent = eventID, studentID
			return nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/student/join-event/event:1", nil)
	req = withPageSession(req, studentPageSession())
	rr := routed("POST /student/join-event/{eventId}", h.JoinEvent, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/StudentDashboard" {
		t.Errorf("expected /StudentDashboard, got %s", loc)
	}
	if gotEvent != "event:1" || gotStudent != "student:ada" {
		t.Errorf("unexpected join call %s/%s", gotEvent, gotStudent)
	}
}

func TestJoinEventForm_DuplicateFlashesError(t *testing.T) {
	h := newTestHandlerWith(t, nil, &mockEvents{
		joinFunc: func(ctx context.Context, eventID, studentID string) error {
			return service.ErrAlreadyJoined
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/student/join-event/event:1", nil)
	req = withPageSession(req, studentPageSession())
	rr := routed("POST /student/join-event/{eventId}", h.JoinEvent, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); !strings.HasPrefix(loc, "/StudentDashboard?error=") {
		t.Errorf("expected flash redirect, got %s", loc)
	}
}

func TestLeaveEventForm_UsesSessionProfile(t *testing.T) {
	var gotStudent string
	h := newTestHandlerWith(t, nil, &mockEvents{
		leaveFunc: func(ctx context.Context, eventID, studentID string) error {
			gotStudent = studentID
			return nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/student/leave-event/event:1", nil)
	req = withPageSession(req, studentPageSession())
	rr := routed("POST /student/leave-event/{eventId}", h.LeaveEvent, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}
	if gotStudent != "student:ada" {
		t.Errorf("expected session profile, got %q", gotStudent)
	}
}

func TestCreateEventForm_PublishesWithPoster(t *testing.T) {
	var gotSociety string
	var gotReq service.CreateEventRequest
	h := newTestHandlerWith(t, nil, &mockEvents{
		createEventFunc: func(ctx context.Context, societyID string, req service.CreateEventRequest) (*model.Event, error) {
			gotSociety = societyID
			gotReq = req
			return &model.Event{ID: "event:1"}, nil
		},
	}, nil)

	req := multipartForm(t, "/society/add-event", map[string]string{
		"title":       "Hack Night",
		"description": "Builds all evening",
	}, "poster.png", []byte("png-bytes"))
	req = withPageSession(req, societyPageSession())
	rr := httptest.NewRecorder()
	h.CreateEvent(rr, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d: %s", rr.Code, rr.Body.String())
	}
	if loc := rr.Header().Get("Location"); loc != "/SocietyDashboard" {
		t.Errorf("expected /SocietyDashboard, got %s", loc)
	}
	if gotSociety != "society:tech" {
		t.Errorf("expected session society, got %q", gotSociety)
	}
	if gotReq.Title != "Hack Night" || gotReq.Poster == nil {
		t.Errorf("unexpected create request %+v", gotReq)
	}
}

func TestCreateEventForm_ErrorFlashesDetail(t *testing.T) {
	h := newTestHandlerWith(t, nil, &mockEvents{
		createEventFunc: func(ctx context.Context, societyID string, req service.CreateEventRequest) (*model.Event, error) {
			return nil, service.ErrPosterRequired
		},
	}, nil)

	req := multipartForm(t, "/society/add-event", map[string]string{
		"title":       "Hack Night",
		"description": "d",
	}, "", nil)
	req = withPageSession(req, societyPageSession())
	rr := httptest.NewRecorder()
	h.CreateEvent(rr, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); !strings.HasPrefix(loc, "/SocietyDashboard?error=") {
		t.Errorf("expected flash redirect, got %s", loc)
	}
}

func TestUpdateEventForm_AdminSkipsOwnership(t *testing.T) {
	var gotSociety string
	h := newTestHandlerWith(t, nil, &mockEvents{
		updateEventFunc: func(ctx context.Context, eventID, societyID string, req service.UpdateEventRequest) (*model.Event, error) {
			gotSociety = societyID
			return &model.Event{ID: eventID}, nil
		},
	}, nil)

	req := multipartForm(t, "/society/event/event:1/update", map[string]string{
		"title": "Renamed",
	}, "", nil)
	req = withPageSession(req, &model.Session{Token: "tok", Role: model.RoleAdmin, ProfileID: "user:root"})
	rr := routed("POST /society/event/{eventId}/update", h.UpdateEvent, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}
	if gotSociety != "" {
		t.Errorf("expected ownership check skipped for admin, got %q", gotSociety)
	}
	if loc := rr.Header().Get("Location"); loc != "/AdminDashboard" {
		t.Errorf("expected admin to land back on /AdminDashboard, got %s", loc)
	}
}

func TestDeleteEventForm_NonOwnerFlashesError(t *testing.T) {
	h := newTestHandlerWith(t, nil, &mockEvents{
		deleteEventFunc: func(ctx context.Context, eventID, societyID string) error {
			return service.ErrNotEventOwner
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/society/event/event:1/delete", nil)
	req = withPageSession(req, societyPageSession())
	rr := routed("POST /society/event/{eventId}/delete", h.DeleteEvent, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); !strings.HasPrefix(loc, "/SocietyDashboard?error=") {
		t.Errorf("expected flash redirect, got %s", loc)
	}
}

func TestCreateStudentForm_Redirects(t *testing.T) {
	var gotReq service.CreateStudentRequest
	h := newTestHandlerWith(t, nil, nil, &mockAccounts{
		createStudentFunc: func(ctx context.Context, req service.CreateStudentRequest) (*model.StudentAccount, error) {
			gotReq = req
			return &model.StudentAccount{}, nil
		},
	})

	rr := httptest.NewRecorder()
	h.CreateStudent(rr, postForm("/admin/add-student", url.Values{
		"name":     {"Ada Lovelace"},
		"rollno":   {"CS-042"},
		"email":    {"ada@campus.edu"},
		"password": {"strong-password"},
	}))

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/AdminDashboard" {
		t.Errorf("expected /AdminDashboard, got %s", loc)
	}
	if gotReq.Name != "Ada Lovelace" || gotReq.RollNo != "CS-042" {
		t.Errorf("unexpected create request %+v", gotReq)
	}
}

func TestCreateSocietyForm_DuplicateEmailFlashes(t *testing.T) {
	h := newTestHandlerWith(t, nil, nil, &mockAccounts{
		createSocietyFunc: func(ctx context.Context, req service.CreateSocietyRequest) (*model.SocietyAccount, error) {
			return nil, service.ErrEmailAlreadyExists
		},
	})

	rr := httptest.NewRecorder()
	h.CreateSociety(rr, postForm("/admin/add-society", url.Values{
		"name": {"Tech Club"}, "email": {"taken@campus.edu"}, "password": {"longenough"},
	}))

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}
	loc := rr.Header().Get("Location")
	if !strings.HasPrefix(loc, "/AdminDashboard?error=") {
		t.Errorf("expected flash redirect, got %s", loc)
	}
}

func TestDeleteStudentForm_PassesID(t *testing.T) {
	var gotID string
	h := newTestHandlerWith(t, nil, nil, &mockAccounts{
		deleteStudentFunc: func(ctx context.Context, id string) error {
			gotID = id
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/admin/student/student:1/delete", nil)
	rr := routed("POST /admin/student/{id}/delete", h.DeleteStudent, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}
	if gotID != "student:1" {
		t.Errorf("expected student:1, got %q", gotID)
	}
}

func TestDeleteSocietyForm_PassesID(t *testing.T) {
	var gotID string
	h := newTestHandlerWith(t, nil, nil, &mockAccounts{
		deleteSocietyFunc: func(ctx context.Context, id string) error {
			gotID = id
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/admin/society/society:tech/delete", nil)
	rr := routed("POST /admin/society/{id}/delete", h.DeleteSociety, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}
	if gotID != "society:tech" {
		t.Errorf("expected society:tech, got %q", gotID)
	}
}

func multipartForm(t *testing.T, path string, fields map[string]string, posterName string, poster []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if posterName != "" {
		part, err := mw.CreateFormFile("poster", posterName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(poster); err != nil {
			t.Fatalf("write poster: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
