package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/unisync/api/internal/database"
	"github.com/unisync/api/internal/model"
	"github.com/unisync/api/internal/storage"
)

// ============================================================================
// Mock Event Repository
// ============================================================================

type mockEventRepo struct {
	createFunc            func(ctx context.Context, event *model.Event) error
	getFunc               func(ctx context.Context, eventID string) (*model.Event, error)
	updateFunc            func(ctx context.Context, eventID string, updates map[string]interface{}) (*model.Event, error)
	deleteFunc            func(ctx context.Context, eventID string) error
	addParticipantFunc    func(ctx context.Context, eventID, studentID string) (bool, error)
	removeParticipantFunc func(ctx context.Context, eventID, studentID string) error
	listFunc              func(ctx context.Context, filter model.EventFilter) ([]*model.Event, error)
	listCreatedSinceFunc  func(ctx context.Context, since string, limit int) ([]*model.Event, error)
}

func (m *mockEventRepo) Create(ctx context.Context, event *model.Event) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, event)
	}
	return nil
}

func (m *mockEventRepo) Get(ctx context.Context, eventID string) (*model.Event, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, eventID)
	}
	return nil, nil
}

func (m *mockEventRepo) Update(ctx context.Context, eventID string, updates map[string]interface{}) (*model.Event, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, eventID, updates)
	}
	return nil, nil
}

func (m *mockEventRepo) Delete(ctx context.Context, eventID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, eventID)
	}
	return nil
}

func (m *mockEventRepo) AddParticipant(ctx context.Context, eventID, studentID string) (bool, error) {
	if m.addParticipantFunc != nil {
		return m.addParticipantFunc(ctx, eventID, studentID)
	}
	return false, nil
}

func (m *mockEventRepo) RemoveParticipant(ctx context.Context, eventID, studentID string) error {
	if m.removeParticipantFunc != nil {
		return m.removeParticipantFunc(ctx, eventID, studentID)
	}
	return nil
}

func (m *mockEventRepo) List(ctx context.Context, filter model.EventFilter) ([]*model.Event, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockEventRepo) ListCreatedSince(ctx context.Context, since string, limit int) ([]*model.Event, error) {
	if m.listCreatedSinceFunc != nil {
		return m.listCreatedSinceFunc(ctx, since, limit)
	}
	return nil, nil
}

// memEventRepo is a concurrency-safe in-memory event store used where a
// test needs real add/remove semantics instead of canned responses.
type memEventRepo struct {
	mockEventRepo
	mu     sync.Mutex
	events map[string]*model.Event
}

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{events: map[string]*model.Event{}}
}

func (m *memEventRepo) put(event *model.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[event.ID] = event
}

func (m *memEventRepo) Create(ctx context.Context, event *model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if event.ID == "" {
		event.ID = fmt.Sprintf("event:%d", len(m.events)+1)
	}
	clone := *event
	clone.Participants = append([]string(nil), event.Participants...)
	m.events[event.ID] = &clone
	return nil
}

func (m *memEventRepo) Get(ctx context.Context, eventID string) (*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	event, ok := m.events[eventID]
	if !ok {
		return nil, nil
	}
	clone := *event
	clone.Participants = append([]string(nil), event.Participants...)
	return &clone, nil
}

func (m *memEventRepo) AddParticipant(ctx context.Context, eventID, studentID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	event, ok := m.events[eventID]
	if !ok {
		return false, database.ErrNotFound
	}
	if event.HasParticipant(studentID) {
		return true, nil
	}
	event.Participants = append(event.Participants, studentID)
	return false, nil
}

func (m *memEventRepo) RemoveParticipant(ctx context.Context, eventID, studentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	event, ok := m.events[eventID]
	if !ok {
		return database.ErrNotFound
	}
	kept := event.Participants[:0]
	for _, id := range event.Participants {
		if id != studentID {
			kept = append(kept, id)
		}
	}
	event.Participants = kept
	return nil
}

// ============================================================================
// Helper Functions
// ============================================================================

func testEventService(eventRepo EventRepository, societyRepo *mockSocietyRepo, studentRepo *mockStudentRepo, posters storage.BlobStore) *EventService {
	if eventRepo == nil {
		eventRepo = &mockEventRepo{}
	}
	if societyRepo == nil {
		societyRepo = &mockSocietyRepo{}
	}
	if studentRepo == nil {
		studentRepo = &mockStudentRepo{}
	}
	if posters == nil {
		posters = storage.NewMemoryStore()
	}
	return NewEventService(EventServiceConfig{
		EventRepo:   eventRepo,
		SocietyRepo: societyRepo,
		StudentRepo: studentRepo,
		Posters:     posters,
	})
}

func pngUpload(data string) *PosterUpload {
	return &PosterUpload{
		Body:        bytes.NewReader([]byte(data)),
		Size:        int64(len(data)),
		ContentType: "image/png",
	}
}

// ============================================================================
// CreateEvent Tests
// ============================================================================

func TestCreateEvent_Success(t *testing.T) {
	posters := storage.NewMemoryStore()
	var created *model.Event
	svc := testEventService(&mockEventRepo{
		createFunc: func(ctx context.Context, event *model.Event) error {
			created = event
			event.ID = "event:1"
			return nil
		},
	}, nil, nil, posters)

	event, err := svc.CreateEvent(context.Background(), "society:tech", CreateEventRequest{
		Title:       " Hack Night ",
		Description: "An evening of builds.",
		Poster:      pngUpload("png-bytes"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Title != "Hack Night" {
		t.Errorf("expected trimmed title, got %q", event.Title)
	}
	if created.CreatedBy != "society:tech" {
		t.Errorf("unexpected creator %q", created.CreatedBy)
	}
	if created.Poster == "" || !strings.HasPrefix(created.Poster, "posters/") {
		t.Errorf("unexpected poster key %q", created.Poster)
	}
	if data, _, ok := posters.Get(created.Poster); !ok || string(data) != "png-bytes" {
		t.Error("poster blob not stored under the recorded key")
	}
}

func TestCreateEvent_Validation(t *testing.T) {
	svc := testEventService(nil, nil, nil, nil)

	cases := []struct {
		name string
		req  CreateEventRequest
		want error
	}{
		{"missing title", CreateEventRequest{Description: "d", Poster: pngUpload("x")}, ErrTitleRequired},
		{"blank title", CreateEventRequest{Title: "   ", Description: "d", Poster: pngUpload("x")}, ErrTitleRequired},
		{"missing description", CreateEventRequest{Title: "t", Poster: pngUpload("x")}, ErrDescriptionRequired},
		{"missing poster", CreateEventRequest{Title: "t", Description: "d"}, ErrPosterRequired},
		{"long title", CreateEventRequest{Title: strings.Repeat("x", maxTitleLength+1), Description: "d", Poster: pngUpload("x")}, ErrTitleTooLong},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateEvent(context.Background(), "society:1", tc.req); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateEvent_PosterTypeAndSize(t *testing.T) {
	svc := testEventService(nil, nil, nil, nil)

	_, err := svc.CreateEvent(context.Background(), "society:1", CreateEventRequest{
		Title: "t", Description: "d",
		Poster: &PosterUpload{Body: bytes.NewReader([]byte("x")), Size: 1, ContentType: "application/pdf"},
	})
	if !errors.Is(err, ErrPosterInvalidType) {
		t.Errorf("expected ErrPosterInvalidType, got %v", err)
	}

	_, err = svc.CreateEvent(context.Background(), "society:1", CreateEventRequest{
		Title: "t", Description: "d",
		Poster: &PosterUpload{Body: bytes.NewReader(nil), Size: 6 << 20, ContentType: "image/png"},
	})
	if !errors.Is(err, ErrPosterTooLarge) {
		t.Errorf("expected ErrPosterTooLarge, got %v", err)
	}
}

type recordingStore struct {
	*storage.MemoryStore
	deleted []string
}

func (r *recordingStore) Delete(ctx context.Context, key string) error {
	r.deleted = append(r.deleted, key)
	return r.MemoryStore.Delete(ctx, key)
}

func TestCreateEvent_BlobRemovedWhenRecordFails(t *testing.T) {
	posters := &recordingStore{MemoryStore: storage.NewMemoryStore()}
	svc := testEventService(&mockEventRepo{
		createFunc: func(ctx context.Context, event *model.Event) error {
			return database.ErrQuery
		},
	}, nil, nil, posters)

	_, err := svc.CreateEvent(context.Background(), "society:1", CreateEventRequest{
		Title: "t", Description: "d", Poster: pngUpload("orphan"),
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(posters.deleted) != 1 {
		t.Fatalf("expected the orphaned blob to be deleted, got %v", posters.deleted)
	}
	if _, _, ok := posters.Get(posters.deleted[0]); ok {
		t.Error("expected blob gone after delete")
	}
}

// ============================================================================
// UpdateEvent Tests
// ============================================================================

func TestUpdateEvent_OwnershipEnforced(t *testing.T) {
	svc := testEventService(&mockEventRepo{
		getFunc: func(ctx context.Context, eventID string) (*model.Event, error) {
			return &model.Event{ID: eventID, CreatedBy: "society:tech"}, nil
		},
	}, nil, nil, nil)

	_, err := svc.UpdateEvent(context.Background(), "event:1", "society:drama", UpdateEventRequest{Title: strPtr("New")})
	if !errors.Is(err, ErrNotEventOwner) {
		t.Errorf("expected ErrNotEventOwner, got %v", err)
	}
}

func TestUpdateEvent_EmptyPatchFieldRejected(t *testing.T) {
	svc := testEventService(&mockEventRepo{
		getFunc: func(ctx context.Context, eventID string) (*model.Event, error) {
			return &model.Event{ID: eventID, CreatedBy: "society:tech", Title: "Keep"}, nil
		},
	}, nil, nil, nil)

	if _, err := svc.UpdateEvent(context.Background(), "event:1", "society:tech", UpdateEventRequest{Title: strPtr("")}); !errors.Is(err, ErrTitleRequired) {
		t.Errorf("expected ErrTitleRequired, got %v", err)
	}
	if _, err := svc.UpdateEvent(context.Background(), "event:1", "society:tech", UpdateEventRequest{Description: strPtr(" ")}); !errors.Is(err, ErrDescriptionRequired) {
		t.Errorf("expected ErrDescriptionRequired, got %v", err)
	}
}

func TestUpdateEvent_ReplacingPosterDeletesOldBlob(t *testing.T) {
	posters := storage.NewMemoryStore()
	_ = posters.Put(context.Background(), "posters/old-key", bytes.NewReader([]byte("old")), 3, "image/png")

	var applied map[string]interface{}
	svc := testEventService(&mockEventRepo{
		getFunc: func(ctx context.Context, eventID string) (*model.Event, error) {
			return &model.Event{ID: eventID, CreatedBy: "society:tech", Poster: "posters/old-key"}, nil
		},
		updateFunc: func(ctx context.Context, eventID string, updates map[string]interface{}) (*model.Event, error) {
			applied = updates
			return &model.Event{ID: eventID, CreatedBy: "society:tech", Poster: updates["poster"].(string)}, nil
		},
	}, nil, nil, posters)

	updated, err := svc.UpdateEvent(context.Background(), "event:1", "society:tech", UpdateEventRequest{Poster: pngUpload("new")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if applied["poster"] == "posters/old-key" {
		t.Error("expected a fresh poster key")
	}
	if _, _, ok := posters.Get("posters/old-key"); ok {
		t.Error("expected old poster blob to be deleted")
	}
	if _, _, ok := posters.Get(updated.Poster); !ok {
		t.Error("expected new poster blob to exist")
	}
}

// ============================================================================
// DeleteEvent Tests
// ============================================================================

func TestDeleteEvent_RemovesPosterBlob(t *testing.T) {
	posters := storage.NewMemoryStore()
	_ = posters.Put(context.Background(), "posters/k", bytes.NewReader([]byte("x")), 1, "image/png")

	deleted := ""
	svc := testEventService(&mockEventRepo{
		getFunc: func(ctx context.Context, eventID string) (*model.Event, error) {
			return &model.Event{ID: eventID, CreatedBy: "society:tech", Poster: "posters/k"}, nil
		},
		deleteFunc: func(ctx context.Context, eventID string) error {
			deleted = eventID
			return nil
		},
	}, nil, nil, posters)

	if err := svc.DeleteEvent(context.Background(), "event:1", "society:tech"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != "event:1" {
		t.Error("expected record delete")
	}
	if _, _, ok := posters.Get("posters/k"); ok {
		t.Error("expected poster blob to be deleted")
	}
}

func TestDeleteEvent_AdminSkipsOwnership(t *testing.T) {
	svc := testEventService(&mockEventRepo{
		getFunc: func(ctx context.Context, eventID string) (*model.Event, error) {
			return &model.Event{ID: eventID, CreatedBy: "society:tech"}, nil
		},
	}, nil, nil, nil)

	if err := svc.DeleteEvent(context.Background(), "event:1", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// ============================================================================
// Join / Leave Tests
// ============================================================================

func TestJoin_DuplicateRejected(t *testing.T) {
	repo := newMemEventRepo()
	repo.put(&model.Event{ID: "event:1", CreatedBy: "society:tech", Participants: []string{}})
	svc := testEventService(repo, nil, nil, nil)

	if err := svc.Join(context.Background(), "event:1", "student:ada"); err != nil {
		t.Fatalf("first join: %v", err)
	}
	if err := svc.Join(context.Background(), "event:1", "student:ada"); !errors.Is(err, ErrAlreadyJoined) {
		t.Errorf("expected ErrAlreadyJoined, got %v", err)
	}
}

func TestJoin_EventNotFound(t *testing.T) {
	svc := testEventService(newMemEventRepo(), nil, nil, nil)

	if err := svc.Join(context.Background(), "event:ghost", "student:ada"); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound, got %v", err)
	}
}

func TestJoin_ConcurrentStudentsAllLand(t *testing.T) {
	repo := newMemEventRepo()
	repo.put(&model.Event{ID: "event:1", Participants: []string{}})
	svc := testEventService(repo, nil, nil, nil)

	const n = 32
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = svc.Join(context.Background(), "event:1", fmt.Sprintf("student:%d", i))
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("join %d failed: %v", i, err)
		}
	}
	event, _ := repo.Get(context.Background(), "event:1")
	if len(event.Participants) != n {
		t.Errorf("expected %d participants, got %d", n, len(event.Participants))
	}
}

func TestLeave_NonMemberIsNoOp(t *testing.T) {
	repo := newMemEventRepo()
	repo.put(&model.Event{ID: "event:1", Participants: []string{"student:ada"}})
	svc := testEventService(repo, nil, nil, nil)

	if err := svc.Leave(context.Background(), "event:1", "student:bob"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	event, _ := repo.Get(context.Background(), "event:1")
	if !event.HasParticipant("student:ada") {
		t.Error("existing participant lost")
	}
}

// ============================================================================
// Listing Tests
// ============================================================================

func TestListEvents_PaginationAndSocietyNames(t *testing.T) {
	now := time.Now()
	events := make([]*model.Event, 0, 3)
	for i := 0; i < 3; i++ {
		events = append(events, &model.Event{
			ID:        fmt.Sprintf("event:%d", i),
			CreatedBy: "society:tech",
			CreatedOn: now.Add(-time.Duration(i) * time.Hour),
		})
	}

	lookups := 0
	svc := testEventService(
		&mockEventRepo{
			listFunc: func(ctx context.Context, filter model.EventFilter) ([]*model.Event, error) {
				if filter.Limit != 2 {
					t.Errorf("expected limit 2, got %d", filter.Limit)
				}
				return events, nil // limit+1 rows back
			},
		},
		&mockSocietyRepo{
			getByIDFunc: func(ctx context.Context, id string) (*model.Society, error) {
				lookups++
				return &model.Society{ID: id, Name: "Tech Club"}, nil
			},
		},
		nil, nil,
	)

	page, err := svc.ListEvents(context.Background(), model.EventFilter{Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(page.Events))
	}
	if !page.HasMore {
		t.Error("expected HasMore")
	}
	wantCursor := events[1].CreatedOn.UTC().Format(time.RFC3339Nano) + "|event:1"
	if page.Cursor != wantCursor {
		t.Errorf("expected cursor %q, got %q", wantCursor, page.Cursor)
	}
	if page.Events[0].SocietyName != "Tech Club" {
		t.Errorf("expected society name, got %q", page.Events[0].SocietyName)
	}
	if lookups != 1 {
		t.Errorf("expected one society lookup for one distinct creator, got %d", lookups)
	}
}

func TestListEvents_SearchNormalized(t *testing.T) {
	var got model.EventFilter
	svc := testEventService(&mockEventRepo{
		listFunc: func(ctx context.Context, filter model.EventFilter) ([]*model.Event, error) {
			got = filter
			return nil, nil
		},
	}, nil, nil, nil)

	if _, err := svc.ListEvents(context.Background(), model.EventFilter{Search: "  HACK Night "}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Search != "hack night" {
		t.Errorf("expected lowercased trimmed search, got %q", got.Search)
	}
	if got.Limit != defaultPageSize {
		t.Errorf("expected default page size, got %d", got.Limit)
	}
}

func TestRecentEvents_WindowIsThirtyDays(t *testing.T) {
	var gotSince string
	svc := testEventService(&mockEventRepo{
		listCreatedSinceFunc: func(ctx context.Context, since string, limit int) ([]*model.Event, error) {
			gotSince = since
			return nil, nil
		},
	}, nil, nil, nil)

	if _, err := svc.RecentEvents(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	since, err := time.Parse(time.RFC3339Nano, gotSince)
	if err != nil {
		t.Fatalf("cursor not RFC3339: %v", err)
	}
	age := time.Since(since)
	if age < 29*24*time.Hour || age > 31*24*time.Hour {
		t.Errorf("expected a thirty day window, got %v", age)
	}
}

// ============================================================================
// Participants Tests
// ============================================================================

func TestParticipants_DeletedStudentsOmitted(t *testing.T) {
	svc := testEventService(
		&mockEventRepo{
			getFunc: func(ctx context.Context, eventID string) (*model.Event, error) {
				return &model.Event{ID: eventID, CreatedBy: "society:tech", Participants: []string{"student:ada", "student:gone"}}, nil
			},
		},
		nil,
		&mockStudentRepo{
			getAccountsByIDsFunc: func(ctx context.Context, ids []string) ([]*model.StudentAccount, error) {
				// student:gone no longer resolves
				return []*model.StudentAccount{
					{Student: model.Student{ID: "student:ada", Name: "Ada", RollNo: "CS-042"}, Email: "ada@campus.edu"},
				}, nil
			},
		},
		nil,
	)

	participants, err := svc.Participants(context.Background(), "event:1", "society:tech")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(participants) != 1 {
		t.Fatalf("expected 1 participant, got %d", len(participants))
	}
	if participants[0].Email != "ada@campus.edu" || participants[0].RollNo != "CS-042" {
		t.Errorf("unexpected participant %+v", participants[0])
	}
}

func TestParticipants_OwnershipEnforced(t *testing.T) {
	svc := testEventService(&mockEventRepo{
		getFunc: func(ctx context.Context, eventID string) (*model.Event, error) {
			return &model.Event{ID: eventID, CreatedBy: "society:tech"}, nil
		},
	}, nil, nil, nil)

	if _, err := svc.Participants(context.Background(), "event:1", "society:drama"); !errors.Is(err, ErrNotEventOwner) {
		t.Errorf("expected ErrNotEventOwner, got %v", err)
	}
}

// ============================================================================
// PosterURL Tests
// ============================================================================

func TestPosterURL_Success(t *testing.T) {
	posters := storage.NewMemoryStore()
	_ = posters.Put(context.Background(), "posters/k", bytes.NewReader([]byte("x")), 1, "image/png")

	svc := testEventService(&mockEventRepo{
		getFunc: func(ctx context.Context, eventID string) (*model.Event, error) {
			return &model.Event{ID: eventID, Poster: "posters/k"}, nil
		},
	}, nil, nil, posters)

	url, err := svc.PosterURL(context.Background(), "event:1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url == "" {
		t.Error("expected a poster URL")
	}
}

// ============================================================================
// Lifecycle Tests
// ============================================================================

// Walks one event through its whole life: a freshly provisioned society
// publishes it, a student joins, shows up on the participant list, then
// leaves again.
func TestEventLifecycle(t *testing.T) {
	ctx := context.Background()

	accounts := testAccountService(
		nil,
		&mockStudentRepo{
			createWithUserFunc: func(ctx context.Context, user *model.User, student *model.Student) error {
				student.ID = "student:alice"
				return nil
			},
		},
		&mockSocietyRepo{
			createWithUserFunc: func(ctx context.Context, user *model.User, society *model.Society) error {
				society.ID = "society:tech"
				return nil
			},
		},
		nil,
	)

	society, err := accounts.CreateSociety(ctx, CreateSocietyRequest{
		Name: "Tech Club", Email: "tech@campus.edu", Password: "longenough",
	})
	if err != nil {
		t.Fatalf("create society: %v", err)
	}
	alice, err := accounts.CreateStudent(ctx, CreateStudentRequest{
		Name: "Alice", RollNo: "CS-001", Email: "alice@campus.edu", Password: "longenough",
	})
	if err != nil {
		t.Fatalf("create student: %v", err)
	}

	repo := newMemEventRepo()
	events := testEventService(repo, nil, &mockStudentRepo{
		getAccountsByIDsFunc: func(ctx context.Context, ids []string) ([]*model.StudentAccount, error) {
			found := make([]*model.StudentAccount, 0, len(ids))
			for _, id := range ids {
				if id == alice.ID {
					found = append(found, &model.StudentAccount{
						Student: model.Student{ID: alice.ID, Name: alice.Name},
						Email:   alice.Email,
					})
				}
			}
			return found, nil
		},
	}, nil)

	event, err := events.CreateEvent(ctx, society.ID, CreateEventRequest{
		Title:       "Hack Night",
		Description: "Builds all evening",
		Poster:      pngUpload("png-bytes"),
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	if err := events.Join(ctx, event.ID, alice.ID); err != nil {
		t.Fatalf("join: %v", err)
	}
	participants, err := events.Participants(ctx, event.ID, society.ID)
	if err != nil {
		t.Fatalf("participants after join: %v", err)
	}
	if len(participants) != 1 || participants[0].StudentID != alice.ID {
		t.Fatalf("expected alice as the only participant, got %+v", participants)
	}

	if err := events.Leave(ctx, event.ID, alice.ID); err != nil {
		t.Fatalf("leave: %v", err)
	}
	participants, err = events.Participants(ctx, event.ID, society.ID)
	if err != nil {
		t.Fatalf("participants after leave: %v", err)
	}
	if len(participants) != 0 {
		t.Fatalf("expected no participants after leaving, got %+v", participants)
	}
}
