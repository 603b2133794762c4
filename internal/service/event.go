package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/unisync/api/internal/config"
	"github.com/unisync/api/internal/database"
	"github.com/unisync/api/internal/model"
	"github.com/unisync/api/internal/storage"
)

const (
	maxTitleLength       = 140
	maxDescriptionLength = 5000

	// RecentEvents window
	recentWindow = 30 * 24 * time.Hour
	recentLimit  = 50

	defaultPageSize = 20
	maxPageSize     = 100
)

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	Get(ctx context.Context, eventID string) (*model.Event, error)
	Update(ctx context.Context, eventID string, updates map[string]interface{}) (*model.Event, error)
	Delete(ctx context.Context, eventID string) error
	AddParticipant(ctx context.Context, eventID, studentID string) (alreadyMember bool, err error)
	RemoveParticipant(ctx context.Context, eventID, studentID string) error
	List(ctx context.Context, filter model.EventFilter) ([]*model.Event, error)
	ListCreatedSince(ctx context.Context, since string, limit int) ([]*model.Event, error)
}

// EventService handles event publishing and participation.
type EventService struct {
	eventRepo   EventRepository
	societyRepo SocietyRepository
	studentRepo StudentRepository
	posters     storage.BlobStore
}

// EventServiceConfig holds configuration for the event service
type EventServiceConfig struct {
	EventRepo   EventRepository
	SocietyRepo SocietyRepository
	StudentRepo StudentRepository
	Posters     storage.BlobStore
}

// NewEventService creates a new event service
func NewEventService(cfg EventServiceConfig) *EventService {
	return &EventService{
		eventRepo:   cfg.EventRepo,
		societyRepo: cfg.SocietyRepo,
		studentRepo: cfg.StudentRepo,
		posters:     cfg.Posters,
	}
}

// PosterUpload is a poster image ready to be stored.
type PosterUpload struct {
	Body        io.Reader
	Size        int64
	ContentType string
}

// CreateEventRequest carries the fields for a new event.
type CreateEventRequest struct {
	Title       string
	Description string
	Poster      *PosterUpload
}

// CreateEvent validates and publishes an event on behalf of a society.
// The poster blob is written first; if the event record then fails to
// persist the blob is removed again.
func (s *EventService) CreateEvent(ctx context.Context, societyID string, req CreateEventRequest) (*model.Event, error) {
	title, description, err := validateEventFields(req.Title, req.Description)
	if err != nil {
		return nil, err
	}
	if req.Poster == nil {
		return nil, ErrPosterRequired
	}

	key, err := s.storePoster(ctx, req.Poster)
	if err != nil {
		return nil, err
	}

	event := &model.Event{
		Title:       title,
		Description: description,
		Poster:      key,
		CreatedBy:   societyID,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		_ = s.posters.Delete(ctx, key)
		return nil, err
	}
	return event, nil
}

// UpdateEventRequest carries a partial event update. Nil fields are
// left unchanged; present fields must be non-empty.
type UpdateEventRequest struct {
	Title       *string
	Description *string
	Poster      *PosterUpload
}

// UpdateEvent applies a partial update to an event. societyID must be
// the creator; pass empty to skip the ownership check (admin callers).
func (s *EventService) UpdateEvent(ctx context.Context, eventID, societyID string, req UpdateEventRequest) (*model.Event, error) {
	event, err := s.requireEvent(ctx, eventID, societyID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		if len(title) > maxTitleLength {
			return nil, ErrTitleTooLong
		}
		updates["title"] = title
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, ErrDescriptionRequired
		}
		if len(description) > maxDescriptionLength {
			return nil, ErrDescriptionTooLong
		}
		updates["description"] = description
	}

	var oldPoster string
	if req.Poster != nil {
		key, err := s.storePoster(ctx, req.Poster)
		if err != nil {
			return nil, err
		}
		updates["poster"] = key
		oldPoster = event.Poster
	}

	updated, err := s.eventRepo.Update(ctx, eventID, updates)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrEventNotFound
	}
	if oldPoster != "" {
		_ = s.posters.Delete(ctx, oldPoster)
	}
	return updated, nil
}

// DeleteEvent removes an event and its poster. societyID must be the
// creator; pass empty to skip the ownership check (admin callers).
func (s *EventService) DeleteEvent(ctx context.Context, eventID, societyID string) error {
	event, err := s.requireEvent(ctx, eventID, societyID)
	if err != nil {
		return err
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		return err
	}
	if event.Poster != "" {
		_ = s.posters.Delete(ctx, event.Poster)
	}
	return nil
}

// GetEvent retrieves an event together with its society's display name.
// Events whose society has since been deleted keep an empty name.
func (s *EventService) GetEvent(ctx context.Context, eventID string) (*model.EventWithSociety, error) {
	event, err := s.eventRepo.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	enriched := s.withSocietyNames(ctx, []*model.Event{event})
	return enriched[0], nil
}

// ListEvents returns a page of events, newest first. The cursor pairs
// the created_on timestamp and id of the last event on the previous
// page, so ties on created_on do not drop rows between pages.
func (s *EventService) ListEvents(ctx context.Context, filter model.EventFilter) (*model.EventPage, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	filter.Search = strings.ToLower(strings.TrimSpace(filter.Search))

	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := &model.EventPage{HasMore: len(events) > filter.Limit}
	if page.HasMore {
		events = events[:filter.Limit]
	}
	page.Events = s.withSocietyNames(ctx, events)
	if page.HasMore && len(events) > 0 {
		last := events[len(events)-1]
		page.Cursor = last.CreatedOn.UTC().Format(time.RFC3339Nano) + "|" + last.ID
	}
	return page, nil
}

// RecentEvents returns events published in the last thirty days, the
// feed shown on the student dashboard.
func (s *EventService) RecentEvents(ctx context.Context) ([]*model.EventWithSociety, error) {
	since := time.Now().Add(-recentWindow).UTC().Format(time.RFC3339Nano)
	events, err := s.eventRepo.ListCreatedSince(ctx, since, recentLimit)
	if err != nil {
		return nil, err
	}
	return s.withSocietyNames(ctx, events), nil
}

// Join registers a student for an event. Joining twice returns
// ErrAlreadyJoined; two students joining at once both land.
func (s *EventService) Join(ctx context.Context, eventID, studentID string) error {
	already, err := s.eventRepo.AddParticipant(ctx, eventID, studentID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	if already {
		return ErrAlreadyJoined
	}
	return nil
}

// Leave withdraws a student from an event. Leaving an event the student
// never joined succeeds.
func (s *EventService) Leave(ctx context.Context, eventID, studentID string) error {
	err := s.eventRepo.RemoveParticipant(ctx, eventID, studentID)
	if errors.Is(err, database.ErrNotFound) {
		return ErrEventNotFound
	}
	return err
}

// Participants lists the students registered for an event. societyID
// must be the creator; pass empty to skip the ownership check (admin
// callers). Participant entries whose student account has since been
// deleted are omitted.
func (s *EventService) Participants(ctx context.Context, eventID, societyID string) ([]*model.Participant, error) {
	event, err := s.requireEvent(ctx, eventID, societyID)
	if err != nil {
		return nil, err
	}

	return s.resolveParticipants(ctx, event.Participants)
}

// resolveParticipants projects participant ids onto student accounts,
// dropping ids whose account no longer exists.
func (s *EventService) resolveParticipants(ctx context.Context, ids []string) ([]*model.Participant, error) {
	accounts, err := s.studentRepo.GetAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	participants := make([]*model.Participant, 0, len(accounts))
	for _, account := range accounts {
		participants = append(participants, &model.Participant{
			StudentID:  account.ID,
			Name:       account.Name,
			Email:      account.Email,
			RollNo:     account.RollNo,
			Department: account.Department,
		})
	}
	return participants, nil
}

// PosterURL returns a short-lived URL for an event's poster image.
func (s *EventService) PosterURL(ctx context.Context, eventID string) (string, error) {
	event, err := s.eventRepo.Get(ctx, eventID)
	if err != nil {
		return "", err
	}
	if event == nil || event.Poster == "" {
		return "", ErrEventNotFound
	}
	url, err := s.posters.PresignGet(ctx, event.Poster)
	if err != nil {
		if errors.Is(err, storage.ErrUnavailable) {
			return "", ErrStorageUnavailable
		}
		return "", err
	}
	return url, nil
}

// requireEvent loads an event and, when societyID is set, verifies the
// event was created by that society.
func (s *EventService) requireEvent(ctx context.Context, eventID, societyID string) (*model.Event, error) {
	event, err := s.eventRepo.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	if societyID != "" && event.CreatedBy != societyID {
		return nil, ErrNotEventOwner
	}
	return event, nil
}

// withSocietyNames decorates events with their creator's display name,
// looking each society up once per call.
func (s *EventService) withSocietyNames(ctx context.Context, events []*model.Event) []*model.EventWithSociety {
	names := map[string]string{}
	result := make([]*model.EventWithSociety, 0, len(events))
	for _, event := range events {
		name, seen := names[event.CreatedBy]
		if !seen {
			society, err := s.societyRepo.GetByID(ctx, event.CreatedBy)
			if err == nil && society != nil {
				name = society.Name
			}
			names[event.CreatedBy] = name
		}
		result = append(result, &model.EventWithSociety{Event: *event, SocietyName: name})
	}
	return result
}

func (s *EventService) storePoster(ctx context.Context, poster *PosterUpload) (string, error) {
	if poster.Size <= 0 {
		return "", ErrPosterRequired
	}
	if poster.Size > config.MaxPosterBytes {
		return "", ErrPosterTooLarge
	}
	ext, ok := posterExtension(poster.ContentType)
	if !ok {
		return "", ErrPosterInvalidType
	}

	now := time.Now()
	key := fmt.Sprintf("posters/%d/%02d/%02d/%s%s", now.Year(), now.Month(), now.Day(), uuid.New(), ext)
	if err := s.posters.Put(ctx, key, poster.Body, poster.Size, poster.ContentType); err != nil {
		if errors.Is(err, storage.ErrUnavailable) {
			return "", ErrStorageUnavailable
		}
		return "", err
	}
	return key, nil
}

// validateEventFields applies the same title/description rules as
// UpdateEvent and returns the trimmed values.
func validateEventFields(title, description string) (string, string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", "", ErrTitleRequired
	}
	if len(title) > maxTitleLength {
		return "", "", ErrTitleTooLong
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return "", "", ErrDescriptionRequired
	}
	if len(description) > maxDescriptionLength {
		return "", "", ErrDescriptionTooLong
	}
	return title, description, nil
}

func posterExtension(contentType string) (string, bool) {
	switch contentType {
	case "image/png":
		return ".png", true
	case "image/jpeg", "image/jpg":
		return ".jpg", true
	}
	return "", false
}
