package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/unisync/api/internal/database"
	"github.com/unisync/api/internal/model"
)

// EventRepository handles event records. Participant membership is
// mutated exclusively through the store's atomic array operations;
// there is deliberately no load-mutate-store path, which would lose
// updates under concurrent joins.
type EventRepository struct {
	db database.Database
}

// NewEventRepository creates a new event repository.
func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{db: db}
}

// Create creates an event with an empty participants set.
func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	query := `
		CREATE event CONTENT {
			title: $title,
			description: $description,
			poster: $poster,
			created_by: $created_by,
			participants: [],
			created_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"title":       event.Title,
		"description": event.Description,
		"poster":      event.Poster,
		"created_by":  event.CreatedBy,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	records, ok := extractQueryResults(result)
	if !ok || len(records) == 0 {
		return errors.New("no result returned")
	}
	created, ok := asRecord(records[0])
	if !ok {
		return errors.New("unexpected create result")
	}
	event.ID = extractRecordID(created["id"])
	event.Participants = []string{}
	event.CreatedOn = getTime(created, "created_on")
	return nil
}

// Get retrieves an event by id. Returns nil when absent.
func (r *EventRepository) Get(ctx context.Context, eventID string) (*model.Event, error) {
	result, err := r.db.QueryOne(ctx, `SELECT * FROM type::record($event_id)`,
		map[string]interface{}{"event_id": eventID})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseEventResult(result)
}

// Update applies a partial update and returns the updated event, or nil
// when the event does not exist. Title, description and poster are the
// only mutable fields; created_by and created_on never change.
func (r *EventRepository) Update(ctx context.Context, eventID string, updates map[string]interface{}) (*model.Event, error) {
	if len(updates) == 0 {
		return r.Get(ctx, eventID)
	}

	query := `UPDATE type::record($event_id) SET`
	vars := map[string]interface{}{"event_id": eventID}
	first := true
	for key, value := range updates {
		if !first {
			query += ","
		}
		query += " " + key + " = $" + key
		vars[key] = value
		first = false
	}
	query += ` RETURN AFTER`

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseEventResult(result)
}

// Delete removes an event. Deleting an absent event is not an error at
// this layer; existence is checked by the service beforehand.
func (r *EventRepository) Delete(ctx context.Context, eventID string) error {
	return r.db.Execute(ctx, `DELETE type::record($event_id)`,
		map[string]interface{}{"event_id": eventID})
}

// AddParticipant adds studentID to the participants set with a single
// atomic array::union, and reports whether the student was already a
// member before the call. Two concurrent adds both land; neither can
// overwrite the other. Returns database.ErrNotFound when the event does
// not exist.
func (r *EventRepository) AddParticipant(ctx context.Context, eventID, studentID string) (alreadyMember bool, err error) {
	query := `
		UPDATE type::record($event_id)
		SET participants = array::union(participants, [$student_id])
		RETURN BEFORE
	`
	vars := map[string]interface{}{
		"event_id":   eventID,
		"student_id": studentID,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return false, err
	}

	before, err := parseEventResult(result)
	if err != nil {
		return false, err
	}
	return before.HasParticipant(studentID), nil
}

// RemoveParticipant removes studentID from the participants set with an
// atomic set-difference. Removing a non-member is a no-op. Returns
// database.ErrNotFound when the event does not exist.
func (r *EventRepository) RemoveParticipant(ctx context.Context, eventID, studentID string) error {
	query := `
		UPDATE type::record($event_id)
		SET participants = array::difference(participants, [$student_id])
	`
	vars := map[string]interface{}{
		"event_id":   eventID,
		"student_id": studentID,
	}

	_, err := r.db.QueryOne(ctx, query, vars)
	return err
}

// List retrieves events newest first, narrowed by the filter. The page
// is bounded by filter.Limit; one extra row is fetched to compute
// HasMore without a second query.
func (r *EventRepository) List(ctx context.Context, filter model.EventFilter) ([]*model.Event, error) {
	query := `SELECT * FROM event`
	vars := map[string]interface{}{}

	where := ""
	and := func(cond string) {
		if where == "" {
			where = " WHERE " + cond
		} else {
			where += " AND " + cond
		}
	}

	if filter.SocietyID != "" {
		and(`created_by = $society_id`)
		vars["society_id"] = filter.SocietyID
	}
	if filter.StudentID != "" {
		and(`$student_id IN participants`)
		vars["student_id"] = filter.StudentID
	}
	if filter.Search != "" {
		and(`(string::contains(string::lowercase(title), $q) OR string::contains(string::lowercase(description), $q))`)
		vars["q"] = filter.Search
	}
	if filter.Cursor != "" {
		// Compound cursor so events sharing the boundary timestamp are
		// not skipped between pages. Old timestamp-only cursors still
		// work, they just page strictly past the boundary instant.
		if ts, id, ok := strings.Cut(filter.Cursor, "|"); ok {
			and(`(created_on < type::datetime($cursor_ts) OR (created_on = type::datetime($cursor_ts) AND id < type::record($cursor_id)))`)
			vars["cursor_ts"] = ts
			vars["cursor_id"] = id
		} else {
			and(`created_on < type::datetime($cursor)`)
			vars["cursor"] = filter.Cursor
		}
	}

	query += where + ` ORDER BY created_on DESC, id DESC`
	if filter.Limit > 0 {
		query += ` LIMIT $limit`
		vars["limit"] = filter.Limit + 1
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	records, _ := extractQueryResults(result)
	events := make([]*model.Event, 0, len(records))
	for _, rec := range records {
		event, err := parseEventResult(rec)
		if err != nil {
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

// ListCreatedSince retrieves events created on or after the given
// instant, newest first, capped at limit.
func (r *EventRepository) ListCreatedSince(ctx context.Context, since string, limit int) ([]*model.Event, error) {
	query := `
		SELECT * FROM event
		WHERE created_on >= type::datetime($since)
		ORDER BY created_on DESC
		LIMIT $limit
	`
	vars := map[string]interface{}{
		"since": since,
		"limit": limit,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	records, _ := extractQueryResults(result)
	events := make([]*model.Event, 0, len(records))
	for _, rec := range records {
		event, err := parseEventResult(rec)
		if err != nil {
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

func parseEventResult(result interface{}) (*model.Event, error) {
	record, ok := asRecord(result)
	if !ok {
		return nil, errors.New("unexpected event result")
	}
	return &model.Event{
		ID:           extractRecordID(record["id"]),
		Title:        getString(record, "title"),
		Description:  getString(record, "description"),
		Poster:       getString(record, "poster"),
		CreatedBy:    extractRecordID(record["created_by"]),
		Participants: getIDSlice(record, "participants"),
		CreatedOn:    getTime(record, "created_on"),
	}, nil
}
