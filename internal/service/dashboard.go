package service

import (
	"context"

	"github.com/unisync/api/internal/model"
)

const hoursPerEvent = 2

// StudentDashboard is the student landing-page payload, shared by the
// JSON and page adapters.
type StudentDashboard struct {
	Student      *model.StudentAccount     `json:"student"`
	RecentEvents []*model.EventWithSociety `json:"recent_events"`
	JoinedEvents []*model.EventWithSociety `json:"joined_events"`
	Stats        StudentStats              `json:"stats"`
}

// StudentStats summarizes a student's participation.
type StudentStats struct {
	EventsJoined int `json:"events_joined"`
	Societies    int `json:"societies"`
	Hours        int `json:"hours"`
}

// SocietyDashboard is the society landing-page payload.
type SocietyDashboard struct {
	Society *model.SocietyAccount `json:"society"`
	Events  []*EventDetail        `json:"events"`
}

// EventDetail pairs an event with its resolved participant roster.
type EventDetail struct {
	Event        *model.Event         `json:"event"`
	Participants []*model.Participant `json:"participants"`
}

// StudentDashboardFor assembles the dashboard for one student: profile,
// the recent-events feed, the events they joined, and participation
// stats.
func (s *EventService) StudentDashboardFor(ctx context.Context, studentID string) (*StudentDashboard, error) {
	account, err := s.studentRepo.GetAccount(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrStudentNotFound
	}

	recent, err := s.RecentEvents(ctx)
	if err != nil {
		return nil, err
	}

	joined, err := s.eventRepo.List(ctx, model.EventFilter{StudentID: studentID})
	if err != nil {
		return nil, err
	}

	societies := map[string]struct{}{}
	for _, event := range joined {
		societies[event.CreatedBy] = struct{}{}
	}

	return &StudentDashboard{
		Student:      account,
		RecentEvents: recent,
		JoinedEvents: s.withSocietyNames(ctx, joined),
		Stats: StudentStats{
			EventsJoined: len(joined),
			Societies:    len(societies),
			Hours:        len(joined) * hoursPerEvent,
		},
	}, nil
}

// SocietyDashboardFor assembles the dashboard for one society: profile
// plus every event it published with the resolved participant roster.
func (s *EventService) SocietyDashboardFor(ctx context.Context, societyID string) (*SocietyDashboard, error) {
	account, err := s.societyRepo.GetAccount(ctx, societyID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrSocietyNotFound
	}

	events, err := s.eventRepo.List(ctx, model.EventFilter{SocietyID: societyID})
	if err != nil {
		return nil, err
	}

	details := make([]*EventDetail, 0, len(events))
	for _, event := range events {
		participants, err := s.resolveParticipants(ctx, event.Participants)
		if err != nil {
			return nil, err
		}
		details = append(details, &EventDetail{Event: event, Participants: participants})
	}

	return &SocietyDashboard{Society: account, Events: details}, nil
}
