package model

import "time"

// Event is a society-published activity students can join. CreatedBy is
// the owning society's profile id and never changes after creation.
// Participants holds student profile ids with set semantics: the storage
// layer's atomic array operations guarantee no duplicates even under
// concurrent joins.
type Event struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Poster       string    `json:"poster"` // blob storage object key
	CreatedBy    string    `json:"created_by"`
	Participants []string  `json:"participants"`
	CreatedOn    time.Time `json:"created_on"`
}

// HasParticipant reports whether studentID is in the participants set.
func (e *Event) HasParticipant(studentID string) bool {
	for _, p := range e.Participants {
		if p == studentID {
			return true
		}
	}
	return false
}

// EventFilter narrows an event listing. Zero values mean "no filter".
// Search is a case-insensitive substring match over title OR
// description. Cursor is "<created_on>|<id>" of the last item of the
// prior page (RFC 3339 timestamp); results are always newest first.
type EventFilter struct {
	SocietyID string
	StudentID string
	Search    string
	Cursor    string
	Limit     int
}

// EventPage is one bounded page of a listing.
type EventPage struct {
	Events  []*EventWithSociety
	Cursor  string
	HasMore bool
}

// Participant is the contact projection returned for an event's
// participant list, joined from the student and identity records.
type Participant struct {
	StudentID  string `json:"student_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	RollNo     string `json:"rollno"`
	Department string `json:"department"`
}

// EventWithSociety decorates an event with its owning society's name for
// list screens. The name is resolved at query time; a society that has
// been deleted since leaves an empty name.
type EventWithSociety struct {
	Event
	SocietyName string `json:"society"`
}
