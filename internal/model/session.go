package model

import "time"

// Session is the server-held record of an authenticated identity. It is
// deliberately minimal: identity id, role and resolved profile id, never
// whole documents, so profile edits cannot leave stale copies behind.
// The same record backs both transports: the web adapter carries Token
// in a cookie, the mobile adapter replays it as a bearer token.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Role      Role      `json:"role"`
	ProfileID string    `json:"profile_id"` // student or society id; empty for admin
	Email     string    `json:"email"`
	Name      string    `json:"name"` // profile display name; empty for admin
	ExpiresAt time.Time `json:"expires_at"`
	CreatedOn time.Time `json:"created_on"`
}

// Expired reports whether the session is past its lifetime.
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// RedirectURL is the role-scoped landing page, identical for the web and
// mobile login flows.
func (s *Session) RedirectURL() string {
	switch s.Role {
	case RoleAdmin:
		return "/AdminDashboard"
	case RoleSociety:
		return "/SocietyDashboard"
	case RoleStudent:
		return "/StudentDashboard"
	}
	return "/"
}
