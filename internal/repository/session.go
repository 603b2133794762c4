package repository

import (
	"context"
	"errors"

	"github.com/unisync/api/internal/database"
	"github.com/unisync/api/internal/model"
)

// SessionRepository persists login sessions as minimal documents keyed
// by opaque token. Holding sessions server-side is what makes logout a
// real revocation rather than a client-side discard.
type SessionRepository struct {
	db database.Database
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db database.Database) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create stores a session.
func (r *SessionRepository) Create(ctx context.Context, session *model.Session) error {
	query := `
		CREATE session CONTENT {
			token: $token,
			user_id: $user_id,
			role: $role,
			profile_id: $profile_id,
			email: $email,
			name: $name,
			expires_at: type::datetime($expires_at),
			created_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"token":      session.Token,
		"user_id":    session.UserID,
		"role":       string(session.Role),
		"profile_id": session.ProfileID,
		"email":      session.Email,
		"name":       session.Name,
		"expires_at": session.ExpiresAt.UTC().Format("2006-01-02T15:04:05.999999999Z07:00"),
	}
	return r.db.Execute(ctx, query, vars)
}

// GetByToken retrieves a session by token. Returns nil when no session
// holds the token.
func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*model.Session, error) {
	result, err := r.db.QueryOne(ctx, `SELECT * FROM session WHERE token = $token LIMIT 1`,
		map[string]interface{}{"token": token})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseSessionResult(result)
}

// Delete removes the session holding the token. Deleting an absent
// token is a no-op, which keeps logout idempotent.
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	return r.db.Execute(ctx, `DELETE session WHERE token = $token`,
		map[string]interface{}{"token": token})
}

// DeleteByUser removes every session belonging to a user. Called when
// an account is deleted so the credential stops working immediately.
func (r *SessionRepository) DeleteByUser(ctx context.Context, userID string) error {
	return r.db.Execute(ctx, `DELETE session WHERE user_id = $user_id`,
		map[string]interface{}{"user_id": userID})
}

// DeleteExpired removes sessions past their expiry and returns how many
// were swept.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int, error) {
	query := `DELETE session WHERE expires_at < time::now() RETURN BEFORE`
	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return 0, err
	}
	records, _ := extractQueryResults(result)
	return len(records), nil
}

func parseSessionResult(result interface{}) (*model.Session, error) {
	record, ok := asRecord(result)
	if !ok {
		return nil, errors.New("unexpected session result")
	}
	return &model.Session{
		Token:     getString(record, "token"),
		UserID:    extractRecordID(record["user_id"]),
		Role:      model.Role(getString(record, "role")),
		ProfileID: extractRecordID(record["profile_id"]),
		Email:     getString(record, "email"),
		Name:      getString(record, "name"),
		ExpiresAt: getTime(record, "expires_at"),
		CreatedOn: getTime(record, "created_on"),
	}, nil
}
