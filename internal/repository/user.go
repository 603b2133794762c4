package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/unisync/api/internal/database"
	"github.com/unisync/api/internal/model"
)

// UserRepository handles identity (credential) records.
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates an identity record. The email column carries a unique
// index; a violation maps to database.ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		CREATE user CONTENT {
			email: $email,
			hash: $hash,
			role: $role,
			created_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"email": user.Email,
		"hash":  user.Hash,
		"role":  string(user.Role),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: email already exists", database.ErrDuplicate)
		}
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
	user.ID = extractRecordID(created["id"])
	user.CreatedOn = getTime(created, "created_on")
	return nil
}

// GetByID retrieves an identity by id. Returns nil when absent.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	result, err := r.db.QueryOne(ctx, `SELECT * FROM type::record($id)`, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseUserResult(result)
}

// GetByEmail retrieves an identity by exact email match. Returns nil
// when absent.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM user WHERE email = $email LIMIT 1`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"email": email})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseUserResult(result)
}

// UpdateEmail changes the identity's email.
func (r *UserRepository) UpdateEmail(ctx context.Context, userID, email string) error {
	err := r.db.Execute(ctx, `UPDATE type::record($id) SET email = $email`, map[string]interface{}{
		"id":    userID,
		"email": email,
	})
	if err != nil && isUniqueConstraintError(err) {
		return fmt.Errorf("%w: email already exists", database.ErrDuplicate)
	}
	return err
}

// UpdatePassword replaces the stored password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, userID, hash string) error {
	return r.db.Execute(ctx, `UPDATE type::record($id) SET hash = $hash`, map[string]interface{}{
		"id":   userID,
		"hash": hash,
	})
}

func parseUserResult(result interface{}) (*model.User, error) {
	record, ok := asRecord(result)
	if !ok {
		return nil, errors.New("unexpected user result")
	}
	return &model.User{
		ID:        extractRecordID(record["id"]),
		Email:     getString(record, "email"),
		Hash:      getString(record, "hash"),
		Role:      model.Role(getString(record, "role")),
		CreatedOn: getTime(record, "created_on"),
	}, nil
}
