package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/unisync/api/internal/database"
	"github.com/unisync/api/internal/model"
)

// SocietyRepository handles society profile records.
type SocietyRepository struct {
	db database.Database
}

// NewSocietyRepository creates a new society repository.
func NewSocietyRepository(db database.Database) *SocietyRepository {
	return &SocietyRepository{db: db}
}

// CreateWithUser creates the identity and the society profile in one
// transaction.
func (r *SocietyRepository) CreateWithUser(ctx context.Context, user *model.User, society *model.Society) error {
	query := `
		BEGIN TRANSACTION;
		LET $u = (CREATE ONLY user CONTENT {
			email: $email,
			hash: $hash,
			role: $role,
			created_on: time::now()
		});
		CREATE society CONTENT {
			name: $name,
			user_id: $u.id
		};
		COMMIT TRANSACTION;
	`
	vars := map[string]interface{}{
		"email": user.Email,
		"hash":  user.Hash,
		"role":  string(model.RoleSociety),
		"name":  society.Name,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: email already exists", database.ErrDuplicate)
		}
		return err
	}

	created, ok := lastCreatedRecord(result)
	if !ok {
		return errors.New("no result returned")
	}
	society.ID = extractRecordID(created["id"])
	society.UserID = extractRecordID(created["user_id"])
	user.ID = society.UserID
	return nil
}

// GetByID retrieves a society profile by id. Returns nil when absent.
func (r *SocietyRepository) GetByID(ctx context.Context, id string) (*model.Society, error) {
	result, err := r.db.QueryOne(ctx, `SELECT * FROM type::record($id)`, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseSocietyResult(result)
}

// GetByUserID retrieves the society profile linked to an identity.
// Returns nil when absent.
func (r *SocietyRepository) GetByUserID(ctx context.Context, userID string) (*model.Society, error) {
	query := `SELECT * FROM society WHERE user_id = type::record($user_id) LIMIT 1`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"user_id": userID})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseSocietyResult(result)
}

// GetAccount retrieves a society profile with its identity's email.
// Returns nil when absent.
func (r *SocietyRepository) GetAccount(ctx context.Context, id string) (*model.SocietyAccount, error) {
	query := `SELECT *, user_id.email AS email FROM type::record($id)`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseSocietyAccountResult(result)
}

// List retrieves all society accounts ordered by name.
func (r *SocietyRepository) List(ctx context.Context) ([]*model.SocietyAccount, error) {
	query := `SELECT *, user_id.email AS email FROM society ORDER BY name ASC`
	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	records, _ := extractQueryResults(result)
	accounts := make([]*model.SocietyAccount, 0, len(records))
	for _, rec := range records {
		account, err := parseSocietyAccountResult(rec)
		if err != nil {
			continue
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// UpdateProfile applies a partial update to the profile fields.
func (r *SocietyRepository) UpdateProfile(ctx context.Context, id string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	query := `UPDATE type::record($id) SET`
	vars := map[string]interface{}{"id": id}
	first := true
	for key, value := range updates {
		if !first {
			query += ","
		}
		query += " " + key + " = $" + key
		vars[key] = value
		first = false
	}
	return r.db.Execute(ctx, query, vars)
}

// DeleteWithUser deletes the profile and its identity atomically.
func (r *SocietyRepository) DeleteWithUser(ctx context.Context, id, userID string) error {
	batch := database.NewAtomicBatch()
	batch.Add(`DELETE type::record($id)`, map[string]interface{}{"id": id})
	batch.Add(`DELETE type::record($id)`, map[string]interface{}{"id": userID})
	return batch.Execute(ctx, r.db)
}

func parseSocietyResult(result interface{}) (*model.Society, error) {
	record, ok := asRecord(result)
	if !ok {
		return nil, errors.New("unexpected society result")
	}
	return &model.Society{
		ID:     extractRecordID(record["id"]),
		Name:   getString(record, "name"),
		UserID: extractRecordID(record["user_id"]),
	}, nil
}

func parseSocietyAccountResult(result interface{}) (*model.SocietyAccount, error) {
	society, err := parseSocietyResult(result)
	if err != nil {
		return nil, err
	}
	record, _ := asRecord(result)
	return &model.SocietyAccount{
		Society: *society,
		Email:   getString(record, "email"),
	}, nil
}
