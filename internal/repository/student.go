package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/unisync/api/internal/database"
	"github.com/unisync/api/internal/model"
)

// StudentRepository handles student profile records. Profiles hold a
// record link to their identity (user_id), which lets queries project
// the identity's email with a link traversal.
type StudentRepository struct {
	db database.Database
}

// NewStudentRepository creates a new student repository.
func NewStudentRepository(db database.Database) *StudentRepository {
	return &StudentRepository{db: db}
}

// CreateWithUser creates the identity and the student profile in one
// transaction, so a failure cannot leave a profile without an identity
// or vice versa.
func (r *StudentRepository) CreateWithUser(ctx context.Context, user *model.User, student *model.Student) error {
	query := `
		BEGIN TRANSACTION;
		LET $u = (CREATE ONLY user CONTENT {
			email: $email,
			hash: $hash,
			role: $role,
			created_on: time::now()
		});
		CREATE student CONTENT {
			name: $name,
			rollno: $rollno,
			department: $department,
			user_id: $u.id
		};
		COMMIT TRANSACTION;
	`
	vars := map[string]interface{}{
		"email":      user.Email,
		"hash":       user.Hash,
		"role":       string(model.RoleStudent),
		"name":       student.Name,
		"rollno":     student.RollNo,
		"department": student.Department,
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
	student.ID = extractRecordID(created["id"])
	student.UserID = extractRecordID(created["user_id"])
	user.ID = student.UserID
	return nil
}

// GetByID retrieves a student profile by id. Returns nil when absent.
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*model.Student, error) {
	result, err := r.db.QueryOne(ctx, `SELECT * FROM type::record($id)`, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseStudentResult(result)
}

// GetByUserID retrieves the student profile linked to an identity.
// Returns nil when absent.
func (r *StudentRepository) GetByUserID(ctx context.Context, userID string) (*model.Student, error) {
	query := `SELECT * FROM student WHERE user_id = type::record($user_id) LIMIT 1`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"user_id": userID})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseStudentResult(result)
}

// GetAccount retrieves a student profile with its identity's email
// projected in. Returns nil when absent.
func (r *StudentRepository) GetAccount(ctx context.Context, id string) (*model.StudentAccount, error) {
	query := `SELECT *, user_id.email AS email FROM type::record($id)`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseStudentAccountResult(result)
}

// List retrieves all student accounts ordered by name.
func (r *StudentRepository) List(ctx context.Context) ([]*model.StudentAccount, error) {
	query := `SELECT *, user_id.email AS email FROM student ORDER BY name ASC`
	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	records, _ := extractQueryResults(result)
	accounts := make([]*model.StudentAccount, 0, len(records))
	for _, rec := range records {
		account, err := parseStudentAccountResult(rec)
		if err != nil {
			continue
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// GetAccountsByIDs retrieves the student accounts for the given profile
// ids. Ids that no longer resolve to a record are silently absent from
// the result.
func (r *StudentRepository) GetAccountsByIDs(ctx context.Context, ids []string) ([]*model.StudentAccount, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	records := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		result, err := r.db.QueryOne(ctx, `SELECT *, user_id.email AS email FROM type::record($id)`,
			map[string]interface{}{"id": id})
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				continue // dangling participant reference
			}
			return nil, err
		}
		records = append(records, result)
	}

	accounts := make([]*model.StudentAccount, 0, len(records))
	for _, rec := range records {
		account, err := parseStudentAccountResult(rec)
		if err != nil {
			continue
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// UpdateProfile applies a partial update to the profile fields.
func (r *StudentRepository) UpdateProfile(ctx context.Context, id string, updates map[string]interface{}) error {
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
func (r *StudentRepository) DeleteWithUser(ctx context.Context, id, userID string) error {
	batch := database.NewAtomicBatch()
	batch.Add(`DELETE type::record($id)`, map[string]interface{}{"id": id})
	batch.Add(`DELETE type::record($id)`, map[string]interface{}{"id": userID})
	return batch.Execute(ctx, r.db)
}

func parseStudentResult(result interface{}) (*model.Student, error) {
	record, ok := asRecord(result)
	if !ok {
		return nil, errors.New("unexpected student result")
	}
	return &model.Student{
		ID:         extractRecordID(record["id"]),
		Name:       getString(record, "name"),
		RollNo:     getString(record, "rollno"),
		Department: getString(record, "department"),
		UserID:     extractRecordID(record["user_id"]),
	}, nil
}

func parseStudentAccountResult(result interface{}) (*model.StudentAccount, error) {
	student, err := parseStudentResult(result)
	if err != nil {
		return nil, err
	}
	record, _ := asRecord(result)
	return &model.StudentAccount{
		Student: *student,
		Email:   getString(record, "email"),
	}, nil
}

// lastCreatedRecord walks a multi-statement result backwards and returns
// the last record produced, which for the create transactions here is
// the profile.
func lastCreatedRecord(result []interface{}) (map[string]interface{}, bool) {
	for i := len(result) - 1; i >= 0; i-- {
		resp, ok := result[i].(map[string]interface{})
		if !ok {
			continue
		}
		records, ok := resp["result"].([]interface{})
		if !ok || len(records) == 0 {
			continue
		}
		if record, ok := records[len(records)-1].(map[string]interface{}); ok {
			return record, true
		}
	}
	return nil, false
}
