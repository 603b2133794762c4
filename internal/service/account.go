package service

import (
	"context"
	"errors"
	"strings"

	"github.com/unisync/api/internal/database"
	"github.com/unisync/api/internal/model"
)

// StudentRepository defines the interface for student profile storage
type StudentRepository interface {
	CreateWithUser(ctx context.Context, user *model.User, student *model.Student) error
	GetByID(ctx context.Context, id string) (*model.Student, error)
	GetByUserID(ctx context.Context, userID string) (*model.Student, error)
	GetAccount(ctx context.Context, id string) (*model.StudentAccount, error)
	List(ctx context.Context) ([]*model.StudentAccount, error)
	GetAccountsByIDs(ctx context.Context, ids []string) ([]*model.StudentAccount, error)
	UpdateProfile(ctx context.Context, id string, updates map[string]interface{}) error
	DeleteWithUser(ctx context.Context, id, userID string) error
}

// SocietyRepository defines the interface for society profile storage
type SocietyRepository interface {
	CreateWithUser(ctx context.Context, user *model.User, society *model.Society) error
	GetByID(ctx context.Context, id string) (*model.Society, error)
	GetByUserID(ctx context.Context, userID string) (*model.Society, error)
	GetAccount(ctx context.Context, id string) (*model.SocietyAccount, error)
	List(ctx context.Context) ([]*model.SocietyAccount, error)
	UpdateProfile(ctx context.Context, id string, updates map[string]interface{}) error
	DeleteWithUser(ctx context.Context, id, userID string) error
}

// AccountService handles admin-side management of student and society
// accounts. Every account is an identity record plus a role profile;
// the two are created and deleted together so neither can dangle.
type AccountService struct {
	userRepo    UserRepository
	studentRepo StudentRepository
	societyRepo SocietyRepository
	sessionRepo SessionRepository
}

// AccountServiceConfig holds configuration for the account service
type AccountServiceConfig struct {
	UserRepo    UserRepository
	StudentRepo StudentRepository
	SocietyRepo SocietyRepository
	SessionRepo SessionRepository
}

// NewAccountService creates a new account service
func NewAccountService(cfg AccountServiceConfig) *AccountService {
	return &AccountService{
		userRepo:    cfg.UserRepo,
		studentRepo: cfg.StudentRepo,
		societyRepo: cfg.SocietyRepo,
		sessionRepo: cfg.SessionRepo,
	}
}

// CreateStudentRequest carries the fields for a new student account.
type CreateStudentRequest struct {
	Name       string
	RollNo     string
	Department string
	Email      string
	Password   string
}

// CreateStudent provisions a student identity and profile atomically.
func (s *AccountService) CreateStudent(ctx context.Context, req CreateStudentRequest) (*model.StudentAccount, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	rollNo := strings.TrimSpace(req.RollNo)
	if rollNo == "" {
		return nil, ErrRollNoRequired
	}
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}
	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{Email: email, Hash: hash, Role: model.RoleStudent}
	student := &model.Student{
		Name:       name,
		RollNo:     rollNo,
		Department: strings.TrimSpace(req.Department),
	}
	if err := s.studentRepo.CreateWithUser(ctx, user, student); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	return &model.StudentAccount{Student: *student, Email: email}, nil
}

// CreateSocietyRequest carries the fields for a new society account.
type CreateSocietyRequest struct {
	Name     string
	Email    string
	Password string
}

// CreateSociety provisions a society identity and profile atomically.
func (s *AccountService) CreateSociety(ctx context.Context, req CreateSocietyRequest) (*model.SocietyAccount, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}
	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{Email: email, Hash: hash, Role: model.RoleSociety}
	society := &model.Society{Name: name}
	if err := s.societyRepo.CreateWithUser(ctx, user, society); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	return &model.SocietyAccount{Society: *society, Email: email}, nil
}

// ListStudents returns every student account with its login email.
func (s *AccountService) ListStudents(ctx context.Context) ([]*model.StudentAccount, error) {
	return s.studentRepo.List(ctx)
}

// ListSocieties returns every society account with its login email.
func (s *AccountService) ListSocieties(ctx context.Context) ([]*model.SocietyAccount, error) {
	return s.societyRepo.List(ctx)
}

// GetStudent retrieves a single student account.
func (s *AccountService) GetStudent(ctx context.Context, id string) (*model.StudentAccount, error) {
	account, err := s.studentRepo.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrStudentNotFound
	}
	return account, nil
}

// GetSociety retrieves a single society account.
func (s *AccountService) GetSociety(ctx context.Context, id string) (*model.SocietyAccount, error) {
	account, err := s.societyRepo.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrSocietyNotFound
	}
	return account, nil
}

// UpdateStudentRequest carries a partial student account update. Nil
// fields are left unchanged.
type UpdateStudentRequest struct {
	Name       *string
	RollNo     *string
	Department *string
	Email      *string
	Password   *string
}

// UpdateStudent applies a partial update to a student account.
func (s *AccountService) UpdateStudent(ctx context.Context, id string, req UpdateStudentRequest) (*model.StudentAccount, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, ErrStudentNotFound
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		updates["name"] = name
	}
	if req.RollNo != nil {
		rollNo := strings.TrimSpace(*req.RollNo)
		if rollNo == "" {
			return nil, ErrRollNoRequired
		}
		updates["rollno"] = rollNo
	}
	if req.Department != nil {
		updates["department"] = strings.TrimSpace(*req.Department)
	}
	if len(updates) > 0 {
		if err := s.studentRepo.UpdateProfile(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	if err := s.applyCredentialUpdate(ctx, student.UserID, req.Email, req.Password); err != nil {
		return nil, err
	}

	return s.GetStudent(ctx, id)
}

// UpdateSocietyRequest carries a partial society account update. Nil
// fields are left unchanged.
type UpdateSocietyRequest struct {
	Name     *string
	Email    *string
	Password *string
}

// UpdateSociety applies a partial update to a society account.
func (s *AccountService) UpdateSociety(ctx context.Context, id string, req UpdateSocietyRequest) (*model.SocietyAccount, error) {
	society, err := s.societyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if society == nil {
		return nil, ErrSocietyNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		if err := s.societyRepo.UpdateProfile(ctx, id, map[string]interface{}{"name": name}); err != nil {
			return nil, err
		}
	}

	if err := s.applyCredentialUpdate(ctx, society.UserID, req.Email, req.Password); err != nil {
		return nil, err
	}

	return s.GetSociety(ctx, id)
}

// DeleteStudent removes a student account: profile, identity, and any
// live sessions, so the credential stops working immediately. Past
// event participation entries are left in place; readers tolerate
// references to students that no longer exist.
func (s *AccountService) DeleteStudent(ctx context.Context, id string) error {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if student == nil {
		return ErrStudentNotFound
	}
	if err := s.studentRepo.DeleteWithUser(ctx, id, student.UserID); err != nil {
		return err
	}
	return s.sessionRepo.DeleteByUser(ctx, student.UserID)
}

// DeleteSociety removes a society account and its sessions. Events the
// society created remain published under the stored society id.
func (s *AccountService) DeleteSociety(ctx context.Context, id string) error {
	society, err := s.societyRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if society == nil {
		return ErrSocietyNotFound
	}
	if err := s.societyRepo.DeleteWithUser(ctx, id, society.UserID); err != nil {
		return err
	}
	return s.sessionRepo.DeleteByUser(ctx, society.UserID)
}

func (s *AccountService) applyCredentialUpdate(ctx context.Context, userID string, email, password *string) error {
	if email != nil {
		normalized, err := normalizeEmail(*email)
		if err != nil {
			return err
		}
		if err := s.userRepo.UpdateEmail(ctx, userID, normalized); err != nil {
			if errors.Is(err, database.ErrDuplicate) {
				return ErrEmailAlreadyExists
			}
			return err
		}
	}
	if password != nil {
		if err := validatePassword(*password); err != nil {
			return err
		}
		hash, err := hashPassword(*password)
		if err != nil {
			return err
		}
		if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
			return err
		}
	}
	return nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return "", ErrEmailRequired
	}
	if !isValidEmail(email) {
		return "", ErrInvalidEmail
	}
	return email, nil
}
