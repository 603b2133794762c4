package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/unisync/api/internal/model"
)

const (
	// bcrypt cost factor (10-14 recommended for production)
	bcryptCost = 12

	// Password constraints
	minPasswordLength = 8
	maxPasswordLength = 128
)

// UserRepository defines the interface for identity storage
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateEmail(ctx context.Context, userID, email string) error
	UpdatePassword(ctx context.Context, userID, hash string) error
}

// SessionRepository defines the interface for session storage
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	GetByToken(ctx context.Context, token string) (*model.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID string) error
}

// AuthService handles login, logout, and session resolution.
type AuthService struct {
	userRepo    UserRepository
	studentRepo StudentRepository
	societyRepo SocietyRepository
	sessionRepo SessionRepository
	sessionTTL  time.Duration
}

// AuthServiceConfig holds configuration for the auth service
type AuthServiceConfig struct {
	UserRepo    UserRepository
	StudentRepo StudentRepository
	SocietyRepo SocietyRepository
	SessionRepo SessionRepository
	SessionTTL  time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	return &AuthService{
		userRepo:    cfg.UserRepo,
		studentRepo: cfg.StudentRepo,
		societyRepo: cfg.SocietyRepo,
		sessionRepo: cfg.SessionRepo,
		sessionTTL:  cfg.SessionTTL,
	}
}

// Authenticate verifies a credential pair and opens a session. Unknown
// email and wrong password both return ErrInvalidCredentials so a
// caller cannot probe which addresses have accounts.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*model.Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Burn a compare anyway so the miss costs the same as a hit.
		bcrypt.CompareHashAndPassword([]byte("$2a$12$C6UzMDM.H6dfI/f/IKcEeO7pUa5I5kDdmPZ8cUq5kq5kq5kq5kq5k"), []byte(password))
		return nil, ErrInvalidCredentials
	}
	if !checkPassword(password, user.Hash) {
		return nil, ErrInvalidCredentials
	}

	session := &model.Session{
		Token:     uuid.New().String(),
		UserID:    user.ID,
		Role:      user.Role,
		Email:     user.Email,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}

	// Admins have no profile record; students and societies must.
	switch user.Role {
	case model.RoleStudent:
		student, err := s.studentRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if student == nil {
			return nil, ErrProfileMissing
		}
		session.ProfileID = student.ID
		session.Name = student.Name
	case model.RoleSociety:
		society, err := s.societyRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if society == nil {
			return nil, ErrProfileMissing
		}
		session.ProfileID = society.ID
		session.Name = society.Name
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession resolves a token to a live session. Expired sessions are
// deleted on sight and reported as not found.
func (s *AuthService) GetSession(ctx context.Context, token string) (*model.Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}
	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.Expired() {
		_ = s.sessionRepo.Delete(ctx, token)
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Logout revokes the session holding the token. Logging out an already
// revoked or unknown token succeeds.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessionRepo.Delete(ctx, token)
}

// Helper functions

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func validatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > maxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

func isValidEmail(email string) bool {
	if email == "" {
		return false
	}
	if len(email) > 254 {
		return false
	}
	atIndex := strings.Index(email, "@")
	if atIndex < 1 {
		return false
	}
	dotIndex := strings.LastIndex(email, ".")
	if dotIndex < atIndex+2 {
		return false
	}
	if dotIndex >= len(email)-1 {
		return false
	}
	return true
}
