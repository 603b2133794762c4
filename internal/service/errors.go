package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found or expired")
	ErrProfileMissing     = errors.New("profile record missing for user")
	ErrEmailRequired      = errors.New("email is required")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 128 characters")
)

// ===== Account Errors =====
var (
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrStudentNotFound    = errors.New("student not found")
	ErrSocietyNotFound    = errors.New("society not found")
	ErrNameRequired       = errors.New("name is required")
	ErrRollNoRequired     = errors.New("roll number is required")
)

// ===== Event Errors =====
var (
	ErrEventNotFound       = errors.New("event not found")
	ErrNotEventOwner       = errors.New("event belongs to another society")
	ErrAlreadyJoined       = errors.New("already joined this event")
	ErrTitleRequired       = errors.New("event title is required")
	ErrTitleTooLong        = errors.New("event title exceeds maximum length")
	ErrDescriptionRequired = errors.New("event description is required")
	ErrDescriptionTooLong  = errors.New("event description exceeds maximum length")
	ErrPosterRequired      = errors.New("event poster is required")
	ErrPosterTooLarge      = errors.New("poster exceeds maximum size")
	ErrPosterInvalidType   = errors.New("poster must be a PNG or JPEG image")
)

// ===== Infrastructure Errors =====
var (
	ErrStorageUnavailable = errors.New("storage backend unavailable")
)
