package handler

import (
	"errors"

	"github.com/unisync/api/internal/database"
	"github.com/unisync/api/internal/model"
	"github.com/unisync/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	// ===== Authentication Errors → 401 =====
	switch {
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrSessionNotFound):
		return model.NewUnauthorizedError(err.Error())

	// ===== Authorization Errors → 403 =====
	case errors.Is(err, service.ErrNotEventOwner):
		return model.NewForbiddenError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrEventNotFound):
		return model.NewNotFoundError("event")
	case errors.Is(err, service.ErrStudentNotFound):
		return model.NewNotFoundError("student")
	case errors.Is(err, service.ErrSocietyNotFound):
		return model.NewNotFoundError("society")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrEmailAlreadyExists):
		return model.NewConflictError(err.Error())
	case errors.Is(err, service.ErrAlreadyJoined):
		return model.NewConflictError(err.Error())

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrEmailRequired),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrPasswordTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "credentials", Message: err.Error()}})
	case errors.Is(err, service.ErrNameRequired):
		return model.NewValidationError([]model.FieldError{{Field: "name", Message: err.Error()}})
	case errors.Is(err, service.ErrRollNoRequired):
		return model.NewValidationError([]model.FieldError{{Field: "rollno", Message: err.Error()}})
	case errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrTitleTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "title", Message: err.Error()}})
	case errors.Is(err, service.ErrDescriptionRequired),
		errors.Is(err, service.ErrDescriptionTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "description", Message: err.Error()}})
	case errors.Is(err, service.ErrPosterRequired),
		errors.Is(err, service.ErrPosterTooLarge),
		errors.Is(err, service.ErrPosterInvalidType):
		return model.NewValidationError([]model.FieldError{{Field: "poster", Message: err.Error()}})

	// ===== Unavailable → 503 =====
	case errors.Is(err, service.ErrStorageUnavailable),
		errors.Is(err, database.ErrUnavailable),
		errors.Is(err, database.ErrConnection):
		return model.NewUnavailableError("a backing service is unavailable, retry shortly")

	// ===== Everything else → 500 =====
	// ErrProfileMissing lands here on purpose: it is an operational
	// inconsistency, not a caller mistake.
	default:
		return model.NewInternalError("an unexpected error occurred")
	}
}
