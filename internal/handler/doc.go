// Package handler provides HTTP request handlers for the UniSync API.
//
// The handler package contains all JSON endpoint implementations
// organized by domain. Each handler struct encapsulates the
// dependencies needed to serve requests for a specific feature area
// (authentication, events, student participation, admin accounts).
//
// # Handler Pattern
//
// All handlers follow a consistent pattern:
//
//   - Constructor function (NewXxxHandler) accepts its service dependencies
//   - Methods handle specific HTTP endpoints
//   - Response helpers from response.go standardize output format
//   - Errors are mapped to RFC 9457 Problem Details via MapServiceError
//
// # Response Format
//
// Handlers use standardized response functions:
//
//   - WriteData: single resource wrapped in {success, data}
//   - WriteCollection: list with cursor pagination
//   - WriteJSON: raw JSON response
//   - WriteError: RFC 9457 Problem Details error response
//
// # Authentication
//
// Protected handlers run behind the session middleware and read the
// caller via middleware.GetSession(r.Context()). The acting student or
// society is always the session's profile id; ids supplied by the
// client are used for lookups, never for authorization.
package handler
