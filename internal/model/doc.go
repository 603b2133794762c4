// Package model defines domain entities and data structures for the UniSync API.
//
// The model package contains all struct definitions for domain objects,
// sessions, and error definitions. Models are used across all layers of
// the application.
//
// # Domain Entities
//
// Core domain entities include:
//
//   - User: authentication identity (email, password hash, role)
//   - Student: role-specific profile linked to a User
//   - Society: role-specific profile linked to a User
//   - Event: society-published event with a poster and participant list
//   - Session: server-held record of an authenticated identity
//
// Identities and profiles are split on purpose: credentials live on the
// User, everything the rest of the system reads lives on the profile.
//
// # JSON Serialization
//
// All models use json struct tags for API serialization:
//
//	type Event struct {
//	    ID          string `json:"id"`
//	    Title       string `json:"title"`
//	    Description string `json:"description"`
//	}
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go:
//
//	type ProblemDetails struct {
//	    Type    string    `json:"type"`
//	    Title   string    `json:"title"`
//	    Status  int       `json:"status"`
//	    Detail  string    `json:"detail"`
//	}
package model
