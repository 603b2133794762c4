// Package middleware provides HTTP middleware for the UniSync API.
//
// The middleware package contains reusable middleware components for
// authentication, role gating, and request processing.
//
// # Available Middleware
//
// Core middleware components:
//
//   - Auth: session resolution from bearer token or cookie
//   - RequireRole: role gating on top of Auth
//   - RequestID, Logger, Recovery, CORS, Compress: ambient request plumbing
//
// # Authentication
//
// The auth middleware resolves the opaque session token and stores the
// session in the request context:
//
//	handler = middleware.Chain(handler, middleware.Auth(authService, cookieName))
//
// After authentication, handlers can access the caller:
//
//	session := middleware.GetSession(r.Context())
//
// # Role Gating
//
// Routes are scoped by account role, never by client-supplied fields:
//
//	middleware.RequireRole(model.RoleSociety)
//
// # Context Values
//
// Middleware sets context values accessible via helper functions:
//
//   - GetSession(ctx): the authenticated session
//   - GetRequestID(ctx): unique request identifier
package middleware
