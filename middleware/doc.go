// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, client IP) and completion
(duration_ms).

# Identity

RequireUser verifies the caller's Bearer token (HMAC-signed JWT with
"sub" and "email" claims) and attaches the identity to the request
context:

	mux.HandleFunc("POST /polls", middleware.WithLogging(
		middleware.RequireUser(cfg.JWTSecret, pollHandler.CreatePoll)))

Handlers read it back:

	user, ok := middleware.UserFrom(r.Context())

The service trusts the verified claims as the owner id and voter email;
issuing tokens is the identity provider's concern (IssueUserToken exists
for development and tests).

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
