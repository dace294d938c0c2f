/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	r.Get("/classement", middleware.WithLogging(resultsHandler.GetClassement))

Logs completion with status and duration_ms. When chi's RequestID middleware
runs first, every line carries the request_id.

# Metrics

Instrument observes jig_http_request_duration_seconds labelled with the chi
route pattern, so /projects/{id}/score stays a single series:

	r.Use(middleware.Instrument)

# CORS Middleware

Allows methods GET, POST, DELETE, OPTIONS with headers Content-Type,
X-Admin-Key, X-Voter-Token, X-Jury-ID, X-Jury-Token.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.JSONRaw(w, http.StatusOK, cached)
	middleware.ErrorResponse(w, http.StatusConflict, "already voted")

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Used for the hashed IP stored with public votes.
*/
package middleware
