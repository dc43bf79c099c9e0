package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// APIError is the boundary representation of a failed request: a wire code,
// a safe human message, and the HTTP status to render it with. It is created
// once at the point the handler classifies an error and rendered exactly once.
type APIError struct {
	Status  int
	Code    string
	Message string
}

// ErrorResponse is the compact error envelope, the default rendering.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the code and message inside the envelope.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ProblemResponse is the RFC 7807 problem-document rendering, selected when
// the client's Accept header mentions application/problem+json.
type ProblemResponse struct {
	Type          string `json:"type"`
	Title         string `json:"title"`
	Status        int    `json:"status"`
	Detail        string `json:"detail"`
	CorrelationID string `json:"correlation_id"`
}

// WantsProblem reports whether the request prefers problem documents over
// the compact envelope. Matching is a case-insensitive substring check on
// the Accept header.
func WantsProblem(r *http.Request) bool {
	return strings.Contains(strings.ToLower(r.Header.Get("Accept")), "application/problem+json")
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithAPIError renders apiErr in exactly one of the two forms chosen
// by content negotiation. Problem documents get a fresh correlation id per
// response.
func RespondWithAPIError(w http.ResponseWriter, r *http.Request, apiErr APIError) {
	traceID := GetTraceID(r.Context())

	slog.Debug("sending error response",
		slog.Int("status_code", apiErr.Status),
		slog.String("code", apiErr.Code),
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method))

	if WantsProblem(r) {
		RespondWithJSON(w, r, apiErr.Status, problemFor(apiErr))
		return
	}

	RespondWithJSON(w, r, apiErr.Status, ErrorResponse{
		Error: ErrorDetail{Code: apiErr.Code, Message: apiErr.Message},
	})
}

// problemFor builds the problem document for an APIError. Application error
// codes get a stable URN-style type tag; generic HTTP failures keep the
// about:blank type the RFC reserves for plain status semantics.
func problemFor(apiErr APIError) ProblemResponse {
	problemType := "urn:wishlist:error:" + apiErr.Code
	title := apiErr.Code
	if apiErr.Code == CodeHTTPError {
		problemType = "about:blank"
		title = "HTTP Error"
	}
	return ProblemResponse{
		Type:          problemType,
		Title:         title,
		Status:        apiErr.Status,
		Detail:        apiErr.Message,
		CorrelationID: uuid.NewString(),
	}
}

// Wire error codes shared by both renderings.
const (
	// CodeHTTPError covers authentication failures and unclassified HTTP errors.
	CodeHTTPError = "http_error"

	// CodeValidationError covers schema, sort-key, duplicate-id and
	// size-limit violations.
	CodeValidationError = "validation_error"

	// CodeNotFound covers lookups that miss within the caller's records.
	CodeNotFound = "not_found"
)
