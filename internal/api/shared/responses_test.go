package shared

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respond(t *testing.T, accept string, apiErr APIError) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/wishes/", nil)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	rec := httptest.NewRecorder()
	RespondWithAPIError(rec, req, apiErr)
	return rec
}

func TestRespondWithAPIError_CompactEnvelope(t *testing.T) {
	t.Parallel()

	rec := respond(t, "application/json", APIError{
		Status:  http.StatusNotFound,
		Code:    CodeNotFound,
		Message: "wish not found or not owned by user",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]map[string]string{
		"error": {
			"code":    "not_found",
			"message": "wish not found or not owned by user",
		},
	}, body)
}

func TestRespondWithAPIError_ProblemDocument(t *testing.T) {
	t.Parallel()

	rec := respond(t, "text/html, application/problem+json;q=0.9", APIError{
		Status:  http.StatusUnprocessableEntity,
		Code:    CodeValidationError,
		Message: "invalid record schema",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var problem ProblemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, "urn:wishlist:error:validation_error", problem.Type)
	assert.Equal(t, "validation_error", problem.Title)
	assert.Equal(t, http.StatusUnprocessableEntity, problem.Status)
	assert.Equal(t, "invalid record schema", problem.Detail)

	_, err := uuid.Parse(problem.CorrelationID)
	assert.NoError(t, err, "correlation id must be a UUID")
}

func TestRespondWithAPIError_ProblemForHTTPError(t *testing.T) {
	t.Parallel()

	rec := respond(t, "APPLICATION/PROBLEM+JSON", APIError{
		Status:  http.StatusUnauthorized,
		Code:    CodeHTTPError,
		Message: "unauthorized",
	})

	var problem ProblemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, "about:blank", problem.Type, "plain HTTP failures carry no application type")
	assert.Equal(t, "HTTP Error", problem.Title)
	assert.Equal(t, "unauthorized", problem.Detail)
}

func TestRespondWithAPIError_FreshCorrelationID(t *testing.T) {
	t.Parallel()

	apiErr := APIError{Status: http.StatusNotFound, Code: CodeNotFound, Message: "wish not found or not owned by user"}

	var first, second ProblemResponse
	require.NoError(t, json.Unmarshal(respond(t, "application/problem+json", apiErr).Body.Bytes(), &first))
	require.NoError(t, json.Unmarshal(respond(t, "application/problem+json", apiErr).Body.Bytes(), &second))

	assert.NotEqual(t, first.CorrelationID, second.CorrelationID,
		"every problem document gets its own correlation id")
}

func TestWantsProblem(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"":                                  false,
		"application/json":                  false,
		"application/problem+json":          true,
		"Application/Problem+JSON":          true,
		"text/html, application/problem+json": true,
	}
	for accept, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if accept != "" {
			req.Header.Set("Accept", accept)
		}
		assert.Equal(t, want, WantsProblem(req), "Accept: %q", accept)
	}
}
