package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/wishlist-api/internal/api/shared"
	"github.com/phrazzld/wishlist-api/internal/domain"
	"github.com/phrazzld/wishlist-api/internal/safejson"
	"github.com/phrazzld/wishlist-api/internal/service"
	"github.com/phrazzld/wishlist-api/internal/service/auth"
	"github.com/phrazzld/wishlist-api/internal/store"
)

// MapError classifies an internal error into its boundary form: wire code,
// HTTP status, and a sanitized message. Internal error text never reaches
// the client; unrecognized errors fall into the generic 500 bucket.
func MapError(err error) shared.APIError {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		return shared.APIError{
			Status:  http.StatusUnauthorized,
			Code:    shared.CodeHTTPError,
			Message: "unauthorized",
		}

	case errors.Is(err, store.ErrWishNotFound):
		return shared.APIError{
			Status:  http.StatusNotFound,
			Code:    shared.CodeNotFound,
			Message: "wish not found or not owned by user",
		}

	case errors.Is(err, store.ErrDuplicateID):
		return shared.APIError{
			Status:  http.StatusUnprocessableEntity,
			Code:    shared.CodeValidationError,
			Message: "id already exists for this user",
		}

	case errors.Is(err, store.ErrInvalidSortKey):
		return shared.APIError{
			Status:  http.StatusUnprocessableEntity,
			Code:    shared.CodeValidationError,
			Message: "invalid sort key",
		}

	case errors.Is(err, safejson.ErrTooLarge):
		return shared.APIError{
			Status:  http.StatusRequestEntityTooLarge,
			Code:    shared.CodeValidationError,
			Message: "request body too large",
		}

	case errors.Is(err, service.ErrImportTooLarge):
		return shared.APIError{
			Status:  http.StatusRequestEntityTooLarge,
			Code:    shared.CodeValidationError,
			Message: service.ErrImportTooLarge.Error(),
		}

	case errors.Is(err, safejson.ErrInvalidFormat), errors.Is(err, service.ErrImportFormat):
		return shared.APIError{
			Status:  http.StatusUnprocessableEntity,
			Code:    shared.CodeValidationError,
			Message: "invalid import format",
		}

	case errors.Is(err, domain.ErrInvalidWish):
		return shared.APIError{
			Status:  http.StatusUnprocessableEntity,
			Code:    shared.CodeValidationError,
			Message: "invalid record schema",
		}

	default:
		return shared.APIError{
			Status:  http.StatusInternalServerError,
			Code:    shared.CodeHTTPError,
			Message: "internal server error",
		}
	}
}

// ValidationError builds the 422 boundary error used for malformed query
// parameters and path segments.
func ValidationError(message string) shared.APIError {
	return shared.APIError{
		Status:  http.StatusUnprocessableEntity,
		Code:    shared.CodeValidationError,
		Message: message,
	}
}
