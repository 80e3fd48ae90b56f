package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrRecipeNotFound is returned when a recipe does not exist for the
	// requesting user. Another user's recipe is reported the same way.
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrTagNotFound is returned when a tag does not exist for the requesting user.
	ErrTagNotFound = errors.New("tag not found")
	// ErrIngredientNotFound is returned when an ingredient does not exist for the requesting user.
	ErrIngredientNotFound = errors.New("ingredient not found")
	// ErrInvalidImage is returned when an uploaded payload is not a decodable image.
	ErrInvalidImage = errors.New("invalid image")
	// ErrEmailRequired is returned when an email is missing.
	ErrEmailRequired = errors.New("email is required")
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("user with this email already exists")
	// ErrInvalidFilter is returned when a list filter parameter is malformed.
	ErrInvalidFilter = errors.New("invalid filter parameter")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Ownership violations
// surface as not-found so foreign records look nonexistent to the caller.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrRecipeNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "RECIPE_NOT_FOUND")
	case errors.Is(err, ErrTagNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TAG_NOT_FOUND")
	case errors.Is(err, ErrIngredientNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "INGREDIENT_NOT_FOUND")
	case errors.Is(err, ErrInvalidImage):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_IMAGE")
	case errors.Is(err, ErrEmailRequired):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_REQUIRED")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrInvalidFilter):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_FILTER")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
