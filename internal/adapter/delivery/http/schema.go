package http

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/shortener/internal/entity"
)

const statusError = "error"

// urlRequest represents the structure for a request to shorten a URL,
// optionally under a caller-chosen short code.
type urlRequest struct {
	OriginalURL string `json:"original_url" validate:"required,url"`
	ShortCode   string `json:"short_code,omitempty" validate:"omitempty,alphanum,min=4,max=12"`
}

// urlResponse represents the structure for a response containing shortened URL information.
type urlResponse struct {
	ID          string    `json:"id"`
	ShortCode   string    `json:"short_code"`
	OriginalURL string    `json:"original_url"`
	CreatedAt   time.Time `json:"created_at"`
}

func toURLResponse(url *entity.URL) urlResponse {
	return urlResponse{
		ID:          url.ID.String(),
		ShortCode:   url.ShortCode.String(),
		OriginalURL: url.OriginalURL.String(),
		CreatedAt:   url.CreatedAt,
	}
}

type resolveResponse struct {
	ShortCode   string `json:"short_code"`
	OriginalURL string `json:"original_url"`
}

// urlStatsResponse represents the structure for a response containing URL statistics.
type urlStatsResponse struct {
	ID          string    `json:"id"`
	ShortCode   string    `json:"short_code"`
	OriginalURL string    `json:"original_url"`
	Stats       urlStats  `json:"stats"`
	CreatedAt   time.Time `json:"created_at"`
}

type urlStats struct {
	AccessCount uint64 `json:"access_count"`
}

func toURLStatsResponse(url *entity.URL) urlStatsResponse {
	return urlStatsResponse{
		ID:          url.ID.String(),
		ShortCode:   url.ShortCode.String(),
		OriginalURL: url.OriginalURL.String(),
		Stats: urlStats{
			AccessCount: url.AccessCount,
		},
		CreatedAt: url.CreatedAt,
	}
}

type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// errorResponse represents a structured error response.
type errorResponse struct {
	Status   string            `json:"status"`
	Message  string            `json:"message"`
	Attempts int               `json:"attempts,omitempty"`
	Errors   []validationError `json:"errors,omitempty"`
}

var (
	emptyRequestBodyResponse = errorResponse{
		Status:  statusError,
		Message: "empty request body",
	}

	invalidRequestBodyResponse = errorResponse{
		Status:  statusError,
		Message: "invalid request body",
	}

	urlNotFoundResponse = errorResponse{
		Status:  statusError,
		Message: "url not found",
	}

	shortCodeExistsResponse = errorResponse{
		Status:  statusError,
		Message: "short code already exists",
	}

	serverErrorResponse = errorResponse{
		Status:  statusError,
		Message: "server error occurred",
	}
)

func generationFailedResponse(err error) errorResponse {
	resp := errorResponse{
		Status:  statusError,
		Message: "failed to generate unique short code",
	}

	var genErr *entity.GenerationError
	if errors.As(err, &genErr) {
		resp.Attempts = genErr.Attempts
	}

	return resp
}

func fieldErrorResponse(field string, err error) errorResponse {
	return errorResponse{
		Status:  statusError,
		Message: "validation error",
		Errors: []validationError{
			{Field: field, Message: err.Error()},
		},
	}
}

func messageForTag(tag string) string {
	switch tag {
	case "required":
		return "this field is required"
	case "url":
		return "invalid url"
	case "alphanum":
		return "must contain only alphanumeric characters"
	case "min":
		return "too short"
	case "max":
		return "too long"
	default:
		return "invalid value"
	}
}

func getValidationErrors(err error) []validationError {
	var validationErrs []validationError

	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		for _, e := range errs {
			validationErrs = append(validationErrs, validationError{
				Field:   e.Field(),
				Message: messageForTag(e.Tag()),
			})
		}
	}

	return validationErrs
}

func validationErrorResponse(err error) errorResponse {
	return errorResponse{
		Status:  statusError,
		Message: "validation error",
		Errors:  getValidationErrors(err),
	}
}
