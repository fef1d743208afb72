package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voicecart/voicecart-server/internal/backend"
	"github.com/voicecart/voicecart-server/internal/review"
)

// ErrorInfo pairs an HTTP status with the response envelope for an error.
type ErrorInfo struct {
	Status  int
	Code    string
	Message string
}

// ParseError converts operation errors from the review flow and the
// backend client into a status, code and user-facing message. Unknown
// errors fall through to an internal server error so nothing sensitive
// leaks.
func ParseError(err error) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Status:  http.StatusInternalServerError,
			Code:    InternalServerError,
			Message: "Something went wrong",
		}
	}

	switch {
	case errors.Is(err, review.ErrUnauthenticated), errors.Is(err, backend.ErrUnauthenticated):
		return ErrorInfo{
			Status:  http.StatusUnauthorized,
			Code:    AuthUnauthenticated,
			Message: "Please log in to continue",
		}
	case errors.Is(err, review.ErrInvalidRating):
		return ErrorInfo{
			Status:  http.StatusBadRequest,
			Code:    ReviewInvalidRating,
			Message: "Rating must be between 1 and 5",
		}
	case errors.Is(err, review.ErrEmptyComment):
		return ErrorInfo{
			Status:  http.StatusBadRequest,
			Code:    ReviewEmptyComment,
			Message: "Please write a comment",
		}
	case errors.Is(err, review.ErrNoReview):
		return ErrorInfo{
			Status:  http.StatusNotFound,
			Code:    ReviewNotFound,
			Message: "You have not reviewed this product",
		}
	case errors.Is(err, review.ErrRequestInFlight):
		return ErrorInfo{
			Status:  http.StatusConflict,
			Code:    ReviewRequestInFlight,
			Message: "Your previous request is still being processed",
		}
	case errors.Is(err, backend.ErrValidation):
		return ErrorInfo{
			Status:  http.StatusBadRequest,
			Code:    ReviewAlreadyExists,
			Message: err.Error(),
		}
	case errors.Is(err, backend.ErrNotFound):
		return ErrorInfo{
			Status:  http.StatusNotFound,
			Code:    ResourceNotFound,
			Message: "Not found",
		}
	case errors.Is(err, backend.ErrUnavailable), errors.Is(err, review.ErrTransient):
		return ErrorInfo{
			Status:  http.StatusBadGateway,
			Code:    BackendUnavailable,
			Message: "The store is temporarily unavailable. Please try again",
		}
	default:
		return ErrorInfo{
			Status:  http.StatusInternalServerError,
			Code:    InternalServerError,
			Message: "Something went wrong",
		}
	}
}

// Respond writes the parsed error to the response.
func Respond(c *gin.Context, err error) {
	info := ParseError(err)
	RespondWithError(c, info.Status, info.Code, info.Message)
}
