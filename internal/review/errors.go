package review

import (
	"errors"

	"github.com/voicecart/voicecart-server/internal/backend"
)

var (
	ErrUnauthenticated = errors.New("login required for review operations")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrEmptyComment    = errors.New("comment must not be empty")
	ErrNoReview        = errors.New("no review to delete")
	ErrRequestInFlight = errors.New("a review request is already in flight")
	ErrTransient       = errors.New("review operation failed, try again")
)

// Kind classifies a review failure for presentation.
type Kind string

const (
	KindUnauthenticated Kind = "unauthenticated"
	KindValidation      Kind = "validation"
	KindTransient       Kind = "transient"
)

// Classify maps an operation error onto the user-facing taxonomy. Missing
// credentials prompt a login, validation failures (including the backend's
// duplicate-review rejection) are shown inline, everything else is a
// generic retry message.
func Classify(err error) Kind {
	switch {
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, backend.ErrUnauthenticated):
		return KindUnauthenticated
	case errors.Is(err, ErrInvalidRating),
		errors.Is(err, ErrEmptyComment),
		errors.Is(err, ErrNoReview),
		errors.Is(err, backend.ErrValidation):
		return KindValidation
	default:
		return KindTransient
	}
}
