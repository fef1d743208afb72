package review

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/voicecart/voicecart-server/internal/app/model"
	"github.com/voicecart/voicecart-server/internal/backend"
	"github.com/voicecart/voicecart-server/pkg/logger"
)

// BackendAPI is the slice of the backend client the flow depends on.
type BackendAPI interface {
	GetProduct(ctx context.Context, productID string) (*model.Product, error)
	ListReviews(ctx context.Context, productID string) ([]model.Review, error)
	GetMyReview(ctx context.Context, token, productID string) (*model.Review, error)
	SubmitReview(ctx context.Context, token, productID string, rating int, comment string) (*model.Review, error)
	UpdateReview(ctx context.Context, token, reviewID string, rating int, comment string) (*model.Review, error)
	DeleteReview(ctx context.Context, token, reviewID string) error
}

// TokenSource resolves the shopper's bearer token; empty means not logged in.
type TokenSource interface {
	Token(ctx context.Context, sessionID string) string
}

// DefaultBannerDelay is how long transient success/error banners stay up.
const DefaultBannerDelay = 3 * time.Second

// Banner is a transient success or error message that clears itself.
type Banner struct {
	Kind    string `json:"kind"` // "success" or "error"
	Code    Kind   `json:"code,omitempty"`
	Message string `json:"message"`
}

// State is a snapshot of the flow for rendering a product page.
type State struct {
	Loaded   bool                 `json:"loaded"`
	Product  *model.Product       `json:"product,omitempty"`
	Summary  model.RatingSummary  `json:"summary"`
	Reviews  []model.Review       `json:"reviews"`
	MyReview *model.Review        `json:"myReview,omitempty"`
	Draft    model.ReviewDraft    `json:"draft"`
	Editing  bool                 `json:"editing"`
	Busy     bool                 `json:"busy"`
	Banner   *Banner              `json:"banner,omitempty"`
}

// Flow keeps a product page's review state consistent: the public review
// list, the caller's own review, and the product's rating summary move in
// lockstep through create, update and delete.
//
// The review count is patched optimistically; the average rating is left
// untouched because the backend's formula is authoritative, and the next
// Load overwrites both. At most one mutating request is in flight per flow,
// and a response that arrives after the flow has been reloaded is discarded.
type Flow struct {
	mu sync.Mutex

	api    BackendAPI
	tokens TokenSource

	sessionID string
	productID string

	loaded   bool
	product  *model.Product
	summary  model.RatingSummary
	reviews  []model.Review
	myReview *model.Review
	draft    model.ReviewDraft
	editing  bool

	busy       bool
	generation uint64

	banner      *Banner
	bannerTimer *time.Timer
	bannerDelay time.Duration
}

// NewFlow creates a flow for one shopper session viewing one product.
func NewFlow(api BackendAPI, tokens TokenSource, sessionID, productID string) *Flow {
	return &Flow{
		api:         api,
		tokens:      tokens,
		sessionID:   sessionID,
		productID:   productID,
		reviews:     []model.Review{},
		bannerDelay: DefaultBannerDelay,
	}
}

// SetBannerDelay overrides the banner auto-clear delay. Intended for tests.
func (f *Flow) SetBannerDelay(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bannerDelay = d
}

// Load fetches the product, the public review list, and (when a credential
// resolves) the caller's own review, then replaces the local state with the
// authoritative result. A Load supersedes any in-flight response.
func (f *Flow) Load(ctx context.Context) error {
	f.mu.Lock()
	f.generation++
	gen := f.generation
	token := f.tokens.Token(ctx, f.sessionID)
	f.mu.Unlock()

	product, err := f.api.GetProduct(ctx, f.productID)
	if err != nil {
		logger.Error("Failed to fetch product for review page", err, map[string]interface{}{
			"product_id": f.productID,
		})
		return ErrTransient
	}

	reviews, err := f.api.ListReviews(ctx, f.productID)
	if err != nil {
		logger.Error("Failed to fetch review list", err, map[string]interface{}{
			"product_id": f.productID,
		})
		return ErrTransient
	}

	var myReview *model.Review
	if token != "" {
		mine, err := f.api.GetMyReview(ctx, token, f.productID)
		switch {
		case err == nil:
			myReview = mine
		case errors.Is(err, backend.ErrNotFound):
			// Not having reviewed yet is the normal case.
		case errors.Is(err, backend.ErrUnauthenticated):
			// Stale credential: the page still renders as a guest.
			logger.Warn("Own-review fetch rejected, rendering as guest", map[string]interface{}{
				"product_id": f.productID,
			})
		default:
			logger.Error("Failed to fetch own review", err, map[string]interface{}{
				"product_id": f.productID,
			})
			return ErrTransient
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.generation {
		// A newer Load superseded this one; drop the result.
		logger.Debug("Discarding stale review page load", map[string]interface{}{
			"product_id": f.productID,
		})
		return nil
	}

	if reviews == nil {
		reviews = []model.Review{}
	}
	f.loaded = true
	f.product = product
	f.summary = product.Summary()
	f.reviews = reviews
	f.myReview = myReview
	f.editing = false
	f.resetDraftLocked()
	return nil
}

// Snapshot returns the current state for rendering.
func (f *Flow) Snapshot() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	reviews := make([]model.Review, len(f.reviews))
	copy(reviews, f.reviews)

	state := State{
		Loaded:  f.loaded,
		Summary: f.summary,
		Reviews: reviews,
		Draft:   f.draft,
		Editing: f.editing,
		Busy:    f.busy,
	}
	if f.product != nil {
		product := *f.product
		state.Product = &product
	}
	if f.myReview != nil {
		mine := *f.myReview
		state.MyReview = &mine
	}
	if f.banner != nil {
		banner := *f.banner
		state.Banner = &banner
	}
	return state
}

// SetDraft records the rating/comment being composed or edited.
func (f *Flow) SetDraft(rating int, comment string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = model.ReviewDraft{Rating: rating, Comment: comment}
}

// StartEdit enters edit mode on the caller's existing review.
func (f *Flow) StartEdit() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.myReview == nil {
		return ErrNoReview
	}
	f.editing = true
	f.draft = model.ReviewDraft{Rating: f.myReview.Rating, Comment: f.myReview.Comment}
	return nil
}

// CancelEdit leaves edit mode and restores the draft from the own review.
func (f *Flow) CancelEdit() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.editing = false
	f.resetDraftLocked()
}

// Submit creates the caller's review or, when one already exists, updates
// it in place. Validation and the credential check happen before any
// network call.
func (f *Flow) Submit(ctx context.Context, rating int, comment string) error {
	comment = strings.TrimSpace(comment)

	f.mu.Lock()
	f.clearBannerLocked()

	if f.busy {
		f.mu.Unlock()
		return ErrRequestInFlight
	}
	if rating < 1 || rating > 5 {
		f.failLocked(ErrInvalidRating)
		f.mu.Unlock()
		return ErrInvalidRating
	}
	if comment == "" {
		f.failLocked(ErrEmptyComment)
		f.mu.Unlock()
		return ErrEmptyComment
	}

	token := f.tokens.Token(ctx, f.sessionID)
	if token == "" {
		f.failLocked(ErrUnauthenticated)
		f.mu.Unlock()
		return ErrUnauthenticated
	}

	editing := f.myReview != nil
	var reviewID string
	if editing {
		reviewID = f.myReview.ID
	}
	f.busy = true
	gen := f.generation
	f.mu.Unlock()

	var created *model.Review
	var err error
	if editing {
		created, err = f.api.UpdateReview(ctx, token, reviewID, rating, comment)
	} else {
		created, err = f.api.SubmitReview(ctx, token, f.productID, rating, comment)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false

	if gen != f.generation {
		logger.Debug("Discarding stale review mutation response", map[string]interface{}{
			"product_id": f.productID,
		})
		return nil
	}

	if err != nil {
		logger.Warn("Review submission failed", map[string]interface{}{
			"product_id": f.productID,
			"editing":    editing,
			"error":      err.Error(),
		})
		f.failLocked(err)
		return err
	}

	if editing {
		// Replace in place so the list order never changes on edit.
		for i := range f.reviews {
			if f.reviews[i].ID == created.ID {
				f.reviews[i] = *created
				break
			}
		}
		f.myReview = created
		f.editing = false
		f.setBannerLocked(&Banner{Kind: "success", Message: "Review updated"})
	} else {
		// New reviews go to the front; the count is patched optimistically
		// while the average waits for the next authoritative fetch.
		f.reviews = append([]model.Review{*created}, f.reviews...)
		f.myReview = created
		f.summary.Reviews++
		f.setBannerLocked(&Banner{Kind: "success", Message: "Review submitted"})
	}
	f.resetDraftLocked()

	logger.Info("Review saved", map[string]interface{}{
		"product_id": f.productID,
		"review_id":  created.ID,
		"editing":    editing,
	})
	return nil
}

// Delete removes the caller's own review and reconciles list, pointer and
// count.
func (f *Flow) Delete(ctx context.Context) error {
	f.mu.Lock()
	f.clearBannerLocked()

	if f.busy {
		f.mu.Unlock()
		return ErrRequestInFlight
	}
	if f.myReview == nil {
		f.failLocked(ErrNoReview)
		f.mu.Unlock()
		return ErrNoReview
	}

	token := f.tokens.Token(ctx, f.sessionID)
	if token == "" {
		f.failLocked(ErrUnauthenticated)
		f.mu.Unlock()
		return ErrUnauthenticated
	}

	reviewID := f.myReview.ID
	f.busy = true
	gen := f.generation
	f.mu.Unlock()

	err := f.api.DeleteReview(ctx, token, reviewID)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false

	if gen != f.generation {
		logger.Debug("Discarding stale review delete response", map[string]interface{}{
			"product_id": f.productID,
		})
		return nil
	}

	if err != nil {
		logger.Warn("Review deletion failed", map[string]interface{}{
			"product_id": f.productID,
			"review_id":  reviewID,
			"error":      err.Error(),
		})
		f.failLocked(err)
		return err
	}

	for i := range f.reviews {
		if f.reviews[i].ID == reviewID {
			f.reviews = append(f.reviews[:i], f.reviews[i+1:]...)
			break
		}
	}
	f.myReview = nil
	f.editing = false
	f.resetDraftLocked()
	if f.summary.Reviews > 0 {
		f.summary.Reviews--
	}
	f.setBannerLocked(&Banner{Kind: "success", Message: "Review deleted"})

	logger.Info("Review deleted", map[string]interface{}{
		"product_id": f.productID,
		"review_id":  reviewID,
	})
	return nil
}

// resetDraftLocked mirrors the own review into the draft, or empties it.
// Callers must hold f.mu.
func (f *Flow) resetDraftLocked() {
	if f.myReview != nil {
		f.draft = model.ReviewDraft{Rating: f.myReview.Rating, Comment: f.myReview.Comment}
	} else {
		f.draft = model.ReviewDraft{}
	}
}

// failLocked raises an error banner for a classified failure. Callers must
// hold f.mu.
func (f *Flow) failLocked(err error) {
	f.setBannerLocked(&Banner{Kind: "error", Code: Classify(err), Message: err.Error()})
}

// setBannerLocked shows a banner and arms its auto-clear timer. Callers
// must hold f.mu.
func (f *Flow) setBannerLocked(b *Banner) {
	if f.bannerTimer != nil {
		f.bannerTimer.Stop()
	}
	f.banner = b
	f.bannerTimer = time.AfterFunc(f.bannerDelay, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.banner == b {
			f.banner = nil
		}
	})
}

// clearBannerLocked drops the current banner before a new attempt. Callers
// must hold f.mu.
func (f *Flow) clearBannerLocked() {
	if f.bannerTimer != nil {
		f.bannerTimer.Stop()
		f.bannerTimer = nil
	}
	f.banner = nil
}
