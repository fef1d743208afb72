package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voicecart/voicecart-server/internal/errors"
	"github.com/voicecart/voicecart-server/internal/middleware"
	"github.com/voicecart/voicecart-server/internal/review"
)

type ReviewController struct {
	reviewManager *review.Manager
}

func NewReviewController(reviewManager *review.Manager) *ReviewController {
	return &ReviewController{
		reviewManager: reviewManager,
	}
}

type SubmitReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// GetReviewPage loads the product page's review state: product with
// rating summary, public review list, and the caller's own review when a
// credential resolves. Every GET refetches, so locally patched aggregates
// are replaced by the backend's authoritative values.
// GET /api/v1/products/:id/reviews
func (ctrl *ReviewController) GetReviewPage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID, _ := middleware.GetSessionID(c)

	productID := c.Param("id")
	if productID == "" {
		errors.BadRequest(c, errors.ValidationInvalidID, "Product id is required")
		return
	}

	flow := ctrl.reviewManager.Get(sessionID, productID)
	if err := flow.Load(c.Request.Context()); err != nil {
		log.Error("Failed to load review page", err, map[string]interface{}{
			"product_id": productID,
		})
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, flow.Snapshot())
}

// SubmitReview creates or updates the caller's review
// POST /api/v1/products/:id/reviews
func (ctrl *ReviewController) SubmitReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID, _ := middleware.GetSessionID(c)

	productID := c.Param("id")
	if productID == "" {
		errors.BadRequest(c, errors.ValidationInvalidID, "Product id is required")
		return
	}

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid review submission", map[string]interface{}{
			"product_id": productID,
			"error":      err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	flow := ctrl.reviewManager.Get(sessionID, productID)
	if err := flow.Submit(c.Request.Context(), req.Rating, req.Comment); err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, flow.Snapshot())
}

// DeleteReview removes the caller's review
// DELETE /api/v1/products/:id/reviews
func (ctrl *ReviewController) DeleteReview(c *gin.Context) {
	sessionID, _ := middleware.GetSessionID(c)

	productID := c.Param("id")
	if productID == "" {
		errors.BadRequest(c, errors.ValidationInvalidID, "Product id is required")
		return
	}

	flow := ctrl.reviewManager.Get(sessionID, productID)
	if err := flow.Delete(c.Request.Context()); err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, flow.Snapshot())
}

// StartEdit enters edit mode on the caller's existing review
// POST /api/v1/products/:id/reviews/edit
func (ctrl *ReviewController) StartEdit(c *gin.Context) {
	sessionID, _ := middleware.GetSessionID(c)

	productID := c.Param("id")
	if productID == "" {
		errors.BadRequest(c, errors.ValidationInvalidID, "Product id is required")
		return
	}

	flow := ctrl.reviewManager.Get(sessionID, productID)
	if err := flow.StartEdit(); err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, flow.Snapshot())
}

// CancelEdit leaves edit mode, restoring the draft from the own review
// DELETE /api/v1/products/:id/reviews/edit
func (ctrl *ReviewController) CancelEdit(c *gin.Context) {
	sessionID, _ := middleware.GetSessionID(c)

	productID := c.Param("id")
	if productID == "" {
		errors.BadRequest(c, errors.ValidationInvalidID, "Product id is required")
		return
	}

	flow := ctrl.reviewManager.Get(sessionID, productID)
	flow.CancelEdit()

	c.JSON(http.StatusOK, flow.Snapshot())
}
