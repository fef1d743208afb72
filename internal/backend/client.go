package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/voicecart/voicecart-server/internal/app/model"
)

// Client talks to the storefront backend's REST API. The backend owns all
// product, user and review data; this client is a thin pass-through with
// error classification.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a backend API client with the given configuration.
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.timeout(),
		},
	}, nil
}

// GetProduct fetches a single product document.
func (c *Client) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/product/getbyid/"+url.PathEscape(productID), "", nil)
	if err != nil {
		return nil, err
	}

	var product model.Product
	if err := json.Unmarshal(body, &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}
	return &product, nil
}

// ListProducts fetches the full catalog listing.
func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	return c.fetchProducts(ctx, "/product/getall")
}

// ListDeals fetches products currently on discount.
func (c *Client) ListDeals(ctx context.Context) ([]model.Product, error) {
	return c.fetchProducts(ctx, "/product/deals")
}

// SearchProducts fetches products matching a free-text query.
func (c *Client) SearchProducts(ctx context.Context, query string) ([]model.Product, error) {
	return c.fetchProducts(ctx, "/product/search?q="+url.QueryEscape(query))
}

func (c *Client) fetchProducts(ctx context.Context, path string) ([]model.Product, error) {
	body, err := c.doRequest(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}

	var products []model.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("failed to unmarshal products: %w", err)
	}
	return products, nil
}

// ListReviews fetches the public review list for a product, in the
// backend's order (newest first).
func (c *Client) ListReviews(ctx context.Context, productID string) ([]model.Review, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/reviews/product/"+url.PathEscape(productID), "", nil)
	if err != nil {
		return nil, err
	}

	var reviews []model.Review
	if err := json.Unmarshal(body, &reviews); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reviews: %w", err)
	}
	return reviews, nil
}

// GetMyReview fetches the calling user's own review for a product.
// Returns ErrNotFound when the user has not reviewed the product.
func (c *Client) GetMyReview(ctx context.Context, token, productID string) (*model.Review, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/reviews/user/"+url.PathEscape(productID), token, nil)
	if err != nil {
		return nil, err
	}

	var review model.Review
	if err := json.Unmarshal(body, &review); err != nil {
		return nil, fmt.Errorf("failed to unmarshal review: %w", err)
	}
	return &review, nil
}

type submitReviewRequest struct {
	ProductID string `json:"productId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

type updateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// SubmitReview creates a new review. The backend rejects a second review
// for the same product and user with a validation error.
func (c *Client) SubmitReview(ctx context.Context, token, productID string, rating int, comment string) (*model.Review, error) {
	payload := submitReviewRequest{ProductID: productID, Rating: rating, Comment: comment}
	body, err := c.doRequest(ctx, http.MethodPost, "/api/reviews/submit", token, payload)
	if err != nil {
		return nil, err
	}

	var review model.Review
	if err := json.Unmarshal(body, &review); err != nil {
		return nil, fmt.Errorf("failed to unmarshal created review: %w", err)
	}
	return &review, nil
}

// UpdateReview replaces the rating and comment of an existing review.
func (c *Client) UpdateReview(ctx context.Context, token, reviewID string, rating int, comment string) (*model.Review, error) {
	payload := updateReviewRequest{Rating: rating, Comment: comment}
	body, err := c.doRequest(ctx, http.MethodPut, "/api/reviews/update/"+url.PathEscape(reviewID), token, payload)
	if err != nil {
		return nil, err
	}

	var review model.Review
	if err := json.Unmarshal(body, &review); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated review: %w", err)
	}
	return &review, nil
}

// DeleteReview removes the user's review.
func (c *Client) DeleteReview(ctx context.Context, token, reviewID string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, "/api/reviews/delete/"+url.PathEscape(reviewID), token, nil)
	return err
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// doRequest performs a request against the backend and classifies failures
// into the package's sentinel errors.
func (c *Client) doRequest(ctx context.Context, method, path, token string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	message := fmt.Sprintf("status %d", resp.StatusCode)
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		message = errResp.Message
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s", ErrUnauthenticated, message)
	case http.StatusBadRequest, http.StatusConflict:
		return nil, fmt.Errorf("%w: %s", ErrValidation, message)
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, message)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, message)
	}
}
