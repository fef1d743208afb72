package errors

// Error code constants returned in API responses.
// Format: CATEGORY_SPECIFIC_DETAIL. Frontends map these codes to copy.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthenticated = "AUTH_UNAUTHENTICATED" // login required
	AuthSessionInvalid  = "AUTH_SESSION_INVALID" // bad or expired session token

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // malformed request body
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // missing or malformed id

	// ==================== Reviews (REVIEW_) ====================
	ReviewInvalidRating   = "REVIEW_INVALID_RATING"    // rating outside 1-5
	ReviewEmptyComment    = "REVIEW_EMPTY_COMMENT"     // blank comment
	ReviewAlreadyExists   = "REVIEW_ALREADY_EXISTS"    // backend duplicate rejection
	ReviewNotFound        = "REVIEW_NOT_FOUND"         // no own review to act on
	ReviewRequestInFlight = "REVIEW_REQUEST_IN_FLIGHT" // mutation already running

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound = "RESOURCE_NOT_FOUND" // product or review missing

	// ==================== Backend (BACKEND_) ====================
	BackendUnavailable = "BACKEND_UNAVAILABLE" // storefront backend unreachable

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError = "INTERNAL_SERVER_ERROR" // unclassified failure
)
