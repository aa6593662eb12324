package errors

// Error code constants, surfaced in the JSON error body so the
// storefront can map them to UI copy.
// Format: CATEGORY_SPECIFIC_DETAIL.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"
	AuthEmailNotVerified   = "AUTH_EMAIL_NOT_VERIFIED"
	AuthTokenNotFound      = "AUTH_VERIFICATION_TOKEN_INVALID"
	AuthAlreadyVerified    = "AUTH_ALREADY_VERIFIED"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND"
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidEnum   = "VALIDATION_INVALID_ENUM"
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Coupons (COUPON_) ====================
	CouponNotFound     = "COUPON_NOT_FOUND"
	CouponInactive     = "COUPON_INACTIVE"
	CouponExpired      = "COUPON_EXPIRED"
	CouponExhausted    = "COUPON_EXHAUSTED"
	CouponAlreadyUsed  = "COUPON_ALREADY_USED"
	CouponNewUsersOnly = "COUPON_NEW_USERS_ONLY"

	// ==================== Orders (ORDER_) ====================
	OrderNotFound          = "ORDER_NOT_FOUND"
	OrderEmptyItems        = "ORDER_EMPTY_ITEMS"
	OrderInvalidStatus     = "ORDER_INVALID_STATUS"
	OrderInsufficientStock = "ORDER_INSUFFICIENT_STOCK"

	// ==================== Feedback (FEEDBACK_) ====================
	FeedbackNotFound      = "FEEDBACK_NOT_FOUND"
	FeedbackAlreadyExists = "FEEDBACK_ALREADY_EXISTS"
	FeedbackInvalidRating = "FEEDBACK_INVALID_RATING"
	FeedbackDisplayLimit  = "FEEDBACK_DISPLAY_LIMIT"

	// ==================== Inventory (INVENTORY_) ====================
	InventoryVariantNotFound = "INVENTORY_VARIANT_NOT_FOUND"

	// ==================== Notifications (NOTIFICATION_) ====================
	NotificationNotFound = "NOTIFICATION_NOT_FOUND"

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Payments (PAYMENT_) ====================
	PaymentSourceFailed = "PAYMENT_SOURCE_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
)
