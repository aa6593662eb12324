package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is a parsed storage error: a stable code plus a message
// safe to show the shopper.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError maps gorm and postgres driver errors to an ErrorInfo.
// The context string (e.g. "user", "create coupon") picks the most
// specific message when the raw error is generic.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "Something went wrong"}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: getNotFoundMessage(context)}
	}

	// Postgres unique constraint violation (23505)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStr)
	}

	// Foreign key constraint violation (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return ErrorInfo{Code: ResourceNotFound, Message: "Referenced record does not exist"}
	}

	// Not null constraint violation (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return ErrorInfo{Code: ValidationRequired, Message: "A required field is missing"}
	}

	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "An external service is unavailable. Please try again later",
		}
	}

	return ErrorInfo{Code: InternalServerError, Message: getDefaultErrorMessage(context)}
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "email") || strings.Contains(errLower, "idx_users_email") {
		return ErrorInfo{Code: AuthEmailAlreadyExists, Message: "Email is already registered"}
	}
	if strings.Contains(errLower, "coupons") && strings.Contains(errLower, "code") {
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "A coupon with this code already exists"}
	}
	if strings.Contains(errLower, "idx_coupon_user_usage") {
		return ErrorInfo{Code: CouponAlreadyUsed, Message: "Coupon has already been used"}
	}
	if strings.Contains(errLower, "feedbacks") && strings.Contains(errLower, "order_id") {
		return ErrorInfo{Code: FeedbackAlreadyExists, Message: "Feedback has already been submitted for this order"}
	}
	return ErrorInfo{Code: ResourceAlreadyExists, Message: "This record already exists"}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "product"):
		return "Product not found"
	case strings.Contains(contextLower, "variant"):
		return "Product variant not found"
	case strings.Contains(contextLower, "order"):
		return "Order not found"
	case strings.Contains(contextLower, "coupon"):
		return "Invalid coupon code"
	case strings.Contains(contextLower, "user"):
		return "User not found"
	case strings.Contains(contextLower, "feedback"):
		return "Feedback not found"
	case strings.Contains(contextLower, "notification"):
		return "Notification not found"
	case strings.Contains(contextLower, "contact"):
		return "Contact message not found"
	}
	return "The requested record was not found"
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "create"):
		return "Failed to save. Please try again later"
	case strings.Contains(contextLower, "update"):
		return "Failed to update. Please try again later"
	case strings.Contains(contextLower, "delete"):
		return "Failed to delete. Please try again later"
	}
	return "Something went wrong. Please try again later"
}
