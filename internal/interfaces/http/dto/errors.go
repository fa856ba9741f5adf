package dto

import "net/http"

// Standardized error codes returned to API clients.
// Format: ERR_<CATEGORY>

const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeValidation is used when request binding or validation fails
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeUnauthorized is used when authentication is missing or invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the caller lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeNotFound is used when a resource does not exist
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeConflict is used when a resource conflicts with existing state
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeInvalidState is used when an operation is invalid for the
	// resource's current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeUpstream is used when the connected platform fails
	ErrCodeUpstream = "ERR_UPSTREAM"
	// ErrCodeRateLimited is used when the rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps standardized error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:      http.StatusInternalServerError,
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeConflict:     http.StatusConflict,
	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodeUpstream:     http.StatusBadGateway,
	ErrCodeRateLimited:  http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for a standardized error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to standardized API codes.
// Domain codes not listed here pass through GetHTTPStatus and default to 500,
// which keeps unclassified errors server-side instead of leaking as client
// errors.
var DomainErrorCodeMapping = map[string]string{
	// Lookup failures
	"NOT_FOUND":        ErrCodeNotFound,
	"TENANT_NOT_FOUND": ErrCodeNotFound,
	"USER_NOT_FOUND":   ErrCodeNotFound,
	"DRAFT_NOT_FOUND":  ErrCodeNotFound,
	"RULE_NOT_FOUND":   ErrCodeNotFound,
	"ORDER_NOT_FOUND":  ErrCodeNotFound,
	"ITEM_NOT_FOUND":   ErrCodeNotFound,

	// Uniqueness conflicts
	"ALREADY_EXISTS":    ErrCodeConflict,
	"SLUG_TAKEN":        ErrCodeConflict,
	"SHOP_DOMAIN_TAKEN": ErrCodeConflict,
	"EMAIL_TAKEN":       ErrCodeConflict,

	// Authentication and authorization
	"UNAUTHORIZED":        ErrCodeUnauthorized,
	"INVALID_CREDENTIALS": ErrCodeUnauthorized,
	"INVALID_TOKEN":       ErrCodeUnauthorized,
	"ACCOUNT_DISABLED":    ErrCodeForbidden,
	"TENANT_SUSPENDED":    ErrCodeForbidden,
	"FORBIDDEN":           ErrCodeForbidden,
	"TENANT_MISMATCH":     ErrCodeForbidden,

	// State machine violations
	"INVALID_STATE":     ErrCodeInvalidState,
	"ALREADY_SUSPENDED": ErrCodeInvalidState,
	"ALREADY_ACTIVE":    ErrCodeInvalidState,

	// Invalid input caught past binding, in domain constructors
	"INVALID_INPUT":        ErrCodeValidation,
	"INVALID_SLUG":         ErrCodeValidation,
	"INVALID_NAME":         ErrCodeValidation,
	"INVALID_EMAIL":        ErrCodeValidation,
	"INVALID_PASSWORD":     ErrCodeValidation,
	"INVALID_ROLE":         ErrCodeValidation,
	"INVALID_STATUS":       ErrCodeValidation,
	"INVALID_REASON":       ErrCodeValidation,
	"INVALID_ORDER_ID":     ErrCodeValidation,
	"INVALID_ORDER_NUMBER": ErrCodeValidation,
	"INVALID_CHANNEL":      ErrCodeValidation,
	"INVALID_QUANTITY":     ErrCodeValidation,
	"INVALID_TITLE":        ErrCodeValidation,
	"INVALID_PRICE":        ErrCodeValidation,
	"INVALID_PHOTO_URL":    ErrCodeValidation,
	"INVALID_CONDITION":    ErrCodeValidation,
	"INVALID_OPERATOR":     ErrCodeValidation,
	"INVALID_GROUP":        ErrCodeValidation,
	"INVALID_ACTIONS":      ErrCodeValidation,
	"INVALID_PRIORITY":     ErrCodeValidation,
	"INVALID_OUTCOME":      ErrCodeValidation,
	"INVALID_TENANT":       ErrCodeValidation,
	"INVALID_DRAFT":        ErrCodeValidation,
	"SHOP_DOMAIN_REQUIRED": ErrCodeValidation,
	"BAD_REQUEST":          ErrCodeBadRequest,

	// Platform integration
	"NOT_CONNECTED":  ErrCodeInvalidState,
	"PLATFORM_ERROR": ErrCodeUpstream,

	"INTERNAL_ERROR": ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the standardized API
// format. Codes already standardized or unknown pass through unchanged.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
