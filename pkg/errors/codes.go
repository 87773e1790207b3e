package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal        ErrorCode = "COMMON_001"
	ErrCodeBadRequest      ErrorCode = "COMMON_002"
	ErrCodeNotFound        ErrorCode = "COMMON_005"
	ErrCodeConflict        ErrorCode = "COMMON_006"
	ErrCodeValidation      ErrorCode = "COMMON_010"
	ErrCodeSerialization   ErrorCode = "COMMON_011"
	ErrCodeNotImplemented  ErrorCode = "COMMON_016"
	ErrCodeCanceled        ErrorCode = "COMMON_017"
	ErrCodeConfigInvalid   ErrorCode = "COMMON_018"
	ErrCodeFeatureDisabled ErrorCode = "COMMON_015"
)

// Lien Deadline Module Error Codes
const (
	ErrCodeInvalidDate             ErrorCode = "LIEN_001"
	ErrCodeUnsupportedJurisdiction ErrorCode = "LIEN_002"
	ErrCodeRuleCatalog             ErrorCode = "LIEN_003"
	ErrCodeInvalidRole             ErrorCode = "LIEN_004"
	ErrCodeInvalidProjectType      ErrorCode = "LIEN_005"
)

// Aliases used at call sites.
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeConflict     = ErrCodeConflict
	CodeValidation   = ErrCodeValidation
	CodeCanceled     = ErrCodeCanceled
	CodeOK           = ErrorCode("OK")
	CodeUnknown      = ErrorCode("UNKNOWN")

	CodeInvalidDate             = ErrCodeInvalidDate
	CodeUnsupportedJurisdiction = ErrCodeUnsupportedJurisdiction
	CodeRuleCatalog             = ErrCodeRuleCatalog
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.  The engine does
// not serve HTTP itself; the table lets the calling service translate
// failures without re-classifying them.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeConflict:        http.StatusConflict,
	ErrCodeValidation:      http.StatusUnprocessableEntity,
	ErrCodeSerialization:   http.StatusInternalServerError,
	ErrCodeNotImplemented:  http.StatusNotImplemented,
	ErrCodeCanceled:        499,
	ErrCodeConfigInvalid:   http.StatusInternalServerError,
	ErrCodeFeatureDisabled: http.StatusForbidden,

	ErrCodeInvalidDate:             http.StatusBadRequest,
	ErrCodeUnsupportedJurisdiction: http.StatusBadRequest,
	ErrCodeRuleCatalog:             http.StatusInternalServerError,
	ErrCodeInvalidRole:             http.StatusBadRequest,
	ErrCodeInvalidProjectType:      http.StatusBadRequest,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:        "internal error",
	ErrCodeBadRequest:      "bad request",
	ErrCodeNotFound:        "resource not found",
	ErrCodeConflict:        "resource conflict",
	ErrCodeValidation:      "validation failed",
	ErrCodeSerialization:   "serialization failed",
	ErrCodeNotImplemented:  "not implemented",
	ErrCodeCanceled:        "operation canceled",
	ErrCodeConfigInvalid:   "invalid configuration",
	ErrCodeFeatureDisabled: "feature disabled",

	ErrCodeInvalidDate:             "invalid date",
	ErrCodeUnsupportedJurisdiction: "unsupported jurisdiction",
	ErrCodeRuleCatalog:             "invalid jurisdiction rule catalog",
	ErrCodeInvalidRole:             "invalid role",
	ErrCodeInvalidProjectType:      "invalid project type",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
