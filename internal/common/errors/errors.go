// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Recruitment workflow error codes
const (
	ErrCodeApplicationNotFound      ErrorCode = "APPLICATION_NOT_FOUND"
	ErrCodeInvalidStatusTransition  ErrorCode = "INVALID_STATUS_TRANSITION"
	ErrCodeStatusUpdateFailed       ErrorCode = "STATUS_UPDATE_FAILED"
	ErrCodeDuplicateApplication     ErrorCode = "DUPLICATE_APPLICATION"
	ErrCodeApplicationInvalid       ErrorCode = "APPLICATION_VALIDATION_FAILED"

	ErrCodeProposalValidationFailed ErrorCode = "PROPOSAL_VALIDATION_FAILED"
	ErrCodeProposalNotFound         ErrorCode = "PROPOSAL_NOT_FOUND"
	ErrCodeGuideValidationFailed    ErrorCode = "GUIDE_VALIDATION_FAILED"
	ErrCodeGuideNotFound            ErrorCode = "GUIDE_NOT_FOUND"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"

	ErrCodeOverlayReadFailed  ErrorCode = "OVERLAY_READ_FAILED"
	ErrCodeOverlayWriteFailed ErrorCode = "OVERLAY_WRITE_FAILED"

	ErrCodeSeekerNotFound      ErrorCode = "SEEKER_NOT_FOUND"
	ErrCodeProfileFetchFailed  ErrorCode = "PROFILE_FETCH_FAILED"
	ErrCodeProfileFetchTimeout ErrorCode = "PROFILE_FETCH_TIMEOUT"

	ErrCodeSearchQueryFailed ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeSearchTimeout     ErrorCode = "SEARCH_TIMEOUT"
	ErrCodeIndexNotFound     ErrorCode = "INDEX_NOT_FOUND"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	if e.ErrorVariables != nil {
		for k, v := range e.ErrorVariables {
			vars[k] = v
		}
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewApplicationNotFoundError creates a non-retryable lookup error.
func NewApplicationNotFoundError(applicationID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeApplicationNotFound,
		Message:   "Application not found",
		Details:   fmt.Sprintf("applicationId: %s", applicationID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidStatusTransitionError creates a non-retryable business rule error.
func NewInvalidStatusTransitionError(from, to string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidStatusTransition,
		Message:   "Status transition not allowed",
		Details:   fmt.Sprintf("from: %s, to: %s", from, to),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStatusUpdateFailedError creates a retryable persistence error.
func NewStatusUpdateFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStatusUpdateFailed,
		Message:   "Application status update failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateApplicationError creates a non-retryable duplicate application error.
func NewDuplicateApplicationError(seekerID, jobID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateApplication,
		Message:   "Application already exists",
		Details:   fmt.Sprintf("seekerId: %s, jobId: %s", seekerID, jobID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewApplicationValidationFailedError creates a non-retryable input validation error.
func NewApplicationValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeApplicationInvalid,
		Message:   "Application validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProposalNotFoundError creates a non-retryable lookup error.
func NewProposalNotFoundError(applicationID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProposalNotFound,
		Message:   "Interview proposal not found",
		Details:   fmt.Sprintf("applicationId: %s", applicationID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewGuideNotFoundError creates a non-retryable lookup error.
func NewGuideNotFoundError(applicationID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeGuideNotFound,
		Message:   "Acceptance guide not found",
		Details:   fmt.Sprintf("applicationId: %s", applicationID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProfileFetchTimeoutError creates a retryable profile service timeout error.
func NewProfileFetchTimeoutError(seekerID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileFetchTimeout,
		Message:   "Job seeker profile request timed out",
		Details:   fmt.Sprintf("seekerId: %s", seekerID),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProposalValidationFailedError creates a non-retryable validation error.
func NewProposalValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProposalValidationFailed,
		Message:   "Interview proposal validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewGuideValidationFailedError creates a non-retryable validation error.
func NewGuideValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeGuideValidationFailed,
		Message:   "Acceptance guide validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryTimeoutError creates a retryable query timeout error.
func NewQueryTimeoutError(queryType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryTimeout,
		Message:   "Database query timeout",
		Details:   fmt.Sprintf("queryType: %s", queryType),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseInsertFailedError creates a retryable database insert error.
func NewDatabaseInsertFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseInsertFailed,
		Message:   "Database insert operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewOverlayWriteFailedError creates a retryable overlay persistence error.
func NewOverlayWriteFailedError(key string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeOverlayWriteFailed,
		Message:   "Overlay store write failed",
		Details:   fmt.Sprintf("key: %s, error: %s", key, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewOverlayReadFailedError creates a retryable overlay read error.
func NewOverlayReadFailedError(key string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeOverlayReadFailed,
		Message:   "Overlay store read failed",
		Details:   fmt.Sprintf("key: %s, error: %s", key, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSeekerNotFoundError creates a non-retryable profile lookup error.
func NewSeekerNotFoundError(seekerID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSeekerNotFound,
		Message:   "Job seeker profile not found",
		Details:   fmt.Sprintf("seekerId: %s", seekerID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProfileFetchFailedError creates a retryable profile service error.
func NewProfileFetchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileFetchFailed,
		Message:   "Profile service error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchQueryFailedError creates a retryable search query error.
func NewSearchQueryFailedError(queryType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Elasticsearch query error",
		Details:   fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchTimeoutError creates a retryable search timeout error.
func NewSearchTimeoutError(queryType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchTimeout,
		Message:   "Elasticsearch query timeout",
		Details:   fmt.Sprintf("queryType: %s", queryType),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIndexNotFoundError creates a non-retryable index not found error.
func NewIndexNotFoundError(indexName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeIndexNotFound,
		Message:   "Elasticsearch index not found",
		Details:   fmt.Sprintf("indexName: %s", indexName),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification send error.
func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("type: %s, error: %s", notificationType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// Generic constructors

func NewBusinessRuleError(message, details string) *StandardError {
	return &StandardError{
		Code:      "BUSINESS_RULE_VIOLATION",
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "TIMEOUT_ERROR",
		Message:   fmt.Sprintf("Service '%s' timeout", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return &StandardError{
		Code:      "RESOURCE_NOT_FOUND",
		Message:   fmt.Sprintf("Resource not found in %s", service),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewAuthenticationError(details string) *StandardError {
	return &StandardError{
		Code:      "AUTHENTICATION_ERROR",
		Message:   "Authentication failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes (identical by
// convention, kept as an explicit table so workflow models can be diffed
// against it).
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeApplicationNotFound:      "APPLICATION_NOT_FOUND",
	ErrCodeInvalidStatusTransition:  "INVALID_STATUS_TRANSITION",
	ErrCodeStatusUpdateFailed:       "STATUS_UPDATE_FAILED",
	ErrCodeDuplicateApplication:     "DUPLICATE_APPLICATION",
	ErrCodeApplicationInvalid:       "APPLICATION_VALIDATION_FAILED",
	ErrCodeProposalValidationFailed: "PROPOSAL_VALIDATION_FAILED",
	ErrCodeProposalNotFound:         "PROPOSAL_NOT_FOUND",
	ErrCodeGuideValidationFailed:    "GUIDE_VALIDATION_FAILED",
	ErrCodeGuideNotFound:            "GUIDE_NOT_FOUND",
	ErrCodeDatabaseConnectionFailed: "DATABASE_CONNECTION_FAILED",
	ErrCodeQueryExecutionFailed:     "QUERY_EXECUTION_FAILED",
	ErrCodeQueryTimeout:             "QUERY_TIMEOUT",
	ErrCodeDatabaseInsertFailed:     "DATABASE_INSERT_FAILED",
	ErrCodeOverlayReadFailed:        "OVERLAY_READ_FAILED",
	ErrCodeOverlayWriteFailed:       "OVERLAY_WRITE_FAILED",
	ErrCodeSeekerNotFound:           "SEEKER_NOT_FOUND",
	ErrCodeProfileFetchFailed:       "PROFILE_FETCH_FAILED",
	ErrCodeProfileFetchTimeout:      "PROFILE_FETCH_TIMEOUT",
	ErrCodeSearchQueryFailed:        "SEARCH_QUERY_FAILED",
	ErrCodeSearchTimeout:            "SEARCH_TIMEOUT",
	ErrCodeIndexNotFound:            "INDEX_NOT_FOUND",
	ErrCodeNotificationSendFailed:   "NOTIFICATION_SEND_FAILED",
}

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeStatusUpdateFailed,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeDatabaseInsertFailed,
		ErrCodeOverlayReadFailed,
		ErrCodeOverlayWriteFailed,
		ErrCodeProfileFetchFailed,
		ErrCodeSearchQueryFailed,
		ErrCodeNotificationSendFailed:
		return 3 // Retryable technical errors

	case ErrCodeQueryTimeout,
		ErrCodeSearchTimeout,
		ErrCodeProfileFetchTimeout:
		return 2 // Partial retry for timeouts

	default:
		return 0 // Business/validation errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code) // Fallback
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "PROPOSAL") || strings.Contains(codeStr, "GUIDE"):
		return "RECRUITMENT"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "OVERLAY"):
		return "OVERLAY"
	case strings.Contains(codeStr, "SEARCH") || strings.Contains(codeStr, "INDEX"):
		return "SEARCH"
	case strings.Contains(codeStr, "SEEKER") || strings.Contains(codeStr, "PROFILE"):
		return "PROFILE"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
