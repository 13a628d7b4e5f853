package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorCode identifies an error category in API responses.
type ErrorCode string

const (
	ErrorCode_INTERNAL          ErrorCode = "INTERNAL"
	ErrorCode_INVALID_ARGUMENT  ErrorCode = "INVALID_ARGUMENT"
	ErrorCode_NOT_FOUND         ErrorCode = "NOT_FOUND"
	ErrorCode_ALREADY_EXISTS    ErrorCode = "ALREADY_EXISTS"
	ErrorCode_INVALID_PAYLOAD   ErrorCode = "INVALID_PAYLOAD"
	ErrorCode_DB_QUERY_FAILED   ErrorCode = "DB_QUERY_FAILED"
	ErrorCode_DB_TX_FAILED      ErrorCode = "DB_TRANSACTION_FAILED"
	ErrorCode_EXTERNAL_API      ErrorCode = "EXTERNAL_API_FAILED"
	ErrorCode_CONSENSUS_FAILED  ErrorCode = "CONSENSUS_FAILED"
	ErrorCode_FINALIZE_FAILED   ErrorCode = "FINALIZE_FAILED"
	ErrorCode_VOTE_FAILED       ErrorCode = "VOTE_FAILED"
	ErrorCode_PROGRESS_FAILED   ErrorCode = "PROGRESS_FAILED"
	ErrorCode_RECOMMEND_FAILED  ErrorCode = "RECOMMEND_FAILED"
	ErrorCode_NO_LOCATION       ErrorCode = "NO_MEETING_LOCATION"
	ErrorCode_INVALID_BUDGET    ErrorCode = "INVALID_BUDGET_BAND"
	ErrorCode_MEMBER_NOT_FOUND  ErrorCode = "MEMBER_NOT_FOUND"
	ErrorCode_GROUP_NOT_FOUND   ErrorCode = "GROUP_NOT_FOUND"
	ErrorCode_MEETING_NOT_FOUND ErrorCode = "MEETING_NOT_FOUND"
)

// String returns the code as a string
func (c ErrorCode) String() string {
	return string(c)
}

// AppError is the custom error type for the application
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General Errors

func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Invalid payload",
	}
}

// Domain Errors

func ErrGroupNotFound(groupID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_GROUP_NOT_FOUND,
		Message:  "Group not found",
	}.WithDetail("group_id", groupID)
}

func ErrMeetingNotFound(meetingID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_MEETING_NOT_FOUND,
		Message:  "Meeting not found",
	}.WithDetail("meeting_id", meetingID)
}

func ErrMemberNotFound(memberID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_MEMBER_NOT_FOUND,
		Message:  "Member not found",
	}.WithDetail("member_id", memberID)
}

func ErrMeetingAlreadyFinal(meetingID string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_ALREADY_EXISTS,
		Message:  "Meeting outcome already finalized",
	}.WithDetail("meeting_id", meetingID)
}

func ErrNoMeetingLocation() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_NO_LOCATION,
		Message:  "Meeting has neither coordinates nor a location text",
	}
}

func ErrInvalidBudgetBand(budget string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_BUDGET,
		Message:  "Budget must be one of the four price bands or empty",
	}.WithDetail("budget", budget)
}

// Operation Errors — vote, consensus, progress and finalize failures must
// be visible to the caller so it never assumes the write took effect.

func ErrVoteFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_VOTE_FAILED,
		Message:  "Failed to record vote",
	}
}

func ErrConsensusFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_CONSENSUS_FAILED,
		Message:  "Failed to compute consensus",
	}
}

func ErrProgressFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_PROGRESS_FAILED,
		Message:  "Failed to save swipe progress",
	}
}

func ErrFinalizeFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_FINALIZE_FAILED,
		Message:  "Failed to finalize meeting outcome",
	}
}

func ErrRecommendFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_RECOMMEND_FAILED,
		Message:  "Failed to build recommendations",
	}
}

// Database Errors

func ErrDBQueryFailed(query string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_QUERY_FAILED,
		Message:  "Database query failed",
	}.WithDetail("query", query)
}

func ErrDBTransactionFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_TX_FAILED,
		Message:  "Database transaction failed",
	}
}

func ErrExternalAPIFailed(service string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_EXTERNAL_API,
		Message:  fmt.Sprintf("External API call failed: %s", service),
	}
}
