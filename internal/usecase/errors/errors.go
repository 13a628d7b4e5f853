package errors

import "errors"

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("resource not found")
	ErrInternalError = errors.New("internal server error")
)

// Group / member errors
var (
	ErrGroupNotFound    = errors.New("group not found")
	ErrMemberNotFound   = errors.New("member not found")
	ErrMemberNotInGroup = errors.New("member does not belong to this group")
	ErrEmptyGroup       = errors.New("group has no members")
)

// Meeting errors
var (
	ErrMeetingNotFound     = errors.New("meeting not found")
	ErrMeetingNotInGroup   = errors.New("meeting does not belong to this group")
	ErrNoMeetingLocation   = errors.New("meeting has no resolvable location")
	ErrMeetingAlreadyFinal = errors.New("meeting outcome already finalized")
)

// Voting errors
var (
	ErrInvalidPlaceID   = errors.New("place id must not be empty")
	ErrInvalidDeckIndex = errors.New("deck index must not be negative")
)

// Preference errors
var (
	ErrInvalidBudgetBand = errors.New("budget must be one of the four price bands or empty")
)
