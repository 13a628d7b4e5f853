package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/tablevote/tablevote-backend/internal/domain/entities"
)

// VoteRepository defines the interface for vote data access
type VoteRepository interface {
	// Upsert records a vote, replacing any earlier vote by the same member
	// on the same candidate
	Upsert(ctx context.Context, vote *entities.Vote) error

	// FindByMeeting retrieves the full vote log for a meeting
	FindByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.Vote, error)
}

// ProgressRepository defines the interface for swipe progress data access
type ProgressRepository interface {
	// Upsert saves a member's deck position. The stored index never
	// decreases and a finished flag never reverts.
	Upsert(ctx context.Context, progress *entities.SwipeProgress) error

	// Find retrieves one member's progress, nil if absent
	Find(ctx context.Context, meetingID, memberID uuid.UUID) (*entities.SwipeProgress, error)

	// FindByMeeting retrieves every member's progress for a meeting
	FindByMeeting(ctx context.Context, meetingID uuid.UUID) ([]entities.SwipeProgress, error)
}
