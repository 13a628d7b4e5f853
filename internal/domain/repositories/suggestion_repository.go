package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/tablevote/tablevote-backend/internal/domain/entities"
)

// SuggestionRepository defines the interface for manual suggestion access.
// Suggestions are append-only: created by members, never mutated or deleted
// by the pipeline.
type SuggestionRepository interface {
	// Create persists a new manual suggestion
	Create(ctx context.Context, suggestion *entities.Suggestion) error

	// FindByMeeting retrieves all suggestions for a meeting, oldest first
	FindByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.Suggestion, error)
}

// PreferenceRepository defines the interface for soft preference access
type PreferenceRepository interface {
	// Upsert creates or replaces a member's preference for a meeting
	Upsert(ctx context.Context, pref *entities.Preference) error

	// FindByMeeting retrieves all preference submissions for a meeting,
	// oldest first (stable tie order for frequency ranking)
	FindByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.Preference, error)
}
