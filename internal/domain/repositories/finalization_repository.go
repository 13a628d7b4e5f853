package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tablevote/tablevote-backend/internal/domain/entities"
)

// FinalizationInput carries everything the outcome commit needs.
type FinalizationInput struct {
	MeetingID uuid.UUID
	Place     entities.Place
	MemberIDs []uuid.UUID
	VisitedAt time.Time
}

// FinalizationRepository commits a meeting outcome atomically: the chosen
// place is merged into the meeting's candidate store, the meeting record is
// merge-updated, and a visit row is written per member — all or nothing.
type FinalizationRepository interface {
	Commit(ctx context.Context, input FinalizationInput) error
}

// VisitRepository defines the interface for visit history reads
type VisitRepository interface {
	// FindByMember retrieves a member's visit history, newest first
	FindByMember(ctx context.Context, memberID uuid.UUID) ([]*entities.Visit, error)
}

// CandidateRepository defines the interface for the meeting candidate store
type CandidateRepository interface {
	// Merge upserts a candidate record without overwriting an existing
	// row's unrelated fields
	Merge(ctx context.Context, record *entities.CandidateRecord) error

	// FindByMeeting retrieves all stored candidate records for a meeting
	FindByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.CandidateRecord, error)
}
