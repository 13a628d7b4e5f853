package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/tablevote/tablevote-backend/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access.
// All mutation goes through MergeFields so unrelated columns are never
// clobbered by concurrent writers.
type MeetingRepository interface {
	// Create creates a new meeting
	Create(ctx context.Context, meeting *entities.Meeting) error

	// FindByID retrieves a meeting by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// FindByGroupID retrieves all meetings of a group, newest first
	FindByGroupID(ctx context.Context, groupID uuid.UUID) ([]*entities.Meeting, error)

	// MergeFields updates only the given columns of a meeting
	MergeFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
}
