package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/tablevote/tablevote-backend/internal/domain/entities"
)

// GroupRepository defines the interface for group and member data access
type GroupRepository interface {
	// Create creates a new group
	Create(ctx context.Context, group *entities.Group) error

	// FindByID retrieves a group with its members preloaded
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Group, error)

	// AddMember adds a member to a group
	AddMember(ctx context.Context, member *entities.Member) error

	// FindMembers retrieves the current roster of a group
	FindMembers(ctx context.Context, groupID uuid.UUID) ([]*entities.Member, error)

	// FindMember retrieves a single member by id
	FindMember(ctx context.Context, memberID uuid.UUID) (*entities.Member, error)

	// UpdateMemberRestrictions replaces a member's stored dietary restrictions
	UpdateMemberRestrictions(ctx context.Context, memberID uuid.UUID, restrictions []string) error
}
