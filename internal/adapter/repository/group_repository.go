package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tablevote/tablevote-backend/internal/domain/entities"
	"github.com/tablevote/tablevote-backend/internal/domain/repositories"
)

// groupRepository implements the GroupRepository interface
type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *gorm.DB) repositories.GroupRepository {
	return &groupRepository{db: db}
}

// Create creates a new group
func (r *groupRepository) Create(ctx context.Context, group *entities.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

// FindByID retrieves a group with its members preloaded
func (r *groupRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Group, error) {
	var group entities.Group
	err := r.db.WithContext(ctx).
		Preload("Members").
		Where("id = ?", id).
		First(&group).Error

	if err != nil {
		return nil, err
	}
	return &group, nil
}

// AddMember adds a member to a group
func (r *groupRepository) AddMember(ctx context.Context, member *entities.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// FindMembers retrieves the current roster of a group
func (r *groupRepository) FindMembers(ctx context.Context, groupID uuid.UUID) ([]*entities.Member, error) {
	var members []*entities.Member
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("created_at ASC").
		Find(&members).Error

	if err != nil {
		return nil, err
	}
	return members, nil
}

// FindMember retrieves a single member by id
func (r *groupRepository) FindMember(ctx context.Context, memberID uuid.UUID) (*entities.Member, error) {
	var member entities.Member
	err := r.db.WithContext(ctx).
		Where("id = ?", memberID).
		First(&member).Error

	if err != nil {
		return nil, err
	}
	return &member, nil
}

// UpdateMemberRestrictions replaces a member's stored dietary restrictions
func (r *groupRepository) UpdateMemberRestrictions(ctx context.Context, memberID uuid.UUID, restrictions []string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Member{}).
		Where("id = ?", memberID).
		Update("dietary_restrictions", entities.JSONList(restrictions)).Error
}
