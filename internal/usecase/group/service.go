package group

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tablevote/tablevote-backend/internal/domain/entities"
	"github.com/tablevote/tablevote-backend/internal/domain/repositories"
	usecaseErrors "github.com/tablevote/tablevote-backend/internal/usecase/errors"
)

// Service handles group and meeting lifecycle management.
type Service struct {
	groupRepo   repositories.GroupRepository
	meetingRepo repositories.MeetingRepository
	visitRepo   repositories.VisitRepository
}

// NewService creates a new group service
func NewService(
	groupRepo repositories.GroupRepository,
	meetingRepo repositories.MeetingRepository,
	visitRepo repositories.VisitRepository,
) *Service {
	return &Service{
		groupRepo:   groupRepo,
		meetingRepo: meetingRepo,
		visitRepo:   visitRepo,
	}
}

// CreateGroupInput represents input for creating a group
type CreateGroupInput struct {
	Name    string
	Members []MemberInput
}

// MemberInput represents one member at group creation or join time
type MemberInput struct {
	Name                string
	DietaryRestrictions []string
}

// CreateGroup creates a new group with its initial members
func (s *Service) CreateGroup(ctx context.Context, input CreateGroupInput) (*entities.Group, error) {
	if input.Name == "" {
		return nil, usecaseErrors.ErrInvalidInput
	}

	group := &entities.Group{Name: input.Name}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	for _, m := range input.Members {
		member := &entities.Member{
			GroupID:             group.ID,
			Name:                m.Name,
			DietaryRestrictions: entities.JSONList(m.DietaryRestrictions),
		}
		if err := s.groupRepo.AddMember(ctx, member); err != nil {
			return nil, fmt.Errorf("failed to add member: %w", err)
		}
		group.Members = append(group.Members, *member)
	}

	return group, nil
}

// GetGroup retrieves a group with its members
func (s *Service) GetGroup(ctx context.Context, groupID uuid.UUID) (*entities.Group, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

// AddMember adds a member to an existing group
func (s *Service) AddMember(ctx context.Context, groupID uuid.UUID, input MemberInput) (*entities.Member, error) {
	if input.Name == "" {
		return nil, usecaseErrors.ErrInvalidInput
	}
	if _, err := s.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}

	member := &entities.Member{
		GroupID:             groupID,
		Name:                input.Name,
		DietaryRestrictions: entities.JSONList(input.DietaryRestrictions),
	}
	if err := s.groupRepo.AddMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}
	return member, nil
}

// UpdateRestrictions replaces a member's stored dietary restrictions
func (s *Service) UpdateRestrictions(ctx context.Context, groupID, memberID uuid.UUID, restrictions []string) error {
	member, err := s.groupRepo.FindMember(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecaseErrors.ErrMemberNotFound
		}
		return fmt.Errorf("failed to get member: %w", err)
	}
	if member.GroupID != groupID {
		return usecaseErrors.ErrMemberNotInGroup
	}

	if err := s.groupRepo.UpdateMemberRestrictions(ctx, memberID, restrictions); err != nil {
		return fmt.Errorf("failed to update restrictions: %w", err)
	}
	return nil
}

// CreateMeetingInput represents input for creating a meeting
type CreateMeetingInput struct {
	GroupID      uuid.UUID
	Name         string
	ScheduledAt  *time.Time
	Lat          *float64
	Lng          *float64
	LocationText *string
}

// CreateMeeting creates a new meeting for a group. The location may be a
// coordinate pair, a free-text hint, or absent (resolved lazily by the
// recommendation pipeline, which errors if nothing is available).
func (s *Service) CreateMeeting(ctx context.Context, input CreateMeetingInput) (*entities.Meeting, error) {
	if input.Name == "" {
		return nil, usecaseErrors.ErrInvalidInput
	}
	if _, err := s.GetGroup(ctx, input.GroupID); err != nil {
		return nil, err
	}

	meeting := &entities.Meeting{
		GroupID:      input.GroupID,
		Name:         input.Name,
		ScheduledAt:  input.ScheduledAt,
		Lat:          input.Lat,
		Lng:          input.Lng,
		LocationText: input.LocationText,
	}
	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}
	return meeting, nil
}

// GetMeeting retrieves a meeting by ID
func (s *Service) GetMeeting(ctx context.Context, meetingID uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	return meeting, nil
}

// ListMeetings retrieves all meetings of a group, newest first
func (s *Service) ListMeetings(ctx context.Context, groupID uuid.UUID) ([]*entities.Meeting, error) {
	meetings, err := s.meetingRepo.FindByGroupID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	return meetings, nil
}

// VisitHistory retrieves a member's dining history, newest first
func (s *Service) VisitHistory(ctx context.Context, memberID uuid.UUID) ([]*entities.Visit, error) {
	visits, err := s.visitRepo.FindByMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to load visit history: %w", err)
	}
	return visits, nil
}
